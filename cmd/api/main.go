// @title Mergington High School Activities API
// @version 1.0
// @description Lists extracurricular activities and lets students sign up or unregister by email.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mergingtonactivities/config"
	"mergingtonactivities/internal/adapters/email"
	httpDelivery "mergingtonactivities/internal/delivery/http"
	"mergingtonactivities/internal/delivery/http/controllers"
	"mergingtonactivities/internal/domain"
	"mergingtonactivities/internal/repository/memory"
	"mergingtonactivities/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load first so LOG_LEVEL and GO_ENV from .env reach the logger.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	seed, err := loadSeed(cfg.ActivitiesFile)
	if err != nil {
		return err
	}
	repo := memory.NewActivityRepository(seed)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	activityService := services.NewActivityService(repo, emailService, logger, cfg.EnforceCapacity)
	activityController := controllers.NewActivityController(logger, activityService)

	router := httpDelivery.NewRouter(activityController)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpDelivery.WithMiddleware(router, logger, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment, "activities", len(seed), "enforce_capacity", cfg.EnforceCapacity)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func loadSeed(path string) ([]*domain.Activity, error) {
	if path == "" {
		seed, err := memory.DefaultSeed()
		if err != nil {
			return nil, fmt.Errorf("load default activities: %w", err)
		}
		return seed, nil
	}
	seed, err := memory.LoadSeedFile(path)
	if err != nil {
		return nil, fmt.Errorf("load activities from %s: %w", path, err)
	}
	return seed, nil
}
