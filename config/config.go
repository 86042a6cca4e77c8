package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment        string
	Port               string
	EnforceCapacity    bool
	ActivitiesFile     string
	CORSAllowedOrigins []string
	Email              EmailConfig
}

// EmailConfig selects and configures the confirmation email provider.
type EmailConfig struct {
	Provider              string
	FromAddress           string
	FromName              string
	AWSRegion             string
	AWSAccessKeyID        string
	AWSSecretAccessKey    string
	SESInsecureSkipVerify bool
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on system environment variables only.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			slog.Debug(".env file not loaded", "err", err)
		}
	}

	enforceCapacity, err := boolEnv("ENFORCE_CAPACITY", true)
	if err != nil {
		return nil, err
	}
	sesInsecure, err := boolEnv("SES_INSECURE_SKIP_VERIFY", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment:        env,
		Port:               os.Getenv("PORT"),
		EnforceCapacity:    enforceCapacity,
		ActivitiesFile:     os.Getenv("ACTIVITIES_FILE"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		Email: EmailConfig{
			Provider:              strings.ToLower(os.Getenv("EMAIL_PROVIDER")),
			FromAddress:           os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:              os.Getenv("EMAIL_FROM_NAME"),
			AWSRegion:             os.Getenv("AWS_REGION"),
			AWSAccessKeyID:        os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SESInsecureSkipVerify: sesInsecure,
		},
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "noop"
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "Mergington High School Activities"
	}

	return cfg, nil
}

func boolEnv(key string, def bool) (bool, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
