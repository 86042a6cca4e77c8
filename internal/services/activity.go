package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"mergingtonactivities/internal/domain"
	"mergingtonactivities/internal/metrics"
)

type activityService struct {
	repo            domain.ActivityRepository
	emailService    domain.EmailService
	logger          *slog.Logger
	enforceCapacity bool
}

// NewActivityService creates an ActivityService. emailService may be nil, in which
// case no confirmation emails are sent. When enforceCapacity is true, signups to an
// activity that has reached max_participants fail with domain.ErrActivityFull.
func NewActivityService(
	repo domain.ActivityRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	enforceCapacity bool,
) domain.ActivityService {
	return &activityService{
		repo:            repo,
		emailService:    emailService,
		logger:          logger,
		enforceCapacity: enforceCapacity,
	}
}

func (s *activityService) ListActivities(ctx context.Context) (map[string]*domain.Activity, error) {
	activities, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

func (s *activityService) GetActivity(ctx context.Context, name string) (*domain.Activity, error) {
	a, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return a, nil
}

func (s *activityService) Signup(ctx context.Context, activityName, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	var schedule string
	err := s.repo.Update(ctx, activityName, func(a *domain.Activity) error {
		if a.HasParticipant(email) {
			return domain.ErrAlreadyRegistered
		}
		if s.enforceCapacity && a.IsFull() {
			return domain.ErrActivityFull
		}
		a.Participants = append(a.Participants, email)
		schedule = a.Schedule
		return nil
	})
	if err != nil {
		if isActivityError(err) {
			return "", err
		}
		return "", fmt.Errorf("signup: %w", err)
	}

	metrics.ActivitySignups.WithLabelValues(activityName).Inc()
	s.logger.InfoContext(ctx, "participant signed up", "activity", activityName)

	if s.emailService != nil {
		data := &domain.ActivityEmailData{Email: email, ActivityName: activityName, Schedule: schedule}
		if err := s.emailService.SendSignupConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "signup confirmation email failed", "activity", activityName, "err", err)
		}
	}
	return fmt.Sprintf("Signed up %s for %s", email, activityName), nil
}

func (s *activityService) Unregister(ctx context.Context, activityName, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	var schedule string
	err := s.repo.Update(ctx, activityName, func(a *domain.Activity) error {
		if !a.RemoveParticipant(email) {
			return domain.ErrNotRegistered
		}
		schedule = a.Schedule
		return nil
	})
	if err != nil {
		if isActivityError(err) {
			return "", err
		}
		return "", fmt.Errorf("unregister: %w", err)
	}

	metrics.ActivityUnregistrations.WithLabelValues(activityName).Inc()
	s.logger.InfoContext(ctx, "participant unregistered", "activity", activityName)

	if s.emailService != nil {
		data := &domain.ActivityEmailData{Email: email, ActivityName: activityName, Schedule: schedule}
		if err := s.emailService.SendUnregisterConfirmation(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "unregister confirmation email failed", "activity", activityName, "err", err)
		}
	}
	return fmt.Sprintf("Unregistered %s from %s", email, activityName), nil
}

// isActivityError reports whether err is one of the domain errors callers map to a response.
func isActivityError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrAlreadyRegistered) ||
		errors.Is(err, domain.ErrNotRegistered) ||
		errors.Is(err, domain.ErrActivityFull)
}
