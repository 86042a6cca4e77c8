package domain

import (
	"context"
	"errors"
)

// Sentinel errors for activity operations.
var (
	ErrNotFound          = errors.New("activity not found")
	ErrAlreadyRegistered = errors.New("student already signed up for this activity")
	ErrNotRegistered     = errors.New("student is not registered for this activity")
	ErrActivityFull      = errors.New("activity is full")
)

// ErrInvalidInput is returned when the request is invalid (e.g. an empty email).
var ErrInvalidInput = errors.New("invalid input")

// Activity is an extracurricular offering. The name is the registry key and is
// not part of the JSON body.
// swagger:model Activity
type Activity struct {
	Name            string   `json:"-" yaml:"name"`
	Description     string   `json:"description" yaml:"description"`
	Schedule        string   `json:"schedule" yaml:"schedule"`
	MaxParticipants int      `json:"max_participants" yaml:"max_participants"`
	Participants    []string `json:"participants" yaml:"participants"`
}

// NewActivity returns an Activity with an empty participant list.
func NewActivity(name, description, schedule string, maxParticipants int) *Activity {
	return &Activity{
		Name:            name,
		Description:     description,
		Schedule:        schedule,
		MaxParticipants: maxParticipants,
		Participants:    []string{},
	}
}

// Clone returns a deep copy of the activity.
func (a *Activity) Clone() *Activity {
	c := *a
	c.Participants = make([]string, len(a.Participants))
	copy(c.Participants, a.Participants)
	return &c
}

// HasParticipant reports whether email is in the participant list.
func (a *Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// IsFull reports whether the activity has reached max_participants.
func (a *Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// RemoveParticipant deletes email from the participant list, keeping the order
// of the others. It returns false if email was not present.
func (a *Activity) RemoveParticipant(email string) bool {
	for i, p := range a.Participants {
		if p == email {
			a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
			return true
		}
	}
	return false
}

// ActivityRepository defines storage for the activity registry.
type ActivityRepository interface {
	// List returns a snapshot of every activity keyed by name.
	List(ctx context.Context) (map[string]*Activity, error)
	GetByName(ctx context.Context, name string) (*Activity, error)
	// Update runs fn against the stored activity while holding exclusive access.
	// Returns ErrNotFound if the activity does not exist; otherwise returns fn's error.
	Update(ctx context.Context, name string, fn func(a *Activity) error) error
}

// ActivityService defines the student-facing activity operations.
type ActivityService interface {
	ListActivities(ctx context.Context) (map[string]*Activity, error)
	GetActivity(ctx context.Context, name string) (*Activity, error)
	// Signup adds email to the activity and returns a confirmation message.
	Signup(ctx context.Context, activityName, email string) (string, error)
	// Unregister removes email from the activity and returns a confirmation message.
	Unregister(ctx context.Context, activityName, email string) (string, error)
}
