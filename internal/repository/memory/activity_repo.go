package memory

import (
	"context"
	"sync"

	"mergingtonactivities/internal/domain"
)

type activityRepository struct {
	mu         sync.RWMutex
	activities map[string]*domain.Activity
}

// NewActivityRepository returns an in-memory ActivityRepository holding copies
// of the given activities. Later entries win on duplicate names.
func NewActivityRepository(seed []*domain.Activity) domain.ActivityRepository {
	activities := make(map[string]*domain.Activity, len(seed))
	for _, a := range seed {
		activities[a.Name] = a.Clone()
	}
	return &activityRepository{activities: activities}
}

func (r *activityRepository) List(ctx context.Context) (map[string]*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*domain.Activity, len(r.activities))
	for name, a := range r.activities {
		out[name] = a.Clone()
	}
	return out, nil
}

func (r *activityRepository) GetByName(ctx context.Context, name string) (*domain.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a.Clone(), nil
}

func (r *activityRepository) Update(ctx context.Context, name string, fn func(a *domain.Activity) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.activities[name]
	if !ok {
		return domain.ErrNotFound
	}
	// fn works on a copy so a failed update leaves the record untouched.
	working := a.Clone()
	if err := fn(working); err != nil {
		return err
	}
	r.activities[name] = working
	return nil
}
