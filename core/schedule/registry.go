package schedule

import (
	"context"
	"sort"
	"sync"

	"parking-fee/internal/errors"
)

// Provider supplies price tables by identifier. Callers must not mutate the
// schedules they receive.
type Provider interface {
	Get(ctx context.Context, id string) (*Schedule, error)
	List(ctx context.Context) ([]*Schedule, error)
}

// Registry is an in-memory Provider
type Registry struct {
	mu        sync.RWMutex
	schedules map[string]*Schedule
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		schedules: make(map[string]*Schedule),
	}
}

// Register adds a schedule. IDs must be non-empty and unique.
func (r *Registry) Register(s *Schedule) error {
	if s == nil || s.ID == "" {
		return errors.Input("price table must have an id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schedules[s.ID]; exists {
		return errors.Conflict("price table", s.ID)
	}
	r.schedules[s.ID] = s
	return nil
}

// Get returns the schedule with the given id
func (r *Registry) Get(ctx context.Context, id string) (*Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schedules[id]
	if !ok {
		return nil, errors.NotFound("price table", id)
	}
	return s, nil
}

// List returns all schedules ordered by id
func (r *Registry) List(ctx context.Context) ([]*Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Schedule, 0, len(r.schedules))
	for _, s := range r.schedules {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Len returns the number of registered schedules
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.schedules)
}
