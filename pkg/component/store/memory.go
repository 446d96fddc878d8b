package store

import (
	"context"
	"sync"

	"github.com/gridsmith/gridview/pkg/component"
	"github.com/gridsmith/gridview/pkg/errors"
)

// MemStore is an in-memory component store. Snapshot order is insertion
// order; replacing an existing component keeps its original slot so the
// topology view does not reshuffle on edits.
//
// MemStore is safe for concurrent use.
type MemStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]component.Component
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{byID: make(map[string]component.Component)}
}

// List returns a snapshot of all components in insertion order.
func (s *MemStore) List(ctx context.Context) ([]component.Component, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]component.Component, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// Get returns the component with the given ID.
func (s *MemStore) Get(ctx context.Context, id string) (*component.Component, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeComponentNotFound, "no component %q", id)
	}
	return &c, nil
}

// Put inserts or replaces a component. The component is validated first;
// a copy is stored so later caller mutations do not leak in.
func (s *MemStore) Put(ctx context.Context, c *component.Component) error {
	if err := c.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[c.ID]; !ok {
		s.order = append(s.order, c.ID)
	}
	s.byID[c.ID] = *c
	return nil
}

// Delete removes a component. Deleting an absent ID returns
// ErrCodeComponentNotFound.
func (s *MemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return errors.New(errors.ErrCodeComponentNotFound, "no component %q", id)
	}
	delete(s.byID, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Close releases nothing; the memory store has no external resources.
func (s *MemStore) Close(ctx context.Context) error {
	return nil
}
