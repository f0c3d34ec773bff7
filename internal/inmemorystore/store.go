package inmemorystore

import (
	"context"
	"sync"

	"github.com/specialistvlad/cashgridgo/internal/node"
	"github.com/specialistvlad/cashgridgo/internal/nodeid"
	"github.com/specialistvlad/cashgridgo/internal/nodestore"
)

// Store is an in-memory implementation of nodestore.Store using sync.Map.
//
// The store maintains three independent sync.Maps, all keyed by
// nodeid.Address:
//   - states: node.Status
//   - values: float64
//   - errors: error
//
// The key space is stable once a record's cells have been touched while
// values are written once and read many times, which is the access pattern
// sync.Map is built for.
type Store struct {
	states sync.Map
	values sync.Map
	errors sync.Map
}

// New creates a new, empty in-memory cell store.
func New() nodestore.Store {
	return &Store{}
}

// SetStatus updates the evaluation status of a specific cell.
func (s *Store) SetStatus(ctx context.Context, id nodeid.Address, status node.Status) error {
	s.states.Store(id, status)
	return nil
}

// GetStatus retrieves the evaluation status of a specific cell.
// If a status has not been set, it returns StatusPending.
func (s *Store) GetStatus(ctx context.Context, id nodeid.Address) (node.Status, error) {
	status, ok := s.states.Load(id)
	if !ok {
		return node.StatusPending, nil
	}
	return status.(node.Status), nil
}

// SetValue records the computed value of a cell.
func (s *Store) SetValue(ctx context.Context, id nodeid.Address, value float64) error {
	s.values.Store(id, value)
	return nil
}

// GetValue retrieves the recorded value of a cell.
func (s *Store) GetValue(ctx context.Context, id nodeid.Address) (float64, bool, error) {
	value, ok := s.values.Load(id)
	if !ok {
		return 0, false, nil
	}
	return value.(float64), true, nil
}

// SetError records the failure error of a cell.
func (s *Store) SetError(ctx context.Context, id nodeid.Address, cellErr error) error {
	s.errors.Store(id, cellErr)
	return nil
}

// GetError retrieves the recorded error of a failed cell.
func (s *Store) GetError(ctx context.Context, id nodeid.Address) (error, error) {
	err, ok := s.errors.Load(id)
	if !ok {
		return nil, nil // If not found, there is no error.
	}
	return err.(error), nil
}
