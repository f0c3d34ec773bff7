// Package nodestore defines the interface for storing and retrieving the
// memoised values of (variable, period) cells while one model point record
// is evaluated.
//
// # Why Node Store Exists
//
// Formulas call other variables at other periods. The evaluator computes each
// cell at most once and serves every later call from the store. Tracking the
// status next to the value lets the evaluator detect a cell that is reached
// again while it is still being computed.
//
// # Lifecycle and Usage
//
// The node store is:
//  1. **Created** once per model point record (ephemeral, never shared
//     between records)
//  2. **Mutated** as cells move through their states
//  3. **Read** to assemble the record's result series
//  4. **Discarded** when the record is done
//
// # State Transitions
//
// Cells follow this lifecycle:
//
//	Pending → Running → Completed (with value) OR Failed (with error)
//
// A failed evaluation may be reset to Pending: HCL conditionals evaluate both
// branches and discard errors from the branch not taken.
package nodestore

import (
	"context"

	"github.com/specialistvlad/cashgridgo/internal/node"
	"github.com/specialistvlad/cashgridgo/internal/nodeid"
)

// Store is the interface for managing the memoised state of cells.
//
// # Thread-Safety Requirements
//
// Implementations MUST be safe for concurrent use. The evaluator itself is
// sequential per record, but callers may evaluate records in parallel with
// one store each, and readers may inspect a store while it is filled.
type Store interface {
	// SetStatus updates the evaluation status of a cell.
	SetStatus(ctx context.Context, id nodeid.Address, status node.Status) error

	// GetStatus retrieves the current status of a cell.
	//
	// Returns StatusPending if no status has been set for this cell yet.
	GetStatus(ctx context.Context, id nodeid.Address) (node.Status, error)

	// SetValue records the computed value of a cell.
	SetValue(ctx context.Context, id nodeid.Address, value float64) error

	// GetValue retrieves the recorded value of a cell. The boolean is false
	// when no value has been recorded.
	GetValue(ctx context.Context, id nodeid.Address) (float64, bool, error)

	// SetError records why evaluation of a cell failed.
	SetError(ctx context.Context, id nodeid.Address, cellErr error) error

	// GetError retrieves the recorded error of a failed cell.
	//
	// Returns nil if the cell succeeded or hasn't been evaluated yet.
	GetError(ctx context.Context, id nodeid.Address) (error, error)
}
