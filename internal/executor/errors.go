package executor

import (
	"fmt"

	"github.com/specialistvlad/cashgridgo/internal/nodeid"
)

// EvaluationError is returned when a cell's formula cannot be evaluated.
type EvaluationError struct {
	Cell nodeid.Address
	Err  error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("failed to evaluate %s: %v", e.Cell, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// CircularEvaluationError is returned when a cell is needed while its own
// formula is still being evaluated.
type CircularEvaluationError struct {
	Cell nodeid.Address
}

func (e *CircularEvaluationError) Error() string {
	return fmt.Sprintf("circular evaluation: %s depends on itself", e.Cell)
}
