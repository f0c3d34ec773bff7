// Package node defines the evaluation status of one (variable, period) cell.
package node

// Status represents the evaluation state of a cell.
type Status int32

const (
	// StatusPending indicates the cell has not been evaluated yet.
	StatusPending Status = iota
	// StatusRunning indicates the cell's formula is being evaluated. Reaching
	// a running cell again means the model is circular at that cell.
	StatusRunning
	// StatusCompleted indicates the cell holds its final value.
	StatusCompleted
	// StatusFailed indicates evaluation of the cell returned an error.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}
