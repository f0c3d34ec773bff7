package scheduler

import (
	"fmt"
	"strings"
)

// UnresolvableCycleError is returned when the members of a cycle call each
// other at the same period with no t - 1 or t + 1 call to break the loop.
type UnresolvableCycleError struct {
	// Variables are the members left once every orderable member was ranked.
	Variables []string
	// Cycles are sample same-period cycles among Variables.
	Cycles [][]string
}

func (e *UnresolvableCycleError) Error() string {
	msg := fmt.Sprintf("unresolvable cycle among variables [%s]: same-period calls form a loop with no t - 1 or t + 1 call to break it",
		strings.Join(e.Variables, ", "))
	if len(e.Cycles) > 0 {
		msg += ": " + formatCycles(e.Cycles)
	}
	return msg
}

// InvalidCycleError is returned when an array variable is part of a cycle.
type InvalidCycleError struct {
	Variable string
	Members  []string
	Cycles   [][]string
}

func (e *InvalidCycleError) Error() string {
	msg := fmt.Sprintf("array variable %q cannot be part of a cycle (members: [%s])",
		e.Variable, strings.Join(e.Members, ", "))
	if len(e.Cycles) > 0 {
		msg += ": " + formatCycles(e.Cycles)
	}
	return msg
}

// UnknownVariableError is returned when a requested output does not name a
// variable of the model.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("output column %q does not match any variable", e.Name)
}

func formatCycles(cycles [][]string) string {
	parts := make([]string, 0, len(cycles))
	for _, c := range cycles {
		parts = append(parts, strings.Join(append(append([]string(nil), c...), c[0]), " -> "))
	}
	return strings.Join(parts, "; ")
}
