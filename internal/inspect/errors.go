package inspect

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// MalformedCallError is returned when a call to a model variable does not
// take exactly one argument.
type MalformedCallError struct {
	Caller string
	Callee string
	Args   int
	Range  hcl.Range
}

func (e *MalformedCallError) Error() string {
	return fmt.Sprintf("%s: variable %q calls %q with %d argument(s): model variable must have one argument",
		e.Range, e.Caller, e.Callee, e.Args)
}

// UnsupportedFormulaError is returned when a formula was not produced by the
// native HCL syntax parser and so cannot be walked.
type UnsupportedFormulaError struct {
	Caller string
}

func (e *UnsupportedFormulaError) Error() string {
	return fmt.Sprintf("variable %q: formula must be a native HCL syntax expression", e.Caller)
}
