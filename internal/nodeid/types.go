// internal/nodeid/types.go
package nodeid

// Address is the structured representation of one (variable, period) cell.
// It is a comparable value and may be used as a map key.
type Address struct {
	Variable string
	Period   int
}

// New creates an address for the given variable and period.
func New(variable string, period int) Address {
	return Address{Variable: variable, Period: period}
}
