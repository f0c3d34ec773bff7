// internal/nodeid/address.go
package nodeid

import (
	"strconv"
)

// String serializes the Address into its canonical `name[period]` form.
func (a Address) String() string {
	return a.Variable + "[" + strconv.Itoa(a.Period) + "]"
}

// Equal reports whether both addresses name the same cell.
func (a Address) Equal(other Address) bool {
	return a == other
}

// Prev returns the address of the same variable one period earlier.
func (a Address) Prev() Address {
	return Address{Variable: a.Variable, Period: a.Period - 1}
}

// Next returns the address of the same variable one period later.
func (a Address) Next() Address {
	return Address{Variable: a.Variable, Period: a.Period + 1}
}
