// internal/nodeid/doc.go

/*
Package nodeid provides a structured, type-safe representation for the
identifier of one (variable, period) cell, based on the canonical format
`name[period]`, e.g. `survival_rate[12]`.

Addresses are the node IDs of the expanded period graph and the keys of the
evaluator's memo store. This package centralizes all formatting and parsing
of that format.
*/
package nodeid
