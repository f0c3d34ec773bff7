// Package executor evaluates a scheduled model for one record of input data.
//
// Every variable is exposed to formulas as an HCL function of one argument,
// the period. Calling it at a period outside [0, T_MAX] returns 0. Any other
// call is served from the record's memo store, evaluating the callee's
// formula the first time the cell is needed. The plan only decides the
// order in which cells are first visited; lazy evaluation keeps results
// correct even where the visiting order is imperfect.
package executor
