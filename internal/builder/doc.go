// Package builder turns variables and their dependency records into
// dependency graphs.
//
// Three shapes are produced:
//
//   - ModelGraph: one node per variable, an edge callee -> caller for every
//     dependency. Time offsets are not encoded.
//   - CycleGraph: the same, restricted to the members of one cycle and to
//     the dependencies the caller passes in (same-period calls).
//   - PeriodGraph: one node per (variable, period) with edges placed at the
//     exact periods each dependency links.
package builder
