// Package scheduler derives the order in which a model's variables are
// evaluated.
//
// # Why Scheduler Exists
//
// Variables call each other at the same period, the previous period and the
// next period, and some call themselves. The evaluator walks the model one
// period at a time, so it needs an order in which every value it reaches for
// has already been produced, or is produced by the same sweep over t.
//
// # How It Works
//
// Schedule runs a loop over the whole-model graph:
//  1. Strip every variable with no remaining predecessor. All variables
//     stripped in one round share the next calculation order.
//  2. When nothing can be stripped, the remaining graph holds cycles. The
//     strongly connected components with no pending predecessor outside
//     themselves are ready. Each ready component is checked (no array
//     variables), its same-period dependencies are ranked into a cycle
//     order, and the whole component receives one calculation order.
//  3. Repeat until the graph is empty.
//
// A cyclic group is evaluated forward when its t - 1 calls dominate and
// backward when its t + 1 calls do.
//
// The result is a Plan, an immutable table keyed by variable name. Variable
// definitions are never modified.
package scheduler
