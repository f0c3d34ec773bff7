// Package inspect statically analyses a variable's formula. It finds every
// call to another model variable, classifies the call's time argument, and
// derives the periods at which the call is reached from the conditional
// guards that enclose it.
//
// The formula is walked once with hclsyntax.Walk into an arena of nodes, each
// holding the index of its parent. Guards are then collected by following
// parent indexes from a call up to the root.
//
// A conditional contributes its positive test regardless of which branch the
// call sits in. A call in the false branch of `t == 0 ? a : f(t - 1)` is
// therefore attributed to period 0 only. This matches long-standing model
// behaviour and is kept as is; see DESIGN.md.
package inspect
