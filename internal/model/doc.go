// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the format-agnostic representation of a cash-flow
// model: its variables, the time index they are defined over, and the
// dependency facts the analysis passes derive from their formulas.
//
// # Core Concepts
//
//   - Variable: a named formula evaluated once per period t in [0, T_MAX].
//     Its formula is kept as an unevaluated hcl.Expression so that the
//     inspector can walk its syntax tree before any value exists.
//
//   - Kind: scalar variables compute one value per call; array variables
//     compute their whole series in a single evaluation and therefore may
//     not take part in a step-wise recursion.
//
//   - Dependency: a fact "caller calls callee with argument K at periods P".
//     Dependencies are derived, never declared, and are discarded once the
//     graph they feed has been built.
//
// Why keep HCL expressions here?
//
// The loader is the only component that understands the file format. Every
// later stage (inspector, scheduler, evaluator) needs the formula twice: once
// as a tree to analyse, once as something to evaluate. hcl.Expression serves
// both without a second representation.
package model
