// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Variable, the unit of definition and scheduling.
package model

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
)

// TimeIndex is the identifier formulas use for the current period.
const TimeIndex = "t"

// TMaxName is the identifier bound to the last calculation period during
// evaluation.
const TMaxName = "t_max"

// IsReserved reports whether name may not be used for a variable or constant.
func IsReserved(name string) bool {
	return name == TimeIndex || name == TMaxName
}

// Kind distinguishes per-step variables from whole-series variables.
type Kind int

const (
	// KindScalar variables yield one number per period.
	KindScalar Kind = iota
	// KindArray variables yield their full series in one evaluation.
	KindArray
)

func (k Kind) String() string {
	if k == KindArray {
		return "array"
	}
	return "scalar"
}

// MarshalText renders the kind for JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Variable is the format-agnostic representation of a `variable` block.
type Variable struct {
	Name        string
	Description string
	Kind        Kind
	// Formula is the unevaluated defining expression.
	Formula hcl.Expression
	// DeclRange points at the formula in its source file.
	DeclRange hcl.Range
}

// Names is a set of known variable names.
type Names map[string]struct{}

// NamesOf collects the names of vars.
func NamesOf(vars []*Variable) Names {
	names := make(Names, len(vars))
	for _, v := range vars {
		names[v.Name] = struct{}{}
	}
	return names
}

// Has reports whether name is in the set.
func (n Names) Has(name string) bool {
	_, ok := n[name]
	return ok
}

// Sorted returns the members in ascending order.
func (n Names) Sorted() []string {
	out := make([]string, 0, len(n))
	for name := range n {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ByName indexes vars by name.
func ByName(vars []*Variable) map[string]*Variable {
	idx := make(map[string]*Variable, len(vars))
	for _, v := range vars {
		idx[v.Name] = v
	}
	return idx
}
