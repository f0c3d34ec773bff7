// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the dependency facts derived from formulas, and the
// evaluation direction assigned to scheduled groups.
package model

import (
	"fmt"

	"github.com/specialistvlad/cashgridgo/internal/period"
)

// ArgumentKind classifies the time argument of a call to a model variable.
type ArgumentKind int

const (
	// ArgNone marks an argument that could not be classified. The caller is
	// then assumed to need the callee at every period.
	ArgNone ArgumentKind = iota
	// ArgT is a same-period call, f(t).
	ArgT
	// ArgPrev is a previous-period call, f(t - 1).
	ArgPrev
	// ArgNext is a next-period call, f(t + 1).
	ArgNext
)

func (k ArgumentKind) String() string {
	switch k {
	case ArgT:
		return "t"
	case ArgPrev:
		return "t-1"
	case ArgNext:
		return "t+1"
	default:
		return "none"
	}
}

// MarshalText renders the kind for JSON and YAML output.
func (k ArgumentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Dependency records that Caller calls Callee with Argument at Periods.
type Dependency struct {
	Caller   string
	Callee   string
	Argument ArgumentKind
	Periods  period.Subset
}

func (d Dependency) String() string {
	return fmt.Sprintf("%s -> %s(%s) at %s", d.Caller, d.Callee, d.Argument, d.Periods)
}

// Direction is the order in which a group's periods are evaluated.
type Direction int

const (
	// Forward evaluates t = 0..T_MAX.
	Forward Direction = iota
	// Backward evaluates t = T_MAX..0.
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// MarshalText renders the direction for JSON and YAML output.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
