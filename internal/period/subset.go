package period

import (
	"fmt"
	"strings"
)

// Subset is an immutable set of periods in the closed range [0, TMax].
// The zero value is an empty subset over an empty range.
type Subset struct {
	members []bool
}

// Full returns the subset containing every period in [0, tMax].
func Full(tMax int) Subset {
	return Where(tMax, func(int) bool { return true })
}

// Empty returns the subset over [0, tMax] that contains no period.
func Empty(tMax int) Subset {
	return Where(tMax, func(int) bool { return false })
}

// Where returns the subset of [0, tMax] whose periods satisfy pred.
func Where(tMax int, pred func(p int) bool) Subset {
	if tMax < 0 {
		return Subset{}
	}
	members := make([]bool, tMax+1)
	for p := range members {
		members[p] = pred(p)
	}
	return Subset{members: members}
}

// Of returns the subset of [0, tMax] holding the listed periods. Periods
// outside the range are ignored.
func Of(tMax int, periods ...int) Subset {
	set := make(map[int]bool, len(periods))
	for _, p := range periods {
		set[p] = true
	}
	return Where(tMax, func(p int) bool { return set[p] })
}

// TMax reports the upper bound of the range the subset is defined over.
func (s Subset) TMax() int {
	return len(s.members) - 1
}

// Contains reports whether p belongs to the subset.
func (s Subset) Contains(p int) bool {
	return p >= 0 && p < len(s.members) && s.members[p]
}

// Len returns the number of periods in the subset.
func (s Subset) Len() int {
	n := 0
	for _, in := range s.members {
		if in {
			n++
		}
	}
	return n
}

// IsFull reports whether the subset holds every period of its range.
func (s Subset) IsFull() bool {
	return s.Len() == len(s.members)
}

// Periods returns the members in ascending order.
func (s Subset) Periods() []int {
	out := make([]int, 0, len(s.members))
	for p, in := range s.members {
		if in {
			out = append(out, p)
		}
	}
	return out
}

// Intersect returns the periods present in both s and o. The result is
// defined over the smaller of the two ranges.
func (s Subset) Intersect(o Subset) Subset {
	tMax := min(s.TMax(), o.TMax())
	return Where(tMax, func(p int) bool { return s.Contains(p) && o.Contains(p) })
}

// Equal reports whether both subsets share the same range and members.
func (s Subset) Equal(o Subset) bool {
	if len(s.members) != len(o.members) {
		return false
	}
	for p := range s.members {
		if s.members[p] != o.members[p] {
			return false
		}
	}
	return true
}

// String renders the subset as compact ranges, e.g. "{0-4,6,9-12}".
func (s Subset) String() string {
	var parts []string
	periods := s.Periods()
	for i := 0; i < len(periods); {
		j := i
		for j+1 < len(periods) && periods[j+1] == periods[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, fmt.Sprintf("%d", periods[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", periods[i], periods[j]))
		}
		i = j + 1
	}
	return "{" + strings.Join(parts, ",") + "}"
}
