package scheduler

import (
	"fmt"

	"github.com/specialistvlad/cashgridgo/internal/builder"
	"github.com/specialistvlad/cashgridgo/internal/model"
	"github.com/specialistvlad/cashgridgo/internal/nodeid"
)

// Violation is a period-level dependency the plan visits in the wrong
// order: From is produced after To needs it.
type Violation struct {
	From nodeid.Address
	To   nodeid.Address
}

func (v Violation) String() string {
	return fmt.Sprintf("%s is needed by %s but is evaluated later", v.From, v.To)
}

// VisitOrder returns the sequence of cells a step-by-step evaluator visits
// when following the plan. Array variables produce their whole series at
// one step.
func VisitOrder(p *Plan) [][]nodeid.Address {
	var steps [][]nodeid.Address
	for _, g := range p.Groups() {
		if g.Cycle {
			for _, t := range Periods(p.tMax, g.Direction) {
				for _, e := range g.Entries {
					steps = append(steps, []nodeid.Address{nodeid.New(e.Variable, t)})
				}
			}
			continue
		}
		for _, e := range g.Entries {
			if e.Kind == model.KindArray {
				step := make([]nodeid.Address, 0, p.tMax+1)
				for t := 0; t <= p.tMax; t++ {
					step = append(step, nodeid.New(e.Variable, t))
				}
				steps = append(steps, step)
				continue
			}
			for t := 0; t <= p.tMax; t++ {
				steps = append(steps, []nodeid.Address{nodeid.New(e.Variable, t)})
			}
		}
	}
	return steps
}

// Periods lists 0..tMax in the given direction.
func Periods(tMax int, d model.Direction) []int {
	out := make([]int, 0, tMax+1)
	for i := 0; i <= tMax; i++ {
		if d == model.Backward {
			out = append(out, tMax-i)
		} else {
			out = append(out, i)
		}
	}
	return out
}

// VerifyOrder checks every edge of the expanded period graph against the
// visiting order of the plan and reports the edges whose source is visited
// after their target. A lazily memoising evaluator still computes such
// models correctly; the violations are diagnostics.
func VerifyOrder(p *Plan) ([]Violation, error) {
	vars := make([]*model.Variable, 0, p.Len())
	for _, e := range p.entries {
		vars = append(vars, &model.Variable{Name: e.Variable, Kind: e.Kind})
	}
	g, err := builder.PeriodGraph(vars, p.deps, p.tMax)
	if err != nil {
		return nil, err
	}

	rank := make(map[string]int, g.Len())
	for i, step := range VisitOrder(p) {
		for _, addr := range step {
			rank[addr.String()] = i
		}
	}

	var violations []Violation
	for _, to := range g.Nodes() {
		deps, err := g.Dependencies(to)
		if err != nil {
			return nil, err
		}
		for _, from := range deps {
			if rank[from] <= rank[to] {
				continue
			}
			fromAddr, err := nodeid.Parse(from)
			if err != nil {
				return nil, err
			}
			toAddr, err := nodeid.Parse(to)
			if err != nil {
				return nil, err
			}
			violations = append(violations, Violation{From: fromAddr, To: toAddr})
		}
	}
	return violations, nil
}
