package scheduler

import (
	"context"

	"github.com/specialistvlad/cashgridgo/internal/ctxlog"
	"github.com/specialistvlad/cashgridgo/internal/model"
)

// resolveDirection picks the sweep direction of a cycle from the calls its
// members make to each other. Backward wins only when t + 1 calls strictly
// outnumber t - 1 calls.
func (s *run) resolveDirection(ctx context.Context, members []string) model.Direction {
	in := make(model.Names, len(members))
	for _, name := range members {
		in[name] = struct{}{}
	}

	prev, next := 0, 0
	for _, d := range s.deps {
		if !in.Has(d.Caller) || !in.Has(d.Callee) {
			continue
		}
		switch d.Argument {
		case model.ArgPrev:
			prev++
		case model.ArgNext:
			next++
		}
	}

	if prev > 0 && next > 0 {
		ctxlog.FromContext(ctx).Warn("Cycle refers to both previous and next periods.",
			"variables", members, "t-1", prev, "t+1", next)
	}
	if next > prev {
		return model.Backward
	}
	return model.Forward
}
