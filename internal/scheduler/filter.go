package scheduler

import (
	"sort"

	"github.com/specialistvlad/cashgridgo/internal/dag"
)

// FilterOutputs returns, sorted, the requested variables together with
// every variable they depend on directly or indirectly.
func FilterOutputs(g *dag.Graph, outputs []string) ([]string, error) {
	keep := make(map[string]struct{})
	for _, name := range outputs {
		if !g.HasNode(name) {
			return nil, &UnknownVariableError{Name: name}
		}
		keep[name] = struct{}{}

		ancestors, err := g.Ancestors(name)
		if err != nil {
			return nil, err
		}
		for _, a := range ancestors {
			keep[a] = struct{}{}
		}
	}

	retained := make([]string, 0, len(keep))
	for name := range keep {
		retained = append(retained, name)
	}
	sort.Strings(retained)
	return retained, nil
}
