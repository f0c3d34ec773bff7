package dag

import (
	"fmt"
	"io"
	"strconv"
)

// WriteDOT renders the graph in Graphviz DOT format. Output is sorted, so
// the same graph always produces the same text.
func (g *Graph) WriteDOT(w io.Writer, name string) error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if _, err := fmt.Fprintf(w, "digraph %s {\n", strconv.Quote(name)); err != nil {
		return err
	}
	for _, id := range sortedIDs(g.nodes) {
		if _, err := fmt.Fprintf(w, "  %s;\n", strconv.Quote(id)); err != nil {
			return err
		}
	}
	for _, id := range sortedIDs(g.nodes) {
		for _, to := range sortedIDs(g.nodes[id].dependents) {
			if _, err := fmt.Fprintf(w, "  %s -> %s;\n", strconv.Quote(id), strconv.Quote(to)); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}
