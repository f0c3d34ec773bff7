package dag

import (
	"fmt"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[id]; ok {
		return
	}

	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. A self-referential
// edge is allowed and records a node that depends on itself. An error is
// returned if either node does not exist.
func (g *Graph) AddEdge(fromID, toID string) error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}

	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode

	return nil
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether toID depends directly on fromID.
func (g *Graph) HasEdge(fromID, toID string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[toID]
	if !ok {
		return false
	}
	_, ok = n.deps[fromID]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return len(g.nodes)
}

// EdgeCount returns the number of edges, self-loops included.
func (g *Graph) EdgeCount() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n := 0
	for _, nd := range g.nodes {
		n += len(nd.deps)
	}
	return n
}

// Nodes returns every node ID in ascending order.
func (g *Graph) Nodes() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return sortedIDs(g.nodes)
}

// Dependencies returns the sorted IDs of the nodes the given node depends on.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedIDs(n.deps), nil
}

// Dependents returns the sorted IDs of the nodes that depend on the given node.
func (g *Graph) Dependents(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedIDs(n.dependents), nil
}

// HasSelfLoop reports whether the node depends on itself.
func (g *Graph) HasSelfLoop(id string) bool {
	return g.HasEdge(id, id)
}

// Roots returns, in ascending order, the nodes with no remaining
// dependencies. A node with a self-loop is never a root.
func (g *Graph) Roots() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var roots []string
	for _, id := range sortedIDs(g.nodes) {
		if len(g.nodes[id].deps) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// RemoveNodes deletes the given nodes and every edge touching them.
// Unknown IDs are ignored.
func (g *Graph) RemoveNodes(ids ...string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	for _, id := range ids {
		n, ok := g.nodes[id]
		if !ok {
			continue
		}
		for depID, dep := range n.deps {
			if depID != id {
				delete(dep.dependents, id)
			}
		}
		for depID, dependent := range n.dependents {
			if depID != id {
				delete(dependent.deps, id)
			}
		}
		delete(g.nodes, id)
	}
}

// Ancestors returns, in ascending order, every node from which the given
// node is reachable. The node itself is included only when it lies on a
// cycle.
func (g *Graph) Ancestors(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	start, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	seen := make(map[string]*node)
	queue := []*node{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for depID, dep := range n.deps {
			if _, ok := seen[depID]; ok {
				continue
			}
			seen[depID] = dep
			queue = append(queue, dep)
		}
	}
	return sortedIDs(seen), nil
}

// Subgraph returns a new graph holding the given nodes and the edges among
// them. Unknown IDs are ignored.
func (g *Graph) Subgraph(ids []string) *Graph {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	keep := make(map[string]bool, len(ids))
	sub := New()
	for _, id := range ids {
		if _, ok := g.nodes[id]; ok {
			keep[id] = true
			sub.AddNode(id)
		}
	}
	for id := range keep {
		for depID := range g.nodes[id].deps {
			if keep[depID] {
				// Both ends were added above.
				_ = sub.AddEdge(depID, id)
			}
		}
	}
	return sub
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, indicating the first node involved in the detected cycle.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Use classic depth-first search with three sets of nodes:
	// permanent: nodes that have been fully visited and are not part of a cycle.
	// temporary: nodes currently in the recursion stack for the current traversal.
	// unvisited: all other nodes.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil // Already visited and known to be safe.
		}
		if temporary[n.id] {
			// We've hit a node that's already in our recursion stack, so we have a cycle.
			return fmt.Errorf("cycle detected involving node '%s'", n.id)
		}

		temporary[n.id] = true

		for _, id := range sortedIDs(n.dependents) {
			if err := visit(n.dependents[id]); err != nil {
				return err // Propagate the error up.
			}
		}

		// All dependents have been visited, so we can move this node from temporary to permanent.
		delete(temporary, n.id)
		permanent[n.id] = true

		return nil
	}

	// Visit every node in the graph.
	for _, id := range sortedIDs(g.nodes) {
		if !permanent[id] {
			if err := visit(g.nodes[id]); err != nil {
				return err
			}
		}
	}

	return nil
}
