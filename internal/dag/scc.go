package dag

import (
	"sort"
)

// StronglyConnected partitions the graph into strongly connected components
// using an iterative form of Tarjan's algorithm. Members of each component
// are sorted, and components are ordered by their first member. Every node
// belongs to exactly one component; singletons are included.
func (g *Graph) StronglyConnected() [][]string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	index := 0
	nodeIndex := make(map[string]int)
	nodeLowLink := make(map[string]int)
	onStack := make(map[string]bool)
	sccStack := make([]string, 0)
	sccs := make([][]string, 0)

	// callFrame replaces the recursive call stack so deep period graphs
	// cannot overflow it.
	type callFrame struct {
		nodeID    string
		edges     []string
		edgeIndex int
		childID   string
		phase     int // 0=init, 1=process edges, 2=post-child, 3=finalize
	}

	strongConnect := func(startID string) {
		callStack := []callFrame{{nodeID: startID}}

		for len(callStack) > 0 {
			frame := &callStack[len(callStack)-1]

			switch frame.phase {
			case 0:
				nodeIndex[frame.nodeID] = index
				nodeLowLink[frame.nodeID] = index
				index++
				sccStack = append(sccStack, frame.nodeID)
				onStack[frame.nodeID] = true
				frame.edges = sortedIDs(g.nodes[frame.nodeID].dependents)
				frame.phase = 1

			case 1:
				pushed := false
				for frame.edgeIndex < len(frame.edges) {
					toID := frame.edges[frame.edgeIndex]
					frame.edgeIndex++

					if _, visited := nodeIndex[toID]; !visited {
						frame.phase = 2
						frame.childID = toID
						callStack = append(callStack, callFrame{nodeID: toID})
						pushed = true
						break
					} else if onStack[toID] && nodeIndex[toID] < nodeLowLink[frame.nodeID] {
						nodeLowLink[frame.nodeID] = nodeIndex[toID]
					}
				}
				if !pushed {
					frame.phase = 3
				}

			case 2:
				if nodeLowLink[frame.childID] < nodeLowLink[frame.nodeID] {
					nodeLowLink[frame.nodeID] = nodeLowLink[frame.childID]
				}
				frame.phase = 1

			case 3:
				if nodeLowLink[frame.nodeID] == nodeIndex[frame.nodeID] {
					scc := make([]string, 0)
					for {
						w := sccStack[len(sccStack)-1]
						sccStack = sccStack[:len(sccStack)-1]
						onStack[w] = false
						scc = append(scc, w)
						if w == frame.nodeID {
							break
						}
					}
					sort.Strings(scc)
					sccs = append(sccs, scc)
				}
				callStack = callStack[:len(callStack)-1]
			}
		}
	}

	for _, id := range sortedIDs(g.nodes) {
		if _, visited := nodeIndex[id]; !visited {
			strongConnect(id)
		}
	}

	sort.Slice(sccs, func(i, j int) bool { return sccs[i][0] < sccs[j][0] })
	return sccs
}

// IsCyclic reports whether a component returned by StronglyConnected
// contains a cycle: it has more than one member or its only member
// depends on itself.
func (g *Graph) IsCyclic(component []string) bool {
	if len(component) > 1 {
		return true
	}
	return len(component) == 1 && g.HasSelfLoop(component[0])
}

// SimpleCycles enumerates the elementary cycles among the given members,
// stopping after limit cycles when limit is positive. Each cycle starts at
// its smallest member. The search is exponential in the worst case and is
// meant for diagnostics on a single, small component.
func (g *Graph) SimpleCycles(members []string, limit int) [][]string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	in := make(map[string]bool, len(members))
	for _, id := range members {
		if _, ok := g.nodes[id]; ok {
			in[id] = true
		}
	}
	ordered := make([]string, 0, len(in))
	for id := range in {
		ordered = append(ordered, id)
	}
	sort.Strings(ordered)

	var cycles [][]string
	full := func() bool { return limit > 0 && len(cycles) >= limit }

	for _, start := range ordered {
		path := []string{start}
		onPath := map[string]bool{start: true}

		var walk func(id string)
		walk = func(id string) {
			for _, next := range sortedIDs(g.nodes[id].dependents) {
				if full() {
					return
				}
				switch {
				case next == start:
					cycles = append(cycles, append([]string(nil), path...))
				case in[next] && next > start && !onPath[next]:
					onPath[next] = true
					path = append(path, next)
					walk(next)
					path = path[:len(path)-1]
					delete(onPath, next)
				}
			}
		}
		walk(start)
		if full() {
			break
		}
	}
	return cycles
}
