// Package dag provides the directed dependency graph shared by the analysis
// passes. Nodes are identified by string IDs: variable names for the
// whole-model and cycle-local graphs, and `name[period]` addresses for the
// expanded period graph. An edge from A to B means B depends on A.
//
// Despite the name, a Graph may contain cycles, including self-loops. The
// scheduler relies on StronglyConnected to isolate them.
package dag
