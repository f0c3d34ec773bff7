package inspect

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// root is the parent index of the outermost node.
const root = -1

type treeNode struct {
	node   hclsyntax.Node
	parent int
}

// tree is a flattened syntax tree with parent back-references.
type tree struct {
	nodes []treeNode
}

// treeBuilder is an hclsyntax.Walker appending every visited node to the
// arena. The stack holds the indexes of the nodes currently entered.
type treeBuilder struct {
	t     *tree
	stack []int
}

func (b *treeBuilder) Enter(n hclsyntax.Node) hcl.Diagnostics {
	parent := root
	if len(b.stack) > 0 {
		parent = b.stack[len(b.stack)-1]
	}
	b.t.nodes = append(b.t.nodes, treeNode{node: n, parent: parent})
	b.stack = append(b.stack, len(b.t.nodes)-1)
	return nil
}

func (b *treeBuilder) Exit(hclsyntax.Node) hcl.Diagnostics {
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func buildTree(expr hclsyntax.Expression) *tree {
	t := &tree{}
	hclsyntax.Walk(expr, &treeBuilder{t: t})
	return t
}

// ancestors returns the nodes enclosing index i that satisfy match,
// innermost first.
func (t *tree) ancestors(i int, match func(hclsyntax.Node) bool) []hclsyntax.Node {
	var out []hclsyntax.Node
	for p := t.nodes[i].parent; p != root; p = t.nodes[p].parent {
		if match(t.nodes[p].node) {
			out = append(out, t.nodes[p].node)
		}
	}
	return out
}
