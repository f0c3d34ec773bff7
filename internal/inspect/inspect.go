package inspect

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/cashgridgo/internal/model"
	"github.com/specialistvlad/cashgridgo/internal/period"
)

// Finding is one call to a known variable found in a formula.
type Finding struct {
	Callee   string
	Argument model.ArgumentKind
	Periods  period.Subset
	Range    hcl.Range
}

// Inspect walks the formula of the variable named caller and returns a
// Finding for every call whose name is in known, in source order.
func Inspect(caller string, formula hcl.Expression, known model.Names, tMax int) ([]Finding, error) {
	expr, ok := formula.(hclsyntax.Expression)
	if !ok {
		return nil, &UnsupportedFormulaError{Caller: caller}
	}

	t := buildTree(expr)
	var findings []Finding
	for i, tn := range t.nodes {
		call, ok := tn.node.(*hclsyntax.FunctionCallExpr)
		if !ok || !known.Has(call.Name) {
			continue
		}
		if len(call.Args) != 1 || call.ExpandFinal {
			return nil, &MalformedCallError{
				Caller: caller,
				Callee: call.Name,
				Args:   len(call.Args),
				Range:  call.Range(),
			}
		}

		periods := period.Full(tMax)
		for _, g := range t.ancestors(i, isConditional) {
			periods = periods.Intersect(guardSubset(g.(*hclsyntax.ConditionalExpr).Condition, tMax))
		}

		findings = append(findings, Finding{
			Callee:   call.Name,
			Argument: classifyArgument(call.Args[0]),
			Periods:  periods,
			Range:    call.Range(),
		})
	}
	return findings, nil
}

func isConditional(n hclsyntax.Node) bool {
	_, ok := n.(*hclsyntax.ConditionalExpr)
	return ok
}
