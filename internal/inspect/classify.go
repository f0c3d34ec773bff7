package inspect

import (
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/cashgridgo/internal/model"
	"github.com/specialistvlad/cashgridgo/internal/period"
	"github.com/zclconf/go-cty/cty"
)

// unwrap strips any number of enclosing parentheses.
func unwrap(expr hclsyntax.Expression) hclsyntax.Expression {
	for {
		p, ok := expr.(*hclsyntax.ParenthesesExpr)
		if !ok {
			return expr
		}
		expr = p.Expression
	}
}

// isTimeIndex reports whether expr is the bare time index identifier.
func isTimeIndex(expr hclsyntax.Expression) bool {
	st, ok := unwrap(expr).(*hclsyntax.ScopeTraversalExpr)
	return ok && len(st.Traversal) == 1 && st.Traversal.RootName() == model.TimeIndex
}

// numberLiteral returns the value of a known, non-null number literal.
func numberLiteral(expr hclsyntax.Expression) (float64, bool) {
	lit, ok := unwrap(expr).(*hclsyntax.LiteralValueExpr)
	if !ok || !lit.Val.IsKnown() || lit.Val.IsNull() || lit.Val.Type() != cty.Number {
		return 0, false
	}
	f, _ := lit.Val.AsBigFloat().Float64()
	return f, true
}

// classifyArgument maps a call argument to its ArgumentKind. Only t, t + 1
// and t - 1 are recognised.
func classifyArgument(arg hclsyntax.Expression) model.ArgumentKind {
	arg = unwrap(arg)
	if isTimeIndex(arg) {
		return model.ArgT
	}
	bin, ok := arg.(*hclsyntax.BinaryOpExpr)
	if !ok || !isTimeIndex(bin.LHS) {
		return model.ArgNone
	}
	if v, ok := numberLiteral(bin.RHS); !ok || v != 1 {
		return model.ArgNone
	}
	switch bin.Op {
	case hclsyntax.OpAdd:
		return model.ArgNext
	case hclsyntax.OpSubtract:
		return model.ArgPrev
	}
	return model.ArgNone
}

// guardSubset returns the periods admitted by a conditional's test. A test
// that is not `t <compare> number` admits every period.
func guardSubset(cond hclsyntax.Expression, tMax int) period.Subset {
	bin, ok := unwrap(cond).(*hclsyntax.BinaryOpExpr)
	if !ok || !isTimeIndex(bin.LHS) {
		return period.Full(tMax)
	}
	v, ok := numberLiteral(bin.RHS)
	if !ok {
		return period.Full(tMax)
	}

	var pred func(p float64) bool
	switch bin.Op {
	case hclsyntax.OpEqual:
		pred = func(p float64) bool { return p == v }
	case hclsyntax.OpNotEqual:
		pred = func(p float64) bool { return p != v }
	case hclsyntax.OpLessThan:
		pred = func(p float64) bool { return p < v }
	case hclsyntax.OpLessThanOrEqual:
		pred = func(p float64) bool { return p <= v }
	case hclsyntax.OpGreaterThan:
		pred = func(p float64) bool { return p > v }
	case hclsyntax.OpGreaterThanOrEqual:
		pred = func(p float64) bool { return p >= v }
	default:
		return period.Full(tMax)
	}
	return period.Where(tMax, func(p int) bool { return pred(float64(p)) })
}
