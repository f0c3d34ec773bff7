package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/cashgridgo/internal/ctxlog"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. The HCL decoder populates omitted optional expression fields with
// zero-width expressions, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", r.String(),
		"is_defined", defined,
	)
	return defined
}

func errorDiag(summary, detail string, subject hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  subject.Ptr(),
	}
}

// requireExpr reports a missing attribute of a block.
func requireExpr(ctx context.Context, expr hcl.Expression, attrName, block string) *hcl.Diagnostic {
	if isExprDefined(ctx, expr, attrName) {
		return nil
	}
	var rng hcl.Range
	if expr != nil {
		rng = expr.Range()
	}
	return errorDiag("Missing required argument",
		fmt.Sprintf("The argument %q is required in %s.", attrName, block), rng)
}

// diagnosticsError reports every diagnostic, one per line.
type diagnosticsError struct {
	diags hcl.Diagnostics
}

func (e *diagnosticsError) Error() string {
	lines := make([]string, 0, len(e.diags))
	for _, d := range e.diags {
		lines = append(lines, d.Error())
	}
	return strings.Join(lines, "\n")
}

func (e *diagnosticsError) Unwrap() error {
	return e.diags
}
