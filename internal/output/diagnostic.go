package output

import (
	"strconv"
	"time"

	"github.com/specialistvlad/cashgridgo/internal/scheduler"
)

// DiagnosticHeader is the header of the diagnostic table.
var DiagnosticHeader = []string{"variable", "calc_order", "cycle_order", "cycle", "direction", "kind", "runtime"}

// Diagnostic renders one row per scheduled variable in plan order. runtime
// is reported in seconds.
func Diagnostic(plan *scheduler.Plan, runtime map[string]time.Duration) *Table {
	t := &Table{Header: DiagnosticHeader}
	for _, e := range plan.Entries() {
		t.Rows = append(t.Rows, []string{
			e.Variable,
			strconv.Itoa(e.CalcOrder),
			strconv.Itoa(e.CycleOrder),
			strconv.FormatBool(e.Cycle),
			e.Direction.String(),
			e.Kind.String(),
			formatNumber(runtime[e.Variable].Seconds()),
		})
	}
	return t
}
