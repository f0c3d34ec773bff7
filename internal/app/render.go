package app

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/specialistvlad/cashgridgo/internal/scheduler"
)

var planHeader = []string{"CALC", "CYCLE", "VARIABLE", "KIND", "DIRECTION"}

// planStyles are bound to one writer so colour is only emitted to
// terminals.
type planStyles struct {
	header lipgloss.Style
	cycle  lipgloss.Style
	plain  lipgloss.Style
	muted  lipgloss.Style
}

func newPlanStyles(w io.Writer) planStyles {
	r := lipgloss.NewRenderer(w)
	return planStyles{
		header: r.NewStyle().Bold(true),
		cycle: r.NewStyle().Foreground(lipgloss.AdaptiveColor{
			Light: "#399ee6",
			Dark:  "#59c2ff",
		}),
		plain: r.NewStyle(),
		muted: r.NewStyle().Foreground(lipgloss.AdaptiveColor{
			Light: "#828c99",
			Dark:  "#6c7680",
		}),
	}
}

// renderPlan writes the plan as an aligned table, one row per variable.
// Members of a cycle are highlighted.
func renderPlan(w io.Writer, plan *scheduler.Plan) error {
	st := newPlanStyles(w)
	entries := plan.Entries()

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		cycle := "-"
		if e.Cycle {
			cycle = strconv.Itoa(e.CycleOrder)
		}
		rows = append(rows, []string{strconv.Itoa(e.CalcOrder), cycle, e.Variable, e.Kind.String(), e.Direction.String()})
	}

	widths := make([]int, len(planHeader))
	for i, h := range planHeader {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	line := func(style lipgloss.Style, cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = c + strings.Repeat(" ", widths[i]-len(c))
		}
		return style.Render(strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	var b strings.Builder
	b.WriteString(line(st.header, planHeader))
	b.WriteByte('\n')
	for i, row := range rows {
		style := st.plain
		if entries[i].Cycle {
			style = st.cycle
		}
		b.WriteString(line(style, row))
		b.WriteByte('\n')
	}
	b.WriteString(st.muted.Render(strconv.Itoa(len(entries)) + " variables, t_max " + strconv.Itoa(plan.TMax())))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}
