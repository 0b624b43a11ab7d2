package formatter

import (
	"fmt"
	"strings"

	"github.com/momentumhq/momentum/internal/app"
)

// FormatWeekly renders week-ending totals followed by per-activity
// quantities, one column per week.
func FormatWeekly(v *app.WeeklyView) string {
	if len(v.WeekEndings) == 0 {
		return "No entries recorded.\n"
	}

	var b strings.Builder
	b.WriteString(Header("Weekly progress") + "\n")
	totals := make([][]string, 0, len(v.Totals))
	for _, t := range v.Totals {
		totals = append(totals, []string{
			t.WeekEnding,
			fmt.Sprintf("%d", t.EntryCount),
			FormatMH(t.EarnedMH),
			FormatMH(t.CumulativeMH),
			RenderProgress(t.PercentComplete, 10),
		})
	}
	b.WriteString(RenderTable([]string{"WEEK ENDING", "ENTRIES", "EARNED MH", "CUMULATIVE", "OF " + FormatMH(v.TotalMH) + " MH"}, totals,
		AlignLeft, AlignRight, AlignRight, AlignRight))

	b.WriteString("\n" + Header("By activity") + "\n")
	headers := append([]string{"PHASE", "DESCRIPTION", "UNIT"}, v.WeekEndings...)
	headers = append(headers, "TOTAL")
	align := []Alignment{AlignLeft, AlignLeft, AlignLeft}
	for range v.WeekEndings {
		align = append(align, AlignRight)
	}
	align = append(align, AlignRight)

	rows := make([][]string, 0, len(v.Activities))
	for _, a := range v.Activities {
		row := []string{a.WBSCode + "/" + a.PhaseCode, a.Description, a.Unit}
		for _, w := range v.WeekEndings {
			if q, ok := a.Weeks[w]; ok {
				row = append(row, FormatQty(q))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, append(row, Bold(FormatQty(a.Total))))
	}
	b.WriteString(RenderTable(headers, rows, align...))
	return b.String()
}
