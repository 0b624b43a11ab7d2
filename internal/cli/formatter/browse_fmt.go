package formatter

import (
	"fmt"
	"strings"

	"github.com/momentumhq/momentum/internal/app"
)

// FormatBrowse renders every activity at its effective placement, grouped
// under its phase. Reassigned activities are marked with their original phase.
func FormatBrowse(v *app.BrowseView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s MH earned of %s\n\n", Bold(v.Project.Name), FormatMH(v.Totals.EarnedMH), FormatMH(v.Totals.TotalMH))

	headers := []string{"ID", "PHASE", "DESCRIPTION", "TYPE", "QTY", "DONE", "UNIT", "MH", "EARNED", "%"}
	rows := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		phase := r.WBSCode + "/" + r.PhaseCode
		if r.IsOverridden {
			phase += StylePurple.Render(" ← " + r.OriginalPhaseCode)
		}
		mh, earned := Dim("--"), Dim("--")
		if r.LaborBearing {
			mh, earned = FormatMH(r.TotalMH), FormatMH(r.EarnedMH)
		}
		rows = append(rows, []string{
			TruncID(r.ActivityID),
			phase,
			r.Description,
			Dim(string(r.Type)),
			FormatQty(r.Quantity),
			FormatQty(r.CompletedQty),
			r.Unit,
			mh,
			earned,
			fmt.Sprintf("%d", r.PercentComplete),
		})
	}
	b.WriteString(RenderTable(headers, rows,
		AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignLeft, AlignRight, AlignRight, AlignRight))
	return b.String()
}
