package formatter

import (
	"fmt"
	"strings"

	"github.com/momentumhq/momentum/internal/app"
)

// FormatDayEntries renders what was recorded on one date against the
// activity list. Activities without an entry are omitted.
func FormatDayEntries(date string, rows []app.BrowseRow, entries map[string]app.DayEntry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("No entries for %s.\n", date)
	}
	headers := []string{"ID", "DESCRIPTION", "QTY", "UNIT", "NOTES"}
	var out [][]string
	for _, r := range rows {
		e, ok := entries[r.ActivityID]
		if !ok {
			continue
		}
		out = append(out, []string{TruncID(r.ActivityID), r.Description, FormatQty(e.Quantity), r.Unit, Dim(e.Notes)})
	}
	return Header("Entries for "+date) + "\n" + RenderTable(headers, out, AlignLeft, AlignLeft, AlignRight)
}

// FormatSaveResult reports what a save batch changed.
func FormatSaveResult(r *app.SaveResult) string {
	parts := []string{
		fmt.Sprintf("%d created", r.Created),
		fmt.Sprintf("%d updated", r.Updated),
		fmt.Sprintf("%d deleted", r.Deleted),
	}
	if r.NoOps > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", r.NoOps))
	}
	line := fmt.Sprintf("Saved %s: %s", r.Date, strings.Join(parts, ", "))
	if r.Skipped > 0 {
		line += "\n" + StyleYellow.Render(fmt.Sprintf("Skipped %s not in this project", Count(r.Skipped, "activity")))
	}
	return line + "\n"
}

// FormatHistory renders recent entries grouped by date, newest first.
func FormatHistory(v *app.HistoryView) string {
	if len(v.Days) == 0 {
		return "No entries recorded.\n"
	}
	var b strings.Builder
	for _, d := range v.Days {
		fmt.Fprintf(&b, "%s  %s\n", StyleHeader.Render(d.Date), Dim(Count(len(d.Entries), "entry")))
		for _, e := range d.Entries {
			line := fmt.Sprintf("  %s %s %s", FormatQty(e.Quantity), e.Unit, e.Description)
			if e.EnteredBy != "" {
				line += Dim("  by " + e.EnteredBy)
			}
			if e.Notes != "" {
				line += Dim("  " + e.Notes)
			}
			b.WriteString(line + "\n")
		}
	}
	if v.HasMore {
		b.WriteString(Dim("… older entries exist; raise --limit to see more") + "\n")
	}
	return b.String()
}
