package formatter

import (
	"fmt"
	"strings"

	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/domain"
)

// FormatProjectList renders one line per project with its overall progress.
func FormatProjectList(summaries []app.ProjectSummary) string {
	headers := []string{"ID", "JOB", "NAME", "STATUS", "EARNED / TOTAL MH", "PROGRESS"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			TruncID(s.Project.ID),
			s.Project.DisplayID(),
			s.Project.Name,
			StatusPill(s.Project.Status),
			FormatMH(s.EarnedMH) + " / " + FormatMH(s.TotalMH),
			RenderProgress(s.PercentComplete, 12),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProjectHeader renders the descriptive fields of a project.
func FormatProjectHeader(p *domain.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(p.Name), StatusPill(p.Status))
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s\n",
		Dim("Job"), orDash(p.JobNumber),
		Dim("Proposal"), orDash(p.ProposalNumber),
		Dim("ID"), TruncID(p.ID))
	if p.Owner != "" || p.Location != "" {
		fmt.Fprintf(&b, "%s %s  %s %s\n", Dim("Owner"), orDash(p.Owner), Dim("Location"), orDash(p.Location))
	}
	if p.LastEntryDate != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Last entry"), p.LastEntryDate.Format("2006-01-02"))
	}
	return b.String()
}

// FormatProjectWBS renders the WBS and phase roll-up of a project.
func FormatProjectWBS(v *app.ProjectWBSView) string {
	var b strings.Builder
	b.WriteString(RenderBox(strings.TrimRight(FormatProjectHeader(v.Project), "\n")))
	b.WriteString("\n" + ProgressIndicator(v.Totals.Status) + "\n\n")

	headers := []string{"CODE", "NAME", "TOTAL MH", "EARNED MH", "REMAINING", "PROGRESS"}
	rows := [][]string{levelRow("", v.Totals, true)}
	for _, w := range v.WBS {
		rows = append(rows, levelRow("", w.LevelSummary, true))
		for _, ph := range w.Phases {
			rows = append(rows, levelRow("  ", ph.LevelSummary, false))
		}
	}
	b.WriteString(RenderTable(headers, rows, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight))
	return b.String()
}

func levelRow(indent string, l app.LevelSummary, bold bool) []string {
	code, name := indent+l.Code, l.Name
	if bold {
		code, name = Bold(code), Bold(name)
	}
	return []string{
		code,
		name,
		FormatMH(l.TotalMH),
		FormatMH(l.EarnedMH),
		FormatMH(l.RemainingMH),
		RenderProgress(l.PercentComplete, 10),
	}
}
