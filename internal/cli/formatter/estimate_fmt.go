package formatter

import (
	"fmt"
	"strings"

	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/repository"
)

// FormatProposalList renders imported estimates and whether a project tracks them.
func FormatProposalList(listings []repository.ProposalListing) string {
	headers := []string{"ID", "PROPOSAL", "JOB", "NAME", "ACTIVITIES", "PROJECT"}
	rows := make([][]string, 0, len(listings))
	for _, l := range listings {
		tracked := Dim("untracked")
		if l.ProjectID != "" {
			tracked = StyleGreen.Render(TruncID(l.ProjectID))
		}
		rows = append(rows, []string{
			TruncID(l.Proposal.ID),
			l.Proposal.ProposalNumber,
			orDash(l.Proposal.JobNumber),
			l.Proposal.Name,
			fmt.Sprintf("%d", l.ActivityCount),
			tracked,
		})
	}
	return RenderTable(headers, rows, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight)
}

// FormatImportResult summarizes a persisted estimate.
func FormatImportResult(r *app.EstimateImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %s %s [%s]\n", r.Proposal.ProposalNumber, Bold(r.Proposal.Name), TruncID(r.Proposal.ID))
	fmt.Fprintf(&b, "  %s, %s, %s, %s MH\n",
		Count(r.WBSCount, "WBS item"),
		Count(r.PhaseCount, "phase"),
		Count(r.ActivityCount, "activity"),
		FormatMH(r.LaborMH))
	return b.String()
}
