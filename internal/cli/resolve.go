package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/momentumhq/momentum/internal/app"
)

// matchID resolves input against candidate IDs: an exact match wins,
// otherwise the input must be a prefix of exactly one ID.
func matchID(kind, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// resolveProjectID accepts a job number (case-insensitive), a full UUID or
// a unique UUID prefix.
func resolveProjectID(ctx context.Context, a *App, input string) (string, error) {
	projects, err := a.Projects.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		if p.JobNumber != "" && strings.EqualFold(p.JobNumber, input) {
			return p.ID, nil
		}
		ids = append(ids, p.ID)
	}
	return matchID("project", input, ids)
}

// resolveProposalID accepts a proposal number, a full UUID or a unique prefix.
func resolveProposalID(ctx context.Context, a *App, input string) (string, error) {
	listings, err := a.Estimates.ListProposals(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		if strings.EqualFold(l.Proposal.ProposalNumber, input) {
			return l.Proposal.ID, nil
		}
		ids = append(ids, l.Proposal.ID)
	}
	return matchID("proposal", input, ids)
}

func resolveActivityID(view *app.BrowseView, input string) (string, error) {
	ids := make([]string, len(view.Rows))
	for i, r := range view.Rows {
		ids[i] = r.ActivityID
	}
	return matchID("activity", input, ids)
}

// resolvePhaseID accepts a phase code when it is unique across the project,
// a WBS/phase code pair, or an ID prefix.
func resolvePhaseID(view *app.BrowseView, input string) (string, error) {
	var byCode []string
	ids := make([]string, len(view.Phases))
	for i, ph := range view.Phases {
		ids[i] = ph.ID
		if strings.EqualFold(ph.Code, input) {
			byCode = append(byCode, ph.ID)
		}
	}
	if wbsCode, phaseCode, ok := strings.Cut(input, "/"); ok {
		for _, w := range view.WBS {
			if !strings.EqualFold(w.Code, wbsCode) {
				continue
			}
			for _, ph := range view.Phases {
				if ph.WBSID == w.ID && strings.EqualFold(ph.Code, phaseCode) {
					return ph.ID, nil
				}
			}
		}
	}
	switch len(byCode) {
	case 1:
		return byCode[0], nil
	case 0:
		return matchID("phase", input, ids)
	default:
		return "", fmt.Errorf("phase code %q exists under %d WBS items; use WBS/PHASE", input, len(byCode))
	}
}

func rowByID(view *app.BrowseView, id string) *app.BrowseRow {
	for i := range view.Rows {
		if view.Rows[i].ActivityID == id {
			return &view.Rows[i]
		}
	}
	return nil
}
