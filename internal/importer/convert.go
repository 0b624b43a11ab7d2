package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/domain"
)

// Convert transforms a validated EstimateSchema into a domain estimate with
// fresh ids. Call ValidateEstimateSchema first; Convert assumes it is valid.
func Convert(schema *EstimateSchema) (*domain.Estimate, error) {
	now := time.Now().UTC()

	proposal := &domain.Proposal{
		ID:             uuid.New().String(),
		ProposalNumber: schema.Proposal.ProposalNumber,
		JobNumber:      schema.Proposal.JobNumber,
		Name:           schema.Proposal.Name,
		Owner:          schema.Proposal.Owner,
		Location:       schema.Proposal.Location,
		CreatedAt:      now,
	}
	est := &domain.Estimate{Proposal: proposal}

	wbsIDs := make(map[string]string, len(schema.WBS)) // ref -> UUID
	for i, w := range schema.WBS {
		item := &domain.WBSItem{
			ID:         uuid.New().String(),
			ProposalID: proposal.ID,
			Code:       w.Code,
			Name:       domain.CoalesceStr(w.Name, w.Code),
			SortOrder:  i + 1,
		}
		wbsIDs[w.Ref] = item.ID
		est.WBS = append(est.WBS, item)
	}

	phaseIDs := make(map[string]string, len(schema.Phases))
	for i, ph := range schema.Phases {
		wbsID, ok := wbsIDs[ph.WBSRef]
		if !ok {
			return nil, fmt.Errorf("wbs_ref %q not found for phase %q", ph.WBSRef, ph.Ref)
		}
		phase := &domain.Phase{
			ID:          uuid.New().String(),
			ProposalID:  proposal.ID,
			WBSID:       wbsID,
			Code:        ph.Code,
			Description: ph.Description,
			Size:        ph.Size,
			Spec:        ph.Spec,
			Insulation:  ph.Insulation,
			Sheet:       ph.Sheet,
			SortOrder:   i + 1,
		}
		phaseIDs[ph.Ref] = phase.ID
		est.Phases = append(est.Phases, phase)
	}

	for i, a := range schema.Activities {
		phaseID, ok := phaseIDs[a.PhaseRef]
		if !ok {
			return nil, fmt.Errorf("phase_ref %q not found for activity %q", a.PhaseRef, a.Description)
		}
		activity := &domain.Activity{
			ID:          uuid.New().String(),
			ProposalID:  proposal.ID,
			PhaseID:     phaseID,
			Description: a.Description,
			Type:        domain.ActivityType(a.Type),
			Quantity:    a.Quantity,
			Unit:        a.Unit,
			SortOrder:   i + 1,
		}
		if carriesLabor(a.Type) && a.CraftConstant != nil {
			activity.Labor = &domain.Labor{
				CraftConstant:  *a.CraftConstant,
				WelderConstant: domain.Float64FromPtrWithDefault(0, a.WelderConstant),
			}
		}
		est.Activities = append(est.Activities, activity)
	}

	return est, nil
}
