package importer

import (
	"fmt"
	"math"

	"github.com/momentumhq/momentum/internal/domain"
)

// ValidateEstimateSchema checks the estimate before conversion and returns
// every problem found, not just the first.
func ValidateEstimateSchema(schema *EstimateSchema) []error {
	var errs []error

	errs = append(errs, validateProposal(&schema.Proposal)...)

	wbsRefs := make(map[string]bool)
	errs = append(errs, validateWBS(schema.WBS, wbsRefs)...)

	phaseRefs := make(map[string]bool)
	errs = append(errs, validatePhases(schema.Phases, wbsRefs, phaseRefs)...)

	errs = append(errs, validateActivities(schema.Activities, phaseRefs)...)

	return errs
}

func validateProposal(p *ProposalImport) []error {
	var errs []error

	if p.ProposalNumber == "" {
		errs = append(errs, fmt.Errorf("proposal.proposal_number is required"))
	}
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("proposal.name is required"))
	}

	return errs
}

func validateWBS(items []WBSImport, wbsRefs map[string]bool) []error {
	var errs []error

	if len(items) == 0 {
		errs = append(errs, fmt.Errorf("wbs: at least one item is required"))
	}

	codes := make(map[string]bool)
	for i, w := range items {
		prefix := fmt.Sprintf("wbs[%d]", i)

		if w.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if wbsRefs[w.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, w.Ref))
		} else {
			wbsRefs[w.Ref] = true
		}

		if w.Code == "" {
			errs = append(errs, fmt.Errorf("%s.code is required", prefix))
		} else if codes[w.Code] {
			errs = append(errs, fmt.Errorf("%s.code: duplicate code %q", prefix, w.Code))
		} else {
			codes[w.Code] = true
		}
	}

	return errs
}

func validatePhases(phases []PhaseImport, wbsRefs, phaseRefs map[string]bool) []error {
	var errs []error

	for i, ph := range phases {
		prefix := fmt.Sprintf("phases[%d]", i)

		if ph.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if phaseRefs[ph.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, ph.Ref))
		} else {
			phaseRefs[ph.Ref] = true
		}

		if ph.WBSRef == "" {
			errs = append(errs, fmt.Errorf("%s.wbs_ref is required", prefix))
		} else if !wbsRefs[ph.WBSRef] {
			errs = append(errs, fmt.Errorf("%s.wbs_ref: ref %q not found in wbs", prefix, ph.WBSRef))
		}

		if ph.Code == "" {
			errs = append(errs, fmt.Errorf("%s.code is required", prefix))
		}
	}

	return errs
}

func validateActivities(items []ActivityImport, phaseRefs map[string]bool) []error {
	var errs []error

	for i, a := range items {
		prefix := fmt.Sprintf("activities[%d]", i)

		if a.PhaseRef == "" {
			errs = append(errs, fmt.Errorf("%s.phase_ref is required", prefix))
		} else if !phaseRefs[a.PhaseRef] {
			errs = append(errs, fmt.Errorf("%s.phase_ref: ref %q not found in phases", prefix, a.PhaseRef))
		}

		if a.Description == "" {
			errs = append(errs, fmt.Errorf("%s.description is required", prefix))
		}
		if a.Unit == "" {
			errs = append(errs, fmt.Errorf("%s.unit is required", prefix))
		}

		if a.Type == "" {
			errs = append(errs, fmt.Errorf("%s.type is required", prefix))
		} else if !domain.ValidActivityTypes[a.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, a.Type))
		}

		if a.Quantity < 0 || math.IsNaN(a.Quantity) || math.IsInf(a.Quantity, 0) {
			errs = append(errs, fmt.Errorf("%s.quantity must be zero or positive", prefix))
		}

		if !carriesLabor(a.Type) {
			continue
		}
		if a.CraftConstant == nil {
			errs = append(errs, fmt.Errorf("%s.craft_constant is required for %s activities", prefix, a.Type))
		} else if *a.CraftConstant < 0 {
			errs = append(errs, fmt.Errorf("%s.craft_constant must be zero or positive", prefix))
		}
		if a.WelderConstant != nil && *a.WelderConstant < 0 {
			errs = append(errs, fmt.Errorf("%s.welder_constant must be zero or positive", prefix))
		}
	}

	return errs
}

func carriesLabor(t string) bool {
	return t == string(domain.ActivityLabor) || t == string(domain.ActivityCustomLabor)
}
