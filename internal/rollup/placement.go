package rollup

import "github.com/momentumhq/momentum/internal/domain"

// Placement resolves an activity's effective phase and WBS, applying any
// per-project phase override. Lookups are O(1) map reads built per request.
type Placement struct {
	phaseWBS  map[string]string
	overrides map[string]*domain.PhaseOverride
}

func NewPlacement(phases []*domain.Phase, overrides []*domain.PhaseOverride) *Placement {
	p := &Placement{
		phaseWBS:  make(map[string]string, len(phases)),
		overrides: make(map[string]*domain.PhaseOverride, len(overrides)),
	}
	for _, ph := range phases {
		p.phaseWBS[ph.ID] = ph.WBSID
	}
	for _, o := range overrides {
		p.overrides[o.ActivityID] = o
	}
	return p
}

// WBSOf returns the WBS id owning phaseID.
func (p *Placement) WBSOf(phaseID string) (string, bool) {
	wbs, ok := p.phaseWBS[phaseID]
	return wbs, ok
}

// Override returns the active override for an activity, if any.
func (p *Placement) Override(activityID string) (*domain.PhaseOverride, bool) {
	o, ok := p.overrides[activityID]
	return o, ok
}

// Effective returns the phase and WBS the activity aggregates under. An
// override whose target phase is unknown falls back to native placement.
func (p *Placement) Effective(a *domain.Activity) (phaseID, wbsID string, overridden bool) {
	if o, ok := p.overrides[a.ID]; ok {
		if wbs, known := p.phaseWBS[o.OverridePhaseID]; known {
			return o.OverridePhaseID, wbs, true
		}
	}
	return a.PhaseID, p.phaseWBS[a.PhaseID], false
}
