package domain

import "time"

// Proposal is an imported estimate. A project tracks exactly one proposal.
type Proposal struct {
	ID             string
	ProposalNumber string
	JobNumber      string
	Name           string
	Owner          string
	Location       string
	CreatedAt      time.Time
}

// WBSItem is a top-level grouping within a proposal's estimate.
type WBSItem struct {
	ID         string
	ProposalID string
	Code       string
	Name       string
	SortOrder  int
}

// Phase groups activities under a WBS item. The piping fields are display-only.
type Phase struct {
	ID          string
	ProposalID  string
	WBSID       string
	Code        string
	Description string
	Size        string
	Spec        string
	Insulation  string
	Sheet       string
	SortOrder   int
}

// Labor holds the per-unit hour constants of a labor-bearing activity.
type Labor struct {
	CraftConstant  float64
	WelderConstant float64
}

// Activity is a leaf budget line under a phase.
type Activity struct {
	ID          string
	ProposalID  string
	PhaseID     string
	Description string
	Type        ActivityType
	Quantity    float64
	Unit        string
	Labor       *Labor
	SortOrder   int
}

// IsLaborBearing reports whether the activity contributes man-hours.
func (a *Activity) IsLaborBearing() bool {
	if a.Labor == nil {
		return false
	}
	return a.Type == ActivityLabor || a.Type == ActivityCustomLabor
}

// HoursPerUnit is craft plus welder hours for one unit, or 0 when not labor-bearing.
func (a *Activity) HoursPerUnit() float64 {
	if !a.IsLaborBearing() {
		return 0
	}
	return a.Labor.CraftConstant + a.Labor.WelderConstant
}

func (a *Activity) TotalMH() float64 {
	return a.Quantity * a.HoursPerUnit()
}

func (a *Activity) CraftMH() float64 {
	if !a.IsLaborBearing() {
		return 0
	}
	return a.Quantity * a.Labor.CraftConstant
}

func (a *Activity) WeldMH() float64 {
	if !a.IsLaborBearing() {
		return 0
	}
	return a.Quantity * a.Labor.WelderConstant
}

// EarnedMH credits completed quantity at the budget's own per-unit rate.
func (a *Activity) EarnedMH(completedQty float64) float64 {
	return completedQty * a.HoursPerUnit()
}

// Estimate is a proposal's full budget hierarchy, loaded in one pass.
type Estimate struct {
	Proposal   *Proposal
	WBS        []*WBSItem
	Phases     []*Phase
	Activities []*Activity
}
