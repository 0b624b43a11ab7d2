package app

import "github.com/momentumhq/momentum/internal/domain"

// LevelSummary is the roll-up of one hierarchy level: project, WBS or phase.
type LevelSummary struct {
	ID              string
	Code            string
	Name            string
	TotalMH         float64
	CraftMH         float64
	WeldMH          float64
	EarnedMH        float64
	RemainingMH     float64
	PercentComplete int
	Status          domain.ProgressStatus
}

type ProjectSummary struct {
	Project         *domain.Project
	TotalMH         float64
	EarnedMH        float64
	PercentComplete int
	Status          domain.ProgressStatus
}

type PhaseSummary struct {
	LevelSummary
	WBSID      string
	Size       string
	Spec       string
	Insulation string
	Sheet      string
}

type WBSSummary struct {
	LevelSummary
	Phases []PhaseSummary
}

// ProjectWBSView is the project totals with every WBS item and its phases.
type ProjectWBSView struct {
	Project *domain.Project
	Totals  LevelSummary
	WBS     []WBSSummary
}

// BrowseRow is one activity at its effective placement.
type BrowseRow struct {
	ActivityID        string
	Description       string
	Type              domain.ActivityType
	Unit              string
	Quantity          float64
	CompletedQty      float64
	RemainingQty      float64
	TotalMH           float64
	EarnedMH          float64
	PercentComplete   int
	LaborBearing      bool
	PhaseID           string
	PhaseCode         string
	WBSID             string
	WBSCode           string
	IsOverridden      bool
	OriginalPhaseID   string
	OriginalPhaseCode string
}

// PhaseOption is one entry of the reassignment picker.
type PhaseOption struct {
	ID          string
	Code        string
	Description string
}

type BrowseView struct {
	Project *domain.Project
	Totals  LevelSummary
	Rows    []BrowseRow
	WBS     []LevelSummary
	Phases  []PhaseSummary
	// PhaseOptions lists the phases an activity may move to, keyed by WBS id.
	PhaseOptions map[string][]PhaseOption
}

type WeekTotal struct {
	WeekEnding      string
	EntryCount      int
	EarnedMH        float64
	CumulativeMH    float64
	PercentComplete int
}

type ActivityWeek struct {
	ActivityID  string
	Description string
	Unit        string
	PhaseCode   string
	WBSCode     string
	Weeks       map[string]float64
	Total       float64
}

// WeeklyView buckets entries by week ending Saturday, oldest first.
type WeeklyView struct {
	Project     *domain.Project
	TotalMH     float64
	WeekEndings []string
	Totals      []WeekTotal
	Activities  []ActivityWeek
}
