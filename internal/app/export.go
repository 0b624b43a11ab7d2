package app

import "github.com/momentumhq/momentum/internal/domain"

type ExportRowKind string

const (
	ExportRowWBS    ExportRowKind = "wbs"
	ExportRowPhase  ExportRowKind = "phase"
	ExportRowDetail ExportRowKind = "detail"
)

// ExportRow is one line of the workbook. Detail rows carry quantities in
// Weekly and Daily; WBS and phase rows carry earned man-hours.
type ExportRow struct {
	Kind            ExportRowKind
	Code            string
	Description     string
	Size            string
	Spec            string
	Insulation      string
	Sheet           string
	Unit            string
	Quantity        float64
	CompletedQty    float64
	CraftMH         float64
	WeldMH          float64
	TotalMH         float64
	EarnedMH        float64
	PercentComplete int
	Weekly          map[string]float64
	Daily           map[string]float64
}

type ExportData struct {
	Project     *domain.Project
	WeekEndings []string
	Dates       []string
	Rows        []ExportRow
	Totals      LevelSummary
}

type EstimateImportResult struct {
	Proposal      *domain.Proposal
	WBSCount      int
	PhaseCount    int
	ActivityCount int
	LaborMH       float64
}
