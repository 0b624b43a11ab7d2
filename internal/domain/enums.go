package domain

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on-hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[ProjectStatus]bool{
	ProjectActive: true, ProjectOnHold: true, ProjectCompleted: true, ProjectArchived: true,
}

type ActivityType string

const (
	ActivityLabor       ActivityType = "labor"
	ActivityCustomLabor ActivityType = "custom_labor"
	ActivityMaterial    ActivityType = "material"
	ActivityEquipment   ActivityType = "equipment"
	ActivitySubcontract ActivityType = "subcontract"
	ActivityCost        ActivityType = "cost"
)

// ValidActivityTypes is the canonical set of accepted activity type strings.
// Only labor and custom_labor carry hours.
var ValidActivityTypes = map[string]bool{
	"labor": true, "custom_labor": true, "material": true,
	"equipment": true, "subcontract": true, "cost": true,
}

// ProgressStatus is the display state derived from a percent complete.
type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not-started"
	ProgressInProgress ProgressStatus = "in-progress"
	ProgressComplete   ProgressStatus = "complete"
)
