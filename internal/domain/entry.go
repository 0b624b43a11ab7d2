package domain

import "time"

// CompletionEntry is the quantity completed for one activity on one date.
// PhaseID and WBSID are the activity's effective placement, denormalized at
// insert time and rewritten when a phase override changes.
type CompletionEntry struct {
	ID         string
	ProjectID  string
	ActivityID string
	EntryDate  time.Time
	Quantity   float64
	Notes      string
	EnteredBy  string
	PhaseID    string
	WBSID      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PhaseOverride redirects an activity's effective phase within one project.
// The original placement is captured once, when the override is first created.
type PhaseOverride struct {
	ID              string
	ProjectID       string
	ActivityID      string
	OverridePhaseID string
	OriginalPhaseID string
	OriginalWBSID   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
