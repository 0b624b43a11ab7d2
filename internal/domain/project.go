package domain

import (
	"fmt"
	"time"
)

// Project is one tracked construction job, created from exactly one Proposal.
type Project struct {
	ID             string
	ProposalID     string
	Name           string
	ProposalNumber string
	JobNumber      string
	Owner          string
	Location       string
	Status         ProjectStatus
	StartDate      *time.Time
	EndDate        *time.Time
	LastEntryDate  *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProjectPatch carries optional field updates. Nil fields are left unchanged.
type ProjectPatch struct {
	Name      *string
	JobNumber *string
	Owner     *string
	Location  *string
	Status    *ProjectStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// NewProjectFromProposal seeds a project's descriptive fields from its estimate.
func NewProjectFromProposal(id string, p *Proposal, now time.Time) *Project {
	return &Project{
		ID:             id,
		ProposalID:     p.ID,
		Name:           p.Name,
		ProposalNumber: p.ProposalNumber,
		JobNumber:      p.JobNumber,
		Owner:          p.Owner,
		Location:       p.Location,
		Status:         ProjectActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ApplyPatch validates and applies a field patch.
func (p *Project) ApplyPatch(patch ProjectPatch, now time.Time) error {
	if patch.Status != nil && !ValidProjectStatuses[*patch.Status] {
		return fmt.Errorf("invalid project status %q (expected active|on-hold|completed|archived)", *patch.Status)
	}
	if patch.Name != nil && *patch.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}

	start := p.StartDate
	if patch.StartDate != nil {
		start = patch.StartDate
	}
	end := p.EndDate
	if patch.EndDate != nil {
		end = patch.EndDate
	}
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("end date %s is before start date %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.JobNumber != nil {
		p.JobNumber = *patch.JobNumber
	}
	if patch.Owner != nil {
		p.Owner = *patch.Owner
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	p.StartDate = start
	p.EndDate = end
	p.UpdatedAt = now
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers the job number, then the proposal number, then a truncated ID.
func (p *Project) DisplayID() string {
	if id := CoalesceStr(p.JobNumber, p.ProposalNumber); id != "" {
		return id
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
