package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/domain"
)

var testProposalCounter atomic.Int64

// Proposal options
type ProposalOption func(*domain.Proposal)

func WithJobNumber(n string) ProposalOption {
	return func(p *domain.Proposal) {
		p.JobNumber = n
	}
}

func WithOwner(owner, location string) ProposalOption {
	return func(p *domain.Proposal) {
		p.Owner = owner
		p.Location = location
	}
}

func NewTestProposal(name string, opts ...ProposalOption) *domain.Proposal {
	n := testProposalCounter.Add(1)
	p := &domain.Proposal{
		ID:             uuid.New().String(),
		ProposalNumber: fmt.Sprintf("P-%04d", n),
		Name:           name,
		CreatedAt:      time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestWBS(proposalID, code, name string, sortOrder int) *domain.WBSItem {
	return &domain.WBSItem{
		ID:         uuid.New().String(),
		ProposalID: proposalID,
		Code:       code,
		Name:       name,
		SortOrder:  sortOrder,
	}
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithPipingSpec(size, spec, insulation, sheet string) PhaseOption {
	return func(ph *domain.Phase) {
		ph.Size = size
		ph.Spec = spec
		ph.Insulation = insulation
		ph.Sheet = sheet
	}
}

func NewTestPhase(w *domain.WBSItem, code string, sortOrder int, opts ...PhaseOption) *domain.Phase {
	ph := &domain.Phase{
		ID:          uuid.New().String(),
		ProposalID:  w.ProposalID,
		WBSID:       w.ID,
		Code:        code,
		Description: "Phase " + code,
		SortOrder:   sortOrder,
	}
	for _, opt := range opts {
		opt(ph)
	}
	return ph
}

// Activity options
type ActivityOption func(*domain.Activity)

func WithLabor(craft, welder float64) ActivityOption {
	return func(a *domain.Activity) {
		a.Labor = &domain.Labor{CraftConstant: craft, WelderConstant: welder}
	}
}

func WithActivityType(t domain.ActivityType) ActivityOption {
	return func(a *domain.Activity) {
		a.Type = t
	}
}

func WithQuantity(qty float64, unit string) ActivityOption {
	return func(a *domain.Activity) {
		a.Quantity = qty
		a.Unit = unit
	}
}

func WithActivitySortOrder(n int) ActivityOption {
	return func(a *domain.Activity) {
		a.SortOrder = n
	}
}

// NewTestActivity defaults to a labor activity of 10 EA at 1.0 craft hours per unit.
func NewTestActivity(ph *domain.Phase, description string, opts ...ActivityOption) *domain.Activity {
	a := &domain.Activity{
		ID:          uuid.New().String(),
		ProposalID:  ph.ProposalID,
		PhaseID:     ph.ID,
		Description: description,
		Type:        domain.ActivityLabor,
		Quantity:    10,
		Unit:        "EA",
		Labor:       &domain.Labor{CraftConstant: 1},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithProjectDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = &start
		p.EndDate = &end
	}
}

func NewTestProject(proposal *domain.Proposal, opts ...ProjectOption) *domain.Project {
	p := domain.NewProjectFromProposal(uuid.New().String(), proposal, time.Now().UTC().Truncate(time.Second))
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// EstimateFixture is a small two-WBS estimate shared across tests:
//
//	100 Tank Farm
//	  100-01  Pipe (labor 10 LF @ 1.5+0.5), Gaskets (material 40 EA)
//	  100-02  Supports (custom_labor 4 EA @ 2.5+0)
//	200 Piperack
//	  200-01  Steel (labor 20 TN @ 3+1)
type EstimateFixture struct {
	Estimate *domain.Estimate
	Proposal *domain.Proposal

	TankFarm, Piperack          *domain.WBSItem
	PhaseTF1, PhaseTF2, PhasePR *domain.Phase

	Pipe, Gaskets, Supports, Steel *domain.Activity
}

func NewEstimateFixture(name string, opts ...ProposalOption) *EstimateFixture {
	f := &EstimateFixture{Proposal: NewTestProposal(name, opts...)}
	pid := f.Proposal.ID

	f.TankFarm = NewTestWBS(pid, "100", "Tank Farm", 1)
	f.Piperack = NewTestWBS(pid, "200", "Piperack", 2)
	f.PhaseTF1 = NewTestPhase(f.TankFarm, "100-01", 1, WithPipingSpec("2\"", "A1", "", "S-101"))
	f.PhaseTF2 = NewTestPhase(f.TankFarm, "100-02", 2)
	f.PhasePR = NewTestPhase(f.Piperack, "200-01", 1)

	f.Pipe = NewTestActivity(f.PhaseTF1, "Pipe", WithQuantity(10, "LF"), WithLabor(1.5, 0.5), WithActivitySortOrder(1))
	f.Gaskets = NewTestActivity(f.PhaseTF1, "Gaskets",
		WithActivityType(domain.ActivityMaterial), WithQuantity(40, "EA"), WithActivitySortOrder(2),
		func(a *domain.Activity) { a.Labor = nil })
	f.Supports = NewTestActivity(f.PhaseTF2, "Supports",
		WithActivityType(domain.ActivityCustomLabor), WithQuantity(4, "EA"), WithLabor(2.5, 0), WithActivitySortOrder(3))
	f.Steel = NewTestActivity(f.PhasePR, "Steel", WithQuantity(20, "TN"), WithLabor(3, 1), WithActivitySortOrder(4))

	f.Estimate = &domain.Estimate{
		Proposal:   f.Proposal,
		WBS:        []*domain.WBSItem{f.TankFarm, f.Piperack},
		Phases:     []*domain.Phase{f.PhaseTF1, f.PhaseTF2, f.PhasePR},
		Activities: []*domain.Activity{f.Pipe, f.Gaskets, f.Supports, f.Steel},
	}
	return f
}
