package repository

import (
	"context"
	"time"

	"github.com/momentumhq/momentum/internal/domain"
)

// ProposalListing is one imported proposal with whether a project tracks it.
type ProposalListing struct {
	Proposal      domain.Proposal
	ActivityCount int
	ProjectID     string
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByProposalID(ctx context.Context, proposalID string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	TouchLastEntryDate(ctx context.Context, id string, date time.Time) error
	Delete(ctx context.Context, id string) error
}

// EstimateRepo reads and writes the immutable estimate hierarchy.
type EstimateRepo interface {
	CreateProposal(ctx context.Context, p *domain.Proposal) error
	CreateWBSItem(ctx context.Context, w *domain.WBSItem) error
	CreatePhase(ctx context.Context, ph *domain.Phase) error
	CreateActivity(ctx context.Context, a *domain.Activity) error
	GetProposal(ctx context.Context, id string) (*domain.Proposal, error)
	ListProposals(ctx context.Context) ([]ProposalListing, error)
	GetActivity(ctx context.Context, id string) (*domain.Activity, error)
	GetPhase(ctx context.Context, id string) (*domain.Phase, error)
	LoadEstimate(ctx context.Context, proposalID string) (*domain.Estimate, error)
}

// EntryRepo stores completion entries keyed by (project, activity, date).
type EntryRepo interface {
	Create(ctx context.Context, e *domain.CompletionEntry) error
	GetByKey(ctx context.Context, projectID, activityID string, date time.Time) (*domain.CompletionEntry, error)
	Update(ctx context.Context, e *domain.CompletionEntry) error
	Delete(ctx context.Context, id string) error
	SumOtherDays(ctx context.Context, projectID, activityID string, excludeDate time.Time) (float64, error)
	SumByActivity(ctx context.Context, projectID string) (map[string]float64, error)
	ListForDate(ctx context.Context, projectID string, date time.Time) ([]*domain.CompletionEntry, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.CompletionEntry, error)
	ListRecent(ctx context.Context, projectID string, limit int) ([]*domain.CompletionEntry, error)
	RewritePlacement(ctx context.Context, projectID, activityID, phaseID, wbsID string) (int64, error)
}

type OverrideRepo interface {
	Get(ctx context.Context, projectID, activityID string) (*domain.PhaseOverride, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.PhaseOverride, error)
	Create(ctx context.Context, o *domain.PhaseOverride) error
	UpdateTarget(ctx context.Context, o *domain.PhaseOverride) error
	Delete(ctx context.Context, projectID, activityID string) error
}
