package service

import (
	"context"
	"time"

	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/domain"
	"github.com/momentumhq/momentum/internal/importer"
	"github.com/momentumhq/momentum/internal/repository"
)

type ProjectService interface {
	CreateFromProposal(ctx context.Context, proposalID string) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListSummaries(ctx context.Context) ([]app.ProjectSummary, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) error
	Delete(ctx context.Context, id string) error
}

type EstimateService interface {
	ImportFile(ctx context.Context, filePath string) (*app.EstimateImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.EstimateSchema) (*app.EstimateImportResult, error)
	ListProposals(ctx context.Context) ([]repository.ProposalListing, error)
	LoadEstimate(ctx context.Context, proposalID string) (*domain.Estimate, error)
}

// LedgerService records and reads daily completed quantities.
type LedgerService interface {
	EntriesForDate(ctx context.Context, projectID string, date time.Time) (map[string]app.DayEntry, error)
	SaveEntries(ctx context.Context, projectID string, date time.Time, enteredBy string, entries []app.EntryInput) (*app.SaveResult, error)
	History(ctx context.Context, projectID string, limit int) (*app.HistoryView, error)
}

type PhaseOverrideService interface {
	Reassign(ctx context.Context, projectID, activityID, targetPhaseID string) error
	Revert(ctx context.Context, projectID, activityID string) error
}

// ProgressService computes every read model from current store state.
type ProgressService interface {
	ProjectWBS(ctx context.Context, projectID string) (*app.ProjectWBSView, error)
	Browse(ctx context.Context, projectID string) (*app.BrowseView, error)
	WeeklyBreakdown(ctx context.Context, projectID string) (*app.WeeklyView, error)
	ExportData(ctx context.Context, projectID string) (*app.ExportData, error)
}
