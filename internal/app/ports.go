package app

import (
	"context"
	"time"

	"github.com/momentumhq/momentum/internal/importer"
)

type ListProjectsUseCase interface {
	ListSummaries(ctx context.Context) ([]ProjectSummary, error)
}

type ProgressUseCase interface {
	ProjectWBS(ctx context.Context, projectID string) (*ProjectWBSView, error)
	Browse(ctx context.Context, projectID string) (*BrowseView, error)
	WeeklyBreakdown(ctx context.Context, projectID string) (*WeeklyView, error)
	ExportData(ctx context.Context, projectID string) (*ExportData, error)
}

type SaveEntriesUseCase interface {
	SaveEntries(ctx context.Context, projectID string, date time.Time, enteredBy string, entries []EntryInput) (*SaveResult, error)
}

type PhaseReassignUseCase interface {
	Reassign(ctx context.Context, projectID, activityID, targetPhaseID string) error
	Revert(ctx context.Context, projectID, activityID string) error
}

type ImportEstimateUseCase interface {
	ImportFile(ctx context.Context, filePath string) (*EstimateImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.EstimateSchema) (*EstimateImportResult, error)
}
