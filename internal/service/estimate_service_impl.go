package service

import (
	"context"
	"fmt"
	"time"

	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/domain"
	"github.com/momentumhq/momentum/internal/importer"
	"github.com/momentumhq/momentum/internal/repository"
)

type estimateService struct {
	estimates repository.EstimateRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewEstimateService(estimates repository.EstimateRepo, uow db.UnitOfWork, observers ...UseCaseObserver) EstimateService {
	return &estimateService{
		estimates: estimates,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *estimateService) ImportFile(ctx context.Context, filePath string) (*app.EstimateImportResult, error) {
	schema, err := importer.LoadEstimateSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading estimate file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema validates, converts and persists an estimate in one transaction.
func (s *estimateService) ImportSchema(ctx context.Context, schema *importer.EstimateSchema) (result *app.EstimateImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"proposal_number": schema.Proposal.ProposalNumber}
	defer observe(ctx, s.observer, "import-estimate", startedAt, fields, &err)

	if errs := importer.ValidateEstimateSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	est, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting estimate: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return persistEstimate(ctx, repository.NewSQLiteEstimateRepo(tx), est)
	})
	if err != nil {
		return nil, err
	}

	result = &app.EstimateImportResult{
		Proposal:      est.Proposal,
		WBSCount:      len(est.WBS),
		PhaseCount:    len(est.Phases),
		ActivityCount: len(est.Activities),
	}
	for _, a := range est.Activities {
		result.LaborMH += a.TotalMH()
	}
	fields["proposal_id"] = est.Proposal.ID
	fields["activity_count"] = result.ActivityCount
	return result, nil
}

func persistEstimate(ctx context.Context, repo repository.EstimateRepo, est *domain.Estimate) error {
	if err := repo.CreateProposal(ctx, est.Proposal); err != nil {
		return fmt.Errorf("creating proposal: %w", err)
	}
	for _, w := range est.WBS {
		if err := repo.CreateWBSItem(ctx, w); err != nil {
			return fmt.Errorf("creating wbs item %q: %w", w.Code, err)
		}
	}
	for _, ph := range est.Phases {
		if err := repo.CreatePhase(ctx, ph); err != nil {
			return fmt.Errorf("creating phase %q: %w", ph.Code, err)
		}
	}
	for _, a := range est.Activities {
		if err := repo.CreateActivity(ctx, a); err != nil {
			return fmt.Errorf("creating activity %q: %w", a.Description, err)
		}
	}
	return nil
}

func (s *estimateService) ListProposals(ctx context.Context) ([]repository.ProposalListing, error) {
	return s.estimates.ListProposals(ctx)
}

func (s *estimateService) LoadEstimate(ctx context.Context, proposalID string) (*domain.Estimate, error) {
	return s.estimates.LoadEstimate(ctx, proposalID)
}
