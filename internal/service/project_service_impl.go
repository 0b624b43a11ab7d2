package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/domain"
	"github.com/momentumhq/momentum/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	loader   snapshotLoader
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProjectService(
	projects repository.ProjectRepo,
	estimates repository.EstimateRepo,
	entries repository.EntryRepo,
	overrides repository.OverrideRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		projects: projects,
		loader:   snapshotLoader{projects: projects, estimates: estimates, entries: entries, overrides: overrides},
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) CreateFromProposal(ctx context.Context, proposalID string) (project *domain.Project, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"proposal_id": proposalID}
	defer observe(ctx, s.observer, "create-project", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txEstimates := repository.NewSQLiteEstimateRepo(tx)

		proposal, err := txEstimates.GetProposal(ctx, proposalID)
		if err != nil {
			return err
		}

		existing, err := txProjects.GetByProposalID(ctx, proposalID)
		switch {
		case err == nil:
			return fmt.Errorf("proposal %s is tracked by project %s: %w", proposal.ProposalNumber, existing.DisplayID(), domain.ErrProjectExists)
		case !isNotFound(err):
			return err
		}

		project = domain.NewProjectFromProposal(uuid.New().String(), proposal, time.Now().UTC())
		return txProjects.Create(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	fields["project_id"] = project.ID
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) ListSummaries(ctx context.Context) ([]app.ProjectSummary, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	summaries := make([]app.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		snap, err := s.loader.loadFor(ctx, p)
		if err != nil {
			return nil, err
		}
		m := snap.tree.Metrics
		summaries = append(summaries, app.ProjectSummary{
			Project:         p,
			TotalMH:         m.TotalMH,
			EarnedMH:        m.EarnedMH,
			PercentComplete: m.Percent(),
			Status:          m.Status(),
		})
	}
	return summaries, nil
}

func (s *projectService) Update(ctx context.Context, id string, patch domain.ProjectPatch) (err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "update-project", startedAt, map[string]any{"project_id": id}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		p, err := txProjects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := p.ApplyPatch(patch, time.Now().UTC()); err != nil {
			return err
		}
		return txProjects.Update(ctx, p)
	})
}

// Delete removes the project; its entries and overrides go with it by cascade.
func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, "delete-project", startedAt, map[string]any{"project_id": id}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteProjectRepo(tx).Delete(ctx, id)
	})
}
