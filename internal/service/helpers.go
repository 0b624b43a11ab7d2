package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/domain"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/rollup"
)

// snapshot is everything a read model needs for one project, loaded per request.
type snapshot struct {
	project   *domain.Project
	estimate  *domain.Estimate
	overrides []*domain.PhaseOverride
	placement *rollup.Placement
	tree      *rollup.Tree
}

type snapshotLoader struct {
	projects  repository.ProjectRepo
	estimates repository.EstimateRepo
	entries   repository.EntryRepo
	overrides repository.OverrideRepo
}

func (l snapshotLoader) load(ctx context.Context, projectID string) (*snapshot, error) {
	project, err := l.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return l.loadFor(ctx, project)
}

func (l snapshotLoader) loadFor(ctx context.Context, project *domain.Project) (*snapshot, error) {
	est, err := l.estimates.LoadEstimate(ctx, project.ProposalID)
	if err != nil {
		return nil, fmt.Errorf("loading estimate for project %s: %w", project.ID, err)
	}
	overrides, err := l.overrides.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("loading phase overrides: %w", err)
	}
	completed, err := l.entries.SumByActivity(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("summing entries: %w", err)
	}

	placement := rollup.NewPlacement(est.Phases, overrides)
	return &snapshot{
		project:   project,
		estimate:  est,
		overrides: overrides,
		placement: placement,
		tree:      rollup.Build(est, completed, placement),
	}, nil
}

func levelSummary(id, code, name string, m rollup.Metrics) app.LevelSummary {
	return app.LevelSummary{
		ID:              id,
		Code:            code,
		Name:            name,
		TotalMH:         m.TotalMH,
		CraftMH:         m.CraftMH,
		WeldMH:          m.WeldMH,
		EarnedMH:        m.EarnedMH,
		RemainingMH:     m.RemainingMH(),
		PercentComplete: m.Percent(),
		Status:          m.Status(),
	}
}

func projectLevel(p *domain.Project, m rollup.Metrics) app.LevelSummary {
	return levelSummary(p.ID, p.DisplayID(), p.Name, m)
}

func wbsLevel(n *rollup.WBSNode) app.LevelSummary {
	return levelSummary(n.WBS.ID, n.WBS.Code, n.WBS.Name, n.Metrics)
}

func phaseSummary(n *rollup.PhaseNode) app.PhaseSummary {
	ph := n.Phase
	return app.PhaseSummary{
		LevelSummary: levelSummary(ph.ID, ph.Code, ph.Description, n.Metrics),
		WBSID:        ph.WBSID,
		Size:         ph.Size,
		Spec:         ph.Spec,
		Insulation:   ph.Insulation,
		Sheet:        ph.Sheet,
	}
}

// calendarDay drops the clock so entries key on the date alone.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("estimate validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
