package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/domain"
	"github.com/momentumhq/momentum/internal/repository"
)

// phaseOverrideService moves an activity between phases of one WBS for a
// single project. The estimate is never edited; entries carry the effective
// placement and are rewritten on every transition.
type phaseOverrideService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPhaseOverrideService(uow db.UnitOfWork, observers ...UseCaseObserver) PhaseOverrideService {
	return &phaseOverrideService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *phaseOverrideService) Reassign(ctx context.Context, projectID, activityID, targetPhaseID string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project_id":   projectID,
		"activity_id":  activityID,
		"target_phase": targetPhaseID,
	}
	defer observe(ctx, s.observer, "reassign-phase", startedAt, fields, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEstimates := repository.NewSQLiteEstimateRepo(tx)
		txEntries := repository.NewSQLiteEntryRepo(tx)
		txOverrides := repository.NewSQLiteOverrideRepo(tx)

		project, a, err := loadProjectActivity(ctx, tx, projectID, activityID)
		if err != nil {
			return err
		}

		target, err := txEstimates.GetPhase(ctx, targetPhaseID)
		if err != nil {
			return err
		}
		if target.ProposalID != project.ProposalID {
			return fmt.Errorf("phase %s: %w", target.Code, domain.ErrPhaseOutsideProposal)
		}

		existing, err := txOverrides.Get(ctx, projectID, activityID)
		if err != nil && !isNotFound(err) {
			return err
		}

		originalPhaseID, originalWBSID := a.PhaseID, ""
		if existing != nil {
			originalPhaseID, originalWBSID = existing.OriginalPhaseID, existing.OriginalWBSID
		} else {
			native, err := txEstimates.GetPhase(ctx, a.PhaseID)
			if err != nil {
				return fmt.Errorf("activity %q native phase: %w", a.Description, err)
			}
			originalWBSID = native.WBSID
		}

		if target.WBSID != originalWBSID {
			return fmt.Errorf("activity %q to phase %s: %w", a.Description, target.Code, domain.ErrCrossWBSReassign)
		}

		if target.ID == originalPhaseID {
			fields["reverted"] = true
			return revertOverride(ctx, txEntries, txOverrides, existing)
		}

		if _, err := txEntries.RewritePlacement(ctx, projectID, activityID, target.ID, target.WBSID); err != nil {
			return fmt.Errorf("rewriting entry placement: %w", err)
		}

		now := time.Now().UTC()
		if existing != nil {
			existing.OverridePhaseID = target.ID
			existing.UpdatedAt = now
			return txOverrides.UpdateTarget(ctx, existing)
		}
		return txOverrides.Create(ctx, &domain.PhaseOverride{
			ID:              uuid.New().String(),
			ProjectID:       projectID,
			ActivityID:      activityID,
			OverridePhaseID: target.ID,
			OriginalPhaseID: originalPhaseID,
			OriginalWBSID:   originalWBSID,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	})
}

// Revert restores the original placement. Reverting an activity that has no
// override is a no-op.
func (s *phaseOverrideService) Revert(ctx context.Context, projectID, activityID string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID, "activity_id": activityID}
	defer observe(ctx, s.observer, "revert-phase", startedAt, fields, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return err
		}

		txOverrides := repository.NewSQLiteOverrideRepo(tx)
		existing, err := txOverrides.Get(ctx, projectID, activityID)
		if isNotFound(err) {
			fields["noop"] = true
			return nil
		}
		if err != nil {
			return err
		}
		return revertOverride(ctx, repository.NewSQLiteEntryRepo(tx), txOverrides, existing)
	})
}

func revertOverride(ctx context.Context, entries repository.EntryRepo, overrides repository.OverrideRepo, o *domain.PhaseOverride) error {
	if o == nil {
		return nil
	}
	if _, err := entries.RewritePlacement(ctx, o.ProjectID, o.ActivityID, o.OriginalPhaseID, o.OriginalWBSID); err != nil {
		return fmt.Errorf("restoring entry placement: %w", err)
	}
	return overrides.Delete(ctx, o.ProjectID, o.ActivityID)
}

// loadProjectActivity fetches both rows and checks the activity belongs to
// the project's estimate.
func loadProjectActivity(ctx context.Context, tx db.DBTX, projectID, activityID string) (*domain.Project, *domain.Activity, error) {
	project, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	a, err := repository.NewSQLiteEstimateRepo(tx).GetActivity(ctx, activityID)
	if err != nil {
		return nil, nil, err
	}
	if a.ProposalID != project.ProposalID {
		return nil, nil, fmt.Errorf("activity %s in project %s: %w", activityID, project.DisplayID(), domain.ErrNotFound)
	}
	return project, a, nil
}
