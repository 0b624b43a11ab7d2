package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/domain"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/rollup"
	"github.com/shopspring/decimal"
)

// DefaultHistoryPageSize applies when History is called without a limit.
const DefaultHistoryPageSize = 20

// quantityPlaces bounds the precision of budget comparisons so that float
// sums from the store do not trip the cap by a rounding error.
const quantityPlaces = 6

type ledgerService struct {
	projects  repository.ProjectRepo
	estimates repository.EstimateRepo
	entries   repository.EntryRepo
	uow       db.UnitOfWork
	pageSize  int
	observer  UseCaseObserver
}

func NewLedgerService(
	projects repository.ProjectRepo,
	estimates repository.EstimateRepo,
	entries repository.EntryRepo,
	uow db.UnitOfWork,
	historyPageSize int,
	observers ...UseCaseObserver,
) LedgerService {
	if historyPageSize <= 0 {
		historyPageSize = DefaultHistoryPageSize
	}
	return &ledgerService{
		projects:  projects,
		estimates: estimates,
		entries:   entries,
		uow:       uow,
		pageSize:  historyPageSize,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *ledgerService) EntriesForDate(ctx context.Context, projectID string, date time.Time) (map[string]app.DayEntry, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	entries, err := s.entries.ListForDate(ctx, projectID, calendarDay(date))
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	out := make(map[string]app.DayEntry, len(entries))
	for _, e := range entries {
		out[e.ActivityID] = app.DayEntry{Quantity: e.Quantity, Notes: e.Notes}
	}
	return out, nil
}

// SaveEntries writes one day of quantities. Entries are processed in order and
// the first invalid one aborts the call; the batch shares one transaction, so
// a failed call leaves the ledger unchanged.
func (s *ledgerService) SaveEntries(ctx context.Context, projectID string, date time.Time, enteredBy string, inputs []app.EntryInput) (result *app.SaveResult, err error) {
	startedAt := time.Now().UTC()
	day := calendarDay(date)
	fields := map[string]any{
		"project_id": projectID,
		"date":       day.Format(rollup.DateLayout),
		"entries":    len(inputs),
	}
	defer observe(ctx, s.observer, "save-entries", startedAt, fields, &err)

	for _, in := range inputs {
		if in.Quantity < 0 || math.IsNaN(in.Quantity) || math.IsInf(in.Quantity, 0) {
			return nil, fmt.Errorf("activity %s: %v: %w", in.ActivityID, in.Quantity, domain.ErrInvalidQuantity)
		}
	}

	res := &app.SaveResult{Date: day.Format(rollup.DateLayout)}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txEstimates := repository.NewSQLiteEstimateRepo(tx)
		txEntries := repository.NewSQLiteEntryRepo(tx)
		txOverrides := repository.NewSQLiteOverrideRepo(tx)

		project, err := txProjects.GetByID(ctx, projectID)
		if err != nil {
			return err
		}

		for _, in := range inputs {
			a, err := txEstimates.GetActivity(ctx, in.ActivityID)
			if isNotFound(err) {
				res.Skipped++
				continue
			}
			if err != nil {
				return err
			}
			if a.ProposalID != project.ProposalID {
				res.Skipped++
				continue
			}

			if in.Quantity > 0 {
				other, err := txEntries.SumOtherDays(ctx, projectID, a.ID, day)
				if err != nil {
					return fmt.Errorf("summing other days for %q: %w", a.Description, err)
				}
				if err := checkBudget(a, other, in.Quantity); err != nil {
					return err
				}
			}

			existing, err := txEntries.GetByKey(ctx, projectID, a.ID, day)
			if err != nil && !isNotFound(err) {
				return err
			}
			now := time.Now().UTC()

			switch {
			case existing != nil && in.Quantity == 0:
				if err := txEntries.Delete(ctx, existing.ID); err != nil {
					return err
				}
				res.Deleted++
			case existing != nil:
				existing.Quantity = in.Quantity
				existing.Notes = in.Notes
				existing.EnteredBy = enteredBy
				existing.UpdatedAt = now
				if err := txEntries.Update(ctx, existing); err != nil {
					return err
				}
				res.Updated++
			case in.Quantity == 0:
				res.NoOps++
			default:
				phaseID, wbsID, err := effectivePlacement(ctx, txEstimates, txOverrides, projectID, a)
				if err != nil {
					return err
				}
				e := &domain.CompletionEntry{
					ID:         uuid.New().String(),
					ProjectID:  projectID,
					ActivityID: a.ID,
					EntryDate:  day,
					Quantity:   in.Quantity,
					Notes:      in.Notes,
					EnteredBy:  enteredBy,
					PhaseID:    phaseID,
					WBSID:      wbsID,
					CreatedAt:  now,
					UpdatedAt:  now,
				}
				if err := txEntries.Create(ctx, e); err != nil {
					return err
				}
				res.Created++
			}
		}

		if len(inputs) == 0 {
			return nil
		}
		return txProjects.TouchLastEntryDate(ctx, projectID, day)
	})
	if err != nil {
		return nil, err
	}

	fields["created"] = res.Created
	fields["updated"] = res.Updated
	fields["deleted"] = res.Deleted
	return res, nil
}

// checkBudget rejects a day's quantity when it would push the activity's
// cumulative total past its budgeted quantity.
func checkBudget(a *domain.Activity, otherDays, requested float64) error {
	budget := decimal.NewFromFloat(a.Quantity).Round(quantityPlaces)
	other := decimal.NewFromFloat(otherDays).Round(quantityPlaces)
	req := decimal.NewFromFloat(requested).Round(quantityPlaces)

	if other.Add(req).LessThanOrEqual(budget) {
		return nil
	}
	maxAllowed := decimal.Max(decimal.Zero, budget.Sub(other))
	return &domain.OverBudgetError{
		ActivityID:  a.ID,
		Description: a.Description,
		Unit:        a.Unit,
		Budget:      a.Quantity,
		Requested:   requested,
		MaxAllowed:  maxAllowed.InexactFloat64(),
	}
}

// effectivePlacement resolves where a new entry is filed: the override's
// target phase if one is active and known, otherwise the native phase.
func effectivePlacement(ctx context.Context, estimates repository.EstimateRepo, overrides repository.OverrideRepo, projectID string, a *domain.Activity) (phaseID, wbsID string, err error) {
	o, err := overrides.Get(ctx, projectID, a.ID)
	if err != nil && !isNotFound(err) {
		return "", "", err
	}
	if o != nil {
		target, err := estimates.GetPhase(ctx, o.OverridePhaseID)
		if err == nil {
			return target.ID, target.WBSID, nil
		}
		if !isNotFound(err) {
			return "", "", err
		}
	}

	native, err := estimates.GetPhase(ctx, a.PhaseID)
	if isNotFound(err) {
		return a.PhaseID, "", nil
	}
	if err != nil {
		return "", "", err
	}
	return native.ID, native.WBSID, nil
}

// History pages entries most recent first, grouped by date. One extra row is
// fetched to report HasMore without a count query. Entries whose activity has
// left the estimate are not shown.
func (s *ledgerService) History(ctx context.Context, projectID string, limit int) (*app.HistoryView, error) {
	if limit <= 0 {
		limit = s.pageSize
	}
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	rows, err := s.entries.ListRecent(ctx, projectID, limit+1)
	if err != nil {
		return nil, fmt.Errorf("listing recent entries: %w", err)
	}
	view := &app.HistoryView{HasMore: len(rows) > limit}
	if view.HasMore {
		rows = rows[:limit]
	}

	est, err := s.estimates.LoadEstimate(ctx, project.ProposalID)
	if err != nil {
		return nil, fmt.Errorf("loading estimate: %w", err)
	}
	activities := make(map[string]*domain.Activity, len(est.Activities))
	for _, a := range est.Activities {
		activities[a.ID] = a
	}

	for _, e := range rows {
		a, ok := activities[e.ActivityID]
		if !ok {
			continue
		}
		date := e.EntryDate.Format(rollup.DateLayout)
		if n := len(view.Days); n == 0 || view.Days[n-1].Date != date {
			view.Days = append(view.Days, app.HistoryDay{Date: date})
		}
		d := &view.Days[len(view.Days)-1]
		d.TotalQuantity += e.Quantity
		d.Entries = append(d.Entries, app.HistoryEntry{
			EntryID:     e.ID,
			ActivityID:  a.ID,
			Description: a.Description,
			Unit:        a.Unit,
			Quantity:    e.Quantity,
			EnteredBy:   e.EnteredBy,
			Notes:       e.Notes,
		})
	}
	return view, nil
}
