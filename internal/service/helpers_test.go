package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/domain"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/testutil"
	"github.com/stretchr/testify/require"
)

// harness wires every service over one in-memory database seeded with the
// shared estimate fixture and a project tracking it.
type harness struct {
	db      *sql.DB
	f       *testutil.EstimateFixture
	project *domain.Project

	projectRepo  repository.ProjectRepo
	estimateRepo repository.EstimateRepo
	entryRepo    repository.EntryRepo
	overrideRepo repository.OverrideRepo
	uow          db.UnitOfWork

	projects  ProjectService
	estimates EstimateService
	ledger    LedgerService
	phases    PhaseOverrideService
	progress  ProgressService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	h := &harness{
		db:           database,
		projectRepo:  repository.NewSQLiteProjectRepo(database),
		estimateRepo: repository.NewSQLiteEstimateRepo(database),
		entryRepo:    repository.NewSQLiteEntryRepo(database),
		overrideRepo: repository.NewSQLiteOverrideRepo(database),
		uow:          testutil.NewTestUoW(database),
	}
	h.projects = NewProjectService(h.projectRepo, h.estimateRepo, h.entryRepo, h.overrideRepo, h.uow)
	h.estimates = NewEstimateService(h.estimateRepo, h.uow)
	h.ledger = NewLedgerService(h.projectRepo, h.estimateRepo, h.entryRepo, h.uow, 0)
	h.phases = NewPhaseOverrideService(h.uow)
	h.progress = NewProgressService(h.projectRepo, h.estimateRepo, h.entryRepo, h.overrideRepo)

	h.f = testutil.NewEstimateFixture("Refinery Expansion")
	seedEstimate(t, h.estimateRepo, h.f.Estimate)

	var err error
	h.project, err = h.projects.CreateFromProposal(context.Background(), h.f.Proposal.ID)
	require.NoError(t, err)
	return h
}

func seedEstimate(t *testing.T, repo repository.EstimateRepo, est *domain.Estimate) {
	t.Helper()
	require.NoError(t, persistEstimate(context.Background(), repo, est))
}

// save records one quantity for one activity on one date.
func (h *harness) save(t *testing.T, a *domain.Activity, date string, qty float64) {
	t.Helper()
	_, err := h.ledger.SaveEntries(context.Background(), h.project.ID, day(date), "crew", []app.EntryInput{{ActivityID: a.ID, Quantity: qty}})
	require.NoError(t, err)
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
