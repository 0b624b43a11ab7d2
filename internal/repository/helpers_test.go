package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/domain"
	"github.com/momentumhq/momentum/internal/testutil"
	"github.com/stretchr/testify/require"
)

// seedFixture persists the shared estimate fixture and a project tracking it.
func seedFixture(t *testing.T, conn db.DBTX) (*testutil.EstimateFixture, *domain.Project) {
	t.Helper()
	ctx := context.Background()
	f := testutil.NewEstimateFixture("Refinery Expansion")
	seedEstimate(t, conn, f.Estimate)

	proj := testutil.NewTestProject(f.Proposal)
	require.NoError(t, NewSQLiteProjectRepo(conn).Create(ctx, proj))
	return f, proj
}

func seedEstimate(t *testing.T, conn db.DBTX, est *domain.Estimate) {
	t.Helper()
	ctx := context.Background()
	repo := NewSQLiteEstimateRepo(conn)
	require.NoError(t, repo.CreateProposal(ctx, est.Proposal))
	for _, w := range est.WBS {
		require.NoError(t, repo.CreateWBSItem(ctx, w))
	}
	for _, ph := range est.Phases {
		require.NoError(t, repo.CreatePhase(ctx, ph))
	}
	for _, a := range est.Activities {
		require.NoError(t, repo.CreateActivity(ctx, a))
	}
}

func newEntry(projectID string, a *domain.Activity, date string, qty float64) *domain.CompletionEntry {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		panic(err)
	}
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.CompletionEntry{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		ActivityID: a.ID,
		EntryDate:  d,
		Quantity:   qty,
		PhaseID:    a.PhaseID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func day(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}
