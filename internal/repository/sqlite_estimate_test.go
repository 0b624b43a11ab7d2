package repository

import (
	"context"
	"testing"

	"github.com/momentumhq/momentum/internal/domain"
	"github.com/momentumhq/momentum/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRepo_LoadEstimate(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	f := testutil.NewEstimateFixture("Refinery")
	seedEstimate(t, db, f.Estimate)

	est, err := NewSQLiteEstimateRepo(db).LoadEstimate(ctx, f.Proposal.ID)
	require.NoError(t, err)

	assert.Equal(t, f.Proposal.ProposalNumber, est.Proposal.ProposalNumber)
	require.Len(t, est.WBS, 2)
	assert.Equal(t, "100", est.WBS[0].Code, "ordered by sort order")
	require.Len(t, est.Phases, 3)
	require.Len(t, est.Activities, 4)

	byID := map[string]*domain.Activity{}
	for _, a := range est.Activities {
		byID[a.ID] = a
	}
	pipe := byID[f.Pipe.ID]
	require.NotNil(t, pipe.Labor)
	assert.Equal(t, 1.5, pipe.Labor.CraftConstant)
	assert.Equal(t, 0.5, pipe.Labor.WelderConstant)
	assert.Equal(t, "LF", pipe.Unit)
	assert.InDelta(t, 20.0, pipe.TotalMH(), 1e-9)

	gaskets := byID[f.Gaskets.ID]
	assert.Nil(t, gaskets.Labor, "no constants stored means no labor record")
	assert.Equal(t, domain.ActivityMaterial, gaskets.Type)

	var tf1 *domain.Phase
	for _, ph := range est.Phases {
		if ph.ID == f.PhaseTF1.ID {
			tf1 = ph
		}
	}
	require.NotNil(t, tf1)
	assert.Equal(t, "S-101", tf1.Sheet)
	assert.Equal(t, "A1", tf1.Spec)
}

func TestEstimateRepo_LoadEstimate_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	_, err := NewSQLiteEstimateRepo(db).LoadEstimate(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEstimateRepo_GetActivityAndPhase(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	f := testutil.NewEstimateFixture("Refinery")
	seedEstimate(t, db, f.Estimate)
	repo := NewSQLiteEstimateRepo(db)

	a, err := repo.GetActivity(ctx, f.Supports.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ActivityCustomLabor, a.Type)
	assert.Equal(t, f.PhaseTF2.ID, a.PhaseID)

	ph, err := repo.GetPhase(ctx, f.PhasePR.ID)
	require.NoError(t, err)
	assert.Equal(t, f.Piperack.ID, ph.WBSID)

	_, err = repo.GetActivity(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetPhase(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEstimateRepo_ListProposals(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	tracked, proj := seedFixture(t, db)
	untracked := testutil.NewEstimateFixture("Untracked")
	seedEstimate(t, db, untracked.Estimate)

	listings, err := NewSQLiteEstimateRepo(db).ListProposals(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	byID := map[string]ProposalListing{}
	for _, l := range listings {
		byID[l.Proposal.ID] = l
	}
	assert.Equal(t, proj.ID, byID[tracked.Proposal.ID].ProjectID)
	assert.Equal(t, 4, byID[tracked.Proposal.ID].ActivityCount)
	assert.Equal(t, "", byID[untracked.Proposal.ID].ProjectID)
}

func TestEstimateRepo_ActivityReferencesPhase(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	f := testutil.NewEstimateFixture("Refinery")
	repo := NewSQLiteEstimateRepo(db)
	require.NoError(t, repo.CreateProposal(ctx, f.Proposal))

	err := repo.CreateActivity(ctx, f.Pipe)
	assert.Error(t, err, "phase must exist first")
}
