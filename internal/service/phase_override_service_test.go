package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/domain"
	"github.com/momentumhq/momentum/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findRow(t *testing.T, view *app.BrowseView, activityID string) app.BrowseRow {
	t.Helper()
	for _, r := range view.Rows {
		if r.ActivityID == activityID {
			return r
		}
	}
	t.Fatalf("activity %s not in browse rows", activityID)
	return app.BrowseRow{}
}

func findPhase(t *testing.T, view *app.BrowseView, phaseID string) app.PhaseSummary {
	t.Helper()
	for _, ph := range view.Phases {
		if ph.ID == phaseID {
			return ph
		}
	}
	t.Fatalf("phase %s not in browse view", phaseID)
	return app.PhaseSummary{}
}

func TestReassign_MovesEntriesAndContribution(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.save(t, h.f.Pipe, "2025-03-03", 2)
	h.save(t, h.f.Pipe, "2025-03-04", 3)

	require.NoError(t, h.phases.Reassign(ctx, h.project.ID, h.f.Pipe.ID, h.f.PhaseTF2.ID))

	entries, err := h.entryRepo.ListByProject(ctx, h.project.ID)
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, h.f.PhaseTF2.ID, e.PhaseID)
		assert.Equal(t, h.f.TankFarm.ID, e.WBSID)
	}

	o, err := h.overrideRepo.Get(ctx, h.project.ID, h.f.Pipe.ID)
	require.NoError(t, err)
	assert.Equal(t, h.f.PhaseTF2.ID, o.OverridePhaseID)
	assert.Equal(t, h.f.PhaseTF1.ID, o.OriginalPhaseID)
	assert.Equal(t, h.f.TankFarm.ID, o.OriginalWBSID)

	view, err := h.progress.Browse(ctx, h.project.ID)
	require.NoError(t, err)
	row := findRow(t, view, h.f.Pipe.ID)
	assert.True(t, row.IsOverridden)
	assert.Equal(t, h.f.PhaseTF2.ID, row.PhaseID)
	assert.Equal(t, h.f.PhaseTF1.Code, row.OriginalPhaseCode)

	assert.Zero(t, findPhase(t, view, h.f.PhaseTF1.ID).TotalMH)
	// Supports 10 MH + Pipe 20 MH, Pipe earned 5 x 2.0.
	tf2 := findPhase(t, view, h.f.PhaseTF2.ID)
	assert.InDelta(t, 30.0, tf2.TotalMH, 1e-9)
	assert.InDelta(t, 10.0, tf2.EarnedMH, 1e-9)
}

func TestReassign_RevertRoundTrip(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.save(t, h.f.Pipe, "2025-03-03", 4)

	before, err := h.progress.Browse(ctx, h.project.ID)
	require.NoError(t, err)

	require.NoError(t, h.phases.Reassign(ctx, h.project.ID, h.f.Pipe.ID, h.f.PhaseTF2.ID))
	require.NoError(t, h.phases.Revert(ctx, h.project.ID, h.f.Pipe.ID))

	after, err := h.progress.Browse(ctx, h.project.ID)
	require.NoError(t, err)
	assert.False(t, findRow(t, after, h.f.Pipe.ID).IsOverridden)
	assert.Equal(t, before.Phases, after.Phases)
	assert.Equal(t, before.WBS, after.WBS)
	assert.Equal(t, before.Totals, after.Totals)

	e, err := h.entryRepo.GetByKey(ctx, h.project.ID, h.f.Pipe.ID, day("2025-03-03"))
	require.NoError(t, err)
	assert.Equal(t, h.f.PhaseTF1.ID, e.PhaseID)
	assert.Equal(t, h.f.TankFarm.ID, e.WBSID)

	_, err = h.overrideRepo.Get(ctx, h.project.ID, h.f.Pipe.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReassign_ToOriginalPhaseActsAsRevert(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.save(t, h.f.Pipe, "2025-03-03", 1)

	require.NoError(t, h.phases.Reassign(ctx, h.project.ID, h.f.Pipe.ID, h.f.PhaseTF2.ID))
	require.NoError(t, h.phases.Reassign(ctx, h.project.ID, h.f.Pipe.ID, h.f.PhaseTF1.ID))

	_, err := h.overrideRepo.Get(ctx, h.project.ID, h.f.Pipe.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "no self-referential override")

	e, err := h.entryRepo.GetByKey(ctx, h.project.ID, h.f.Pipe.ID, day("2025-03-03"))
	require.NoError(t, err)
	assert.Equal(t, h.f.PhaseTF1.ID, e.PhaseID)

	// And from the Original state it creates nothing.
	require.NoError(t, h.phases.Reassign(ctx, h.project.ID, h.f.Pipe.ID, h.f.PhaseTF1.ID))
	list, err := h.overrideRepo.ListByProject(ctx, h.project.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReassign_RetargetKeepsOriginalSnapshot(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	tf3 := testutil.NewTestPhase(h.f.TankFarm, "100-03", 3)
	require.NoError(t, h.estimateRepo.CreatePhase(ctx, tf3))

	require.NoError(t, h.phases.Reassign(ctx, h.project.ID, h.f.Pipe.ID, h.f.PhaseTF2.ID))
	require.NoError(t, h.phases.Reassign(ctx, h.project.ID, h.f.Pipe.ID, tf3.ID))

	o, err := h.overrideRepo.Get(ctx, h.project.ID, h.f.Pipe.ID)
	require.NoError(t, err)
	assert.Equal(t, tf3.ID, o.OverridePhaseID)
	assert.Equal(t, h.f.PhaseTF1.ID, o.OriginalPhaseID, "original snapshot is never overwritten")
}

func TestReassign_CrossWBSRejectedAndNothingChanges(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.save(t, h.f.Pipe, "2025-03-03", 2)
	require.NoError(t, h.phases.Reassign(ctx, h.project.ID, h.f.Pipe.ID, h.f.PhaseTF2.ID))

	err := h.phases.Reassign(ctx, h.project.ID, h.f.Pipe.ID, h.f.PhasePR.ID)
	require.ErrorIs(t, err, domain.ErrCrossWBSReassign)

	e, err := h.entryRepo.GetByKey(ctx, h.project.ID, h.f.Pipe.ID, day("2025-03-03"))
	require.NoError(t, err)
	assert.Equal(t, h.f.PhaseTF2.ID, e.PhaseID)
	o, err := h.overrideRepo.Get(ctx, h.project.ID, h.f.Pipe.ID)
	require.NoError(t, err)
	assert.Equal(t, h.f.PhaseTF2.ID, o.OverridePhaseID)
}

func TestReassign_ValidatesInputs(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	other := testutil.NewEstimateFixture("Other Job")
	seedEstimate(t, h.estimateRepo, other.Estimate)

	assert.ErrorIs(t, h.phases.Reassign(ctx, "missing", h.f.Pipe.ID, h.f.PhaseTF2.ID), domain.ErrNotFound)
	assert.ErrorIs(t, h.phases.Reassign(ctx, h.project.ID, "missing", h.f.PhaseTF2.ID), domain.ErrNotFound)
	assert.ErrorIs(t, h.phases.Reassign(ctx, h.project.ID, h.f.Pipe.ID, "missing"), domain.ErrNotFound)
	assert.ErrorIs(t, h.phases.Reassign(ctx, h.project.ID, other.Pipe.ID, h.f.PhaseTF2.ID), domain.ErrNotFound)
	assert.ErrorIs(t, h.phases.Reassign(ctx, h.project.ID, h.f.Pipe.ID, other.PhaseTF2.ID), domain.ErrPhaseOutsideProposal)
}

func TestRevert_WithoutOverrideIsNoop(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	assert.NoError(t, h.phases.Revert(ctx, h.project.ID, h.f.Pipe.ID))
	assert.ErrorIs(t, h.phases.Revert(ctx, "missing", h.f.Pipe.ID), domain.ErrNotFound)
}

func TestReassign_RollbackOnOverrideWriteFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.save(t, h.f.Pipe, "2025-03-03", 2)

	// ExecContext #1 = entry placement rewrite, #2 = override insert.
	failUoW := &testutil.FailOnNthExecUoW{DB: h.db, FailOn: 2, Err: fmt.Errorf("injected override failure")}
	svc := NewPhaseOverrideService(failUoW)

	err := svc.Reassign(ctx, h.project.ID, h.f.Pipe.ID, h.f.PhaseTF2.ID)
	require.Error(t, err)

	e, err := h.entryRepo.GetByKey(ctx, h.project.ID, h.f.Pipe.ID, day("2025-03-03"))
	require.NoError(t, err)
	assert.Equal(t, h.f.PhaseTF1.ID, e.PhaseID, "placement rewrite rolled back")
}
