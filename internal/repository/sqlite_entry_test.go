package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/momentumhq/momentum/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRepo_CreateAndGetByKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	f, proj := seedFixture(t, db)
	repo := NewSQLiteEntryRepo(db)

	e := newEntry(proj.ID, f.Pipe, "2025-03-03", 2.5)
	e.Notes = "north rack"
	e.EnteredBy = "dana"
	e.WBSID = f.TankFarm.ID
	require.NoError(t, repo.Create(ctx, e))

	fetched, err := repo.GetByKey(ctx, proj.ID, f.Pipe.ID, day("2025-03-03"))
	require.NoError(t, err)
	assert.Equal(t, e.ID, fetched.ID)
	assert.Equal(t, 2.5, fetched.Quantity)
	assert.Equal(t, "north rack", fetched.Notes)
	assert.Equal(t, "dana", fetched.EnteredBy)
	assert.Equal(t, f.PhaseTF1.ID, fetched.PhaseID)
	assert.Equal(t, f.TankFarm.ID, fetched.WBSID)
	assert.Equal(t, "2025-03-03", fetched.EntryDate.Format(dateLayout))

	_, err = repo.GetByKey(ctx, proj.ID, f.Pipe.ID, day("2025-03-04"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntryRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	f, proj := seedFixture(t, db)
	repo := NewSQLiteEntryRepo(db)

	e := newEntry(proj.ID, f.Pipe, "2025-03-03", 2)
	require.NoError(t, repo.Create(ctx, e))

	e.Quantity = 3
	e.Notes = "revised"
	e.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.Update(ctx, e))

	fetched, err := repo.GetByKey(ctx, proj.ID, f.Pipe.ID, e.EntryDate)
	require.NoError(t, err)
	assert.Equal(t, 3.0, fetched.Quantity)
	assert.Equal(t, "revised", fetched.Notes)

	require.NoError(t, repo.Delete(ctx, e.ID))
	_, err = repo.GetByKey(ctx, proj.ID, f.Pipe.ID, e.EntryDate)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, e.ID), ErrNotFound)
}

func TestEntryRepo_SumOtherDays(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	f, proj := seedFixture(t, db)
	repo := NewSQLiteEntryRepo(db)

	require.NoError(t, repo.Create(ctx, newEntry(proj.ID, f.Pipe, "2025-03-03", 2)))
	require.NoError(t, repo.Create(ctx, newEntry(proj.ID, f.Pipe, "2025-03-04", 3)))
	require.NoError(t, repo.Create(ctx, newEntry(proj.ID, f.Steel, "2025-03-04", 7)))

	sum, err := repo.SumOtherDays(ctx, proj.ID, f.Pipe.ID, day("2025-03-04"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, sum)

	sum, err = repo.SumOtherDays(ctx, proj.ID, f.Pipe.ID, day("2025-03-10"))
	require.NoError(t, err)
	assert.Equal(t, 5.0, sum)

	sum, err = repo.SumOtherDays(ctx, proj.ID, f.Supports.ID, day("2025-03-10"))
	require.NoError(t, err)
	assert.Zero(t, sum)
}

func TestEntryRepo_SumByActivity(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	f, proj := seedFixture(t, db)
	repo := NewSQLiteEntryRepo(db)

	require.NoError(t, repo.Create(ctx, newEntry(proj.ID, f.Pipe, "2025-03-03", 2)))
	require.NoError(t, repo.Create(ctx, newEntry(proj.ID, f.Pipe, "2025-03-04", 3)))
	require.NoError(t, repo.Create(ctx, newEntry(proj.ID, f.Steel, "2025-03-04", 7)))

	sums, err := repo.SumByActivity(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{f.Pipe.ID: 5, f.Steel.ID: 7}, sums)
}

func TestEntryRepo_ListForDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	f, proj := seedFixture(t, db)
	repo := NewSQLiteEntryRepo(db)

	require.NoError(t, repo.Create(ctx, newEntry(proj.ID, f.Pipe, "2025-03-03", 2)))
	require.NoError(t, repo.Create(ctx, newEntry(proj.ID, f.Steel, "2025-03-03", 1)))
	require.NoError(t, repo.Create(ctx, newEntry(proj.ID, f.Pipe, "2025-03-04", 3)))

	entries, err := repo.ListForDate(ctx, proj.ID, day("2025-03-03"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = repo.ListForDate(ctx, proj.ID, day("2025-03-05"))
	require.NoError(t, err)
	assert.Empty(t, entries, "no interpolation for missing dates")
}

func TestEntryRepo_ListRecent_OrderAndLimit(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	f, proj := seedFixture(t, db)
	repo := NewSQLiteEntryRepo(db)

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Create(ctx, newEntry(proj.ID, f.Pipe, fmt.Sprintf("2025-03-0%d", i), 1)))
	}

	entries, err := repo.ListRecent(ctx, proj.ID, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2025-03-05", entries[0].EntryDate.Format(dateLayout))
	assert.Equal(t, "2025-03-03", entries[2].EntryDate.Format(dateLayout))

	all, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "2025-03-01", all[0].EntryDate.Format(dateLayout), "project listing is chronological")
}

func TestEntryRepo_RewritePlacement(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	f, proj := seedFixture(t, db)
	repo := NewSQLiteEntryRepo(db)

	require.NoError(t, repo.Create(ctx, newEntry(proj.ID, f.Pipe, "2025-03-03", 2)))
	require.NoError(t, repo.Create(ctx, newEntry(proj.ID, f.Pipe, "2025-03-04", 3)))
	other := newEntry(proj.ID, f.Steel, "2025-03-04", 1)
	require.NoError(t, repo.Create(ctx, other))

	n, err := repo.RewritePlacement(ctx, proj.ID, f.Pipe.ID, f.PhaseTF2.ID, f.TankFarm.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	entries, err := repo.ListByProject(ctx, proj.ID)
	require.NoError(t, err)
	for _, e := range entries {
		if e.ActivityID == f.Pipe.ID {
			assert.Equal(t, f.PhaseTF2.ID, e.PhaseID)
			assert.Equal(t, f.TankFarm.ID, e.WBSID)
		} else {
			assert.Equal(t, f.PhasePR.ID, e.PhaseID, "other activities untouched")
		}
	}
}
