package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/domain"
)

// entryColumns is the canonical SELECT column list for completion_entries.
const entryColumns = `id, project_id, activity_id, entry_date, quantity, notes, entered_by,
		phase_id, wbs_id, created_at, updated_at`

// SQLiteEntryRepo implements EntryRepo using a SQLite database.
type SQLiteEntryRepo struct {
	db db.DBTX
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo.
func NewSQLiteEntryRepo(conn db.DBTX) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: conn}
}

func (r *SQLiteEntryRepo) Create(ctx context.Context, e *domain.CompletionEntry) error {
	query := `INSERT INTO completion_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		e.ActivityID,
		e.EntryDate.Format(dateLayout),
		e.Quantity,
		e.Notes,
		e.EnteredBy,
		e.PhaseID,
		e.WBSID,
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting completion entry: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) GetByKey(ctx context.Context, projectID, activityID string, date time.Time) (*domain.CompletionEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM completion_entries
		WHERE project_id = ? AND activity_id = ? AND entry_date = ?`
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, projectID, activityID, date.Format(dateLayout)))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("completion entry: %w", ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

// Update patches quantity, notes and author in place. Placement is left alone.
func (r *SQLiteEntryRepo) Update(ctx context.Context, e *domain.CompletionEntry) error {
	query := `UPDATE completion_entries SET quantity = ?, notes = ?, entered_by = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, e.Quantity, e.Notes, e.EnteredBy, e.UpdatedAt.Format(time.RFC3339), e.ID)
	if err != nil {
		return fmt.Errorf("updating completion entry: %w", err)
	}
	return requireAffected(res, "completion entry")
}

func (r *SQLiteEntryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM completion_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting completion entry: %w", err)
	}
	return requireAffected(res, "completion entry")
}

// SumOtherDays totals the activity's quantity on every date except excludeDate.
func (r *SQLiteEntryRepo) SumOtherDays(ctx context.Context, projectID, activityID string, excludeDate time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM completion_entries
		WHERE project_id = ? AND activity_id = ? AND entry_date != ?`
	var total float64
	if err := r.db.QueryRowContext(ctx, query, projectID, activityID, excludeDate.Format(dateLayout)).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing other days: %w", err)
	}
	return total, nil
}

// SumByActivity returns completed quantity per activity across all dates.
func (r *SQLiteEntryRepo) SumByActivity(ctx context.Context, projectID string) (map[string]float64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT activity_id, SUM(quantity) FROM completion_entries WHERE project_id = ? GROUP BY activity_id`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("summing entries by activity: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]float64)
	for rows.Next() {
		var id string
		var qty float64
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, fmt.Errorf("scanning activity sum: %w", err)
		}
		sums[id] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity sums: %w", err)
	}
	return sums, nil
}

func (r *SQLiteEntryRepo) ListForDate(ctx context.Context, projectID string, date time.Time) ([]*domain.CompletionEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM completion_entries
		WHERE project_id = ? AND entry_date = ? ORDER BY created_at, id`
	return r.list(ctx, query, projectID, date.Format(dateLayout))
}

// ListByProject returns every entry of the project in date order.
func (r *SQLiteEntryRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.CompletionEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM completion_entries
		WHERE project_id = ? ORDER BY entry_date, created_at, id`
	return r.list(ctx, query, projectID)
}

// ListRecent returns up to limit entries, most recent date first.
func (r *SQLiteEntryRepo) ListRecent(ctx context.Context, projectID string, limit int) ([]*domain.CompletionEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM completion_entries
		WHERE project_id = ? ORDER BY entry_date DESC, created_at DESC, id LIMIT ?`
	return r.list(ctx, query, projectID, limit)
}

// RewritePlacement moves every entry of the activity to the given phase/WBS
// and returns the number of rows rewritten.
func (r *SQLiteEntryRepo) RewritePlacement(ctx context.Context, projectID, activityID, phaseID, wbsID string) (int64, error) {
	query := `UPDATE completion_entries SET phase_id = ?, wbs_id = ?, updated_at = ?
		WHERE project_id = ? AND activity_id = ?`
	res, err := r.db.ExecContext(ctx, query, phaseID, wbsID, nowUTC(), projectID, activityID)
	if err != nil {
		return 0, fmt.Errorf("rewriting entry placement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rewritten entries: %w", err)
	}
	return n, nil
}

func (r *SQLiteEntryRepo) list(ctx context.Context, query string, args ...any) ([]*domain.CompletionEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing completion entries: %w", err)
	}
	defer rows.Close()

	var out []*domain.CompletionEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating completion entries: %w", err)
	}
	return out, nil
}

func scanEntry(row rowScanner) (*domain.CompletionEntry, error) {
	var e domain.CompletionEntry
	var dateStr, createdAtStr, updatedAtStr string
	err := row.Scan(
		&e.ID, &e.ProjectID, &e.ActivityID, &dateStr, &e.Quantity, &e.Notes, &e.EnteredBy,
		&e.PhaseID, &e.WBSID, &createdAtStr, &updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning completion entry: %w", err)
	}
	if e.EntryDate, err = time.Parse(dateLayout, dateStr); err != nil {
		return nil, fmt.Errorf("parsing entry_date: %w", err)
	}
	if e.CreatedAt, e.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing entry timestamps: %w", err)
	}
	return &e, nil
}
