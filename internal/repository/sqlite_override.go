package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/domain"
)

const overrideColumns = `id, project_id, activity_id, override_phase_id, original_phase_id, original_wbs_id,
		created_at, updated_at`

// SQLiteOverrideRepo implements OverrideRepo using a SQLite database.
type SQLiteOverrideRepo struct {
	db db.DBTX
}

// NewSQLiteOverrideRepo creates a new SQLiteOverrideRepo.
func NewSQLiteOverrideRepo(conn db.DBTX) *SQLiteOverrideRepo {
	return &SQLiteOverrideRepo{db: conn}
}

func (r *SQLiteOverrideRepo) Get(ctx context.Context, projectID, activityID string) (*domain.PhaseOverride, error) {
	query := `SELECT ` + overrideColumns + ` FROM phase_overrides WHERE project_id = ? AND activity_id = ?`
	o, err := scanOverride(r.db.QueryRowContext(ctx, query, projectID, activityID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("phase override: %w", ErrNotFound)
		}
		return nil, err
	}
	return o, nil
}

func (r *SQLiteOverrideRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.PhaseOverride, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+overrideColumns+` FROM phase_overrides WHERE project_id = ? ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing phase overrides: %w", err)
	}
	defer rows.Close()

	var out []*domain.PhaseOverride
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phase overrides: %w", err)
	}
	return out, nil
}

func (r *SQLiteOverrideRepo) Create(ctx context.Context, o *domain.PhaseOverride) error {
	query := `INSERT INTO phase_overrides (` + overrideColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.ProjectID, o.ActivityID, o.OverridePhaseID, o.OriginalPhaseID, o.OriginalWBSID,
		o.CreatedAt.Format(time.RFC3339), o.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phase override: %w", err)
	}
	return nil
}

// UpdateTarget patches only the target phase. The original snapshot is never rewritten.
func (r *SQLiteOverrideRepo) UpdateTarget(ctx context.Context, o *domain.PhaseOverride) error {
	query := `UPDATE phase_overrides SET override_phase_id = ?, updated_at = ?
		WHERE project_id = ? AND activity_id = ?`
	res, err := r.db.ExecContext(ctx, query, o.OverridePhaseID, o.UpdatedAt.Format(time.RFC3339), o.ProjectID, o.ActivityID)
	if err != nil {
		return fmt.Errorf("updating phase override: %w", err)
	}
	return requireAffected(res, "phase override")
}

func (r *SQLiteOverrideRepo) Delete(ctx context.Context, projectID, activityID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM phase_overrides WHERE project_id = ? AND activity_id = ?`, projectID, activityID)
	if err != nil {
		return fmt.Errorf("deleting phase override: %w", err)
	}
	return requireAffected(res, "phase override")
}

func scanOverride(row rowScanner) (*domain.PhaseOverride, error) {
	var o domain.PhaseOverride
	var createdAtStr, updatedAtStr string
	err := row.Scan(
		&o.ID, &o.ProjectID, &o.ActivityID, &o.OverridePhaseID, &o.OriginalPhaseID, &o.OriginalWBSID,
		&createdAtStr, &updatedAtStr,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning phase override: %w", err)
	}
	if o.CreatedAt, o.UpdatedAt, err = parseTimestamps(createdAtStr, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing phase override timestamps: %w", err)
	}
	return &o, nil
}
