package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillLastEntryDate(db); err != nil {
		return fmt.Errorf("backfilling last entry dates: %w", err)
	}
	if err := migrateBackfillEntryPlacement(db); err != nil {
		return fmt.Errorf("backfilling entry placement: %w", err)
	}
	return nil
}

var migrations = []string{
	// Estimate tables. Written once by import, read-only afterward.
	`CREATE TABLE IF NOT EXISTS proposals (
		id              TEXT PRIMARY KEY,
		proposal_number TEXT NOT NULL DEFAULT '',
		job_number      TEXT NOT NULL DEFAULT '',
		name            TEXT NOT NULL,
		owner           TEXT NOT NULL DEFAULT '',
		location        TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS wbs_items (
		id          TEXT PRIMARY KEY,
		proposal_id TEXT NOT NULL REFERENCES proposals(id) ON DELETE CASCADE,
		code        TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		sort_order  INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_wbs_items_proposal ON wbs_items(proposal_id)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id          TEXT PRIMARY KEY,
		proposal_id TEXT NOT NULL REFERENCES proposals(id) ON DELETE CASCADE,
		wbs_id      TEXT NOT NULL REFERENCES wbs_items(id) ON DELETE CASCADE,
		code        TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		size        TEXT NOT NULL DEFAULT '',
		spec        TEXT NOT NULL DEFAULT '',
		insulation  TEXT NOT NULL DEFAULT '',
		sheet       TEXT NOT NULL DEFAULT '',
		sort_order  INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phases_proposal ON phases(proposal_id)`,
	`CREATE INDEX IF NOT EXISTS idx_phases_wbs ON phases(wbs_id)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id              TEXT PRIMARY KEY,
		proposal_id     TEXT NOT NULL REFERENCES proposals(id) ON DELETE CASCADE,
		phase_id        TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		description     TEXT NOT NULL DEFAULT '',
		type            TEXT NOT NULL
		                CHECK(type IN ('labor','custom_labor','material','equipment','subcontract','cost')),
		quantity        REAL NOT NULL DEFAULT 0 CHECK(quantity >= 0),
		unit            TEXT NOT NULL DEFAULT '',
		craft_constant  REAL,
		welder_constant REAL,
		sort_order      INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activities_proposal ON activities(proposal_id)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_phase ON activities(phase_id)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id              TEXT PRIMARY KEY,
		proposal_id     TEXT NOT NULL UNIQUE REFERENCES proposals(id),
		name            TEXT NOT NULL,
		proposal_number TEXT NOT NULL DEFAULT '',
		job_number      TEXT NOT NULL DEFAULT '',
		owner           TEXT NOT NULL DEFAULT '',
		location        TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'active'
		                CHECK(status IN ('active','on-hold','completed','archived')),
		start_date      TEXT,
		end_date        TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	// activity_id has no foreign key: an entry may outlive its
	// activity and is skipped by reads.
	`CREATE TABLE IF NOT EXISTS completion_entries (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		activity_id TEXT NOT NULL,
		entry_date  TEXT NOT NULL,
		quantity    REAL NOT NULL CHECK(quantity >= 0),
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		UNIQUE (project_id, activity_id, entry_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_entries_project_date ON completion_entries(project_id, entry_date)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_project_activity ON completion_entries(project_id, activity_id)`,

	`CREATE TABLE IF NOT EXISTS phase_overrides (
		id                TEXT PRIMARY KEY,
		project_id        TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		activity_id       TEXT NOT NULL,
		override_phase_id TEXT NOT NULL,
		original_phase_id TEXT NOT NULL,
		original_wbs_id   TEXT NOT NULL,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL,
		UNIQUE (project_id, activity_id)
	)`,

	// Advisory timestamp of the most recent save.
	`ALTER TABLE projects ADD COLUMN last_entry_date TEXT`,

	// Entered-by identity and denormalized effective placement on entries.
	`ALTER TABLE completion_entries ADD COLUMN entered_by TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE completion_entries ADD COLUMN phase_id TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE completion_entries ADD COLUMN wbs_id TEXT NOT NULL DEFAULT ''`,
	`CREATE INDEX IF NOT EXISTS idx_entries_phase ON completion_entries(phase_id)`,
}

// migrateBackfillLastEntryDate stamps last_entry_date on projects that have
// entries but were created before the column existed. Idempotent: only rows
// with a NULL last_entry_date are touched.
func migrateBackfillLastEntryDate(db *sql.DB) error {
	ctx := context.Background()

	query := `UPDATE projects
		SET last_entry_date = (
			SELECT MAX(e.entry_date) FROM completion_entries e WHERE e.project_id = projects.id
		)
		WHERE last_entry_date IS NULL
		  AND EXISTS (SELECT 1 FROM completion_entries e WHERE e.project_id = projects.id)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("updating projects: %w", err)
	}
	return nil
}

// migrateBackfillEntryPlacement fills the denormalized phase/WBS of entries
// written before those columns existed. An active override wins over the
// activity's native phase. Entries whose activity is gone stay blank.
func migrateBackfillEntryPlacement(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM completion_entries WHERE phase_id = ''`).Scan(&count); err != nil {
		return fmt.Errorf("counting unplaced entries: %w", err)
	}
	if count == 0 {
		return nil
	}

	query := `UPDATE completion_entries
		SET phase_id = COALESCE(
				(SELECT o.override_phase_id FROM phase_overrides o
				 WHERE o.project_id = completion_entries.project_id
				   AND o.activity_id = completion_entries.activity_id),
				(SELECT a.phase_id FROM activities a WHERE a.id = completion_entries.activity_id),
				'')
		WHERE phase_id = ''`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("placing entries: %w", err)
	}

	query = `UPDATE completion_entries
		SET wbs_id = COALESCE((SELECT p.wbs_id FROM phases p WHERE p.id = completion_entries.phase_id), '')
		WHERE wbs_id = '' AND phase_id != ''`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("placing entry wbs: %w", err)
	}
	return nil
}
