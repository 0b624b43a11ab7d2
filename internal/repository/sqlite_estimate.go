package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/domain"
)

const activityColumns = `id, proposal_id, phase_id, description, type, quantity, unit,
		craft_constant, welder_constant, sort_order`

const phaseColumns = `id, proposal_id, wbs_id, code, description, size, spec, insulation, sheet, sort_order`

// SQLiteEstimateRepo implements EstimateRepo using a SQLite database.
type SQLiteEstimateRepo struct {
	db db.DBTX
}

// NewSQLiteEstimateRepo creates a new SQLiteEstimateRepo.
func NewSQLiteEstimateRepo(conn db.DBTX) *SQLiteEstimateRepo {
	return &SQLiteEstimateRepo{db: conn}
}

func (r *SQLiteEstimateRepo) CreateProposal(ctx context.Context, p *domain.Proposal) error {
	query := `INSERT INTO proposals (id, proposal_number, job_number, name, owner, location, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ProposalNumber, p.JobNumber, p.Name, p.Owner, p.Location,
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting proposal: %w", err)
	}
	return nil
}

func (r *SQLiteEstimateRepo) CreateWBSItem(ctx context.Context, w *domain.WBSItem) error {
	query := `INSERT INTO wbs_items (id, proposal_id, code, name, sort_order) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, w.ID, w.ProposalID, w.Code, w.Name, w.SortOrder); err != nil {
		return fmt.Errorf("inserting wbs item %s: %w", w.Code, err)
	}
	return nil
}

func (r *SQLiteEstimateRepo) CreatePhase(ctx context.Context, ph *domain.Phase) error {
	query := `INSERT INTO phases (` + phaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ph.ID, ph.ProposalID, ph.WBSID, ph.Code, ph.Description,
		ph.Size, ph.Spec, ph.Insulation, ph.Sheet, ph.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("inserting phase %s: %w", ph.Code, err)
	}
	return nil
}

func (r *SQLiteEstimateRepo) CreateActivity(ctx context.Context, a *domain.Activity) error {
	var craft, welder interface{}
	if a.Labor != nil {
		craft, welder = a.Labor.CraftConstant, a.Labor.WelderConstant
	}
	query := `INSERT INTO activities (` + activityColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.ProposalID, a.PhaseID, a.Description, string(a.Type),
		a.Quantity, a.Unit, craft, welder, a.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("inserting activity %q: %w", a.Description, err)
	}
	return nil
}

func (r *SQLiteEstimateRepo) GetProposal(ctx context.Context, id string) (*domain.Proposal, error) {
	query := `SELECT id, proposal_number, job_number, name, owner, location, created_at
		FROM proposals WHERE id = ?`
	var p domain.Proposal
	var createdAtStr string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.ProposalNumber, &p.JobNumber, &p.Name, &p.Owner, &p.Location, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("proposal: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning proposal: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing proposal created_at: %w", err)
	}
	return &p, nil
}

// ListProposals returns every imported proposal, newest first, with its
// activity count and the id of the tracking project if one exists.
func (r *SQLiteEstimateRepo) ListProposals(ctx context.Context) ([]ProposalListing, error) {
	query := `SELECT p.id, p.proposal_number, p.job_number, p.name, p.owner, p.location, p.created_at,
			(SELECT COUNT(*) FROM activities a WHERE a.proposal_id = p.id),
			COALESCE(pr.id, '')
		FROM proposals p
		LEFT JOIN projects pr ON pr.proposal_id = p.id
		ORDER BY p.created_at DESC, p.proposal_number`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing proposals: %w", err)
	}
	defer rows.Close()

	var out []ProposalListing
	for rows.Next() {
		var l ProposalListing
		var createdAtStr string
		if err := rows.Scan(
			&l.Proposal.ID, &l.Proposal.ProposalNumber, &l.Proposal.JobNumber, &l.Proposal.Name,
			&l.Proposal.Owner, &l.Proposal.Location, &createdAtStr,
			&l.ActivityCount, &l.ProjectID,
		); err != nil {
			return nil, fmt.Errorf("scanning proposal row: %w", err)
		}
		if l.Proposal.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing proposal created_at: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating proposals: %w", err)
	}
	return out, nil
}

func (r *SQLiteEstimateRepo) GetActivity(ctx context.Context, id string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = ?`
	a, err := scanActivity(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("activity: %w", ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

func (r *SQLiteEstimateRepo) GetPhase(ctx context.Context, id string) (*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE id = ?`
	ph, err := scanPhase(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("phase: %w", ErrNotFound)
		}
		return nil, err
	}
	return ph, nil
}

// LoadEstimate reads a proposal's full hierarchy in four queries.
func (r *SQLiteEstimateRepo) LoadEstimate(ctx context.Context, proposalID string) (*domain.Estimate, error) {
	proposal, err := r.GetProposal(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	est := &domain.Estimate{Proposal: proposal}

	if est.WBS, err = r.listWBS(ctx, proposalID); err != nil {
		return nil, err
	}
	if est.Phases, err = r.listPhases(ctx, proposalID); err != nil {
		return nil, err
	}
	if est.Activities, err = r.listActivities(ctx, proposalID); err != nil {
		return nil, err
	}
	return est, nil
}

func (r *SQLiteEstimateRepo) listWBS(ctx context.Context, proposalID string) ([]*domain.WBSItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, proposal_id, code, name, sort_order FROM wbs_items
		 WHERE proposal_id = ? ORDER BY sort_order, code`, proposalID)
	if err != nil {
		return nil, fmt.Errorf("listing wbs items: %w", err)
	}
	defer rows.Close()

	var out []*domain.WBSItem
	for rows.Next() {
		var w domain.WBSItem
		if err := rows.Scan(&w.ID, &w.ProposalID, &w.Code, &w.Name, &w.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning wbs item: %w", err)
		}
		out = append(out, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wbs items: %w", err)
	}
	return out, nil
}

func (r *SQLiteEstimateRepo) listPhases(ctx context.Context, proposalID string) ([]*domain.Phase, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+phaseColumns+` FROM phases WHERE proposal_id = ? ORDER BY sort_order, code`, proposalID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var out []*domain.Phase
	for rows.Next() {
		ph, err := scanPhase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return out, nil
}

func (r *SQLiteEstimateRepo) listActivities(ctx context.Context, proposalID string) ([]*domain.Activity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE proposal_id = ? ORDER BY sort_order, id`, proposalID)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var out []*domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return out, nil
}

func scanPhase(row rowScanner) (*domain.Phase, error) {
	var ph domain.Phase
	err := row.Scan(
		&ph.ID, &ph.ProposalID, &ph.WBSID, &ph.Code, &ph.Description,
		&ph.Size, &ph.Spec, &ph.Insulation, &ph.Sheet, &ph.SortOrder,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning phase: %w", err)
	}
	return &ph, nil
}

// scanActivity attaches a labor record only when both constants are present.
func scanActivity(row rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	var typeStr string
	var craft, welder sql.NullFloat64
	err := row.Scan(
		&a.ID, &a.ProposalID, &a.PhaseID, &a.Description, &typeStr,
		&a.Quantity, &a.Unit, &craft, &welder, &a.SortOrder,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning activity: %w", err)
	}
	a.Type = domain.ActivityType(typeStr)

	craftPtr, welderPtr := nullableFloat(craft), nullableFloat(welder)
	if craftPtr != nil && welderPtr != nil {
		a.Labor = &domain.Labor{CraftConstant: *craftPtr, WelderConstant: *welderPtr}
	}
	return &a, nil
}
