package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/wmhmc/camp-attendance-api/internal/models"
)

// AssignmentRepository manages the staff/camp assignment ledger.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs an AssignmentRepository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const assignmentDetailQuery = `SELECT a.id, a.camp_id, a.staff_id, c.title AS camp_title, s.name AS staff_name
FROM assignments a
JOIN camps c ON c.id = a.camp_id
JOIN staff s ON s.id = a.staff_id`

// ListAll returns every assignment with camp and staff display fields.
func (r *AssignmentRepository) ListAll(ctx context.Context) ([]models.AssignmentDetail, error) {
	query := assignmentDetailQuery + ` ORDER BY c.camp_date DESC, a.id`
	details := []models.AssignmentDetail{}
	if err := r.db.SelectContext(ctx, &details, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return details, nil
}

// ListForCamp returns the assignments of a single camp.
func (r *AssignmentRepository) ListForCamp(ctx context.Context, campID int64) ([]models.AssignmentDetail, error) {
	query := assignmentDetailQuery + ` WHERE a.camp_id = $1 ORDER BY a.id`
	details := []models.AssignmentDetail{}
	if err := r.db.SelectContext(ctx, &details, query, campID); err != nil {
		return nil, fmt.Errorf("list camp assignments: %w", err)
	}
	return details, nil
}

// ListForStaff returns the assignments of a single staff member.
func (r *AssignmentRepository) ListForStaff(ctx context.Context, staffID int64) ([]models.AssignmentDetail, error) {
	query := assignmentDetailQuery + ` WHERE a.staff_id = $1 ORDER BY c.camp_date DESC, a.id`
	details := []models.AssignmentDetail{}
	if err := r.db.SelectContext(ctx, &details, query, staffID); err != nil {
		return nil, fmt.Errorf("list staff assignments: %w", err)
	}
	return details, nil
}

// Assign inserts the (campID, staffID) pairs that do not already exist and
// recounts attendance in the same transaction. Existing pairs are skipped,
// making bulk assignment idempotent. Returns the number of new rows.
func (r *AssignmentRepository) Assign(ctx context.Context, campID int64, staffIDs []int64) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin assign tx: %w", err)
	}
	const query = `INSERT INTO assignments (camp_id, staff_id) VALUES ($1, $2) ON CONFLICT (camp_id, staff_id) DO NOTHING`
	inserted := 0
	for _, staffID := range staffIDs {
		res, err := tx.ExecContext(ctx, query, campID, staffID)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("assign staff %d to camp %d: %w", staffID, campID, err)
		}
		if affected, err := res.RowsAffected(); err == nil {
			inserted += int(affected)
		}
	}
	if err := recountAttendance(ctx, tx); err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit assign tx: %w", err)
	}
	return inserted, nil
}

// Unassign removes a single (campID, staffID) pair and recounts attendance.
// Returns whether a row was actually removed.
func (r *AssignmentRepository) Unassign(ctx context.Context, campID, staffID int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin unassign tx: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE camp_id = $1 AND staff_id = $2`, campID, staffID)
	if err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("unassign staff %d from camp %d: %w", staffID, campID, err)
	}
	affected, _ := res.RowsAffected()
	if err := recountAttendance(ctx, tx); err != nil {
		_ = tx.Rollback()
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit unassign tx: %w", err)
	}
	return affected > 0, nil
}

// Recount republishes every camps_attended counter outside of a mutation.
// Idempotent; running it twice in a row changes nothing.
func (r *AssignmentRepository) Recount(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, recountAttendanceQuery); err != nil {
		return fmt.Errorf("recount attendance: %w", err)
	}
	return nil
}
