package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/wmhmc/camp-attendance-api/internal/models"
)

// StaffRepository manages persistence for staff records.
type StaffRepository struct {
	db *sqlx.DB
}

// NewStaffRepository constructs a StaffRepository.
func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// List returns every staff record in directory order: serial number when
// present, falling back to id, ties broken by id.
func (r *StaffRepository) List(ctx context.Context) ([]models.Staff, error) {
	const query = `SELECT id, serial_no, name, category, pg_year, joining_date, camps_attended
FROM staff ORDER BY COALESCE(serial_no, id), id`
	staff := []models.Staff{}
	if err := r.db.SelectContext(ctx, &staff, query); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return staff, nil
}

// FindByID fetches a staff record by id.
func (r *StaffRepository) FindByID(ctx context.Context, id int64) (*models.Staff, error) {
	const query = `SELECT id, serial_no, name, category, pg_year, joining_date, camps_attended FROM staff WHERE id = $1`
	var staff models.Staff
	if err := r.db.GetContext(ctx, &staff, query, id); err != nil {
		return nil, err
	}
	return &staff, nil
}

// ExistingIDs reports which of the provided staff ids are present.
func (r *StaffRepository) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	found := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	query := fmt.Sprintf("SELECT id FROM staff WHERE id IN (%s)", placeholders(len(ids)))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	var present []int64
	if err := r.db.SelectContext(ctx, &present, query, args...); err != nil {
		return nil, fmt.Errorf("check staff ids: %w", err)
	}
	for _, id := range present {
		found[id] = true
	}
	return found, nil
}

// Create inserts a new staff record and assigns its id. The attendance
// counter always starts at zero regardless of the caller-supplied value.
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	const query = `INSERT INTO staff (serial_no, name, category, pg_year, joining_date, camps_attended)
VALUES ($1, $2, $3, $4, $5, 0) RETURNING id`
	if err := r.db.GetContext(ctx, &staff.ID, query,
		staff.SerialNo, staff.Name, staff.Category, staff.PGYear, staff.JoiningDate); err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	staff.CampsAttended = 0
	return nil
}

// Update replaces every field of an existing staff record except the id and
// the derived attendance counter.
func (r *StaffRepository) Update(ctx context.Context, staff *models.Staff) error {
	const query = `UPDATE staff SET serial_no = $2, name = $3, category = $4, pg_year = $5, joining_date = $6 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query,
		staff.ID, staff.SerialNo, staff.Name, staff.Category, staff.PGYear, staff.JoiningDate); err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	return nil
}

// Delete removes a staff record, cascades its assignment rows, and recounts
// attendance for the remaining staff, all in one transaction.
func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin staff delete tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE staff_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete staff assignments: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete staff: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		_ = tx.Rollback()
		return sql.ErrNoRows
	}
	if err := recountAttendance(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit staff delete tx: %w", err)
	}
	return nil
}

// BulkInsert appends the provided staff rows. When replace is set, the
// directory is cleared first along with every assignment row that would
// otherwise be orphaned.
func (r *StaffRepository) BulkInsert(ctx context.Context, staff []models.Staff, replace bool) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin staff import tx: %w", err)
	}
	if replace {
		if _, err := tx.ExecContext(ctx, `DELETE FROM assignments`); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("clear assignments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM staff`); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("clear staff: %w", err)
		}
	}
	const query = `INSERT INTO staff (serial_no, name, category, pg_year, joining_date, camps_attended)
VALUES ($1, $2, $3, $4, $5, $6)`
	inserted := 0
	for i := range staff {
		row := &staff[i]
		if _, err := tx.ExecContext(ctx, query,
			row.SerialNo, row.Name, row.Category, row.PGYear, row.JoiningDate, row.CampsAttended); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("import staff row: %w", err)
		}
		inserted++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit staff import tx: %w", err)
	}
	return inserted, nil
}

func placeholders(n int) string {
	values := make([]string, n)
	for i := 1; i <= n; i++ {
		values[i-1] = fmt.Sprintf("$%d", i)
	}
	return strings.Join(values, ",")
}
