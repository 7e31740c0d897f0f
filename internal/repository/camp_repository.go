package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/wmhmc/camp-attendance-api/internal/models"
)

// CampRepository manages persistence for camp records.
type CampRepository struct {
	db *sqlx.DB
}

// NewCampRepository constructs a CampRepository.
func NewCampRepository(db *sqlx.DB) *CampRepository {
	return &CampRepository{db: db}
}

// List returns every camp, most recent first.
func (r *CampRepository) List(ctx context.Context) ([]models.Camp, error) {
	const query = `SELECT id, title, camp_date FROM camps ORDER BY camp_date DESC, id DESC`
	camps := []models.Camp{}
	if err := r.db.SelectContext(ctx, &camps, query); err != nil {
		return nil, fmt.Errorf("list camps: %w", err)
	}
	return camps, nil
}

// FindByID fetches a camp by id.
func (r *CampRepository) FindByID(ctx context.Context, id int64) (*models.Camp, error) {
	const query = `SELECT id, title, camp_date FROM camps WHERE id = $1`
	var camp models.Camp
	if err := r.db.GetContext(ctx, &camp, query, id); err != nil {
		return nil, err
	}
	return &camp, nil
}

// Create inserts a new camp record and assigns its id.
func (r *CampRepository) Create(ctx context.Context, camp *models.Camp) error {
	const query = `INSERT INTO camps (title, camp_date) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &camp.ID, query, camp.Title, camp.CampDate); err != nil {
		return fmt.Errorf("create camp: %w", err)
	}
	return nil
}

// Delete removes a camp, cascades its assignment rows, and recounts
// attendance, mirroring staff deletion.
func (r *CampRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin camp delete tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE camp_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete camp assignments: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM camps WHERE id = $1`, id)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete camp: %w", err)
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
		return fmt.Errorf("commit camp delete tx: %w", err)
	}
	return nil
}
