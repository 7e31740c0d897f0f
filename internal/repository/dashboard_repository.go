package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/wmhmc/camp-attendance-api/internal/models"
)

// DashboardRepository serves the aggregate queries behind the overview page.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// CountStaff returns the total number of staff records.
func (r *DashboardRepository) CountStaff(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM staff`)
}

// CountCamps returns the total number of camp records.
func (r *DashboardRepository) CountCamps(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM camps`)
}

// CountAssignments returns the total number of assignment rows.
func (r *DashboardRepository) CountAssignments(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM assignments`)
}

// CountByCategory tallies staff per category.
func (r *DashboardRepository) CountByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	const query = `SELECT category, COUNT(*) AS count FROM staff GROUP BY category ORDER BY category`
	counts := []models.CategoryCount{}
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count staff by category: %w", err)
	}
	return counts, nil
}

// CountPGsByYear tallies postgraduate staff per study year.
func (r *DashboardRepository) CountPGsByYear(ctx context.Context) ([]models.PGYearCount, error) {
	const query = `SELECT pg_year, COUNT(*) AS count FROM staff WHERE category = $1 GROUP BY pg_year ORDER BY pg_year`
	counts := []models.PGYearCount{}
	if err := r.db.SelectContext(ctx, &counts, query, models.CategoryPG); err != nil {
		return nil, fmt.Errorf("count pgs by year: %w", err)
	}
	return counts, nil
}

func (r *DashboardRepository) count(ctx context.Context, query string) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("dashboard count: %w", err)
	}
	return total, nil
}
