package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wmhmc/camp-attendance-api/internal/models"
	appErrors "github.com/wmhmc/camp-attendance-api/pkg/errors"
)

const (
	dashboardCacheKey     = "dashboard:summary"
	dashboardCachePattern = "dashboard:*"
)

type dashboardRepository interface {
	CountStaff(ctx context.Context) (int, error)
	CountCamps(ctx context.Context) (int, error)
	CountAssignments(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context) ([]models.CategoryCount, error)
	CountPGsByYear(ctx context.Context) ([]models.PGYearCount, error)
}

// DashboardService composes the overview summary, optionally via cache.
type DashboardService struct {
	repo     dashboardRepository
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo dashboardRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Summary returns the aggregate overview figures and whether the cache was hit.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, bool, error) {
	if s.cache != nil {
		var cached models.DashboardSummary
		if hit, err := s.cache.Get(ctx, dashboardCacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	summary, err := s.buildSummary(ctx)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardCacheKey, summary, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache store failed", zap.Error(err))
		}
	}
	return summary, false, nil
}

func (s *DashboardService) buildSummary(ctx context.Context) (*models.DashboardSummary, error) {
	totalStaff, err := s.repo.CountStaff(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count staff")
	}
	totalCamps, err := s.repo.CountCamps(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count camps")
	}
	totalAssignments, err := s.repo.CountAssignments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count assignments")
	}
	byCategory, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count staff by category")
	}
	pgsByYear, err := s.repo.CountPGsByYear(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count pgs by year")
	}

	// All five fixed categories always appear, even when empty.
	categoryCounts := make(map[string]int, len(models.Categories))
	for _, category := range models.Categories {
		categoryCounts[string(category)] = 0
	}
	for _, c := range byCategory {
		categoryCounts[string(c.Category)] = c.Count
	}

	yearCounts := make(map[string]int, len(pgsByYear))
	for _, c := range pgsByYear {
		year := "Unspecified"
		if c.PGYear != nil && *c.PGYear != "" {
			year = *c.PGYear
		}
		yearCounts[year] += c.Count
	}

	return &models.DashboardSummary{
		TotalStaff:       totalStaff,
		CategoryCounts:   categoryCounts,
		PGsByYear:        yearCounts,
		TotalCamps:       totalCamps,
		TotalAssignments: totalAssignments,
	}, nil
}
