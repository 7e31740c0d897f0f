package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wmhmc/camp-attendance-api/internal/models"
	appErrors "github.com/wmhmc/camp-attendance-api/pkg/errors"
)

type campRepository interface {
	List(ctx context.Context) ([]models.Camp, error)
	FindByID(ctx context.Context, id int64) (*models.Camp, error)
	Create(ctx context.Context, camp *models.Camp) error
	Delete(ctx context.Context, id int64) error
}

// CreateCampRequest represents the payload for registering a camp.
type CreateCampRequest struct {
	Title    string `json:"title" validate:"required"`
	CampDate string `json:"campDate" validate:"required"`
}

// CampService orchestrates camp registry operations.
type CampService struct {
	repo      campRepository
	gate      *WriteGate
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCampService constructs a CampService.
func NewCampService(repo campRepository, gate *WriteGate, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CampService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampService{repo: repo, gate: gate, cache: cache, validator: validate, logger: logger}
}

// List returns every camp, most recent first.
func (s *CampService) List(ctx context.Context) ([]models.Camp, error) {
	camps, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list camps")
	}
	return camps, nil
}

// Get returns a camp by id.
func (s *CampService) Get(ctx context.Context, id int64) (*models.Camp, error) {
	camp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "camp not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load camp")
	}
	return camp, nil
}

// Create registers a new camp. Titles are not unique; several camps may
// share a title or date.
func (s *CampService) Create(ctx context.Context, req CreateCampRequest) (*models.Camp, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid camp payload")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title is required")
	}
	campDate, err := time.Parse(models.DateLayout, strings.TrimSpace(req.CampDate))
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid campDate %q, expected %s", req.CampDate, models.DateLayout))
	}

	camp := &models.Camp{Title: title, CampDate: campDate}
	if err := s.repo.Create(ctx, camp); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create camp")
	}
	s.invalidateDashboard(ctx)
	return camp, nil
}

// Delete removes a camp and cascades its assignment rows, identically to
// staff deletion.
func (s *CampService) Delete(ctx context.Context, id int64) error {
	if s.gate != nil {
		s.gate.Lock()
		defer s.gate.Unlock()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "camp not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete camp")
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *CampService) invalidateDashboard(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, dashboardCachePattern)
	}
}
