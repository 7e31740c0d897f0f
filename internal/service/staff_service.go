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

type staffRepository interface {
	List(ctx context.Context) ([]models.Staff, error)
	FindByID(ctx context.Context, id int64) (*models.Staff, error)
	Create(ctx context.Context, staff *models.Staff) error
	Update(ctx context.Context, staff *models.Staff) error
	Delete(ctx context.Context, id int64) error
}

// StaffRequest represents the payload for creating or fully replacing a
// staff record. Updates have full-row replace semantics; the attendance
// counter is never part of the payload.
type StaffRequest struct {
	SerialNo    *int    `json:"serialNo" validate:"omitempty,gt=0"`
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	PGYear      *string `json:"pgYear" validate:"omitempty,max=50"`
	JoiningDate *string `json:"joiningDate" validate:"omitempty"`
}

// StaffService orchestrates staff directory operations.
type StaffService struct {
	repo      staffRepository
	gate      *WriteGate
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStaffService constructs a StaffService.
func NewStaffService(repo staffRepository, gate *WriteGate, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StaffService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{repo: repo, gate: gate, cache: cache, validator: validate, logger: logger}
}

// List returns the full staff directory in its default order.
func (s *StaffService) List(ctx context.Context) ([]models.Staff, error) {
	staff, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list staff")
	}
	return staff, nil
}

// Get returns a staff record by id.
func (s *StaffService) Get(ctx context.Context, id int64) (*models.Staff, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "staff not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load staff")
	}
	return staff, nil
}

// Create registers a new staff record. The attendance counter starts at zero.
func (s *StaffService) Create(ctx context.Context, req StaffRequest) (*models.Staff, error) {
	staff, err := s.buildRecord(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, staff); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create staff")
	}
	s.invalidateDashboard(ctx)
	return staff, nil
}

// Update replaces every field of an existing staff record except its id and
// the derived attendance counter.
func (s *StaffService) Update(ctx context.Context, id int64, req StaffRequest) (*models.Staff, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	staff, err := s.buildRecord(req)
	if err != nil {
		return nil, err
	}
	staff.ID = existing.ID
	staff.CampsAttended = existing.CampsAttended

	if err := s.repo.Update(ctx, staff); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update staff")
	}
	s.invalidateDashboard(ctx)
	return staff, nil
}

// Delete removes a staff record. Assignment rows referencing it are cascade
// deleted and attendance is recounted before the call returns.
func (s *StaffService) Delete(ctx context.Context, id int64) error {
	if s.gate != nil {
		s.gate.Lock()
		defer s.gate.Unlock()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "staff not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete staff")
	}
	s.invalidateDashboard(ctx)
	return nil
}

func (s *StaffService) buildRecord(req StaffRequest) (*models.Staff, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid staff payload")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	category := models.StaffCategory(strings.TrimSpace(req.Category))
	if !category.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown category %q", req.Category))
	}

	staff := &models.Staff{
		SerialNo: req.SerialNo,
		Name:     name,
		Category: category,
	}
	if category == models.CategoryPG {
		staff.PGYear = normalizeOptional(req.PGYear)
	}
	if req.JoiningDate != nil {
		raw := strings.TrimSpace(*req.JoiningDate)
		if raw != "" {
			parsed, err := time.Parse(models.DateLayout, raw)
			if err != nil {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid joiningDate %q, expected %s", raw, models.DateLayout))
			}
			staff.JoiningDate = &parsed
		}
	}
	return staff, nil
}

func (s *StaffService) invalidateDashboard(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, dashboardCachePattern)
	}
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
