package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wmhmc/camp-attendance-api/internal/models"
	appErrors "github.com/wmhmc/camp-attendance-api/pkg/errors"
)

type assignmentRepository interface {
	ListAll(ctx context.Context) ([]models.AssignmentDetail, error)
	ListForCamp(ctx context.Context, campID int64) ([]models.AssignmentDetail, error)
	ListForStaff(ctx context.Context, staffID int64) ([]models.AssignmentDetail, error)
	Assign(ctx context.Context, campID int64, staffIDs []int64) (int, error)
	Unassign(ctx context.Context, campID, staffID int64) (bool, error)
	Recount(ctx context.Context) error
}

type campFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Camp, error)
}

type staffIDChecker interface {
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
}

// AssignRequest is the payload for bulk-assigning staff to a camp.
type AssignRequest struct {
	CampID   int64   `json:"campId" validate:"required,gt=0"`
	StaffIDs []int64 `json:"staffIds" validate:"required,min=1,dive,gt=0"`
}

// UnassignRequest is the payload for removing a single assignment pair.
type UnassignRequest struct {
	CampID  int64 `json:"campId" validate:"required,gt=0"`
	StaffID int64 `json:"staffId" validate:"required,gt=0"`
}

// AssignResult reports the outcome of a bulk assign call.
type AssignResult struct {
	Requested int `json:"requested"`
	Inserted  int `json:"inserted"`
	Skipped   int `json:"skipped"`
}

// AssignmentService orchestrates the assignment ledger.
type AssignmentService struct {
	repo      assignmentRepository
	camps     campFinder
	staff     staffIDChecker
	gate      *WriteGate
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(repo assignmentRepository, camps campFinder, staff staffIDChecker, gate *WriteGate, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, camps: camps, staff: staff, gate: gate, cache: cache, validator: validate, logger: logger}
}

// ListAll returns every assignment with display fields.
func (s *AssignmentService) ListAll(ctx context.Context) ([]models.AssignmentDetail, error) {
	details, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return details, nil
}

// ListForCamp returns the assignments of one camp. Unknown ids yield an
// empty list rather than an error, matching the read surface contract.
func (s *AssignmentService) ListForCamp(ctx context.Context, campID int64) ([]models.AssignmentDetail, error) {
	details, err := s.repo.ListForCamp(ctx, campID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list camp assignments")
	}
	return details, nil
}

// ListForStaff returns the assignments of one staff member.
func (s *AssignmentService) ListForStaff(ctx context.Context, staffID int64) ([]models.AssignmentDetail, error) {
	details, err := s.repo.ListForStaff(ctx, staffID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list staff assignments")
	}
	return details, nil
}

// Assign links the requested staff to the camp. Pairs that already exist are
// skipped, so repeating the call cannot create duplicates. Attendance is
// recounted before control returns.
func (s *AssignmentService) Assign(ctx context.Context, req AssignRequest) (*AssignResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assign payload")
	}

	if _, err := s.camps.FindByID(ctx, req.CampID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("camp %d not found", req.CampID))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load camp")
	}

	found, err := s.staff.ExistingIDs(ctx, req.StaffIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check staff ids")
	}
	for _, id := range req.StaffIDs {
		if !found[id] {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("staff %d not found", id))
		}
	}

	if s.gate != nil {
		s.gate.Lock()
		defer s.gate.Unlock()
	}
	inserted, err := s.repo.Assign(ctx, req.CampID, req.StaffIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign staff")
	}
	s.invalidateDashboard(ctx)

	return &AssignResult{
		Requested: len(req.StaffIDs),
		Inserted:  inserted,
		Skipped:   len(req.StaffIDs) - inserted,
	}, nil
}

// Unassign removes one camp/staff pair and recounts attendance.
func (s *AssignmentService) Unassign(ctx context.Context, req UnassignRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unassign payload")
	}

	if s.gate != nil {
		s.gate.Lock()
		defer s.gate.Unlock()
	}
	removed, err := s.repo.Unassign(ctx, req.CampID, req.StaffID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unassign staff")
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	}
	s.invalidateDashboard(ctx)
	return nil
}

// Recompute republishes every attendance counter from the ledger. Safe to
// call at any time; a repeated call with no intervening mutation is a no-op.
func (s *AssignmentService) Recompute(ctx context.Context) error {
	if s.gate != nil {
		s.gate.Lock()
		defer s.gate.Unlock()
	}
	if err := s.repo.Recount(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to recompute attendance")
	}
	return nil
}

func (s *AssignmentService) invalidateDashboard(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, dashboardCachePattern)
	}
}
