package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wmhmc/camp-attendance-api/internal/service"
	appErrors "github.com/wmhmc/camp-attendance-api/pkg/errors"
	"github.com/wmhmc/camp-attendance-api/pkg/response"
)

// AssignmentHandler wires the assignment ledger to HTTP routes.
type AssignmentHandler struct {
	assignments *service.AssignmentService
}

// NewAssignmentHandler constructs an AssignmentHandler.
func NewAssignmentHandler(assignments *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// List godoc
// @Summary List all assignments with display fields
// @Tags Assignments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	details, err := h.assignments.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}

// Assign godoc
// @Summary Assign staff to a camp
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body service.AssignRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /assignments [post]
func (h *AssignmentHandler) Assign(c *gin.Context) {
	var req service.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assign payload"))
		return
	}
	result, err := h.assignments.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Unassign godoc
// @Summary Remove one camp/staff assignment
// @Tags Assignments
// @Accept json
// @Param payload body service.UnassignRequest true "Unassignment payload"
// @Success 204
// @Router /assignments [delete]
func (h *AssignmentHandler) Unassign(c *gin.Context) {
	var req service.UnassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid unassign payload"))
		return
	}
	if err := h.assignments.Unassign(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
