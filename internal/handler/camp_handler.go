package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wmhmc/camp-attendance-api/internal/service"
	appErrors "github.com/wmhmc/camp-attendance-api/pkg/errors"
	"github.com/wmhmc/camp-attendance-api/pkg/response"
)

// CampHandler wires the camp registry to HTTP routes.
type CampHandler struct {
	camps       *service.CampService
	assignments *service.AssignmentService
	roster      *service.RosterService
}

// NewCampHandler constructs a CampHandler.
func NewCampHandler(camps *service.CampService, assignments *service.AssignmentService, roster *service.RosterService) *CampHandler {
	return &CampHandler{camps: camps, assignments: assignments, roster: roster}
}

// List godoc
// @Summary List camps, most recent first
// @Tags Camps
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /camps [get]
func (h *CampHandler) List(c *gin.Context) {
	camps, err := h.camps.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, camps)
}

// Create godoc
// @Summary Add a camp
// @Tags Camps
// @Accept json
// @Produce json
// @Param payload body service.CreateCampRequest true "Camp payload"
// @Success 201 {object} response.Envelope
// @Router /camps [post]
func (h *CampHandler) Create(c *gin.Context) {
	var req service.CreateCampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid camp payload"))
		return
	}
	camp, err := h.camps.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, camp)
}

// Delete godoc
// @Summary Delete a camp and its assignments
// @Tags Camps
// @Param id path int true "Camp ID"
// @Success 204
// @Router /camps/{id} [delete]
func (h *CampHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.camps.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Assignments godoc
// @Summary List staff assigned to a camp
// @Tags Camps
// @Produce json
// @Param id path int true "Camp ID"
// @Success 200 {object} response.Envelope
// @Router /camps/{id}/assignments [get]
func (h *CampHandler) Assignments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	details, err := h.assignments.ListForCamp(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}

// Roster godoc
// @Summary Download a camp roster report
// @Tags Camps
// @Produce text/csv
// @Param id path int true "Camp ID"
// @Param format query string false "Report format (csv/pdf)"
// @Success 200 {file} binary
// @Router /camps/{id}/roster [get]
func (h *CampHandler) Roster(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	format, err := service.ParseRosterFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.roster.Generate(c.Request.Context(), id, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, report.ContentType, report.Payload)
}
