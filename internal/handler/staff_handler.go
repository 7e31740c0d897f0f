package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wmhmc/camp-attendance-api/internal/service"
	appErrors "github.com/wmhmc/camp-attendance-api/pkg/errors"
	"github.com/wmhmc/camp-attendance-api/pkg/response"
)

// StaffHandler wires the staff directory to HTTP routes.
type StaffHandler struct {
	staff       *service.StaffService
	assignments *service.AssignmentService
	importer    *service.ImporterService
	maxUpload   int64
}

// NewStaffHandler constructs a StaffHandler.
func NewStaffHandler(staff *service.StaffService, assignments *service.AssignmentService, importer *service.ImporterService, maxUpload int64) *StaffHandler {
	return &StaffHandler{staff: staff, assignments: assignments, importer: importer, maxUpload: maxUpload}
}

// List godoc
// @Summary List staff directory
// @Tags Staff
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.staff.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, staff)
}

// Get godoc
// @Summary Get staff detail
// @Tags Staff
// @Produce json
// @Param id path int true "Staff ID"
// @Success 200 {object} response.Envelope
// @Router /staff/{id} [get]
func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	staff, err := h.staff.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, staff)
}

// Create godoc
// @Summary Add a staff record
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body service.StaffRequest true "Staff payload"
// @Success 201 {object} response.Envelope
// @Router /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req service.StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid staff payload"))
		return
	}
	staff, err := h.staff.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, staff)
}

// Update godoc
// @Summary Replace a staff record
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path int true "Staff ID"
// @Param payload body service.StaffRequest true "Staff payload"
// @Success 200 {object} response.Envelope
// @Router /staff/{id} [put]
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req service.StaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid staff payload"))
		return
	}
	staff, err := h.staff.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, staff)
}

// Delete godoc
// @Summary Delete a staff record and its assignments
// @Tags Staff
// @Param id path int true "Staff ID"
// @Success 204
// @Router /staff/{id} [delete]
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.staff.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Assignments godoc
// @Summary List camps a staff member attended
// @Tags Staff
// @Produce json
// @Param id path int true "Staff ID"
// @Success 200 {object} response.Envelope
// @Router /staff/{id}/assignments [get]
func (h *StaffHandler) Assignments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	details, err := h.assignments.ListForStaff(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}

// Import godoc
// @Summary Import staff from an XLSX upload
// @Tags Staff
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook with one staff sheet"
// @Param mode query string false "Import mode (append/replace)"
// @Success 200 {object} response.Envelope
// @Router /staff/import [post]
func (h *StaffHandler) Import(c *gin.Context) {
	mode, err := service.ParseImportMode(c.Query("mode"))
	if err != nil {
		response.Error(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file upload is required"))
		return
	}
	if h.maxUpload > 0 && fileHeader.Size > h.maxUpload {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "uploaded file is too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable upload"))
		return
	}
	defer file.Close()

	result, err := h.importer.ImportWorkbook(c.Request.Context(), file, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid id"))
		return 0, false
	}
	return id, true
}
