package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wmhmc/camp-attendance-api/internal/service"
	appErrors "github.com/wmhmc/camp-attendance-api/pkg/errors"
	"github.com/wmhmc/camp-attendance-api/pkg/response"
)

// SettingsHandler wires the persisted theme settings to HTTP.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Theme godoc
// @Summary Get the persisted theme colors
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/theme [get]
func (h *SettingsHandler) Theme(c *gin.Context) {
	theme, err := h.settings.Theme(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, theme)
}

// UpdateTheme godoc
// @Summary Update theme colors
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body map[string]string true "Theme key/value overrides"
// @Success 200 {object} response.Envelope
// @Router /settings/theme [put]
func (h *SettingsHandler) UpdateTheme(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid theme payload"))
		return
	}
	theme, err := h.settings.UpdateTheme(c.Request.Context(), values)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, theme)
}
