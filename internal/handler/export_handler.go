package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wmhmc/camp-attendance-api/internal/service"
	"github.com/wmhmc/camp-attendance-api/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the full-workbook download.
type ExportHandler struct {
	workbook *service.WorkbookService
}

// NewExportHandler constructs the handler.
func NewExportHandler(workbook *service.WorkbookService) *ExportHandler {
	return &ExportHandler{workbook: workbook}
}

// Workbook godoc
// @Summary Download all collections as an XLSX workbook
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /export/workbook [get]
func (h *ExportHandler) Workbook(c *gin.Context) {
	payload, err := h.workbook.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("camp-attendance-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, payload)
}
