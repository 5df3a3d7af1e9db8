package handler

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/service"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves workbook downloads.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportWorkplans
// GET /api/workplans/export
func (h *ExportHandler) ExportWorkplans(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportWorkplans(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to export workplans", err)
		return
	}
	sendWorkbook(c, buf, filename)
}

// ExportPrograms
// GET /api/pps/export?year
func (h *ExportHandler) ExportPrograms(c *gin.Context) {
	year, ok := queryYear(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportPrograms(year)
	if err != nil {
		response.InternalError(c, "Failed to export programs", err)
		return
	}
	sendWorkbook(c, buf, filename)
}

func sendWorkbook(c *gin.Context, buf *bytes.Buffer, filename string) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
