package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/service"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/response"
)

// PpsHandler serves the PPS program tables.
type PpsHandler struct {
	refSvc service.ReferenceService
}

// NewPpsHandler creates a PpsHandler.
func NewPpsHandler(refSvc service.ReferenceService) *PpsHandler {
	return &PpsHandler{refSvc: refSvc}
}

// ListPrograms
// GET /api/pps/programs?year&search
func (h *PpsHandler) ListPrograms(c *gin.Context) {
	year, ok := queryYear(c)
	if !ok {
		return
	}
	response.OK(c, gin.H{"pps": h.refSvc.Programs(year, c.Query("search"))})
}

// GetProgram
// GET /api/pps/programs/:code?year
func (h *PpsHandler) GetProgram(c *gin.Context) {
	year, ok := queryYear(c)
	if !ok {
		return
	}

	detail, err := h.refSvc.Program(c.Param("code"), year)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			response.NotFound(c, "Program not found")
			return
		}
		response.InternalError(c, "Internal server error", err)
		return
	}
	response.OK(c, gin.H{"program": detail})
}

// queryYear parses ?year. Absent means 0, the current fiscal year.
func queryYear(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return 0, true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 2999 {
		response.BadRequest(c, "year must be a four-digit year")
		return 0, false
	}
	return year, true
}
