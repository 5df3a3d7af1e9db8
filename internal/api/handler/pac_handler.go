package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/dto"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/service"
	apperrors "github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/errors"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/response"
)

// PacHandler serves PAC operations, their samples and pick lists.
type PacHandler struct {
	pacSvc      service.PacService
	calendarSvc service.CalendarService
}

// NewPacHandler creates a PacHandler.
func NewPacHandler(pacSvc service.PacService, calendarSvc service.CalendarService) *PacHandler {
	return &PacHandler{pacSvc: pacSvc, calendarSvc: calendarSvc}
}

// ListOperations
// GET /api/pac/operations?type&status&priority&inspector&summary
func (h *PacHandler) ListOperations(c *gin.Context) {
	var q dto.OperationListQuery
	if !bindQuery(c, &q) {
		return
	}

	if q.Summary {
		summaries, err := h.pacSvc.ListSummary(c.Request.Context(), &q)
		if err != nil {
			h.handlePacError(c, err)
			return
		}
		response.OK(c, gin.H{"operations": summaries, "total": len(summaries)})
		return
	}

	ops, err := h.pacSvc.List(c.Request.Context(), &q)
	if err != nil {
		h.handlePacError(c, err)
		return
	}
	response.OK(c, gin.H{"operations": ops, "total": len(ops)})
}

// GetOperation
// GET /api/pac/operations/:id
func (h *PacHandler) GetOperation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Operation not found")
		return
	}

	op, err := h.pacSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handlePacError(c, err)
		return
	}
	response.OK(c, gin.H{"operation": op})
}

// CreateOperation
// POST /api/pac/operations
func (h *PacHandler) CreateOperation(c *gin.Context) {
	var req dto.OperationRequest
	if !bindJSON(c, &req) {
		return
	}

	op, err := h.pacSvc.Create(c.Request.Context(), &req, CurrentUserID(c))
	if err != nil {
		h.handlePacError(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Operation created successfully", "operation": op})
}

// UpdateOperation replaces every client-owned field.
// PUT /api/pac/operations/:id
func (h *PacHandler) UpdateOperation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Operation not found")
		return
	}
	var req dto.OperationRequest
	if !bindJSON(c, &req) {
		return
	}

	op, err := h.pacSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handlePacError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Operation updated successfully", "operation": op})
}

// DeleteOperation removes the operation and its samples.
// DELETE /api/pac/operations/:id
func (h *PacHandler) DeleteOperation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Operation not found")
		return
	}

	if err := h.pacSvc.Delete(c.Request.Context(), id); err != nil {
		h.handlePacError(c, err)
		return
	}
	response.Message(c, "Operation deleted successfully")
}

// ── samples ──

// ListSamples
// GET /api/pac/operations/:id/samples
func (h *PacHandler) ListSamples(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Operation not found")
		return
	}

	samples, err := h.pacSvc.ListSamples(c.Request.Context(), id)
	if err != nil {
		h.handlePacError(c, err)
		return
	}
	response.OK(c, gin.H{"samples": samples, "total": len(samples)})
}

// CreateSample
// POST /api/pac/operations/:id/samples
func (h *PacHandler) CreateSample(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Operation not found")
		return
	}
	var req dto.SampleRequest
	if !bindJSON(c, &req) {
		return
	}

	smp, err := h.pacSvc.CreateSample(c.Request.Context(), id, &req)
	if err != nil {
		h.handlePacError(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Sample created successfully", "sample": smp})
}

// UpdateSample
// PUT /api/pac/operations/:id/samples/:sampleId
func (h *PacHandler) UpdateSample(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Operation not found")
		return
	}
	sampleID, ok := pathID(c, "sampleId")
	if !ok {
		response.NotFound(c, "Sample not found")
		return
	}
	var req dto.SampleRequest
	if !bindJSON(c, &req) {
		return
	}

	smp, err := h.pacSvc.UpdateSample(c.Request.Context(), id, sampleID, &req)
	if err != nil {
		h.handlePacError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Sample updated successfully", "sample": smp})
}

// DeleteSample
// DELETE /api/pac/operations/:id/samples/:sampleId
func (h *PacHandler) DeleteSample(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Operation not found")
		return
	}
	sampleID, ok := pathID(c, "sampleId")
	if !ok {
		response.NotFound(c, "Sample not found")
		return
	}

	if err := h.pacSvc.DeleteSample(c.Request.Context(), id, sampleID); err != nil {
		h.handlePacError(c, err)
		return
	}
	response.Message(c, "Sample deleted successfully")
}

// ── read-only views ──

// Dashboard
// GET /api/pac/dashboard
func (h *PacHandler) Dashboard(c *gin.Context) {
	d, err := h.pacSvc.Dashboard(c.Request.Context())
	if err != nil {
		h.handlePacError(c, err)
		return
	}
	response.OK(c, gin.H{"dashboard": d})
}

// Calendar renders the filtered operations as iCalendar.
// GET /api/pac/operations/calendar.ics
func (h *PacHandler) Calendar(c *gin.Context) {
	var q dto.OperationListQuery
	if !bindQuery(c, &q) {
		return
	}

	body, err := h.calendarSvc.Operations(c.Request.Context(), &q)
	if err != nil {
		h.handlePacError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="pac_operations.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// Types
// GET /api/pac/types
func (h *PacHandler) Types(c *gin.Context) {
	response.OK(c, gin.H{"operation_types": h.pacSvc.Options().OperationTypes})
}

// Statuses
// GET /api/pac/statuses
func (h *PacHandler) Statuses(c *gin.Context) {
	response.OK(c, gin.H{"statuses": h.pacSvc.Options().Statuses})
}

// Priorities
// GET /api/pac/priorities
func (h *PacHandler) Priorities(c *gin.Context) {
	response.OK(c, gin.H{"priorities": h.pacSvc.Options().Priorities})
}

func (h *PacHandler) handlePacError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOperationNotFound):
		response.NotFound(c, "Operation not found")
	case errors.Is(err, service.ErrSampleNotFound):
		response.NotFound(c, "Sample not found")
	case errors.Is(err, apperrors.ErrInvalidInput):
		response.BadRequest(c, apperrors.Message(err, "Invalid request"))
	default:
		response.InternalError(c, "Internal server error", err)
	}
}
