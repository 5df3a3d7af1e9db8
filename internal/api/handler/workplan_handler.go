package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/dto"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/service"
	apperrors "github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/errors"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/response"
)

// WorkplanHandler serves workplans and their tasks.
type WorkplanHandler struct {
	workplanSvc service.WorkplanService
}

// NewWorkplanHandler creates a WorkplanHandler.
func NewWorkplanHandler(workplanSvc service.WorkplanService) *WorkplanHandler {
	return &WorkplanHandler{workplanSvc: workplanSvc}
}

// ListWorkplans
// GET /api/workplans?status&priority&assigned_to&summary
func (h *WorkplanHandler) ListWorkplans(c *gin.Context) {
	var q dto.WorkplanListQuery
	if !bindQuery(c, &q) {
		return
	}

	if q.Summary {
		summaries, err := h.workplanSvc.ListSummary(c.Request.Context(), &q)
		if err != nil {
			h.handleWorkplanError(c, err)
			return
		}
		response.OK(c, gin.H{"workplans": summaries, "total": len(summaries)})
		return
	}

	workplans, err := h.workplanSvc.List(c.Request.Context(), &q)
	if err != nil {
		h.handleWorkplanError(c, err)
		return
	}
	response.OK(c, gin.H{"workplans": workplans, "total": len(workplans)})
}

// GetWorkplan
// GET /api/workplans/:id
func (h *WorkplanHandler) GetWorkplan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Workplan not found")
		return
	}

	wp, err := h.workplanSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleWorkplanError(c, err)
		return
	}
	response.OK(c, gin.H{"workplan": wp})
}

// CreateWorkplan
// POST /api/workplans
func (h *WorkplanHandler) CreateWorkplan(c *gin.Context) {
	var req dto.WorkplanRequest
	if !bindJSON(c, &req) {
		return
	}

	wp, err := h.workplanSvc.Create(c.Request.Context(), &req, CurrentUserID(c))
	if err != nil {
		h.handleWorkplanError(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Workplan created successfully", "workplan": wp})
}

// UpdateWorkplan replaces every client-owned field.
// PUT /api/workplans/:id
func (h *WorkplanHandler) UpdateWorkplan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Workplan not found")
		return
	}
	var req dto.WorkplanRequest
	if !bindJSON(c, &req) {
		return
	}

	wp, err := h.workplanSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleWorkplanError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Workplan updated successfully", "workplan": wp})
}

// DeleteWorkplan removes the workplan and its tasks.
// DELETE /api/workplans/:id
func (h *WorkplanHandler) DeleteWorkplan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Workplan not found")
		return
	}

	if err := h.workplanSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleWorkplanError(c, err)
		return
	}
	response.Message(c, "Workplan deleted successfully")
}

// ── tasks ──

// ListTasks
// GET /api/workplans/:id/tasks
func (h *WorkplanHandler) ListTasks(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Workplan not found")
		return
	}

	tasks, err := h.workplanSvc.ListTasks(c.Request.Context(), id)
	if err != nil {
		h.handleWorkplanError(c, err)
		return
	}
	response.OK(c, gin.H{"tasks": tasks, "total": len(tasks)})
}

// CreateTask
// POST /api/workplans/:id/tasks
func (h *WorkplanHandler) CreateTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Workplan not found")
		return
	}
	var req dto.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.workplanSvc.CreateTask(c.Request.Context(), id, &req)
	if err != nil {
		h.handleWorkplanError(c, err)
		return
	}
	response.Created(c, gin.H{"message": "Task created successfully", "task": task})
}

// UpdateTask
// PUT /api/workplans/:id/tasks/:taskId
func (h *WorkplanHandler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Workplan not found")
		return
	}
	taskID, ok := pathID(c, "taskId")
	if !ok {
		response.NotFound(c, "Task not found")
		return
	}
	var req dto.TaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.workplanSvc.UpdateTask(c.Request.Context(), id, taskID, &req)
	if err != nil {
		h.handleWorkplanError(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Task updated successfully", "task": task})
}

// DeleteTask
// DELETE /api/workplans/:id/tasks/:taskId
func (h *WorkplanHandler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		response.NotFound(c, "Workplan not found")
		return
	}
	taskID, ok := pathID(c, "taskId")
	if !ok {
		response.NotFound(c, "Task not found")
		return
	}

	if err := h.workplanSvc.DeleteTask(c.Request.Context(), id, taskID); err != nil {
		h.handleWorkplanError(c, err)
		return
	}
	response.Message(c, "Task deleted successfully")
}

// Dashboard
// GET /api/workplans/dashboard
func (h *WorkplanHandler) Dashboard(c *gin.Context) {
	d, err := h.workplanSvc.Dashboard(c.Request.Context())
	if err != nil {
		h.handleWorkplanError(c, err)
		return
	}
	response.OK(c, gin.H{"dashboard": d})
}

func (h *WorkplanHandler) handleWorkplanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkplanNotFound):
		response.NotFound(c, "Workplan not found")
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, "Task not found")
	case errors.Is(err, apperrors.ErrInvalidInput):
		response.BadRequest(c, apperrors.Message(err, "Invalid request"))
	default:
		response.InternalError(c, "Internal server error", err)
	}
}
