package dto

import "github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"

// ── workplans ──

// WorkplanListQuery holds the GET /workplans filters. All filters combine
// with AND; AssignedTo is a case-sensitive substring match.
type WorkplanListQuery struct {
	Status     string `form:"status"      binding:"omitempty,workplan_status"`
	Priority   string `form:"priority"    binding:"omitempty,priority"`
	AssignedTo string `form:"assigned_to" binding:"omitempty,max=100"`
	Summary    bool   `form:"summary"`
}

// WorkplanRequest is the body of workplan create and full-replace update.
// Omitted optional fields are stored as null; omitted status and priority
// fall back to their defaults.
type WorkplanRequest struct {
	Title       *string `json:"title"       binding:"omitempty,max=200"`
	Description *string `json:"description"`
	Status      *string `json:"status"      binding:"omitempty,workplan_status"`
	Priority    *string `json:"priority"    binding:"omitempty,priority"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	AssignedTo  *string `json:"assigned_to" binding:"omitempty,max=100"`
	Progress    *int    `json:"progress"    binding:"omitempty,min=0,max=100"`
}

// TaskRequest is the body of task create and full-replace update.
type TaskRequest struct {
	Title       *string `json:"title"       binding:"omitempty,max=200"`
	Description *string `json:"description"`
	Status      *string `json:"status"      binding:"omitempty,task_status"`
	Priority    *string `json:"priority"    binding:"omitempty,priority"`
	DueDate     *string `json:"due_date"`
	AssignedTo  *string `json:"assigned_to" binding:"omitempty,max=100"`
	Progress    *int    `json:"progress"    binding:"omitempty,min=0,max=100"`
}

// WorkplanResponse is a workplan with its tasks hydrated.
type WorkplanResponse struct {
	model.Workplan
	TaskCount int          `json:"task_count"`
	Tasks     []model.Task `json:"tasks"`
}

// WorkplanSummary is a workplan with only the task count.
type WorkplanSummary struct {
	model.Workplan
	TaskCount int `json:"task_count"`
}

// WorkplanDashboard aggregates workplan counts.
type WorkplanDashboard struct {
	TotalWorkplans     int64             `json:"total_workplans"`
	ActiveWorkplans    int64             `json:"active_workplans"`
	CompletedWorkplans int64             `json:"completed_workplans"`
	PlannedWorkplans   int64             `json:"planned_workplans"`
	HighPriority       int64             `json:"high_priority"`
	RecentWorkplans    []WorkplanSummary `json:"recent_workplans"`
}
