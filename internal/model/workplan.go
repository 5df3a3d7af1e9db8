package model

import "time"

// Workplan is a fiscal-year plan of work. It owns its Tasks.
type Workplan struct {
	ID          int64     `gorm:"primaryKey"              json:"id"`
	Title       string    `gorm:"size:200;not null"       json:"title"`
	Description *string   `                               json:"description"`
	Status      string    `gorm:"size:50;not null"        json:"status"`
	Priority    string    `gorm:"size:20;not null"        json:"priority"`
	StartDate   *Date     `gorm:"type:date"               json:"start_date"`
	EndDate     *Date     `gorm:"type:date"               json:"end_date"`
	AssignedTo  *string   `gorm:"size:100"                json:"assigned_to"`
	Progress    *int      `                               json:"progress"`
	CreatedBy   *int64    `                               json:"created_by"`
	CreatedAt   time.Time `gorm:"not null"                json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

// TableName overrides the table name.
func (Workplan) TableName() string { return "workplans" }

// Task is a unit of work inside a Workplan.
type Task struct {
	ID          int64      `gorm:"primaryKey"        json:"id"`
	WorkplanID  int64      `gorm:"not null;index"    json:"workplan_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description *string    `                         json:"description"`
	Status      string     `gorm:"size:50;not null"  json:"status"`
	Priority    string     `gorm:"size:20;not null"  json:"priority"`
	DueDate     *Date      `gorm:"type:date"         json:"due_date"`
	AssignedTo  *string    `gorm:"size:100"          json:"assigned_to"`
	Progress    *int       `                         json:"progress"`
	CreatedAt   time.Time  `gorm:"not null"          json:"created_at"`
	CompletedAt *time.Time `                         json:"completed_at"`
}

// TableName overrides the table name.
func (Task) TableName() string { return "workplan_tasks" }
