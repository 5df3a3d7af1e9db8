package dto

import "github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"

// ── PAC operations ──

// OperationListQuery holds the GET /pac/operations filters. Inspector is a
// case-insensitive substring match; the rest are exact.
type OperationListQuery struct {
	Type      string `form:"type"      binding:"omitempty,operation_type"`
	Status    string `form:"status"    binding:"omitempty,operation_status"`
	Priority  string `form:"priority"  binding:"omitempty,priority"`
	Inspector string `form:"inspector" binding:"omitempty,max=100"`
	Summary   bool   `form:"summary"`
}

// OperationRequest is the body of operation create and full-replace update.
type OperationRequest struct {
	OperationType    *string `json:"operation_type"    binding:"omitempty,operation_type"`
	FacilityName     *string `json:"facility_name"     binding:"omitempty,max=200"`
	FacilityID       *string `json:"facility_id"       binding:"omitempty,max=50"`
	FacilityAddress  *string `json:"facility_address"`
	OperationDate    *string `json:"operation_date"`
	Status           *string `json:"status"            binding:"omitempty,operation_status"`
	Priority         *string `json:"priority"          binding:"omitempty,priority"`
	Inspector        *string `json:"inspector"         binding:"omitempty,max=100"`
	InspectorID      *int64  `json:"inspector_id"`
	Notes            *string `json:"notes"`
	Findings         *string `json:"findings"`
	RiskLevel        *string `json:"risk_level"        binding:"omitempty,risk_level"`
	ComplianceStatus *string `json:"compliance_status" binding:"omitempty,compliance_status"`
}

// SampleRequest is the body of sample create and full-replace update.
type SampleRequest struct {
	SampleType        *string `json:"sample_type"        binding:"omitempty,max=100"`
	SampleDescription *string `json:"sample_description"`
	CollectionDate    *string `json:"collection_date"`
	SampleLocation    *string `json:"sample_location"    binding:"omitempty,max=200"`
	TestType          *string `json:"test_type"          binding:"omitempty,max=100"`
	Status            *string `json:"status"             binding:"omitempty,sample_status"`
	Results           *string `json:"results"`
	LabID             *string `json:"lab_id"             binding:"omitempty,max=50"`
}

// OperationResponse is an operation with its samples hydrated.
type OperationResponse struct {
	model.PacOperation
	SampleCount int               `json:"sample_count"`
	Samples     []model.PacSample `json:"samples"`
}

// OperationSummary is an operation with only the sample count.
type OperationSummary struct {
	model.PacOperation
	SampleCount int `json:"sample_count"`
}

// PacDashboard aggregates operation counts.
type PacDashboard struct {
	TotalOperations      int64              `json:"total_operations"`
	ScheduledOperations  int64              `json:"scheduled_operations"`
	InProgressOperations int64              `json:"in_progress_operations"`
	CompletedOperations  int64              `json:"completed_operations"`
	Inspections          int64              `json:"inspections"`
	Samplings            int64              `json:"samplings"`
	Audits               int64              `json:"audits"`
	HighPriority         int64              `json:"high_priority"`
	RecentOperations     []OperationSummary `json:"recent_operations"`
}
