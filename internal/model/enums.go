package model

import "strings"

// Option is one entry of a closed value set, as shown in pickers.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Enum is a closed, ordered value set.
type Enum []Option

// Contains reports whether v is a member of the set.
func (e Enum) Contains(v string) bool {
	for _, o := range e {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Values returns the raw values in order.
func (e Enum) Values() []string {
	out := make([]string, len(e))
	for i, o := range e {
		out[i] = o.Value
	}
	return out
}

// String lists the values separated by spaces.
func (e Enum) String() string { return strings.Join(e.Values(), " ") }

const (
	WorkplanPlanned   = "planned"
	WorkplanActive    = "active"
	WorkplanCompleted = "completed"
	WorkplanCancelled = "cancelled"

	TaskPending    = "pending"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
	TaskCancelled  = "cancelled"

	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"

	OperationInspection    = "inspection"
	OperationSampling      = "sampling"
	OperationAudit         = "audit"
	OperationInvestigation = "investigation"

	OperationScheduled  = "scheduled"
	OperationInProgress = "in_progress"
	OperationCompleted  = "completed"
	OperationCancelled  = "cancelled"

	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"

	CompliancePending          = "pending"
	ComplianceCompliant        = "compliant"
	ComplianceNonCompliant     = "non_compliant"
	ComplianceRequiresFollowup = "requires_followup"

	SampleCollected = "collected"
	SampleInTransit = "in_transit"
	SampleTesting   = "testing"
	SampleCompleted = "completed"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	WorkplanStatuses = Enum{
		{WorkplanPlanned, "Planned"},
		{WorkplanActive, "Active"},
		{WorkplanCompleted, "Completed"},
		{WorkplanCancelled, "Cancelled"},
	}

	TaskStatuses = Enum{
		{TaskPending, "Pending"},
		{TaskInProgress, "In Progress"},
		{TaskCompleted, "Completed"},
		{TaskCancelled, "Cancelled"},
	}

	Priorities = Enum{
		{PriorityLow, "Low"},
		{PriorityMedium, "Medium"},
		{PriorityHigh, "High"},
		{PriorityCritical, "Critical"},
	}

	OperationTypes = Enum{
		{OperationInspection, "Inspection"},
		{OperationSampling, "Sampling"},
		{OperationAudit, "Audit"},
		{OperationInvestigation, "Investigation"},
	}

	OperationStatuses = Enum{
		{OperationScheduled, "Scheduled"},
		{OperationInProgress, "In Progress"},
		{OperationCompleted, "Completed"},
		{OperationCancelled, "Cancelled"},
	}

	RiskLevels = Enum{
		{RiskLow, "Low"},
		{RiskMedium, "Medium"},
		{RiskHigh, "High"},
		{RiskCritical, "Critical"},
	}

	ComplianceStatuses = Enum{
		{ComplianceCompliant, "Compliant"},
		{ComplianceNonCompliant, "Non-Compliant"},
		{CompliancePending, "Pending"},
		{ComplianceRequiresFollowup, "Requires Follow-up"},
	}

	SampleStatuses = Enum{
		{SampleCollected, "Collected"},
		{SampleInTransit, "In Transit"},
		{SampleTesting, "Testing"},
		{SampleCompleted, "Completed"},
	}
)
