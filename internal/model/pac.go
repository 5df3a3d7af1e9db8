package model

import "time"

// PacOperation is a field inspection, sampling, audit or investigation.
// It owns its Samples.
type PacOperation struct {
	ID               int64      `gorm:"primaryKey"        json:"id"`
	OperationType    string     `gorm:"size:50;not null"  json:"operation_type"`
	FacilityName     string     `gorm:"size:200;not null" json:"facility_name"`
	FacilityID       *string    `gorm:"size:50"           json:"facility_id"`
	FacilityAddress  *string    `                         json:"facility_address"`
	OperationDate    time.Time  `gorm:"not null"          json:"operation_date"`
	Status           string     `gorm:"size:50;not null"  json:"status"`
	Priority         string     `gorm:"size:20;not null"  json:"priority"`
	Inspector        *string    `gorm:"size:100"          json:"inspector"`
	InspectorID      *int64     `                         json:"inspector_id"`
	Notes            *string    `                         json:"notes"`
	Findings         *string    `                         json:"findings"`
	RiskLevel        string     `gorm:"size:20;not null"  json:"risk_level"`
	ComplianceStatus string     `gorm:"size:50;not null"  json:"compliance_status"`
	CreatedAt        time.Time  `gorm:"not null"          json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
	CompletedAt      *time.Time `                         json:"completed_at"`
}

// TableName overrides the table name.
func (PacOperation) TableName() string { return "pac_operations" }

// PacSample is a physical sample collected during an operation.
type PacSample struct {
	ID                int64     `gorm:"primaryKey"        json:"id"`
	OperationID       int64     `gorm:"not null;index"    json:"operation_id"`
	SampleType        string    `gorm:"size:100;not null" json:"sample_type"`
	SampleDescription *string   `                         json:"sample_description"`
	CollectionDate    time.Time `gorm:"not null"          json:"collection_date"`
	SampleLocation    *string   `gorm:"size:200"          json:"sample_location"`
	TestType          *string   `gorm:"size:100"          json:"test_type"`
	Status            string    `gorm:"size:50;not null"  json:"status"`
	Results           *string   `                         json:"results"`
	LabID             *string   `gorm:"size:50"           json:"lab_id"`
	CreatedAt         time.Time `gorm:"not null"          json:"created_at"`
}

// TableName overrides the table name.
func (PacSample) TableName() string { return "pac_samples" }
