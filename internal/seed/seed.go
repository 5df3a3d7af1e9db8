// Package seed loads the demo accounts, workplans and PAC operations into
// an empty database.
package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/repository"
)

type userSeed struct {
	Username, Email, Password, FullName, Role, Department string
}

type workplanSeed struct {
	Title, Description, Status, Priority, Start, End, AssignedTo string
	Progress                                                     int
}

type operationSeed struct {
	Type, Facility, FacilityID, Address, Date, Status, Priority, Inspector, Notes string
}

var users = []userSeed{
	{"admin", "admin@fda.gov", "admin123", "Administrator", model.RoleAdmin, "FWFPS"},
	{"analyst", "analyst@fda.gov", "analyst123", "Data Analyst", model.RoleUser, "Food Safety"},
}

var workplans = []workplanSeed{
	{
		"Q1 Food Safety Inspection Program",
		"Comprehensive food safety inspections for Q1 2025",
		model.WorkplanActive, model.PriorityHigh, "2025-01-01", "2025-03-31", "FDA Team Alpha", 75,
	},
	{
		"Dietary Supplement Compliance Review",
		"Review of dietary supplement manufacturers for compliance",
		model.WorkplanPlanned, model.PriorityMedium, "2025-02-01", "2025-04-30", "FDA Team Beta", 25,
	},
	{
		"Import Food Safety Assessment",
		"Assessment of imported food products safety standards",
		model.WorkplanActive, model.PriorityHigh, "2025-01-15", "2025-06-15", "FDA Team Gamma", 60,
	},
}

var operations = []operationSeed{
	{
		model.OperationInspection, "Global Foods Manufacturing Inc.", "FDA-12345",
		"123 Industrial Blvd, Springfield, IL 62701", "2025-02-15T09:00:00Z",
		model.OperationScheduled, model.PriorityHigh, "John Smith",
		"Routine inspection - follow up on previous findings",
	},
	{
		model.OperationSampling, "Fresh Produce Distributors LLC", "FDA-67890",
		"456 Market St, Fresno, CA 93721", "2025-02-20T14:30:00Z",
		model.OperationCompleted, model.PriorityMedium, "Sarah Johnson",
		"Samples collected for pesticide residue testing",
	},
	{
		model.OperationAudit, "Organic Grains Processing Co.", "FDA-11111",
		"789 Harvest Rd, Des Moines, IA 50309", "2025-03-01T10:00:00Z",
		model.OperationInProgress, model.PriorityHigh, "Mike Davis",
		"Comprehensive audit of HACCP implementation",
	},
}

// Run inserts the demo data when the users table is empty. It reports
// whether anything was written.
func Run(ctx context.Context, repo *repository.Repository, logger *zap.Logger) (bool, error) {
	n, err := repo.User.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if n > 0 {
		logger.Debug("seed skipped, users already present", zap.Int64("users", n))
		return false, nil
	}

	now := time.Now().UTC()
	err = repo.Transaction(ctx, func(tx *repository.Repository) error {
		var adminID int64
		for _, s := range users {
			hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", s.Username, err)
			}
			u := &model.User{
				Username:     s.Username,
				Email:        s.Email,
				PasswordHash: string(hash),
				FullName:     s.FullName,
				Role:         s.Role,
				Department:   strPtr(s.Department),
				IsActive:     true,
				CreatedAt:    now,
			}
			if err := tx.User.Create(ctx, u); err != nil {
				return fmt.Errorf("create user %s: %w", s.Username, err)
			}
			if s.Role == model.RoleAdmin && adminID == 0 {
				adminID = u.ID
			}
		}

		for _, s := range workplans {
			start, err := model.ParseDate(s.Start)
			if err != nil {
				return err
			}
			end, err := model.ParseDate(s.End)
			if err != nil {
				return err
			}
			progress := s.Progress
			wp := &model.Workplan{
				Title:       s.Title,
				Description: strPtr(s.Description),
				Status:      s.Status,
				Priority:    s.Priority,
				StartDate:   &start,
				EndDate:     &end,
				AssignedTo:  strPtr(s.AssignedTo),
				Progress:    &progress,
				CreatedBy:   &adminID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tx.Workplan.Create(ctx, wp); err != nil {
				return fmt.Errorf("create workplan %q: %w", s.Title, err)
			}
		}

		for _, s := range operations {
			date, err := time.Parse(time.RFC3339, s.Date)
			if err != nil {
				return err
			}
			op := &model.PacOperation{
				OperationType:    s.Type,
				FacilityName:     s.Facility,
				FacilityID:       strPtr(s.FacilityID),
				FacilityAddress:  strPtr(s.Address),
				OperationDate:    date,
				Status:           s.Status,
				Priority:         s.Priority,
				Inspector:        strPtr(s.Inspector),
				InspectorID:      &adminID,
				Notes:            strPtr(s.Notes),
				RiskLevel:        model.RiskLow,
				ComplianceStatus: model.CompliancePending,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if s.Status == model.OperationCompleted {
				op.CompletedAt = &now
			}
			if err := tx.Operation.Create(ctx, op); err != nil {
				return fmt.Errorf("create operation at %q: %w", s.Facility, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	logger.Info("sample data seeded",
		zap.Int("users", len(users)),
		zap.Int("workplans", len(workplans)),
		zap.Int("operations", len(operations)),
	)
	return true, nil
}

func strPtr(s string) *string { return &s }
