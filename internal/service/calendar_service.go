package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/dto"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/repository"
)

// ── iCalendar feed of PAC operations ──────────────────────────
//
// One VEVENT per operation. UIDs are derived from the operation id so a
// subscribed calendar updates events in place instead of duplicating them.
// ───────────────────────────────────────────────────────────────

const (
	calendarProductID = "-//FWFPS//PAC Operations//EN"
	calendarName      = "PAC Operations"
	operationDuration = 2 * time.Hour
)

var operationUIDSpace = uuid.MustParse("6f1c1e8a-3b5d-4c61-9a57-0d2f4f6c8b11")

// CalendarService renders operations as an iCalendar document.
type CalendarService interface {
	Operations(ctx context.Context, q *dto.OperationListQuery) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger, now: utcNow}
}

func (s *calendarService) Operations(ctx context.Context, q *dto.OperationListQuery) (string, error) {
	ops, err := s.repo.Operation.List(ctx, operationFilter(q))
	if err != nil {
		s.logger.Error("failed to list operations for calendar", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetName(calendarName)

	stamp := s.now()
	for _, op := range ops {
		event := cal.AddEvent(OperationUID(op.ID))
		event.SetDtStampTime(stamp)
		event.SetCreatedTime(op.CreatedAt)
		event.SetModifiedAt(op.UpdatedAt)
		event.SetStartAt(op.OperationDate)
		event.SetEndAt(op.OperationDate.Add(operationDuration))
		event.SetSummary(operationSummary(op))
		event.SetDescription(operationDescription(op))
		if op.FacilityAddress != nil && *op.FacilityAddress != "" {
			event.SetLocation(*op.FacilityAddress)
		}
		event.SetStatus(eventStatus(op.Status))
		event.SetProperty(ics.ComponentPropertyCategories, strings.ToUpper(op.OperationType))
	}

	return cal.Serialize(), nil
}

// OperationUID is the stable iCalendar UID of an operation.
func OperationUID(id int64) string {
	return uuid.NewSHA1(operationUIDSpace, []byte(fmt.Sprintf("pac-operation-%d", id))).String() + "@fwfps"
}

func operationSummary(op model.PacOperation) string {
	label := op.OperationType
	for _, o := range model.OperationTypes {
		if o.Value == op.OperationType {
			label = o.Label
			break
		}
	}
	return fmt.Sprintf("%s: %s", label, op.FacilityName)
}

func operationDescription(op model.PacOperation) string {
	lines := []string{
		"Status: " + op.Status,
		"Priority: " + op.Priority,
		"Risk level: " + op.RiskLevel,
		"Compliance: " + op.ComplianceStatus,
	}
	if op.Inspector != nil && *op.Inspector != "" {
		lines = append(lines, "Inspector: "+*op.Inspector)
	}
	if op.Notes != nil && *op.Notes != "" {
		lines = append(lines, "Notes: "+*op.Notes)
	}
	return strings.Join(lines, "\n")
}

func eventStatus(status string) ics.ObjectStatus {
	switch status {
	case model.OperationCancelled:
		return ics.ObjectStatusCancelled
	case model.OperationScheduled:
		return ics.ObjectStatusTentative
	default:
		return ics.ObjectStatusConfirmed
	}
}
