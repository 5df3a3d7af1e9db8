package service

import (
	"strings"
	"time"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
	apperrors "github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/errors"
)

// recentLimit is the number of newest records shown on dashboards.
const recentLimit = 5

// utcNow is the default service clock. Timestamps are kept at microsecond
// precision so they survive a PostgreSQL round trip unchanged.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// nextUpdatedAt returns now, or prev+1µs when the clock has not moved past
// prev, so updated_at strictly increases on every write.
func nextUpdatedAt(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}

// requiredString trims v and fails with "<Label> is required" when empty.
func requiredString(v *string, field, label string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", apperrors.Required(field, label)
	}
	return strings.TrimSpace(*v), nil
}

func enumOr(v *string, set model.Enum, field, fallback string) (string, error) {
	if v == nil || *v == "" {
		return fallback, nil
	}
	if !set.Contains(*v) {
		return "", &apperrors.InputError{
			Field:   field,
			Message: field + " must be one of: " + set.String(),
		}
	}
	return *v, nil
}

// optionalDate parses a YYYY-MM-DD field. Nil and empty mean no date.
func optionalDate(v *string, field string) (*model.Date, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	d, err := model.ParseDate(*v)
	if err != nil {
		return nil, apperrors.Invalid("%s must be a date in YYYY-MM-DD format", field)
	}
	return &d, nil
}

// optionalDateTime parses an ISO-8601 field. Nil and empty mean no value.
func optionalDateTime(v *string, field string) (*time.Time, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	t, err := model.ParseDateTime(*v)
	if err != nil {
		return nil, apperrors.Invalid("%s must be an ISO-8601 datetime", field)
	}
	return &t, nil
}

// optionalProgress range-checks p. Nil stays nil.
func optionalProgress(p *int) (*int, error) {
	if p == nil {
		return nil, nil
	}
	if *p < 0 || *p > 100 {
		return nil, apperrors.Invalid("progress must be between 0 and 100")
	}
	v := *p
	return &v, nil
}

// progressOrZero fills the create-time default.
func progressOrZero(p *int) *int {
	if p == nil {
		zero := 0
		return &zero
	}
	return p
}

// completionStamp returns the completed_at value after a status change:
// kept when already completed, now when becoming completed, nil otherwise.
func completionStamp(prevStatus string, prev *time.Time, newStatus, completed string, now time.Time) *time.Time {
	if newStatus != completed {
		return nil
	}
	if prevStatus == completed && prev != nil {
		return prev
	}
	return &now
}
