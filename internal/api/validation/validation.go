// Package validation registers the enum binding tags used by the request
// DTOs and turns validator errors into caller-facing messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
)

// tags maps each binding tag to its closed value set.
var tags = map[string]model.Enum{
	"workplan_status":   model.WorkplanStatuses,
	"task_status":       model.TaskStatuses,
	"priority":          model.Priorities,
	"operation_type":    model.OperationTypes,
	"operation_status":  model.OperationStatuses,
	"risk_level":        model.RiskLevels,
	"compliance_status": model.ComplianceStatuses,
	"sample_status":     model.SampleStatuses,
}

var (
	once    sync.Once
	initErr error
)

// Register installs the enum tags on gin's validator. Safe to call more
// than once.
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			initErr = errors.New("validation: gin validator is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(jsonName)
		for tag, set := range tags {
			if err := v.RegisterValidation(tag, enumValidator(set)); err != nil {
				initErr = fmt.Errorf("validation: register %s: %w", tag, err)
				return
			}
		}
	})
	return initErr
}

func enumValidator(set model.Enum) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return set.Contains(fl.Field().String())
	}
}

// jsonName reports fields by their json (or form) name.
func jsonName(f reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Message describes the first failed rule of a binding error. Errors that
// are not validation failures (malformed JSON, wrong types) get fallback.
func Message(err error, fallback string) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return fallback
	}
	fe := ve[0]
	field := fe.Field()

	if set, ok := tags[fe.Tag()]; ok {
		return field + " must be one of: " + set.String()
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		if numeric(fe.Kind()) {
			return fmt.Sprintf("%s must be at most %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		if numeric(fe.Kind()) {
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	}
	return fmt.Sprintf("%s is invalid", field)
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
