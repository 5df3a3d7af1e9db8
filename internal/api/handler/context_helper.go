package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/api/middleware"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/api/validation"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/response"
)

// CurrentUserID returns the session user, or nil for anonymous requests.
func CurrentUserID(c *gin.Context) *int64 {
	v, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(int64)
	if !ok || id == 0 {
		return nil
	}
	return &id
}

// MustGetUserID is CurrentUserID that answers 401 when there is no user.
// Callers return when ok is false.
func MustGetUserID(c *gin.Context) (int64, bool) {
	id := CurrentUserID(c)
	if id == nil {
		response.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return *id, true
}

// pathID parses a positive integer route parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// bindJSON decodes and validates the body into obj, answering 400 (or 413)
// on failure. An empty body decodes as {} so the service can report the
// missing fields itself.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err == nil {
		return true
	}
	if middleware.IsBodyTooLarge(err) {
		response.Error(c, http.StatusRequestEntityTooLarge, "Request body too large", "")
		return false
	}
	response.BadRequest(c, validation.Message(err, "Invalid request body"))
	return false
}

// bindQuery decodes and validates query parameters into obj.
func bindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		response.BadRequest(c, validation.Message(err, "Invalid query parameters"))
		return false
	}
	return true
}
