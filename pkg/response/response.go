package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExposeErrorsKey is the context key that enables internal error messages
// in 500 bodies. It is set by the router in development mode.
const ExposeErrorsKey = "expose_errors"

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ── success ──

// OK writes 200 with {"success": true} merged into payload.
func OK(c *gin.Context, payload gin.H) {
	c.JSON(http.StatusOK, withSuccess(payload))
}

// Created writes 201 with {"success": true} merged into payload.
func Created(c *gin.Context, payload gin.H) {
	c.JSON(http.StatusCreated, withSuccess(payload))
}

// Message writes 200 {"success": true, "message": msg}.
func Message(c *gin.Context, msg string) {
	OK(c, gin.H{"message": msg})
}

func withSuccess(payload gin.H) gin.H {
	out := make(gin.H, len(payload)+1)
	for k, v := range payload {
		out[k] = v
	}
	out["success"] = true
	return out
}

// ── errors ──

// Error writes a failure body with the given status.
func Error(c *gin.Context, status int, errMsg, message string) {
	c.JSON(status, ErrorBody{Error: errMsg, Message: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, errMsg string) {
	Error(c, http.StatusBadRequest, errMsg, "")
}

// Unauthorized 401
func Unauthorized(c *gin.Context, errMsg string) {
	Error(c, http.StatusUnauthorized, errMsg, "")
}

// NotFound 404
func NotFound(c *gin.Context, errMsg string) {
	Error(c, http.StatusNotFound, errMsg, "")
}

// Conflict 409
func Conflict(c *gin.Context, errMsg string) {
	Error(c, http.StatusConflict, errMsg, "")
}

// TooManyRequests 429
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, "Too many requests", "Please try again later")
}

// InternalError writes 500. The underlying message is only included when
// ExposeErrorsKey is set on the context.
func InternalError(c *gin.Context, errMsg string, err error) {
	message := "Something went wrong"
	if err != nil && c.GetBool(ExposeErrorsKey) {
		message = err.Error()
	}
	if err != nil {
		_ = c.Error(err)
	}
	Error(c, http.StatusInternalServerError, errMsg, message)
}
