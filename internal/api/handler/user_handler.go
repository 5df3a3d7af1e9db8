package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/service"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/response"
)

// UserHandler lists user profiles.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers
// GET /api/auth/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	if _, ok := MustGetUserID(c); !ok {
		return
	}

	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Internal server error", err)
		return
	}

	response.OK(c, gin.H{"users": users})
}
