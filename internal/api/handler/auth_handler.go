package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/config"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/api/middleware"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/dto"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/service"
	apperrors "github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/errors"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/response"
)

// AuthHandler serves login, logout, profile and registration.
type AuthHandler struct {
	authSvc service.AuthService
	cookie  config.CookieConfig
	now     func() time.Time
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService, cookie config.CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "fwfps_session"
	}
	return &AuthHandler{authSvc: authSvc, cookie: cookie, now: time.Now}
}

// Login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, int(result.ExpiresAt.Sub(h.now()).Seconds()))
	response.OK(c, gin.H{
		"message": "Login successful",
		"user":    result.User,
		"token":   result.Token,
	})
}

// Logout
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authSvc.Logout(c.Request.Context(), c.GetString(middleware.SessionIDKey)); err != nil {
		response.InternalError(c, "Could not log out", err)
		return
	}

	h.setSessionCookie(c, "", -1)
	response.Message(c, "Logout successful")
}

// Profile returns the session user.
// GET /api/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, gin.H{"user": user})
}

// Register
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(sameSite(h.cookie.SameSite))
	c.SetCookie(h.cookie.Name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func sameSite(v string) http.SameSite {
	switch v {
	case "Strict", "strict":
		return http.SameSiteStrictMode
	case "None", "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCredentialsRequired):
		response.BadRequest(c, "Username and password are required")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid username or password")
	case errors.Is(err, service.ErrNotAuthenticated):
		response.Unauthorized(c, "Not authenticated")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "User not found")
	case errors.Is(err, service.ErrUsernameTaken):
		response.Conflict(c, "Username already exists")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, "Email already exists")
	case errors.Is(err, apperrors.ErrInvalidInput):
		response.BadRequest(c, apperrors.Message(err, "Invalid request"))
	default:
		response.InternalError(c, "Internal server error", err)
	}
}
