package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/response"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/session"
)

// Context keys set by LoadSession.
const (
	UserIDKey    = "user_id"
	UsernameKey  = "username"
	SessionIDKey = "session_id"
)

// Authenticator resolves a session token to a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Session, error)
}

// LoadSession reads the token from the session cookie or an
// Authorization: Bearer header and, when it resolves to a live session,
// puts the user on the context. It never rejects a request; gating is left
// to RequireSession and the handlers.
func LoadSession(auth Authenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(cookieName)
		}

		if token != "" {
			if sess, err := auth.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(UserIDKey, sess.UserID)
				c.Set(UsernameKey, sess.Username)
				c.Set(SessionIDKey, sess.ID)
			}
		}

		c.Next()
	}
}

// RequireSession rejects requests without a loaded session with 401. When
// enabled is false it lets everything through.
func RequireSession(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		if _, ok := c.Get(UserIDKey); !ok {
			response.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
