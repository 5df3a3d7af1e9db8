package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/response"
)

// Recovery turns a panic into the standard 500 JSON body.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Stack("stack"),
		)
		response.InternalError(c, "Internal server error", fmt.Errorf("%v", recovered))
		c.Abort()
	})
}

// ExposeErrors lets 500 bodies carry the underlying error message.
func ExposeErrors(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if enabled {
			c.Set(response.ExposeErrorsKey, true)
		}
		c.Next()
	}
}
