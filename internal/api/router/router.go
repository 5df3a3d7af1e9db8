package router

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/config"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/api/handler"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/api/middleware"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/api/validation"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/redis"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/response"
)

// Setup builds the API engine. rdb may be nil, in which case login is not
// rate limited.
func Setup(cfg *config.Config, h *handler.Handler, auth middleware.Authenticator, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validation.Register(); err != nil {
		logger.Fatal("register validators", zap.Error(err))
	}

	r := gin.New()
	r.HandleMethodNotAllowed = false

	// ── global middleware ──
	r.Use(middleware.RequestID())
	r.Use(middleware.ExposeErrors(cfg.Server.IsDevelopment()))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.LoadSession(auth, cfg.Auth.Cookie.Name))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not found", "Route "+c.Request.URL.Path+" not found")
	})

	gate := middleware.RequireSession(cfg.Auth.RequireSession)
	loginLimit := middleware.RateLimit(rdb, cfg.Auth.LoginRateLimit.Limit, cfg.Auth.LoginRateLimit.Window, logger)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health.Health)

		// ── auth ──
		auth := api.Group("/auth")
		{
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/logout", h.Auth.Logout)
			auth.POST("/register", h.Auth.Register)
			auth.GET("/profile", h.Auth.Profile)
			auth.GET("/users", h.User.ListUsers)
		}

		// ── workplans ──
		workplans := api.Group("/workplans")
		{
			workplans.GET("", h.Workplan.ListWorkplans)
			workplans.GET("/dashboard", h.Workplan.Dashboard)
			workplans.GET("/export", h.Export.ExportWorkplans)
			workplans.POST("", gate, h.Workplan.CreateWorkplan)
			workplans.GET("/:id", h.Workplan.GetWorkplan)
			workplans.PUT("/:id", gate, h.Workplan.UpdateWorkplan)
			workplans.DELETE("/:id", gate, h.Workplan.DeleteWorkplan)

			workplans.GET("/:id/tasks", h.Workplan.ListTasks)
			workplans.POST("/:id/tasks", gate, h.Workplan.CreateTask)
			workplans.PUT("/:id/tasks/:taskId", gate, h.Workplan.UpdateTask)
			workplans.DELETE("/:id/tasks/:taskId", gate, h.Workplan.DeleteTask)
		}

		// ── PAC ──
		pac := api.Group("/pac")
		{
			pac.GET("/dashboard", h.Pac.Dashboard)
			pac.GET("/types", h.Pac.Types)
			pac.GET("/statuses", h.Pac.Statuses)
			pac.GET("/priorities", h.Pac.Priorities)

			ops := pac.Group("/operations")
			ops.GET("", h.Pac.ListOperations)
			ops.GET("/calendar.ics", h.Pac.Calendar)
			ops.POST("", gate, h.Pac.CreateOperation)
			ops.GET("/:id", h.Pac.GetOperation)
			ops.PUT("/:id", gate, h.Pac.UpdateOperation)
			ops.DELETE("/:id", gate, h.Pac.DeleteOperation)

			ops.GET("/:id/samples", h.Pac.ListSamples)
			ops.POST("/:id/samples", gate, h.Pac.CreateSample)
			ops.PUT("/:id/samples/:sampleId", gate, h.Pac.UpdateSample)
			ops.DELETE("/:id/samples/:sampleId", gate, h.Pac.DeleteSample)
		}

		// ── PPS reference ──
		pps := api.Group("/pps")
		{
			pps.GET("/programs", h.Pps.ListPrograms)
			pps.GET("/programs/:code", h.Pps.GetProgram)
			pps.GET("/export", h.Export.ExportPrograms)
		}
	}

	return r
}
