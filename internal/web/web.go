// Package web serves the FWFPS client views. Every request builds its own
// API client from the caller's cookie; no user state outlives a request.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/config"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/api/middleware"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/client"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/dto"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/reference"
)

//go:embed templates/*.html
var templateFS embed.FS

// TokenCookie holds the API token in the browser.
const TokenCookie = "fwfps_web_token"

// PageSize is the number of rows per page in paginated tables.
const PageSize = 10

const viewerKey = "viewer"

// Server renders the client views.
type Server struct {
	apiBaseURL string
	httpClient *http.Client
	catalog    *reference.Catalog
	secure     bool
	logger     *zap.Logger
	now        func() time.Time
}

// New creates a Server that talks to the API at cfg.Web.APIBaseURL.
func New(cfg *config.Config, catalog *reference.Catalog, logger *zap.Logger) *Server {
	timeout := cfg.Web.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Server{
		apiBaseURL: cfg.Web.APIBaseURL,
		httpClient: &http.Client{Timeout: timeout},
		catalog:    catalog,
		secure:     cfg.Auth.Cookie.Secure,
		logger:     logger,
		now:        time.Now,
	}
}

// viewer is the per-request auth context.
type viewer struct {
	api  *client.Client
	user *dto.UserResponse
	// offline is set when the profile lookup could not reach the API.
	offline bool
}

// Router builds the gin engine serving every view.
func (s *Server) Router() (*gin.Engine, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.Logger(s.logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(s.loadViewer())

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/auth/login") })
	r.GET("/auth/login", s.loginPage)
	r.POST("/auth/login", s.login)
	r.POST("/auth/logout", s.logout)

	views := r.Group("")
	views.Use(s.requireViewer())
	{
		views.GET("/fwfps", s.home)
		views.GET("/model", s.models)
		views.GET("/pps", s.pps)
		views.GET("/pac/:id", s.pac)
	}

	r.NoRoute(func(c *gin.Context) { c.Redirect(http.StatusFound, "/auth/login") })
	return r, nil
}

// loadViewer resolves the caller's user through the API.
func (s *Server) loadViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(TokenCookie)
		v := &viewer{api: client.New(s.apiBaseURL, s.httpClient, token)}
		if token != "" {
			user, err := v.api.CurrentUser(c.Request.Context())
			if err != nil {
				s.logger.Warn("profile lookup failed", zap.Error(err))
				v.offline = true
			}
			v.user = user
		}
		c.Set(viewerKey, v)
		c.Next()
	}
}

// requireViewer sends callers without a session back to the login page.
// When the API is down the views still render from reference data.
func (s *Server) requireViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		v := viewerFrom(c)
		if v.user == nil && !v.offline {
			c.Redirect(http.StatusFound, "/auth/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func viewerFrom(c *gin.Context) *viewer {
	if v, ok := c.Get(viewerKey); ok {
		return v.(*viewer)
	}
	return &viewer{}
}

func (s *Server) setToken(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookie, token, maxAge, "/", "", s.secure, true)
}
