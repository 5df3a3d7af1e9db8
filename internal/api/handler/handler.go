package handler

import (
	"context"

	"go.uber.org/zap"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/config"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/service"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Pinger checks that the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler groups every HTTP handler.
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Workplan *WorkplanHandler
	Pac      *PacHandler
	Pps      *PpsHandler
	Export   *ExportHandler
	Health   *HealthHandler
}

// NewHandler builds the handlers over svc.
func NewHandler(svc *service.Service, cfg *config.Config, db Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth, cfg.Auth.Cookie),
		User:     NewUserHandler(svc.User),
		Workplan: NewWorkplanHandler(svc.Workplan),
		Pac:      NewPacHandler(svc.Pac, svc.Calendar),
		Pps:      NewPpsHandler(svc.Reference),
		Export:   NewExportHandler(svc.Export),
		Health:   NewHealthHandler(db, logger),
	}
}
