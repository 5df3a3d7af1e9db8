package service

import (
	"go.uber.org/zap"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/reference"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/repository"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/jwt"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/session"
)

// Service aggregates all services.
type Service struct {
	Auth      AuthService
	User      UserService
	Workplan  WorkplanService
	Pac       PacService
	Reference ReferenceService
	Export    ExportService
	Calendar  CalendarService
}

// NewService wires every service onto the repositories.
func NewService(
	repo *repository.Repository,
	sessions session.Store,
	jwtMgr *jwt.Manager,
	catalog *reference.Catalog,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(repo, sessions, jwtMgr, logger),
		User:      NewUserService(repo, logger),
		Workplan:  NewWorkplanService(repo, logger),
		Pac:       NewPacService(repo, logger),
		Reference: NewReferenceService(catalog),
		Export:    NewExportService(repo, catalog, logger),
		Calendar:  NewCalendarService(repo, logger),
	}
}
