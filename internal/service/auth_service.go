package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/dto"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/repository"
	apperrors "github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/errors"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/jwt"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/session"
)

// ── auth errors ──

var (
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrEmailTaken          = errors.New("email already exists")
)

// AuthService handles login sessions and registration.
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error)
	// Logout destroys the session. An empty sessionID is a no-op.
	Logout(ctx context.Context, sessionID string) error
	// Authenticate resolves a bearer token to its live session.
	Authenticate(ctx context.Context, token string) (*session.Session, error)
	CurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
}

type authService struct {
	repo     *repository.Repository
	sessions session.Store
	jwtMgr   *jwt.Manager
	logger   *zap.Logger
	now      func() time.Time
	compare  func(hash, password []byte) error
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// unknownUserHash is compared against when the username does not exist, so
// both failure paths pay for one bcrypt comparison.
func unknownUserHash() []byte {
	dummyHashOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("fwfps-unknown-user"), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}
		dummyHash = h
	})
	return dummyHash
}

// NewAuthService creates an AuthService.
func NewAuthService(
	repo *repository.Repository,
	sessions session.Store,
	jwtMgr *jwt.Manager,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		sessions: sessions,
		jwtMgr:   jwtMgr,
		logger:   logger,
		now:      utcNow,
		compare:  bcrypt.CompareHashAndPassword,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.compare(unknownUserHash(), []byte(req.Password))
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	if err := s.compare([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.repo.User.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Error("failed to record last login", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, err
	}
	user.LastLogin = &now

	sess, err := s.sessions.Create(ctx, user.ID, user.Username)
	if err != nil {
		s.logger.Error("failed to create session", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	token, err := s.jwtMgr.Generate(sess)
	if err != nil {
		s.logger.Error("failed to sign session token", zap.Int64("user_id", user.ID), zap.Error(err))
		_ = s.sessions.Delete(ctx, sess.ID)
		return nil, err
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("username", user.Username))

	return &dto.LoginResult{
		User:      dto.NewUserResponse(user),
		Token:     token,
		SessionID: sess.ID,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, session.ErrNotFound) {
		s.logger.Error("failed to delete session", zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*session.Session, error) {
	claims, err := s.jwtMgr.Parse(token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		s.logger.Error("failed to load session", zap.Error(err))
		return nil, err
	}
	if sess.UserID != claims.UserID {
		return nil, ErrNotAuthenticated
	}
	return sess, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to load user", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.Required("username", "Username")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, apperrors.Required("email", "Email")
	}
	if req.Password == "" {
		return nil, apperrors.Required("password", "Password")
	}
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, apperrors.Required("full_name", "Full name")
	}

	if _, err := s.repo.User.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to check username", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to check email", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	role := model.RoleUser
	if req.Role != nil && *req.Role != "" {
		role = *req.Role
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
		Department:   req.Department,
		IsActive:     true,
		CreatedAt:    s.now(),
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error("failed to create user", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", username))
	resp := dto.NewUserResponse(user)
	return &resp, nil
}
