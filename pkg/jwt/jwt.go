package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/config"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/pkg/session"
)

const issuer = "fwfps"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims identify the server-side session a token was issued for.
type Claims struct {
	SessionID string `json:"sid"`
	UserID    int64  `json:"uid"`
	Username  string `json:"username"`
	jwtv5.RegisteredClaims
}

// Manager signs and verifies session tokens.
type Manager struct {
	secret []byte
}

// NewManager creates a Manager from the auth config.
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{secret: []byte(cfg.SessionSecret)}
}

// Generate signs a token for sess that expires together with it.
func (m *Manager) Generate(sess *session.Session) (string, error) {
	claims := Claims{
		SessionID: sess.ID,
		UserID:    sess.UserID,
		Username:  sess.Username,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        sess.ID,
			IssuedAt:  jwtv5.NewNumericDate(sess.CreatedAt),
			ExpiresAt: jwtv5.NewNumericDate(sess.ExpiresAt),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies the signature and expiry of tokenString.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer), jwtv5.WithLeeway(5*time.Second))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
