package dto

import "time"

// ── auth ──

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username   string  `json:"username"   binding:"omitempty,max=80"`
	Email      string  `json:"email"      binding:"omitempty,email,max=120"`
	Password   string  `json:"password"   binding:"omitempty,min=6,max=72"`
	FullName   string  `json:"full_name"  binding:"omitempty,max=200"`
	Role       *string `json:"role"       binding:"omitempty,oneof=user admin"`
	Department *string `json:"department" binding:"omitempty,max=100"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User      UserResponse
	Token     string
	SessionID string
	ExpiresAt time.Time
}
