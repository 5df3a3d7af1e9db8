package dto

import (
	"time"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
)

// UserResponse is the public profile of a user. The password hash is
// never part of it.
type UserResponse struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Role       string     `json:"role"`
	Department *string    `json:"department"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
	LastLogin  *time.Time `json:"last_login"`
}

// NewUserResponse strips a user down to its public profile.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       u.Role,
		Department: u.Department,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		LastLogin:  u.LastLogin,
	}
}
