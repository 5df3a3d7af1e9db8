package model

import "time"

// User is an account that can log in. Users are never hard-deleted.
type User struct {
	ID           int64      `gorm:"primaryKey"                     json:"id"`
	Username     string     `gorm:"size:80;not null;uniqueIndex"   json:"username"`
	Email        string     `gorm:"size:120;not null;uniqueIndex"  json:"email"`
	PasswordHash string     `gorm:"size:255;not null"              json:"-"`
	FullName     string     `gorm:"size:200;not null"              json:"full_name"`
	Role         string     `gorm:"size:50;not null"               json:"role"`
	Department   *string    `gorm:"size:100"                       json:"department"`
	IsActive     bool       `gorm:"not null"                       json:"is_active"`
	CreatedAt    time.Time  `gorm:"not null"                       json:"created_at"`
	LastLogin    *time.Time `                                      json:"last_login"`
}

// TableName overrides the table name.
func (User) TableName() string { return "users" }
