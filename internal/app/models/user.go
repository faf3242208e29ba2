package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`
	Username    string     `json:"username" db:"username" example:"alice"`
	Email       string     `json:"email" db:"email" example:"alice@example.edu"`
	Password    string     `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}
