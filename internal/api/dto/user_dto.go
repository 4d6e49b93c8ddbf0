package dto

import (
	"time"

	"github.com/spec-kit/asset-inventory/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse renders a directory account.
type UserResponse struct {
	ID       int64       `json:"id"`
	Username string      `json:"username,omitempty"`
	Name     string      `json:"name"`
	Role     domain.Role `json:"role"`
}

// AuthResponse carries the session token issued at login.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
