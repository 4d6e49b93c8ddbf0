package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-inventory/internal/api/dto"
	"github.com/spec-kit/asset-inventory/internal/service"
	apperrors "github.com/spec-kit/asset-inventory/pkg/util"
)

// AuthHandler exposes the login endpoint backed by the identity provider.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" {
		return apperrors.NewValidationError("username required", nil)
	}

	account, token, expiresAt, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user": dto.UserResponse{
			ID:   account.ID,
			Name: account.Name,
			Role: account.Role,
		},
		"auth": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
	})
}

// bearerToken strips the Bearer prefix from an Authorization header.
func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
