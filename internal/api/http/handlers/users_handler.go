package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-inventory/internal/api/dto"
	"github.com/spec-kit/asset-inventory/internal/service"
)

// UsersHandler exposes the directory for assignment pickers.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// List GET /api/users/.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	accounts, err := h.auth.ListAccounts(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, dto.UserResponse{
			ID:       account.ID,
			Username: account.Username,
			Name:     account.Name,
			Role:     account.Role,
		})
	}
	return c.JSON(fiber.Map{"users": items})
}
