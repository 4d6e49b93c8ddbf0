package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-inventory/internal/api/dto"
	"github.com/spec-kit/asset-inventory/internal/domain"
	"github.com/spec-kit/asset-inventory/internal/identity"
	"github.com/spec-kit/asset-inventory/internal/service"
	apperrors "github.com/spec-kit/asset-inventory/pkg/util"
)

// TicketsHandler manages support ticket endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
	tokens  *identity.TokenManager
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, tokens *identity.TokenManager) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, tokens: tokens}
}

// ListByAsset GET /api/assets/:id/tickets.
func (h *TicketsHandler) ListByAsset(c *fiber.Ctx) error {
	assetID, err := assetID(c)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.ListByAsset(c.UserContext(), assetID)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"success": true, "tickets": items})
}

// Create POST /api/assets/:id/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	assetID, err := assetID(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	creator := h.creatorID(c, req.CreatorID)
	ticket, err := h.tickets.Create(c.UserContext(), creator, assetID, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "ticket": ticketResponse(ticket)})
}

// Update PUT /api/tickets/:id.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperrors.NewNotFound("Ticket", nil)
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.UpdateStatus(c.UserContext(), h.creatorID(c, nil), id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "ticket": ticketResponse(ticket)})
}

// creatorID prefers the session token, then the explicit body field.
func (h *TicketsHandler) creatorID(c *fiber.Ctx, fallback *int64) *int64 {
	header := c.Get("Authorization")
	if header != "" {
		if claims, err := h.tokens.ParseToken(bearerToken(header)); err == nil {
			return &claims.UserID
		}
	}
	return fallback
}

func ticketResponse(ticket *domain.SupportTicket) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:          ticket.ID,
		AssetID:     ticket.AssetID,
		CreatedBy:   ticket.CreatedBy,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		CreatedAt:   ticket.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   ticket.UpdatedAt.Format(time.RFC3339),
	}
	if ticket.ResolvedAt != nil {
		resolved := ticket.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &resolved
	}
	return resp
}
