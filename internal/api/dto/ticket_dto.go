package dto

import "github.com/spec-kit/asset-inventory/internal/domain"

// CreateTicketRequest payload. CreatorID is used when no session token is
// presented.
type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CreatorID   *int64 `json:"creatorId"`
}

// UpdateTicketRequest payload.
type UpdateTicketRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// TicketResponse renders a support ticket.
type TicketResponse struct {
	ID          int64               `json:"id"`
	AssetID     int64               `json:"assetId"`
	CreatedBy   *int64              `json:"createdBy"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      domain.TicketStatus `json:"status"`
	CreatedAt   string              `json:"createdAt"`
	UpdatedAt   string              `json:"updatedAt"`
	ResolvedAt  *string             `json:"resolvedAt"`
}
