package events

import (
	"time"

	"github.com/spec-kit/asset-inventory/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAssetCreated        EventType = "asset_created"
	EventAssetStatusChanged  EventType = "asset_status_changed"
	EventAssetAssigned       EventType = "asset_assigned"
	EventAssetUpdated        EventType = "asset_updated"
	EventAssetDeleted        EventType = "asset_deleted"
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AssetID   int64       `json:"asset_id"`
	ActorID   *int64      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AssetCreatedPayload payload.
type AssetCreatedPayload struct {
	Type   domain.AssetType   `json:"type"`
	Status domain.AssetStatus `json:"status"`
}

// AssetStatusChangedPayload payload.
type AssetStatusChangedPayload struct {
	OldStatus domain.AssetStatus `json:"old_status"`
	NewStatus domain.AssetStatus `json:"new_status"`
}

// AssetUpdatedPayload payload.
type AssetUpdatedPayload struct {
	Fields []string `json:"fields"`
}

// AssetAssignedPayload payload.
type AssetAssignedPayload struct {
	AssignedTo *int64 `json:"assigned_to,omitempty"`
}

// AssetDeletedPayload payload.
type AssetDeletedPayload struct {
	Type domain.AssetType `json:"type"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID int64  `json:"ticket_id"`
	Title    string `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  int64               `json:"ticket_id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}
