package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/asset-inventory/internal/domain"
	"github.com/spec-kit/asset-inventory/internal/events"
	"github.com/spec-kit/asset-inventory/internal/repository"
	apperrors "github.com/spec-kit/asset-inventory/pkg/util"
)

// TicketService coordinates support ticket workflows. Like assets, every
// mutation writes an audit entry on the linked asset.
type TicketService struct {
	tickets    repository.SupportTicketRepository
	assets     repository.AssetRepository
	audit      repository.AuditLogRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.SupportTicketRepository
	AssetRepo  repository.AssetRepository
	AuditRepo  repository.AuditLogRepository
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		assets:     deps.AssetRepo,
		audit:      deps.AuditRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Create opens a ticket against an existing asset.
func (s *TicketService) Create(ctx context.Context, actorID *int64, assetID int64, title, description string) (*domain.SupportTicket, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if _, err := s.assets.GetByID(ctx, assetID); err != nil {
		return nil, mapNoRows(err, "Asset")
	}

	ticket := &domain.SupportTicket{
		AssetID:     assetID,
		CreatedBy:   actorID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      domain.TicketStatusOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	if err := s.audit.Append(ctx, &domain.AuditLog{
		AssetID: assetID,
		UserID:  actorID,
		Action:  domain.AuditActionTicketCreated,
		Details: fmt.Sprintf("ticket #%d opened: %s", ticket.ID, ticket.Title),
	}); err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventTicketCreated,
			AssetID: assetID,
			ActorID: actorID,
			Payload: events.TicketCreatedPayload{TicketID: ticket.ID, Title: ticket.Title},
		})
	}
	return ticket, nil
}

// UpdateStatus applies a status transition, stamping resolved_at the first
// time the ticket becomes resolved.
func (s *TicketService) UpdateStatus(ctx context.Context, actorID *int64, ticketID int64, status domain.TicketStatus) (*domain.SupportTicket, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid ticket status", map[string]any{"status": status})
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, mapNoRows(err, "Ticket")
	}
	if ticket.Status == status {
		return ticket, nil
	}

	oldStatus := ticket.Status
	ticket.Status = status
	if status == domain.TicketStatusResolved && ticket.ResolvedAt == nil {
		now := time.Now()
		ticket.ResolvedAt = &now
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, mapNoRows(err, "Ticket")
	}
	if err := s.audit.Append(ctx, &domain.AuditLog{
		AssetID: ticket.AssetID,
		UserID:  actorID,
		Action:  domain.AuditActionTicketStatusChanged,
		Details: fmt.Sprintf("ticket #%d: %s -> %s", ticket.ID, oldStatus, status),
	}); err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventTicketStatusChanged,
			AssetID: ticket.AssetID,
			ActorID: actorID,
			Payload: events.TicketStatusChangedPayload{
				TicketID:  ticket.ID,
				OldStatus: oldStatus,
				NewStatus: status,
			},
		})
	}
	return ticket, nil
}

// ListByAsset returns tickets for one asset, newest-first.
func (s *TicketService) ListByAsset(ctx context.Context, assetID int64) ([]domain.SupportTicket, error) {
	if _, err := s.assets.GetByID(ctx, assetID); err != nil {
		return nil, mapNoRows(err, "Asset")
	}
	return s.tickets.ListByAsset(ctx, assetID)
}
