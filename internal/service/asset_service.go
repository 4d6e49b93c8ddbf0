package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/asset-inventory/internal/cache"
	"github.com/spec-kit/asset-inventory/internal/domain"
	"github.com/spec-kit/asset-inventory/internal/events"
	"github.com/spec-kit/asset-inventory/internal/repository"
	apperrors "github.com/spec-kit/asset-inventory/pkg/util"
)

// AssetService is the mutation gateway for assets. Every write goes through
// here so audit emission cannot be skipped.
type AssetService struct {
	assets     repository.AssetRepository
	audit      repository.AuditLogRepository
	listCache  *cache.AssetListCache
	dispatcher events.Dispatcher
}

// AssetDependencies bundles collaborators for the asset service.
type AssetDependencies struct {
	AssetRepo  repository.AssetRepository
	AuditRepo  repository.AuditLogRepository
	ListCache  *cache.AssetListCache
	Dispatcher events.Dispatcher
}

// AssetCreateInput describes asset creation payload.
type AssetCreateInput struct {
	Type       domain.AssetType
	Status     domain.AssetStatus
	AssignedTo *int64

	// Physical fields.
	Manufacturer string
	Model        string
	SerialNumber *string
	AssetTag     string
	Location     string

	// Digital fields.
	ProductName string
	LicenseKey  string
	Version     string
	RenewalDate *time.Time
}

// AssetUpdateInput describes a partial update. Nil fields are left as-is;
// Unassign clears the assignment.
type AssetUpdateInput struct {
	Status      *string
	RepairNotes *string
	AssigneeID  *int64
	Unassign    bool
}

// AssetFilter mirrors the repository filter for callers outside the package.
type AssetFilter = repository.AssetFilter

// NewAssetService constructs the service.
func NewAssetService(deps AssetDependencies) *AssetService {
	return &AssetService{
		assets:     deps.AssetRepo,
		audit:      deps.AuditRepo,
		listCache:  deps.ListCache,
		dispatcher: deps.Dispatcher,
	}
}

// Create validates and inserts a new asset, audits the creation and
// publishes the created event.
func (s *AssetService) Create(ctx context.Context, actorID *int64, input AssetCreateInput) (*domain.Asset, error) {
	asset, err := buildAsset(input)
	if err != nil {
		return nil, err
	}

	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, err
	}

	if err := s.appendAudit(ctx, asset.ID, actorID, domain.AuditActionCreated,
		fmt.Sprintf("asset created (type=%s)", asset.Type)); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{
		Type:    events.EventAssetCreated,
		AssetID: asset.ID,
		ActorID: actorID,
		Payload: events.AssetCreatedPayload{Type: asset.Type, Status: asset.Status},
	})
	s.listCache.Invalidate(ctx)
	return asset, nil
}

// List returns assets matching the filter, newest-created-first. The
// unfiltered listing is served from the redis cache when warm.
func (s *AssetService) List(ctx context.Context, filter AssetFilter) ([]domain.Asset, error) {
	unfiltered := filter == AssetFilter{}
	if unfiltered {
		if assets, ok := s.listCache.Get(ctx); ok {
			return assets, nil
		}
	}

	assets, err := s.assets.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if unfiltered {
		s.listCache.Set(ctx, assets)
	}
	return assets, nil
}

// Get fetches one asset by id.
func (s *AssetService) Get(ctx context.Context, id int64) (*domain.Asset, error) {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "Asset")
	}
	return asset, nil
}

// Update applies a partial update (status, repair notes, assignment) and
// audits every change it made.
func (s *AssetService) Update(ctx context.Context, actorID *int64, id int64, input AssetUpdateInput) (*domain.Asset, error) {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return nil, mapNoRows(err, "Asset")
	}

	type auditChange struct {
		action  domain.AuditAction
		details string
	}
	var changes []auditChange
	var published []events.Event

	if input.Status != nil {
		status, ok := domain.ParseAssetStatus(*input.Status)
		if !ok {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		if status != asset.Status {
			if asset.Status == domain.AssetStatusDecommissioned {
				return nil, apperrors.NewValidationError("asset is decommissioned", nil)
			}
			changes = append(changes, auditChange{
				action:  domain.AuditActionStatusChanged,
				details: fmt.Sprintf("%s -> %s", asset.Status, status),
			})
			published = append(published, events.Event{
				Type:    events.EventAssetStatusChanged,
				AssetID: asset.ID,
				ActorID: actorID,
				Payload: events.AssetStatusChangedPayload{OldStatus: asset.Status, NewStatus: status},
			})
			asset.Status = status
		}
	}

	if input.RepairNotes != nil && *input.RepairNotes != asset.RepairNotes {
		asset.RepairNotes = *input.RepairNotes
		changes = append(changes, auditChange{
			action:  domain.AuditActionUpdated,
			details: "repair notes updated",
		})
		published = append(published, events.Event{
			Type:    events.EventAssetUpdated,
			AssetID: asset.ID,
			ActorID: actorID,
			Payload: events.AssetUpdatedPayload{Fields: []string{"repair_notes"}},
		})
	}

	if input.Unassign && asset.AssignedTo != nil {
		asset.AssignedTo = nil
		changes = append(changes, auditChange{action: domain.AuditActionAssigned, details: "unassigned"})
		published = append(published, events.Event{
			Type:    events.EventAssetAssigned,
			AssetID: asset.ID,
			ActorID: actorID,
			Payload: events.AssetAssignedPayload{},
		})
	} else if input.AssigneeID != nil {
		if asset.AssignedTo == nil || *asset.AssignedTo != *input.AssigneeID {
			asset.AssignedTo = input.AssigneeID
			changes = append(changes, auditChange{
				action:  domain.AuditActionAssigned,
				details: fmt.Sprintf("assigned to user %d", *input.AssigneeID),
			})
			published = append(published, events.Event{
				Type:    events.EventAssetAssigned,
				AssetID: asset.ID,
				ActorID: actorID,
				Payload: events.AssetAssignedPayload{AssignedTo: input.AssigneeID},
			})
		}
	}

	if len(changes) == 0 {
		return asset, nil
	}

	if err := s.assets.Update(ctx, asset); err != nil {
		return nil, mapNoRows(err, "Asset")
	}
	for _, change := range changes {
		if err := s.appendAudit(ctx, asset.ID, actorID, change.action, change.details); err != nil {
			return nil, err
		}
	}
	for _, event := range published {
		s.publish(ctx, event)
	}
	s.listCache.Invalidate(ctx)
	return asset, nil
}

// Delete removes the asset. Tickets and audit logs cascade with it, so the
// removal itself is only evented and logged, not audited.
func (s *AssetService) Delete(ctx context.Context, actorID *int64, id int64) error {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		return mapNoRows(err, "Asset")
	}

	if err := s.assets.Delete(ctx, id); err != nil {
		return mapNoRows(err, "Asset")
	}
	s.publish(ctx, events.Event{
		Type:    events.EventAssetDeleted,
		AssetID: id,
		ActorID: actorID,
		Payload: events.AssetDeletedPayload{Type: asset.Type},
	})
	s.listCache.Invalidate(ctx)
	return nil
}

// ListAuditLogs returns the audit trail for one asset, newest-first.
func (s *AssetService) ListAuditLogs(ctx context.Context, assetID int64) ([]domain.AuditLog, error) {
	if _, err := s.assets.GetByID(ctx, assetID); err != nil {
		return nil, mapNoRows(err, "Asset")
	}
	return s.audit.ListByAsset(ctx, assetID)
}

func (s *AssetService) appendAudit(ctx context.Context, assetID int64, actorID *int64, action domain.AuditAction, details string) error {
	return s.audit.Append(ctx, &domain.AuditLog{
		AssetID: assetID,
		UserID:  actorID,
		Action:  action,
		Details: details,
	})
}

func (s *AssetService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func buildAsset(input AssetCreateInput) (*domain.Asset, error) {
	hasPhysical := input.Manufacturer != "" || input.Model != "" || input.SerialNumber != nil ||
		input.AssetTag != "" || input.Location != ""
	hasDigital := input.ProductName != "" || input.LicenseKey != "" || input.Version != "" ||
		input.RenewalDate != nil

	asset := &domain.Asset{
		Type:       input.Type,
		Status:     input.Status,
		AssignedTo: input.AssignedTo,
	}
	if asset.Status == "" {
		asset.Status = domain.AssetStatusInService
	}
	if !asset.Status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": input.Status})
	}

	switch input.Type {
	case domain.AssetTypePhysical:
		if hasDigital {
			return nil, apperrors.NewValidationError("digital fields not allowed on a physical asset", nil)
		}
		asset.Physical = &domain.PhysicalDetails{
			Manufacturer: strings.TrimSpace(input.Manufacturer),
			Model:        strings.TrimSpace(input.Model),
			SerialNumber: normalizeSerial(input.SerialNumber),
			AssetTag:     strings.TrimSpace(input.AssetTag),
			Location:     strings.TrimSpace(input.Location),
		}
	case domain.AssetTypeDigital:
		if hasPhysical {
			return nil, apperrors.NewValidationError("physical fields not allowed on a digital asset", nil)
		}
		asset.Digital = &domain.DigitalDetails{
			ProductName: strings.TrimSpace(input.ProductName),
			LicenseKey:  strings.TrimSpace(input.LicenseKey),
			Version:     strings.TrimSpace(input.Version),
			RenewalDate: input.RenewalDate,
		}
	default:
		return nil, apperrors.NewValidationError("asset type must be physical or digital", map[string]any{"type": input.Type})
	}
	return asset, nil
}

// normalizeSerial maps blank serial numbers to NULL so they stay outside the
// unique constraint.
func normalizeSerial(serial *string) *string {
	if serial == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*serial)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapNoRows(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}
