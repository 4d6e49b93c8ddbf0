package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/asset-inventory/internal/domain"
	"github.com/spec-kit/asset-inventory/internal/service"
	apperrors "github.com/spec-kit/asset-inventory/pkg/util"
)

// memStore backs the in-memory repository fakes. Asset deletion cascades to
// tickets and audit logs the way the schema's foreign keys do.
type memStore struct {
	assets     map[int64]*domain.Asset
	assetOrder []int64
	tickets    map[int64]*domain.SupportTicket
	logs       []domain.AuditLog
	nextAsset  int64
	nextTicket int64
	nextLog    int64
}

func newMemStore() *memStore {
	return &memStore{
		assets:  make(map[int64]*domain.Asset),
		tickets: make(map[int64]*domain.SupportTicket),
	}
}

type memAssetRepo struct{ store *memStore }

func (r *memAssetRepo) Create(_ context.Context, asset *domain.Asset) error {
	if serial := asset.SerialNumber(); serial != nil {
		for _, existing := range r.store.assets {
			if s := existing.SerialNumber(); s != nil && *s == *serial {
				return apperrors.NewValidationError("serial number already in use", nil)
			}
		}
	}
	r.store.nextAsset++
	now := time.Now()
	asset.ID = r.store.nextAsset
	asset.CreatedAt = now
	asset.UpdatedAt = now
	if asset.DateInService.IsZero() {
		asset.DateInService = now.Truncate(24 * time.Hour)
	}
	stored := *asset
	r.store.assets[asset.ID] = &stored
	r.store.assetOrder = append(r.store.assetOrder, asset.ID)
	return nil
}

func (r *memAssetRepo) Update(_ context.Context, asset *domain.Asset) error {
	if _, ok := r.store.assets[asset.ID]; !ok {
		return pgx.ErrNoRows
	}
	asset.UpdatedAt = time.Now()
	stored := *asset
	r.store.assets[asset.ID] = &stored
	return nil
}

func (r *memAssetRepo) GetByID(_ context.Context, id int64) (*domain.Asset, error) {
	asset, ok := r.store.assets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *asset
	return &found, nil
}

func (r *memAssetRepo) List(_ context.Context, filter service.AssetFilter) ([]domain.Asset, error) {
	var assets []domain.Asset
	for i := len(r.store.assetOrder) - 1; i >= 0; i-- {
		asset := r.store.assets[r.store.assetOrder[i]]
		if filter.Status != nil && asset.Status != *filter.Status {
			continue
		}
		if filter.Type != nil && asset.Type != *filter.Type {
			continue
		}
		if filter.AssignedTo != nil && (asset.AssignedTo == nil || *asset.AssignedTo != *filter.AssignedTo) {
			continue
		}
		if filter.Manufacturer != nil {
			if asset.Physical == nil || !strings.Contains(
				strings.ToLower(asset.Physical.Manufacturer), strings.ToLower(*filter.Manufacturer)) {
				continue
			}
		}
		assets = append(assets, *asset)
	}
	return assets, nil
}

func (r *memAssetRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.store.assets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.store.assets, id)
	for ticketID, ticket := range r.store.tickets {
		if ticket.AssetID == id {
			delete(r.store.tickets, ticketID)
		}
	}
	kept := r.store.logs[:0]
	for _, entry := range r.store.logs {
		if entry.AssetID != id {
			kept = append(kept, entry)
		}
	}
	r.store.logs = kept
	return nil
}

type memAuditRepo struct{ store *memStore }

func (r *memAuditRepo) Append(_ context.Context, entry *domain.AuditLog) error {
	r.store.nextLog++
	entry.ID = r.store.nextLog
	entry.Timestamp = time.Now()
	r.store.logs = append(r.store.logs, *entry)
	return nil
}

func (r *memAuditRepo) ListByAsset(_ context.Context, assetID int64) ([]domain.AuditLog, error) {
	var logs []domain.AuditLog
	for i := len(r.store.logs) - 1; i >= 0; i-- {
		if r.store.logs[i].AssetID == assetID {
			logs = append(logs, r.store.logs[i])
		}
	}
	return logs, nil
}

type memTicketRepo struct{ store *memStore }

func (r *memTicketRepo) Create(_ context.Context, ticket *domain.SupportTicket) error {
	r.store.nextTicket++
	now := time.Now()
	ticket.ID = r.store.nextTicket
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	stored := *ticket
	r.store.tickets[ticket.ID] = &stored
	return nil
}

func (r *memTicketRepo) Update(_ context.Context, ticket *domain.SupportTicket) error {
	if _, ok := r.store.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	stored := *ticket
	r.store.tickets[ticket.ID] = &stored
	return nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id int64) (*domain.SupportTicket, error) {
	ticket, ok := r.store.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	found := *ticket
	return &found, nil
}

func (r *memTicketRepo) ListByAsset(_ context.Context, assetID int64) ([]domain.SupportTicket, error) {
	var tickets []domain.SupportTicket
	for id := r.store.nextTicket; id >= 1; id-- {
		if ticket, ok := r.store.tickets[id]; ok && ticket.AssetID == assetID {
			tickets = append(tickets, *ticket)
		}
	}
	return tickets, nil
}

func newAssetService(store *memStore) *service.AssetService {
	return service.NewAssetService(service.AssetDependencies{
		AssetRepo: &memAssetRepo{store: store},
		AuditRepo: &memAuditRepo{store: store},
	})
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func TestAssetServiceCreateDefaultsToInService(t *testing.T) {
	store := newMemStore()
	svc := newAssetService(store)

	asset, err := svc.Create(context.Background(), int64Ptr(1), service.AssetCreateInput{
		Type:         domain.AssetTypePhysical,
		Manufacturer: "Dell",
		Model:        "Latitude 5420",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AssetStatusInService, asset.Status)
	assert.False(t, asset.DateInService.IsZero())
	require.NotNil(t, asset.Physical)
	assert.Nil(t, asset.Digital)

	logs, err := svc.ListAuditLogs(context.Background(), asset.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.AuditActionCreated, logs[0].Action)
	assert.Equal(t, int64Ptr(1), logs[0].UserID)
}

func TestAssetServiceCreateRejectsMixedFields(t *testing.T) {
	svc := newAssetService(newMemStore())

	_, err := svc.Create(context.Background(), nil, service.AssetCreateInput{
		Type:         domain.AssetTypePhysical,
		Manufacturer: "Dell",
		ProductName:  "Office 365",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAssetServiceCreateRejectsDuplicateSerial(t *testing.T) {
	svc := newAssetService(newMemStore())

	_, err := svc.Create(context.Background(), nil, service.AssetCreateInput{
		Type:         domain.AssetTypePhysical,
		SerialNumber: strPtr("SN123456"),
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), nil, service.AssetCreateInput{
		Type:         domain.AssetTypePhysical,
		SerialNumber: strPtr("SN123456"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAssetServiceBlankSerialsDoNotCollide(t *testing.T) {
	svc := newAssetService(newMemStore())

	_, err := svc.Create(context.Background(), nil, service.AssetCreateInput{
		Type:         domain.AssetTypePhysical,
		SerialNumber: strPtr("  "),
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), nil, service.AssetCreateInput{
		Type:         domain.AssetTypePhysical,
		SerialNumber: strPtr(""),
	})
	require.NoError(t, err)
}

func TestAssetServiceRepairRoundTrip(t *testing.T) {
	store := newMemStore()
	svc := newAssetService(store)
	actor := int64Ptr(2)

	asset, err := svc.Create(context.Background(), actor, service.AssetCreateInput{
		Type:         domain.AssetTypePhysical,
		Manufacturer: "Dell",
		Model:        "Latitude 5420",
		SerialNumber: strPtr("SN123456"),
		AssetTag:     "ASSET001",
	})
	require.NoError(t, err)

	asset, err = svc.Update(context.Background(), actor, asset.ID, service.AssetUpdateInput{
		Status:      strPtr("out_repair"),
		RepairNotes: strPtr("Screen cracked"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AssetStatusOutRepair, asset.Status)
	assert.Equal(t, "Screen cracked", asset.RepairNotes)

	asset, err = svc.Update(context.Background(), actor, asset.ID, service.AssetUpdateInput{
		Status:      strPtr("In Service"),
		RepairNotes: strPtr("Screen cracked | Repair completed"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AssetStatusInService, asset.Status)
	assert.Equal(t, "Screen cracked | Repair completed", asset.RepairNotes)

	logs, err := svc.ListAuditLogs(context.Background(), asset.ID)
	require.NoError(t, err)
	// created + two status changes + two note updates, newest first.
	require.Len(t, logs, 5)
	assert.Equal(t, "out_repair -> in_service", logs[1].Details)
	assert.Equal(t, "in_service -> out_repair", logs[3].Details)
	assert.Equal(t, domain.AuditActionCreated, logs[4].Action)
}

func TestAssetServiceDecommissionedIsTerminal(t *testing.T) {
	svc := newAssetService(newMemStore())

	asset, err := svc.Create(context.Background(), nil, service.AssetCreateInput{
		Type: domain.AssetTypeDigital, ProductName: "Office 365",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), nil, asset.ID, service.AssetUpdateInput{
		Status: strPtr("decommissioned"),
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), nil, asset.ID, service.AssetUpdateInput{
		Status: strPtr("in_service"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "decommissioned")
}

func TestAssetServiceUpdateRejectsUnknownStatus(t *testing.T) {
	svc := newAssetService(newMemStore())

	asset, err := svc.Create(context.Background(), nil, service.AssetCreateInput{
		Type: domain.AssetTypeDigital, ProductName: "Office 365",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), nil, asset.ID, service.AssetUpdateInput{
		Status: strPtr("retired"),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAssetServiceAssignAndUnassign(t *testing.T) {
	store := newMemStore()
	svc := newAssetService(store)

	asset, err := svc.Create(context.Background(), int64Ptr(1), service.AssetCreateInput{
		Type: domain.AssetTypePhysical, Manufacturer: "Dell",
	})
	require.NoError(t, err)

	asset, err = svc.Update(context.Background(), int64Ptr(1), asset.ID, service.AssetUpdateInput{
		AssigneeID: int64Ptr(4),
	})
	require.NoError(t, err)
	require.NotNil(t, asset.AssignedTo)
	assert.Equal(t, int64(4), *asset.AssignedTo)

	asset, err = svc.Update(context.Background(), int64Ptr(1), asset.ID, service.AssetUpdateInput{
		Unassign: true,
	})
	require.NoError(t, err)
	assert.Nil(t, asset.AssignedTo)

	logs, err := svc.ListAuditLogs(context.Background(), asset.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "unassigned", logs[0].Details)
	assert.Equal(t, "assigned to user 4", logs[1].Details)
}

func TestAssetServiceUpdateNoChangesWritesNoAudit(t *testing.T) {
	store := newMemStore()
	svc := newAssetService(store)

	asset, err := svc.Create(context.Background(), nil, service.AssetCreateInput{
		Type: domain.AssetTypePhysical, Manufacturer: "Dell",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), nil, asset.ID, service.AssetUpdateInput{
		Status: strPtr("in_service"),
	})
	require.NoError(t, err)

	logs, err := svc.ListAuditLogs(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestAssetServiceListFiltersByStatus(t *testing.T) {
	svc := newAssetService(newMemStore())

	first, err := svc.Create(context.Background(), nil, service.AssetCreateInput{
		Type: domain.AssetTypePhysical, Manufacturer: "Dell",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), nil, service.AssetCreateInput{
		Type: domain.AssetTypeDigital, ProductName: "Office 365",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), nil, first.ID, service.AssetUpdateInput{
		Status: strPtr("out_repair"),
	})
	require.NoError(t, err)

	status := domain.AssetStatusOutRepair
	assets, err := svc.List(context.Background(), service.AssetFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, first.ID, assets[0].ID)

	all, err := svc.List(context.Background(), service.AssetFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAssetServiceDeleteCascades(t *testing.T) {
	store := newMemStore()
	svc := newAssetService(store)
	tickets := service.NewTicketService(service.TicketDependencies{
		TicketRepo: &memTicketRepo{store: store},
		AssetRepo:  &memAssetRepo{store: store},
		AuditRepo:  &memAuditRepo{store: store},
	})

	asset, err := svc.Create(context.Background(), nil, service.AssetCreateInput{
		Type: domain.AssetTypePhysical, Manufacturer: "Dell",
	})
	require.NoError(t, err)
	_, err = tickets.Create(context.Background(), nil, asset.ID, "Broken hinge", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), nil, asset.ID))

	_, err = svc.Get(context.Background(), asset.ID)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, store.tickets)
	assert.Empty(t, store.logs)

	err = svc.Delete(context.Background(), nil, asset.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAssetServiceGetUnknownAsset(t *testing.T) {
	svc := newAssetService(newMemStore())

	_, err := svc.Get(context.Background(), 99)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.ListAuditLogs(context.Background(), 99)
	assert.True(t, apperrors.IsNotFound(err))
}
