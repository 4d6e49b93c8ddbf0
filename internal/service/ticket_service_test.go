package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/asset-inventory/internal/domain"
	"github.com/spec-kit/asset-inventory/internal/service"
	apperrors "github.com/spec-kit/asset-inventory/pkg/util"
)

func newTicketFixture(t *testing.T) (*service.TicketService, *service.AssetService, *domain.Asset) {
	t.Helper()
	store := newMemStore()
	assets := newAssetService(store)
	tickets := service.NewTicketService(service.TicketDependencies{
		TicketRepo: &memTicketRepo{store: store},
		AssetRepo:  &memAssetRepo{store: store},
		AuditRepo:  &memAuditRepo{store: store},
	})

	asset, err := assets.Create(context.Background(), nil, service.AssetCreateInput{
		Type:         domain.AssetTypePhysical,
		Manufacturer: "Dell",
		Model:        "Latitude 5420",
	})
	require.NoError(t, err)
	return tickets, assets, asset
}

func TestTicketServiceCreateRequiresTitle(t *testing.T) {
	tickets, _, asset := newTicketFixture(t)

	_, err := tickets.Create(context.Background(), nil, asset.ID, "   ", "details")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestTicketServiceCreateUnknownAsset(t *testing.T) {
	tickets, _, _ := newTicketFixture(t)

	_, err := tickets.Create(context.Background(), nil, 99, "Broken hinge", "")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTicketServiceCreateAuditsAsset(t *testing.T) {
	tickets, assets, asset := newTicketFixture(t)
	creator := int64(2)

	ticket, err := tickets.Create(context.Background(), &creator, asset.ID, "Broken hinge", "Lid does not close")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, &creator, ticket.CreatedBy)
	assert.Nil(t, ticket.ResolvedAt)

	logs, err := assets.ListAuditLogs(context.Background(), asset.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.AuditActionTicketCreated, logs[0].Action)
	assert.Contains(t, logs[0].Details, "Broken hinge")
}

func TestTicketServiceResolveStampsResolvedAt(t *testing.T) {
	tickets, assets, asset := newTicketFixture(t)

	ticket, err := tickets.Create(context.Background(), nil, asset.ID, "Broken hinge", "")
	require.NoError(t, err)
	require.Nil(t, ticket.ResolvedAt)

	ticket, err = tickets.UpdateStatus(context.Background(), nil, ticket.ID, domain.TicketStatusResolved)
	require.NoError(t, err)
	require.NotNil(t, ticket.ResolvedAt)
	resolvedAt := *ticket.ResolvedAt

	// Reopening then resolving again keeps the original stamp.
	ticket, err = tickets.UpdateStatus(context.Background(), nil, ticket.ID, domain.TicketStatusOpen)
	require.NoError(t, err)
	ticket, err = tickets.UpdateStatus(context.Background(), nil, ticket.ID, domain.TicketStatusResolved)
	require.NoError(t, err)
	require.NotNil(t, ticket.ResolvedAt)
	assert.Equal(t, resolvedAt, *ticket.ResolvedAt)

	logs, err := assets.ListAuditLogs(context.Background(), asset.ID)
	require.NoError(t, err)
	require.Len(t, logs, 5)
	assert.Equal(t, domain.AuditActionTicketStatusChanged, logs[0].Action)
	assert.Contains(t, logs[0].Details, "open -> resolved")
}

func TestTicketServiceUpdateStatusNoOpWhenUnchanged(t *testing.T) {
	tickets, assets, asset := newTicketFixture(t)

	ticket, err := tickets.Create(context.Background(), nil, asset.ID, "Broken hinge", "")
	require.NoError(t, err)

	_, err = tickets.UpdateStatus(context.Background(), nil, ticket.ID, domain.TicketStatusOpen)
	require.NoError(t, err)

	logs, err := assets.ListAuditLogs(context.Background(), asset.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestTicketServiceUpdateStatusInvalid(t *testing.T) {
	tickets, _, asset := newTicketFixture(t)

	ticket, err := tickets.Create(context.Background(), nil, asset.ID, "Broken hinge", "")
	require.NoError(t, err)

	_, err = tickets.UpdateStatus(context.Background(), nil, ticket.ID, domain.TicketStatus("cancelled"))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestTicketServiceUpdateStatusUnknownTicket(t *testing.T) {
	tickets, _, _ := newTicketFixture(t)

	_, err := tickets.UpdateStatus(context.Background(), nil, 99, domain.TicketStatusClosed)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTicketServiceListByAssetNewestFirst(t *testing.T) {
	tickets, _, asset := newTicketFixture(t)

	_, err := tickets.Create(context.Background(), nil, asset.ID, "First", "")
	require.NoError(t, err)
	_, err = tickets.Create(context.Background(), nil, asset.ID, "Second", "")
	require.NoError(t, err)

	listed, err := tickets.ListByAsset(context.Background(), asset.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Second", listed[0].Title)
	assert.Equal(t, "First", listed[1].Title)

	_, err = tickets.ListByAsset(context.Background(), 99)
	assert.True(t, apperrors.IsNotFound(err))
}
