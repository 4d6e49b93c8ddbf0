package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-inventory/internal/events"
)

// NotificationService logs domain events as they happen. A real deployment
// would forward them to email or a webhook; the stubs only log.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAssetCreated, n.handle("AssetCreated"))
	n.dispatcher.Subscribe(events.EventAssetStatusChanged, n.handle("AssetStatusChanged"))
	n.dispatcher.Subscribe(events.EventAssetAssigned, n.handle("AssetAssigned"))
	n.dispatcher.Subscribe(events.EventAssetUpdated, n.handle("AssetUpdated"))
	n.dispatcher.Subscribe(events.EventAssetDeleted, n.handle("AssetDeleted"))
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handle("TicketCreated"))
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handle("TicketStatusChanged"))
}

func (n *NotificationService) handle(name string) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		n.logger.Info(name,
			zap.String("event_id", event.ID),
			zap.Int64("asset_id", event.AssetID),
			zap.Any("payload", event.Payload),
		)
		return nil
	}
}
