package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/shopkit/shop-service/internal/config"
	"github.com/shopkit/shop-service/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventProductCreated, n.handleProductChanged)
	n.dispatcher.Subscribe(events.EventProductDeleted, n.handleProductChanged)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("user_id", event.AggregateID))
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	n.sendWelcomeEmailStub(ctx, event, payload.Email)
	return nil
}

func (n *NotificationService) handleProductChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ProductChanged",
		zap.String("product_id", event.AggregateID),
		zap.String("event_type", string(event.Type)),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWelcomeEmailStub(_ context.Context, event events.Event, to string) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendWelcomeEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", to),
		zap.String("event_id", event.ID))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("aggregate_id", event.AggregateID),
		zap.String("event_type", string(event.Type)))
}
