// Package notifier delivers user notifications as a best-effort side effect
// of lifecycle and admin operations. Delivery failures are logged and never
// surfaced to the caller; core transactions have already committed by the
// time a notification is emitted.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/ecotrace/ecotrace-core/internal/domain"
	"github.com/ecotrace/ecotrace-core/internal/logger"
	"github.com/ecotrace/ecotrace-core/internal/store"

	"github.com/google/uuid"
)

// Notification is the payload published to NATS JetStream
type Notification struct {
	UserID    uuid.UUID               `json:"user_id"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Type      domain.NotificationType `json:"type"`
	ActionURL *string                 `json:"action_url,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

// Notifier sends user notifications
type Notifier interface {
	// Notify persists the notification and publishes it downstream.
	// It never returns an error; failures are logged.
	Notify(ctx context.Context, n Notification)

	// Close releases the underlying connection
	Close()
}

// Config holds the configuration for the NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type notifier struct {
	store      store.Store
	nc         *nats.Conn
	js         nats.JetStreamContext
	streamName string
}

// New creates a notifier backed by the store and a NATS JetStream connection.
// An empty URL disables publishing; notifications are still persisted.
func New(cfg Config, st store.Store) (Notifier, error) {
	n := &notifier{store: st, streamName: cfg.StreamName}
	if cfg.URL == "" {
		return n, nil
	}

	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	n.nc = nc
	n.js = js
	return n, nil
}

// Notify persists the notification and publishes it to
// notifications.{type}. Both halves are best-effort and independent.
func (n *notifier) Notify(ctx context.Context, notification Notification) {
	if notification.Type == "" {
		notification.Type = domain.NotificationTypeInfo
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	_, err := n.store.CreateNotification(ctx, store.CreateNotificationInput{
		UserID:    notification.UserID,
		Title:     notification.Title,
		Message:   notification.Message,
		Type:      notification.Type,
		ActionURL: notification.ActionURL,
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to persist notification: %w", err),
			zap.String("user_id", notification.UserID.String()),
			zap.String("title", notification.Title),
		)
	}

	if n.js == nil {
		return
	}

	data, err := json.Marshal(notification)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to marshal notification: %w", err))
		return
	}

	subject := fmt.Sprintf("notifications.%s", notification.Type)
	if _, err := n.js.Publish(subject, data, nats.Context(ctx)); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to publish notification: %w", err),
			zap.String("subject", subject),
		)
	}
}

// Close closes the NATS connection
func (n *notifier) Close() {
	if n.nc != nil {
		n.nc.Close()
	}
}
