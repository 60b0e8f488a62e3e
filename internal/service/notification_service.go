package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/dispatch-service/internal/config"
	"github.com/spec-kit/dispatch-service/internal/domain"
	"github.com/spec-kit/dispatch-service/internal/events"
	"github.com/spec-kit/dispatch-service/internal/mailer"
	"github.com/spec-kit/dispatch-service/internal/observability"
	"github.com/spec-kit/dispatch-service/internal/repository"
)

// NotificationService queues shift emails and runs the daily digest.
// Removal notices go out synchronously; assignment notices wait for
// the digest. Persistence lives entirely in the store collaborator.
type NotificationService struct {
	store      repository.NotificationStore
	mailer     mailer.Mailer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	cfg        config.NotificationConfig
}

// NotificationDependencies bundles collaborator requirements.
type NotificationDependencies struct {
	Store      repository.NotificationStore
	Mailer     mailer.Mailer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewNotificationService creates the service.
func NewNotificationService(cfg config.NotificationConfig, deps NotificationDependencies) *NotificationService {
	return &NotificationService{
		store:      deps.Store,
		mailer:     deps.Mailer,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to shift assignment events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventShiftAssigned, n.handleShiftAssigned)
	n.dispatcher.Subscribe(events.EventShiftRemoved, n.handleShiftRemoved)
}

func (n *NotificationService) handleShiftAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ShiftAssignmentPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s event", event.Type)
	}
	return n.Queue(ctx, ShiftEvent{
		Type:      domain.NotificationAssigned,
		Recipient: payload.Recipient,
		ShiftID:   event.ShiftID,
		Shift:     payload.Shift,
	})
}

func (n *NotificationService) handleShiftRemoved(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ShiftAssignmentPayload)
	if !ok {
		return fmt.Errorf("unexpected payload for %s event", event.Type)
	}
	return n.Queue(ctx, ShiftEvent{
		Type:      domain.NotificationRemoved,
		Recipient: payload.Recipient,
		ShiftID:   event.ShiftID,
		Shift:     payload.Shift,
	})
}

// ShiftEvent is the queue input derived from a domain event.
type ShiftEvent struct {
	Type      domain.NotificationType
	Recipient string
	ShiftID   string
	Shift     domain.ShiftSnapshot
}

// Queue persists a notification for the recipient. Opted-out events
// are dropped without a record. Removal notices are rendered, sent and
// marked processed before Queue returns; assignments stay pending
// until the next digest run.
func (n *NotificationService) Queue(ctx context.Context, ev ShiftEvent) error {
	if !n.cfg.Enabled {
		return nil
	}

	enabled, err := n.recipientEnabled(ctx, ev.Recipient)
	if err != nil {
		return err
	}
	if !enabled {
		n.logger.Debug("recipient opted out; dropping notification",
			zap.String("recipient", ev.Recipient),
			zap.String("shift_id", ev.ShiftID))
		return nil
	}

	notification := &domain.Notification{
		ID:        uuid.NewString(),
		Type:      ev.Type,
		Recipient: ev.Recipient,
		ShiftID:   ev.ShiftID,
		Shift:     ev.Shift,
	}
	if err := n.store.AddNotification(ctx, notification); err != nil {
		return err
	}

	if ev.Type == domain.NotificationRemoved {
		return n.sendRemoval(ctx, notification)
	}
	return nil
}

func (n *NotificationService) sendRemoval(ctx context.Context, notification *domain.Notification) error {
	content := RemovalEmail(notification)
	if err := n.send(ctx, notification.Recipient, content); err != nil {
		return err
	}
	n.metrics.RecordEmail("removal")

	notification.Processed = true
	return n.store.UpdateNotification(ctx, notification)
}

// RunDigest delivers one summary email per recipient with pending
// notifications. A failed send leaves that recipient's whole batch
// unprocessed for the next cycle and never blocks other recipients.
func (n *NotificationService) RunDigest(ctx context.Context) error {
	if !n.cfg.Enabled {
		return nil
	}

	pending, err := n.store.GetPending(ctx)
	if err != nil {
		return err
	}

	// group by recipient, first-appearance order
	order := make([]string, 0)
	batches := make(map[string][]*domain.Notification)
	for _, notification := range pending {
		if _, seen := batches[notification.Recipient]; !seen {
			order = append(order, notification.Recipient)
		}
		batches[notification.Recipient] = append(batches[notification.Recipient], notification)
	}

	for _, recipient := range order {
		batch := batches[recipient]

		enabled, err := n.recipientEnabled(ctx, recipient)
		if err != nil {
			n.logger.Error("digest: preference lookup failed",
				zap.String("recipient", recipient), zap.Error(err))
			continue
		}
		if !enabled {
			n.markProcessed(ctx, batch)
			continue
		}

		if !hasAssigned(batch) {
			// only stale rows left over, nothing worth an email
			n.markProcessed(ctx, batch)
			continue
		}

		content := DigestEmail(recipient, batch, n.cfg.DigestTime)
		if err := n.send(ctx, recipient, content); err != nil {
			n.logger.Error("digest: send failed, batch left for next cycle",
				zap.String("recipient", recipient),
				zap.Int("batch_size", len(batch)),
				zap.Error(err))
			continue
		}
		n.metrics.RecordEmail("digest")
		n.markProcessed(ctx, batch)
	}

	n.metrics.RecordDigestRun()
	n.logger.Info("digest run complete",
		zap.Int("pending", len(pending)),
		zap.Int("recipients", len(order)))
	return nil
}

func (n *NotificationService) send(ctx context.Context, recipient string, content EmailContent) error {
	sendCtx, cancel := context.WithTimeout(ctx, n.cfg.SendTimeout())
	defer cancel()

	messageID, err := n.mailer.Send(sendCtx, mailer.Message{
		To:      recipient,
		Subject: content.Subject,
		HTML:    content.HTML,
		Text:    content.Text,
	})
	if err != nil {
		return err
	}
	n.logger.Info("email dispatched",
		zap.String("to", recipient),
		zap.String("subject", content.Subject),
		zap.String("message_id", messageID))
	return nil
}

// recipientEnabled reads the opt-out flag; a missing row means enabled.
func (n *NotificationService) recipientEnabled(ctx context.Context, recipient string) (bool, error) {
	pref, err := n.store.GetUserPreferences(ctx, recipient)
	if err != nil {
		return false, err
	}
	if pref == nil {
		return true, nil
	}
	return pref.EmailNotifications, nil
}

func (n *NotificationService) markProcessed(ctx context.Context, batch []*domain.Notification) {
	for _, notification := range batch {
		notification.Processed = true
		if err := n.store.UpdateNotification(ctx, notification); err != nil {
			n.logger.Error("failed to mark notification processed",
				zap.String("id", notification.ID), zap.Error(err))
		}
	}
}

func hasAssigned(batch []*domain.Notification) bool {
	for _, notification := range batch {
		if notification.Type == domain.NotificationAssigned {
			return true
		}
	}
	return false
}

// GetPreference returns the stored preference, defaulting to enabled.
func (n *NotificationService) GetPreference(ctx context.Context, recipient string) (*domain.UserPreference, error) {
	pref, err := n.store.GetUserPreferences(ctx, recipient)
	if err != nil {
		return nil, err
	}
	if pref == nil {
		return &domain.UserPreference{Recipient: recipient, EmailNotifications: true}, nil
	}
	return pref, nil
}

// UpdatePreference stores the recipient's opt-out flag.
func (n *NotificationService) UpdatePreference(ctx context.Context, recipient string, enabled bool) (*domain.UserPreference, error) {
	pref := &domain.UserPreference{Recipient: recipient, EmailNotifications: enabled}
	if err := n.store.UpdateUserPreferences(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}
