package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/dispatch-service/internal/config"
	"github.com/spec-kit/dispatch-service/internal/domain"
	"github.com/spec-kit/dispatch-service/internal/mailer"
	"github.com/spec-kit/dispatch-service/internal/service"
)

type stubStore struct {
	pending []*domain.Notification
}

func (s *stubStore) AddNotification(_ context.Context, n *domain.Notification) error {
	s.pending = append(s.pending, n)
	return nil
}

func (s *stubStore) UpdateNotification(_ context.Context, n *domain.Notification) error {
	for _, stored := range s.pending {
		if stored.ID == n.ID {
			stored.Processed = n.Processed
		}
	}
	return nil
}

func (s *stubStore) GetPending(_ context.Context) ([]*domain.Notification, error) {
	var out []*domain.Notification
	for _, n := range s.pending {
		if !n.Processed {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubStore) GetUserPreferences(_ context.Context, _ string) (*domain.UserPreference, error) {
	return nil, nil
}

func (s *stubStore) UpdateUserPreferences(_ context.Context, _ *domain.UserPreference) error {
	return nil
}

type noopMailer struct{}

func (noopMailer) Send(_ context.Context, _ mailer.Message) (string, error) {
	return "noop", nil
}

func newWorker(store *stubStore) *DigestWorker {
	notifications := service.NewNotificationService(config.NotificationConfig{
		Enabled:    true,
		DigestTime: "17:00",
	}, service.NotificationDependencies{
		Store:  store,
		Mailer: noopMailer{},
		Logger: zap.NewNop(),
	})
	return NewDigestWorker(notifications, nil, zap.NewNop())
}

func TestStartRejectsInvalidTime(t *testing.T) {
	w := newWorker(&stubStore{})
	err := w.Start("25:99")
	assert.Error(t, err)
}

func TestStartAndStop(t *testing.T) {
	w := newWorker(&stubStore{})
	require.NoError(t, w.Start("17:00"))
	w.Stop()
}

func TestRunNowMarksPendingProcessed(t *testing.T) {
	store := &stubStore{}
	store.pending = append(store.pending, &domain.Notification{
		ID:        "n-1",
		Type:      domain.NotificationAssigned,
		Recipient: "anna@example.org",
		Shift:     domain.ShiftSnapshot{Date: "2025-01-15", Start: "06:00", End: "14:00"},
	})

	w := newWorker(store)
	require.NoError(t, w.RunNow(context.Background()))
	assert.True(t, store.pending[0].Processed)
}

func TestAcquireLockWithoutRedis(t *testing.T) {
	w := newWorker(&stubStore{})
	assert.True(t, w.acquireLock(context.Background()), "nil redis must not block the digest")
}
