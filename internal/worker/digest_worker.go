package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/dispatch-service/internal/persistence"
	"github.com/spec-kit/dispatch-service/internal/service"
)

const digestLockKey = "dispatch:digest:lock"

// DigestWorker runs the notification digest once per day at the
// configured wall-clock time. A short-lived redis lock keeps
// replicated deployments from running the digest twice.
type DigestWorker struct {
	notifications *service.NotificationService
	redis         *persistence.Redis
	logger        *zap.Logger
	cron          *cron.Cron
}

// NewDigestWorker builds the worker.
func NewDigestWorker(notifications *service.NotificationService, redis *persistence.Redis, logger *zap.Logger) *DigestWorker {
	return &DigestWorker{
		notifications: notifications,
		redis:         redis,
		logger:        logger,
		cron:          cron.New(),
	}
}

// Start schedules the daily run. digestTime is HH:MM.
func (w *DigestWorker) Start(digestTime string) error {
	parsed, err := time.Parse("15:04", digestTime)
	if err != nil {
		return fmt.Errorf("invalid digest time %q: %w", digestTime, err)
	}

	spec := fmt.Sprintf("%d %d * * *", parsed.Minute(), parsed.Hour())
	if _, err := w.cron.AddFunc(spec, w.run); err != nil {
		return fmt.Errorf("schedule digest: %w", err)
	}

	w.cron.Start()
	w.logger.Info("digest worker started", zap.String("schedule", digestTime))
	return nil
}

// Stop cancels the schedule and waits for a running digest to finish.
func (w *DigestWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info("digest worker stopped")
}

// RunNow triggers a digest cycle outside the schedule (admin endpoint).
func (w *DigestWorker) RunNow(ctx context.Context) error {
	return w.notifications.RunDigest(ctx)
}

func (w *DigestWorker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if !w.acquireLock(ctx) {
		w.logger.Info("digest already running elsewhere; skipping")
		return
	}

	if err := w.notifications.RunDigest(ctx); err != nil {
		w.logger.Error("digest run failed", zap.Error(err))
	}
}

// acquireLock returns true when this instance should run the digest.
// Redis being unreachable is not fatal: single-instance deployments
// need no lock, so the run proceeds with a warning.
func (w *DigestWorker) acquireLock(ctx context.Context) bool {
	if w.redis == nil {
		return true
	}
	ok, err := w.redis.AcquireLock(ctx, digestLockKey, 5*time.Minute)
	if err != nil {
		w.logger.Warn("digest lock unavailable; proceeding unlocked", zap.Error(err))
		return true
	}
	return ok
}
