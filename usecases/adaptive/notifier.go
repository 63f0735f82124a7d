package adaptive

import (
	"context"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/sentinelsec/sentinel-backend/infra"
	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/utils"
)

// ScalingNotification tells a user-facing channel that their security
// posture changed. Delivery is best effort and strictly off the evaluation
// path.
type ScalingNotification struct {
	EventId     uuid.UUID
	UserId      string
	TenantId    uuid.UUID
	Direction   models.ScalingDirection
	Adjustments []models.SecurityAdjustment
	EventTime   time.Time
}

type NotificationSender interface {
	Send(ctx context.Context, notification ScalingNotification) error
}

// LogNotificationSender is the default sink: it writes the notification to
// the structured log. Real channels (email, push) plug in behind
// NotificationSender.
type LogNotificationSender struct{}

func (s LogNotificationSender) Send(ctx context.Context, notification ScalingNotification) error {
	utils.LoggerFromContext(ctx).InfoContext(ctx, "security posture changed",
		"event_id", notification.EventId.String(),
		"user_id", notification.UserId,
		"tenant_id", notification.TenantId.String(),
		"direction", notification.Direction.String(),
		"adjustments", len(notification.Adjustments),
	)
	return nil
}

// AsyncNotifier decouples notification delivery from trust score
// evaluation through a bounded queue. When the queue is full the
// notification is dropped and counted, never blocking the caller. Each
// delivery is retried a few times before being dead-lettered to the log.
type AsyncNotifier struct {
	sender    NotificationSender
	queue     chan ScalingNotification
	wg        sync.WaitGroup
	stopOnce  sync.Once
	attempts  uint
	baseDelay time.Duration
}

func NewAsyncNotifier(sender NotificationSender, queueSize int) *AsyncNotifier {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &AsyncNotifier{
		sender:    sender,
		queue:     make(chan ScalingNotification, queueSize),
		attempts:  3,
		baseDelay: 200 * time.Millisecond,
	}
}

// Start launches the delivery workers. The context carries the logger the
// workers report with; it must outlive the notifier.
func (n *AsyncNotifier) Start(ctx context.Context, workers int) {
	if workers <= 0 {
		workers = 1
	}
	for range workers {
		n.wg.Add(1)
		go func() {
			defer n.wg.Done()
			n.work(ctx)
		}()
	}
}

// Notify enqueues a notification without blocking. Returns false when the
// queue is full and the notification was dropped.
func (n *AsyncNotifier) Notify(ctx context.Context, notification ScalingNotification) bool {
	select {
	case n.queue <- notification:
		return true
	default:
		infra.NotificationsSent.WithLabelValues("dropped").Inc()
		utils.LoggerFromContext(ctx).WarnContext(ctx, "notification queue full, dropping notification",
			"event_id", notification.EventId.String(),
			"user_id", notification.UserId,
		)
		return false
	}
}

// Stop closes the queue and waits for the workers to drain it.
func (n *AsyncNotifier) Stop() {
	n.stopOnce.Do(func() {
		close(n.queue)
	})
	n.wg.Wait()
}

func (n *AsyncNotifier) work(ctx context.Context) {
	logger := utils.LoggerFromContext(ctx)
	for notification := range n.queue {
		err := retry.Do(
			func() error {
				return n.sender.Send(ctx, notification)
			},
			retry.Attempts(n.attempts),
			retry.Delay(n.baseDelay),
			retry.DelayType(retry.BackOffDelay),
			retry.LastErrorOnly(true),
		)
		if err != nil {
			infra.NotificationsSent.WithLabelValues("failed").Inc()
			logger.ErrorContext(ctx, "notification delivery failed, dead-lettering",
				"event_id", notification.EventId.String(),
				"user_id", notification.UserId,
				"error", err.Error(),
			)
			continue
		}
		infra.NotificationsSent.WithLabelValues("sent").Inc()
	}
}
