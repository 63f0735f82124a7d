package adaptive

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sentinelsec/sentinel-backend/models"
)

// mockNotificationSender lives in this package: the shared mocks package
// cannot depend on adaptive without creating an import cycle with these
// tests.
type mockNotificationSender struct {
	mock.Mock
}

func (s *mockNotificationSender) Send(ctx context.Context, notification ScalingNotification) error {
	args := s.Called(ctx, notification)
	return args.Error(0)
}

func testNotification() ScalingNotification {
	return ScalingNotification{
		EventId:   uuid.New(),
		UserId:    "user_1",
		TenantId:  uuid.New(),
		Direction: models.ScalingDirectionUp,
		EventTime: time.Now(),
	}
}

func TestAsyncNotifier_DeliversNotification(t *testing.T) {
	sender := new(mockNotificationSender)
	notification := testNotification()
	sender.On("Send", mock.Anything, notification).Return(nil).Once()

	notifier := NewAsyncNotifier(sender, 8)
	notifier.Start(context.Background(), 1)

	assert.True(t, notifier.Notify(context.Background(), notification))
	notifier.Stop()

	sender.AssertExpectations(t)
}

func TestAsyncNotifier_RetriesBeforeSuccess(t *testing.T) {
	sender := new(mockNotificationSender)
	notification := testNotification()
	sender.On("Send", mock.Anything, notification).Return(errors.New("transient")).Twice()
	sender.On("Send", mock.Anything, notification).Return(nil).Once()

	notifier := NewAsyncNotifier(sender, 8)
	notifier.baseDelay = time.Millisecond
	notifier.Start(context.Background(), 1)

	notifier.Notify(context.Background(), notification)
	notifier.Stop()

	sender.AssertExpectations(t)
}

func TestAsyncNotifier_DeadLettersAfterExhaustedRetries(t *testing.T) {
	sender := new(mockNotificationSender)
	notification := testNotification()
	sender.On("Send", mock.Anything, notification).Return(errors.New("channel down")).Times(3)

	notifier := NewAsyncNotifier(sender, 8)
	notifier.baseDelay = time.Millisecond
	notifier.Start(context.Background(), 1)

	notifier.Notify(context.Background(), notification)
	// Stop drains the queue: the delivery failure must not wedge the worker.
	notifier.Stop()

	sender.AssertExpectations(t)
}

func TestAsyncNotifier_DropsWhenQueueFull(t *testing.T) {
	// No worker started: the queue fills up and the overflow is dropped
	// without blocking the caller.
	notifier := NewAsyncNotifier(LogNotificationSender{}, 1)

	assert.True(t, notifier.Notify(context.Background(), testNotification()))
	assert.False(t, notifier.Notify(context.Background(), testNotification()))
}

func TestAsyncNotifier_StopDrainsQueue(t *testing.T) {
	sender := new(mockNotificationSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(nil).Times(5)

	notifier := NewAsyncNotifier(sender, 8)
	notifier.Start(context.Background(), 2)

	for range 5 {
		notifier.Notify(context.Background(), testNotification())
	}
	notifier.Stop()

	sender.AssertExpectations(t)
}
