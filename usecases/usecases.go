package usecases

import (
	"github.com/sentinelsec/sentinel-backend/repositories"
	"github.com/sentinelsec/sentinel-backend/repositories/clock"
	"github.com/sentinelsec/sentinel-backend/usecases/adaptive"
	"github.com/sentinelsec/sentinel-backend/usecases/executor_factory"
	"github.com/sentinelsec/sentinel-backend/usecases/trustscore"
)

type Repositories struct {
	ExecutorGetter       repositories.ExecutorGetter
	SentinelDbRepository *repositories.SentinelDbRepository
}

type Usecases struct {
	Repositories Repositories

	clock           clock.Clock
	notifier        *adaptive.AsyncNotifier
	adaptiveScaling *adaptive.AdaptiveScalingUsecase
}

type Option func(*options)

type options struct {
	clock                 clock.Clock
	notificationSender    adaptive.NotificationSender
	notificationQueueSize int
}

func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

func WithNotificationSender(sender adaptive.NotificationSender) Option {
	return func(o *options) {
		o.notificationSender = sender
	}
}

func WithNotificationQueueSize(size int) Option {
	return func(o *options) {
		o.notificationQueueSize = size
	}
}

func NewUsecases(repos Repositories, opts ...Option) *Usecases {
	o := &options{
		clock:              clock.New(),
		notificationSender: adaptive.LogNotificationSender{},
	}
	for _, opt := range opts {
		opt(o)
	}

	usecases := &Usecases{
		Repositories: repos,
		clock:        o.clock,
		notifier:     adaptive.NewAsyncNotifier(o.notificationSender, o.notificationQueueSize),
	}

	// The adaptive scaling usecase is stateful (it owns the active rule
	// snapshot), so it is built once and shared, unlike the per-request
	// usecases below.
	usecases.adaptiveScaling = adaptive.NewAdaptiveScalingUsecase(
		usecases.NewExecutorFactory(),
		usecases.NewTransactionFactory(),
		repos.SentinelDbRepository,
		repos.SentinelDbRepository,
		repos.SentinelDbRepository,
		usecases.notifier,
		o.clock,
	)

	return usecases
}

func (usecases *Usecases) NewExecutorFactory() executor_factory.ExecutorFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewTransactionFactory() executor_factory.TransactionFactory {
	return executor_factory.NewDbExecutorFactory(usecases.Repositories.ExecutorGetter)
}

func (usecases *Usecases) NewLivenessUsecase() LivenessUsecase {
	return LivenessUsecase{
		executorFactory:    usecases.NewExecutorFactory(),
		livenessRepository: usecases.Repositories.SentinelDbRepository,
	}
}

func (usecases *Usecases) NewTrustScoreEngine() trustscore.TrustScoreEngine {
	return trustscore.NewTrustScoreEngine(usecases.clock)
}

func (usecases *Usecases) AdaptiveScalingUsecase() *adaptive.AdaptiveScalingUsecase {
	return usecases.adaptiveScaling
}

func (usecases *Usecases) Notifier() *adaptive.AsyncNotifier {
	return usecases.notifier
}
