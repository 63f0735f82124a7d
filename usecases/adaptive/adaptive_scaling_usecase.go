package adaptive

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/sentinelsec/sentinel-backend/infra"
	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/repositories"
	"github.com/sentinelsec/sentinel-backend/repositories/clock"
	"github.com/sentinelsec/sentinel-backend/usecases/executor_factory"
	"github.com/sentinelsec/sentinel-backend/utils"
)

type securityPostureRepository interface {
	GetSecurityPosture(ctx context.Context, exec repositories.Executor, userId string,
		tenantId uuid.UUID, mechanism models.SecurityMechanism,
		scalingContext models.ScalingContext) (*models.SecurityPosture, error)
	ListSecurityPostures(ctx context.Context, exec repositories.Executor, userId string,
		tenantId uuid.UUID) ([]models.SecurityPosture, error)
	UpsertSecurityPosture(ctx context.Context, exec repositories.Executor,
		req models.UpsertPostureRequest) error
	RevertExpiredSecurityPostures(ctx context.Context, exec repositories.Executor,
		now time.Time) (int64, error)
}

type scalingEventsRepository interface {
	InsertScalingEvent(ctx context.Context, exec repositories.Executor,
		req models.CreateScalingEventRequest) (models.ScalingEvent, error)
	LatestScalingEventForTrigger(ctx context.Context, exec repositories.Executor,
		userId string, tenantId uuid.UUID, triggerId uuid.UUID) (*models.ScalingEvent, error)
	ListScalingEvents(ctx context.Context, exec repositories.Executor,
		filters models.ScalingEventFilters) ([]models.ScalingEvent, error)
}

// AdaptiveScalingUsecase evaluates incoming trust score results against the
// active rule snapshot and persists the resulting security adjustments.
// Evaluation is fail-closed: until Initialize has loaded a snapshot, every
// evaluation errors out instead of silently applying nothing.
type AdaptiveScalingUsecase struct {
	executorFactory    executor_factory.ExecutorFactory
	transactionFactory executor_factory.TransactionFactory
	rulesRepository    snapshotRepository
	postureRepository  securityPostureRepository
	eventsRepository   scalingEventsRepository
	notifier           *AsyncNotifier
	clock              clock.Clock

	snapshot atomic.Pointer[RuleSnapshot]
}

func NewAdaptiveScalingUsecase(
	executorFactory executor_factory.ExecutorFactory,
	transactionFactory executor_factory.TransactionFactory,
	rulesRepository snapshotRepository,
	postureRepository securityPostureRepository,
	eventsRepository scalingEventsRepository,
	notifier *AsyncNotifier,
	c clock.Clock,
) *AdaptiveScalingUsecase {
	return &AdaptiveScalingUsecase{
		executorFactory:    executorFactory,
		transactionFactory: transactionFactory,
		rulesRepository:    rulesRepository,
		postureRepository:  postureRepository,
		eventsRepository:   eventsRepository,
		notifier:           notifier,
		clock:              c,
	}
}

// Initialize loads the first rule snapshot. It must succeed before the
// engine accepts evaluations.
func (uc *AdaptiveScalingUsecase) Initialize(ctx context.Context) error {
	return uc.ReloadRules(ctx)
}

// ReloadRules atomically swaps in a freshly loaded snapshot. On error the
// previous snapshot, if any, stays active.
func (uc *AdaptiveScalingUsecase) ReloadRules(ctx context.Context) error {
	snapshot, err := loadRuleSnapshot(ctx, uc.executorFactory.NewExecutor(),
		uc.rulesRepository, uc.clock.Now())
	if err != nil {
		return errors.Wrap(err, "failed to load scaling rule snapshot")
	}
	uc.snapshot.Store(snapshot)
	return nil
}

func (uc *AdaptiveScalingUsecase) activeSnapshot() (*RuleSnapshot, error) {
	snapshot := uc.snapshot.Load()
	if snapshot == nil {
		return nil, errors.Wrap(models.ErrEngineDisabled, "no rule snapshot loaded")
	}
	return snapshot, nil
}

// EvaluateTrustScore runs the full decision pipeline for one trust score
// result: trigger evaluation, policy resolution, then one transaction that
// checks the cooldown and persists the postures and the audit event. It
// returns the persisted event, or nil when no action was taken.
func (uc *AdaptiveScalingUsecase) EvaluateTrustScore(
	ctx context.Context,
	result models.TrustScoreResult,
) (*models.ScalingEvent, error) {
	if result.UserId == "" {
		return nil, errors.Wrap(models.BadParameterError, "missing user id")
	}
	if result.TenantId == uuid.Nil {
		return nil, errors.Wrap(models.BadParameterError, "missing tenant id")
	}

	snapshot, err := uc.activeSnapshot()
	if err != nil {
		infra.TrustScoreEvaluations.WithLabelValues("error").Inc()
		return nil, err
	}
	if !snapshot.Config.Enabled {
		infra.TrustScoreEvaluations.WithLabelValues("disabled").Inc()
		return nil, nil
	}

	candidates := EvaluateTriggers(snapshot, result)
	if len(candidates) == 0 {
		infra.TrustScoreEvaluations.WithLabelValues("no_trigger").Inc()
		return nil, nil
	}

	exec := uc.executorFactory.NewExecutor()
	currentLevels, err := uc.currentSecurityLevels(ctx, exec, result.UserId,
		result.TenantId, result.Context)
	if err != nil {
		infra.TrustScoreEvaluations.WithLabelValues("error").Inc()
		return nil, err
	}

	decision := ResolvePolicy(snapshot, candidates, currentLevels, result.Category)
	if decision == nil {
		infra.TrustScoreEvaluations.WithLabelValues("no_op").Inc()
		return nil, nil
	}

	event, suppressed, err := uc.applyDecision(ctx, snapshot, result, decision)
	if err != nil {
		infra.TrustScoreEvaluations.WithLabelValues("error").Inc()
		return nil, err
	}
	if suppressed {
		infra.CooldownSuppressions.Inc()
		infra.TrustScoreEvaluations.WithLabelValues("cooldown").Inc()
		return nil, nil
	}
	infra.TrustScoreEvaluations.WithLabelValues("applied").Inc()

	uc.notifier.Notify(ctx, ScalingNotification{
		EventId:     event.Id,
		UserId:      event.UserId,
		TenantId:    event.TenantId,
		Direction:   event.Direction,
		Adjustments: event.Adjustments,
		EventTime:   event.EventTime,
	})

	return event, nil
}

// currentSecurityLevels reads the effective level of every known mechanism
// for the evaluation's context, defaulting mechanisms without a posture.
func (uc *AdaptiveScalingUsecase) currentSecurityLevels(
	ctx context.Context,
	exec repositories.Executor,
	userId string,
	tenantId uuid.UUID,
	scalingContext models.ScalingContext,
) (map[models.SecurityMechanism]models.SecurityLevel, error) {
	now := uc.clock.Now()

	postures, err := uc.postureRepository.ListSecurityPostures(ctx, exec, userId, tenantId)
	if err != nil {
		return nil, err
	}

	levels := make(map[models.SecurityMechanism]models.SecurityLevel,
		len(models.KnownSecurityMechanisms))
	for _, mechanism := range models.KnownSecurityMechanisms {
		levels[mechanism] = models.DefaultSecurityLevel
	}
	for _, posture := range postures {
		if posture.Context != scalingContext {
			continue
		}
		levels[posture.Mechanism] = posture.EffectiveLevel(now)
	}
	return levels, nil
}

func (uc *AdaptiveScalingUsecase) inCooldown(
	ctx context.Context,
	exec repositories.Executor,
	snapshot *RuleSnapshot,
	result models.TrustScoreResult,
	triggerId uuid.UUID,
) (bool, error) {
	lastEvent, err := uc.eventsRepository.LatestScalingEventForTrigger(ctx, exec,
		result.UserId, result.TenantId, triggerId)
	if err != nil {
		return false, err
	}
	if lastEvent == nil {
		return false, nil
	}
	return uc.clock.Now().Sub(lastEvent.EventTime) < snapshot.CooldownFor(triggerId), nil
}

// applyDecision persists the posture updates and the audit event in one
// transaction. The cooldown check reads the latest event inside the same
// transaction, so two concurrent evaluations of one (user, tenant, trigger)
// cannot both slip through the window. A stale posture write means a
// concurrent evaluation already recorded a newer level for that mechanism;
// it is logged and skipped, the event is still recorded.
func (uc *AdaptiveScalingUsecase) applyDecision(
	ctx context.Context,
	snapshot *RuleSnapshot,
	result models.TrustScoreResult,
	decision *ScalingDecision,
) (*models.ScalingEvent, bool, error) {
	now := uc.clock.Now()
	expiresAt := now.Add(snapshot.Config.AdjustmentTTL)
	logger := utils.LoggerFromContext(ctx)

	var suppressed bool
	event, err := executor_factory.TransactionReturnValue(ctx, uc.transactionFactory,
		func(tx repositories.Transaction) (models.ScalingEvent, error) {
			inCooldown, err := uc.inCooldown(ctx, tx, snapshot, result, decision.TriggerId)
			if err != nil {
				return models.ScalingEvent{}, err
			}
			if inCooldown {
				suppressed = true
				return models.ScalingEvent{}, nil
			}

			for _, adjustment := range decision.Adjustments {
				err := uc.postureRepository.UpsertSecurityPosture(ctx, tx, models.UpsertPostureRequest{
					UserId:        result.UserId,
					TenantId:      result.TenantId,
					Mechanism:     adjustment.Mechanism,
					Context:       result.Context,
					Level:         adjustment.NewLevel,
					BaselineLevel: models.DefaultSecurityLevel,
					EventTime:     now,
					ExpiresAt:     expiresAt,
				})
				if errors.Is(err, models.ErrStaleWrite) {
					logger.DebugContext(ctx, "skipping stale posture write",
						"user_id", result.UserId,
						"mechanism", adjustment.Mechanism.String(),
					)
					continue
				}
				if err != nil {
					return models.ScalingEvent{}, err
				}
			}

			return uc.eventsRepository.InsertScalingEvent(ctx, tx, models.CreateScalingEventRequest{
				UserId:      result.UserId,
				TenantId:    result.TenantId,
				Context:     result.Context,
				RegionCode:  result.RegionCode,
				TriggerId:   decision.TriggerId,
				PolicyId:    decision.PolicyId,
				TrustScore:  result.OverallScore,
				Direction:   decision.Direction,
				Adjustments: decision.Adjustments,
				EventTime:   now,
				ExpiresAt:   expiresAt,
			})
		})
	if err != nil {
		return nil, false, err
	}
	if suppressed {
		return nil, true, nil
	}
	return &event, false, nil
}

// GetCurrentSecurityLevel returns the effective level for one mechanism,
// falling back to the default when no posture exists. Expired adjustments
// read as their baseline even before the sweep job has reverted them.
func (uc *AdaptiveScalingUsecase) GetCurrentSecurityLevel(
	ctx context.Context,
	userId string,
	tenantId uuid.UUID,
	mechanism models.SecurityMechanism,
	scalingContext models.ScalingContext,
) (models.SecurityLevel, error) {
	if userId == "" {
		return models.UnknownSecurityLevel, errors.Wrap(models.BadParameterError, "missing user id")
	}
	if mechanism == models.UnknownSecurityMechanism {
		return models.UnknownSecurityLevel, errors.Wrap(models.BadParameterError, "unknown security mechanism")
	}

	posture, err := uc.postureRepository.GetSecurityPosture(ctx,
		uc.executorFactory.NewExecutor(), userId, tenantId, mechanism, scalingContext)
	if err != nil {
		return models.UnknownSecurityLevel, err
	}
	if posture == nil {
		return models.DefaultSecurityLevel, nil
	}
	return posture.EffectiveLevel(uc.clock.Now()), nil
}

// GetUserSecurityProfile aggregates the user's effective levels across
// contexts, keeping the strictest level per mechanism, plus their most
// recent scaling events.
func (uc *AdaptiveScalingUsecase) GetUserSecurityProfile(
	ctx context.Context,
	userId string,
	tenantId uuid.UUID,
) (models.UserSecurityProfile, error) {
	if userId == "" {
		return models.UserSecurityProfile{}, errors.Wrap(models.BadParameterError, "missing user id")
	}

	exec := uc.executorFactory.NewExecutor()
	now := uc.clock.Now()

	postures, err := uc.postureRepository.ListSecurityPostures(ctx, exec, userId, tenantId)
	if err != nil {
		return models.UserSecurityProfile{}, err
	}

	levels := make(map[models.SecurityMechanism]models.SecurityLevel,
		len(models.KnownSecurityMechanisms))
	for _, mechanism := range models.KnownSecurityMechanisms {
		levels[mechanism] = models.DefaultSecurityLevel
	}
	for _, posture := range postures {
		effective := posture.EffectiveLevel(now)
		if effective > levels[posture.Mechanism] {
			levels[posture.Mechanism] = effective
		}
	}

	recentEvents, err := uc.eventsRepository.ListScalingEvents(ctx, exec, models.ScalingEventFilters{
		UserId:   userId,
		TenantId: tenantId,
		Limit:    10,
	})
	if err != nil {
		return models.UserSecurityProfile{}, err
	}

	return models.UserSecurityProfile{
		UserId:       userId,
		TenantId:     tenantId,
		Levels:       levels,
		RecentEvents: recentEvents,
	}, nil
}

func (uc *AdaptiveScalingUsecase) ListScalingEvents(
	ctx context.Context,
	filters models.ScalingEventFilters,
) ([]models.ScalingEvent, error) {
	if filters.UserId == "" {
		return nil, errors.Wrap(models.BadParameterError, "missing user id")
	}
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 100
	}
	return uc.eventsRepository.ListScalingEvents(ctx, uc.executorFactory.NewExecutor(), filters)
}

// RevertExpiredPostures is the periodic sweep resetting elapsed adjustments
// to their baseline. Reads stay correct between sweeps through
// SecurityPosture.EffectiveLevel.
func (uc *AdaptiveScalingUsecase) RevertExpiredPostures(ctx context.Context) (int64, error) {
	return uc.postureRepository.RevertExpiredSecurityPostures(ctx,
		uc.executorFactory.NewExecutor(), uc.clock.Now())
}
