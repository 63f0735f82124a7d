package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/repositories/dbmodels"
)

// InsertScalingEvent appends one audit record. Events are immutable: there
// is no update or delete path.
func (repo SentinelDbRepository) InsertScalingEvent(
	ctx context.Context,
	exec Executor,
	req models.CreateScalingEventRequest,
) (models.ScalingEvent, error) {
	adjustments, err := dbmodels.SerializeAdjustments(req.Adjustments)
	if err != nil {
		return models.ScalingEvent{}, err
	}

	eventId := uuid.New()
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_SCALING_EVENTS).
		Columns(
			"id",
			"user_id",
			"tenant_id",
			"context_id",
			"region_code",
			"trigger_id",
			"policy_id",
			"trust_score",
			"direction",
			"adjustments",
			"event_time",
			"expires_at",
		).
		Values(
			eventId,
			req.UserId,
			req.TenantId,
			req.Context.StorageKey(),
			req.RegionCode,
			req.TriggerId,
			req.PolicyId,
			req.TrustScore,
			req.Direction.String(),
			adjustments,
			req.EventTime,
			req.ExpiresAt,
		).
		Suffix("RETURNING " + columnList(dbmodels.SelectScalingEventColumns))

	event, err := SqlToModel(ctx, exec, query, dbmodels.AdaptScalingEvent)
	if IsUniqueViolationError(err) {
		return models.ScalingEvent{}, errors.Wrapf(models.ConflictError,
			"scaling event %s already exists", eventId)
	}
	return event, err
}

// LatestScalingEventForTrigger is the cooldown lookup: the most recent
// event for the same (user, tenant, trigger), or nil.
func (repo SentinelDbRepository) LatestScalingEventForTrigger(
	ctx context.Context,
	exec Executor,
	userId string,
	tenantId uuid.UUID,
	triggerId uuid.UUID,
) (*models.ScalingEvent, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectScalingEventColumns...).
		From(dbmodels.TABLE_SCALING_EVENTS).
		Where(squirrel.Eq{
			"user_id":    userId,
			"tenant_id":  tenantId,
			"trigger_id": triggerId,
		}).
		OrderBy("event_time desc").
		Limit(1)

	return SqlToOptionalModel(ctx, exec, query, dbmodels.AdaptScalingEvent)
}

func (repo SentinelDbRepository) ListScalingEvents(
	ctx context.Context,
	exec Executor,
	filters models.ScalingEventFilters,
) ([]models.ScalingEvent, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectScalingEventColumns...).
		From(dbmodels.TABLE_SCALING_EVENTS).
		Where(squirrel.Eq{
			"user_id":   filters.UserId,
			"tenant_id": filters.TenantId,
		}).
		OrderBy("event_time desc")

	if !filters.From.IsZero() {
		query = query.Where(squirrel.GtOrEq{"event_time": filters.From})
	}
	if !filters.To.IsZero() {
		query = query.Where(squirrel.Lt{"event_time": filters.To})
	}
	if filters.Limit > 0 {
		query = query.Limit(uint64(filters.Limit))
	}

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptScalingEvent)
}
