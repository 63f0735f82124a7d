package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/repositories/dbmodels"
)

func (repo SentinelDbRepository) GetSecurityPosture(
	ctx context.Context,
	exec Executor,
	userId string,
	tenantId uuid.UUID,
	mechanism models.SecurityMechanism,
	scalingContext models.ScalingContext,
) (*models.SecurityPosture, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectSecurityPostureColumns...).
		From(dbmodels.TABLE_SECURITY_POSTURES).
		Where(squirrel.Eq{
			"user_id":    userId,
			"tenant_id":  tenantId,
			"mechanism":  mechanism.String(),
			"context_id": scalingContext.StorageKey(),
		})

	return SqlToOptionalModel(ctx, exec, query, dbmodels.AdaptSecurityPosture)
}

func (repo SentinelDbRepository) ListSecurityPostures(
	ctx context.Context,
	exec Executor,
	userId string,
	tenantId uuid.UUID,
) ([]models.SecurityPosture, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectSecurityPostureColumns...).
		From(dbmodels.TABLE_SECURITY_POSTURES).
		Where(squirrel.Eq{
			"user_id":   userId,
			"tenant_id": tenantId,
		}).
		OrderBy("mechanism, context_id")

	return SqlToListOfModels(ctx, exec, query, dbmodels.AdaptSecurityPosture)
}

// UpsertSecurityPosture is a conditional write: an existing row is only
// updated when the incoming event_time is strictly newer than the stored
// one, so the latest decision by event time wins regardless of arrival
// order. A rejected write returns models.ErrStaleWrite.
func (repo SentinelDbRepository) UpsertSecurityPosture(
	ctx context.Context,
	exec Executor,
	req models.UpsertPostureRequest,
) error {
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_SECURITY_POSTURES).
		Columns(
			"user_id",
			"tenant_id",
			"mechanism",
			"context_id",
			"level",
			"baseline_level",
			"event_time",
			"expires_at",
		).
		Values(
			req.UserId,
			req.TenantId,
			req.Mechanism.String(),
			req.Context.StorageKey(),
			req.Level.String(),
			req.BaselineLevel.String(),
			req.EventTime,
			req.ExpiresAt,
		).
		// The baseline of an existing row is preserved: reversion always
		// targets the pre-adjustment baseline, not the level of the
		// superseded event.
		Suffix(`ON CONFLICT (user_id, tenant_id, mechanism, context_id) DO UPDATE SET
			level = excluded.level,
			event_time = excluded.event_time,
			expires_at = excluded.expires_at
			WHERE security_postures.event_time < excluded.event_time`)

	tag, err := ExecBuilder(ctx, exec, query)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(models.ErrStaleWrite,
			"posture for user %s mechanism %s", req.UserId, req.Mechanism)
	}
	return nil
}

// RevertExpiredSecurityPostures resets every posture whose adjustment
// window has elapsed back to its baseline level. Used by the periodic sweep
// job; reads stay correct between sweeps through
// SecurityPosture.EffectiveLevel.
func (repo SentinelDbRepository) RevertExpiredSecurityPostures(
	ctx context.Context,
	exec Executor,
	now time.Time,
) (int64, error) {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_SECURITY_POSTURES).
		Set("level", squirrel.Expr("baseline_level")).
		Set("event_time", now).
		Set("expires_at", now).
		Where(squirrel.LtOrEq{"expires_at": now}).
		Where("level != baseline_level")

	tag, err := ExecBuilder(ctx, exec, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
