package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/repositories/dbmodels"
	"github.com/sentinelsec/sentinel-backend/utils"
)

// ListScalingTriggers returns every trigger row that adapts into a valid
// model. Rows with malformed payloads are skipped with a logged warning so
// that one bad row cannot prevent the snapshot from loading.
func (repo SentinelDbRepository) ListScalingTriggers(ctx context.Context, exec Executor) ([]models.ScalingTrigger, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectScalingTriggerColumns...).
		From(dbmodels.TABLE_SCALING_TRIGGERS).
		OrderBy("id")

	return sqlToValidModels(ctx, exec, query, dbmodels.AdaptScalingTrigger)
}

// ListScalingPolicies behaves like ListScalingTriggers: invalid rows are
// excluded, not fatal.
func (repo SentinelDbRepository) ListScalingPolicies(ctx context.Context, exec Executor) ([]models.ScalingPolicy, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectScalingPolicyColumns...).
		From(dbmodels.TABLE_SCALING_POLICIES).
		OrderBy("id")

	return sqlToValidModels(ctx, exec, query, dbmodels.AdaptScalingPolicy)
}

func (repo SentinelDbRepository) GetAdaptiveConfig(ctx context.Context, exec Executor) (models.AdaptiveConfig, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectAdaptiveConfigColumns...).
		From(dbmodels.TABLE_ADAPTIVE_CONFIG).
		Limit(1)

	config, err := SqlToOptionalModel(ctx, exec, query, dbmodels.AdaptAdaptiveConfig)
	if err != nil {
		return models.AdaptiveConfig{}, err
	}
	if config == nil {
		return models.AdaptiveConfig{}.WithDefaults(), nil
	}
	return *config, nil
}

// sqlToValidModels is SqlToListOfModels with per-row tolerance: rows whose
// adapter fails are dropped with a warning instead of failing the query.
func sqlToValidModels[DBModel, Model any](ctx context.Context, exec Executor,
	query interface{ ToSql() (string, []any, error) },
	adapter func(dbModel DBModel) (Model, error),
) ([]Model, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing sql query")
	}

	dbModels, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[DBModel])
	if err != nil {
		return nil, errors.Wrap(err, "error collecting rows")
	}

	logger := utils.LoggerFromContext(ctx)
	out := make([]Model, 0, len(dbModels))
	for i := range dbModels {
		model, err := adapter(dbModels[i])
		if err != nil {
			logger.WarnContext(ctx, "excluding malformed scaling rule row", "error", err.Error())
			continue
		}
		out = append(out, model)
	}
	return out, nil
}
