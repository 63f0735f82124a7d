package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sentinelsec/sentinel-backend/models"
)

func NewQueryBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func queryRows(ctx context.Context, exec Executor, query squirrel.Sqlizer) (pgx.Rows, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing sql query")
	}
	return rows, nil
}

func SqlToListOfModels[DBModel, Model any](ctx context.Context, exec Executor,
	query squirrel.Sqlizer, adapter func(dbModel DBModel) (Model, error),
) ([]Model, error) {
	rows, err := queryRows(ctx, exec, query)
	if err != nil {
		return nil, err
	}

	dbModels, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[DBModel])
	if err != nil {
		return nil, errors.Wrap(err, "error collecting rows")
	}

	ms := make([]Model, len(dbModels))
	for i := range dbModels {
		ms[i], err = adapter(dbModels[i])
		if err != nil {
			return nil, err
		}
	}
	return ms, nil
}

func SqlToModel[DBModel, Model any](ctx context.Context, exec Executor,
	query squirrel.Sqlizer, adapter func(dbModel DBModel) (Model, error),
) (Model, error) {
	var zero Model

	rows, err := queryRows(ctx, exec, query)
	if err != nil {
		return zero, err
	}

	dbModel, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[DBModel])
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, errors.Wrap(models.NotFoundError, err.Error())
	} else if err != nil {
		return zero, errors.Wrap(err, "error collecting row")
	}

	return adapter(dbModel)
}

// SqlToOptionalModel returns nil, without error, when the query matches no
// row.
func SqlToOptionalModel[DBModel, Model any](ctx context.Context, exec Executor,
	query squirrel.Sqlizer, adapter func(dbModel DBModel) (Model, error),
) (*Model, error) {
	rows, err := queryRows(ctx, exec, query)
	if err != nil {
		return nil, err
	}

	dbModel, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[DBModel])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "error collecting row")
	}

	model, err := adapter(dbModel)
	if err != nil {
		return nil, err
	}
	return &model, nil
}

func ExecBuilder(ctx context.Context, exec Executor, query squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, errors.Wrap(err, "can't build sql query")
	}

	tag, err := exec.Exec(ctx, sql, args...)
	if err != nil {
		return pgconn.CommandTag{}, errors.Wrap(err, "error executing sql query")
	}
	return tag, nil
}
