package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/utils"
)

type ExecutorGetter struct {
	connectionPool *pgxpool.Pool
}

func NewExecutorGetter(pool *pgxpool.Pool) ExecutorGetter {
	return ExecutorGetter{
		connectionPool: pool,
	}
}

const transactionMaxAttempts = 3

func (g ExecutorGetter) Transaction(
	ctx context.Context,
	fn func(tx Transaction) error,
) error {
	var err error
	for attempt := 1; attempt <= transactionMaxAttempts; attempt++ {
		err = pgx.BeginFunc(ctx, g.connectionPool, func(tx pgx.Tx) error {
			return fn(PgTx{tx: tx})
		})
		if !IsDeadlockError(err) && !IsSerializationFailureError(err) {
			break
		}
		utils.LoggerFromContext(ctx).WarnContext(ctx, "retrying transaction after transient error",
			"attempt", attempt, "error", err.Error())
	}

	// helper: The callback can return ErrIgnoreRollBackError
	// to explicitly specify that the error should be ignored.
	if errors.Is(err, models.ErrIgnoreRollBackError) {
		return nil
	}
	return errors.Wrap(err, "Error executing transaction")
}

func (g ExecutorGetter) GetExecutor() Executor {
	return PgExecutor{exec: g.connectionPool}
}
