package executor_factory

import (
	"context"

	"github.com/sentinelsec/sentinel-backend/repositories"
)

// TransactionReturnValue runs fn inside a transaction and carries its
// return value out, since TransactionFactory.Transaction only deals in
// errors.
func TransactionReturnValue[ReturnType any](
	ctx context.Context,
	factory TransactionFactory,
	fn func(tx repositories.Transaction) (ReturnType, error),
) (ReturnType, error) {
	var value ReturnType
	transactionErr := factory.Transaction(ctx, func(tx repositories.Transaction) error {
		var fnErr error
		value, fnErr = fn(tx)
		return fnErr
	})
	return value, transactionErr
}
