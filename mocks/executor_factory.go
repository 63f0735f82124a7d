package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sentinelsec/sentinel-backend/repositories"
)

type ExecutorFactory struct {
	mock.Mock
	ExecMock *Executor
}

func (f *ExecutorFactory) NewExecutor() repositories.Executor {
	return f.ExecMock
}

type TransactionFactory struct {
	mock.Mock
	TxMock *Transaction
}

func (t *TransactionFactory) Transaction(ctx context.Context, fn func(tx repositories.Transaction) error) error {
	args := t.Called(ctx, fn)
	err := fn(t.TxMock)
	if err != nil {
		return err
	}
	return args.Error(0)
}
