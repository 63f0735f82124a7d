package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/repositories"
)

type SecurityPostureRepository struct {
	mock.Mock
}

func (r *SecurityPostureRepository) GetSecurityPosture(ctx context.Context, exec repositories.Executor,
	userId string, tenantId uuid.UUID, mechanism models.SecurityMechanism,
	scalingContext models.ScalingContext,
) (*models.SecurityPosture, error) {
	args := r.Called(ctx, exec, userId, tenantId, mechanism, scalingContext)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SecurityPosture), args.Error(1)
}

func (r *SecurityPostureRepository) ListSecurityPostures(ctx context.Context, exec repositories.Executor,
	userId string, tenantId uuid.UUID,
) ([]models.SecurityPosture, error) {
	args := r.Called(ctx, exec, userId, tenantId)
	return args.Get(0).([]models.SecurityPosture), args.Error(1)
}

func (r *SecurityPostureRepository) UpsertSecurityPosture(ctx context.Context, exec repositories.Executor,
	req models.UpsertPostureRequest,
) error {
	args := r.Called(ctx, exec, req)
	return args.Error(0)
}

func (r *SecurityPostureRepository) RevertExpiredSecurityPostures(ctx context.Context, exec repositories.Executor,
	now time.Time,
) (int64, error) {
	args := r.Called(ctx, exec, now)
	return args.Get(0).(int64), args.Error(1)
}
