package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/repositories"
)

type ScalingEventsRepository struct {
	mock.Mock
}

func (r *ScalingEventsRepository) InsertScalingEvent(ctx context.Context, exec repositories.Executor,
	req models.CreateScalingEventRequest,
) (models.ScalingEvent, error) {
	args := r.Called(ctx, exec, req)
	return args.Get(0).(models.ScalingEvent), args.Error(1)
}

func (r *ScalingEventsRepository) LatestScalingEventForTrigger(ctx context.Context, exec repositories.Executor,
	userId string, tenantId uuid.UUID, triggerId uuid.UUID,
) (*models.ScalingEvent, error) {
	args := r.Called(ctx, exec, userId, tenantId, triggerId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScalingEvent), args.Error(1)
}

func (r *ScalingEventsRepository) ListScalingEvents(ctx context.Context, exec repositories.Executor,
	filters models.ScalingEventFilters,
) ([]models.ScalingEvent, error) {
	args := r.Called(ctx, exec, filters)
	return args.Get(0).([]models.ScalingEvent), args.Error(1)
}
