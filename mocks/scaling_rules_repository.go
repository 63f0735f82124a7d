package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sentinelsec/sentinel-backend/models"
	"github.com/sentinelsec/sentinel-backend/repositories"
)

type ScalingRulesRepository struct {
	mock.Mock
}

func (r *ScalingRulesRepository) ListScalingTriggers(ctx context.Context, exec repositories.Executor) ([]models.ScalingTrigger, error) {
	args := r.Called(ctx, exec)
	return args.Get(0).([]models.ScalingTrigger), args.Error(1)
}

func (r *ScalingRulesRepository) ListScalingPolicies(ctx context.Context, exec repositories.Executor) ([]models.ScalingPolicy, error) {
	args := r.Called(ctx, exec)
	return args.Get(0).([]models.ScalingPolicy), args.Error(1)
}

func (r *ScalingRulesRepository) GetAdaptiveConfig(ctx context.Context, exec repositories.Executor) (models.AdaptiveConfig, error) {
	args := r.Called(ctx, exec)
	return args.Get(0).(models.AdaptiveConfig), args.Error(1)
}
