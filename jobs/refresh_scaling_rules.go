package jobs

import (
	"context"

	"github.com/sentinelsec/sentinel-backend/usecases"
)

// RefreshScalingRules reloads the scaling rule snapshot so that trigger and
// policy edits take effect without a restart.
func RefreshScalingRules(ctx context.Context, uc *usecases.Usecases) error {
	return executeWithMonitoring(ctx, uc, "refresh_scaling_rules",
		func(ctx context.Context, uc *usecases.Usecases) error {
			return uc.AdaptiveScalingUsecase().ReloadRules(ctx)
		})
}
