package jobs

import (
	"context"

	"github.com/sentinelsec/sentinel-backend/usecases"
	"github.com/sentinelsec/sentinel-backend/utils"
)

// ExpireSecurityPostures reverts adjustments whose TTL has elapsed back to
// their baseline level. Reads already ignore expired adjustments, so the
// sweep only reconciles stored rows.
func ExpireSecurityPostures(ctx context.Context, uc *usecases.Usecases) error {
	return executeWithMonitoring(ctx, uc, "expire_security_postures",
		func(ctx context.Context, uc *usecases.Usecases) error {
			reverted, err := uc.AdaptiveScalingUsecase().RevertExpiredPostures(ctx)
			if err != nil {
				return err
			}
			if reverted > 0 {
				utils.LoggerFromContext(ctx).InfoContext(ctx,
					"reverted expired security postures", "count", reverted)
			}
			return nil
		})
}
