package jobs

import (
	"context"

	"github.com/adhocore/gronx/pkg/tasker"

	"github.com/sentinelsec/sentinel-backend/usecases"
	"github.com/sentinelsec/sentinel-backend/utils"
)

func errToReturnCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

// RunScheduler blocks running the periodic maintenance jobs until ctx is
// cancelled.
func RunScheduler(ctx context.Context, uc *usecases.Usecases) {
	taskr := tasker.New(tasker.Option{
		Verbose: true,
	}).WithContext(ctx)

	notConcurrent := false
	taskr.Task("* * * * *", func(ctx context.Context) (int, error) {
		logger := utils.LoggerFromContext(ctx).With("job", "refresh_scaling_rules")
		ctx = utils.StoreLoggerInContext(ctx, logger)
		err := RefreshScalingRules(ctx, uc)
		return errToReturnCode(err), err
	}, notConcurrent)

	taskr.Task("*/5 * * * *", func(ctx context.Context) (int, error) {
		logger := utils.LoggerFromContext(ctx).With("job", "expire_security_postures")
		ctx = utils.StoreLoggerInContext(ctx, logger)
		err := ExpireSecurityPostures(ctx, uc)
		return errToReturnCode(err), err
	}, notConcurrent)

	taskr.Run()
}
