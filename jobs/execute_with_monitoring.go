package jobs

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/sentinelsec/sentinel-backend/usecases"
	"github.com/sentinelsec/sentinel-backend/utils"
)

// executeWithMonitoring wraps a job with sentry cron check-ins, so a job
// that stops running or starts failing shows up as a missed/failed monitor.
func executeWithMonitoring(
	ctx context.Context,
	uc *usecases.Usecases,
	jobName string,
	fn func(context.Context, *usecases.Usecases) error,
) error {
	logger := utils.LoggerFromContext(ctx)
	logger.InfoContext(ctx, fmt.Sprintf("job %s: starting", jobName))

	checkinId := sentry.CaptureCheckIn(&sentry.CheckIn{
		MonitorSlug: jobName,
		Status:      sentry.CheckInStatusInProgress,
	}, nil)
	reportCheckin := func(status sentry.CheckInStatus) {
		sentry.CaptureCheckIn(&sentry.CheckIn{
			ID:          *checkinId,
			MonitorSlug: jobName,
			Status:      status,
		}, nil)
	}

	if err := fn(ctx, uc); err != nil {
		reportCheckin(sentry.CheckInStatusError)
		utils.LogAndReportSentryError(ctx, err)
		return errors.Wrapf(err, "error executing job %s", jobName)
	}

	reportCheckin(sentry.CheckInStatusOK)
	logger.InfoContext(ctx, fmt.Sprintf("job %s: done", jobName))
	return nil
}
