package cmd

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/sentinelsec/sentinel-backend/infra"
	"github.com/sentinelsec/sentinel-backend/jobs"
	"github.com/sentinelsec/sentinel-backend/repositories"
	"github.com/sentinelsec/sentinel-backend/usecases"
	"github.com/sentinelsec/sentinel-backend/utils"
)

func RunJobScheduler() error {
	pgConfig := pgConfigFromEnv()
	jobConfig := struct {
		env           string
		loggingFormat string
		sentryDsn     string
	}{
		env:           utils.GetEnv("ENV", "development"),
		loggingFormat: utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:     utils.GetEnv("SENTRY_DSN", ""),
	}

	logger := utils.NewLogger(jobConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(jobConfig.sentryDsn, jobConfig.env)
	defer sentry.Flush(3 * time.Second)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	uc := usecases.NewUsecases(usecases.Repositories{
		ExecutorGetter:       repositories.NewExecutorGetter(pool),
		SentinelDbRepository: repositories.NewSentinelDbRepository(),
	})

	// The refresh job retries the load every minute, so a failure here is
	// reported but does not prevent the scheduler from starting.
	if err := uc.AdaptiveScalingUsecase().Initialize(ctx); err != nil {
		utils.LogAndReportSentryError(ctx, err)
	}

	jobs.RunScheduler(ctx, uc)
	return nil
}
