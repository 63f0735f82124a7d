package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/errgroup"

	"github.com/sentinelsec/sentinel-backend/api"
	"github.com/sentinelsec/sentinel-backend/infra"
	"github.com/sentinelsec/sentinel-backend/repositories"
	"github.com/sentinelsec/sentinel-backend/usecases"
	"github.com/sentinelsec/sentinel-backend/utils"
)

func RunServer() error {
	apiConfig := api.Configuration{
		Env:            utils.GetEnv("ENV", "development"),
		AppName:        appName,
		Port:           utils.GetRequiredEnv[string]("PORT"),
		AllowedOrigins: splitCommaList(utils.GetEnv("ALLOWED_ORIGINS", "")),
		DefaultTimeout: time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 20)) * time.Second,
	}
	pgConfig := pgConfigFromEnv()
	serverConfig := struct {
		loggingFormat         string
		sentryDsn             string
		notificationQueueSize int
		notificationWorkers   int
	}{
		loggingFormat:         utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:             utils.GetEnv("SENTRY_DSN", ""),
		notificationQueueSize: utils.GetEnv("NOTIFICATION_QUEUE_SIZE", 256),
		notificationWorkers:   utils.GetEnv("NOTIFICATION_WORKERS", 2),
	}

	logger := utils.NewLogger(serverConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env)
	defer sentry.Flush(3 * time.Second)

	telemetryRessources, err := infra.InitTelemetry(ctx, telemetryConfigFromEnv())
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
	}

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	uc := usecases.NewUsecases(usecases.Repositories{
		ExecutorGetter:       repositories.NewExecutorGetter(pool),
		SentinelDbRepository: repositories.NewSentinelDbRepository(),
	},
		usecases.WithNotificationQueueSize(serverConfig.notificationQueueSize),
	)

	// A failed initial load leaves the engine disabled (evaluations are
	// answered with 503) until the scheduler's refresh succeeds.
	if err := uc.AdaptiveScalingUsecase().Initialize(ctx); err != nil {
		utils.LogAndReportSentryError(ctx, err)
	}

	uc.Notifier().Start(ctx, serverConfig.notificationWorkers)
	defer uc.Notifier().Stop()

	router := api.InitRouterMiddlewares(ctx, apiConfig, telemetryRessources)
	server := api.NewServer(router, apiConfig, uc)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(notify)
	group.Go(func() error {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "error while serving the app")
		}
		logger.InfoContext(ctx, "server returned")
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	return nil
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
