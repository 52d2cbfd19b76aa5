package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WaadSulaiman/SocialMedia.Api/internal/config"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/delivery/http/middleware"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/exception"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/media"
	logmiddleware "github.com/WaadSulaiman/SocialMedia.Api/internal/middleware"
	"github.com/WaadSulaiman/SocialMedia.Api/internal/observability"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/spf13/cobra"
	zapLog "go.uber.org/zap"
)

func newServeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile)
		},
	}
}

func runServe(envFile *string) error {
	bootstrap := config.NewZap("info")
	koanf := config.NewKoanf(bootstrap, *envFile)
	zap := config.NewZap(koanf.String("LOG_LEVEL"))

	shutdownTracer, err := observability.Init(context.Background(), config.LoadObservabilityConfig(koanf, zap), zap)
	if err != nil {
		zap.Fatal("failed to initialize tracing", zapLog.Error(err))
	}

	app := config.NewFiber(zap)
	rds := config.NewRedisClient(koanf, zap)
	postgresql := config.NewPostgresqlPool(koanf, zap)
	minio := config.NewMinIO(koanf, zap)
	kafka := config.NewKafkaWriter(koanf, zap)

	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/api/health" || c.Path() == "/api/metrics"
	})))
	app.Use(logmiddleware.TraceLoggerMiddleware(zap))
	app.Use(exception.Recovery(zap))
	app.Use(middleware.SetupCORS(koanf.String("CORS_ALLOW_ORIGINS")))
	app.Use(middleware.SetupRateLimiter(zap, koanf.Int("RATE_LIMIT_MAX")))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	config.Server(&config.ServerConfig{
		Router:  app,
		DB:      postgresql,
		DBCache: rds,
		Log:     zap,
		Config:  koanf,
		MinIO:   minio,
		Kafka:   kafka,
		Encoder: media.NewWebPEncoder(koanf.Int("IMAGE_QUALITY"), koanf.Int("IMAGE_MAX_WIDTH"), koanf.Int("IMAGE_MAX_HEIGHT")),
	})

	GO_SERVER_PORT := koanf.String("GO_SERVER")

	zap.Info("Server is running on: " + GO_SERVER_PORT)

	go func() {
		err := app.Listen(GO_SERVER_PORT)
		if err != nil {
			zap.Fatal("error starting server", zapLog.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	zap.Info("got one of stop signals")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = app.ShutdownWithContext(ctx)
	if err != nil {
		zap.Warn("timeout, forced kill!", zapLog.Error(err))
	}

	if kafka != nil {
		if err := kafka.Close(); err != nil {
			zap.Warn("failed to close kafka writer", zapLog.Error(err))
		}
	}

	_ = rds.Close()
	postgresql.Close()

	if err := shutdownTracer(ctx); err != nil {
		zap.Warn("failed to flush traces", zapLog.Error(err))
	}

	zap.Info("server has shut down gracefully")
	_ = zap.Sync()

	return nil
}
