package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"vod-packager/config"
	"vod-packager/constant"
	eventHandler "vod-packager/handler"
	"vod-packager/pkg/metrics"
	"vod-packager/pkg/rabbitmq"
	"vod-packager/repository"
	"vod-packager/service"
)

func RunHttp(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(setupLogger(cfg), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Bool("isProduction", cfg.App.Environment == constant.EnvironmentProduction.String()).Send()
	if cfg.App.Environment == constant.EnvironmentProduction.String() {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := config.NewRabbitMQConn(ctx, cfg.Queue)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("NewRabbitMQConn")
	}

	met := metrics.New()
	repo := repository.NewRepo(cfg.DB)
	ingestService := service.NewService(repo, cfg, met)

	serviceDeps := eventHandler.ServiceDependencies{
		IngestService: ingestService,
	}

	eventConsumer := rabbitmq.NewConsumer(conn, cfg.Queue, cfg.Server.Workers, service.DefaultRetryPolicy(), eventHandler.StorageEventHandler)
	go func() {
		err := eventConsumer.Consume(ctx, serviceDeps)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Msg("storage event consumer error")
		}
	}()

	r := gin.Default()
	r.Use(corsMiddleware())
	addHealth(r)
	r.GET("/metrics", gin.WrapH(met.Handler()))
	r.GET("/videos", listVideos(repo))

	handler := http.Server{
		Handler:           r,
		Addr:              fmt.Sprintf(":%s", cfg.Server.HttpPort),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("start http server")
		if err := handler.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
		}
	}()

	<-ctx.Done()
	zerolog.Ctx(ctx).Info().Msg("shutting down server")
	if err := handler.Shutdown(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Str("env", cfg.App.Environment).Msg(err.Error())
	}

	zerolog.Ctx(ctx).Info().Str("env", cfg.App.Environment).Msg("server shutdown")
}

func addHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})
}

func setupLogger(cfg *config.Config) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.App.Environment == constant.EnvironmentDevelop.String() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	return ctx
}
