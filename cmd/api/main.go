package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/persoshop/persoshop-api/internal/api"
	"github.com/persoshop/persoshop-api/internal/infrastructure/config"
	"github.com/persoshop/persoshop-api/internal/infrastructure/db/postgres"
	"github.com/persoshop/persoshop-api/internal/infrastructure/db/redis"
	"github.com/persoshop/persoshop-api/internal/infrastructure/imagestore"
	"github.com/persoshop/persoshop-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	db, err := postgres.Connect(cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}

	ctx := context.Background()
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	images, err := imagestore.New(imagestore.Config{
		Endpoint:      cfg.Images.Endpoint,
		AccessKey:     cfg.Images.AccessKey,
		SecretKey:     cfg.Images.SecretKey,
		Bucket:        cfg.Images.Bucket,
		UseSSL:        cfg.Images.UseSSL,
		PublicBaseURL: cfg.Images.PublicBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("image store connection failed")
	}

	e := api.NewRouter(db, rdb, images, cfg.JWTSecret)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
