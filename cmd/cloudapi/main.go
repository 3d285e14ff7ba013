package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloudapi/internal/auth"
	"cloudapi/internal/config"
	"cloudapi/internal/handler"
	"cloudapi/internal/service"
	"cloudapi/internal/storage"

	"github.com/gin-gonic/gin"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to yaml config, env-only when empty")

	flag.Parse()

	cfg := config.MustLoadConfig(configPath)

	lgr := setupLogger(cfg.Env)
	lgr.Info("starting cloud-api", slog.String("env", cfg.Env), slog.String("address", cfg.Address))

	if cfg.Env == envProd {
		gin.SetMode(gin.ReleaseMode)
	}

	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		generated, err := auth.GenerateSecret(32)
		if err != nil {
			log.Fatalf("failed to generate signing secret: %v", err)
		}
		secret = generated

		lgr.Warn("jwt secret not configured, using ephemeral key; issued tokens will not survive restart")
	}

	tokens := auth.NewTokenManager(secret)
	store := storage.NewMemoryStorage()
	srvc := service.NewService(store, tokens, cfg.TokenTTL)
	h := handler.NewHandler(srvc, lgr)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      h.InitRoutes(),
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lgr.Error("server stopped", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	lgr.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lgr.Error("failed to shut down gracefully", slog.Any("error", err))
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default: // envLocal
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}
	return log
}
