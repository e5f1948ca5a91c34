package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	cacheAdapter "conversations/internal/infrastructure/cache/adapter"
	"conversations/internal/infrastructure/database"
	queueAdapter "conversations/internal/infrastructure/queue/adapter"
	"conversations/internal/infrastructure/realtime"
	"conversations/internal/pkg/identity/session"

	v1 "conversations/cmd/api/router/v1"
)

type config struct {
	Addr       string        `envconfig:"ADDR" default:":8080"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	UploadsDir string        `envconfig:"UPLOADS_DIR" default:"./uploads"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded", "error", err)
	}

	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pool, err := database.NewPoolFromEnv(ctx)
	cancel()
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	cache, err := cacheAdapter.NewRedisAdapter()
	if err != nil {
		logger.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	queueClient, err := queueAdapter.NewAsynqClientFromEnv()
	if err != nil {
		logger.Error("queue client failed", "error", err)
		os.Exit(1)
	}
	defer queueClient.Close()

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		logger.Error("uploads directory not writable", "dir", cfg.UploadsDir, "error", err)
		os.Exit(1)
	}

	sessions := session.NewStore(cache, cfg.SessionTTL)
	broker := realtime.NewBroker()

	r := gin.Default()
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	v1.RegisterRoutes(r, pool, queueClient, broker, sessions, cfg.UploadsDir)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		logger.Info("api listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	stop, stopCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopCancel()
	<-stop.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("api stopped")
}
