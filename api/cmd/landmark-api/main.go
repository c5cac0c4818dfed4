package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"landmark-lens/api/internal/config"
	"landmark-lens/api/internal/engines"
	"landmark-lens/api/internal/handle"
	"landmark-lens/api/internal/httpserver"
	"landmark-lens/api/internal/logging"
)

func main() {
	log := logging.Must(os.Getenv("LOG_LEVEL"))
	defer func() { _ = log.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engs, err := engines.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal("engines", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	srv := httpserver.New(log, nil)
	handle.New(engs, cfg.RequestTimeout, log).Register(srv)

	log.Info("landmark-api starting",
		zap.String("default_engine", engs.Default().Name()),
		zap.String("model", cfg.GeminiModel))
	if err := httpserver.Run(ctx, ":"+cfg.Port, srv, log); err != nil {
		log.Fatal("http server", zap.Error(err))
	}
}
