// Command allergen-api serves POST /predict from the model artifacts on disk.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/intelliallergen/intelliallergen/internal/api"
	"github.com/intelliallergen/intelliallergen/internal/config"
	"github.com/intelliallergen/intelliallergen/internal/logger"
	"github.com/intelliallergen/intelliallergen/internal/model"
	"github.com/intelliallergen/intelliallergen/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)
	gin.SetMode(gin.ReleaseMode)

	predictor, err := model.Load(cfg.Model.ClassifierPath, cfg.Model.EncoderPath)
	if err != nil {
		log.Error("failed to load model artifacts", "error", err)
		os.Exit(1)
	}
	log.Info("model loaded", "classifier", cfg.Model.ClassifierPath, "encoder", cfg.Model.EncoderPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := api.NewRouter(predictor, cfg.CORS, log)
	if err := server.ListenAndRun(ctx, cfg.API, router, log); err != nil {
		log.Error("api server failed", "error", err)
		os.Exit(1)
	}
}
