// Command intelliallergen serves the product form and predicts in-process.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/intelliallergen/intelliallergen/internal/config"
	"github.com/intelliallergen/intelliallergen/internal/logger"
	"github.com/intelliallergen/intelliallergen/internal/model"
	"github.com/intelliallergen/intelliallergen/internal/server"
	"github.com/intelliallergen/intelliallergen/internal/ui"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := ui.NewRouter(ui.Local{Predictor: predictor}, ui.IntelliAllergen, log)
	if err := server.ListenAndRun(ctx, cfg.UI, router, log); err != nil {
		log.Error("form server failed", "error", err)
		os.Exit(1)
	}
}
