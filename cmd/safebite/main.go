// Command safebite runs the prediction API in the background and a form that
// reaches it over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/intelliallergen/intelliallergen/internal/api"
	"github.com/intelliallergen/intelliallergen/internal/client"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("safebite stopped", "error", err)
		os.Exit(1)
	}
}

// run serves the API and the form until ctx is done. Both listeners are bound
// before either server starts so the first submission can reach the API.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	predictor, err := model.Load(cfg.Model.ClassifierPath, cfg.Model.EncoderPath)
	if err != nil {
		return fmt.Errorf("load model artifacts: %w", err)
	}
	log.Info("model loaded", "classifier", cfg.Model.ClassifierPath, "encoder", cfg.Model.EncoderPath)

	apiLn, err := net.Listen("tcp", cfg.API.Addr())
	if err != nil {
		return fmt.Errorf("listen api %s: %w", cfg.API.Addr(), err)
	}
	uiLn, err := net.Listen("tcp", cfg.UI.Addr())
	if err != nil {
		apiLn.Close()
		return fmt.Errorf("listen ui %s: %w", cfg.UI.Addr(), err)
	}

	g, ctx := errgroup.WithContext(ctx)

	apiLog := log.With("component", "api")
	g.Go(func() error {
		router := api.NewRouter(predictor, cfg.CORS, apiLog)
		return server.Run(ctx, server.New(cfg.API, router), apiLn, cfg.API, apiLog)
	})

	uiLog := log.With("component", "ui", "predict_url", cfg.Client.PredictURL)
	g.Go(func() error {
		backend := ui.Remote{Client: client.New(cfg.Client.PredictURL, cfg.Client.Timeout)}
		router := ui.NewRouter(backend, ui.SafeBite, uiLog)
		return server.Run(ctx, server.New(cfg.UI, router), uiLn, cfg.UI, uiLog)
	})

	return g.Wait()
}
