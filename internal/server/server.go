package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/intelliallergen/intelliallergen/internal/config"
)

// New builds an http.Server for handler from cfg.
func New(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// Run serves on ln until ctx is done, then shuts srv down gracefully.
func Run(ctx context.Context, srv *http.Server, ln net.Listener, cfg config.ServerConfig, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", ln.Addr(), err)
	case <-ctx.Done():
	}

	log.Info("shutting down server...", "address", ln.Addr().String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown %s: %w", ln.Addr(), err)
	}
	log.Info("server stopped gracefully", "address", ln.Addr().String())
	return nil
}

// ListenAndRun listens on cfg's address and calls Run.
func ListenAndRun(ctx context.Context, cfg config.ServerConfig, handler http.Handler, log *slog.Logger) error {
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr(), err)
	}
	return Run(ctx, New(cfg, handler), ln, cfg, log)
}
