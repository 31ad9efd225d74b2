// Package app wires the demo server: route table, middleware stacks, and
// HTTP server lifecycle around the plug pipeline packages.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/btkostner/plug/pkg/config"
	"github.com/btkostner/plug/pkg/logger"
)

// App holds the demo server components and lifecycle.
type App struct {
	cfg config.Config
	srv *http.Server
}

// New builds an App from the loaded configuration.
func New(cfg config.Config) *App {
	return &App{cfg: cfg}
}

// Run starts the HTTP server and blocks until ctx is canceled or a fatal
// server error occurs. Shutdown drains in-flight exchanges for up to five
// seconds.
func (a *App) Run(ctx context.Context) error {
	a.srv = &http.Server{
		Addr:    a.cfg.Addr(),
		Handler: a.routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", a.cfg.Addr())
		if err := a.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.srv.Shutdown(shCtx); err != nil {
			logger.Warn("shutdown_incomplete", "error", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
