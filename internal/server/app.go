// Package server initializes and runs the document service: it opens the
// backing collection file, wires the HTTP API and the assistant proxy, and
// handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gaetanosm/lifetrack/internal/logging"
	"github.com/gaetanosm/lifetrack/internal/server/assistant"
	"github.com/gaetanosm/lifetrack/internal/server/config"
	"github.com/gaetanosm/lifetrack/internal/server/httpapi"
	"github.com/gaetanosm/lifetrack/internal/server/store"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config config.Config
	logger logging.Logger
	srv    *httpapi.Server
}

func NewApp(cfg config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout)

	docs, err := store.OpenFileStore(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	mux := http.NewServeMux()
	httpapi.NewRecordsHandler(docs, logger).Register(mux)
	assistant.NewProxy(cfg.AssistantEndpoint, cfg.AssistantAPIKey, cfg.AssistantTimeout, logger).Register(mux)

	handler := httpapi.CORS(cfg.CORSOrigins, httpapi.Logging(logger, mux))
	srv := httpapi.NewServer(cfg.Addr, handler)

	return &App{config: cfg, logger: logger, srv: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or an OS signal arrives, then shuts the
// listener down gracefully.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting document service", "addr", app.config.Addr, "file", app.config.DataFile)

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			app.logger.Error(ctx, "server stopped", "error", err)
		}
		return
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.srv.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}
	app.logger.Info(ctx, "server stopped")
}
