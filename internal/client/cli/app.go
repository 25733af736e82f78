// Package cli implements the terminal client: wiring of the cache database,
// remote store, and services, plus a small command loop.
package cli

import (
	"bufio"
	"context"
	"os"

	_ "modernc.org/sqlite"

	"github.com/gaetanosm/lifetrack/internal/client/cache"
	"github.com/gaetanosm/lifetrack/internal/client/config"
	"github.com/gaetanosm/lifetrack/internal/client/installprompt"
	"github.com/gaetanosm/lifetrack/internal/client/remote"
	"github.com/gaetanosm/lifetrack/internal/client/services"
	"github.com/gaetanosm/lifetrack/internal/client/session"
	"github.com/gaetanosm/lifetrack/internal/logging"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	syncService services.SyncService
	sessions    *session.Store
	prompts     *installprompt.Slot
	logger      logging.Logger
	reader      *bufio.Reader
	current     *session.Session
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewText(os.Stderr)

	db, err := cache.Open(ctx, c.CacheDSN)
	if err != nil {
		return nil, err
	}

	cacheRepo := cache.NewSQLiteRepository(db)
	metaRepo := cache.NewSQLiteMetadataRepository(db)
	remoteStore := remote.NewHTTPStore(c.EndpointURL)

	sessions := session.NewStore(metaRepo)
	tokens := session.NewManager(c.SessionSecret, c.SessionTTL)
	syncService := services.NewSyncService(remoteStore, cacheRepo, logger)
	authService := services.NewAuthService(remoteStore, cacheRepo, sessions, tokens, syncService, logger)

	return &App{
		config:      c,
		authService: authService,
		syncService: syncService,
		sessions:    sessions,
		prompts:     installprompt.NewSlot(),
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any saved session (reconciling pending records on the way)
// and enters the command loop. One install offer is queued at startup; the
// install command consumes it.
func (a *App) Run(ctx context.Context) error {
	a.prompts.Offer(installprompt.Event{
		Platforms: []string{"cli"},
		UserAgent: "lifetrack-cli",
	})

	if sess, err := a.authService.CheckSession(ctx); err == nil {
		a.current = sess
		a.printf("Welcome back, %s\n", sess.DisplayName)
		if sess.Pending {
			a.printf("Your profile is saved locally and will sync when the server is reachable.\n")
		}
	}
	return a.loop(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.current != nil
}
