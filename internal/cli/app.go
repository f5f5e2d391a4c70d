// Package cli wires the application together for command-line use: config,
// logging, the profile database, and the font subsystem.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/substyle/substyle/internal/domain/repository"
	"github.com/substyle/substyle/internal/fonts"
	"github.com/substyle/substyle/internal/infrastructure/config"
	"github.com/substyle/substyle/internal/infrastructure/fontface"
	"github.com/substyle/substyle/internal/infrastructure/hostfonts"
	"github.com/substyle/substyle/internal/infrastructure/persistence/sqlite"
	"github.com/substyle/substyle/internal/infrastructure/webfonts"
	"github.com/substyle/substyle/internal/logging"
)

// App holds the wired application services.
type App struct {
	Config   *config.Config
	Manager  *config.Manager
	Logger   zerolog.Logger
	Catalog  *fonts.Catalog
	Loader   *fonts.Loader
	Registry *fontface.Registry
	Profiles repository.StyleProfileRepository

	db *sql.DB
}

// NewApp loads configuration and constructs the application services.
func NewApp() (*App, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	if err := manager.Load(); err != nil {
		return nil, err
	}
	cfg := manager.Get()

	logger := buildLogger(cfg)
	ctx := logging.WithContext(context.Background(), logger)

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open profile database: %w", err)
	}

	httpClient := &http.Client{}
	if cfg.Fonts.RequestTimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(cfg.Fonts.RequestTimeoutSeconds) * time.Second
	}

	catalog := fonts.NewCatalog()
	registry := fontface.NewRegistry(httpClient)
	fetcher := webfonts.NewFetcher(cfg.Fonts.StylesheetBaseURL, httpClient)
	loader := fonts.NewLoader(catalog, fetcher, registry)

	// Host font enumeration is best-effort; a host without fontconfig
	// simply has no system entries in the catalog.
	if err := catalog.RegisterSystemFonts(ctx, hostfonts.NewEnumerator()); err != nil {
		logger.Warn().Err(err).Msg("system font enumeration failed")
	}

	// Live reload: config file edits while a command runs (transcription can
	// run for a while) re-level the logs and repoint the stylesheet service.
	manager.OnChange(func(next *config.Config) {
		fetcher.SetBaseURL(next.Fonts.StylesheetBaseURL)
		if level, err := zerolog.ParseLevel(next.Logging.Level); err == nil && next.Logging.Level != "" {
			zerolog.SetGlobalLevel(level)
		}
	})
	manager.Watch(ctx)

	return &App{
		Config:   cfg,
		Manager:  manager,
		Logger:   logger,
		Catalog:  catalog,
		Loader:   loader,
		Registry: registry,
		Profiles: sqlite.NewStyleProfileRepository(db),
		db:       db,
	}, nil
}

// Context returns a base context carrying the app logger.
func (a *App) Context() context.Context {
	return logging.WithContext(context.Background(), a.Logger)
}

// Close releases the app's resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// buildLogger applies the configured level through zerolog's global level so
// a config reload can raise or lower verbosity on the live logger.
func buildLogger(cfg *config.Config) zerolog.Logger {
	logCfg := logging.DefaultConfig()
	logCfg.Level = zerolog.TraceLevel

	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil && cfg.Logging.Level != "" {
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format != "" {
		logCfg.Format = cfg.Logging.Format
	}
	return logging.New(logCfg)
}
