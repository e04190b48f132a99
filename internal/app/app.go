// Package app wires the index components together. Both the HTTP server and
// the Lambda entry point build one App at start-up and reuse it for every
// request.
package app

import (
	"os"

	"github.com/damacus/bucket-index/internal/config"
	"github.com/damacus/bucket-index/internal/handlers"
	"github.com/damacus/bucket-index/internal/logger"
	"github.com/damacus/bucket-index/internal/renderer"
	"github.com/damacus/bucket-index/internal/services"
)

type App struct {
	Config  *config.Config
	Log     *logger.Logger
	Handler *handlers.IndexHandler
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg config.LogConfig) *logger.Logger {
	return logger.New(&logger.Config{
		Level:  cfg.Level,
		Format: cfg.Format,
		Output: os.Stdout,
	})
}

// New connects to the configured store and builds the App.
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	lister, err := services.NewObjectLister(cfg.Storage)
	if err != nil {
		return nil, err
	}
	return NewWithLister(cfg, lister, log), nil
}

// NewWithLister builds the App around an existing lister.
func NewWithLister(cfg *config.Config, lister services.ObjectLister, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}

	listing := services.NewListingService(lister, services.ListingOptions{
		Bucket:  cfg.Storage.Bucket,
		Region:  cfg.Storage.Region,
		Root:    cfg.Index.Root,
		MaxKeys: cfg.Storage.MaxKeys,
	}, log)

	log.With().
		Str("provider", cfg.Storage.Provider).
		Str("bucket", cfg.Storage.Bucket).
		Str("root", cfg.Index.Root).
		Logger().
		Info("bucket index ready")

	return &App{
		Config:  cfg,
		Log:     log,
		Handler: handlers.NewIndexHandler(listing, renderer.NewDirectoryRenderer(), log),
	}
}
