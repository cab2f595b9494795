package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	site "github.com/macintoshUserchg/tnsir-km-rempo-sub001"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/database"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/di"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/logging"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/internal/migrations"
	"github.com/macintoshUserchg/tnsir-km-rempo-sub001/pkg/interfaces"
)

// Options captures configuration for site CLI bootstraps.
type Options struct {
	ConfigPath string
	// Memory skips the database and keeps every repository in memory.
	Memory bool
	// Migrate applies the schema after connecting.
	Migrate        bool
	LoggerProvider interfaces.LoggerProvider
}

// Runtime wraps the site module together with the handles the commands
// need to release.
type Runtime struct {
	Config site.Config
	DB     *bun.DB
	Module *site.Module
	Logger interfaces.Logger
}

// Build loads the config file, connects storage and constructs the module.
func Build(ctx context.Context, opts Options) (*Runtime, error) {
	cfg, err := site.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return BuildWithConfig(ctx, cfg, opts)
}

// BuildWithConfig is Build for a config already in memory.
func BuildWithConfig(ctx context.Context, cfg site.Config, opts Options) (*Runtime, error) {
	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	var db *bun.DB
	if !opts.Memory {
		opened, err := database.Open(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
		db = opened
		diOpts = append(diOpts, di.WithBunDB(db))
	}

	module, err := site.New(cfg, diOpts...)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("initialise site module: %w", err)
	}
	logger := logging.ModuleLogger(module.Container().LoggerProvider(), "site.cli")

	if db != nil && opts.Migrate {
		if err := migrations.Apply(ctx, db, logger); err != nil {
			closeDB(db)
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
	}

	return &Runtime{
		Config: cfg,
		DB:     db,
		Module: module,
		Logger: logger,
	}, nil
}

// Close releases the database handle when one was opened.
func (r *Runtime) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// RequireDB reports an error for commands that cannot run in memory mode.
func (r *Runtime) RequireDB() (*bun.DB, error) {
	if r == nil || r.DB == nil {
		return nil, ErrDatabaseRequired
	}
	return r.DB, nil
}

var ErrDatabaseRequired = errors.New("bootstrap: command requires a database connection")

func closeDB(db *bun.DB) {
	if db != nil {
		_ = db.Close()
	}
}
