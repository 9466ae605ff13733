package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/quackbattle/internal/config"
	"github.com/cory-johannsen/quackbattle/internal/game/battle"
	"github.com/cory-johannsen/quackbattle/internal/game/catalog"
	"github.com/cory-johannsen/quackbattle/internal/game/dice"
	"github.com/cory-johannsen/quackbattle/internal/observability"
	"github.com/cory-johannsen/quackbattle/internal/scripting"
	"github.com/cory-johannsen/quackbattle/internal/storage/postgres"
)

// app holds everything a subcommand needs, built once from configuration.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	tables   *catalog.Tables
	scripts  *scripting.Manager
	dice     dice.Source
	pool     *postgres.Pool
	repo     *postgres.BattleRepository
	recorder battle.Recorder
	shutdown func(context.Context) error
}

// defaultPlayLog receives logs during play when logging.file is unset.
const defaultPlayLog = "battlesim.log"

// newApp loads configuration, content and AI scripts. The database is only
// opened when withDB is set. fileLogs forces logging to a file so the
// terminal stays free for the battle screen.
func newApp(ctx context.Context, withDB, fileLogs bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if fileLogs && cfg.Logging.File == "" {
		cfg.Logging.File = defaultPlayLog
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger}

	a.shutdown, err = observability.SetupTracing(ctx, cfg.Telemetry)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
		a.shutdown = func(context.Context) error { return nil }
	}

	start := time.Now()
	a.tables, err = catalog.LoadDir(cfg.Content.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	logger.Info("content loaded",
		zap.String("dir", cfg.Content.Dir),
		zap.Int("skills", a.tables.NumSkills()),
		zap.Int("consumables", a.tables.NumConsumables()),
		zap.Int("enemies", len(a.tables.Enemies())),
		zap.Duration("elapsed", time.Since(start)),
	)

	a.dice = dice.NewLoggedSource(dice.NewCryptoSource(), logger)
	a.scripts = scripting.NewManager(a.dice, logger, cfg.Scripting.InstructionLimit)
	if cfg.Scripting.Dir != "" {
		if err := a.scripts.LoadDir(cfg.Scripting.Dir); err != nil {
			return nil, fmt.Errorf("loading AI scripts: %w", err)
		}
	}

	if withDB {
		a.pool, err = postgres.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		a.repo = postgres.NewBattleRepository(a.pool.DB(), logger)
		a.recorder = a.repo
	}
	return a, nil
}

func (a *app) close(ctx context.Context) {
	if a.scripts != nil {
		a.scripts.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if err := a.shutdown(ctx); err != nil {
		a.logger.Warn("shutting down tracing", zap.Error(err))
	}
	_ = a.logger.Sync()
}
