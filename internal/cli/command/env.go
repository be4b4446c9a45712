package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/prefmirror/internal/config"
	"github.com/yndnr/prefmirror/internal/infra/confloader"
	"github.com/yndnr/prefmirror/internal/runstate"
	"github.com/yndnr/prefmirror/internal/staging"
	"github.com/yndnr/prefmirror/internal/storage"
	"github.com/yndnr/prefmirror/internal/storage/memory"
	"github.com/yndnr/prefmirror/internal/telemetry/logger"
	"github.com/yndnr/prefmirror/internal/telemetry/metric"
)

// Metadata keys.
const (
	envKey    = "env"
	engineKey = "engine"
)

// env is the state shared by one CLI run. It is built on first use so
// commands that never touch the store never open it.
type env struct {
	cfg     *config.Config
	log     logger.Logger
	engine  storage.Engine
	badger  *storage.BadgerEngine
	owned   bool
	cell    *runstate.Cell
	metrics *metric.Registry
	mirror  *staging.Mirror
}

// getEnv returns the run environment, opening the store on first call.
//
// An engine placed in App.Metadata["engine"] is used instead of opening
// one and is left open on exit.
func getEnv(c *cli.Context) (*env, error) {
	if e, ok := c.App.Metadata[envKey].(*env); ok {
		return e, nil
	}

	cfg, err := loadConfig(ParseGlobalFlags(c))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Output:    c.App.ErrWriter,
		AddSource: false,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	e := &env{
		cfg:     cfg,
		log:     log,
		metrics: metric.NewRegistry(),
		cell:    runstate.NewCell(runstate.Initializing),
	}

	if injected, ok := c.App.Metadata[engineKey].(storage.Engine); ok {
		e.engine = injected
	} else if err := e.openStore(); err != nil {
		return nil, err
	}

	e.mirror = staging.NewMirror(e.engine, e.cell,
		staging.WithMetrics(e.metrics),
		staging.WithLogger(log),
	)

	// The persisted offline flag decides the starting run state
	initial := runstate.Online
	if e.mirror.Load(cmdContext(c)).Offline {
		initial = runstate.Offline
	}
	e.cell.Broadcast(initial)

	log.Debug("environment ready",
		"engine", cfg.Storage.Engine,
		"data_dir", cfg.Storage.DataDir,
		"run_state", initial.String())

	c.App.Metadata[envKey] = e
	return e, nil
}

func loadConfig(flags *GlobalFlags) (*config.Config, error) {
	cfg := config.Default()

	loader := confloader.NewLoader(
		confloader.WithConfigFile(flags.Config),
		confloader.WithOverrides(flags.overrides()),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (e *env) openStore() error {
	switch e.cfg.Storage.Engine {
	case "memory":
		e.engine = memory.New()
	default:
		engine, err := storage.NewBadgerEngine(e.cfg.Storage.KVConfig(), e.log.Slog())
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		engine.RegisterMetrics(e.metrics.Registerer())
		e.engine = engine
		e.badger = engine
	}
	e.owned = true
	return nil
}

// closeEnv flushes metrics and closes an engine opened by getEnv.
func closeEnv(c *cli.Context) error {
	e, ok := c.App.Metadata[envKey].(*env)
	if !ok {
		return nil
	}
	delete(c.App.Metadata, envKey)

	var firstErr error
	if e.badger != nil {
		e.badger.UpdateMetrics()
	}
	if path := e.cfg.Metrics.Textfile; path != "" {
		if err := e.metrics.WriteTextfile(path); err != nil {
			firstErr = fmt.Errorf("write metrics: %w", err)
		}
	}
	if e.owned {
		if err := e.engine.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close store: %w", err)
		}
	}
	return firstErr
}

// cmdContext returns the command context, never nil.
func cmdContext(c *cli.Context) context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}
