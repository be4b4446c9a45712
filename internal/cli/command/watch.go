package command

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/prefmirror/internal/infra/confloader"
	"github.com/yndnr/prefmirror/internal/infra/shutdown"
	"github.com/yndnr/prefmirror/internal/runstate"
)

const shutdownTimeout = 5 * time.Second

// WatchCommand returns the watch command.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Apply a YAML settings document now and on every change",
		ArgsUsage: "FILE",
		Action:    watchAction,
	}
}

func watchAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("watch requires exactly one FILE", 2)
	}
	path := c.Args().First()

	e, err := getEnv(c)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(cmdContext(c))
	defer cancel()

	if err := e.apply(ctx, path); err != nil {
		return err
	}

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(e.log.Slog()))
	if err != nil {
		return err
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return err
	}

	// Pending changes coalesce into one apply
	changed := make(chan struct{}, 1)
	w.OnChange(func(string) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	w.StartAsync()

	states, unsubscribe := e.cell.Subscribe()
	go func() {
		for s := range states {
			e.log.Info("run state changed", "state", s.String())
		}
	}()

	limiter := rate.NewLimiter(rate.Every(e.cfg.Watch.MinInterval), e.cfg.Watch.Burst)
	applied := make(chan struct{})
	go func() {
		defer close(applied)
		for {
			select {
			case <-ctx.Done():
				return
			case <-changed:
			}
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			if err := e.apply(ctx, path); err != nil {
				e.log.Error("apply failed", "file", path, "error", err)
			}
		}
	}()

	h := shutdown.NewHandler(shutdownTimeout)
	h.OnShutdown(func(context.Context) error {
		unsubscribe()
		return nil
	})
	h.OnShutdown(func(context.Context) error {
		e.cell.Broadcast(runstate.ShuttingDown)
		e.metrics.ObserveTransition(runstate.ShuttingDown.String())
		return nil
	})
	h.OnShutdown(func(hctx context.Context) error {
		cancel()
		select {
		case <-applied:
			return nil
		case <-hctx.Done():
			return hctx.Err()
		}
	})
	h.OnShutdown(func(context.Context) error {
		return w.Stop()
	})

	if addr := e.cfg.Metrics.Listen; addr != "" {
		srv := serveMetrics(e, addr)
		h.OnShutdown(srv.Shutdown)
	}

	e.log.Info("watching settings file", "file", path)
	return h.WaitContext(ctx)
}

// apply imports the file at path over the stored snapshot and saves it
// when anything changed.
func (e *env) apply(ctx context.Context, path string) error {
	current := e.mirror.Load(ctx)
	next := current.Clone()
	if err := applyFile(path, next); err != nil {
		return err
	}

	changes := current.Diff(next)
	if len(changes) == 0 {
		e.log.Debug("settings file unchanged", "file", path)
		return nil
	}
	if err := e.mirror.Save(ctx, next); err != nil {
		return err
	}
	e.log.Info("settings file applied", "file", path, "changes", len(changes))
	return nil
}

func serveMetrics(e *env, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.log.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	e.log.Info("serving metrics", "addr", addr)
	return srv
}
