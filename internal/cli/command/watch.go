package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/bookcfg-go/internal/bookconf"
	"github.com/yndnr/bookcfg-go/internal/infra/shutdown"
	"github.com/yndnr/bookcfg-go/internal/server/httpserver"
	"github.com/yndnr/bookcfg-go/internal/telemetry/logger"
	"github.com/yndnr/bookcfg-go/internal/telemetry/metric"
)

// WatchCommand returns the watch command.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Reload and re-validate a configuration file on every change",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve /metrics, /health, /ready and /config on this address",
			},
			&cli.DurationFlag{
				Name:  "min-interval",
				Usage: "Minimum time between two reloads",
				Value: bookconf.DefaultMinInterval,
			},
			&cli.DurationFlag{
				Name:  "shutdown-timeout",
				Usage: "Time allowed for the status server to drain",
				Value: 10 * time.Second,
			},
		},
		Action: watchAction,
	}
}

func watchAction(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}
	log := GetLogger(c)
	reg := metric.Global()
	report := &reporter{w: c.App.Writer}

	reloader := bookconf.NewReloader(path, bookconf.ReloaderConfig{
		MinInterval: c.Duration("min-interval"),
		OnReload:    report.reload,
		Logger:      log,
		Metrics:     reg,
	}, loadOptions(c)...)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	shutdownHandler := shutdown.NewHandler(c.Duration("shutdown-timeout"), shutdown.WithLogger(log))
	shutdownHandler.OnShutdown("watcher", func(context.Context) error {
		cancel()
		return nil
	})

	if addr := c.String("metrics-addr"); addr != "" {
		srv, err := startStatusServer(addr, reloader, reg, log, shutdownHandler)
		if err != nil {
			return err
		}
		shutdownHandler.OnShutdown("status server", srv.Shutdown)
	}

	runErr := make(chan error, 1)
	go func() {
		runErr <- reloader.Run(ctx)
		shutdownHandler.Trigger()
	}()

	log.Info("watching configuration", "file", path, "min_interval", c.Duration("min-interval"))
	if err := shutdownHandler.Wait(c.Context); err != nil {
		return err
	}
	return <-runErr
}

// startStatusServer binds addr before returning so that a busy port is
// reported as a command error.
func startStatusServer(addr string, src httpserver.Source, reg *metric.Registry, log logger.Logger, h *shutdown.Handler) (*httpserver.Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := httpserver.New(addr, httpserver.NewRouter(&httpserver.RouterConfig{
		Source:  src,
		Metrics: reg,
		Logger:  logger.Slog(log),
	}))

	go func() {
		log.Info("status server listening", "addr", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("status server error", "error", err)
			h.Trigger()
		}
	}()
	return srv, nil
}

// reporter prints one line per reload outcome.
type reporter struct {
	mu sync.Mutex
	w  io.Writer
}

func (r *reporter) reload(book *bookconf.Book, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		fmt.Fprintf(r.w, "✗ %v\n", err)
		return
	}
	fmt.Fprintf(r.w, "✓ %s loaded (fingerprint %016x, %d warnings)\n",
		book.Path, book.Fingerprint(), len(book.Warnings))
	for _, w := range book.Warnings {
		fmt.Fprintf(r.w, "warning: %s\n", w)
	}
}
