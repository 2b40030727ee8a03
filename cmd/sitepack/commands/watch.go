package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitepack/internal/config"
	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
	"git.home.luguber.info/inful/sitepack/internal/logfields"
	"git.home.luguber.info/inful/sitepack/internal/metrics"
	"git.home.luguber.info/inful/sitepack/internal/pack"
	"git.home.luguber.info/inful/sitepack/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	ModeFlags   `embed:""`
	Format      string        `short:"f" help:"Output format (yaml|json)" default:"yaml"`
	Out         string        `short:"o" help:"Descriptor file rewritten on every change" type:"path" required:""`
	Debounce    time.Duration `help:"Quiet period before re-assembling" default:"300ms"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9464)"`
}

func (c *WatchCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, g, root)
}

func (c *WatchCmd) run(ctx context.Context, g *Global, root *CLI) error {
	mode, err := c.mode()
	if err != nil {
		return err
	}
	format, err := pack.ParseFormat(c.Format)
	if err != nil {
		return ferrors.ValidationError(fmt.Sprintf("--format: %v", err)).Build()
	}
	proj, err := loadProject(g, root)
	if err != nil {
		return err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if c.MetricsAddr != "" {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		srv, err := serveMetrics(c.MetricsAddr, reg, g.Logger)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		g.Logger.Info("Serving metrics", slog.String("addr", srv.Addr))
	}

	rebuild := func(cfg *config.Config) error {
		asm := pack.New(cfg, pack.WithLogger(g.Logger), pack.WithRecorder(recorder))
		d, err := asm.Assemble(mode, pack.RuntimeFromOS())
		if err != nil {
			return err
		}
		return writeDescriptor(d, format, c.Out, g.Out)
	}
	if err := rebuild(proj.cfg); err != nil {
		return err
	}

	w, err := watch.New(proj.cfg.Inputs(proj.path), func(context.Context) error {
		cfg, err := config.Load(proj.path)
		if err == nil {
			err = rebuild(cfg)
		}
		recorder.IncReload(metrics.Outcome(err))
		if err == nil {
			g.Logger.Info("Descriptor rewritten", logfields.Path(c.Out))
		}
		return err
	}, watch.WithDebounce(c.Debounce), watch.WithLogger(g.Logger))
	if err != nil {
		return ferrors.RuntimeError("cannot start watcher").WithCause(err).Build()
	}
	if err := w.Start(ctx); err != nil {
		return ferrors.RuntimeError("cannot start watcher").WithCause(err).Build()
	}

	<-ctx.Done()
	g.Logger.Info("Stopping watcher")
	return w.Stop()
}

func serveMetrics(addr string, reg *prom.Registry, log *slog.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, ferrors.RuntimeError("cannot listen for metrics").WithCause(err).
			WithContext("addr", addr).
			Build()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Addr: ln.Addr().String(), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server stopped", logfields.Error(err))
		}
	}()
	return srv, nil
}
