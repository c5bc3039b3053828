package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ufispace/onlp2go/internal/api"
	"github.com/ufispace/onlp2go/internal/configuration"
	"github.com/ufispace/onlp2go/internal/inventory"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/persistence"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/platforms"
	"github.com/ufispace/onlp2go/internal/publish"
	"github.com/ufispace/onlp2go/internal/state"
	"github.com/ufispace/onlp2go/internal/statistics"
	"github.com/ufispace/onlp2go/internal/ui"
)

const shutdownTimeout = 5 * time.Second

// LoadPlatform detects the board of the host and creates its drivers
func LoadPlatform(config *configuration.Configuration) (*onlp.Platform, error) {
	env := platform.NewEnv(config.EnvOptions())
	name, err := platform.Detect(env, config.Platform)
	if err != nil {
		return nil, err
	}
	return platforms.Load(name, env)
}

func RunDaemon() {
	if os.Geteuid() != 0 {
		ui.Fatal("Hardware access requires root permissions, please run onlp2go as root")
	}

	config := &configuration.CurrentConfig
	p, err := LoadPlatform(config)
	if err != nil {
		ui.Fatal("%v", err)
	}
	ui.Info("Detected platform %s", p.Name)
	if err := p.Init(); err != nil {
		ui.Fatal("Unable to initialize platform %s: %v", p.Name, err)
	}
	if err := inventory.ValidateTopology(p); err != nil {
		ui.Fatal("Invalid component topology: %v", err)
	}

	pers := persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize persistence: %v", err)
	}

	st := state.New(config.ThermalRollingWindowSize)
	var publisher SnapshotPublisher
	if config.Redis.Enabled {
		publisher = publish.New(config.Redis.Address, config.Redis.Key)
	}
	monitor := NewPlatformMonitor(p, st, pers, publisher, config)

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		// === platform monitoring
		g.Add(func() error {
			err := monitor.Run(ctx)
			ui.Info("Platform monitor stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Error monitoring platform: %v", err)
			}
			cancel()
		})
	}
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		statistics.RegisterAll(st)

		port := config.Statistics.Port
		if port <= 0 || port >= 65535 {
			port = 9000
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
		addServer(&g, ctx, "statistics", server)
	}
	if config.Api.Enabled {
		// === REST api
		rest := api.CreateRestService(st, pers, prometheus.DefaultRegisterer)
		addr := net.JoinHostPort(config.Api.Host, strconv.Itoa(config.Api.Port))
		server := &http.Server{Addr: addr, Handler: rest}
		addServer(&g, ctx, "api", server)
	}
	if config.Profiling.Enabled {
		// === pprof
		mux := http.NewServeMux()
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
		addr := net.JoinHostPort(config.Profiling.Host, strconv.Itoa(config.Profiling.Port))
		addServer(&g, ctx, "profiling", &http.Server{Addr: addr, Handler: mux})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()
	if denitErr := p.Denit(); denitErr != nil {
		ui.Warning("Error releasing platform: %v", denitErr)
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ui.Info("Done.")
	os.Exit(0)
}

// addServer runs server until ctx is cancelled
func addServer(g *run.Group, ctx context.Context, name string, server *http.Server) {
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, server.Addr)
		errs := make(chan error, 1)
		go func() {
			errs <- server.ListenAndServe()
		}()

		select {
		case err := <-errs:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("%s server: %w", name, err)
		case <-ctx.Done():
			ui.Info("Stopping %s server...", name)
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeoutCancel()
			return server.Shutdown(timeoutCtx)
		}
	}, func(err error) {
		if err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		} else {
			ui.Info("%s server stopped.", name)
		}
	})
}
