// Command segtimer drives a 4-digit 7-segment countdown display from HTTP
// requests.
//
// It offers:
//   - GET /timerStatus?a=start|stop and GET /timerInterval?seconds=N
//   - read-only JSON endpoints under /api/v1 (health, timer, runs)
//   - an optional local console and mDNS advertisement
//
// Usage:
//
//	segtimer [flags]
//
// Flags:
//
//	-config string     YAML configuration file
//	-listen string     HTTP listen address (default "0.0.0.0:80")
//	-display string    Display driver: ht16k33, console, none
//	-seconds int       Countdown duration in seconds
//	-log-level string  Log level: debug, info, warn, error
//	-events string     Event log file (CBOR)
//	-db string         Run history database (SQLite)
//	-mdns              Advertise the timer over mDNS
//	-interactive       Start the interactive console
//	-version           Show version information
//
// Examples:
//
//	# Run on the Raspberry Pi with the HT16K33 backpack at 0x70
//	segtimer
//
//	# Develop without hardware
//	segtimer -display console -listen 127.0.0.1:8080 -interactive
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/segtimer/segtimer-go/cmd/segtimer/interactive"
	"github.com/segtimer/segtimer-go/pkg/config"
	"github.com/segtimer/segtimer-go/pkg/control"
	"github.com/segtimer/segtimer-go/pkg/discovery"
	"github.com/segtimer/segtimer-go/pkg/display"
	"github.com/segtimer/segtimer-go/pkg/display/ht16k33"
	"github.com/segtimer/segtimer-go/pkg/eventlog"
	"github.com/segtimer/segtimer-go/pkg/history"
	"github.com/segtimer/segtimer-go/pkg/render"
	"github.com/segtimer/segtimer-go/pkg/timer"
	"github.com/segtimer/segtimer-go/pkg/version"
)

var (
	configPath  = flag.String("config", "", "YAML configuration file")
	listen      = flag.String("listen", config.DefaultListen, "HTTP listen address")
	driver      = flag.String("display", config.DriverHT16K33, "Display driver: ht16k33, console, none")
	seconds     = flag.Int("seconds", timer.DefaultSeconds, "Countdown duration in seconds")
	logLevel    = flag.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	eventsPath  = flag.String("events", "", "Event log file (CBOR)")
	dbPath      = flag.String("db", "", "Run history database (SQLite)")
	mdns        = flag.Bool("mdns", false, "Advertise the timer over mDNS")
	interact    = flag.Bool("interactive", false, "Start the interactive console")
	showVersion = flag.Bool("version", false, "Show version information")
)

// shutdownTimeout bounds the HTTP drain on exit.
const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("segtimer"))
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	applyFlags(&cfg)
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := setupLogging(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Error("segtimer failed", "error", err)
		return 1
	}
	return 0
}

// applyFlags copies explicitly set flags over the file configuration.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.Listen = *listen
		case "display":
			cfg.Display.Driver = *driver
		case "seconds":
			cfg.DefaultSeconds = *seconds
		case "log-level":
			cfg.Log.Level = *logLevel
		case "events":
			cfg.Log.Events = *eventsPath
		case "db":
			cfg.History.Path = *dbPath
		case "mdns":
			cfg.Discovery.Enabled = *mdns
		}
	})
}

// setupLogging builds the process logger. The level was checked by Validate.
func setupLogging(lc config.LogConfig, w io.Writer) *slog.Logger {
	level, _ := lc.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if level <= slog.LevelDebug {
		opts.AddSource = true
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// components are the long-lived parts of the service.
type components struct {
	state   *timer.State
	display display.Display
	ctl     *control.Controller
	loop    *render.Loop
	store   *history.Store
	closers []io.Closer
}

func (c *components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i].Close()
	}
}

func build(cfg config.Config, logger *slog.Logger) (*components, error) {
	c := &components{}

	loggers := []eventlog.Logger{eventlog.NewSlogAdapter(logger)}
	if cfg.Log.Events != "" {
		fl, err := eventlog.NewFileLogger(cfg.Log.Events)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("event log: %w", err)
		}
		fl.OnError(func(err error) {
			logger.Warn("event dropped", "error", err)
		})
		c.closers = append(c.closers, fl)
		loggers = append(loggers, fl)
	}
	if cfg.History.Path != "" {
		store, err := history.NewStore(cfg.History.Path, logger)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("history: %w", err)
		}
		c.closers = append(c.closers, store)
		c.store = store
		loggers = append(loggers, store)
	}
	events := eventlog.NewMultiLogger(loggers...)

	state, err := timer.NewWithConfig(timer.Config{DefaultSeconds: cfg.DefaultSeconds, EventLogger: events})
	if err != nil {
		c.Close()
		return nil, err
	}
	if cfg.DefaultSeconds == 0 {
		// Zero in timer.Config means the built-in default.
		if err := state.ConfigureDefault(context.Background(), 0); err != nil {
			c.Close()
			return nil, err
		}
	}
	c.state = state

	d, err := openDisplay(cfg.Display, c)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("display: %w", err)
	}
	c.display = d

	c.ctl = control.New(control.Config{State: state, Display: d, Logger: logger})
	c.loop = render.New(state, d, render.Config{Logger: logger, EventLogger: events, TraceWrites: cfg.Log.TraceDisplay})
	return c, nil
}

func openDisplay(dc config.DisplayConfig, c *components) (display.Display, error) {
	var d display.Display
	switch dc.Driver {
	case config.DriverHT16K33:
		dev, err := ht16k33.Open(dc.Bus, dc.Address)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, dev)
		d = dev
	case config.DriverConsole:
		d = display.NewConsole(os.Stdout)
	default:
		d = display.Noop{}
	}

	if err := display.Init(d, dc.Brightness); err != nil {
		return nil, err
	}
	if rate := display.BlinkRate(dc.BlinkRate); rate != display.BlinkOff {
		if err := d.SetBlinkRate(rate); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	c, err := build(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	srv := NewServer(ServerConfig{Listen: cfg.Listen, Version: version.Build}, c.ctl, c.loop, c.store, logger)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "listen", cfg.Listen)
		return srv.ListenAndServe()
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	g.Go(func() error {
		err := c.loop.Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if cfg.Discovery.Enabled {
		announcer, err := startDiscovery(ctx, cfg, c.state, logger)
		if err != nil {
			logger.Warn("mDNS advertisement disabled", "error", err)
		} else {
			defer announcer.Stop()
		}
	}

	if *interact {
		console, err := interactive.New(c.ctl, c.store)
		if err != nil {
			return err
		}
		g.Go(func() error {
			if err := console.Run(ctx); err != nil {
				return err
			}
			// Quitting the console stops the service.
			return errConsoleExit
		})
	}

	logger.Info("segtimer started",
		"version", version.Build,
		"display", cfg.Display.Driver,
		"default_seconds", c.state.DefaultSeconds())

	err = g.Wait()
	logger.Info("segtimer stopped")
	if errors.Is(err, errConsoleExit) {
		return nil
	}
	return err
}

var errConsoleExit = errors.New("console exited")

func startDiscovery(ctx context.Context, cfg config.Config, state *timer.State, logger *slog.Logger) (*discovery.Announcer, error) {
	port, err := listenPort(cfg.Listen)
	if err != nil {
		return nil, err
	}

	adv := discovery.NewMDNSAdvertiser(discovery.AdvertiserConfig{
		Interface: cfg.Discovery.Interface,
		TTL:       discovery.DefaultAdvertiserConfig().TTL,
	})
	announcer := discovery.NewAnnouncer(adv, discovery.ServiceInfo{
		Instance:     cfg.Discovery.Instance,
		Port:         port,
		Version:      version.Current,
		StatusPath:   PathTimerStatus,
		IntervalPath: PathTimerInterval,
		State:        state.Phase().String(),
	}, logger)

	if err := announcer.Start(ctx); err != nil {
		return nil, err
	}
	state.OnStateChange(func(_, newPhase timer.Phase) {
		announcer.SetState(newPhase.String())
	})
	return announcer, nil
}

func listenPort(addr string) (uint16, error) {
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(p, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("listen port %q: %w", p, err)
	}
	return uint16(n), nil
}
