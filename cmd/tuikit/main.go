package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/odvcencio/tuikit/pkg/config"
	"github.com/odvcencio/tuikit/pkg/console"
	"github.com/odvcencio/tuikit/pkg/logging"
	"github.com/odvcencio/tuikit/pkg/palette"
	"github.com/odvcencio/tuikit/pkg/ui/backend/tcell"
	"github.com/odvcencio/tuikit/pkg/ui/runtime"
	"github.com/odvcencio/tuikit/pkg/ui/theme"
)

var version = "dev"

type cliOptions struct {
	configPath  string
	palette     string
	dumpPalette string
	force       bool
	showVersion bool
}

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	case errors.Is(err, runtime.ErrIncompatibleTerminal):
		// The terminal already printed its diagnostic.
	default:
		console.New().Error("%v", err)
	}
	os.Exit(exitCodeForError(err))
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("tuikit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to a config file (default: ~/.tuikit/config.yaml, ./.tuikit/config.yaml)")
	fs.StringVar(&opts.palette, "palette", "", "palette preset name or palette file (.yaml)")
	fs.StringVar(&opts.dumpPalette, "dump-palette", "", "print the resolved colors of a palette preset and exit")
	fs.BoolVar(&opts.force, "force", false, "run even when terminal detection fails")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, err
		}
		return opts, withExitCode(err, exitUsage)
	}
	if fs.NArg() > 0 {
		return opts, withExitCode(fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " ")), exitUsage)
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "tuikit %s\n", version)
		return nil
	}
	if opts.dumpPalette != "" {
		return dumpPalette(stdout, opts.dumpPalette)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if !isInteractiveTerminal() {
		return withExitCode(errors.New("tuikit needs an interactive terminal"), exitUsage)
	}

	logger, err := logging.NewLogger(cfg.LogDir(), logging.NewSessionID())
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer logger.Close()
	logger.SetMinLevel(cfg.LogLevel())

	pal, err := cfg.LoadPalette()
	if err != nil {
		return err
	}

	be, err := tcell.New()
	if err != nil {
		return fmt.Errorf("create terminal backend: %w", err)
	}
	termOpts := cfg.TerminalOptions()
	termOpts.Logger = logger
	termOpts.Diagnostics = stderr
	t := runtime.New(be, termOpts)
	buildDemo(t, pal, t.Quit)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		err := t.Run(gctx)
		if errors.Is(err, runtime.ErrIncompatibleTerminal) {
			return withExitCode(err, exitIncompatible)
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if addr := strings.TrimSpace(cfg.Metrics.Addr); addr != "" {
		serveMetrics(gctx, g, addr, logger)
	}

	if cfg.Palette.Watch {
		w, err := theme.NewWatcher(cfg.PaletteFile(), theme.WithLogger(logger))
		if err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
		defer w.Close()
		w.Subscribe(t.PostPalette)
		g.Go(func() error {
			if err := w.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

func loadConfig(opts cliOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if p := strings.TrimSpace(opts.palette); p != "" {
		if strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml") {
			cfg.Palette.File = p
		} else {
			cfg.Palette.File = ""
			cfg.Palette.Preset = p
			cfg.Palette.Watch = false
		}
	}
	if opts.force {
		cfg.Terminal.ForceIncompatibleTerminals = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func dumpPalette(out io.Writer, name string) error {
	p, err := palette.Preset(name)
	if err != nil {
		return withExitCode(err, exitUsage)
	}
	console.NewWithOutput(out).DumpPalette(name, p)
	return nil
}

func serveMetrics(ctx context.Context, g *errgroup.Group, addr string, logger *logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		logger.Info(logging.CategorySession, "metrics_listening", addr, nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

func isInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
