package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/xtalcheck/internal/cliconfig"
	"github.com/bft-labs/xtalcheck/pkg/log"
	"github.com/bft-labs/xtalcheck/pkg/xtal"
	"github.com/bft-labs/xtalcheck/pkg/xtalcheck"
	"github.com/bft-labs/xtalcheck/plugins/configwatcher"
)

const helpDescription = `
Check emulated board clocks against the catalog of crystal oscillators
that were actually manufactured.

Frequencies can be given as arguments (14318181, 3.579545MHz, 32.768kHz)
or as [[clock]] tables in a clock file. Unknown values are reported with
the nearest catalog entries on either side.
`

var exampleUsage = strings.TrimSpace(`
  xtalcheck 14318181 3.579545MHz
  xtalcheck --clocks boards/pacman.toml --context pacman
  xtalcheck --clocks boards/pacman.toml --watch --metrics-addr :9102
  xtalcheck list --min 1MHz --max 4MHz
`)

// errCheckFailed makes the process exit non-zero without logging the
// report a second time.
var errCheckFailed = errors.New("unknown crystal values")

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	zl := cliconfig.Logger(zerolog.InfoLevel)

	root := &cobra.Command{
		Use:           "xtalcheck [FREQ...]",
		Short:         "Check clock frequencies against known crystal oscillators",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment overrides the file; flags override both.
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			level, _ := log.ParseLevel(cfg.LogLevel)
			zl = zl.Level(level)
			zl.Debug().Interface("config", cfg).Msg("configuration")

			clocks, err := argClocks(args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, clocks, log.NewZerologAdapterWithLogger(zl))
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.xtalcheck/config.toml)")
	root.Flags().StringVar(&cfg.ClockFile, "clocks", cfg.ClockFile, "TOML file of [[clock]] tables to check")
	root.Flags().StringVar(&cfg.Context, "context", cfg.Context, "context prefix for every clock, e.g. the board name")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "keep running and re-check when the clock file changes")
	root.Flags().BoolVar(&cfg.FailFast, "fail-fast", cfg.FailFast, "stop at the first unknown crystal")
	root.Flags().DurationVar(&cfg.DebounceDelay, "debounce", cfg.DebounceDelay, "delay before re-checking a changed clock file")
	root.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address in watch mode")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	root.AddCommand(listCommand())

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			zl.Error().Err(err).Msg("xtalcheck")
		}
		os.Exit(1)
	}
}

// argClocks turns positional frequencies into clocks named after the argument.
func argClocks(args []string) ([]xtalcheck.Clock, error) {
	clocks := make([]xtalcheck.Clock, 0, len(args))
	for _, arg := range args {
		hz, err := xtal.ParseFrequency(arg)
		if err != nil {
			return nil, err
		}
		clocks = append(clocks, xtalcheck.Clock{Name: arg, Frequency: hz})
	}
	return clocks, nil
}

func run(ctx context.Context, cfg cliconfig.Config, clocks []xtalcheck.Clock, logger log.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// --fail-fast is applied by the runner through Config.FailFast.
	validator := xtal.New(xtal.Known(),
		xtal.WithLogger(logger),
		xtal.WithMetrics(xtal.NewMetrics(prometheus.DefaultRegisterer)),
	)

	libCfg := xtalcheck.Config{
		ClockFile: cfg.ClockFile,
		Clocks:    clocks,
		Context:   cfg.Context,
		FailFast:  cfg.FailFast,
	}

	if !cfg.Watch {
		return checkOnce(ctx, libCfg, os.Stdout,
			xtalcheck.WithLogger(logger),
			xtalcheck.WithValidator(validator),
		)
	}

	watcherCfg := configwatcher.DefaultConfig()
	watcherCfg.DebounceDelay = cfg.DebounceDelay

	r, err := xtalcheck.New(libCfg,
		xtalcheck.WithLogger(logger),
		xtalcheck.WithValidator(validator),
		xtalcheck.WithEventHandler(reportPrinter{logger: logger}),
		configwatcher.WithConfigWatcher(watcherCfg),
	)
	if err != nil {
		return fmt.Errorf("create runner: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var srv *http.Server
	if cfg.MetricsAddr != "" {
		srv = serveMetrics(cfg.MetricsAddr, logger)
	}

	if err := r.Start(ctx); err != nil {
		return fmt.Errorf("start runner: %w", err)
	}

	// A crash, e.g. an unreadable clock file on the first check, ends the run.
	doneCh := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if r.Status().Terminal() {
					close(doneCh)
					return
				}
			}
		}
	}()

	crashed := false
	select {
	case <-sigCh:
		logger.Info("received signal, stopping...")
	case <-doneCh:
		// Only a crash reaches a terminal state before Stop.
		crashed = true
	}

	if srv != nil {
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown failed", log.Err(err))
		}
	}

	if crashed {
		return fmt.Errorf("runner %s", r.Status())
	}
	if err := r.Stop(); err != nil {
		return fmt.Errorf("stop runner: %w", err)
	}
	return nil
}

// checkOnce runs a single check and prints the report to w.
// Returns errCheckFailed when any clock is unknown.
func checkOnce(ctx context.Context, cfg xtalcheck.Config, w io.Writer, opts ...xtalcheck.Option) error {
	r, err := xtalcheck.New(cfg, opts...)
	if err != nil {
		return err
	}
	report, err := r.Check(ctx)
	if err != nil {
		return err
	}
	if _, err := report.WriteTo(w); err != nil {
		return err
	}
	if !report.OK() {
		return errCheckFailed
	}
	return nil
}

func serveMetrics(addr string, logger log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("serving metrics", log.String("metrics_addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", log.Err(err))
		}
	}()
	return srv
}

// reportPrinter writes every report to stdout in watch mode.
type reportPrinter struct {
	logger log.Logger
}

func (p reportPrinter) OnStateChange(ev xtalcheck.StateChangeEvent) {
	p.logger.Debug("state change",
		log.String("from", ev.Previous.String()),
		log.String("to", ev.Current.String()),
		log.String("reason", ev.Reason),
	)
}

func (p reportPrinter) OnReport(r xtalcheck.Report) {
	if _, err := r.WriteTo(os.Stdout); err != nil {
		p.logger.Warn("failed to print report", log.Err(err))
	}
}

func listCommand() *cobra.Command {
	var minArg, maxArg string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the known crystal frequencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := xtal.Known()
			lo, hi := catalog.Min(), catalog.Max()
			if minArg != "" {
				v, err := xtal.ParseFrequency(minArg)
				if err != nil {
					return fmt.Errorf("--min: %w", err)
				}
				lo = v
			}
			if maxArg != "" {
				v, err := xtal.ParseFrequency(maxArg)
				if err != nil {
					return fmt.Errorf("--max: %w", err)
				}
				hi = v
			}
			out := cmd.OutOrStdout()
			for _, hz := range catalog.Range(lo, hi) {
				fmt.Fprintln(out, xtal.FormatHz(hz))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&minArg, "min", "", "lowest frequency to print")
	cmd.Flags().StringVar(&maxArg, "max", "", "highest frequency to print")
	return cmd
}
