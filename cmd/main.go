package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	app "github.com/okian/talentscope/internal/app"
	"github.com/okian/talentscope/internal/config"
	"github.com/okian/talentscope/pkg/logger"
	"github.com/okian/talentscope/pkg/metrics"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1) //nolint:gocritic // exitAfterDefer: stop is called explicitly above
	}
}

// cli carries state shared by every subcommand.
type cli struct {
	configPath  string
	logLevel    string
	dumpMetrics bool

	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "talentscope",
		Short:         "Passion and talent analysis for children's game sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return c.teardown(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv(config.EnvConfig), "YAML config file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level override: debug|info|warn|error")
	root.PersistentFlags().BoolVar(&c.dumpMetrics, "metrics", false, "write Prometheus metrics to stderr on exit")

	root.AddCommand(
		newAnalyzeCmd(c),
		newSummaryCmd(c),
		newAssessCmd(c),
		newCatalogCmd(c),
		newGenerateCmd(c),
		newModelsCmd(c),
	)
	return root
}

// setup initializes logging and loads configuration (defaults -> optional
// file -> env). Flags win over both.
func (c *cli) setup(ctx context.Context) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	c.log = logger.Get()

	cfg, err := config.LoadFile(ctx, c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	c.cfg = cfg

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		c.log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}

func (c *cli) teardown(w io.Writer) error {
	if c.dumpMetrics {
		if err := writeMetrics(w); err != nil {
			return err
		}
	}
	if err := logger.Sync(); err != nil {
		return fmt.Errorf("sync logger: %w", err)
	}
	return nil
}

// serviceOptions maps configuration onto service options.
func (c *cli) serviceOptions() []app.Option {
	return []app.Option{
		app.WithLogger(c.log),
		app.WithWeights(c.cfg.Weights()),
		app.WithModelDir(c.cfg.ModelDir),
		app.WithModelVersion(c.cfg.ModelVersion),
		app.WithWatchModels(c.cfg.WatchModels),
		app.WithReloadDebounce(c.cfg.ReloadDebounce),
		app.WithMaxRecommendations(c.cfg.MaxRecommendations),
		app.WithResponseWindow(c.cfg.ResponseWindow),
		app.WithWorkerCount(c.cfg.WorkerCount),
		app.WithQueueSize(c.cfg.QueueSize),
		app.WithDedupeSize(c.cfg.DedupeSize),
	}
}

// startService starts a service built from configuration. Callers must Stop it.
func (c *cli) startService(ctx context.Context) (*app.Service, error) {
	svc := app.New(c.serviceOptions()...)
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start service: %w", err)
	}
	return svc, nil
}

// writeMetrics writes the engine registry in the Prometheus text format.
func writeMetrics(w io.Writer) error {
	mfs, err := metrics.Gatherer().Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	if closer, ok := enc.(expfmt.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
