package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/openactivity/internal/config"
	"github.com/janekbaraniewski/openactivity/internal/core"
	"github.com/janekbaraniewski/openactivity/internal/dashboard"
	"github.com/janekbaraniewski/openactivity/internal/dataset"
	"github.com/janekbaraniewski/openactivity/internal/logging"
	"github.com/janekbaraniewski/openactivity/internal/version"
)

type rootOptions struct {
	configPath string
	dataPath   string
	weekStart  string

	cfg      config.Config
	logClose io.Closer
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "openactivity",
		Short:        "OpenActivity is a terminal heatmap dashboard for your workouts.",
		Version:      version.String(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.logClose != nil {
				opts.logClose.Close()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.ConfigPath()+")")
	flags.StringVar(&opts.dataPath, "data", "", "dataset JSON file (overrides config and "+config.EnvDataPath+")")
	flags.StringVar(&opts.weekStart, "week-start", "", "first weekday of heatmap columns: sunday or monday")

	root.AddCommand(newStatsCommand(opts))
	return root
}

func (o *rootOptions) setup() error {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if o.configPath == "" {
		o.configPath = config.ConfigPath()
	}
	cfg, err := config.LoadFrom(o.configPath)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", o.configPath, err)
	}
	if strings.TrimSpace(o.dataPath) != "" {
		cfg.DataPath = o.dataPath
	}
	if o.weekStart != "" {
		cfg.WeekStart = core.ParseWeekStart(o.weekStart)
	}
	o.cfg = cfg

	debug, file := logging.DebugFromEnv(os.Getenv(config.EnvDebug))
	closer, err := logging.Setup(logging.SetupParams{
		Debug:    debug,
		LogFile:  file,
		LogLevel: cfg.LogLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: opening log file: %v\n", err)
	}
	o.logClose = closer

	log.WithFields(log.Fields{
		"config": o.configPath,
		"data":   cfg.DataPath,
		"theme":  cfg.Theme,
	}).Debug("openactivity: configured")
	return nil
}

func (o *rootOptions) loadDataset() (core.Dataset, error) {
	if strings.TrimSpace(o.cfg.DataPath) == "" {
		return core.Dataset{}, fmt.Errorf("%w: pass --data or set %s", dataset.ErrNoDataPath, config.EnvDataPath)
	}
	return dataset.Load(o.cfg.DataPath)
}

func (o *rootOptions) sessionOptions(accent string) dashboard.Options {
	return dashboard.Options{
		WeekStart:     o.cfg.WeekStart,
		DefaultMetric: o.cfg.DefaultMetric,
		DefaultAccent: accent,
	}
}
