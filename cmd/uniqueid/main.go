package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/uniqueid/internal/config"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globals is shared by all subcommands. It is filled in by the root
// command's PersistentPreRunE.
type globals struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "uniqueid",
		Short: "Render component trees with provider-scoped unique IDs",
		Long: `uniqueid mounts a demo component tree whose items receive IDs
from the nearest Provider.

  • IDs start at 1 and increase with every render
  • Changing the Provider version resets the counter
  • Explicit props always win over generated ones`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g.configPath)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg)
			if err != nil {
				return err
			}
			g.cfg = cfg
			g.logger = logger
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "",
		"Path to config file (default ./"+config.ConfigFileName+" if present)")

	rootCmd.AddCommand(
		renderCmd(g),
		serveCmd(g),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig loads path, or ./uniqueid.yaml when path is empty. A missing
// default file falls back to built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	cfg, err := config.Load(".")
	if !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}

	cfg = config.New()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from the log section.
func newLogger(w io.Writer, cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("component", "uniqueid"), nil
}

// tracerFor returns the global tracer when tracing is enabled and a no-op
// tracer otherwise.
func tracerFor(cfg *config.Config) trace.Tracer {
	if !cfg.Tracing.Enabled {
		return noop.NewTracerProvider().Tracer(cfg.Tracing.Name)
	}
	return otel.Tracer(cfg.Tracing.Name)
}
