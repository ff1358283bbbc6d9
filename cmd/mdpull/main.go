// Package main is the mdpull command: a markdown reader where pulling past
// the top reloads and pulling past the end loads the next document.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kyaoi/mdpull/internal/app"
	"github.com/kyaoi/mdpull/internal/config"
)

type options struct {
	configPath string
	logLevel   string
	noMouse    bool
	noWatch    bool
	noSession  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "mdpull <path-to-markdown-or-directory>",
		Short: "Read markdown with pull to refresh",
		Long: `mdpull renders markdown in the terminal. Scroll or drag past the top to
reload the shown documents, past the end to append the next document of the
directory.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(filepath.Clean(args[0]), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/"+config.RelPath+")")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.noMouse, "no-mouse", false, "Disable mouse input")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "Do not reload on file changes")
	cmd.Flags().BoolVar(&opts.noSession, "no-session", false, "Neither restore nor save the session")
	return cmd
}

func run(target string, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	cfg = opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("starting", "target", target)
	if err := app.Run(target, cfg, logger); err != nil {
		logger.Error("exited with error", "error", err)
		return err
	}
	return nil
}

// apply lays the command line flags over the loaded configuration.
func (o options) apply(cfg config.Config) config.Config {
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.noMouse {
		cfg.Viewer.Mouse = false
	}
	if o.noWatch {
		cfg.Viewer.Watch = false
	}
	if o.noSession {
		cfg.Viewer.Session = false
	}
	return cfg
}

// openLog sends logs to a file; the terminal belongs to the UI.
func openLog(cfg config.Config) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	path, err := cfg.LogFile()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}
