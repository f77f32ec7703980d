package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"arcade/internal/catalog"
	"arcade/internal/config"
	"arcade/internal/logger"
	"arcade/internal/tui"
)

type options struct {
	configPath string
	catalog    string
	logLevel   string
	logFile    string
	fullscreen bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:          "arcade-tui",
		Short:        "Browse the game library in the terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd.Flags(), &opts, os.Getenv)
			if err != nil {
				return err
			}
			return run(cfg, opts.fullscreen)
		},
	}
	bindFlags(cmd.Flags(), &opts)
	return cmd
}

func bindFlags(flags *pflag.FlagSet, opts *options) {
	flags.StringVar(&opts.configPath, "config", "", "YAML config file")
	flags.StringVar(&opts.catalog, "catalog", "", "games JSON file (default: bundled list)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	flags.StringVar(&opts.logFile, "log-file", "", "write JSON logs to this file")
	flags.BoolVarP(&opts.fullscreen, "fullscreen", "f", false, "start on the alternate screen")
}

// resolveConfig shares the web shell's layering; only the catalog and
// logging settings matter here.
func resolveConfig(flags *pflag.FlagSet, opts *options, getenv func(string) string) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(getenv)
	if flags.Changed("catalog") {
		cfg.Catalog = opts.catalog
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(cfg *config.Config, fullscreen bool) error {
	level, _ := config.ParseLevel(cfg.LogLevel)
	// The terminal belongs to the program; logs only go to a file.
	logOpts := logger.Options{Level: level, Console: io.Discard}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOpts.File = f
	}
	log := logger.New(logOpts)

	games := catalog.FromPath(cfg.Catalog, log)
	if games.Failed() {
		log.Error("catalog unavailable, showing error display", "err", games.Err())
	}

	model := tui.FromCatalog(games, fullscreen, log)
	defer model.Release()

	progOpts := []tea.ProgramOption{}
	if fullscreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(model, progOpts...).Run(); err != nil {
		return fmt.Errorf("terminal ui: %w", err)
	}
	return nil
}
