// Package commands holds the newsdeck command line.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"newsdeck/internal/config"
	"newsdeck/internal/logging"
	"newsdeck/internal/source"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath string
	logLevel   string
}

// NewRootCmd creates the root command. Without a subcommand it behaves
// like `read`.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}
	read := newReadCommand(flags)

	rootCmd := &cobra.Command{
		Use:           "newsdeck [URL|DIR]",
		Short:         "Read a paginated news site in the terminal",
		Args:          read.Args,
		RunE:          read.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Flags().AddFlagSet(read.Flags())

	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(
		read,
		newCountCommand(flags),
		newServeCommand(flags),
	)

	return rootCmd
}

// loadConfig reads the file named by --config, or the default file when
// present. An explicit file must exist.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if f.configPath != "" {
		cfg, err = config.NewConfigServiceAt(f.configPath).LoadFromPath(f.configPath)
	} else {
		cfg, err = config.NewConfigService().Load()
	}
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, nil
}

// setupConsoleLog logs to stderr for the non-interactive commands
func setupConsoleLog(cfg *config.Config) {
	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: true,
		Output: os.Stderr,
	})
}

// setupFileLog logs to the configured file; the terminal belongs to the UI.
// The returned closer is never nil.
func setupFileLog(cfg *config.Config) (io.Closer, error) {
	f, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		logging.Setup(logging.Config{Level: logging.LevelError, Output: io.Discard})
		return io.NopCloser(nil), err
	}
	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
		Output: f,
	})
	return f, nil
}

func sourceOptions(cfg *config.Config) source.Options {
	return source.Options{
		PathPattern: cfg.Source.PathPattern,
		Manifest:    cfg.Source.Manifest,
		Timeout:     cfg.Source.Timeout(),
	}
}
