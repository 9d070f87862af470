package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/harrison/stimgen/internal/config"
	"github.com/harrison/stimgen/internal/controllers"
	"github.com/harrison/stimgen/internal/logger"
)

// settings is the resolved configuration shared by every subcommand
type settings struct {
	cfg    *config.Config
	opts   controllers.Options
	logger *logger.ConsoleLogger
}

// loadSettings loads the config file, applies flags that were set on the
// command line and compiles the discovery options.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.MergeWithFlags(config.FlagOverrides{
		LogLevel:            changedString(flags, "log-level"),
		Strict:              changedBool(flags, "strict"),
		DirectorySeparator:  changedString(flags, "separator"),
		Duplicates:          changedString(flags, "duplicates"),
		FileIdentifier:      changedString(flags, "file-identifier"),
		DirectoryIdentifier: changedString(flags, "directory-identifier"),
		Outdir:              changedString(flags, "outdir"),
		Format:              changedString(flags, "format"),
		Minify:              changedBool(flags, "minify"),
		Sourcemap:           changedBool(flags, "sourcemap"),
	})

	opts, err := cfg.Options()
	if err != nil {
		if cfg.Path != "" {
			return nil, fmt.Errorf("invalid configuration in %s: %w", cfg.Path, err)
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &settings{
		cfg:    cfg,
		opts:   opts,
		logger: logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel),
	}, nil
}

// changedString returns the flag value only when it was set explicitly
func changedString(flags *pflag.FlagSet, name string) *string {
	if flags.Lookup(name) == nil || !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetString(name)
	if err != nil {
		return nil
	}
	return &v
}

// changedBool returns the flag value only when it was set explicitly
func changedBool(flags *pflag.FlagSet, name string) *bool {
	if flags.Lookup(name) == nil || !flags.Changed(name) {
		return nil
	}
	v, err := flags.GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}
