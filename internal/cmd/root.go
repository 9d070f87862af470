package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for stimgen
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stimgen",
		Short: "Stimulus controller discovery for esbuild",
		Long: `stimgen generates the table of Stimulus controllers for a bundle.

An import of "stimulus:./controllers" is resolved against the importing
file, the directory is scanned for controller files, and a module
exporting [{identifier, controllerConstructor}] is generated in its place.

Configuration is read from the nearest stimgen.yaml at or above the
working directory. CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default: nearest stimgen.yaml)")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.Bool("strict", true, "Fail when a controllers path is not a directory")
	flags.String("separator", "", "Separator joining nested directories into identifiers")
	flags.String("duplicates", "", "Duplicate identifier handling: error, ignore, replace")
	flags.String("file-identifier", "", "Glob selecting file controllers")
	flags.String("directory-identifier", "", "Glob selecting directory controllers")

	// Add subcommands
	cmd.AddCommand(NewBuildCommand())
	cmd.AddCommand(NewGenerateCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewResolveCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}
