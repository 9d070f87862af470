package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and print the effective settings",
		Long: `Load stimgen.yaml (or --config), apply command line overrides and
check every value: log level, duplicate handling, globs, suffix
expressions and build format.

Exit code: 0 if valid, 1 if errors found`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			printSettings(s, cmd.OutOrStdout())
			return nil
		},
	}
}

func printSettings(s *settings, out io.Writer) {
	source := s.cfg.Path
	if source == "" {
		source = "defaults"
	}

	disabled := func(v string) string {
		if v == "" {
			return "(disabled)"
		}
		return v
	}

	fmt.Fprintf(out, "%s Configuration is valid (%s)\n", color.New(color.FgGreen).Sprint("✓"), source)
	fmt.Fprintf(out, "  strict: %t\n", s.opts.Strict)
	fmt.Fprintf(out, "  controller_suffix: %s\n", disabled(s.cfg.ControllerSuffix))
	fmt.Fprintf(out, "  controller_directory_suffix: %s\n", disabled(s.cfg.ControllerDirectorySuffix))
	fmt.Fprintf(out, "  file_identifier: %s\n", disabled(s.opts.FileIdentifier))
	fmt.Fprintf(out, "  directory_identifier: %s\n", disabled(s.opts.DirectoryIdentifier))
	fmt.Fprintf(out, "  duplicate_definition_handling: %s\n", s.opts.DuplicateHandling)
	fmt.Fprintf(out, "  directory_separator: %q\n", s.opts.DirectorySeparator)
	if len(s.opts.ExcludeDirs) > 0 {
		fmt.Fprintf(out, "  exclude_dirs: %s\n", strings.Join(s.opts.ExcludeDirs, ", "))
	}
	fmt.Fprintf(out, "  build: format=%s outdir=%s minify=%t sourcemap=%t\n",
		s.cfg.Build.Format, s.cfg.Build.Outdir, s.cfg.Build.Minify, s.cfg.Build.Sourcemap)
}
