package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/harrison/stimgen/internal/controllers"
	"github.com/harrison/stimgen/internal/display"
	"github.com/harrison/stimgen/internal/fileutil"
	"github.com/harrison/stimgen/internal/output"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <controllers-dir>",
		Short: "Write the controller table module for a directory",
		Long: `Scan a controllers directory and print the generated module, or write
it to a file with --output for toolchains that cannot run the esbuild plugin.

The output file is only rewritten when its content changes.

Examples:
  stimgen generate app/javascript/controllers
  stimgen generate app/javascript/controllers --output app/javascript/controllers.gen.js`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			outputPath, _ := cmd.Flags().GetString("output")
			return generateModule(afero.NewOsFs(), args[0], outputPath, s, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringP("output", "o", "", "File to write the module to (default: stdout)")

	return cmd
}

// generateModule builds the table for dir and prints or writes it
func generateModule(fsys afero.Fs, dir, outputPath string, s *settings, out, errOut io.Writer) error {
	if !s.opts.Strict && !fileutil.IsDir(fsys, dir) {
		display.MissingDirectoryWarning(dir).Display(errOut)
	}

	result, err := controllers.NewBuilder(fsys, s.opts).WithLogger(s.logger).Build(dir)
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err := io.WriteString(out, result.Source)
		return err
	}

	changed, err := output.WriteModule(outputPath, result.Source)
	if err != nil {
		return err
	}
	if changed {
		s.logger.Infof("wrote %d controller(s) to %s", len(result.Definitions), outputPath)
	} else {
		s.logger.LogInfo(fmt.Sprintf("%s is up to date", outputPath))
	}
	return nil
}
