package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/spf13/cobra"

	"github.com/harrison/stimgen/internal/config"
	"github.com/harrison/stimgen/internal/logger"
	"github.com/harrison/stimgen/internal/plugin"
)

// NewBuildCommand creates the build command
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [entry-point]...",
		Short: "Bundle entry points with esbuild and the stimulus plugin",
		Long: `Bundle JavaScript entry points with esbuild. Imports of the form
"stimulus:<dir>" are replaced by a generated controller table.

Entry points default to build.entry_points from stimgen.yaml.

Examples:
  stimgen build app/javascript/application.js
  stimgen build --outdir public/assets --minify --sourcemap
  stimgen build --dry-run app/javascript/application.js`,
		RunE: runBuild,
	}

	cmd.Flags().String("outdir", "", "Output directory for bundles")
	cmd.Flags().String("format", "", "Output format: esm, iife, cjs")
	cmd.Flags().Bool("minify", false, "Minify the output")
	cmd.Flags().Bool("sourcemap", false, "Emit linked source maps")
	cmd.Flags().Bool("dry-run", false, "Bundle without writing output files")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	entryPoints := args
	if len(entryPoints) == 0 {
		entryPoints = s.cfg.Build.EntryPoints
	}
	if len(entryPoints) == 0 {
		return fmt.Errorf("no entry points: pass them as arguments or set build.entry_points in stimgen.yaml")
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	return bundle(entryPoints, s, !dryRun, cmd.OutOrStdout())
}

// bundle runs esbuild over entryPoints with the stimulus plugin installed
func bundle(entryPoints []string, s *settings, write bool, out io.Writer) error {
	options := buildOptions(entryPoints, s.cfg.Build, write)
	options.Plugins = []api.Plugin{
		plugin.New(
			plugin.WithControllerOptions(s.opts),
			plugin.WithLogger(s.logger),
		),
	}

	s.logger.LogDebug(fmt.Sprintf("bundling %d entry point(s) into %s", len(entryPoints), options.Outdir))

	start := time.Now()
	result := api.Build(options)

	for _, msg := range result.Warnings {
		s.logger.LogWarn(formatMessage(msg))
	}
	for _, msg := range result.Errors {
		s.logger.LogError(formatMessage(msg))
	}

	if !write {
		for _, file := range result.OutputFiles {
			fmt.Fprintf(out, "%s (%d bytes)\n", file.Path, len(file.Contents))
		}
	}

	s.logger.LogBuildSummary(logger.BuildSummary{
		EntryPoints: len(entryPoints),
		OutputFiles: len(result.OutputFiles),
		Warnings:    len(result.Warnings),
		Errors:      len(result.Errors),
		Duration:    time.Since(start),
	})

	if len(result.Errors) > 0 {
		return fmt.Errorf("build failed with %d error(s)", len(result.Errors))
	}
	return nil
}

// buildOptions maps the build section of the configuration onto esbuild options
func buildOptions(entryPoints []string, cfg config.BuildConfig, write bool) api.BuildOptions {
	options := api.BuildOptions{
		EntryPoints:       entryPoints,
		Bundle:            true,
		Outdir:            cfg.Outdir,
		Format:            outputFormat(cfg.Format),
		MinifyWhitespace:  cfg.Minify,
		MinifyIdentifiers: cfg.Minify,
		MinifySyntax:      cfg.Minify,
		Write:             write,
		LogLevel:          api.LogLevelSilent,
	}
	if cfg.Sourcemap {
		options.Sourcemap = api.SourceMapLinked
	}
	return options
}

func outputFormat(format string) api.Format {
	switch format {
	case "iife":
		return api.FormatIIFE
	case "cjs":
		return api.FormatCommonJS
	default:
		return api.FormatESModule
	}
}

// formatMessage renders an esbuild message as file:line:column: text
func formatMessage(msg api.Message) string {
	text := msg.Text
	if msg.PluginName != "" {
		text = fmt.Sprintf("[%s] %s", msg.PluginName, text)
	}
	if msg.Location == nil {
		return text
	}
	return fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, text)
}
