package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/harrison/stimgen/internal/resolver"
)

// NewResolveCommand creates the resolve command
func NewResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <specifier>",
		Short: "Show how an import specifier is resolved",
		Long: `Resolve a "stimulus:" import specifier the way the esbuild plugin does
and print the resulting path and namespace.

Examples:
  stimgen resolve stimulus:./controllers --importer app/javascript/application.js`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			importer, _ := cmd.Flags().GetString("importer")
			return resolveSpecifier(afero.NewOsFs(), args[0], importer, cmd.OutOrStdout())
		},
	}

	cmd.Flags().String("importer", "", "Path of the importing file")

	return cmd
}

func resolveSpecifier(fsys afero.Fs, specifier, importer string, out io.Writer) error {
	res := resolver.New(fsys).Resolve(specifier, importer)

	namespace := res.Namespace
	if namespace == "" {
		namespace = "(none)"
	}

	fmt.Fprintf(out, "path: %s\n", res.Path)
	fmt.Fprintf(out, "namespace: %s\n", namespace)
	return nil
}
