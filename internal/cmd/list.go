package cmd

import (
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/harrison/stimgen/internal/controllers"
	"github.com/harrison/stimgen/internal/display"
	"github.com/harrison/stimgen/internal/fileutil"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <controllers-dir>",
		Short: "List the controllers discovered in a directory",
		Long: `Scan a controllers directory and print each controller identifier with
the file it is imported from, in table order. Duplicate identifiers are
reported as warnings along with the files involved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			return listControllers(afero.NewOsFs(), args[0], s, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// duplicateRecorder collects every duplicate occurrence and the path that
// ends up registered while delegating the decision to the configured handling.
type duplicateRecorder struct {
	next  controllers.DuplicateHandling
	order []string
	paths map[string][]string
	kept  map[string]string
}

func newDuplicateRecorder(next controllers.DuplicateHandling) *duplicateRecorder {
	return &duplicateRecorder{next: next, paths: make(map[string][]string), kept: make(map[string]string)}
}

func (r *duplicateRecorder) decide(existing, duplicate controllers.DefinitionInfo) controllers.DuplicatePolicy {
	id := existing.Identifier
	if _, seen := r.paths[id]; !seen {
		r.order = append(r.order, id)
		r.paths[id] = []string{existing.Path}
	}
	r.paths[id] = append(r.paths[id], duplicate.Path)

	policy := r.next.Decide(existing, duplicate)
	if policy == controllers.DuplicateReplace {
		r.kept[id] = duplicate.Path
	} else {
		r.kept[id] = existing.Path
	}
	return policy
}

func listControllers(fsys afero.Fs, dir string, s *settings, out, errOut io.Writer) error {
	if !s.opts.Strict && !fileutil.IsDir(fsys, dir) {
		display.MissingDirectoryWarning(dir).Display(errOut)
	}

	recorder := newDuplicateRecorder(s.opts.DuplicateHandling)
	opts := s.opts
	opts.DuplicateHandling = controllers.DecideWith(recorder.decide)

	result, err := controllers.NewBuilder(fsys, opts).WithLogger(s.logger).Build(dir)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		root = dir
	}
	display.NewControllerTable(out, root).Render(result.Definitions)

	for _, id := range recorder.order {
		display.DuplicateWarning(id, recorder.paths[id], recorder.kept[id]).Display(errOut)
	}
	return nil
}
