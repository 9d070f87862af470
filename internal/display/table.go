package display

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/harrison/stimgen/internal/controllers"
)

// ControllerTable prints discovered controllers one per line:
// [N/Total] identifier (cyan) followed by the path relative to the root.
type ControllerTable struct {
	writer io.Writer
	root   string
}

// NewControllerTable creates a table printer for controllers found under root
func NewControllerTable(w io.Writer, root string) *ControllerTable {
	return &ControllerTable{writer: w, root: root}
}

// Render writes the header, one line per definition, and a summary line
func (t *ControllerTable) Render(defs []controllers.Definition) {
	fmt.Fprintf(t.writer, "Controllers in %s:\n", t.root)

	width := 0
	for _, def := range defs {
		if len(def.Identifier) > width {
			width = len(def.Identifier)
		}
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	for i, def := range defs {
		padded := fmt.Sprintf("%-*s", width, def.Identifier)
		fmt.Fprintf(t.writer, "  [%d/%d] %s  %s\n", i+1, len(defs), cyan(padded), t.relative(def.Path))
	}

	check := color.New(color.FgGreen).Sprint("✓")
	switch len(defs) {
	case 0:
		fmt.Fprintln(t.writer, "  (none)")
	case 1:
		fmt.Fprintf(t.writer, "%s Found 1 controller\n", check)
	default:
		fmt.Fprintf(t.writer, "%s Found %d controllers\n", check, len(defs))
	}
}

func (t *ControllerTable) relative(path string) string {
	rel, err := filepath.Rel(t.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
