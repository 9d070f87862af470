package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

var warningColor = color.New(color.FgYellow)

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("⚠️  Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected file:\n")
		} else {
			b.WriteString("    Affected files:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	warningColor.Fprint(out, b.String())
}

// MissingDirectoryWarning reports a controllers path that is not a directory
// in non-strict mode, where the build continues with an empty table.
func MissingDirectoryWarning(path string) Warning {
	return Warning{
		Title:      "Controllers directory not found",
		Message:    "An empty controller list was generated.",
		Files:      []string{path},
		Suggestion: "Check the stimulus: import path or enable strict mode to fail the build",
	}
}

// DuplicateWarning reports controllers that share an identifier. kept is the
// path the table imports after duplicate handling ran.
func DuplicateWarning(identifier string, paths []string, kept string) Warning {
	return Warning{
		Title:      fmt.Sprintf("Duplicate controller %q", identifier),
		Message:    fmt.Sprintf("Registered from %s, the other files are not imported.", kept),
		Files:      paths,
		Suggestion: "Rename one of the files or set duplicate_definition_handling",
	}
}
