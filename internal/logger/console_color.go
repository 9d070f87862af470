package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// colorScheme defines consistent colors for summary metrics.
// Green: success, Red: failure, Yellow: warnings, Cyan: labels.
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats "label: value" with a cyan label.
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), scheme.value.Sprintf("%v", value))
}

// formatColorizedSummary formats build counts. Non-zero warnings are yellow,
// non-zero errors red.
func formatColorizedSummary(summary BuildSummary, scheme *colorScheme) string {
	parts := []string{
		formatColorizedMetric("entries", summary.EntryPoints, scheme),
		formatColorizedMetric("outputs", summary.OutputFiles, scheme),
	}

	if summary.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.warn.Sprint("warnings"), scheme.warn.Sprintf("%d", summary.Warnings)))
	} else {
		parts = append(parts, formatColorizedMetric("warnings", 0, scheme))
	}

	if summary.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.fail.Sprint("errors"), scheme.fail.Sprintf("%d", summary.Errors)))
	} else {
		parts = append(parts, formatColorizedMetric("errors", 0, scheme))
	}

	return strings.Join(parts, ", ")
}
