// Package display formats user-facing terminal output for the stimgen CLI.
//
// # Warning Messages
//
// Warnings are printed in yellow with optional detail lines:
//
//	display.MissingDirectoryWarning("app/javascript/controllers").Display(os.Stderr)
//
// # Controller Tables
//
// ControllerTable renders discovered controllers for `stimgen list`:
//
//	table := display.NewControllerTable(os.Stdout, root)
//	table.Render(result.Definitions)
//
// Color is handled by fatih/color, which disables escape codes when output
// is not a terminal or NO_COLOR is set.
package display
