package controllers

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching against the structured error types.
var (
	ErrNotADirectory       = errors.New("not a directory")
	ErrDuplicateDefinition = errors.New("duplicate definition")
)

// NotADirectoryError is returned in strict mode when the controllers path
// does not exist or is not a directory.
type NotADirectoryError struct {
	Path string
}

// Error implements the error interface for NotADirectoryError.
func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("path %q is not a directory", e.Path)
}

// Is reports whether target is ErrNotADirectory.
func (e *NotADirectoryError) Is(target error) bool {
	return target == ErrNotADirectory
}

// DefinitionInfo is a snapshot of a definition involved in a duplicate.
type DefinitionInfo struct {
	Identifier  string
	BindingName string
	Path        string
}

// DuplicateDefinitionError is returned when two controllers derive the same
// identifier and the duplicate handling resolves to DuplicateError.
type DuplicateDefinitionError struct {
	Existing  DefinitionInfo
	Duplicate DefinitionInfo
}

// Error implements the error interface for DuplicateDefinitionError.
func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf(
		"duplicate definition found for %q: controller at %q was going to be assigned to %q, but it already exists at %q with the name %q",
		e.Duplicate.Identifier, e.Duplicate.Path, e.Duplicate.BindingName,
		e.Existing.Path, e.Existing.BindingName,
	)
}

// Is reports whether target is ErrDuplicateDefinition.
func (e *DuplicateDefinitionError) Is(target error) bool {
	return target == ErrDuplicateDefinition
}
