package controllers

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultControllerSuffix matches "-controller" or "_controller" followed by a
// common script extension, case-insensitively.
const DefaultControllerSuffix = `(?i)[-_]controller\.(js|ts|jsx|tsx)$`

// DefaultFileIdentifier matches every file below the controllers directory.
const DefaultFileIdentifier = "**/*"

// DefaultDirectorySeparator joins nested path segments into an identifier.
const DefaultDirectorySeparator = "--"

// DuplicatePolicy decides what happens when two controllers share an identifier.
type DuplicatePolicy int

const (
	// DuplicateIgnore keeps the first definition and drops the newcomer.
	DuplicateIgnore DuplicatePolicy = iota
	// DuplicateError aborts the build with a DuplicateDefinitionError.
	DuplicateError
	// DuplicateReplace swaps the newcomer into the existing slot.
	DuplicateReplace
)

// String returns the configuration spelling of the policy.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateIgnore:
		return "ignore"
	case DuplicateError:
		return "error"
	case DuplicateReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// ParseDuplicatePolicy converts "error", "ignore" or "replace" into a policy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore":
		return DuplicateIgnore, nil
	case "error":
		return DuplicateError, nil
	case "replace":
		return DuplicateReplace, nil
	default:
		return DuplicateIgnore, fmt.Errorf("invalid duplicate definition handling %q, must be one of: error, ignore, replace", s)
	}
}

// DecideFunc chooses a policy for a single duplicate occurrence.
type DecideFunc func(existing, duplicate DefinitionInfo) DuplicatePolicy

// DuplicateHandling is either a fixed policy or a per-occurrence decision
// function. The zero value ignores duplicates.
type DuplicateHandling struct {
	policy DuplicatePolicy
	decide DecideFunc
}

// StaticHandling applies the same policy to every duplicate.
func StaticHandling(policy DuplicatePolicy) DuplicateHandling {
	return DuplicateHandling{policy: policy}
}

// DecideWith asks fn for every duplicate. A nil fn behaves like ignore.
func DecideWith(fn DecideFunc) DuplicateHandling {
	return DuplicateHandling{decide: fn}
}

// Decide returns the policy to apply to this occurrence.
func (h DuplicateHandling) Decide(existing, duplicate DefinitionInfo) DuplicatePolicy {
	if h.decide != nil {
		return h.decide(existing, duplicate)
	}
	return h.policy
}

// String describes the handling for log output.
func (h DuplicateHandling) String() string {
	if h.decide != nil {
		return "callback"
	}
	return h.policy.String()
}

// Options configures controller discovery. An Options value is read-only
// once built and may be shared by concurrent builds.
type Options struct {
	// Strict turns a missing or non-directory path into a NotADirectoryError.
	Strict bool
	// ControllerSuffix filters file-mode matches and is stripped from the
	// file name. Nil keeps every file and strips nothing.
	ControllerSuffix *regexp.Regexp
	// ControllerDirectorySuffix does the same for directory-mode matches.
	ControllerDirectorySuffix *regexp.Regexp
	// FileIdentifier is the glob for controllers named after their file.
	// Empty disables file mode.
	FileIdentifier string
	// DirectoryIdentifier is the glob for controllers named after their
	// parent directory. Empty disables directory mode.
	DirectoryIdentifier string
	// DuplicateHandling resolves identifier collisions.
	DuplicateHandling DuplicateHandling
	// DirectorySeparator joins path segments into an identifier.
	DirectorySeparator string

	// IncludeHidden also scans entries whose name starts with ".".
	IncludeHidden bool
	// ExcludeDirs lists directory names that are never descended into.
	ExcludeDirs []string
	// RespectGitignore skips entries matched by a .gitignore at the root of
	// the controllers directory.
	RespectGitignore bool
}

// DefaultOptions returns the stock configuration: strict, file mode with the
// default suffix, duplicates ignored, "--" separator.
func DefaultOptions() Options {
	return Options{
		Strict:             true,
		ControllerSuffix:   regexp.MustCompile(DefaultControllerSuffix),
		FileIdentifier:     DefaultFileIdentifier,
		DuplicateHandling:  StaticHandling(DuplicateIgnore),
		DirectorySeparator: DefaultDirectorySeparator,
	}
}
