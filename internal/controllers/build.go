// Package controllers discovers Stimulus controllers in a directory and
// generates the module that registers them.
//
// A Builder walks the directory in up to two modes. File mode names each
// controller after its file ("nested/hello_controller.js" -> "nested--hello").
// Directory mode names it after the directory holding the matched file
// ("widgets/date_picker/controller.js" -> "widgets--date_picker"). Matches
// are merged file mode first, duplicate identifiers are resolved by the
// configured DuplicateHandling, and the accepted definitions are rendered as
// an ES module whose default export is the controller table.
package controllers

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/harrison/stimgen/internal/fileutil"
)

// Logger receives discovery diagnostics. *logger.ConsoleLogger satisfies it.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
}

// Result is the outcome of one build.
type Result struct {
	// Definitions are the accepted controllers in table order
	Definitions []Definition
	// Source is the generated ES module
	Source string
}

// Builder generates controller tables. It holds no per-build state and is
// safe for concurrent use.
type Builder struct {
	fs     afero.Fs
	opts   Options
	logger Logger
}

// NewBuilder creates a Builder reading from fsys. A nil fsys uses the OS filesystem.
func NewBuilder(fsys afero.Fs, opts Options) *Builder {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Builder{fs: fsys, opts: opts}
}

// WithLogger returns a copy of the builder that reports to logger.
func (b *Builder) WithLogger(logger Logger) *Builder {
	clone := *b
	clone.logger = logger
	return &clone
}

// Options returns the options the builder was created with.
func (b *Builder) Options() Options {
	return b.opts
}

// Build is shorthand for NewBuilder(fsys, opts).Build(dir).
func Build(fsys afero.Fs, dir string, opts Options) (*Result, error) {
	return NewBuilder(fsys, opts).Build(dir)
}

// Build scans dir and returns the accepted definitions with the generated
// module source.
//
// A missing or non-directory dir fails with *NotADirectoryError in strict
// mode and yields an empty table otherwise. A duplicate resolved to
// DuplicateError fails with *DuplicateDefinitionError regardless of strict.
func (b *Builder) Build(dir string) (*Result, error) {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	if !fileutil.IsDir(b.fs, dir) {
		if b.opts.Strict {
			return nil, &NotADirectoryError{Path: dir}
		}
		b.debug(fmt.Sprintf("%s is not a directory, emitting empty table", dir))
		return &Result{Definitions: []Definition{}, Source: EmptyModuleSource}, nil
	}

	files, err := b.scan(dir)
	if err != nil {
		return nil, err
	}

	defs, err := b.accept(files)
	if err != nil {
		return nil, err
	}

	b.debug(fmt.Sprintf("%s: %d controllers from %d matches", dir, len(defs), len(files)))

	return &Result{Definitions: defs, Source: GenerateSource(defs)}, nil
}

// accept applies duplicate handling in discovery order. Binding numbers are
// slot indexes in the accepted list, so replacing a slot keeps its binding.
func (b *Builder) accept(files []ControllerFile) ([]Definition, error) {
	set := newDefinitionSet()

	for _, file := range files {
		existing, slot, dup := set.get(file.Name)
		if !dup {
			set.add(Definition{
				Identifier:  file.Name,
				BindingName: set.bindingFor(file.Name, set.nextSlot()),
				Path:        file.Path,
			})
			continue
		}

		candidate := Definition{
			Identifier:  file.Name,
			BindingName: set.bindingFor(file.Name, set.nextSlot()),
			Path:        file.Path,
		}

		policy := b.opts.DuplicateHandling.Decide(existing.info(), candidate.info())
		b.debug(fmt.Sprintf("duplicate %q: %s (kept %s, candidate %s)", file.Name, policy, existing.Path, file.Path))

		switch policy {
		case DuplicateError:
			return nil, &DuplicateDefinitionError{Existing: existing.info(), Duplicate: candidate.info()}
		case DuplicateReplace:
			set.replace(slot, candidate)
		default:
			// DuplicateIgnore keeps the existing definition.
		}
	}

	return set.list(), nil
}

func (b *Builder) trace(message string) {
	if b.logger != nil {
		b.logger.LogTrace(message)
	}
}

func (b *Builder) debug(message string) {
	if b.logger != nil {
		b.logger.LogDebug(message)
	}
}
