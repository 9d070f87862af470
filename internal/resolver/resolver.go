// Package resolver turns "stimulus:" import specifiers into controller
// directory paths.
package resolver

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/harrison/stimgen/internal/fileutil"
)

// Prefix marks an import specifier as a request for a generated controller table.
const Prefix = "stimulus:"

// Namespace tags resolved paths so the host routes them to the generator
// instead of its default file loader.
const Namespace = "stimulus-controllers"

// Resolution is the outcome of resolving a specifier.
type Resolution struct {
	Path      string
	Namespace string
}

// Resolver resolves specifiers against a filesystem.
type Resolver struct {
	fs afero.Fs
}

// New creates a Resolver. A nil fsys uses the OS filesystem.
func New(fsys afero.Fs) *Resolver {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Resolver{fs: fsys}
}

// HasPrefix reports whether specifier asks for a controller table.
func HasPrefix(specifier string) bool {
	return strings.HasPrefix(specifier, Prefix)
}

// Resolve strips the prefix from specifier and resolves the rest against the
// directory of importer. When that joined path exists it is returned;
// otherwise the stripped specifier is returned unchanged and treated as an
// absolute or opaque path. Resolve never fails: existence is checked, not
// enforced.
func (r *Resolver) Resolve(specifier, importer string) Resolution {
	if !HasPrefix(specifier) {
		return Resolution{Path: specifier}
	}

	// stimulus:./controllers -> ./controllers
	importPath := filepath.FromSlash(strings.TrimPrefix(specifier, Prefix))

	importerDir := ""
	if i := strings.LastIndex(importer, string(filepath.Separator)); i >= 0 {
		importerDir = importer[:i]
	}

	resolved := importPath
	if joined := filepath.Join(importerDir, importPath); fileutil.Exists(r.fs, joined) {
		resolved = joined
	}

	return Resolution{Path: resolved, Namespace: Namespace}
}

// Resolve resolves specifier against the OS filesystem.
func Resolve(specifier, importer string) Resolution {
	return New(nil).Resolve(specifier, importer)
}
