package controllers

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// controllersRoot is the directory the in-memory fixtures live under.
var controllersRoot = filepath.FromSlash("/app/javascript/controllers")

// newTestFs creates an in-memory tree of empty files below controllersRoot.
func newTestFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(controllersRoot, 0755))
	for _, rel := range files {
		path := filepath.Join(controllersRoot, filepath.FromSlash(rel))
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte("export default class {}\n"), 0644))
	}
	return fs
}

func rootPath(rel string) string {
	return filepath.Join(controllersRoot, filepath.FromSlash(rel))
}

func identifiers(defs []Definition) []string {
	ids := make([]string, len(defs))
	for i, d := range defs {
		ids[i] = d.Identifier
	}
	return ids
}

func bindings(defs []Definition) []string {
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.BindingName
	}
	return names
}

// suffixOnly matches "_controller" in front of the extension and strips
// both, the way a plain "_controller" suffix configuration behaves.
var suffixOnly = regexp.MustCompile(`_controller\.(js|ts)$`)
