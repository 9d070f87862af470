// Package fileutil provides the filesystem walking used by controller discovery.
//
// All functions take an afero.Fs so the same code runs against the real disk
// (afero.NewOsFs) and against in-memory trees in tests (afero.NewMemMapFs).
//
// # Glob Matching
//
// GlobFiles matches a doublestar pattern ("**/*", "**/controller.js",
// "admin/*_controller.ts") against every regular file below a root directory.
// Matching is done on slash-separated paths relative to the root, on every
// platform.
//
// Filters applied on top of the pattern:
//   - Hidden entries (any segment starting with ".") are skipped unless
//     IncludeHidden is set
//   - Directory names listed in ExcludeDirs are never matched through
//   - With RespectGitignore, entries matched by <root>/.gitignore are skipped
//
// # Ordering
//
// Results are sorted lexicographically by relative path. Callers derive
// sequence numbers from this order, so it must not depend on the platform's
// directory listing order.
//
// # Usage
//
//	files, err := fileutil.GlobFiles(afero.NewOsFs(), "/app/controllers", fileutil.GlobOptions{
//	    Pattern:     "**/*",
//	    ExcludeDirs: []string{"node_modules"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, rel := range files {
//	    fmt.Println(rel) // "nested/hello_controller.js"
//	}
package fileutil
