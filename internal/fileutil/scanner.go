package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/monochromegane/go-gitignore"
	"github.com/spf13/afero"
)

// GlobOptions configures the glob walk
type GlobOptions struct {
	// Pattern is a doublestar glob matched against slash-separated paths
	// relative to the root (e.g. "**/*", "**/controller.js")
	Pattern string
	// IncludeHidden also matches entries whose name starts with "."
	IncludeHidden bool
	// ExcludeDirs is a list of directory names to exclude (e.g. "node_modules")
	ExcludeDirs []string
	// RespectGitignore drops entries matched by <root>/.gitignore
	RespectGitignore bool
}

// GlobFiles returns the regular files under root matching opts.Pattern.
//
// Returned paths are slash-separated, relative to root, and sorted
// lexicographically so repeated scans of the same tree agree on order.
// Root must be an existing directory on fsys.
func GlobFiles(fsys afero.Fs, root string, opts GlobOptions) ([]string, error) {
	if !doublestar.ValidatePattern(opts.Pattern) {
		return nil, fmt.Errorf("invalid pattern %q", opts.Pattern)
	}

	var ignore gitignore.IgnoreMatcher
	if opts.RespectGitignore {
		matcher, err := loadGitignore(fsys, root)
		if err != nil {
			return nil, err
		}
		ignore = matcher
	}

	excludeMap := make(map[string]bool)
	for _, dir := range opts.ExcludeDirs {
		excludeMap[dir] = true
	}

	files := make([]string, 0)
	rootFS := afero.NewIOFS(afero.NewBasePathFs(fsys, root))

	err := doublestar.GlobWalk(rootFS, opts.Pattern, func(p string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}

		segments := strings.Split(p, "/")
		for i, segment := range segments {
			if !opts.IncludeHidden && strings.HasPrefix(segment, ".") {
				return nil
			}
			if i < len(segments)-1 && excludeMap[segment] {
				return nil
			}
		}

		if ignore != nil && isIgnored(ignore, root, segments) {
			return nil
		}

		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", root, err)
	}

	sort.Strings(files)

	return files, nil
}

// IsDir reports whether p exists on fsys and is a directory.
func IsDir(fsys afero.Fs, p string) bool {
	info, err := fsys.Stat(p)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Exists reports whether p exists on fsys.
func Exists(fsys afero.Fs, p string) bool {
	_, err := fsys.Stat(p)
	return err == nil
}

func loadGitignore(fsys afero.Fs, root string) (gitignore.IgnoreMatcher, error) {
	f, err := fsys.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open .gitignore: %w", err)
	}
	defer f.Close()

	return gitignore.NewGitIgnoreFromReader(root, f), nil
}

// isIgnored checks every ancestor directory, then the file itself, so that
// directory-only patterns such as "legacy/" exclude their contents.
func isIgnored(ignore gitignore.IgnoreMatcher, root string, segments []string) bool {
	for i := 1; i <= len(segments); i++ {
		rel := path.Join(segments[:i]...)
		isDir := i < len(segments)
		if ignore.Match(filepath.Join(root, filepath.FromSlash(rel)), isDir) {
			return true
		}
	}
	return false
}
