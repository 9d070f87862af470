package controllers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/harrison/stimgen/internal/fileutil"
)

// ControllerFile is a discovered controller before duplicate handling.
type ControllerFile struct {
	// Name is the derived identifier
	Name string
	// Path is the controllers directory joined with the matched file
	Path string
}

// scan runs file mode then directory mode and returns their matches in that order.
func (b *Builder) scan(dir string) ([]ControllerFile, error) {
	var found []ControllerFile

	if b.opts.FileIdentifier != "" {
		files, err := b.scanFiles(dir)
		if err != nil {
			return nil, err
		}
		found = append(found, files...)
	}

	if b.opts.DirectoryIdentifier != "" {
		dirs, err := b.scanDirectories(dir)
		if err != nil {
			return nil, err
		}
		found = append(found, dirs...)
	}

	return found, nil
}

// scanFiles names each match after its file name, minus the controller suffix.
func (b *Builder) scanFiles(dir string) ([]ControllerFile, error) {
	matches, err := b.glob(dir, b.opts.FileIdentifier)
	if err != nil {
		return nil, fmt.Errorf("file identifier: %w", err)
	}

	var found []ControllerFile
	for _, rel := range matches {
		// my/path/to/test_controller.js -> [my path to test_controller.js]
		segments := strings.Split(rel, "/")
		fileName := segments[len(segments)-1]

		if b.opts.ControllerSuffix != nil && !b.opts.ControllerSuffix.MatchString(fileName) {
			continue
		}

		name := joinIdentifier(segments[:len(segments)-1], stripSuffix(fileName, b.opts.ControllerSuffix), b.opts.DirectorySeparator)
		path := filepath.Join(dir, filepath.FromSlash(rel))
		b.trace(fmt.Sprintf("file controller %q -> %s", name, path))

		found = append(found, ControllerFile{Name: name, Path: path})
	}

	return found, nil
}

// scanDirectories names each match after the directory holding it.
func (b *Builder) scanDirectories(dir string) ([]ControllerFile, error) {
	matches, err := b.glob(dir, b.opts.DirectoryIdentifier)
	if err != nil {
		return nil, fmt.Errorf("directory identifier: %w", err)
	}

	var found []ControllerFile
	for _, rel := range matches {
		// path/to/test_controller/index.js -> [path to test_controller index.js]
		segments := strings.Split(rel, "/")
		if len(segments) < 2 {
			// Files directly in the controllers directory have no directory name.
			continue
		}
		dirName := segments[len(segments)-2]

		if b.opts.ControllerDirectorySuffix != nil && !b.opts.ControllerDirectorySuffix.MatchString(dirName) {
			continue
		}

		name := joinIdentifier(segments[:len(segments)-2], stripSuffix(dirName, b.opts.ControllerDirectorySuffix), b.opts.DirectorySeparator)
		path := filepath.Join(dir, filepath.FromSlash(rel))
		b.trace(fmt.Sprintf("directory controller %q -> %s", name, path))

		found = append(found, ControllerFile{Name: name, Path: path})
	}

	return found, nil
}

func (b *Builder) glob(dir, pattern string) ([]string, error) {
	return fileutil.GlobFiles(b.fs, dir, fileutil.GlobOptions{
		Pattern:          pattern,
		IncludeHidden:    b.opts.IncludeHidden,
		ExcludeDirs:      b.opts.ExcludeDirs,
		RespectGitignore: b.opts.RespectGitignore,
	})
}
