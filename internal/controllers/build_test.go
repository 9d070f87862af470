package controllers

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNestedScenario(t *testing.T) {
	fs := newTestFs(t, "test_controller.js", "nested/test_controller.js")
	opts := DefaultOptions()
	opts.ControllerSuffix = suffixOnly

	result, err := Build(fs, controllersRoot, opts)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"test", "nested--test"}, identifiers(result.Definitions))
	// Lexicographic traversal puts "nested/" before "test_controller.js"
	assert.Equal(t, []string{"nested--test", "test"}, identifiers(result.Definitions))
	assert.Equal(t, []string{"nested__test0", "test1"}, bindings(result.Definitions))

	assert.Equal(t, 2, strings.Count(result.Source, "import "))
	assert.Contains(t, result.Source, fmt.Sprintf("import nested__test0 from %q;", rootPath("nested/test_controller.js")))
	assert.Contains(t, result.Source, fmt.Sprintf("import test1 from %q;", rootPath("test_controller.js")))
}

func TestBuildDirectorySeparator(t *testing.T) {
	fs := newTestFs(t, "a/b/name_controller.ts")

	t.Run("default separator", func(t *testing.T) {
		result, err := Build(fs, controllersRoot, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, []string{"a--b--name"}, identifiers(result.Definitions))
		assert.Equal(t, []string{"a__b__name0"}, bindings(result.Definitions))
	})

	t.Run("custom separator", func(t *testing.T) {
		opts := DefaultOptions()
		opts.DirectorySeparator = "/"
		result, err := Build(fs, controllersRoot, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"a/b/name"}, identifiers(result.Definitions))
	})
}

func TestBuildSuffixFiltering(t *testing.T) {
	fs := newTestFs(t,
		"hello_controller.js",
		"world-controller.TSX",
		"helpers/format.js",
		"README.md",
	)

	t.Run("default suffix", func(t *testing.T) {
		result, err := Build(fs, controllersRoot, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, []string{"hello", "world"}, identifiers(result.Definitions))
	})

	t.Run("no suffix keeps every file", func(t *testing.T) {
		opts := DefaultOptions()
		opts.ControllerSuffix = nil
		result, err := Build(fs, controllersRoot, opts)
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"README.md", "hello_controller.js", "helpers--format.js", "world-controller.TSX"},
			identifiers(result.Definitions))
		assert.Equal(t, "README_md0", result.Definitions[0].BindingName)
	})
}

func TestBuildDirectoryMode(t *testing.T) {
	fs := newTestFs(t,
		"controller.js",
		"widgets/controller.js",
		"admin/users/controller.js",
		"widgets/helper.js",
	)
	opts := DefaultOptions()
	opts.FileIdentifier = ""
	opts.DirectoryIdentifier = "**/controller.js"

	result, err := Build(fs, controllersRoot, opts)
	require.NoError(t, err)

	// Top-level controller.js has no directory to be named after
	assert.Equal(t, []string{"admin--users", "widgets"}, identifiers(result.Definitions))
	assert.Equal(t, rootPath("widgets/controller.js"), result.Definitions[1].Path)
}

func TestBuildDirectoryModeSuffix(t *testing.T) {
	fs := newTestFs(t,
		"date_picker_controller/index.js",
		"shared/index.js",
	)
	opts := DefaultOptions()
	opts.FileIdentifier = ""
	opts.DirectoryIdentifier = "**/index.js"
	opts.ControllerDirectorySuffix = regexp.MustCompile(`_controller$`)

	result, err := Build(fs, controllersRoot, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"date_picker"}, identifiers(result.Definitions))
}

func TestBuildBothModesFileModeFirst(t *testing.T) {
	fs := newTestFs(t,
		"zebra_controller.js",
		"alpha/index.js",
	)
	opts := DefaultOptions()
	opts.DirectoryIdentifier = "**/index.js"

	result, err := Build(fs, controllersRoot, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "alpha"}, identifiers(result.Definitions))
	assert.Equal(t, []string{"zebra0", "alpha1"}, bindings(result.Definitions))
}

// duplicateFs has two files deriving "a" ("a-controller.ts" sorts first)
// followed by "b".
func duplicateFs(t *testing.T) afero.Fs {
	return newTestFs(t, "a-controller.ts", "a_controller.js", "b_controller.js")
}

func TestBuildDuplicateIgnore(t *testing.T) {
	result, err := Build(duplicateFs(t), controllersRoot, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, identifiers(result.Definitions))
	assert.Equal(t, []string{"a0", "b1"}, bindings(result.Definitions))
	assert.Equal(t, rootPath("a-controller.ts"), result.Definitions[0].Path)
	assert.NotContains(t, result.Source, "a_controller.js")
}

func TestBuildDuplicateIgnoreIsZeroValue(t *testing.T) {
	opts := DefaultOptions()
	opts.DuplicateHandling = DuplicateHandling{}

	result, err := Build(duplicateFs(t), controllersRoot, opts)
	require.NoError(t, err)
	assert.Equal(t, rootPath("a-controller.ts"), result.Definitions[0].Path)
}

func TestBuildDuplicateReplace(t *testing.T) {
	opts := DefaultOptions()
	opts.DuplicateHandling = StaticHandling(DuplicateReplace)

	result, err := Build(duplicateFs(t), controllersRoot, opts)
	require.NoError(t, err)

	// The slot keeps its position and number; path becomes the newcomer's
	assert.Equal(t, []string{"a", "b"}, identifiers(result.Definitions))
	assert.Equal(t, []string{"a0", "b1"}, bindings(result.Definitions))
	assert.Equal(t, rootPath("a_controller.js"), result.Definitions[0].Path)
	assert.NotContains(t, result.Source, "a-controller.ts")
	assert.Equal(t, 2, strings.Count(result.Source, "import "))
}

func TestBuildDuplicateError(t *testing.T) {
	opts := DefaultOptions()
	opts.DuplicateHandling = StaticHandling(DuplicateError)
	opts.Strict = false

	result, err := Build(duplicateFs(t), controllersRoot, opts)
	require.Error(t, err, "duplicate errors are raised regardless of strict")
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrDuplicateDefinition))

	var dup *DuplicateDefinitionError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, DefinitionInfo{Identifier: "a", BindingName: "a0", Path: rootPath("a-controller.ts")}, dup.Existing)
	assert.Equal(t, DefinitionInfo{Identifier: "a", BindingName: "a1", Path: rootPath("a_controller.js")}, dup.Duplicate)
}

func TestBuildDuplicateCallback(t *testing.T) {
	var calls []DefinitionInfo
	opts := DefaultOptions()
	opts.DuplicateHandling = DecideWith(func(existing, duplicate DefinitionInfo) DuplicatePolicy {
		calls = append(calls, existing, duplicate)
		if strings.HasSuffix(duplicate.Path, ".js") {
			return DuplicateReplace
		}
		return DuplicateIgnore
	})

	result, err := Build(duplicateFs(t), controllersRoot, opts)
	require.NoError(t, err)

	require.Len(t, calls, 2, "called once per duplicate occurrence")
	assert.Equal(t, rootPath("a-controller.ts"), calls[0].Path)
	assert.Equal(t, rootPath("a_controller.js"), calls[1].Path)
	assert.Equal(t, rootPath("a_controller.js"), result.Definitions[0].Path)
}

func TestBuildDuplicateCallbackError(t *testing.T) {
	opts := DefaultOptions()
	opts.DuplicateHandling = DecideWith(func(existing, duplicate DefinitionInfo) DuplicatePolicy {
		return DuplicateError
	})

	_, err := Build(duplicateFs(t), controllersRoot, opts)
	assert.ErrorIs(t, err, ErrDuplicateDefinition)
}

func TestBuildRepeatedDuplicatesReplaceInPlace(t *testing.T) {
	fs := newTestFs(t, "x-controller.js", "x-controller.ts", "x_controller.js", "y_controller.js")
	opts := DefaultOptions()
	opts.DuplicateHandling = StaticHandling(DuplicateReplace)

	result, err := Build(fs, controllersRoot, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y"}, identifiers(result.Definitions))
	assert.Equal(t, []string{"x0", "y1"}, bindings(result.Definitions))
	assert.Equal(t, rootPath("x_controller.js"), result.Definitions[0].Path)
}

func TestBuildNotADirectory(t *testing.T) {
	fs := newTestFs(t, "hello_controller.js")
	missing := rootPath("missing")
	file := rootPath("hello_controller.js")

	for _, path := range []string{missing, file} {
		t.Run("strict "+path, func(t *testing.T) {
			result, err := Build(fs, path, DefaultOptions())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrNotADirectory)

			var notDir *NotADirectoryError
			require.True(t, errors.As(err, &notDir))
			assert.Equal(t, path, notDir.Path)
		})

		t.Run("non-strict "+path, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Strict = false
			result, err := Build(fs, path, opts)
			require.NoError(t, err)
			assert.Empty(t, result.Definitions)
			assert.Equal(t, EmptyModuleSource, result.Source)
		})
	}
}

func TestBuildEmptyDirectory(t *testing.T) {
	result, err := Build(newTestFs(t), controllersRoot, DefaultOptions())
	require.NoError(t, err)
	assert.NotNil(t, result.Definitions)
	assert.Empty(t, result.Definitions)
	assert.Equal(t, "export default [];\n", result.Source)
}

func TestBuildScanFilters(t *testing.T) {
	fs := newTestFs(t,
		"hello_controller.js",
		".hidden_controller.js",
		".cache/cached_controller.js",
		"node_modules/pkg/dep_controller.js",
		"legacy/old_controller.js",
	)
	require.NoError(t, afero.WriteFile(fs, rootPath(".gitignore"), []byte("legacy/\n"), 0644))

	t.Run("defaults skip hidden entries", func(t *testing.T) {
		result, err := Build(fs, controllersRoot, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, []string{"hello", "legacy--old", "node_modules--pkg--dep"}, identifiers(result.Definitions))
	})

	t.Run("include hidden", func(t *testing.T) {
		opts := DefaultOptions()
		opts.IncludeHidden = true
		result, err := Build(fs, controllersRoot, opts)
		require.NoError(t, err)
		assert.Contains(t, identifiers(result.Definitions), ".hidden")
		assert.Contains(t, identifiers(result.Definitions), ".cache--cached")
	})

	t.Run("exclude dirs and gitignore", func(t *testing.T) {
		opts := DefaultOptions()
		opts.ExcludeDirs = []string{"node_modules"}
		opts.RespectGitignore = true
		result, err := Build(fs, controllersRoot, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"hello"}, identifiers(result.Definitions))
	})
}

func TestBuildInvalidGlob(t *testing.T) {
	opts := DefaultOptions()
	opts.FileIdentifier = "[unclosed"

	_, err := Build(newTestFs(t, "a_controller.js"), controllersRoot, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file identifier")
}

func TestBuildDistinctOutput(t *testing.T) {
	files := []string{"one_controller.js", "two_controller.js", "deep/three_controller.ts", "deep/er/four_controller.jsx"}
	result, err := Build(newTestFs(t, files...), controllersRoot, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Definitions, len(files))
	seenIDs := make(map[string]bool)
	seenBindings := make(map[string]bool)
	for _, def := range result.Definitions {
		assert.False(t, seenIDs[def.Identifier], "identifier %s repeated", def.Identifier)
		assert.False(t, seenBindings[def.BindingName], "binding %s repeated", def.BindingName)
		seenIDs[def.Identifier] = true
		seenBindings[def.BindingName] = true
	}
	assert.Equal(t, len(files), strings.Count(result.Source, "import "))
	assert.Equal(t, len(files), strings.Count(result.Source, "{identifier: "))
}

func TestBuildBindingNamesNeverCollide(t *testing.T) {
	// "a1" at slot 1 and "a" at slot 11 both sanitize to a11
	files := []string{"a_controller.js", "a9z_controller.js"}
	for i := 0; i < 10; i++ {
		files = append(files, fmt.Sprintf("a%d_controller.js", i))
	}

	result, err := Build(newTestFs(t, files...), controllersRoot, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Definitions, 12)

	owners := make(map[string]string)
	for _, def := range result.Definitions {
		prev, taken := owners[def.BindingName]
		assert.False(t, taken, "binding %s shared by %q and %q", def.BindingName, prev, def.Identifier)
		owners[def.BindingName] = def.Identifier
	}

	assert.Equal(t, "a1", owners["a11"])
	assert.Equal(t, "a", result.Definitions[11].Identifier)
	assert.Equal(t, "a_11", result.Definitions[11].BindingName)
	assert.Equal(t, "a9z10", result.Definitions[10].BindingName)
	assert.Equal(t, 1, strings.Count(result.Source, "import a11 from "))
}

func TestBuildReplaceKeepsDisambiguatedBinding(t *testing.T) {
	// "a1" takes a10 at slot 0, so "a" at slot 10 falls back to a_10
	files := []string{"a_controller.js", "a_controller.ts", "a9z_controller.js"}
	for i := 1; i < 10; i++ {
		files = append(files, fmt.Sprintf("a%d_controller.js", i))
	}
	opts := DefaultOptions()
	opts.DuplicateHandling = StaticHandling(DuplicateReplace)

	result, err := Build(newTestFs(t, files...), controllersRoot, opts)
	require.NoError(t, err)
	require.Len(t, result.Definitions, 11)

	assert.Equal(t, "a10", result.Definitions[0].BindingName)
	last := result.Definitions[10]
	assert.Equal(t, "a", last.Identifier)
	assert.Equal(t, "a_10", last.BindingName)
	assert.Equal(t, rootPath("a_controller.ts"), last.Path)
}

func TestBuildIdempotent(t *testing.T) {
	fs := newTestFs(t, "b_controller.js", "a/x_controller.js", "a_controller.js", "c/d/e_controller.ts")
	builder := NewBuilder(fs, DefaultOptions())

	first, err := builder.Build(controllersRoot)
	require.NoError(t, err)
	second, err := builder.Build(controllersRoot)
	require.NoError(t, err)

	assert.Equal(t, first.Definitions, second.Definitions)
	assert.Equal(t, first.Source, second.Source)
}

// TestBuilderConcurrent shares one builder across goroutines building
// different directories.
func TestBuilderConcurrent(t *testing.T) {
	fs := newTestFs(t,
		"admin/users_controller.js",
		"admin/roles_controller.js",
		"public/home_controller.js",
		"public/nested/menu_controller.js",
	)
	builder := NewBuilder(fs, DefaultOptions())

	dirs := []string{rootPath("admin"), rootPath("public")}
	want := make(map[string]string)
	for _, dir := range dirs {
		result, err := builder.Build(dir)
		require.NoError(t, err)
		want[dir] = result.Source
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(dir string) {
			defer wg.Done()
			result, err := builder.Build(dir)
			if assert.NoError(t, err) {
				assert.Equal(t, want[dir], result.Source)
			}
		}(dirs[i%len(dirs)])
	}
	wg.Wait()
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) LogTrace(message string) { l.record("TRACE " + message) }
func (l *recordingLogger) LogDebug(message string) { l.record("DEBUG " + message) }

func (l *recordingLogger) record(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

func TestBuilderWithLogger(t *testing.T) {
	fs := duplicateFs(t)
	log := &recordingLogger{}
	base := NewBuilder(fs, DefaultOptions())
	builder := base.WithLogger(log)

	_, err := builder.Build(controllersRoot)
	require.NoError(t, err)

	joined := strings.Join(log.lines, "\n")
	assert.Contains(t, joined, `TRACE file controller "b"`)
	assert.Contains(t, joined, `DEBUG duplicate "a": ignore`)
	assert.Contains(t, joined, "3 matches")

	// WithLogger returns a copy
	assert.Nil(t, base.logger)
	assert.Equal(t, base.Options().DirectorySeparator, builder.Options().DirectorySeparator)
}
