// Package plugin wires controller discovery into esbuild.
//
// Importing "stimulus:./controllers" from a bundled file makes esbuild call
// the OnResolve hook, which maps the specifier to a directory in the
// stimulus-controllers namespace. The OnLoad hook for that namespace then
// generates the controller table module.
package plugin

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/spf13/afero"

	"github.com/harrison/stimgen/internal/controllers"
	"github.com/harrison/stimgen/internal/fileutil"
	"github.com/harrison/stimgen/internal/resolver"
)

// Name is the esbuild plugin name.
const Name = "stimulus"

// resolveFilter matches the prefix followed by at least one character.
var resolveFilter = "^" + regexp.QuoteMeta(resolver.Prefix) + "."

// Logger receives plugin diagnostics. *logger.ConsoleLogger satisfies it.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogWarn(message string)
}

type config struct {
	opts   controllers.Options
	fs     afero.Fs
	logger Logger
}

// Option configures the plugin.
type Option func(*config)

// WithControllerOptions sets the discovery options. Defaults to
// controllers.DefaultOptions().
func WithControllerOptions(opts controllers.Options) Option {
	return func(c *config) {
		c.opts = opts
	}
}

// WithFs sets the filesystem the hooks read from. Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(c *config) {
		c.fs = fsys
	}
}

// WithLogger sets the logger for resolution and discovery diagnostics.
func WithLogger(logger Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New returns the esbuild plugin.
func New(options ...Option) api.Plugin {
	cfg := &config{
		opts: controllers.DefaultOptions(),
		fs:   afero.NewOsFs(),
	}
	for _, opt := range options {
		opt(cfg)
	}

	res := resolver.New(cfg.fs)
	builder := controllers.NewBuilder(cfg.fs, cfg.opts)
	if cfg.logger != nil {
		builder = builder.WithLogger(cfg.logger)
	}

	h := &hooks{fs: cfg.fs, resolver: res, builder: builder, logger: cfg.logger}

	return api.Plugin{
		Name: Name,
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: resolveFilter}, h.onResolve)
			build.OnLoad(api.OnLoadOptions{Filter: ".*", Namespace: resolver.Namespace}, h.onLoad)
		},
	}
}

// hooks holds the shared, read-only state used by the esbuild callbacks.
type hooks struct {
	fs       afero.Fs
	resolver *resolver.Resolver
	builder  *controllers.Builder
	logger   Logger
}

func (h *hooks) onResolve(args api.OnResolveArgs) (api.OnResolveResult, error) {
	res := h.resolver.Resolve(args.Path, args.Importer)
	h.debug(fmt.Sprintf("resolved %s (from %s) -> %s", args.Path, args.Importer, res.Path))

	return api.OnResolveResult{
		Path:      res.Path,
		Namespace: res.Namespace,
	}, nil
}

func (h *hooks) onLoad(args api.OnLoadArgs) (api.OnLoadResult, error) {
	result, err := h.builder.Build(args.Path)
	if err != nil {
		if msg, ok := buildMessage(err); ok {
			h.warn(msg.Text)
			return api.OnLoadResult{Errors: []api.Message{msg}}, nil
		}
		return api.OnLoadResult{}, err
	}

	contents := result.Source
	loaded := api.OnLoadResult{
		Contents: &contents,
		Loader:   api.LoaderJS,
	}

	// esbuild wants an absolute resolve directory; watch mode regenerates the
	// table when the directory changes.
	if dir, err := filepath.Abs(args.Path); err == nil && fileutil.IsDir(h.fs, dir) {
		loaded.ResolveDir = dir
		loaded.WatchDirs = []string{dir}
	} else {
		h.warn(fmt.Sprintf("controllers directory %s not found, generated an empty list", args.Path))
	}

	return loaded, nil
}

// buildMessage converts the structured discovery errors into esbuild messages.
// Other errors are reported by esbuild as plugin failures.
func buildMessage(err error) (api.Message, bool) {
	var notDir *controllers.NotADirectoryError
	var dup *controllers.DuplicateDefinitionError

	switch {
	case errors.As(err, &notDir):
		return api.Message{Text: notDir.Error()}, true
	case errors.As(err, &dup):
		return api.Message{Text: dup.Error()}, true
	default:
		return api.Message{}, false
	}
}

func (h *hooks) debug(message string) {
	if h.logger != nil {
		h.logger.LogDebug(message)
	}
}

func (h *hooks) warn(message string) {
	if h.logger != nil {
		h.logger.LogWarn(message)
	}
}
