package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/harrison/stimgen/internal/controllers"
	"github.com/harrison/stimgen/internal/logger"
)

// BuildConfig holds the esbuild settings used by `stimgen build`
type BuildConfig struct {
	// EntryPoints are the files esbuild bundles
	EntryPoints []string `yaml:"entry_points"`

	// Outdir is where bundles are written
	Outdir string `yaml:"outdir"`

	// Format is the output module format (esm, iife, cjs)
	Format string `yaml:"format"`

	// Minify enables esbuild minification
	Minify bool `yaml:"minify"`

	// Sourcemap enables linked source maps
	Sourcemap bool `yaml:"sourcemap"`
}

// Config represents stimgen configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Strict fails the build when a controllers path is not a directory
	Strict bool `yaml:"strict"`

	// ControllerSuffix is the regexp filtering and stripped from controller
	// file names. Empty disables suffix handling.
	ControllerSuffix string `yaml:"controller_suffix"`

	// ControllerDirectorySuffix is the same for directory controllers
	ControllerDirectorySuffix string `yaml:"controller_directory_suffix"`

	// FileIdentifier is the glob for file controllers. Empty disables file mode.
	FileIdentifier string `yaml:"file_identifier"`

	// DirectoryIdentifier is the glob for directory controllers. Empty disables directory mode.
	DirectoryIdentifier string `yaml:"directory_identifier"`

	// DuplicateDefinitionHandling is one of error, ignore, replace
	DuplicateDefinitionHandling string `yaml:"duplicate_definition_handling"`

	// DirectorySeparator joins nested path segments into identifiers
	DirectorySeparator string `yaml:"directory_separator"`

	// IncludeHidden also scans dot-files and dot-directories
	IncludeHidden bool `yaml:"include_hidden"`

	// ExcludeDirs lists directory names never scanned
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// RespectGitignore skips files matched by the controllers directory's .gitignore
	RespectGitignore bool `yaml:"respect_gitignore"`

	// Build contains bundling configuration
	Build BuildConfig `yaml:"build"`

	// Path is the file the configuration was loaded from, empty for defaults
	Path string `yaml:"-"`
}

// DefaultConfig returns a Config with the stock discovery settings
func DefaultConfig() *Config {
	return &Config{
		LogLevel:                    "info",
		Strict:                      true,
		ControllerSuffix:            controllers.DefaultControllerSuffix,
		ControllerDirectorySuffix:   "",
		FileIdentifier:              controllers.DefaultFileIdentifier,
		DirectoryIdentifier:         "",
		DuplicateDefinitionHandling: "ignore",
		DirectorySeparator:          controllers.DefaultDirectorySeparator,
		IncludeHidden:               false,
		ExcludeDirs:                 []string{},
		RespectGitignore:            false,
		Build: BuildConfig{
			EntryPoints: []string{},
			Outdir:      "dist",
			Format:      "esm",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Only keys present in the file override defaults. Presence matters
	// because "strict: false" and "controller_suffix: null" are meaningful.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	present := func(m map[string]interface{}, key string) bool {
		_, ok := m[key]
		return ok
	}

	if present(rawMap, "log_level") {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if present(rawMap, "strict") {
		cfg.Strict = fileCfg.Strict
	}
	if present(rawMap, "controller_suffix") {
		cfg.ControllerSuffix = fileCfg.ControllerSuffix
	}
	if present(rawMap, "controller_directory_suffix") {
		cfg.ControllerDirectorySuffix = fileCfg.ControllerDirectorySuffix
	}
	if present(rawMap, "file_identifier") {
		cfg.FileIdentifier = fileCfg.FileIdentifier
	}
	if present(rawMap, "directory_identifier") {
		cfg.DirectoryIdentifier = fileCfg.DirectoryIdentifier
	}
	if present(rawMap, "duplicate_definition_handling") {
		cfg.DuplicateDefinitionHandling = fileCfg.DuplicateDefinitionHandling
	}
	if present(rawMap, "directory_separator") {
		cfg.DirectorySeparator = fileCfg.DirectorySeparator
	}
	if present(rawMap, "include_hidden") {
		cfg.IncludeHidden = fileCfg.IncludeHidden
	}
	if present(rawMap, "exclude_dirs") && fileCfg.ExcludeDirs != nil {
		cfg.ExcludeDirs = fileCfg.ExcludeDirs
	}
	if present(rawMap, "respect_gitignore") {
		cfg.RespectGitignore = fileCfg.RespectGitignore
	}

	if buildSection, ok := rawMap["build"].(map[string]interface{}); ok {
		build := fileCfg.Build
		if present(buildSection, "entry_points") && build.EntryPoints != nil {
			cfg.Build.EntryPoints = build.EntryPoints
		}
		if present(buildSection, "outdir") {
			cfg.Build.Outdir = build.Outdir
		}
		if present(buildSection, "format") {
			cfg.Build.Format = build.Format
		}
		if present(buildSection, "minify") {
			cfg.Build.Minify = build.Minify
		}
		if present(buildSection, "sourcemap") {
			cfg.Build.Sourcemap = build.Sourcemap
		}
	}

	cfg.Path = path

	return cfg, nil
}

// FlagOverrides carries CLI flag values. Nil fields were not set on the
// command line and leave the configuration untouched.
type FlagOverrides struct {
	LogLevel            *string
	Strict              *bool
	DirectorySeparator  *string
	Duplicates          *string
	FileIdentifier      *string
	DirectoryIdentifier *string
	Outdir              *string
	Format              *string
	Minify              *bool
	Sourcemap           *bool
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(flags FlagOverrides) {
	if flags.LogLevel != nil {
		c.LogLevel = *flags.LogLevel
	}
	if flags.Strict != nil {
		c.Strict = *flags.Strict
	}
	if flags.DirectorySeparator != nil {
		c.DirectorySeparator = *flags.DirectorySeparator
	}
	if flags.Duplicates != nil {
		c.DuplicateDefinitionHandling = *flags.Duplicates
	}
	if flags.FileIdentifier != nil {
		c.FileIdentifier = *flags.FileIdentifier
	}
	if flags.DirectoryIdentifier != nil {
		c.DirectoryIdentifier = *flags.DirectoryIdentifier
	}
	if flags.Outdir != nil {
		c.Build.Outdir = *flags.Outdir
	}
	if flags.Format != nil {
		c.Build.Format = *flags.Format
	}
	if flags.Minify != nil {
		c.Build.Minify = *flags.Minify
	}
	if flags.Sourcemap != nil {
		c.Build.Sourcemap = *flags.Sourcemap
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: %s", c.LogLevel, strings.Join(logger.ValidLevels, ", "))
	}

	if _, err := controllers.ParseDuplicatePolicy(c.DuplicateDefinitionHandling); err != nil {
		return err
	}

	if c.DirectorySeparator == "" {
		return fmt.Errorf("directory_separator cannot be empty")
	}

	if c.FileIdentifier == "" && c.DirectoryIdentifier == "" {
		return fmt.Errorf("file_identifier and directory_identifier cannot both be disabled")
	}

	for key, pattern := range map[string]string{
		"file_identifier":      c.FileIdentifier,
		"directory_identifier": c.DirectoryIdentifier,
	} {
		if pattern != "" && !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid %s glob %q", key, pattern)
		}
	}

	for key, expr := range map[string]string{
		"controller_suffix":           c.ControllerSuffix,
		"controller_directory_suffix": c.ControllerDirectorySuffix,
	} {
		if expr == "" {
			continue
		}
		if _, err := regexp.Compile(expr); err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, expr, err)
		}
	}

	switch c.Build.Format {
	case "esm", "iife", "cjs":
	default:
		return fmt.Errorf("invalid build.format %q, must be one of: esm, iife, cjs", c.Build.Format)
	}

	return nil
}

// Options converts the configuration into immutable discovery options.
// The configuration must be valid.
func (c *Config) Options() (controllers.Options, error) {
	if err := c.Validate(); err != nil {
		return controllers.Options{}, err
	}

	policy, _ := controllers.ParseDuplicatePolicy(c.DuplicateDefinitionHandling)

	opts := controllers.Options{
		Strict:              c.Strict,
		FileIdentifier:      c.FileIdentifier,
		DirectoryIdentifier: c.DirectoryIdentifier,
		DuplicateHandling:   controllers.StaticHandling(policy),
		DirectorySeparator:  c.DirectorySeparator,
		IncludeHidden:       c.IncludeHidden,
		ExcludeDirs:         append([]string(nil), c.ExcludeDirs...),
		RespectGitignore:    c.RespectGitignore,
	}
	if c.ControllerSuffix != "" {
		opts.ControllerSuffix = regexp.MustCompile(c.ControllerSuffix)
	}
	if c.ControllerDirectorySuffix != "" {
		opts.ControllerDirectorySuffix = regexp.MustCompile(c.ControllerDirectorySuffix)
	}

	return opts, nil
}
