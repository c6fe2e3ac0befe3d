package config

import (
	"errors"
	"path/filepath"
)

// Config is the build configuration of an Asena project.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	SourceFolder   string          `mapstructure:"sourceFolder" yaml:"sourceFolder"`
	RootFile       string          `mapstructure:"rootFile" yaml:"rootFile"`
	BuildOptions   BuildOptions    `mapstructure:"buildOptions" yaml:"buildOptions"`
	Discovery      DiscoveryConfig `mapstructure:"discovery" yaml:"discovery"`
	InternalMarker string          `mapstructure:"internalMarker" yaml:"internalMarker"`

	// ProjectDir is the directory relative paths are resolved against
	ProjectDir string `mapstructure:"-" yaml:"-"`
}

// BuildOptions holds bundler options
type BuildOptions struct {
	Outdir    string   `mapstructure:"outdir" yaml:"outdir"`
	Sourcemap string   `mapstructure:"sourcemap" yaml:"sourcemap,omitempty"`
	Minify    bool     `mapstructure:"minify" yaml:"minify,omitempty"`
	External  []string `mapstructure:"external" yaml:"external,omitempty"`
	Format    string   `mapstructure:"format" yaml:"format,omitempty"`
	Drop      []string `mapstructure:"drop" yaml:"drop,omitempty"`
	// Executable builds a standalone binary instead of a bundle
	Executable bool `mapstructure:"executable" yaml:"executable,omitempty"`
}

// DiscoveryConfig holds component discovery settings
type DiscoveryConfig struct {
	Exclude     []string `mapstructure:"exclude" yaml:"exclude"`
	Extensions  []string `mapstructure:"extensions" yaml:"extensions"`
	Loader      string   `mapstructure:"loader" yaml:"loader"`
	Runtime     string   `mapstructure:"runtime" yaml:"runtime"`
	Concurrency int      `mapstructure:"concurrency" yaml:"concurrency"`
	Decorators  []string `mapstructure:"decorators" yaml:"decorators"`
	MetadataKey string   `mapstructure:"metadataKey" yaml:"metadataKey"`
	CacheSize   int      `mapstructure:"cacheSize" yaml:"cacheSize"`
	EnvFile     string   `mapstructure:"envFile" yaml:"envFile,omitempty"`
}

const (
	// LoaderProcess evaluates files in the script runtime and reads the framework marker, default
	LoaderProcess = "process"
	// LoaderStatic reads decorators without executing code
	LoaderStatic = "static"
)

// Sentinel errors for configuration validation.
var (
	// ErrMissingSourceFolder indicates the source folder is not set.
	ErrMissingSourceFolder = errors.New("sourceFolder is required")
	// ErrMissingRootFile indicates the root file is not set.
	ErrMissingRootFile = errors.New("rootFile is required")
	// ErrInvalidLoader indicates an unsupported discovery loader.
	ErrInvalidLoader = errors.New("discovery.loader must be static or process")
	// ErrInvalidConcurrency indicates the concurrency is negative.
	ErrInvalidConcurrency = errors.New("discovery.concurrency must be non-negative")
	// ErrInvalidCacheSize indicates the cache size is negative.
	ErrInvalidCacheSize = errors.New("discovery.cacheSize must be non-negative")
	// ErrMissingRuntime indicates the process loader has no runtime.
	ErrMissingRuntime = errors.New("discovery.runtime is required by process loader")
)

// Validate checks configuration values
func (c *Config) Validate() error {
	if c.SourceFolder == "" {
		return ErrMissingSourceFolder
	}
	if c.RootFile == "" {
		return ErrMissingRootFile
	}
	switch c.Discovery.Loader {
	case LoaderStatic:
	case LoaderProcess, "":
		if c.Discovery.Runtime == "" {
			return ErrMissingRuntime
		}
	default:
		return ErrInvalidLoader
	}
	if c.Discovery.Concurrency < 0 {
		return ErrInvalidConcurrency
	}
	if c.Discovery.CacheSize < 0 {
		return ErrInvalidCacheSize
	}
	return nil
}

// Path resolves a project relative location
func (c *Config) Path(location string) string {
	if filepath.IsAbs(location) || c.ProjectDir == "" {
		return location
	}
	return filepath.Join(c.ProjectDir, location)
}

// ExcludedDirs returns directory names skipped by discovery, the build output included
func (c *Config) ExcludedDirs() []string {
	result := append([]string{}, c.Discovery.Exclude...)
	if c.BuildOptions.Outdir == "" {
		return result
	}
	outdir := filepath.Base(filepath.Clean(c.BuildOptions.Outdir))
	if outdir == "." || outdir == string(filepath.Separator) {
		return result
	}
	for _, name := range result {
		if name == outdir {
			return result
		}
	}
	return append(result, outdir)
}
