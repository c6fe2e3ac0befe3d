package discovery

import (
	"log/slog"

	"github.com/viant/afs"
)

type Option func(*Discoverer)

// DefaultExcludedDirs lists directory names never walked
var DefaultExcludedDirs = []string{"node_modules", ".git"}

// DefaultExtensions lists supported source file extensions
var DefaultExtensions = []string{".ts", ".js", ".mts", ".mjs", ".cts", ".cjs", ".tsx", ".jsx"}

// DefaultConcurrency is the number of files loaded in parallel
const DefaultConcurrency = 8

// WithExcludedDirs sets directory names skipped during walk (dependency caches, build outputs)
func WithExcludedDirs(names ...string) Option {
	return func(d *Discoverer) {
		d.excluded = map[string]bool{}
		for _, name := range names {
			d.excluded[name] = true
		}
	}
}

// WithExtensions sets supported source file extensions
func WithExtensions(extensions ...string) Option {
	return func(d *Discoverer) {
		d.extensions = extensions
	}
}

// WithConcurrency limits number of files loaded in parallel
func WithConcurrency(n int) Option {
	return func(d *Discoverer) {
		if n > 0 {
			d.concurrency = n
		}
	}
}

// WithLogger sets logger used for soft load failures
func WithLogger(logger *slog.Logger) Option {
	return func(d *Discoverer) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithFS sets file system service used to walk the source folder
func WithFS(fs afs.Service) Option {
	return func(d *Discoverer) {
		d.fs = fs
	}
}

// WithProjectDir sets directory relative source folder and root file paths are resolved against
func WithProjectDir(dir string) Option {
	return func(d *Discoverer) {
		d.projectDir = dir
	}
}

// WithCache memoizes loaded exports by file content hash
func WithCache(cache *Cache) Option {
	return func(d *Discoverer) {
		d.cache = cache
	}
}
