package builder

import (
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/asenabuild/discovery"
	"github.com/viant/asenabuild/inspector/graph"
)

type Option func(*Generator)

// WithDiscoverer sets component discoverer
func WithDiscoverer(discoverer *discovery.Discoverer) Option {
	return func(g *Generator) {
		g.discoverer = discoverer
	}
}

// WithBundler sets bundler used by Build
func WithBundler(bundler Bundler) Option {
	return func(g *Generator) {
		g.bundler = bundler
	}
}

// WithImportStyle overrides import style detected from tsconfig.json
func WithImportStyle(style graph.ImportStyle) Option {
	return func(g *Generator) {
		g.style = &style
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithFS sets file system service
func WithFS(fs afs.Service) Option {
	return func(g *Generator) {
		g.fs = fs
	}
}
