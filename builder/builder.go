// Package builder generates the framework entry file with discovered components and bundles it.
package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/asenabuild/builder/bootstrap"
	"github.com/viant/asenabuild/builder/imports"
	"github.com/viant/asenabuild/config"
	"github.com/viant/asenabuild/discovery"
	"github.com/viant/asenabuild/inspector/graph"
	"github.com/viant/asenabuild/inspector/locator"
	"github.com/viant/asenabuild/inspector/repository"
)

// ErrNoComponents indicates that discovery found no IoC component
var ErrNoComponents = errors.New("no components has found")

// ErrNoServer indicates that the root file has no bootstrap block
var ErrNoServer = errors.New("no AsenaServer has found")

// entryMarker is inserted before the root file extension to name the generated entry file
const entryMarker = ".asena"

// Result represents generated entry file
type Result struct {
	Source     string              // Root file content
	Code       string              // Generated entry file content
	Components *graph.ComponentMap // Discovered components
	Names      []string            // Component identifiers injected into the bootstrap block
	Shape      locator.Shape       // Bootstrap shape
	Style      graph.ImportStyle   // Import style of emitted statements
}

// Generator produces the entry file for a project
type Generator struct {
	config     *config.Config
	discoverer *discovery.Discoverer
	rewriter   *bootstrap.Rewriter
	detector   *repository.Detector
	bundler    Bundler
	fs         afs.Service
	logger     *slog.Logger
	style      *graph.ImportStyle
	closers    []func() error
}

// New creates a generator, discovery and bundler default to the configured ones
func New(cfg *config.Config, opts ...Option) (*Generator, error) {
	ret := &Generator{
		config:   cfg,
		rewriter: bootstrap.New(nil),
		detector: repository.New(),
		fs:       afs.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.discoverer == nil {
		discoverer, closer, err := NewDiscoverer(cfg, ret.logger)
		if err != nil {
			return nil, err
		}
		ret.discoverer = discoverer
		if closer != nil {
			ret.closers = append(ret.closers, closer)
		}
	}
	if ret.bundler == nil {
		ret.bundler = NewBunBundler(cfg.Discovery.Runtime)
	}
	return ret, nil
}

// Close releases loader resources
func (g *Generator) Close() error {
	var errs []error
	for _, closer := range g.closers {
		errs = append(errs, closer())
	}
	return errors.Join(errs...)
}

// RootPath returns absolute root file location
func (g *Generator) RootPath() string {
	return g.config.Path(g.config.RootFile)
}

// EntryPath returns generated entry file location, placed next to the root file
func (g *Generator) EntryPath() string {
	rootPath := g.RootPath()
	ext := filepath.Ext(rootPath)
	base := strings.TrimSuffix(filepath.Base(rootPath), ext)
	return filepath.Join(filepath.Dir(rootPath), base+entryMarker+ext)
}

// Generate reads the root file, discovers components and renders entry file code
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	rootPath := g.RootPath()
	content, err := g.fs.DownloadWithURL(ctx, rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read root file %s: %w", rootPath, err)
	}
	source := string(content)
	code, block, err := g.rewriter.Extract(source)
	if err != nil {
		return nil, fmt.Errorf("%w in %s: %w", ErrNoServer, g.config.RootFile, err)
	}
	style, err := g.importStyle(ctx)
	if err != nil {
		return nil, err
	}
	components, err := g.discoverer.Discover(ctx, g.config.SourceFolder, g.config.RootFile)
	if err != nil {
		return nil, err
	}
	if components.Count() == 0 {
		return nil, ErrNoComponents
	}
	g.logger.Debug("discovered components", "files", len(components.Paths()), "components", components.Count())

	merger := imports.New(code, style, imports.WithInternalMarker(g.config.InternalMarker))
	merged, err := merger.Merge(g.entryImports(components))
	if err != nil {
		return nil, err
	}
	injected, err := g.rewriter.Inject(block.Span.Raw, merger.Components())
	if err != nil {
		return nil, err
	}
	return &Result{
		Source:     source,
		Code:       strings.TrimRight(merged, " \t\r\n") + "\n\n" + strings.TrimSpace(injected) + "\n",
		Components: components,
		Names:      merger.Components(),
		Shape:      block.Shape,
		Style:      style,
	}, nil
}

// entryImports rebases component paths from the source folder onto the entry file folder
func (g *Generator) entryImports(components *graph.ComponentMap) *graph.ImportMap {
	prefix := ""
	sourcePath := g.config.Path(g.config.SourceFolder)
	if rel, err := filepath.Rel(filepath.Dir(g.RootPath()), sourcePath); err == nil && rel != "." {
		prefix = filepath.ToSlash(rel)
	}
	result := graph.NewImportMap()
	for _, location := range components.Paths() {
		classes, _ := components.Lookup(location)
		specifier := location
		if prefix != "" {
			specifier = path.Join(prefix, location)
		}
		for _, class := range classes {
			result.Add(specifier, class.Name)
		}
	}
	return result
}

func (g *Generator) importStyle(ctx context.Context) (graph.ImportStyle, error) {
	if g.style != nil {
		return *g.style, nil
	}
	style, found, err := g.detector.ImportStyle(ctx, g.config.ProjectDir)
	if err != nil {
		return style, err
	}
	if !found {
		g.logger.Debug("tsconfig.json not found, using commonjs imports", "project", g.config.ProjectDir)
	}
	return style, nil
}

// Write stores generated code in the entry file, unchanged content is not rewritten
func (g *Generator) Write(ctx context.Context, result *Result) (bool, error) {
	location := g.EntryPath()
	if ok, _ := g.fs.Exists(ctx, location); ok {
		if existing, err := g.fs.DownloadWithURL(ctx, location); err == nil {
			prev, _ := graph.Hash(existing)
			next, _ := graph.Hash([]byte(result.Code))
			if prev == next {
				g.logger.Debug("entry file unchanged", "path", location)
				return false, nil
			}
		}
	}
	if err := g.fs.Upload(ctx, location, 0o644, bytes.NewReader([]byte(result.Code))); err != nil {
		return false, fmt.Errorf("failed to write entry file %s: %w", location, err)
	}
	return true, nil
}

// RemoveEntry deletes generated entry file
func (g *Generator) RemoveEntry(ctx context.Context) error {
	location := g.EntryPath()
	if ok, _ := g.fs.Exists(ctx, location); !ok {
		g.logger.Debug("no entry file has found", "path", location)
		return nil
	}
	return g.fs.Delete(ctx, location)
}
