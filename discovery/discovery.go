package discovery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/asenabuild/inspector/graph"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidSourceFolder indicates that the source folder does not exist or can not be walked
var ErrInvalidSourceFolder = errors.New("invalid sourceFolder, please check the .asenarc.json")

// Discoverer turns a source folder into a map of relative file path to exported IoC components
type Discoverer struct {
	loader      Loader
	marker      Marker
	fs          afs.Service
	logger      *slog.Logger
	cache       *Cache
	projectDir  string
	concurrency int
	excluded    map[string]bool
	extensions  []string
}

// source represents a candidate source file
type source struct {
	location string // Absolute file location
	key      string // Path relative to the source folder
}

// New creates a discoverer
func New(loader Loader, marker Marker, opts ...Option) *Discoverer {
	ret := &Discoverer{
		loader:      loader,
		marker:      marker,
		fs:          afs.New(),
		logger:      slog.Default(),
		concurrency: DefaultConcurrency,
		extensions:  DefaultExtensions,
	}
	WithExcludedDirs(DefaultExcludedDirs...)(ret)
	for _, opt := range opts {
		opt(ret)
	}
	if ret.marker == nil {
		ret.marker = NewDecoratorMarker()
	}
	if ret.cache != nil {
		ret.loader = ret.cache.Wrap(ret.loader)
	}
	return ret
}

// Discover walks sourceFolder and loads each supported file except rootFile, keeping exported
// values carrying the IoC marker. A file failing to load contributes an empty list.
func (d *Discoverer) Discover(ctx context.Context, sourceFolder, rootFile string) (*graph.ComponentMap, error) {
	root := d.resolve(sourceFolder)
	sources, err := d.sources(ctx, root, d.resolve(rootFile))
	if err != nil {
		return nil, err
	}
	components := graph.NewComponentMap()
	mux := sync.Mutex{}
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(d.concurrency)
	for _, candidate := range sources {
		candidate := candidate
		group.Go(func() error {
			classes := d.load(ctx, candidate)
			mux.Lock()
			components.Set(candidate.key, classes)
			mux.Unlock()
			return ctx.Err()
		})
	}
	if err = group.Wait(); err != nil {
		return nil, err
	}
	return components, nil
}

func (d *Discoverer) load(ctx context.Context, candidate *source) []*graph.Class {
	exports, err := d.loader.Load(ctx, candidate.location)
	if err != nil {
		d.logger.Warn("failed to load source file", "path", candidate.key, "error", err)
		return nil
	}
	var classes []*graph.Class
	for _, export := range exports {
		if export == nil || export.Name == "" {
			continue
		}
		value, err := d.marker.Read(export)
		if err != nil {
			d.logger.Debug("failed to read marker", "path", candidate.key, "export", export.Name, "error", err)
			continue
		}
		if !Truthy(value) {
			continue
		}
		classes = append(classes, &graph.Class{
			Name:       export.Name,
			Path:       candidate.key,
			Decorators: export.Decorators,
			Default:    export.Default,
		})
	}
	d.logger.Debug("loaded source file", "path", candidate.key, "exports", len(exports), "components", len(classes))
	return classes
}

// sources walks root collecting supported files
func (d *Discoverer) sources(ctx context.Context, root, rootFile string) ([]*source, error) {
	if ok, _ := d.fs.Exists(ctx, root); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSourceFolder, root)
	}
	var result []*source
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if reader != nil {
			if closer, ok := reader.(io.Closer); ok {
				_ = closer.Close()
			}
		}
		if info.IsDir() {
			return !d.excluded[info.Name()], nil
		}
		if !d.match(info.Name()) {
			return true, nil
		}
		key := path.Join(filepath.ToSlash(parent), info.Name())
		location := filepath.Join(root, filepath.FromSlash(key))
		if location == rootFile {
			return true, nil
		}
		result = append(result, &source{location: location, key: key})
		return true, nil
	}
	if err := d.fs.Walk(ctx, root, visitor); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSourceFolder, err)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].key < result[j].key
	})
	return result, nil
}

// match returns true for supported source files, declaration files are skipped
func (d *Discoverer) match(name string) bool {
	if strings.HasSuffix(name, ".d.ts") || strings.HasSuffix(name, ".d.mts") || strings.HasSuffix(name, ".d.cts") {
		return false
	}
	ext := filepath.Ext(name)
	for _, candidate := range d.extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// resolve returns cleaned absolute location of a project relative path
func (d *Discoverer) resolve(location string) string {
	if !filepath.IsAbs(location) && d.projectDir != "" {
		location = filepath.Join(d.projectDir, location)
	}
	if abs, err := filepath.Abs(location); err == nil {
		location = abs
	}
	return filepath.Clean(location)
}
