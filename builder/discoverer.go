package builder

import (
	"log/slog"

	"github.com/viant/asenabuild/config"
	"github.com/viant/asenabuild/discovery"
)

// NewDiscoverer creates discoverer with the configured loader and marker. Returned closer
// releases loader resources and may be nil.
func NewDiscoverer(cfg *config.Config, logger *slog.Logger) (*discovery.Discoverer, func() error, error) {
	var loader discovery.Loader
	var marker discovery.Marker
	var closer func() error
	switch cfg.Discovery.Loader {
	case config.LoaderStatic:
		loader = discovery.NewStaticLoader()
		marker = discovery.NewDecoratorMarker(cfg.Discovery.Decorators...)
	default:
		processLoader := discovery.NewProcessLoader(cfg.ProjectDir)
		processLoader.Runtime = cfg.Discovery.Runtime
		processLoader.MetadataKey = cfg.Discovery.MetadataKey
		if cfg.Discovery.EnvFile != "" {
			processLoader.EnvFile = cfg.Path(cfg.Discovery.EnvFile)
		}
		loader = processLoader
		marker = &discovery.MetadataMarker{Key: cfg.Discovery.MetadataKey}
		closer = processLoader.Close
	}
	options := []discovery.Option{
		discovery.WithProjectDir(cfg.ProjectDir),
		discovery.WithExcludedDirs(cfg.ExcludedDirs()...),
		discovery.WithConcurrency(cfg.Discovery.Concurrency),
		discovery.WithLogger(logger),
	}
	if len(cfg.Discovery.Extensions) > 0 {
		options = append(options, discovery.WithExtensions(cfg.Discovery.Extensions...))
	}
	if cfg.Discovery.CacheSize > 0 {
		cache, err := discovery.NewCache(cfg.Discovery.CacheSize)
		if err != nil {
			return nil, nil, err
		}
		options = append(options, discovery.WithCache(cache))
	}
	return discovery.New(loader, marker, options...), closer, nil
}
