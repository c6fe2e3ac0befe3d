package discovery

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/viant/afs"
	"github.com/viant/asenabuild/inspector/graph"
)

type cacheEntry struct {
	hash    uint64
	exports []*Export
}

// Cache memoizes loaded exports per file, entries are invalidated when file content changes
type Cache struct {
	entries *lru.Cache[string, *cacheEntry]
	fs      afs.Service
	hits    int
	mux     sync.Mutex
}

// NewCache creates a cache holding up to size files
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[string, *cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries, fs: afs.New()}, nil
}

// Hits returns number of loads served from cache
func (c *Cache) Hits() int {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.hits
}

// Wrap returns loader consulting the cache before delegating
func (c *Cache) Wrap(loader Loader) Loader {
	return LoaderFunc(func(ctx context.Context, location string) ([]*Export, error) {
		content, err := c.fs.DownloadWithURL(ctx, location)
		if err != nil {
			return loader.Load(ctx, location)
		}
		hash, err := graph.Hash(content)
		if err != nil {
			return loader.Load(ctx, location)
		}
		if entry, ok := c.entries.Get(location); ok && entry.hash == hash {
			c.mux.Lock()
			c.hits++
			c.mux.Unlock()
			return entry.exports, nil
		}
		exports, err := loader.Load(ctx, location)
		if err != nil {
			return nil, err
		}
		c.entries.Add(location, &cacheEntry{hash: hash, exports: exports})
		return exports, nil
	})
}
