package workbook

import (
	"sync"

	"github.com/go-gota/gota/dataframe"
)

type cacheKey struct {
	digest  string
	section string
}

// CachedLoader memoizes another Loader by (content digest, section). Sources
// are immutable, so an entry never goes stale. Callers own the instance;
// there is no package-level cache.
type CachedLoader struct {
	next Loader

	mu      sync.Mutex
	entries map[cacheKey]dataframe.DataFrame
	hits    int
	misses  int
}

func NewCachedLoader(next Loader) *CachedLoader {
	return &CachedLoader{
		next:    next,
		entries: make(map[cacheKey]dataframe.DataFrame),
	}
}

func (c *CachedLoader) Load(src Source, section string) dataframe.DataFrame {
	key := cacheKey{digest: src.Digest, section: section}

	c.mu.Lock()
	if df, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return df
	}
	c.mu.Unlock()

	// Loads run unlocked so the two directions can read different sections in
	// parallel; a concurrent miss on the same key just loads twice.
	df := c.next.Load(src, section)

	c.mu.Lock()
	c.misses++
	c.entries[key] = df
	c.mu.Unlock()
	return df
}

// Stats returns hit and miss counts.
func (c *CachedLoader) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Forget drops every entry of one source.
func (c *CachedLoader) Forget(digest string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.digest == digest {
			delete(c.entries, k)
		}
	}
}
