package services

import "sync"

/*
AlbumImageCache maps a CDN tag to its listed image identifiers. Entries live
for the lifetime of the process and are only removed by an explicit Delete.
*/
type AlbumImageCache struct {
	mu      sync.RWMutex
	entries map[string][]string
}

func NewAlbumImageCache() *AlbumImageCache {
	return &AlbumImageCache{
		entries: map[string][]string{},
	}
}

func (c *AlbumImageCache) Get(tag string) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids, ok := c.entries[tag]
	if !ok {
		return nil, false
	}

	return clone(ids), true
}

func (c *AlbumImageCache) Set(tag string, ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[tag] = clone(ids)
}

func (c *AlbumImageCache) Delete(tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, tag)
}

func (c *AlbumImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func clone(ids []string) []string {
	result := make([]string, len(ids))
	copy(result, ids)
	return result
}
