package infrastructure

import (
	"sync"

	"github.com/sglre6355/musicow/internal/modules/playlist_sync/domain"
)

// MemoryPlaylistCache is an in-memory implementation of PlaylistCache.
// Entries live for the life of the process and are never replaced.
type MemoryPlaylistCache struct {
	mu  sync.RWMutex
	ids map[string]domain.PlaylistID
}

// NewMemoryPlaylistCache creates a new MemoryPlaylistCache.
func NewMemoryPlaylistCache() *MemoryPlaylistCache {
	return &MemoryPlaylistCache{
		ids: make(map[string]domain.PlaylistID),
	}
}

// Get returns the cached ID for name.
func (c *MemoryPlaylistCache) Get(name string) (domain.PlaylistID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.ids[name]
	return id, ok
}

// Save caches id for name unless name is already cached.
func (c *MemoryPlaylistCache) Save(name string, id domain.PlaylistID) domain.PlaylistID {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.ids[name]; ok {
		return existing
	}
	c.ids[name] = id
	return id
}

// Count returns the number of cached names (for testing/monitoring).
func (c *MemoryPlaylistCache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.ids)
}

// Ensure MemoryPlaylistCache implements PlaylistCache.
var _ domain.PlaylistCache = (*MemoryPlaylistCache)(nil)
