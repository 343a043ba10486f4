package domain

// PlaylistCache maps playlist display names to playlist IDs for the life of the process.
type PlaylistCache interface {
	// Get returns the cached ID for name.
	Get(name string) (PlaylistID, bool)

	// Save caches id for name unless name is already cached,
	// and returns the ID that is cached afterwards.
	Save(name string, id PlaylistID) PlaylistID
}
