package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sglre6355/musicow/internal/modules/playlist_sync/application/ports"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/domain"
	"github.com/sglre6355/musicow/internal/telemetry"
)

// PlaylistPageSize is the number of playlists requested per listing page.
const PlaylistPageSize = 50

// AddTrackOutput contains the result of the AddTrack use case.
type AddTrackOutput struct {
	Playlist domain.ManagedPlaylist
	Track    domain.TrackRef
}

// PlaylistUpserter appends tracks to the managed playlist, creating it on first use.
// Calls are serialized so a cache miss never creates the playlist twice.
type PlaylistUpserter struct {
	mu       sync.Mutex
	sink     ports.PlaylistSink
	cache    domain.PlaylistCache
	owner    domain.Account
	settings domain.PlaylistSettings
}

// NewPlaylistUpserter creates a new PlaylistUpserter.
func NewPlaylistUpserter(
	sink ports.PlaylistSink,
	cache domain.PlaylistCache,
	owner *domain.Account,
	settings domain.PlaylistSettings,
) (*PlaylistUpserter, error) {
	if owner == nil || owner.ID == "" {
		return nil, ErrNoAccount
	}
	if settings.Name == "" {
		return nil, ErrEmptyPlaylistName
	}

	return &PlaylistUpserter{
		sink:     sink,
		cache:    cache,
		owner:    *owner,
		settings: settings,
	}, nil
}

// ResolvePlaylist returns the ID of the owner's playlist called name.
// It consults the cache, then scans the owner's playlists page by page, and
// finally creates the playlist if no match exists.
func (u *PlaylistUpserter) ResolvePlaylist(ctx context.Context, name string) (domain.PlaylistID, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.resolve(ctx, name)
}

// ManagedPlaylist resolves the configured playlist and describes it.
func (u *PlaylistUpserter) ManagedPlaylist(ctx context.Context) (*domain.ManagedPlaylist, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	id, err := u.resolve(ctx, u.settings.Name)
	if err != nil {
		return nil, err
	}

	playlist := u.managed(id)
	return &playlist, nil
}

// AddTrack appends track to the managed playlist.
// Membership is not checked, so adding the same track twice appends it twice.
func (u *PlaylistUpserter) AddTrack(ctx context.Context, track domain.TrackRef) (*AddTrackOutput, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	start := time.Now()
	defer telemetry.ObserveSince(telemetry.AddTrackDuration, start)

	id, err := u.resolve(ctx, u.settings.Name)
	if err != nil {
		return nil, err
	}

	if err := u.sink.AddTracks(ctx, u.owner.ID, id, []domain.TrackRef{track}); err != nil {
		return nil, fmt.Errorf("failed to add track %s to playlist %s: %w", track, id, err)
	}

	return &AddTrackOutput{
		Playlist: u.managed(id),
		Track:    track,
	}, nil
}

func (u *PlaylistUpserter) resolve(ctx context.Context, name string) (domain.PlaylistID, error) {
	if name == "" {
		return "", ErrEmptyPlaylistName
	}

	if id, ok := u.cache.Get(name); ok {
		telemetry.Inc(telemetry.PlaylistCacheHits)
		return id, nil
	}

	id, found, err := u.findByName(ctx, name)
	if err != nil {
		return "", err
	}
	if found {
		slog.Debug("found existing playlist", "playlist", id, "name", name)
		return u.cache.Save(name, id), nil
	}

	id, err = u.sink.CreatePlaylist(ctx, u.owner.ID, name, u.settings.Public)
	if err != nil {
		return "", fmt.Errorf("failed to create playlist %q: %w", name, err)
	}
	telemetry.Inc(telemetry.PlaylistsCreated)

	slog.Info("created playlist",
		"playlist", id,
		"name", name,
		"owner", u.owner.ID,
		"public", u.settings.Public,
	)

	return u.cache.Save(name, id), nil
}

// findByName walks the owner's playlists in listing order and stops at the first exact name match.
func (u *PlaylistUpserter) findByName(
	ctx context.Context,
	name string,
) (domain.PlaylistID, bool, error) {
	for offset := 0; ; offset += PlaylistPageSize {
		page, err := u.sink.ListPlaylists(ctx, u.owner.ID, PlaylistPageSize, offset)
		if err != nil {
			return "", false, fmt.Errorf("failed to list playlists at offset %d: %w", offset, err)
		}
		telemetry.Inc(telemetry.PlaylistPagesListed)

		for _, playlist := range page.Playlists {
			if playlist.Name == name {
				return playlist.ID, true, nil
			}
		}

		if !page.HasNext || len(page.Playlists) == 0 {
			return "", false, nil
		}
	}
}

func (u *PlaylistUpserter) managed(id domain.PlaylistID) domain.ManagedPlaylist {
	return domain.ManagedPlaylist{
		OwnerID: u.owner.ID,
		ID:      id,
		Name:    u.settings.Name,
		Public:  u.settings.Public,
	}
}
