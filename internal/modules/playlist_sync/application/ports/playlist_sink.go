package ports

import (
	"context"

	"github.com/sglre6355/musicow/internal/modules/playlist_sync/domain"
)

// PlaylistSink is the playlist service tracks are mirrored into.
type PlaylistSink interface {
	// CurrentAccount returns the authenticated account.
	CurrentAccount(ctx context.Context) (*domain.Account, error)

	// ListPlaylists returns one page of the owner's playlists starting at offset.
	ListPlaylists(ctx context.Context, ownerID string, limit, offset int) (*PlaylistPage, error)

	// CreatePlaylist creates a playlist owned by ownerID and returns its ID.
	CreatePlaylist(ctx context.Context, ownerID, name string, public bool) (domain.PlaylistID, error)

	// AddTracks appends tracks to the playlist in the given order.
	AddTracks(
		ctx context.Context,
		ownerID string,
		playlistID domain.PlaylistID,
		tracks []domain.TrackRef,
	) error
}
