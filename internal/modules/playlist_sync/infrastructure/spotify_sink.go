package infrastructure

import (
	"context"
	"fmt"

	"github.com/sglre6355/musicow/internal/modules/playlist_sync/application/ports"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/domain"
	"github.com/zmb3/spotify/v2"
)

// SpotifyPlaylistSink implements PlaylistSink on the Spotify Web API.
type SpotifyPlaylistSink struct {
	client *spotify.Client
}

// NewSpotifyPlaylistSink creates a new SpotifyPlaylistSink.
// The client must already be authenticated.
func NewSpotifyPlaylistSink(client *spotify.Client) *SpotifyPlaylistSink {
	return &SpotifyPlaylistSink{client: client}
}

// CurrentAccount returns the account the client is authenticated as.
func (s *SpotifyPlaylistSink) CurrentAccount(ctx context.Context) (*domain.Account, error) {
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	return &domain.Account{
		ID:          user.ID,
		DisplayName: user.DisplayName,
	}, nil
}

// ListPlaylists returns one page of the owner's playlists.
func (s *SpotifyPlaylistSink) ListPlaylists(
	ctx context.Context,
	ownerID string,
	limit, offset int,
) (*ports.PlaylistPage, error) {
	page, err := s.client.GetPlaylistsForUser(ctx, ownerID,
		spotify.Limit(limit),
		spotify.Offset(offset),
	)
	if err != nil {
		return nil, err
	}

	playlists := make([]ports.PlaylistSummary, len(page.Playlists))
	for i, p := range page.Playlists {
		playlists[i] = ports.PlaylistSummary{
			ID:   domain.PlaylistID(p.ID),
			Name: p.Name,
		}
	}

	return &ports.PlaylistPage{
		Playlists: playlists,
		HasNext:   page.Next != "",
	}, nil
}

// CreatePlaylist creates a non-collaborative playlist without a description.
func (s *SpotifyPlaylistSink) CreatePlaylist(
	ctx context.Context,
	ownerID, name string,
	public bool,
) (domain.PlaylistID, error) {
	playlist, err := s.client.CreatePlaylistForUser(ctx, ownerID, name, "", public, false)
	if err != nil {
		return "", err
	}
	return domain.PlaylistID(playlist.ID), nil
}

// AddTracks appends tracks to the playlist.
// Spotify addresses playlists by ID alone, so ownerID is not sent.
func (s *SpotifyPlaylistSink) AddTracks(
	ctx context.Context,
	_ string,
	playlistID domain.PlaylistID,
	tracks []domain.TrackRef,
) error {
	if len(tracks) == 0 {
		return nil
	}

	ids := make([]spotify.ID, len(tracks))
	for i, track := range tracks {
		ids[i] = spotify.ID(track)
	}

	_, err := s.client.AddTracksToPlaylist(ctx, spotify.ID(playlistID), ids...)
	return err
}

// Ensure SpotifyPlaylistSink implements PlaylistSink.
var _ ports.PlaylistSink = (*SpotifyPlaylistSink)(nil)
