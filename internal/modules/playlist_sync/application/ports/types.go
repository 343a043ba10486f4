package ports

import "github.com/sglre6355/musicow/internal/modules/playlist_sync/domain"

// PlaylistSummary is the subset of playlist data returned by listings.
type PlaylistSummary struct {
	ID   domain.PlaylistID
	Name string
}

// PlaylistPage is one page of a playlist listing.
type PlaylistPage struct {
	Playlists []PlaylistSummary
	HasNext   bool
}
