package domain

// DefaultPlaylistName is the display name of the managed playlist unless configured otherwise.
const DefaultPlaylistName = "Discord Import"

const playlistURLPrefix = "https://open.spotify.com/playlist/"

// PlaylistID is a Spotify playlist identifier.
type PlaylistID string

// String returns the raw playlist identifier.
func (id PlaylistID) String() string {
	return string(id)
}

// URL returns the public link to the playlist.
func (id PlaylistID) URL() string {
	return playlistURLPrefix + string(id)
}

// Account is the authenticated Spotify account that owns the managed playlist.
type Account struct {
	ID          string
	DisplayName string
}

// PlaylistSettings describes the playlist tracks are imported into.
type PlaylistSettings struct {
	Name   string
	Public bool
}

// ManagedPlaylist is the playlist this bot appends imported tracks to.
type ManagedPlaylist struct {
	OwnerID string
	ID      PlaylistID
	Name    string
	Public  bool
}
