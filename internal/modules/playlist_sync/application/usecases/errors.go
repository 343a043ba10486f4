package usecases

import "errors"

// Errors returned by the playlist sync use cases.
var (
	// ErrNoAccount is returned when the upserter is built without an owner account.
	ErrNoAccount = errors.New("no playlist owner account")

	// ErrEmptyPlaylistName is returned when a playlist is resolved by an empty name.
	ErrEmptyPlaylistName = errors.New("playlist name is empty")
)
