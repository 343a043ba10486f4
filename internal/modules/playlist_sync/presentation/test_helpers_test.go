package presentation

import (
	"context"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/application/ports"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/application/usecases"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/domain"
)

// stubSink is a single-page PlaylistSink that records added tracks.
type stubSink struct {
	playlists []ports.PlaylistSummary
	err       error
	added     []domain.TrackRef
}

func (s *stubSink) CurrentAccount(_ context.Context) (*domain.Account, error) {
	return &domain.Account{ID: "owner"}, nil
}

func (s *stubSink) ListPlaylists(ctx context.Context, _ string, _, _ int) (*ports.PlaylistPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return &ports.PlaylistPage{Playlists: s.playlists}, nil
}

func (s *stubSink) CreatePlaylist(_ context.Context, _, name string, _ bool) (domain.PlaylistID, error) {
	if s.err != nil {
		return "", s.err
	}
	s.playlists = append(s.playlists, ports.PlaylistSummary{ID: "created", Name: name})
	return "created", nil
}

func (s *stubSink) AddTracks(
	_ context.Context,
	_ string,
	_ domain.PlaylistID,
	tracks []domain.TrackRef,
) error {
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, tracks...)
	return nil
}

type mapCache map[string]domain.PlaylistID

func (c mapCache) Get(name string) (domain.PlaylistID, bool) {
	id, ok := c[name]
	return id, ok
}

func (c mapCache) Save(name string, id domain.PlaylistID) domain.PlaylistID {
	if existing, ok := c[name]; ok {
		return existing
	}
	c[name] = id
	return id
}

func newTestUpserter(t *testing.T, sink *stubSink, public bool) *usecases.PlaylistUpserter {
	t.Helper()

	upserter, err := usecases.NewPlaylistUpserter(
		sink,
		mapCache{},
		&domain.Account{ID: "owner"},
		domain.PlaylistSettings{Name: domain.DefaultPlaylistName, Public: public},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return upserter
}

func newTestMessageHandler(t *testing.T, sink *stubSink) *MessageHandler {
	t.Helper()

	scope := domain.NewChannelScope(snowflake.ID(100), snowflake.ID(200))
	importer := usecases.NewTrackImportService(scope, newTestUpserter(t, sink, false))
	return NewMessageHandler(context.Background(), importer)
}
