package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/sglre6355/musicow/internal/modules/playlist_sync/application/ports"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/domain"
)

func newTestUpserter(t *testing.T, sink *mockSink, cache mapCache) *PlaylistUpserter {
	t.Helper()

	upserter, err := NewPlaylistUpserter(sink, cache, testOwner, testSettings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return upserter
}

func TestNewPlaylistUpserter_Validation(t *testing.T) {
	sink := newMockSink()

	if _, err := NewPlaylistUpserter(sink, mapCache{}, nil, testSettings); !errors.Is(err, ErrNoAccount) {
		t.Errorf("expected error %v, got %v", ErrNoAccount, err)
	}

	_, err := NewPlaylistUpserter(sink, mapCache{}, testOwner, domain.PlaylistSettings{})
	if !errors.Is(err, ErrEmptyPlaylistName) {
		t.Errorf("expected error %v, got %v", ErrEmptyPlaylistName, err)
	}
}

func TestPlaylistUpserter_ResolvePlaylist_CacheHit(t *testing.T) {
	sink := newMockSink()
	cache := mapCache{"Discord Import": "cached-id"}
	upserter := newTestUpserter(t, sink, cache)

	id, err := upserter.ResolvePlaylist(context.Background(), "Discord Import")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id != "cached-id" {
		t.Errorf("expected id %q, got %q", "cached-id", id)
	}
	if len(sink.listCalls) != 0 || len(sink.createCalls) != 0 {
		t.Error("expected no sink calls on cache hit")
	}
}

func TestPlaylistUpserter_ResolvePlaylist_CreatesWhenMissing(t *testing.T) {
	sink := newMockSink().withPages(2)
	cache := mapCache{}
	upserter := newTestUpserter(t, sink, cache)

	id, err := upserter.ResolvePlaylist(context.Background(), "Discord Import")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sink.createCalls) != 1 {
		t.Fatalf("expected 1 create call, got %d", len(sink.createCalls))
	}
	created := sink.createCalls[0]
	if created.ownerID != "owner" || created.name != "Discord Import" || created.public {
		t.Errorf("unexpected create call %+v", created)
	}
	if cache["Discord Import"] != id {
		t.Errorf("expected created id %q to be cached, got %q", id, cache["Discord Import"])
	}
}

func TestPlaylistUpserter_ResolvePlaylist_IdempotentWithinRun(t *testing.T) {
	sink := newMockSink()
	upserter := newTestUpserter(t, sink, mapCache{})
	ctx := context.Background()

	first, err := upserter.ResolvePlaylist(ctx, "Discord Import")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := upserter.ResolvePlaylist(ctx, "Discord Import")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	third, err := upserter.ResolvePlaylist(ctx, "Discord Import")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second || second != third {
		t.Errorf("expected same id, got %q, %q, %q", first, second, third)
	}
	if len(sink.createCalls) != 1 {
		t.Errorf("expected 1 create call, got %d", len(sink.createCalls))
	}
	if len(sink.listCalls) != 1 {
		t.Errorf("expected 1 list call, got %d", len(sink.listCalls))
	}
}

func TestPlaylistUpserter_ResolvePlaylist_StopsAtFirstMatch(t *testing.T) {
	// Five full pages; the target sits on page 3.
	sink := newMockSink().withPages(5)
	target := 2*PlaylistPageSize + 7
	sink.playlists[target] = ports.PlaylistSummary{ID: "target-id", Name: "Discord Import"}

	upserter := newTestUpserter(t, sink, mapCache{})

	id, err := upserter.ResolvePlaylist(context.Background(), "Discord Import")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id != "target-id" {
		t.Errorf("expected id %q, got %q", "target-id", id)
	}
	if len(sink.createCalls) != 0 {
		t.Errorf("expected no create calls, got %d", len(sink.createCalls))
	}
	if len(sink.listCalls) != 3 {
		t.Fatalf("expected 3 list calls, got %d", len(sink.listCalls))
	}
	for i, call := range sink.listCalls {
		if call.limit != PlaylistPageSize {
			t.Errorf("call %d: expected limit %d, got %d", i, PlaylistPageSize, call.limit)
		}
		if call.offset != i*PlaylistPageSize {
			t.Errorf("call %d: expected offset %d, got %d", i, i*PlaylistPageSize, call.offset)
		}
	}
}

func TestPlaylistUpserter_ResolvePlaylist_FirstDuplicateWins(t *testing.T) {
	sink := newMockSink(
		ports.PlaylistSummary{ID: "a", Name: "Road Trip"},
		ports.PlaylistSummary{ID: "first", Name: "Discord Import"},
		ports.PlaylistSummary{ID: "second", Name: "Discord Import"},
	)
	upserter := newTestUpserter(t, sink, mapCache{})

	id, err := upserter.ResolvePlaylist(context.Background(), "Discord Import")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id != "first" {
		t.Errorf("expected id %q, got %q", "first", id)
	}
}

func TestPlaylistUpserter_ResolvePlaylist_ExactNameOnly(t *testing.T) {
	sink := newMockSink(
		ports.PlaylistSummary{ID: "a", Name: "discord import"},
		ports.PlaylistSummary{ID: "b", Name: "Discord Import (old)"},
	)
	upserter := newTestUpserter(t, sink, mapCache{})

	id, err := upserter.ResolvePlaylist(context.Background(), "Discord Import")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if id == "a" || id == "b" {
		t.Errorf("expected a new playlist, got existing %q", id)
	}
	if len(sink.createCalls) != 1 {
		t.Errorf("expected 1 create call, got %d", len(sink.createCalls))
	}
}

func TestPlaylistUpserter_ResolvePlaylist_ListError(t *testing.T) {
	expectedErr := errors.New("token expired")
	sink := newMockSink()
	sink.listErr = expectedErr
	cache := mapCache{}
	upserter := newTestUpserter(t, sink, cache)

	_, err := upserter.ResolvePlaylist(context.Background(), "Discord Import")
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if len(sink.createCalls) != 0 {
		t.Error("expected no create call after a listing error")
	}
	if len(cache) != 0 {
		t.Error("expected nothing to be cached")
	}
}

func TestPlaylistUpserter_ResolvePlaylist_CreateError(t *testing.T) {
	expectedErr := errors.New("forbidden")
	sink := newMockSink()
	sink.createErr = expectedErr
	cache := mapCache{}
	upserter := newTestUpserter(t, sink, cache)

	_, err := upserter.ResolvePlaylist(context.Background(), "Discord Import")
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if len(cache) != 0 {
		t.Error("expected nothing to be cached")
	}
}

func TestPlaylistUpserter_ResolvePlaylist_EmptyName(t *testing.T) {
	upserter := newTestUpserter(t, newMockSink(), mapCache{})

	_, err := upserter.ResolvePlaylist(context.Background(), "")
	if !errors.Is(err, ErrEmptyPlaylistName) {
		t.Errorf("expected error %v, got %v", ErrEmptyPlaylistName, err)
	}
}

func TestPlaylistUpserter_AddTrack(t *testing.T) {
	sink := newMockSink(ports.PlaylistSummary{ID: "existing", Name: "Discord Import"})
	upserter := newTestUpserter(t, sink, mapCache{})

	output, err := upserter.AddTrack(context.Background(), "abc123XYZ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Playlist.ID != "existing" {
		t.Errorf("expected playlist %q, got %q", "existing", output.Playlist.ID)
	}
	if output.Track != "abc123XYZ" {
		t.Errorf("expected track %q, got %q", "abc123XYZ", output.Track)
	}
	if len(sink.addCalls) != 1 {
		t.Fatalf("expected 1 add call, got %d", len(sink.addCalls))
	}
	call := sink.addCalls[0]
	if call.ownerID != "owner" || call.playlistID != "existing" {
		t.Errorf("unexpected add call %+v", call)
	}
	if len(call.tracks) != 1 || call.tracks[0] != "abc123XYZ" {
		t.Errorf("expected single-track batch [abc123XYZ], got %v", call.tracks)
	}
}

func TestPlaylistUpserter_AddTrack_DuplicatesAppendTwice(t *testing.T) {
	sink := newMockSink()
	upserter := newTestUpserter(t, sink, mapCache{})
	ctx := context.Background()

	for range 2 {
		if _, err := upserter.AddTrack(ctx, "abc123XYZ"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if len(sink.addCalls) != 2 {
		t.Fatalf("expected 2 add calls, got %d", len(sink.addCalls))
	}
	if sink.addCalls[0].playlistID != sink.addCalls[1].playlistID {
		t.Error("expected both adds to target the same playlist")
	}
	if len(sink.createCalls) != 1 {
		t.Errorf("expected 1 create call, got %d", len(sink.createCalls))
	}
}

func TestPlaylistUpserter_AddTrack_SinkError(t *testing.T) {
	expectedErr := errors.New("invalid id")
	sink := newMockSink()
	sink.addErr = expectedErr
	upserter := newTestUpserter(t, sink, mapCache{})

	_, err := upserter.AddTrack(context.Background(), "bogus")
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
}

func TestPlaylistUpserter_ManagedPlaylist(t *testing.T) {
	sink := newMockSink(ports.PlaylistSummary{ID: "existing", Name: "Discord Import"})
	upserter := newTestUpserter(t, sink, mapCache{})

	playlist, err := upserter.ManagedPlaylist(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := domain.ManagedPlaylist{
		OwnerID: "owner",
		ID:      "existing",
		Name:    "Discord Import",
		Public:  false,
	}
	if *playlist != expected {
		t.Errorf("expected %+v, got %+v", expected, *playlist)
	}
}
