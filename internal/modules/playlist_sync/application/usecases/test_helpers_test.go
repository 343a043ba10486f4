package usecases

import (
	"context"
	"fmt"

	"github.com/sglre6355/musicow/internal/modules/playlist_sync/application/ports"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/domain"
)

type listCall struct {
	limit  int
	offset int
}

type addCall struct {
	ownerID    string
	playlistID domain.PlaylistID
	tracks     []domain.TrackRef
}

type createCall struct {
	ownerID string
	name    string
	public  bool
}

// mockSink serves playlists in pages of the requested size and records every call.
type mockSink struct {
	playlists []ports.PlaylistSummary
	nextID    int

	listErr   error
	createErr error
	addErr    error

	listCalls   []listCall
	createCalls []createCall
	addCalls    []addCall
}

func newMockSink(playlists ...ports.PlaylistSummary) *mockSink {
	return &mockSink{playlists: playlists}
}

// withPages fills the sink with pages full pages of unrelated playlists.
func (m *mockSink) withPages(pages int) *mockSink {
	for i := range pages * PlaylistPageSize {
		m.playlists = append(m.playlists, ports.PlaylistSummary{
			ID:   domain.PlaylistID(fmt.Sprintf("other-%d", i)),
			Name: fmt.Sprintf("Other %d", i),
		})
	}
	return m
}

func (m *mockSink) CurrentAccount(_ context.Context) (*domain.Account, error) {
	return &domain.Account{ID: "owner", DisplayName: "Owner"}, nil
}

func (m *mockSink) ListPlaylists(
	_ context.Context,
	_ string,
	limit, offset int,
) (*ports.PlaylistPage, error) {
	m.listCalls = append(m.listCalls, listCall{limit: limit, offset: offset})
	if m.listErr != nil {
		return nil, m.listErr
	}

	if offset >= len(m.playlists) {
		return &ports.PlaylistPage{}, nil
	}
	end := min(offset+limit, len(m.playlists))

	return &ports.PlaylistPage{
		Playlists: m.playlists[offset:end],
		HasNext:   end < len(m.playlists),
	}, nil
}

func (m *mockSink) CreatePlaylist(
	_ context.Context,
	ownerID, name string,
	public bool,
) (domain.PlaylistID, error) {
	m.createCalls = append(m.createCalls, createCall{ownerID: ownerID, name: name, public: public})
	if m.createErr != nil {
		return "", m.createErr
	}

	m.nextID++
	id := domain.PlaylistID(fmt.Sprintf("created-%d", m.nextID))
	m.playlists = append(m.playlists, ports.PlaylistSummary{ID: id, Name: name})
	return id, nil
}

func (m *mockSink) AddTracks(
	_ context.Context,
	ownerID string,
	playlistID domain.PlaylistID,
	tracks []domain.TrackRef,
) error {
	m.addCalls = append(m.addCalls, addCall{ownerID: ownerID, playlistID: playlistID, tracks: tracks})
	return m.addErr
}

// mapCache is a minimal PlaylistCache.
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

// mockTrackAdder records AddTrack calls.
type mockTrackAdder struct {
	added []domain.TrackRef
	err   error
}

func (m *mockTrackAdder) AddTrack(_ context.Context, track domain.TrackRef) (*AddTrackOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.added = append(m.added, track)
	return &AddTrackOutput{
		Playlist: domain.ManagedPlaylist{OwnerID: "owner", ID: "playlist-1", Name: domain.DefaultPlaylistName},
		Track:    track,
	}, nil
}

var testOwner = &domain.Account{ID: "owner", DisplayName: "Owner"}

var testSettings = domain.PlaylistSettings{Name: domain.DefaultPlaylistName}
