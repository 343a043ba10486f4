package usecases

import (
	"context"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/domain"
	"github.com/sglre6355/musicow/internal/telemetry"
)

// TrackAdder appends a single track to the managed playlist.
type TrackAdder interface {
	AddTrack(ctx context.Context, track domain.TrackRef) (*AddTrackOutput, error)
}

// ImportMessageInput contains the input for the ImportMessage use case.
type ImportMessageInput struct {
	GuildID     snowflake.ID
	ChannelID   snowflake.ID
	AuthorName  string
	ChannelName string
	Content     string
}

// ImportMessageOutput contains the result of the ImportMessage use case.
// Imported is false when the message was ignored.
type ImportMessageOutput struct {
	Imported bool
	Track    domain.TrackRef
	Playlist domain.PlaylistID
}

// TrackImportService turns chat messages from the watched channel into playlist additions.
type TrackImportService struct {
	scope domain.ChannelScope
	adder TrackAdder
}

// NewTrackImportService creates a new TrackImportService.
func NewTrackImportService(scope domain.ChannelScope, adder TrackAdder) *TrackImportService {
	return &TrackImportService{
		scope: scope,
		adder: adder,
	}
}

// ImportMessage adds the first track linked in an in-scope message to the playlist.
// Messages from other channels and messages without a usable link are ignored.
func (s *TrackImportService) ImportMessage(
	ctx context.Context,
	input ImportMessageInput,
) (*ImportMessageOutput, error) {
	if !s.scope.Contains(input.GuildID, input.ChannelID) {
		telemetry.IncIgnored(telemetry.ReasonOutOfScope)
		return &ImportMessageOutput{}, nil
	}

	match := domain.FindTrackLink(input.Content)
	if match.Malformed {
		slog.Debug("ignored malformed track link",
			"author", input.AuthorName,
			"channel", input.ChannelName,
		)
		telemetry.IncIgnored(telemetry.ReasonMalformedLink)
		return &ImportMessageOutput{}, nil
	}
	if !match.Found {
		telemetry.IncIgnored(telemetry.ReasonNoLink)
		return &ImportMessageOutput{}, nil
	}

	result, err := s.adder.AddTrack(ctx, match.Track)
	if err != nil {
		telemetry.Inc(telemetry.TrackImportsFailed)
		return nil, err
	}
	telemetry.Inc(telemetry.TracksImported)

	slog.Info("added track to playlist",
		"track", result.Track,
		"playlist", result.Playlist.ID,
		"author", input.AuthorName,
		"channel", input.ChannelName,
	)

	return &ImportMessageOutput{
		Imported: true,
		Track:    result.Track,
		Playlist: result.Playlist.ID,
	}, nil
}
