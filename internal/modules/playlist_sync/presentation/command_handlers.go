package presentation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/musicow/internal/bot"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/application/usecases"
)

// Embed colors.
const (
	colorSpotify = 0x1DB954
	colorError   = 0xE74C3C
)

// CommandHandlers holds the slash command handlers.
type CommandHandlers struct {
	ctx      context.Context
	upserter *usecases.PlaylistUpserter
}

// NewCommandHandlers creates new CommandHandlers.
// ctx bounds the playlist calls made on behalf of each command.
func NewCommandHandlers(ctx context.Context, upserter *usecases.PlaylistUpserter) *CommandHandlers {
	return &CommandHandlers{
		ctx:      ctx,
		upserter: upserter,
	}
}

// HandlePlaylist handles the /playlist command.
func (h *CommandHandlers) HandlePlaylist(
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	r bot.Responder,
) error {

	playlist, err := h.upserter.ManagedPlaylist(h.ctx)
	if err != nil {
		slog.Error("failed to resolve managed playlist", "error", err)
		return respondError(r, "Could not reach Spotify. Try again later.")
	}

	visibility := "private"
	if playlist.Public {
		visibility = "public"
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       playlist.Name,
					URL:         playlist.ID.URL(),
					Description: fmt.Sprintf("Tracks shared here are added to this %s playlist.", visibility),
					Color:       colorSpotify,
				},
			},
		},
	})
}

func respondError(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Error",
					Description: message,
					Color:       colorError,
				},
			},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}
