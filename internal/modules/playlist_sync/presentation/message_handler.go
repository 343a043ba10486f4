package presentation

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/application/usecases"
)

// MessageHandler feeds MessageCreate events to the track importer.
type MessageHandler struct {
	ctx      context.Context
	importer *usecases.TrackImportService
}

// NewMessageHandler creates a new MessageHandler.
// ctx bounds the playlist calls made on behalf of each message.
func NewMessageHandler(ctx context.Context, importer *usecases.TrackImportService) *MessageHandler {
	return &MessageHandler{
		ctx:      ctx,
		importer: importer,
	}
}

// HandleMessageCreate is the discordgo event handler for MessageCreate events.
// Failures are logged so a broken playlist call never stops the event loop.
func (h *MessageHandler) HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m == nil || m.Message == nil || m.GuildID == "" {
		return
	}

	guildID, err := snowflake.Parse(m.GuildID)
	if err != nil {
		slog.Error("failed to parse guild ID in message", "error", err)
		return
	}
	channelID, err := snowflake.Parse(m.ChannelID)
	if err != nil {
		slog.Error("failed to parse channel ID in message", "error", err)
		return
	}

	input := usecases.ImportMessageInput{
		GuildID:     guildID,
		ChannelID:   channelID,
		AuthorName:  authorName(m.Message),
		ChannelName: channelName(s, m.ChannelID),
		Content:     m.Content,
	}

	if _, err := h.importer.ImportMessage(h.ctx, input); err != nil {
		slog.Error("failed to import track",
			"guild", guildID,
			"channel", input.ChannelName,
			"author", input.AuthorName,
			"error", err,
		)
	}
}

func authorName(m *discordgo.Message) string {
	if m.Author == nil {
		return ""
	}
	return m.Author.Username
}

// channelName looks the channel up in the session state cache and falls back to its ID.
func channelName(s *discordgo.Session, channelID string) string {
	if s == nil || s.State == nil {
		return channelID
	}
	channel, err := s.State.Channel(channelID)
	if err != nil || channel.Name == "" {
		return channelID
	}
	return channel.Name
}
