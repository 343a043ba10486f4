package playlist_sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/sglre6355/musicow/internal/bot"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/application/usecases"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/infrastructure"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/presentation"
)

func init() {
	bot.Register(&PlaylistSyncModule{})
}

// Compile-time interface checks.
var (
	_ bot.ConfigurableModule = (*PlaylistSyncModule)(nil)
	_ bot.IntentsModule      = (*PlaylistSyncModule)(nil)
)

// PlaylistSyncModule mirrors Spotify track links from one channel into a playlist.
type PlaylistSyncModule struct {
	config          *Config
	messageHandler  *presentation.MessageHandler
	commandHandlers *presentation.CommandHandlers

	ctx    context.Context
	cancel context.CancelFunc
}

// Name returns the module name.
func (m *PlaylistSyncModule) Name() string {
	return "playlist_sync"
}

// Commands returns the slash commands for this module.
func (m *PlaylistSyncModule) Commands() []*discordgo.ApplicationCommand {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *PlaylistSyncModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"playlist": m.commandHandlers.HandlePlaylist,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *PlaylistSyncModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		m.messageHandler.HandleMessageCreate,
	}
}

// Intents requests guild message events with their content.
func (m *PlaylistSyncModule) Intents() discordgo.Intent {
	return discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent
}

// LoadConfig loads module-specific configuration.
func (m *PlaylistSyncModule) LoadConfig(cfg *bot.Config) error {
	moduleCfg, err := LoadConfig(cfg)
	if err != nil {
		return err
	}
	m.config = moduleCfg
	return nil
}

// Init authenticates against Spotify and wires the watcher to the playlist upserter.
func (m *PlaylistSyncModule) Init(_ bot.ModuleDependencies) error {
	if m.config == nil {
		return fmt.Errorf("%s module initialized before its config was loaded", m.Name())
	}

	m.ctx, m.cancel = context.WithCancel(context.Background())

	tokenPath := m.config.Spotify.TokenCachePath
	if tokenPath == "" {
		path, err := infrastructure.DefaultTokenCachePath()
		if err != nil {
			return err
		}
		tokenPath = path
	}

	authenticator, err := infrastructure.NewSpotifyAuthenticator(
		infrastructure.SpotifyAuthConfig{
			ClientID:     m.config.Spotify.ClientID,
			ClientSecret: m.config.Spotify.ClientSecret,
			RedirectURI:  m.config.Spotify.RedirectURI,
		},
		infrastructure.NewTokenCache(tokenPath),
	)
	if err != nil {
		return err
	}

	sink, account, err := authenticator.Connect(m.ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate with Spotify: %w", err)
	}
	slog.Info("managing playlists for account",
		"account_id", account.ID,
		"display_name", account.DisplayName,
	)

	upserter, err := usecases.NewPlaylistUpserter(
		sink,
		infrastructure.NewMemoryPlaylistCache(),
		account,
		m.config.PlaylistSettings(),
	)
	if err != nil {
		return err
	}

	scope := m.config.Scope()
	importer := usecases.NewTrackImportService(scope, upserter)

	m.messageHandler = presentation.NewMessageHandler(m.ctx, importer)
	m.commandHandlers = presentation.NewCommandHandlers(m.ctx, upserter)

	slog.Info("watching channel for track links",
		"guild", scope.GuildID(),
		"channel", scope.ChannelID(),
		"playlist", m.config.PlaylistSettings().Name,
	)

	return nil
}

// Shutdown cancels in-flight playlist calls.
func (m *PlaylistSyncModule) Shutdown() error {
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}
