package playlist_sync

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sglre6355/musicow/internal/bot"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/domain"
)

// Configuration errors.
var (
	ErrMissingGuild              = errors.New("config missing discord guild")
	ErrMissingChannel            = errors.New("config missing discord channel")
	ErrMissingSpotifyClientID    = errors.New("config missing spotify client_id")
	ErrMissingSpotifySecret      = errors.New("config missing spotify client_secret")
	ErrMissingSpotifyRedirectURI = errors.New("config missing spotify redirect_uri")
)

// Config holds the playlist sync module configuration.
type Config struct {
	Discord  DiscordConfig
	Spotify  SpotifyConfig
	Playlist PlaylistConfig
}

// DiscordConfig selects the watched channel.
type DiscordConfig struct {
	GuildID   uint64 `toml:"guild"   env:"DISCORD_GUILD"`
	ChannelID uint64 `toml:"channel" env:"DISCORD_CHANNEL"`
}

// SpotifyConfig holds the Spotify application credentials.
type SpotifyConfig struct {
	ClientID       string `toml:"client_id"     env:"SPOTIFY_CLIENT_ID"`
	ClientSecret   string `toml:"client_secret" env:"SPOTIFY_CLIENT_SECRET"`
	RedirectURI    string `toml:"redirect_uri"  env:"SPOTIFY_REDIRECT_URI"`
	TokenCachePath string `toml:"token_cache"   env:"SPOTIFY_TOKEN_CACHE"`
}

// PlaylistConfig describes the managed playlist.
type PlaylistConfig struct {
	Name   string `toml:"name"   env:"PLAYLIST_NAME"`
	Public bool   `toml:"public" env:"PLAYLIST_PUBLIC"`
}

// LoadConfig reads the module sections of the bot config file, applies
// environment overrides and validates the result.
func LoadConfig(botCfg *bot.Config) (*Config, error) {
	cfg := &Config{
		Playlist: PlaylistConfig{Name: domain.DefaultPlaylistName},
	}

	if botCfg != nil {
		if err := botCfg.DecodeSection("discord", &cfg.Discord); err != nil {
			return nil, err
		}
		if err := botCfg.DecodeSection("spotify", &cfg.Spotify); err != nil {
			return nil, err
		}
		if err := botCfg.DecodeSection("playlist", &cfg.Playlist); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first missing required field.
func (c *Config) Validate() error {
	switch {
	case c.Spotify.ClientID == "":
		return ErrMissingSpotifyClientID
	case c.Spotify.ClientSecret == "":
		return ErrMissingSpotifySecret
	case c.Spotify.RedirectURI == "":
		return ErrMissingSpotifyRedirectURI
	case c.Discord.GuildID == 0:
		return ErrMissingGuild
	case c.Discord.ChannelID == 0:
		return ErrMissingChannel
	}
	return nil
}

// Scope returns the watched channel.
func (c *Config) Scope() domain.ChannelScope {
	return domain.NewChannelScope(
		snowflake.ID(c.Discord.GuildID),
		snowflake.ID(c.Discord.ChannelID),
	)
}

// PlaylistSettings returns the managed playlist settings.
func (c *Config) PlaylistSettings() domain.PlaylistSettings {
	name := c.Playlist.Name
	if name == "" {
		name = domain.DefaultPlaylistName
	}
	return domain.PlaylistSettings{
		Name:   name,
		Public: c.Playlist.Public,
	}
}
