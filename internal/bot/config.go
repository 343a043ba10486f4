package bot

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// ErrMissingDiscordToken is returned when no bot token is configured.
var ErrMissingDiscordToken = errors.New("config missing discord bot_token")

// Config holds the bot configuration.
// Values are read from an optional TOML file and then overridden by environment variables.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN"`
	MetricsAddr  string `env:"METRICS_ADDR"`

	meta     toml.MetaData
	sections map[string]toml.Primitive
}

type discordSection struct {
	BotToken string `toml:"bot_token"`
}

type telemetrySection struct {
	MetricsAddr string `toml:"metrics_addr"`
}

// LoadConfig loads configuration from the TOML file at path and from environment variables.
// An empty path skips the file. Returns an error if required fields are missing.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		sections: make(map[string]toml.Primitive),
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		meta, err := toml.Decode(string(data), &cfg.sections)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.meta = meta
	}

	var discord discordSection
	if err := cfg.DecodeSection("discord", &discord); err != nil {
		return nil, err
	}
	cfg.DiscordToken = discord.BotToken

	var telemetry telemetrySection
	if err := cfg.DecodeSection("telemetry", &telemetry); err != nil {
		return nil, err
	}
	cfg.MetricsAddr = telemetry.MetricsAddr

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.DiscordToken == "" {
		return nil, ErrMissingDiscordToken
	}

	return cfg, nil
}

// DecodeSection decodes the named top-level TOML table into v.
// A section that is absent from the file leaves v untouched.
func (c *Config) DecodeSection(name string, v any) error {
	prim, ok := c.sections[name]
	if !ok {
		return nil
	}

	if err := c.meta.PrimitiveDecode(prim, v); err != nil {
		return fmt.Errorf("failed to decode [%s] section: %w", name, err)
	}

	return nil
}
