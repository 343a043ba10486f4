package domain

import "github.com/disgoorg/snowflake/v2"

// ChannelScope is the single guild channel that track links are accepted from.
type ChannelScope struct {
	guildID   snowflake.ID
	channelID snowflake.ID
}

// NewChannelScope creates a ChannelScope for the given guild and channel.
func NewChannelScope(guildID, channelID snowflake.ID) ChannelScope {
	return ChannelScope{
		guildID:   guildID,
		channelID: channelID,
	}
}

// GuildID returns the guild the scope is bound to.
func (s ChannelScope) GuildID() snowflake.ID {
	return s.guildID
}

// ChannelID returns the channel the scope is bound to.
func (s ChannelScope) ChannelID() snowflake.ID {
	return s.channelID
}

// Contains reports whether a message posted in guildID/channelID is in scope.
func (s ChannelScope) Contains(guildID, channelID snowflake.ID) bool {
	return s.guildID == guildID && s.channelID == channelID
}
