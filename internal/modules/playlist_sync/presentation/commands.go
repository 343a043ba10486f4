package presentation

import "github.com/bwmarrin/discordgo"

// Commands returns all slash commands for the playlist sync module.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "playlist",
			Description: "Show the playlist shared tracks are collected in",
		},
	}
}
