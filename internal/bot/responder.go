package bot

import "github.com/bwmarrin/discordgo"

// Responder answers a Discord interaction.
// Handlers depend on it so they can be tested without a live session.
type Responder interface {
	Respond(response *discordgo.InteractionResponse) error
}

// DiscordResponder implements Responder using a live Discord session.
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

// NewDiscordResponder creates a new DiscordResponder.
func NewDiscordResponder(s *discordgo.Session, i *discordgo.Interaction) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Respond sends a response to the interaction via Discord API.
func (r *DiscordResponder) Respond(response *discordgo.InteractionResponse) error {
	return r.session.InteractionRespond(r.interaction, response)
}

// MockResponder is a test double for Responder.
type MockResponder struct {
	Responses []*discordgo.InteractionResponse
	Err       error
}

// Respond records the response for testing.
func (m *MockResponder) Respond(response *discordgo.InteractionResponse) error {
	m.Responses = append(m.Responses, response)
	return m.Err
}

// LastEmbed returns the first embed of the most recent response, or nil.
func (m *MockResponder) LastEmbed() *discordgo.MessageEmbed {
	if len(m.Responses) == 0 {
		return nil
	}
	last := m.Responses[len(m.Responses)-1]
	if last.Data == nil || len(last.Data.Embeds) == 0 {
		return nil
	}
	return last.Data.Embeds[0]
}
