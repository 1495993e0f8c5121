package purge

import "github.com/bwmarrin/discordgo"

// sessionChannel adapts a live Discord session to the Channel capability.
type sessionChannel struct {
	s *discordgo.Session
}

// NewSessionChannel wraps a session for use with Execute.
func NewSessionChannel(s *discordgo.Session) Channel {
	return &sessionChannel{s: s}
}

func (c *sessionChannel) Messages(channelID string, limit int, beforeID string) ([]*discordgo.Message, error) {
	return c.s.ChannelMessages(channelID, limit, beforeID, "", "")
}

func (c *sessionChannel) BulkDelete(channelID string, messageIDs []string) error {
	// discordgo falls back to a single-message delete below the bulk minimum.
	return c.s.ChannelMessagesBulkDelete(channelID, messageIDs)
}
