package info

import (
	"fmt"

	"server-warden/internal/command"
	"server-warden/internal/discord"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"
)

type ServerInfoCommand struct{}

func (c *ServerInfoCommand) Name() string        { return "serverinfo" }
func (c *ServerInfoCommand) Description() string { return "Displays statistics about the current server." }

func (c *ServerInfoCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (c *ServerInfoCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return fmt.Errorf("wrong context type")
	}
	s, i := slash.Session, slash.Event

	if i.GuildID == "" {
		return discord.RespondEphemeral(s, i, "This command must be used in a server/guild context.")
	}

	g, err := s.State.Guild(i.GuildID)
	if err != nil || g == nil {
		g, err = s.Guild(i.GuildID)
		if err != nil {
			return fmt.Errorf("failed to fetch guild %s: %w", i.GuildID, err)
		}
	}

	channels := g.Channels
	if len(channels) == 0 {
		channels, _ = s.GuildChannels(i.GuildID)
	}
	text, voice, categories := 0, 0, 0
	for _, ch := range channels {
		switch ch.Type {
		case discordgo.ChannelTypeGuildText:
			text++
		case discordgo.ChannelTypeGuildVoice:
			voice++
		case discordgo.ChannelTypeGuildCategory:
			categories++
		}
	}

	emb := embed.NewEmbed().
		SetColor(discord.EmbedColor).
		SetTitle("🏛️ Server Info: " + g.Name)

	emb = emb.AddField("Owner", "<@"+g.OwnerID+">")
	emb = emb.AddField("Server ID", g.ID)
	if created, err := discordgo.SnowflakeTimestamp(g.ID); err == nil {
		emb = emb.AddField("Creation Date", fmt.Sprintf("<t:%d:R>", created.Unix()))
	}
	emb = emb.AddField("Member Count", fmt.Sprintf("Total: **%d**", g.MemberCount))
	emb = emb.AddField("Channels", fmt.Sprintf("Text: %d\nVoice: %d\nCategories: %d", text, voice, categories))
	emb = emb.AddField("Roles", fmt.Sprintf("%d", len(g.Roles)))
	emb = emb.AddField("Boost Level", fmt.Sprintf("Level %d (%d boosts)", g.PremiumTier, g.PremiumSubscriptionCount))

	if g.Icon != "" {
		emb = emb.SetThumbnail(g.IconURL(""))
	}
	if requester := i.Member; requester != nil && requester.User != nil {
		emb = emb.SetFooter("Requested by "+requester.User.Username, requester.User.AvatarURL(""))
	}

	return discord.RespondEmbed(s, i, emb.MessageEmbed)
}

// Commands returns the informational commands.
func Commands() []command.DiscordCommand {
	return []command.DiscordCommand{
		&WhoisCommand{},
		&ServerInfoCommand{},
	}
}
