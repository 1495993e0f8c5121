package moderation

import (
	"fmt"

	"server-warden/internal/discord"

	"github.com/bwmarrin/discordgo"
)

type LockCommand struct{}

func (c *LockCommand) Name() string { return "lock" }
func (c *LockCommand) Description() string {
	return "Locks the current channel by denying @everyone permission to send messages."
}

func (c *LockCommand) RequiredPermission() int64 { return discordgo.PermissionManageChannels }
func (c *LockCommand) GuardSelf() bool           { return false }
func (c *LockCommand) GuardHierarchy() bool      { return false }

func (c *LockCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         "channel",
				Description:  "Channel to lock (defaults to the current one)",
				Required:     false,
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
			},
		},
	}
}

func (c *LockCommand) Run(ctx interface{}) error {
	slash, err := slashContext(ctx)
	if err != nil {
		return err
	}
	s, i := slash.Session, slash.Event

	channelID := optionChannelID(i, "channel")
	if channelID == "" {
		channelID = i.ChannelID
	}

	allow, deny, err := everyoneOverwrite(s, channelID, i.GuildID)
	if err != nil {
		return err
	}

	if deny&discordgo.PermissionSendMessages != 0 {
		return discord.Respond(s, i, fmt.Sprintf("🔒 **<#%s>** is already locked.", channelID))
	}

	allow &^= discordgo.PermissionSendMessages
	deny |= discordgo.PermissionSendMessages
	if err := s.ChannelPermissionSet(channelID, i.GuildID, discordgo.PermissionOverwriteTypeRole, allow, deny); err != nil {
		return fmt.Errorf("failed to lock channel %s: %w", channelID, err)
	}

	return discord.Respond(s, i, fmt.Sprintf("🔒 Channel **<#%s>** has been locked.", channelID))
}

// optionChannelID returns the ID of a channel option, or "".
func optionChannelID(i *discordgo.InteractionCreate, name string) string {
	opt, ok := options(i)[name]
	if !ok {
		return ""
	}
	id, _ := opt.Value.(string)
	return id
}

// everyoneOverwrite reads the current @everyone permission overwrite of a
// channel. The @everyone role ID equals the guild ID.
func everyoneOverwrite(s *discordgo.Session, channelID, guildID string) (allow, deny int64, err error) {
	ch, err := s.State.Channel(channelID)
	if err != nil || ch == nil {
		ch, err = s.Channel(channelID)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to fetch channel %s: %w", channelID, err)
		}
	}
	for _, ow := range ch.PermissionOverwrites {
		if ow.ID == guildID && ow.Type == discordgo.PermissionOverwriteTypeRole {
			return ow.Allow, ow.Deny, nil
		}
	}
	return 0, 0, nil
}
