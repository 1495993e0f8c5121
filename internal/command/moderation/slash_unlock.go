package moderation

import (
	"fmt"

	"server-warden/internal/discord"

	"github.com/bwmarrin/discordgo"
)

type UnlockCommand struct{}

func (c *UnlockCommand) Name() string { return "unlock" }
func (c *UnlockCommand) Description() string {
	return "Unlocks the current channel by allowing @everyone to send messages."
}

func (c *UnlockCommand) RequiredPermission() int64 { return discordgo.PermissionManageChannels }
func (c *UnlockCommand) GuardSelf() bool           { return false }
func (c *UnlockCommand) GuardHierarchy() bool      { return false }

func (c *UnlockCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         "channel",
				Description:  "Channel to unlock (defaults to the current one)",
				Required:     false,
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
			},
		},
	}
}

func (c *UnlockCommand) Run(ctx interface{}) error {
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

	if deny&discordgo.PermissionSendMessages == 0 {
		return discord.Respond(s, i, fmt.Sprintf(
			"🔓 **<#%s>** is already unlocked (or permissions are default).", channelID,
		))
	}

	deny &^= discordgo.PermissionSendMessages
	if allow == 0 && deny == 0 {
		// The overwrite carries nothing else; restore the neutral state.
		if err := s.ChannelPermissionDelete(channelID, i.GuildID); err != nil {
			return fmt.Errorf("failed to unlock channel %s: %w", channelID, err)
		}
	} else {
		if err := s.ChannelPermissionSet(channelID, i.GuildID, discordgo.PermissionOverwriteTypeRole, allow, deny); err != nil {
			return fmt.Errorf("failed to unlock channel %s: %w", channelID, err)
		}
	}

	return discord.Respond(s, i, fmt.Sprintf("🔓 Channel **<#%s>** has been unlocked.", channelID))
}
