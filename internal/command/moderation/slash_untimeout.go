package moderation

import (
	"fmt"
	"time"

	"server-warden/internal/discord"

	"github.com/bwmarrin/discordgo"
)

type UntimeoutCommand struct{}

func (c *UntimeoutCommand) Name() string        { return "untimeout" }
func (c *UntimeoutCommand) Description() string { return "Removes the timeout from a member." }

func (c *UntimeoutCommand) RequiredPermission() int64 { return discordgo.PermissionModerateMembers }
func (c *UntimeoutCommand) GuardSelf() bool           { return false }
func (c *UntimeoutCommand) GuardHierarchy() bool      { return true }

func (c *UntimeoutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Member to release from timeout",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Reason for removing the timeout",
				Required:    false,
			},
		},
	}
}

func (c *UntimeoutCommand) Run(ctx interface{}) error {
	slash, err := slashContext(ctx)
	if err != nil {
		return err
	}
	s, i := slash.Session, slash.Event

	target := targetUser(i, "member")
	if target == nil {
		return discord.RespondEphemeral(s, i, "Could not resolve the member to release.")
	}

	if !isTimedOut(i, target.ID) {
		return discord.RespondEphemeral(s, i, fmt.Sprintf(
			"**%s** is not currently in timeout.", displayName(i, target),
		))
	}

	if err := s.GuildMemberTimeout(i.GuildID, target.ID, nil); err != nil {
		return fmt.Errorf("failed to remove timeout from %s: %w", target.ID, err)
	}

	return discord.Respond(s, i, fmt.Sprintf("🔊 Removed timeout from **%s**.", displayName(i, target)))
}

func isTimedOut(i *discordgo.InteractionCreate, userID string) bool {
	data := i.ApplicationCommandData()
	if data.Resolved == nil {
		return false
	}
	m := data.Resolved.Members[userID]
	if m == nil || m.CommunicationDisabledUntil == nil {
		return false
	}
	return m.CommunicationDisabledUntil.After(time.Now())
}
