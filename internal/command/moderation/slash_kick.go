package moderation

import (
	"fmt"

	"server-warden/internal/discord"

	"github.com/bwmarrin/discordgo"
)

type KickCommand struct{}

func (c *KickCommand) Name() string        { return "kick" }
func (c *KickCommand) Description() string { return "Kicks a member from the server." }

func (c *KickCommand) RequiredPermission() int64 { return discordgo.PermissionKickMembers }
func (c *KickCommand) GuardSelf() bool           { return true }
func (c *KickCommand) GuardHierarchy() bool      { return true }

func (c *KickCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Member to kick",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Reason for the kick",
				Required:    false,
			},
		},
	}
}

func (c *KickCommand) Run(ctx interface{}) error {
	slash, err := slashContext(ctx)
	if err != nil {
		return err
	}
	s, i := slash.Session, slash.Event

	target := targetUser(i, "member")
	if target == nil {
		return discord.RespondEphemeral(s, i, "Could not resolve the member to kick.")
	}

	reason := stringOption(options(i), "reason")
	if reason == "" {
		reason = defaultReason
	}

	if err := s.GuildMemberDeleteWithReason(i.GuildID, target.ID, reason); err != nil {
		return fmt.Errorf("failed to kick %s: %w", target.ID, err)
	}

	return discord.Respond(s, i, fmt.Sprintf(
		"👢 Kicked **%s** (ID: %s). Reason: *%s*", displayName(i, target), target.ID, reason,
	))
}
