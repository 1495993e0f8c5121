package moderation

import (
	"fmt"

	"server-warden/internal/discord"

	"github.com/bwmarrin/discordgo"
)

type BanCommand struct{}

func (c *BanCommand) Name() string        { return "ban" }
func (c *BanCommand) Description() string { return "Bans a member from the server." }

func (c *BanCommand) RequiredPermission() int64 { return discordgo.PermissionBanMembers }
func (c *BanCommand) GuardSelf() bool           { return true }
func (c *BanCommand) GuardHierarchy() bool      { return true }

func (c *BanCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Member to ban",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Reason for the ban",
				Required:    false,
			},
		},
	}
}

func (c *BanCommand) Run(ctx interface{}) error {
	slash, err := slashContext(ctx)
	if err != nil {
		return err
	}
	s, i := slash.Session, slash.Event

	target := targetUser(i, "member")
	if target == nil {
		return discord.RespondEphemeral(s, i, "Could not resolve the member to ban.")
	}

	reason := stringOption(options(i), "reason")
	if reason == "" {
		reason = defaultReason
	}

	if err := s.GuildBanCreateWithReason(i.GuildID, target.ID, reason, 0); err != nil {
		return fmt.Errorf("failed to ban %s: %w", target.ID, err)
	}

	return discord.Respond(s, i, fmt.Sprintf(
		"🔨 Banned **%s** (ID: %s). Reason: *%s*", displayName(i, target), target.ID, reason,
	))
}
