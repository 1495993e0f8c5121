package moderation

import (
	"errors"
	"fmt"
	"time"

	"server-warden/internal/discord"

	"github.com/bwmarrin/discordgo"
)

type TimeoutCommand struct{}

func (c *TimeoutCommand) Name() string        { return "timeout" }
func (c *TimeoutCommand) Description() string { return "Puts a member in timeout for a specified duration." }

func (c *TimeoutCommand) RequiredPermission() int64 { return discordgo.PermissionModerateMembers }
func (c *TimeoutCommand) GuardSelf() bool           { return false }
func (c *TimeoutCommand) GuardHierarchy() bool      { return true }

func (c *TimeoutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Member to time out",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "duration",
				Description: "Duration like 30m, 1h or 7d (max 28 days)",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "reason",
				Description: "Reason for the timeout",
				Required:    false,
			},
		},
	}
}

func (c *TimeoutCommand) Run(ctx interface{}) error {
	slash, err := slashContext(ctx)
	if err != nil {
		return err
	}
	s, i := slash.Session, slash.Event

	target := targetUser(i, "member")
	if target == nil {
		return discord.RespondEphemeral(s, i, "Could not resolve the member to time out.")
	}

	opts := options(i)
	d, err := parseTimeoutDuration(stringOption(opts, "duration"))
	switch {
	case errors.Is(err, ErrDurationFormat):
		return discord.RespondEphemeral(s, i, "Invalid duration format. Use formats like `1h`, `30m`, or `7d`.")
	case errors.Is(err, ErrDurationUnit):
		return discord.RespondEphemeral(s, i, "Invalid duration unit. Use `s`, `m`, `h`, or `d`.")
	case errors.Is(err, ErrDurationTooLong):
		return discord.RespondEphemeral(s, i, "Cannot timeout for more than 28 days.")
	case err != nil:
		return err
	}

	reason := stringOption(opts, "reason")
	if reason == "" {
		reason = defaultReason
	}

	until := time.Now().UTC().Add(d)
	if err := s.GuildMemberTimeout(i.GuildID, target.ID, &until); err != nil {
		return fmt.Errorf("failed to time out %s: %w", target.ID, err)
	}

	return discord.Respond(s, i, fmt.Sprintf(
		"🔇 Timed out **%s** until <t:%d:f>. Reason: *%s*",
		displayName(i, target), until.Unix(), reason,
	))
}
