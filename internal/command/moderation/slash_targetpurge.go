package moderation

import (
	"errors"
	"fmt"

	"server-warden/internal/discord"
	"server-warden/internal/purge"

	"github.com/bwmarrin/discordgo"
)

type TargetPurgeCommand struct{}

func (c *TargetPurgeCommand) Name() string { return "targetpurge" }
func (c *TargetPurgeCommand) Description() string {
	return "Deletes the specified number of messages from a specific member."
}

func (c *TargetPurgeCommand) RequiredPermission() int64 { return discordgo.PermissionManageMessages }
func (c *TargetPurgeCommand) GuardSelf() bool           { return false }
func (c *TargetPurgeCommand) GuardHierarchy() bool      { return false }

func (c *TargetPurgeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minAmount := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "member",
				Description: "Member whose messages to delete",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "Number of messages to delete (1-100)",
				Required:    true,
				MinValue:    &minAmount,
				MaxValue:    float64(purge.MaxAmount),
			},
		},
	}
}

func (c *TargetPurgeCommand) Run(ctx interface{}) error {
	slash, err := slashContext(ctx)
	if err != nil {
		return err
	}
	s, i := slash.Session, slash.Event

	target := targetUser(i, "member")
	if target == nil {
		return discord.RespondEphemeral(s, i, "Could not resolve the member to purge.")
	}

	amount := intOption(options(i), "amount")
	if amount < 1 {
		return discord.RespondEphemeral(s, i, "Please specify a positive number of messages to delete.")
	}
	if amount > purge.MaxAmount {
		return discord.RespondEphemeral(s, i, fmt.Sprintf("Cannot delete more than %d messages at once due to Discord's API limits.", purge.MaxAmount))
	}

	if err := discord.RespondDeferred(s, i); err != nil {
		return err
	}

	deleted, err := purge.Execute(purge.NewSessionChannel(s), purge.Request{
		ChannelID: i.ChannelID,
		Amount:    amount,
		AuthorID:  target.ID,
	})
	if errors.Is(err, purge.ErrNoMatchingMessages) {
		return discord.FollowupEphemeral(s, i, fmt.Sprintf(
			"Could not find **%d** recent messages from **%s** within the last 500 messages.",
			amount, displayName(i, target),
		))
	}
	if err != nil {
		return reportPurgeFailure(slash, err)
	}

	confirmThenCleanup(slash, fmt.Sprintf(
		"🧹 Successfully deleted **%d** recent messages from **%s**.",
		deleted, displayName(i, target),
	))
	return nil
}
