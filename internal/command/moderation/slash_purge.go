package moderation

import (
	"fmt"

	"server-warden/internal/discord"
	"server-warden/internal/purge"

	"github.com/bwmarrin/discordgo"
)

type PurgeCommand struct{}

func (c *PurgeCommand) Name() string        { return "purge" }
func (c *PurgeCommand) Description() string { return "Deletes a specified number of messages in the channel." }

func (c *PurgeCommand) RequiredPermission() int64 { return discordgo.PermissionManageMessages }
func (c *PurgeCommand) GuardSelf() bool           { return false }
func (c *PurgeCommand) GuardHierarchy() bool      { return false }

func (c *PurgeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minAmount := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
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

func (c *PurgeCommand) Run(ctx interface{}) error {
	slash, err := slashContext(ctx)
	if err != nil {
		return err
	}
	s, i := slash.Session, slash.Event

	amount := intOption(options(i), "amount")
	if amount < 1 {
		return discord.RespondEphemeral(s, i, "Please specify a positive number of messages to delete.")
	}
	if amount > purge.MaxAmount {
		return discord.RespondEphemeral(s, i, fmt.Sprintf("Cannot purge more than %d messages at once.", purge.MaxAmount))
	}

	if err := discord.RespondDeferred(s, i); err != nil {
		return err
	}

	deleted, err := purge.Execute(purge.NewSessionChannel(s), purge.Request{
		ChannelID: i.ChannelID,
		Amount:    amount,
	})
	if err != nil {
		return reportPurgeFailure(slash, err)
	}

	confirmThenCleanup(slash, fmt.Sprintf("🧹 Successfully deleted **%d** messages.", deleted))
	return nil
}
