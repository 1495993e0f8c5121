package middleware

import (
	"context"

	"server-warden/internal/command"
	"server-warden/internal/discord"
	"server-warden/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// WithCommandLogger logs every executed command with its caller and guild.
func WithCommandLogger() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			err := c.Run(ctx, inv)

			if slash, ok := inv.Data.(*command.SlashInteractionContext); ok {
				e := slash.Event
				user := resolveUser(e)
				evt := log.Info()
				if err != nil {
					evt = log.Error().Err(err)
				}
				evt.
					Str("command", c.Name()).
					Str("guild", e.GuildID).
					Str("channel", e.ChannelID).
					Str("user", user.ID).
					Str("username", user.Username).
					Msg("Command executed")
			}
			return err
		})
	}
}

// resolveUser retrieves the invoking user from an interaction event.
func resolveUser(e *discordgo.InteractionCreate) *discordgo.User {
	if e.Member != nil && e.Member.User != nil {
		return e.Member.User
	}
	if e.User != nil {
		return e.User
	}
	return &discordgo.User{ID: "unknown", Username: "Unknown"}
}

func respondEphemeralNotice(slash *command.SlashInteractionContext, msg string) error {
	return discord.RespondEmbedEphemeral(slash.Session, slash.Event, &discordgo.MessageEmbed{
		Description: msg,
		Color:       discord.EmbedColor,
	})
}
