// Package moderation implements the role-gated moderation commands: purge,
// targetpurge, kick, ban, unban, timeout, untimeout, lock and unlock.
package moderation

import (
	"errors"
	"fmt"
	"time"

	"server-warden/internal/command"
	"server-warden/internal/discord"
	"server-warden/internal/purge"

	"github.com/bwmarrin/discordgo"
)

const defaultReason = "No reason provided."

// confirmationTTL is how long a success notice stays up before the bot
// removes it again.
const confirmationTTL = 5 * time.Second

func slashContext(ctx interface{}) (*command.SlashInteractionContext, error) {
	slash, ok := ctx.(*command.SlashInteractionContext)
	if !ok {
		return nil, fmt.Errorf("wrong context type")
	}
	return slash, nil
}

func options(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	if opt, ok := opts[name]; ok {
		return int(opt.IntValue())
	}
	return 0
}

// targetUser returns the resolved user of a member option, or nil.
func targetUser(i *discordgo.InteractionCreate, name string) *discordgo.User {
	data := i.ApplicationCommandData()
	opt, ok := options(i)[name]
	if !ok || data.Resolved == nil {
		return nil
	}
	id, ok := opt.Value.(string)
	if !ok {
		return nil
	}
	return data.Resolved.Users[id]
}

// displayName is the name used in replies: guild nick, then global name,
// then username.
func displayName(i *discordgo.InteractionCreate, u *discordgo.User) string {
	if u == nil {
		return "unknown"
	}
	if data := i.ApplicationCommandData(); data.Resolved != nil {
		if m := data.Resolved.Members[u.ID]; m != nil && m.Nick != "" {
			return m.Nick
		}
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// reportPurgeFailure renders an executor failure as an ephemeral followup
// (the interaction is already deferred at this point). Unclassified errors
// propagate to the dispatch boundary.
func reportPurgeFailure(slash *command.SlashInteractionContext, err error) error {
	s, i := slash.Session, slash.Event

	var platform *purge.PlatformError
	switch {
	case errors.Is(err, purge.ErrInvalidAmount):
		return discord.FollowupEphemeral(s, i, fmt.Sprintf("Please specify between 1 and %d messages.", purge.MaxAmount))
	case errors.Is(err, purge.ErrMissingBulkDeletePermission):
		return discord.FollowupEphemeral(s, i, "❌ I don't have permission to manage messages here (Manage Messages).")
	case errors.Is(err, purge.ErrMessagesTooOld):
		return discord.FollowupEphemeral(s, i, "❌ Cannot bulk delete messages older than 14 days. Please choose a smaller range.")
	case errors.As(err, &platform):
		return discord.FollowupEphemeral(s, i, fmt.Sprintf("❌ An error occurred during purge: HTTP %d", platform.Status))
	default:
		return err
	}
}

// confirmThenCleanup posts a public success followup and removes it again
// after confirmationTTL. Removal is best-effort: the notice may already have
// been deleted by someone else, and that is fine.
func confirmThenCleanup(slash *command.SlashInteractionContext, content string) {
	msg, err := discord.Followup(slash.Session, slash.Event, content)
	if err != nil || msg == nil {
		return
	}
	time.Sleep(confirmationTTL)
	_ = discord.DeleteFollowup(slash.Session, slash.Event, msg.ID)
}
