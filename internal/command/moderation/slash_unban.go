package moderation

import (
	"errors"
	"fmt"

	"server-warden/internal/discord"
	"server-warden/internal/resolve"

	"github.com/bwmarrin/discordgo"
)

// banListLimit is the platform page ceiling for one ban-list fetch. The
// directory is a per-invocation snapshot, never cached.
const banListLimit = 1000

type UnbanCommand struct{}

func (c *UnbanCommand) Name() string        { return "unban" }
func (c *UnbanCommand) Description() string { return "Unbans a user by ID or username." }

func (c *UnbanCommand) RequiredPermission() int64 { return discordgo.PermissionBanMembers }
func (c *UnbanCommand) GuardSelf() bool           { return false }
func (c *UnbanCommand) GuardHierarchy() bool      { return false }

func (c *UnbanCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "user",
				Description: "User ID or username of the banned user",
				Required:    true,
			},
		},
	}
}

func (c *UnbanCommand) Run(ctx interface{}) error {
	slash, err := slashContext(ctx)
	if err != nil {
		return err
	}
	s, i := slash.Session, slash.Event

	identifier := stringOption(options(i), "user")

	bans, err := s.GuildBans(i.GuildID, banListLimit, "", "")
	if err != nil {
		var rest *discordgo.RESTError
		if errors.As(err, &rest) && rest.Response != nil && rest.Response.StatusCode == 403 {
			return discord.RespondEphemeral(s, i, "❌ I am missing the **Ban Members** permission to view the ban list.")
		}
		return fmt.Errorf("failed to fetch ban list: %w", err)
	}

	entries := make([]resolve.BanEntry, 0, len(bans))
	for _, b := range bans {
		if b.User == nil {
			continue
		}
		entries = append(entries, resolve.BanEntry{
			UserID:     b.User.ID,
			Username:   b.User.Username,
			GlobalName: b.User.GlobalName,
		})
	}

	entry, found := resolve.BannedUser(identifier, entries)
	if !found {
		return discord.RespondEphemeral(s, i, fmt.Sprintf(
			"❌ Could not find a banned user matching %q in the ban list. Please ensure you are using the correct **User ID**.",
			identifier,
		))
	}

	if err := s.GuildBanDelete(i.GuildID, entry.UserID); err != nil {
		return fmt.Errorf("failed to unban %s: %w", entry.UserID, err)
	}

	name := entry.GlobalName
	if name == "" {
		name = entry.Username
	}
	return discord.Respond(s, i, fmt.Sprintf("🔓 Unbanned **%s** (ID: %s). Welcome back!", name, entry.UserID))
}
