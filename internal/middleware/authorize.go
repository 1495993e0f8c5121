// Package middleware provides the ordered dispatch chain applied to commands:
// authorization, per-user cooldown, and execution logging.
package middleware

import (
	"context"
	"fmt"

	"server-warden/internal/auth"
	"server-warden/internal/command"
	"server-warden/internal/discord"
	"server-warden/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// WithAuthorization runs the gate before the command. The full invocation
// (role names, permission bits, ranks, owner flag, resolved target) is built
// fresh from guild state on every dispatch; nothing is cached. A denial is
// rendered back to the caller as an ephemeral embed and the command is not
// run.
func WithAuthorization(gate *auth.Gate) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			slash, ok := inv.Data.(*command.SlashInteractionContext)
			if !ok {
				return c.Run(ctx, inv)
			}

			adapter, ok := cmd.Root(c).(*command.DiscordAdapter)
			if !ok {
				return c.Run(ctx, inv)
			}
			meta, ok := adapter.Meta()
			if !ok {
				return c.Run(ctx, inv)
			}

			authInv, err := buildInvocation(slash.Session, slash.Event, c.Name(), meta)
			if err != nil {
				return fmt.Errorf("failed to build authorization context: %w", err)
			}

			if d := gate.Authorize(authInv); d != nil {
				return discord.RespondEmbedEphemeral(slash.Session, slash.Event, &discordgo.MessageEmbed{
					Description: d.Message,
					Color:       discord.EmbedColor,
				})
			}
			return c.Run(ctx, inv)
		})
	}
}

func buildInvocation(s *discordgo.Session, i *discordgo.InteractionCreate, name string, meta command.ModerationMeta) (*auth.Invocation, error) {
	spec := auth.CommandSpec{
		Name:           name,
		Permission:     meta.RequiredPermission(),
		GuardSelf:      meta.GuardSelf(),
		GuardHierarchy: meta.GuardHierarchy(),
	}

	m := i.Member
	if i.GuildID == "" || m == nil || m.User == nil {
		// Outside a guild; the gate's first check produces the denial.
		return &auth.Invocation{Command: spec}, nil
	}

	roles, err := guildRoles(s, i.GuildID)
	if err != nil {
		return nil, err
	}

	perms, err := s.UserChannelPermissions(m.User.ID, i.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user permissions: %w", err)
	}

	ownerID, err := guildOwnerID(s, i.GuildID)
	if err != nil {
		return nil, err
	}

	inv := &auth.Invocation{
		GuildID:     i.GuildID,
		CallerID:    m.User.ID,
		CallerRoles: roleNames(roles, m.Roles),
		CallerPerms: perms,
		CallerRank:  topRank(roles, m.Roles),
		IsOwner:     m.User.ID == ownerID,
		BotID:       s.State.User.ID,
		Command:     spec,
	}

	if t := resolveTarget(i, roles); t != nil {
		inv.Target = t
	}
	return inv, nil
}

// resolveTarget extracts the member-typed option, if the command has one,
// from the interaction's resolved data.
func resolveTarget(i *discordgo.InteractionCreate, roles map[string]*discordgo.Role) *auth.Target {
	data := i.ApplicationCommandData()
	for _, opt := range data.Options {
		if opt.Type != discordgo.ApplicationCommandOptionUser {
			continue
		}
		userID, ok := opt.Value.(string)
		if !ok || userID == "" {
			continue
		}

		t := &auth.Target{ID: userID}
		if data.Resolved != nil {
			if u := data.Resolved.Users[userID]; u != nil {
				t.Name = u.Username
				if u.GlobalName != "" {
					t.Name = u.GlobalName
				}
			}
			if m := data.Resolved.Members[userID]; m != nil {
				if m.Nick != "" {
					t.Name = m.Nick
				}
				t.Rank = topRank(roles, m.Roles)
			}
		}
		return t
	}
	return nil
}

// guildRoles returns the guild's roles by ID, preferring the state cache.
func guildRoles(s *discordgo.Session, guildID string) (map[string]*discordgo.Role, error) {
	var list []*discordgo.Role
	if g, _ := s.State.Guild(guildID); g != nil && len(g.Roles) > 0 {
		list = g.Roles
	} else {
		var err error
		list, err = s.GuildRoles(guildID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch guild roles: %w", err)
		}
	}

	byID := make(map[string]*discordgo.Role, len(list))
	for _, r := range list {
		byID[r.ID] = r
	}
	return byID, nil
}

func guildOwnerID(s *discordgo.Session, guildID string) (string, error) {
	if g, _ := s.State.Guild(guildID); g != nil && g.OwnerID != "" {
		return g.OwnerID, nil
	}
	g, err := s.Guild(guildID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch guild: %w", err)
	}
	return g.OwnerID, nil
}

func roleNames(roles map[string]*discordgo.Role, ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if r := roles[id]; r != nil {
			names = append(names, r.Name)
		}
	}
	return names
}

// topRank is the position of the member's highest role. Members with no
// roles rank at zero, alongside @everyone.
func topRank(roles map[string]*discordgo.Role, ids []string) int {
	rank := 0
	for _, id := range ids {
		if r := roles[id]; r != nil && r.Position > rank {
			rank = r.Position
		}
	}
	return rank
}
