package command

import (
	"context"

	"server-warden/pkg/cmd"

	"github.com/bwmarrin/discordgo"
)

// SlashInteractionContext is what the runtime passes when executing a slash
// command.
type SlashInteractionContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
}

// SlashProvider is implemented by commands that register a slash definition.
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// ModerationMeta is exposed by moderation commands so the authorization
// middleware can read their gate metadata without knowing concrete types.
type ModerationMeta interface {
	// RequiredPermission is the native permission bit the caller must hold.
	RequiredPermission() int64
	// GuardSelf rejects the caller or the bot itself as target.
	GuardSelf() bool
	// GuardHierarchy requires the caller to outrank the target.
	GuardHierarchy() bool
}

// DiscordCommand is what individual Discord commands implement.
type DiscordCommand interface {
	Name() string
	Description() string
	Run(ctx interface{}) error
}

// DiscordAdapter adapts a DiscordCommand to cmd.Command so it can live in
// the universal registry. Provider and meta interfaces are reached through
// the adapter via cmd.Root.
type DiscordAdapter struct {
	Cmd DiscordCommand
}

func (a *DiscordAdapter) Name() string        { return a.Cmd.Name() }
func (a *DiscordAdapter) Description() string { return a.Cmd.Description() }

func (a *DiscordAdapter) Run(ctx context.Context, inv *cmd.Invocation) error {
	return a.Cmd.Run(inv.Data)
}

func (a *DiscordAdapter) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := a.Cmd.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

// Meta returns the inner command's moderation metadata, if any.
func (a *DiscordAdapter) Meta() (ModerationMeta, bool) {
	m, ok := a.Cmd.(ModerationMeta)
	return m, ok
}

// RegisterCommand wraps a Discord command in the adapter, applies the
// middleware chain and adds it to the universal registry.
func RegisterCommand(discordCmd DiscordCommand, mws ...cmd.Middleware) {
	c := cmd.Apply(&DiscordAdapter{Cmd: discordCmd}, mws...)
	cmd.DefaultRegistry.Register(c)
}
