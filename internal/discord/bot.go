package discord

import (
	"context"
	"fmt"

	"server-warden/internal/command"
	"server-warden/internal/config"
	"server-warden/pkg/cmd"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Bot owns the Discord session and dispatches interactions into the command
// registry.
type Bot struct {
	dg  *discordgo.Session
	cfg *config.Config
}

// StartBot connects to Discord and blocks until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config) error {
	b := &Bot{cfg: cfg}
	if err := b.run(ctx, cfg.DiscordToken); err != nil {
		return fmt.Errorf("bot run error: %w", err)
	}
	return nil
}

func (b *Bot) run(ctx context.Context, token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b.dg = dg

	b.configureIntents()
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received, closing session")
	return nil
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentGuildModeration |
		discordgo.IntentsGuildMessages
}

// onReady leaves any guild outside the allow-list, registers slash commands
// for the rest and sets the presence.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	var left []string
	for _, g := range r.Guilds {
		if !b.cfg.GuildAllowed(g.ID) {
			left = append(left, g.ID)
			if err := s.GuildLeave(g.ID); err != nil {
				log.Error().Err(err).Str("guild", g.ID).Msg("Failed to leave unauthorized guild")
			}
			continue
		}

		if b.cfg.InitSlashCommands {
			if err := b.registerCommands(g.ID); err != nil {
				log.Error().Err(err).Str("guild", g.ID).Msg("Failed to register slash commands")
			}
		}
	}
	if len(left) > 0 {
		log.Info().Strs("guilds", left).Msg("Left unauthorized guilds on startup")
	}

	if err := s.UpdateGameStatus(0, "Ready for instructions"); err != nil {
		log.Warn().Err(err).Msg("Failed to set presence")
	}

	log.Info().Str("user", s.State.User.Username).Str("id", s.State.User.ID).Msg("Discord bot is running")
}

// onGuildCreate enforces the allow-list at join time.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if !b.cfg.GuildAllowed(g.Guild.ID) {
		log.Info().Str("guild", g.Guild.ID).Str("name", g.Guild.Name).Msg("Leaving unauthorized guild")
		if err := s.GuildLeave(g.Guild.ID); err != nil {
			log.Error().Err(err).Str("guild", g.Guild.ID).Msg("Failed to leave guild")
		}
		return
	}

	log.Info().Str("guild", g.Guild.ID).Str("name", g.Guild.Name).Msg("Joined guild")
	if b.cfg.InitSlashCommands {
		if err := b.registerCommands(g.Guild.ID); err != nil {
			log.Error().Err(err).Str("guild", g.Guild.ID).Msg("Failed to register commands for new guild")
		}
	}
}

// onInteractionCreate dispatches slash commands. A command error is reported
// to the caller and logged; it never takes down the handling loop.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	c := cmd.DefaultRegistry.Get(name)
	if c == nil {
		log.Warn().Str("command", name).Msg("Unknown command")
		return
	}

	inv := &cmd.Invocation{Data: &command.SlashInteractionContext{Session: s, Event: i}}
	if err := c.Run(context.Background(), inv); err != nil {
		log.Error().Err(err).Str("command", name).Msg("Command failed")
		if respErr := RespondEmbedEphemeral(s, i, &discordgo.MessageEmbed{
			Description: "An error occurred while executing the command.",
			Color:       EmbedColor,
		}); respErr != nil {
			// The command may already have responded; fall back to a followup.
			_ = FollowupEphemeral(s, i, "An error occurred while executing the command.")
		}
	}
}

// registerCommands overwrites the guild's slash command set with the
// registry's definitions.
func (b *Bot) registerCommands(guildID string) error {
	appID := b.dg.State.User.ID
	if appID == "" {
		user, err := b.dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	var defs []*discordgo.ApplicationCommand
	for _, c := range cmd.DefaultRegistry.All() {
		adapter, ok := cmd.Root(c).(*command.DiscordAdapter)
		if !ok {
			continue
		}
		if def := adapter.SlashDefinition(); def != nil {
			defs = append(defs, def)
		}
	}

	if _, err := b.dg.ApplicationCommandBulkOverwrite(appID, guildID, defs); err != nil {
		return fmt.Errorf("bulk overwrite commands for guild %s: %w", guildID, err)
	}
	log.Info().Str("guild", guildID).Int("count", len(defs)).Msg("Slash commands registered")
	return nil
}
