package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is built once at startup and passed by reference. It is never
// mutated after New returns.
type Config struct {
	DiscordToken      string   `env:"DISCORD_TOKEN"`
	ModerationRoles   []string `env:"MODERATION_ROLES" envSeparator:"," envDefault:"Admin,Moderator"`
	AllowedGuilds     []string `env:"ALLOWED_GUILDS" envSeparator:","`
	InitSlashCommands bool     `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
	LogLevel          string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFile           string   `env:"LOG_FILE"`
}

// New loads .env (if present) and parses the process environment.
// A missing DISCORD_TOKEN is the one fatal misconfiguration: the caller is
// expected to abort before any command can run.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set")
	}
	return cfg, nil
}

// GuildAllowed reports whether the bot may stay in the given guild.
// An empty allow-list permits every guild.
func (c *Config) GuildAllowed(guildID string) bool {
	if len(c.AllowedGuilds) == 0 {
		return true
	}
	for _, id := range c.AllowedGuilds {
		if id == guildID {
			return true
		}
	}
	return false
}
