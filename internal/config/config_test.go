package config

import (
	"os"
	"testing"
)

// unset clears a variable for the test while keeping t.Setenv's restore.
func unset(t *testing.T, key string) {
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestNewRequiresToken(t *testing.T) {
	unset(t, "DISCORD_TOKEN")
	if _, err := New(); err == nil {
		t.Fatalf("expected error when DISCORD_TOKEN is unset")
	}
}

func TestNewDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	unset(t, "MODERATION_ROLES")
	unset(t, "ALLOWED_GUILDS")
	unset(t, "INIT_SLASH_COMMANDS")
	unset(t, "LOG_LEVEL")

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.ModerationRoles) != 2 || cfg.ModerationRoles[0] != "Admin" || cfg.ModerationRoles[1] != "Moderator" {
		t.Fatalf("unexpected default roles: %v", cfg.ModerationRoles)
	}
	if !cfg.InitSlashCommands {
		t.Fatalf("expected slash command registration on by default")
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected default log level: %q", cfg.LogLevel)
	}
}

func TestNewParsesLists(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("MODERATION_ROLES", "Staff,Helper")
	t.Setenv("ALLOWED_GUILDS", "1,2")

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.ModerationRoles) != 2 || cfg.ModerationRoles[0] != "Staff" {
		t.Fatalf("unexpected roles: %v", cfg.ModerationRoles)
	}
	if !cfg.GuildAllowed("2") {
		t.Fatalf("expected guild 2 to be allowed")
	}
	if cfg.GuildAllowed("3") {
		t.Fatalf("expected guild 3 to be rejected")
	}
}

func TestGuildAllowedEmptyListAllowsAll(t *testing.T) {
	cfg := &Config{}
	if !cfg.GuildAllowed("anything") {
		t.Fatalf("expected empty allow-list to permit every guild")
	}
}
