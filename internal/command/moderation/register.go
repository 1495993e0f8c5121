package moderation

import "server-warden/internal/command"

// Commands returns every moderation command, ready for registration behind
// the authorization gate.
func Commands() []command.DiscordCommand {
	return []command.DiscordCommand{
		&PurgeCommand{},
		&TargetPurgeCommand{},
		&KickCommand{},
		&BanCommand{},
		&UnbanCommand{},
		&TimeoutCommand{},
		&UntimeoutCommand{},
		&LockCommand{},
		&UnlockCommand{},
	}
}
