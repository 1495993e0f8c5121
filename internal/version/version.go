package version

import "runtime"

// Set at build time via -ldflags "-X server-warden/internal/version.BuildDate=..."
var (
	AppName        = "Server Warden"
	AppDescription = "A guild moderation bot: purge, kick, ban, timeout and channel locks behind a role gate."
	BuildDate      = ""
	GoVersion      = runtime.Version()
)
