// Package resolve matches a human-supplied identifier against a per-invocation
// snapshot of a guild's ban list.
package resolve

import "strings"

// BanEntry is one entry of the banned-user directory.
type BanEntry struct {
	UserID     string
	Username   string
	GlobalName string // optional display name
}

// BannedUser resolves identifier to a directory entry. A numeric identifier
// is first matched exactly against user IDs; an ID hit is authoritative and
// short-circuits name matching, so an entry whose display name happens to
// look numeric can never shadow an ID match. When the ID lookup misses (or
// the identifier is not numeric) the directory is scanned case-insensitively
// against username and global name; first match in directory order wins.
func BannedUser(identifier string, entries []BanEntry) (BanEntry, bool) {
	if isDigits(identifier) {
		for _, e := range entries {
			if e.UserID == identifier {
				return e, true
			}
		}
	}

	lower := strings.ToLower(identifier)
	for _, e := range entries {
		if strings.ToLower(e.Username) == lower {
			return e, true
		}
		if e.GlobalName != "" && strings.ToLower(e.GlobalName) == lower {
			return e, true
		}
	}
	return BanEntry{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
