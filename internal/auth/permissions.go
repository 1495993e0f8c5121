package auth

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const permissionAdministrator = discordgo.PermissionAdministrator

// permissionNames covers the permissions this bot's commands can require.
var permissionNames = map[int64]string{
	discordgo.PermissionKickMembers:     "Kick Members",
	discordgo.PermissionBanMembers:      "Ban Members",
	discordgo.PermissionAdministrator:   "Administrator",
	discordgo.PermissionManageChannels:  "Manage Channels",
	discordgo.PermissionManageMessages:  "Manage Messages",
	discordgo.PermissionManageRoles:     "Manage Roles",
	discordgo.PermissionModerateMembers: "Moderate Members",
}

// PermissionName returns a readable name for a permission bit.
func PermissionName(p int64) string {
	if name, ok := permissionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", p)
}
