// Package auth decides whether a command invocation may execute. The gate is
// an explicit ordered list of predicate checks over a plain Invocation value;
// the Discord layer builds that value fresh for every dispatch, so the gate
// itself never talks to the platform.
package auth

import (
	"fmt"
	"strings"
)

// Code tags the reason an invocation was denied.
type Code int

const (
	NotInGuild Code = iota
	MissingModerationRole
	MissingNativePermission
	InvalidTarget
	InsufficientRank
)

// Denial is a user-visible refusal. It is never escalated to a process
// error; the dispatcher renders Message back to the caller.
type Denial struct {
	Code    Code
	Message string
}

// CommandSpec is the per-command authorization metadata.
type CommandSpec struct {
	Name           string
	Permission     int64 // required native permission bits, 0 = none
	GuardSelf      bool  // reject caller or bot as target
	GuardHierarchy bool  // require caller rank above target rank
}

// Target describes the resolved target of a moderation command, when any.
type Target struct {
	ID   string
	Name string // display name, used in denial text
	Rank int    // highest role position in the guild
}

// Invocation carries everything the checks need. Role names, permission bits
// and ranks must be queried from current guild state at dispatch time, not
// cached across invocations.
type Invocation struct {
	GuildID     string
	CallerID    string
	CallerRoles []string // role names
	CallerPerms int64
	CallerRank  int
	IsOwner     bool
	BotID       string
	Target      *Target
	Command     CommandSpec
}

type check func(*Gate, *Invocation) *Denial

// Gate evaluates the check chain against a configured moderation role set.
type Gate struct {
	roles  []string
	checks []check
}

// NewGate builds a gate for the given role allow-list. Membership testing is
// case-sensitive exact match.
func NewGate(moderationRoles []string) *Gate {
	return &Gate{
		roles: moderationRoles,
		// Cheapest and most general first; target-dependent guards last.
		checks: []check{
			checkGuild,
			checkModerationRole,
			checkNativePermission,
			checkSelfTarget,
			checkHierarchy,
		},
	}
}

// Roles returns the configured moderation role names.
func (g *Gate) Roles() []string { return g.roles }

// Authorize runs the checks in order and returns the first denial, or nil
// when the invocation may proceed.
func (g *Gate) Authorize(inv *Invocation) *Denial {
	for _, c := range g.checks {
		if d := c(g, inv); d != nil {
			return d
		}
	}
	return nil
}

func checkGuild(_ *Gate, inv *Invocation) *Denial {
	if inv.GuildID == "" {
		return &Denial{
			Code:    NotInGuild,
			Message: "This command must be used in a server/guild context.",
		}
	}
	return nil
}

func checkModerationRole(g *Gate, inv *Invocation) *Denial {
	for _, have := range inv.CallerRoles {
		for _, want := range g.roles {
			if have == want {
				return nil
			}
		}
	}
	return &Denial{
		Code: MissingModerationRole,
		Message: fmt.Sprintf(
			"You must have one of the following roles to use this command: %s",
			strings.Join(g.roles, ", "),
		),
	}
}

func checkNativePermission(_ *Gate, inv *Invocation) *Denial {
	required := inv.Command.Permission
	if required == 0 {
		return nil
	}
	if inv.CallerPerms&(required|permissionAdministrator) != 0 {
		return nil
	}
	return &Denial{
		Code:    MissingNativePermission,
		Message: fmt.Sprintf("You are missing the %s permission.", PermissionName(required)),
	}
}

func checkSelfTarget(_ *Gate, inv *Invocation) *Denial {
	if !inv.Command.GuardSelf || inv.Target == nil {
		return nil
	}
	if inv.Target.ID == inv.CallerID {
		return &Denial{
			Code:    InvalidTarget,
			Message: fmt.Sprintf("You cannot %s yourself!", inv.Command.Name),
		}
	}
	if inv.Target.ID == inv.BotID {
		return &Denial{
			Code:    InvalidTarget,
			Message: fmt.Sprintf("I cannot %s myself!", inv.Command.Name),
		}
	}
	return nil
}

func checkHierarchy(_ *Gate, inv *Invocation) *Denial {
	if !inv.Command.GuardHierarchy || inv.Target == nil {
		return nil
	}
	if inv.IsOwner {
		return nil
	}
	if inv.CallerRank <= inv.Target.Rank {
		return &Denial{
			Code: InsufficientRank,
			Message: fmt.Sprintf(
				"You cannot %s **%s** because their role is higher than or equal to yours.",
				inv.Command.Name, inv.Target.Name,
			),
		}
	}
	return nil
}
