package auth

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func modInvocation() *Invocation {
	return &Invocation{
		GuildID:     "guild-1",
		CallerID:    "caller-1",
		CallerRoles: []string{"Moderator"},
		CallerPerms: discordgo.PermissionBanMembers,
		CallerRank:  10,
		BotID:       "bot-1",
		Target:      &Target{ID: "target-1", Name: "Target", Rank: 5},
		Command: CommandSpec{
			Name:           "ban",
			Permission:     discordgo.PermissionBanMembers,
			GuardSelf:      true,
			GuardHierarchy: true,
		},
	}
}

func TestAuthorizeAllowsWellFormedInvocation(t *testing.T) {
	g := NewGate([]string{"Admin", "Moderator"})
	if d := g.Authorize(modInvocation()); d != nil {
		t.Fatalf("expected pass, got denial %d: %s", d.Code, d.Message)
	}
}

func TestAuthorizeDenialCodes(t *testing.T) {
	g := NewGate([]string{"Admin", "Moderator"})

	tests := []struct {
		name    string
		mutate  func(*Invocation)
		want    Code
		wantMsg string
	}{
		{
			name:    "outside guild",
			mutate:  func(inv *Invocation) { inv.GuildID = "" },
			want:    NotInGuild,
			wantMsg: "server/guild context",
		},
		{
			name:    "no moderation role",
			mutate:  func(inv *Invocation) { inv.CallerRoles = []string{"Member"} },
			want:    MissingModerationRole,
			wantMsg: "Admin, Moderator",
		},
		{
			name:    "no native permission",
			mutate:  func(inv *Invocation) { inv.CallerPerms = discordgo.PermissionSendMessages },
			want:    MissingNativePermission,
			wantMsg: "Ban Members",
		},
		{
			name:    "self target",
			mutate:  func(inv *Invocation) { inv.Target.ID = inv.CallerID },
			want:    InvalidTarget,
			wantMsg: "You cannot ban yourself!",
		},
		{
			name:    "bot target",
			mutate:  func(inv *Invocation) { inv.Target.ID = inv.BotID },
			want:    InvalidTarget,
			wantMsg: "I cannot ban myself!",
		},
		{
			name:    "target outranks caller",
			mutate:  func(inv *Invocation) { inv.Target.Rank = 10 },
			want:    InsufficientRank,
			wantMsg: "higher than or equal to yours",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv := modInvocation()
			tc.mutate(inv)
			d := g.Authorize(inv)
			if d == nil {
				t.Fatalf("expected denial, got pass")
			}
			if d.Code != tc.want {
				t.Fatalf("expected code %d, got %d (%s)", tc.want, d.Code, d.Message)
			}
			if !strings.Contains(d.Message, tc.wantMsg) {
				t.Fatalf("expected message containing %q, got %q", tc.wantMsg, d.Message)
			}
		})
	}
}

func TestAuthorizeCheckOrdering(t *testing.T) {
	g := NewGate([]string{"Moderator"})

	// Everything wrong at once: the guild check must win.
	inv := modInvocation()
	inv.GuildID = ""
	inv.CallerRoles = nil
	inv.CallerPerms = 0
	inv.Target.ID = inv.CallerID
	if d := g.Authorize(inv); d == nil || d.Code != NotInGuild {
		t.Fatalf("expected NotInGuild first, got %+v", d)
	}

	// Restore guild: role membership is next.
	inv.GuildID = "guild-1"
	if d := g.Authorize(inv); d == nil || d.Code != MissingModerationRole {
		t.Fatalf("expected MissingModerationRole next, got %+v", d)
	}

	// Restore role: native permission is next.
	inv.CallerRoles = []string{"Moderator"}
	if d := g.Authorize(inv); d == nil || d.Code != MissingNativePermission {
		t.Fatalf("expected MissingNativePermission next, got %+v", d)
	}

	// Restore permission: the self-target guard fires last before hierarchy.
	inv.CallerPerms = discordgo.PermissionBanMembers
	if d := g.Authorize(inv); d == nil || d.Code != InvalidTarget {
		t.Fatalf("expected InvalidTarget next, got %+v", d)
	}
}

func TestAdministratorSatisfiesAnyPermission(t *testing.T) {
	g := NewGate([]string{"Moderator"})
	inv := modInvocation()
	inv.CallerPerms = discordgo.PermissionAdministrator
	if d := g.Authorize(inv); d != nil {
		t.Fatalf("expected administrator bit to satisfy ban requirement, got %+v", d)
	}
}

func TestOwnerBypassesHierarchyOnly(t *testing.T) {
	g := NewGate([]string{"Moderator"})

	inv := modInvocation()
	inv.IsOwner = true
	inv.CallerRank = 0
	inv.Target.Rank = 99
	if d := g.Authorize(inv); d != nil {
		t.Fatalf("expected owner to bypass hierarchy, got %+v", d)
	}

	// The bypass does not extend to the self-action guard.
	inv.Target.ID = inv.CallerID
	if d := g.Authorize(inv); d == nil || d.Code != InvalidTarget {
		t.Fatalf("expected self-target denial for owner, got %+v", d)
	}
}

func TestEqualRankIsDenied(t *testing.T) {
	g := NewGate([]string{"Moderator"})
	inv := modInvocation()
	inv.CallerRank = 5
	inv.Target.Rank = 5
	d := g.Authorize(inv)
	if d == nil || d.Code != InsufficientRank {
		t.Fatalf("expected equal rank to be denied, got %+v", d)
	}
}

func TestGuardsSkippedWithoutTarget(t *testing.T) {
	g := NewGate([]string{"Moderator"})
	inv := modInvocation()
	inv.Target = nil
	if d := g.Authorize(inv); d != nil {
		t.Fatalf("expected pass without target, got %+v", d)
	}
}

func TestRoleMatchIsCaseSensitive(t *testing.T) {
	g := NewGate([]string{"Moderator"})
	inv := modInvocation()
	inv.CallerRoles = []string{"moderator"}
	d := g.Authorize(inv)
	if d == nil || d.Code != MissingModerationRole {
		t.Fatalf("expected case-sensitive role match to fail, got %+v", d)
	}
}
