package resolve

import "testing"

var directory = []BanEntry{
	{UserID: "111111111111111111", Username: "alice", GlobalName: "Alice A"},
	{UserID: "222222222222222222", Username: "Bob", GlobalName: ""},
	{UserID: "333333333333333333", Username: "99999", GlobalName: "Nine"},
	{UserID: "444444444444444444", Username: "charlie", GlobalName: "Alice A"},
}

func TestBannedUserByID(t *testing.T) {
	e, ok := BannedUser("222222222222222222", directory)
	if !ok || e.Username != "Bob" {
		t.Fatalf("expected Bob by ID, got %+v %v", e, ok)
	}
}

func TestBannedUserIDBeatsNumericUsername(t *testing.T) {
	// An entry whose username is another entry's worth of digits must not
	// shadow an exact ID match.
	dir := []BanEntry{
		{UserID: "555", Username: "777"},
		{UserID: "777", Username: "real"},
	}
	e, ok := BannedUser("777", dir)
	if !ok || e.Username != "real" {
		t.Fatalf("expected ID match to win, got %+v %v", e, ok)
	}
}

func TestBannedUserNumericMissFallsBackToNames(t *testing.T) {
	e, ok := BannedUser("99999", directory)
	if !ok || e.UserID != "333333333333333333" {
		t.Fatalf("expected username fallback on ID miss, got %+v %v", e, ok)
	}
}

func TestBannedUserByNameCaseInsensitive(t *testing.T) {
	e, ok := BannedUser("ALICE", directory)
	if !ok || e.UserID != "111111111111111111" {
		t.Fatalf("expected alice by username, got %+v %v", e, ok)
	}

	e, ok = BannedUser("bOb", directory)
	if !ok || e.UserID != "222222222222222222" {
		t.Fatalf("expected Bob by username, got %+v %v", e, ok)
	}
}

func TestBannedUserByGlobalName(t *testing.T) {
	// First match in directory order wins on duplicate global names.
	e, ok := BannedUser("alice a", directory)
	if !ok || e.UserID != "111111111111111111" {
		t.Fatalf("expected first directory entry to win, got %+v %v", e, ok)
	}
}

func TestBannedUserNotFound(t *testing.T) {
	if _, ok := BannedUser("nobody", directory); ok {
		t.Fatalf("expected miss for unknown name")
	}
	if _, ok := BannedUser("000000000000000000", directory); ok {
		t.Fatalf("expected miss for unknown ID")
	}
	if _, ok := BannedUser("", directory); ok {
		t.Fatalf("expected miss for empty identifier")
	}
	if _, ok := BannedUser("alice", nil); ok {
		t.Fatalf("expected miss against empty directory")
	}
}
