package user

import "testing"

func TestToPublicUserDropsCredential(t *testing.T) {
	row := RawUser{ID: 42, Username: "alice", PasswordHash: "$argon2id$..."}

	got := ToPublicUser(row)

	if got.ID != 42 || got.Username != "alice" {
		t.Fatalf("unexpected public view: %+v", got)
	}
}

func TestToInternalUserKeepsCredential(t *testing.T) {
	row := RawUser{ID: 42, Username: "alice", PasswordHash: "$argon2id$..."}

	got := ToInternalUser(row)

	if got.PasswordHash != row.PasswordHash {
		t.Fatalf("expected credential hash preserved, got %+v", got)
	}
	if got.ID != 42 || got.Username != "alice" {
		t.Fatalf("unexpected internal view: %+v", got)
	}
}
