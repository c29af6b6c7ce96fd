package user

// RawUser is the storage row, credential hash included. It never
// crosses a package boundary; callers pick a view below.
type RawUser struct {
	ID           int64
	Username     string
	PasswordHash string
}

// User is the public view: safe to hand to handlers and render layers.
type User struct {
	ID       int64
	Username string
}

// InternalUser is the view for credential work; it still carries the
// stored hash.
type InternalUser struct {
	ID           int64
	Username     string
	PasswordHash string
}

// ToPublicUser maps a storage row to the public view.
func ToPublicUser(row RawUser) User {
	return User{
		ID:       row.ID,
		Username: row.Username,
	}
}

// ToInternalUser maps a storage row to the credential-bearing view.
func ToInternalUser(row RawUser) InternalUser {
	return InternalUser{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
	}
}
