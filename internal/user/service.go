package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"identity-service/internal/auth/credentials"
	"identity-service/internal/db"
	"identity-service/internal/logger"
)

var (
	ErrUsernameTaken = errors.New("user: username already taken")
	ErrUserNotFound  = errors.New("user: not found")
)

type Service struct {
	db     *db.DB
	hasher *credentials.Hasher
}

func NewService(db *db.DB, hasher *credentials.Hasher) *Service {
	return &Service{db: db, hasher: hasher}
}

// ValidateCredentials checks username/password against the stored
// credential. Unknown users and wrong passwords both come back as
// (nil, nil): a failed login is a normal outcome, and the response
// must not reveal whether the account exists. Only store failures are
// errors.
func (s *Service) ValidateCredentials(
	ctx context.Context,
	username string,
	password string,
) (*User, error) {

	var row RawUser
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`, username).Scan(&row.ID, &row.Username, &row.PasswordHash)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user: lookup %q: %w", username, err)
	}

	internal := ToInternalUser(row)

	ok, err := s.hasher.Verify(password, internal.PasswordHash)
	if errors.Is(err, credentials.ErrMalformedHash) {
		// Corrupt stored hash: fail closed, tell the operator.
		logger.Error("stored credential unreadable", map[string]any{
			"user_id": internal.ID,
			"error":   err.Error(),
		})
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user: verify credential: %w", err)
	}
	if !ok {
		return nil, nil
	}

	public := ToPublicUser(row)
	return &public, nil
}

// Create hashes the password and inserts a new user.
func (s *Service) Create(
	ctx context.Context,
	username string,
	password string,
) (*User, error) {

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("user: hash credential: %w", err)
	}

	var row RawUser
	row.Username = username
	row.PasswordHash = hash

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`, username, hash).Scan(&row.ID)

	if isUniqueViolation(err) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("user: create %q: %w", username, err)
	}

	public := ToPublicUser(row)
	return &public, nil
}

// ValidatePassword checks a password against the credential stored for
// userID. Same contract as ValidateCredentials: a mismatch is a value,
// not an error.
func (s *Service) ValidatePassword(
	ctx context.Context,
	userID int64,
	password string,
) (bool, error) {

	var row RawUser
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash
		FROM users
		WHERE id = $1
	`, userID).Scan(&row.ID, &row.Username, &row.PasswordHash)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("user: lookup id %d: %w", userID, err)
	}

	ok, err := s.hasher.Verify(password, ToInternalUser(row).PasswordHash)
	if errors.Is(err, credentials.ErrMalformedHash) {
		logger.Error("stored credential unreadable", map[string]any{
			"user_id": row.ID,
			"error":   err.Error(),
		})
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("user: verify credential: %w", err)
	}

	return ok, nil
}

// UpdateCredential replaces the stored hash for userID with a hash of
// newPassword.
func (s *Service) UpdateCredential(
	ctx context.Context,
	userID int64,
	newPassword string,
) error {

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("user: hash credential: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
	`, hash, userID)

	if err != nil {
		return fmt.Errorf("user: update credential: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("user: update credential: %w", err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// GetByID loads the public view of a user.
func (s *Service) GetByID(ctx context.Context, userID int64) (*User, error) {
	var row RawUser
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash
		FROM users
		WHERE id = $1
	`, userID).Scan(&row.ID, &row.Username, &row.PasswordHash)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user: lookup id %d: %w", userID, err)
	}

	public := ToPublicUser(row)
	return &public, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
