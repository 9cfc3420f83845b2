package store

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrEmailTaken signals the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials indicates a login failure. The same error covers
	// unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound indicates the referenced user row is absent.
	ErrUserNotFound = errors.New("user not found")
	// ErrVenueNotFound covers both a missing venue and a venue owned by
	// someone else.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrPerformanceNotFound covers both a missing performance and one owned
	// by someone else.
	ErrPerformanceNotFound = errors.New("performance not found")
	// ErrInteractionNotFound covers both a missing interaction and one owned
	// by someone else.
	ErrInteractionNotFound = errors.New("interaction not found")
	// ErrResetTokenInvalid indicates a missing or expired password-reset token.
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
)

// Store provides persistence backed by Postgres. The *sql.DB handle is
// injected at construction; nothing here is package-level state.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// newResetToken returns a random token in raw and sha256-hex form. Only the
// hash is ever stored.
func newResetToken() (raw, hashed string, err error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(b)
	return raw, hashResetToken(raw), nil
}

func hashResetToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("marshal tags: %w", err)
	}
	return string(b), nil
}

func unmarshalTags(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("unmarshal tags: %w", err)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}
