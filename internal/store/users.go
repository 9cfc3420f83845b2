package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gigtracker/internal/models"
)

// resetTokenTTL is how long a password-reset token stays valid.
const resetTokenTTL = 10 * time.Minute

// dummyPasswordHash is compared against when the email is unknown so that a
// failed login takes the same time either way.
var dummyPasswordHash = []byte("$2a$10$CwTycUXWue0Thq9StjUM0uJ8n4VWeNseyX2fA9DE.D7su7J6iYGTC")

const userColumns = `
	id, email, password_hash, first_name, last_name, phone, role,
	band_name, genre, website, bio, city, state, country,
	is_active, last_login, reset_password_token, reset_password_expire,
	created_at, updated_at
`

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u           models.User
		lastLogin   sql.NullTime
		resetToken  sql.NullString
		resetExpire sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Role,
		&u.BandName, &u.Genre, &u.Website, &u.Bio, &u.City, &u.State, &u.Country,
		&u.IsActive, &lastLogin, &resetToken, &resetExpire,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}
	if resetToken.Valid {
		u.ResetPasswordToken = &resetToken.String
	}
	if resetExpire.Valid {
		u.ResetPasswordExpire = &resetExpire.Time
	}
	return &u, nil
}

// CreateUser registers a new account. The password is hashed here; plaintext
// never reaches the database.
func (s *Store) CreateUser(ctx context.Context, reg models.Registration) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(reg.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns+`
	`, email, string(hash), reg.FirstName, reg.LastName, models.RoleUser)

	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// Authenticate verifies the credentials and stamps last_login. Unknown email
// and wrong password return the same ErrInvalidCredentials.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if _, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET last_login = $1
		WHERE id = $2
	`, now, user.ID); err != nil {
		return nil, fmt.Errorf("stamp last login: %w", err)
	}
	user.LastLogin = &now

	return user, nil
}

// UserByID fetches a single user row.
func (s *Store) UserByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// UpdateProfile writes the mutable profile fields. Email, password, role and
// the reset-token fields are untouched by this statement.
func (s *Store) UpdateProfile(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, band_name = $4,
		    genre = $5, website = $6, bio = $7, city = $8, state = $9,
		    country = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
		RETURNING `+userColumns+`
	`, user.FirstName, user.LastName, user.Phone, user.BandName,
		user.Genre, user.Website, user.Bio, user.City, user.State,
		user.Country, id)

	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}

// ChangePassword verifies the current password before storing a hash of the
// new one.
func (s *Store) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	var hash string
	err := s.db.QueryRowContext(ctx, `
		SELECT password_hash
		FROM users
		WHERE id = $1
	`, id).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`, string(newHash), id); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

// CreateResetToken stores a hashed reset token with a short expiry and hands
// back the raw token for out-of-band delivery.
func (s *Store) CreateResetToken(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	raw, hashed, err := newResetToken()
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}

	expire := time.Now().Add(resetTokenTTL)

	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET reset_password_token = $1, reset_password_expire = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE email = $3
	`, hashed, expire, email)
	if err != nil {
		return "", fmt.Errorf("store reset token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return "", err
	}
	if rows == 0 {
		return "", ErrUserNotFound
	}

	return raw, nil
}

// ResetPassword consumes a raw reset token. The lookup matches on the token's
// hash and requires the stored expiry to be in the future; success clears
// both fields and stores the new password hash in one statement.
func (s *Store) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = $1, reset_password_token = NULL,
		    reset_password_expire = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE reset_password_token = $2 AND reset_password_expire > $3
	`, string(hash), hashResetToken(rawToken), time.Now())
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrResetTokenInvalid
	}

	return nil
}
