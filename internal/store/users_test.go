package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"gigtracker/internal/models"
)

var userRowColumns = []string{
	"id", "email", "password_hash", "first_name", "last_name", "phone", "role",
	"band_name", "genre", "website", "bio", "city", "state", "country",
	"is_active", "last_login", "reset_password_token", "reset_password_expire",
	"created_at", "updated_at",
}

func userRow(id int64, email, passwordHash string) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id, email, passwordHash, "Jo", "Reed", "", models.RoleUser,
		"", "", "", "", "", "", "",
		true, nil, nil, nil,
		now, now,
	}
}

func TestCreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO users (email, password_hash, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns+`
	`)).
		WithArgs("jo@example.com", sqlmock.AnyArg(), "Jo", "Reed", models.RoleUser).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(userRow(1, "jo@example.com", "hash")...))

	user, err := s.CreateUser(context.Background(), models.Registration{
		Email:     "  Jo@Example.com ",
		Password:  "hunter22",
		FirstName: "Jo",
		LastName:  "Reed",
	})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if user.ID != 1 || user.Email != "jo@example.com" {
		t.Fatalf("unexpected user: %#v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		INSERT INTO users (email, password_hash, first_name, last_name, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns+`
	`)).
		WithArgs("jo@example.com", sqlmock.AnyArg(), "Jo", "Reed", models.RoleUser).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = s.CreateUser(context.Background(), models.Registration{
		Email:     "jo@example.com",
		Password:  "hunter22",
		FirstName: "Jo",
		LastName:  "Reed",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`)).
		WithArgs("jo@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(userRow(1, "jo@example.com", string(hash))...))

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE users
		SET last_login = $1
		WHERE id = $2
	`)).
		WithArgs(sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := s.Authenticate(context.Background(), "jo@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if user.LastLogin == nil {
		t.Fatalf("expected last_login to be stamped")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`)).
		WithArgs("jo@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(userRow(1, "jo@example.com", string(hash))...))

	_, err = s.Authenticate(context.Background(), "jo@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`)).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err = s.Authenticate(context.Background(), "nobody@example.com", "hunter22")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateResetToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE users
		SET reset_password_token = $1, reset_password_expire = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE email = $3
	`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "jo@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	raw, err := s.CreateResetToken(context.Background(), "jo@example.com")
	if err != nil {
		t.Fatalf("CreateResetToken error: %v", err)
	}
	if len(raw) != 40 {
		t.Fatalf("expected 40 hex chars, got %q", raw)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateResetTokenUnknownEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE users
		SET reset_password_token = $1, reset_password_expire = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE email = $3
	`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "nobody@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = s.CreateResetToken(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResetPasswordConsumesToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE users
		SET password_hash = $1, reset_password_token = NULL,
		    reset_password_expire = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE reset_password_token = $2 AND reset_password_expire > $3
	`)).
		WithArgs(sqlmock.AnyArg(), hashResetToken("rawtoken"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.ResetPassword(context.Background(), "rawtoken", "newpassword"); err != nil {
		t.Fatalf("ResetPassword error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	s := New(db)

	mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE users
		SET password_hash = $1, reset_password_token = NULL,
		    reset_password_expire = NULL, updated_at = CURRENT_TIMESTAMP
		WHERE reset_password_token = $2 AND reset_password_expire > $3
	`)).
		WithArgs(sqlmock.AnyArg(), hashResetToken("stale"), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = s.ResetPassword(context.Background(), "stale", "newpassword")
	if !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
