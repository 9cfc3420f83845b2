package auth

import (
	"context"
	"errors"
	"testing"

	"gigtracker/internal/models"
	"gigtracker/internal/store"
)

type stubStore struct {
	user    *models.User
	userErr error

	authUser *models.User
	authErr  error

	createdReg models.Registration
	createErr  error

	resetToken    string
	resetTokenErr error

	resetErr error
}

func (s *stubStore) CreateUser(_ context.Context, reg models.Registration) (*models.User, error) {
	s.createdReg = reg
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.user, nil
}

func (s *stubStore) Authenticate(context.Context, string, string) (*models.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return s.authUser, nil
}

func (s *stubStore) UserByID(context.Context, int64) (*models.User, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

func (s *stubStore) CreateResetToken(context.Context, string) (string, error) {
	if s.resetTokenErr != nil {
		return "", s.resetTokenErr
	}
	return s.resetToken, nil
}

func (s *stubStore) ResetPassword(context.Context, string, string) error {
	return s.resetErr
}

func activeUser() *models.User {
	return &models.User{ID: 42, Email: "jo@example.com", IsActive: true}
}

func TestUserFromToken(t *testing.T) {
	tokens := NewTokenManager("test-secret")
	st := &stubStore{user: activeUser()}
	svc := New(st, tokens)

	signed, err := tokens.Generate(42)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	user, err := svc.UserFromToken(context.Background(), signed)
	if err != nil {
		t.Fatalf("UserFromToken error: %v", err)
	}
	if user.ID != 42 {
		t.Fatalf("expected user 42, got %d", user.ID)
	}
}

func TestUserFromTokenDanglingUser(t *testing.T) {
	tokens := NewTokenManager("test-secret")
	st := &stubStore{userErr: store.ErrUserNotFound}
	svc := New(st, tokens)

	signed, err := tokens.Generate(42)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	// A valid token whose user row is gone still reads as unauthorized.
	_, err = svc.UserFromToken(context.Background(), signed)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUserFromTokenStoreFailure(t *testing.T) {
	tokens := NewTokenManager("test-secret")
	dbErr := errors.New("connection refused")
	svc := New(&stubStore{userErr: dbErr}, tokens)

	signed, err := tokens.Generate(42)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	// A store outage is not a credential problem.
	_, err = svc.UserFromToken(context.Background(), signed)
	if errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected the store error to pass through, got ErrUnauthorized")
	}
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestUserFromTokenInactiveAccount(t *testing.T) {
	tokens := NewTokenManager("test-secret")
	inactive := activeUser()
	inactive.IsActive = false
	svc := New(&stubStore{user: inactive}, tokens)

	signed, err := tokens.Generate(42)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err = svc.UserFromToken(context.Background(), signed)
	if !errors.Is(err, ErrInactiveAccount) {
		t.Fatalf("expected ErrInactiveAccount, got %v", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	inactive := activeUser()
	inactive.IsActive = false
	svc := New(&stubStore{authUser: inactive}, NewTokenManager("test-secret"))

	_, _, err := svc.Login(context.Background(), "jo@example.com", "hunter22")
	if !errors.Is(err, ErrInactiveAccount) {
		t.Fatalf("expected ErrInactiveAccount, got %v", err)
	}
}

func TestRegisterValidates(t *testing.T) {
	svc := New(&stubStore{user: activeUser()}, NewTokenManager("test-secret"))

	_, _, err := svc.Register(context.Background(), models.Registration{
		Email:    "not-an-email",
		Password: "x",
	})

	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(vErr.Fields) < 2 {
		t.Fatalf("expected every invalid field reported, got %#v", vErr.Fields)
	}
}

func TestResetPasswordShortPassword(t *testing.T) {
	svc := New(&stubStore{}, NewTokenManager("test-secret"))

	err := svc.ResetPassword(context.Background(), "token", "abc")
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
