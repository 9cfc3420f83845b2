package auth

import (
	"context"
	"errors"

	"gigtracker/internal/models"
	"gigtracker/internal/store"
)

var (
	// ErrUnauthorized covers a missing, malformed, expired or dangling
	// credential. Handlers map it to 401 without distinguishing the cause.
	ErrUnauthorized = errors.New("not authorized")
	// ErrInactiveAccount rejects credentials for a deactivated account.
	ErrInactiveAccount = errors.New("account is inactive")
)

// Store describes the persistence operations required by the auth service.
type Store interface {
	CreateUser(ctx context.Context, reg models.Registration) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	UserByID(ctx context.Context, id int64) (*models.User, error)
	CreateResetToken(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

// Service implements registration, login, credential verification and the
// password-reset flow.
type Service interface {
	Register(ctx context.Context, reg models.Registration) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	UserFromToken(ctx context.Context, token string) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}

type service struct {
	store  Store
	tokens *TokenManager
}

// New wires a Service backed by the provided Store and token manager.
func New(store Store, tokens *TokenManager) Service {
	return &service{store: store, tokens: tokens}
}

func (s *service) Register(ctx context.Context, reg models.Registration) (*models.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	if err := reg.Validate(); err != nil {
		return nil, "", err
	}

	user, err := s.store.CreateUser(ctx, reg)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	user, err := s.store.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	if !user.IsActive {
		return nil, "", ErrInactiveAccount
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UserFromToken runs the authentication gate: the token must verify, the
// referenced user must exist, and the account must be active.
func (s *service) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.store.UserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	return user, nil
}

func (s *service) ForgotPassword(ctx context.Context, email string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.CreateResetToken(ctx, email)
}

func (s *service) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(newPassword) < 6 {
		return &models.ValidationError{Fields: []models.FieldError{
			{Field: "password", Message: "must be at least 6 characters"},
		}}
	}
	return s.store.ResetPassword(ctx, rawToken, newPassword)
}
