package users

import (
	"context"

	"gigtracker/internal/models"
)

// Store describes the persistence operations required by the user service.
type Store interface {
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, user *models.User) (*models.User, error)
	ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error
}

// Service exposes self-profile management for the authenticated user.
type Service interface {
	Profile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Profile(ctx context.Context, userID int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UserByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	update.Apply(user)
	return s.store.UpdateProfile(ctx, userID, user)
}

func (s *service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(newPassword) < 6 {
		return &models.ValidationError{Fields: []models.FieldError{
			{Field: "new_password", Message: "must be at least 6 characters"},
		}}
	}
	return s.store.ChangePassword(ctx, userID, currentPassword, newPassword)
}
