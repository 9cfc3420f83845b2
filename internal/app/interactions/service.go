package interactions

import (
	"context"

	"gigtracker/internal/models"
)

// Store defines persistence operations for interactions.
type Store interface {
	CreateInteraction(ctx context.Context, userID int64, in *models.Interaction) (*models.Interaction, error)
	ListInteractions(ctx context.Context, userID int64) ([]*models.InteractionWithVenue, error)
	GetInteraction(ctx context.Context, userID, id int64) (*models.InteractionWithVenue, error)
	UpdateInteraction(ctx context.Context, userID, id int64, in *models.Interaction) (*models.Interaction, error)
	DeleteInteraction(ctx context.Context, userID, id int64) error
	InteractionsByVenue(ctx context.Context, userID, venueID int64) ([]*models.InteractionWithVenue, error)
	UpcomingFollowUps(ctx context.Context, userID int64) ([]*models.InteractionWithVenue, error)
}

// Service coordinates interaction workflows, all scoped to the owning user.
type Service interface {
	Create(ctx context.Context, userID int64, in *models.Interaction) (*models.Interaction, error)
	List(ctx context.Context, userID int64) ([]*models.InteractionWithVenue, error)
	Get(ctx context.Context, userID, id int64) (*models.InteractionWithVenue, error)
	Update(ctx context.Context, userID, id int64, update models.InteractionUpdate) (*models.Interaction, error)
	Delete(ctx context.Context, userID, id int64) error
	ByVenue(ctx context.Context, userID, venueID int64) ([]*models.InteractionWithVenue, error)
	FollowUps(ctx context.Context, userID int64) ([]*models.InteractionWithVenue, error)
}

type service struct {
	store Store
}

// New constructs an interaction Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, userID int64, in *models.Interaction) (*models.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.store.CreateInteraction(ctx, userID, in)
}

func (s *service) List(ctx context.Context, userID int64) ([]*models.InteractionWithVenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListInteractions(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, id int64) (*models.InteractionWithVenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetInteraction(ctx, userID, id)
}

// Update loads the interaction with the owner filter first, overlays the
// supplied fields and re-validates.
func (s *service) Update(ctx context.Context, userID, id int64, update models.InteractionUpdate) (*models.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	existing, err := s.store.GetInteraction(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	in := existing.Interaction
	update.Apply(&in)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	return s.store.UpdateInteraction(ctx, userID, id, &in)
}

func (s *service) Delete(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteInteraction(ctx, userID, id)
}

func (s *service) ByVenue(ctx context.Context, userID, venueID int64) ([]*models.InteractionWithVenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.InteractionsByVenue(ctx, userID, venueID)
}

func (s *service) FollowUps(ctx context.Context, userID int64) ([]*models.InteractionWithVenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpcomingFollowUps(ctx, userID)
}
