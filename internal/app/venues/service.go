package venues

import (
	"context"

	"gigtracker/internal/models"
)

// Store defines persistence operations for venues.
type Store interface {
	CreateVenue(ctx context.Context, userID int64, venue *models.Venue) (*models.Venue, error)
	ListVenues(ctx context.Context, userID int64) ([]*models.Venue, error)
	GetVenue(ctx context.Context, userID, id int64) (*models.Venue, error)
	UpdateVenue(ctx context.Context, userID, id int64, venue *models.Venue) (*models.Venue, error)
	DeleteVenue(ctx context.Context, userID, id int64) error
	SearchVenues(ctx context.Context, userID int64, query string) ([]*models.Venue, error)
	VenuesByLocation(ctx context.Context, userID int64, city, country string) ([]*models.Venue, error)
}

// Service coordinates venue workflows, all scoped to the owning user.
type Service interface {
	Create(ctx context.Context, userID int64, venue *models.Venue) (*models.Venue, error)
	List(ctx context.Context, userID int64) ([]*models.Venue, error)
	Get(ctx context.Context, userID, id int64) (*models.Venue, error)
	Update(ctx context.Context, userID, id int64, update models.VenueUpdate) (*models.Venue, error)
	Delete(ctx context.Context, userID, id int64) error
	Search(ctx context.Context, userID int64, query string) ([]*models.Venue, error)
	ByLocation(ctx context.Context, userID int64, city, country string) ([]*models.Venue, error)
}

type service struct {
	store Store
}

// New constructs a venue Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, userID int64, venue *models.Venue) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := venue.Validate(); err != nil {
		return nil, err
	}
	return s.store.CreateVenue(ctx, userID, venue)
}

func (s *service) List(ctx context.Context, userID int64) ([]*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListVenues(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, id int64) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetVenue(ctx, userID, id)
}

// Update loads the venue with the owner filter first, overlays the supplied
// fields, re-validates and writes the result.
func (s *service) Update(ctx context.Context, userID, id int64, update models.VenueUpdate) (*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	venue, err := s.store.GetVenue(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	update.Apply(venue)
	if err := venue.Validate(); err != nil {
		return nil, err
	}

	return s.store.UpdateVenue(ctx, userID, id, venue)
}

func (s *service) Delete(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteVenue(ctx, userID, id)
}

func (s *service) Search(ctx context.Context, userID int64, query string) ([]*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SearchVenues(ctx, userID, query)
}

func (s *service) ByLocation(ctx context.Context, userID int64, city, country string) ([]*models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.VenuesByLocation(ctx, userID, city, country)
}
