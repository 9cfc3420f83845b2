package performances

import (
	"context"

	"gigtracker/internal/models"
)

// Store defines persistence operations for performances. Create, update and
// delete also maintain the parent venue's last_performed_at inside their own
// transactions.
type Store interface {
	CreatePerformance(ctx context.Context, userID int64, perf *models.Performance) (*models.Performance, error)
	ListPerformances(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error)
	GetPerformance(ctx context.Context, userID, id int64) (*models.PerformanceWithVenue, error)
	UpdatePerformance(ctx context.Context, userID, id int64, perf *models.Performance, dateChanged bool) (*models.Performance, error)
	DeletePerformance(ctx context.Context, userID, id int64) error
	PerformancesByVenue(ctx context.Context, userID, venueID int64) ([]*models.PerformanceWithVenue, error)
	UpcomingPerformances(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error)
	PastPerformances(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error)
}

// Service coordinates performance workflows, all scoped to the owning user.
type Service interface {
	Create(ctx context.Context, userID int64, perf *models.Performance) (*models.Performance, error)
	List(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error)
	Get(ctx context.Context, userID, id int64) (*models.PerformanceWithVenue, error)
	Update(ctx context.Context, userID, id int64, update models.PerformanceUpdate) (*models.Performance, error)
	Delete(ctx context.Context, userID, id int64) error
	ByVenue(ctx context.Context, userID, venueID int64) ([]*models.PerformanceWithVenue, error)
	Upcoming(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error)
	Past(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error)
}

type service struct {
	store Store
}

// New constructs a performance Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, userID int64, perf *models.Performance) (*models.Performance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := perf.Validate(); err != nil {
		return nil, err
	}
	return s.store.CreatePerformance(ctx, userID, perf)
}

func (s *service) List(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPerformances(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, id int64) (*models.PerformanceWithVenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetPerformance(ctx, userID, id)
}

// Update loads the performance with the owner filter first, overlays the
// supplied fields and re-validates. Whether the payload carried a date
// decides if the venue's last_performed_at gets rewritten.
func (s *service) Update(ctx context.Context, userID, id int64, update models.PerformanceUpdate) (*models.Performance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	existing, err := s.store.GetPerformance(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	perf := existing.Performance
	update.Apply(&perf)
	if err := perf.Validate(); err != nil {
		return nil, err
	}

	return s.store.UpdatePerformance(ctx, userID, id, &perf, update.Date != nil)
}

func (s *service) Delete(ctx context.Context, userID, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeletePerformance(ctx, userID, id)
}

func (s *service) ByVenue(ctx context.Context, userID, venueID int64) ([]*models.PerformanceWithVenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.PerformancesByVenue(ctx, userID, venueID)
}

func (s *service) Upcoming(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpcomingPerformances(ctx, userID)
}

func (s *service) Past(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.PastPerformances(ctx, userID)
}
