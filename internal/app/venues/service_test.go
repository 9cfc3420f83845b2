package venues

import (
	"context"
	"errors"
	"testing"

	"gigtracker/internal/models"
	"gigtracker/internal/store"
)

type stubStore struct {
	venue  *models.Venue
	getErr error

	lastWritten *models.Venue
}

func (s *stubStore) CreateVenue(_ context.Context, _ int64, venue *models.Venue) (*models.Venue, error) {
	return venue, nil
}

func (s *stubStore) ListVenues(context.Context, int64) ([]*models.Venue, error) {
	return nil, nil
}

func (s *stubStore) GetVenue(context.Context, int64, int64) (*models.Venue, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.venue, nil
}

func (s *stubStore) UpdateVenue(_ context.Context, _ int64, _ int64, venue *models.Venue) (*models.Venue, error) {
	s.lastWritten = venue
	return venue, nil
}

func (s *stubStore) DeleteVenue(context.Context, int64, int64) error {
	return nil
}

func (s *stubStore) SearchVenues(context.Context, int64, string) ([]*models.Venue, error) {
	return nil, nil
}

func (s *stubStore) VenuesByLocation(context.Context, int64, string, string) ([]*models.Venue, error) {
	return nil, nil
}

func TestCreateRejectsInvalid(t *testing.T) {
	svc := New(&stubStore{})

	_, err := svc.Create(context.Background(), 7, &models.Venue{Name: "The Crystal"})
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateMergesPartialPayload(t *testing.T) {
	st := &stubStore{venue: &models.Venue{
		ID:      1,
		UserID:  7,
		Name:    "The Crystal",
		City:    "Portland",
		Country: "USA",
		Notes:   "ask for Dana",
	}}
	svc := New(st)

	name := "Crystal Ballroom"
	updated, err := svc.Update(context.Background(), 7, 1, models.VenueUpdate{Name: &name})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if updated.Name != "Crystal Ballroom" {
		t.Fatalf("expected name overwritten, got %q", updated.Name)
	}
	if updated.Notes != "ask for Dana" {
		t.Fatalf("expected untouched fields preserved, got %q", updated.Notes)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := New(&stubStore{getErr: store.ErrVenueNotFound})

	name := "x"
	_, err := svc.Update(context.Background(), 7, 99, models.VenueUpdate{Name: &name})
	if !errors.Is(err, store.ErrVenueNotFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}
}

func TestUpdateRejectsInvalidMerge(t *testing.T) {
	st := &stubStore{venue: &models.Venue{
		ID:      1,
		UserID:  7,
		Name:    "The Crystal",
		City:    "Portland",
		Country: "USA",
	}}
	svc := New(st)

	empty := ""
	_, err := svc.Update(context.Background(), 7, 1, models.VenueUpdate{Name: &empty})
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if st.lastWritten != nil {
		t.Fatalf("expected no write after failed validation")
	}
}
