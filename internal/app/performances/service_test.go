package performances

import (
	"context"
	"errors"
	"testing"
	"time"

	"gigtracker/internal/models"
	"gigtracker/internal/store"
)

type stubStore struct {
	existing *models.PerformanceWithVenue
	getErr   error

	updated         *models.Performance
	lastDateChanged bool
	lastWritten     *models.Performance
}

func (s *stubStore) CreatePerformance(_ context.Context, _ int64, perf *models.Performance) (*models.Performance, error) {
	return perf, nil
}

func (s *stubStore) ListPerformances(context.Context, int64) ([]*models.PerformanceWithVenue, error) {
	return nil, nil
}

func (s *stubStore) GetPerformance(context.Context, int64, int64) (*models.PerformanceWithVenue, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.existing, nil
}

func (s *stubStore) UpdatePerformance(_ context.Context, _ int64, _ int64, perf *models.Performance, dateChanged bool) (*models.Performance, error) {
	s.lastWritten = perf
	s.lastDateChanged = dateChanged
	if s.updated != nil {
		return s.updated, nil
	}
	return perf, nil
}

func (s *stubStore) DeletePerformance(context.Context, int64, int64) error {
	return nil
}

func (s *stubStore) PerformancesByVenue(context.Context, int64, int64) ([]*models.PerformanceWithVenue, error) {
	return nil, nil
}

func (s *stubStore) UpcomingPerformances(context.Context, int64) ([]*models.PerformanceWithVenue, error) {
	return nil, nil
}

func (s *stubStore) PastPerformances(context.Context, int64) ([]*models.PerformanceWithVenue, error) {
	return nil, nil
}

func existingPerformance() *models.PerformanceWithVenue {
	return &models.PerformanceWithVenue{
		Performance: models.Performance{
			ID:        11,
			UserID:    7,
			VenueID:   3,
			Date:      models.NewDate(time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)),
			StartTime: "20:00",
			EndTime:   "23:00",
			EventName: "Friday Residency",
			Notes:     "load in at 18:00",
		},
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	svc := New(&stubStore{})

	_, err := svc.Create(context.Background(), 7, &models.Performance{VenueID: 3})
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateMergesPartialPayload(t *testing.T) {
	st := &stubStore{existing: existingPerformance()}
	svc := New(st)

	eventName := "Album Release Show"
	updated, err := svc.Update(context.Background(), 7, 11, models.PerformanceUpdate{
		EventName: &eventName,
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if updated.EventName != "Album Release Show" {
		t.Fatalf("expected event name overwritten, got %q", updated.EventName)
	}
	if updated.Notes != "load in at 18:00" {
		t.Fatalf("expected untouched fields preserved, got %q", updated.Notes)
	}
	if st.lastDateChanged {
		t.Fatalf("expected venue stamp skipped when the payload carried no date")
	}
}

func TestUpdateWithDateRewritesVenueStamp(t *testing.T) {
	st := &stubStore{existing: existingPerformance()}
	svc := New(st)

	// Moving the show to an earlier date still rewrites the venue stamp;
	// the newest write wins.
	earlier := models.NewDate(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	_, err := svc.Update(context.Background(), 7, 11, models.PerformanceUpdate{
		Date: &earlier,
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if !st.lastDateChanged {
		t.Fatalf("expected venue stamp rewrite when the payload carried a date")
	}
	if !st.lastWritten.Date.Equal(earlier.Time) {
		t.Fatalf("expected merged date, got %v", st.lastWritten.Date)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc := New(&stubStore{getErr: store.ErrPerformanceNotFound})

	name := "x"
	_, err := svc.Update(context.Background(), 7, 99, models.PerformanceUpdate{EventName: &name})
	if !errors.Is(err, store.ErrPerformanceNotFound) {
		t.Fatalf("expected ErrPerformanceNotFound, got %v", err)
	}
}

func TestUpdateRejectsInvalidMerge(t *testing.T) {
	st := &stubStore{existing: existingPerformance()}
	svc := New(st)

	empty := ""
	_, err := svc.Update(context.Background(), 7, 11, models.PerformanceUpdate{
		EventName: &empty,
	})
	var vErr *models.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if st.lastWritten != nil {
		t.Fatalf("expected no write after failed validation")
	}
}
