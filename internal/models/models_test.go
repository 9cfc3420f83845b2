package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fieldSet(err error) map[string]bool {
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		return nil
	}
	fields := make(map[string]bool, len(vErr.Fields))
	for _, f := range vErr.Fields {
		fields[f.Field] = true
	}
	return fields
}

func TestRegistrationValidate(t *testing.T) {
	tests := []struct {
		name       string
		reg        Registration
		wantFields []string
	}{
		{
			name: "valid",
			reg: Registration{
				Email:     "jo@example.com",
				Password:  "hunter22",
				FirstName: "Jo",
				LastName:  "Reed",
			},
		},
		{
			name: "bad email and short password",
			reg: Registration{
				Email:     "not-an-email",
				Password:  "abc",
				FirstName: "Jo",
				LastName:  "Reed",
			},
			wantFields: []string{"email", "password"},
		},
		{
			name:       "everything missing",
			reg:        Registration{},
			wantFields: []string{"email", "password", "first_name", "last_name"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.reg.Validate()
			if len(tc.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			fields := fieldSet(err)
			if fields == nil {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			for _, f := range tc.wantFields {
				if !fields[f] {
					t.Fatalf("expected field %q in errors, got %v", f, fields)
				}
			}
		})
	}
}

func TestVenueValidate(t *testing.T) {
	rating := 9
	capacity := -5
	venue := Venue{
		Name:         "",
		City:         "Portland",
		Country:      "USA",
		ContactEmail: "not-an-email",
		Website:      "ftp://example.com",
		Capacity:     &capacity,
		Rating:       &rating,
	}

	fields := fieldSet(venue.Validate())
	if fields == nil {
		t.Fatalf("expected ValidationError")
	}
	for _, f := range []string{"name", "contact_email", "website", "capacity", "rating"} {
		if !fields[f] {
			t.Fatalf("expected field %q in errors, got %v", f, fields)
		}
	}
}

func TestVenueUpdateApply(t *testing.T) {
	last := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	venue := Venue{
		ID:              1,
		UserID:          7,
		Name:            "The Crystal",
		City:            "Portland",
		Country:         "USA",
		LastPerformedAt: &last,
	}

	name := "Crystal Ballroom"
	capacity := 1500
	VenueUpdate{Name: &name, Capacity: &capacity}.Apply(&venue)

	if venue.Name != "Crystal Ballroom" {
		t.Fatalf("expected name overwritten, got %q", venue.Name)
	}
	if venue.Capacity == nil || *venue.Capacity != 1500 {
		t.Fatalf("expected capacity set, got %v", venue.Capacity)
	}
	if venue.City != "Portland" {
		t.Fatalf("expected untouched fields preserved, got %q", venue.City)
	}
	if venue.LastPerformedAt == nil || !venue.LastPerformedAt.Equal(last) {
		t.Fatalf("expected derived field untouched, got %v", venue.LastPerformedAt)
	}
}

func TestPerformanceValidate(t *testing.T) {
	perf := Performance{}
	fields := fieldSet(perf.Validate())
	if fields == nil {
		t.Fatalf("expected ValidationError")
	}
	for _, f := range []string{"venue_id", "date", "start_time", "end_time", "event_name"} {
		if !fields[f] {
			t.Fatalf("expected field %q in errors, got %v", f, fields)
		}
	}
}

func TestInteractionValidate(t *testing.T) {
	in := Interaction{
		VenueID: 3,
		Type:    "carrier-pigeon",
		Date:    NewDate(time.Now()),
		Subject: "Booking inquiry",
	}
	fields := fieldSet(in.Validate())
	if fields == nil || !fields["interaction_type"] {
		t.Fatalf("expected interaction_type error, got %v", fields)
	}

	in.Type = InteractionEmail
	if err := in.Validate(); err != nil {
		t.Fatalf("expected valid interaction, got %v", err)
	}
}

func TestProfileUpdateApplyLeavesSensitiveFields(t *testing.T) {
	user := User{
		ID:           42,
		Email:        "jo@example.com",
		Role:         RoleUser,
		PasswordHash: "hash",
	}

	band := "The Regulars"
	ProfileUpdate{BandName: &band}.Apply(&user)

	if user.BandName != "The Regulars" {
		t.Fatalf("expected band name set, got %q", user.BandName)
	}
	if user.Email != "jo@example.com" || user.Role != RoleUser || user.PasswordHash != "hash" {
		t.Fatalf("expected identity fields untouched, got %#v", user)
	}
}

func TestDateAcceptsDateOnlyPayload(t *testing.T) {
	var perf Performance
	payload := `{"venue_id":3,"date":"2024-05-01","start_time":"20:00","end_time":"23:00","event_name":"Spring Tour"}`
	if err := json.Unmarshal([]byte(payload), &perf); err != nil {
		t.Fatalf("unmarshal date-only payload: %v", err)
	}
	if want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC); !perf.Date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, perf.Date)
	}
	if err := perf.Validate(); err != nil {
		t.Fatalf("expected valid performance, got %v", err)
	}

	var in Interaction
	if err := json.Unmarshal([]byte(`{"date":"2026-08-31T19:00:00Z","follow_up_date":"2026-09-14"}`), &in); err != nil {
		t.Fatalf("unmarshal mixed date forms: %v", err)
	}
	if in.FollowUpDate == nil || !in.FollowUpDate.Equal(time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected follow-up date: %v", in.FollowUpDate)
	}
}

func TestDateRejectsGarbage(t *testing.T) {
	var perf Performance
	err := json.Unmarshal([]byte(`{"date":"next tuesday"}`), &perf)
	if err == nil {
		t.Fatalf("expected decode error")
	}
}
