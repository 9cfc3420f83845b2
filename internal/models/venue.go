package models

import "time"

// Venue represents a place the musician has performed at or is pursuing.
// LastPerformedAt is derived from the venue's performance history and is
// never accepted from the client.
type Venue struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Name            string     `json:"name"`
	Address         string     `json:"address,omitempty"`
	City            string     `json:"city"`
	State           string     `json:"state,omitempty"`
	Country         string     `json:"country"`
	VenueType       string     `json:"venue_type,omitempty"` // club, theater, festival, ...
	Capacity        *int       `json:"capacity,omitempty"`
	ContactName     string     `json:"contact_name,omitempty"`
	ContactEmail    string     `json:"contact_email,omitempty"`
	ContactPhone    string     `json:"contact_phone,omitempty"`
	Website         string     `json:"website,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	LastPerformedAt *time.Time `json:"last_performed_at,omitempty"`
	Rating          *int       `json:"rating,omitempty"` // 0-5
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Validate checks the venue's own fields.
func (ve Venue) Validate() error {
	var v validator
	v.require("name", ve.Name)
	v.require("city", ve.City)
	v.require("country", ve.Country)
	v.email("contact_email", ve.ContactEmail)
	v.website("website", ve.Website)
	v.nonNegative("capacity", ve.Capacity)
	v.intRange("rating", ve.Rating, 0, 5)
	return v.err()
}

// VenueUpdate holds the mutable venue fields. Nil means "leave as-is".
// user_id and last_performed_at are never client-writable.
type VenueUpdate struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Country      *string `json:"country"`
	VenueType    *string `json:"venue_type"`
	Capacity     *int    `json:"capacity"`
	ContactName  *string `json:"contact_name"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	Website      *string `json:"website"`
	Notes        *string `json:"notes"`
	Rating       *int    `json:"rating"`
}

// Apply overlays the non-nil fields onto the venue.
func (u VenueUpdate) Apply(ve *Venue) {
	if u.Name != nil {
		ve.Name = *u.Name
	}
	if u.Address != nil {
		ve.Address = *u.Address
	}
	if u.City != nil {
		ve.City = *u.City
	}
	if u.State != nil {
		ve.State = *u.State
	}
	if u.Country != nil {
		ve.Country = *u.Country
	}
	if u.VenueType != nil {
		ve.VenueType = *u.VenueType
	}
	if u.Capacity != nil {
		ve.Capacity = u.Capacity
	}
	if u.ContactName != nil {
		ve.ContactName = *u.ContactName
	}
	if u.ContactEmail != nil {
		ve.ContactEmail = *u.ContactEmail
	}
	if u.ContactPhone != nil {
		ve.ContactPhone = *u.ContactPhone
	}
	if u.Website != nil {
		ve.Website = *u.Website
	}
	if u.Notes != nil {
		ve.Notes = *u.Notes
	}
	if u.Rating != nil {
		ve.Rating = u.Rating
	}
}

// VenueSummary is the projection joined into performance and interaction
// listings.
type VenueSummary struct {
	VenueName    string `json:"venue_name"`
	VenueCity    string `json:"venue_city"`
	VenueCountry string `json:"venue_country"`
}
