package models

import "time"

// Performance represents a booked or played show at a venue. The venue must
// belong to the same user.
type Performance struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	VenueID            int64     `json:"venue_id"`
	Date               Date      `json:"date"`
	StartTime          string    `json:"start_time"`
	EndTime            string    `json:"end_time"`
	EventName          string    `json:"event_name"`
	Description        string    `json:"description,omitempty"`
	Fee                *float64  `json:"fee,omitempty"`
	Guarantee          *float64  `json:"guarantee,omitempty"`
	TicketPrice        *float64  `json:"ticket_price,omitempty"`
	TicketsSold        *int      `json:"tickets_sold,omitempty"`
	Attendance         *int      `json:"attendance,omitempty"`
	IsHeadliner        bool      `json:"is_headliner"`
	OtherActs          string    `json:"other_acts,omitempty"`
	IsCancelled        bool      `json:"is_cancelled"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	Rating             *int      `json:"rating,omitempty"` // 0-5
	Notes              string    `json:"notes,omitempty"`
	Tags               []string  `json:"tags,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Validate checks the performance's own fields.
func (p Performance) Validate() error {
	var v validator
	if p.VenueID <= 0 {
		v.add("venue_id", "venue_id is required")
	}
	if p.Date.IsZero() {
		v.add("date", "date is required")
	}
	v.require("start_time", p.StartTime)
	v.require("end_time", p.EndTime)
	v.require("event_name", p.EventName)
	v.nonNegative("tickets_sold", p.TicketsSold)
	v.nonNegative("attendance", p.Attendance)
	v.intRange("rating", p.Rating, 0, 5)
	return v.err()
}

// PerformanceUpdate holds the mutable performance fields. Nil means
// "leave as-is". user_id is never client-writable.
type PerformanceUpdate struct {
	VenueID            *int64     `json:"venue_id"`
	Date               *Date      `json:"date"`
	StartTime          *string    `json:"start_time"`
	EndTime            *string    `json:"end_time"`
	EventName          *string    `json:"event_name"`
	Description        *string    `json:"description"`
	Fee                *float64   `json:"fee"`
	Guarantee          *float64   `json:"guarantee"`
	TicketPrice        *float64   `json:"ticket_price"`
	TicketsSold        *int       `json:"tickets_sold"`
	Attendance         *int       `json:"attendance"`
	IsHeadliner        *bool      `json:"is_headliner"`
	OtherActs          *string    `json:"other_acts"`
	IsCancelled        *bool      `json:"is_cancelled"`
	CancellationReason *string    `json:"cancellation_reason"`
	Rating             *int       `json:"rating"`
	Notes              *string    `json:"notes"`
	Tags               []string   `json:"tags"`
}

// Apply overlays the non-nil fields onto the performance.
func (u PerformanceUpdate) Apply(p *Performance) {
	if u.VenueID != nil {
		p.VenueID = *u.VenueID
	}
	if u.Date != nil {
		p.Date = *u.Date
	}
	if u.StartTime != nil {
		p.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		p.EndTime = *u.EndTime
	}
	if u.EventName != nil {
		p.EventName = *u.EventName
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Fee != nil {
		p.Fee = u.Fee
	}
	if u.Guarantee != nil {
		p.Guarantee = u.Guarantee
	}
	if u.TicketPrice != nil {
		p.TicketPrice = u.TicketPrice
	}
	if u.TicketsSold != nil {
		p.TicketsSold = u.TicketsSold
	}
	if u.Attendance != nil {
		p.Attendance = u.Attendance
	}
	if u.IsHeadliner != nil {
		p.IsHeadliner = *u.IsHeadliner
	}
	if u.OtherActs != nil {
		p.OtherActs = *u.OtherActs
	}
	if u.IsCancelled != nil {
		p.IsCancelled = *u.IsCancelled
	}
	if u.CancellationReason != nil {
		p.CancellationReason = *u.CancellationReason
	}
	if u.Rating != nil {
		p.Rating = u.Rating
	}
	if u.Notes != nil {
		p.Notes = *u.Notes
	}
	if u.Tags != nil {
		p.Tags = u.Tags
	}
}

// PerformanceWithVenue includes the venue summary joined into listings.
type PerformanceWithVenue struct {
	Performance
	VenueSummary
}
