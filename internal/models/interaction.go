package models

import "time"

// InteractionType enumerates the kinds of contact with a venue.
type InteractionType string

const (
	InteractionEmail   InteractionType = "email"
	InteractionCall    InteractionType = "call"
	InteractionMeeting InteractionType = "meeting"
	InteractionMessage InteractionType = "message"
	InteractionOther   InteractionType = "other"
)

// ValidInteractionType reports whether t is a member of the enumeration.
func ValidInteractionType(t InteractionType) bool {
	switch t {
	case InteractionEmail, InteractionCall, InteractionMeeting, InteractionMessage, InteractionOther:
		return true
	}
	return false
}

// Interaction records a call, email or meeting with a venue contact.
type Interaction struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	VenueID      int64           `json:"venue_id"`
	Type         InteractionType `json:"interaction_type"`
	Date         Date            `json:"date"`
	Subject      string          `json:"subject"`
	Description  string          `json:"description,omitempty"`
	ContactName  string          `json:"contact_name,omitempty"`
	ContactEmail string          `json:"contact_email,omitempty"`
	ContactPhone string          `json:"contact_phone,omitempty"`
	FollowUpDate *Date           `json:"follow_up_date,omitempty"`
	IsCompleted  bool            `json:"is_completed"`
	Outcome      string          `json:"outcome,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Validate checks the interaction's own fields.
func (in Interaction) Validate() error {
	var v validator
	if in.VenueID <= 0 {
		v.add("venue_id", "venue_id is required")
	}
	if in.Type == "" {
		v.add("interaction_type", "interaction_type is required")
	} else if !ValidInteractionType(in.Type) {
		v.add("interaction_type", "must be one of email, call, meeting, message, other")
	}
	if in.Date.IsZero() {
		v.add("date", "date is required")
	}
	v.require("subject", in.Subject)
	v.email("contact_email", in.ContactEmail)
	return v.err()
}

// InteractionUpdate holds the mutable interaction fields. Nil means
// "leave as-is". user_id is never client-writable.
type InteractionUpdate struct {
	VenueID      *int64           `json:"venue_id"`
	Type         *InteractionType `json:"interaction_type"`
	Date         *Date            `json:"date"`
	Subject      *string          `json:"subject"`
	Description  *string          `json:"description"`
	ContactName  *string          `json:"contact_name"`
	ContactEmail *string          `json:"contact_email"`
	ContactPhone *string          `json:"contact_phone"`
	FollowUpDate *Date            `json:"follow_up_date"`
	IsCompleted  *bool            `json:"is_completed"`
	Outcome      *string          `json:"outcome"`
	Notes        *string          `json:"notes"`
	Tags         []string         `json:"tags"`
}

// Apply overlays the non-nil fields onto the interaction.
func (u InteractionUpdate) Apply(in *Interaction) {
	if u.VenueID != nil {
		in.VenueID = *u.VenueID
	}
	if u.Type != nil {
		in.Type = *u.Type
	}
	if u.Date != nil {
		in.Date = *u.Date
	}
	if u.Subject != nil {
		in.Subject = *u.Subject
	}
	if u.Description != nil {
		in.Description = *u.Description
	}
	if u.ContactName != nil {
		in.ContactName = *u.ContactName
	}
	if u.ContactEmail != nil {
		in.ContactEmail = *u.ContactEmail
	}
	if u.ContactPhone != nil {
		in.ContactPhone = *u.ContactPhone
	}
	if u.FollowUpDate != nil {
		in.FollowUpDate = u.FollowUpDate
	}
	if u.IsCompleted != nil {
		in.IsCompleted = *u.IsCompleted
	}
	if u.Outcome != nil {
		in.Outcome = *u.Outcome
	}
	if u.Notes != nil {
		in.Notes = *u.Notes
	}
	if u.Tags != nil {
		in.Tags = u.Tags
	}
}

// InteractionWithVenue includes the venue summary joined into listings.
type InteractionWithVenue struct {
	Interaction
	VenueSummary
}
