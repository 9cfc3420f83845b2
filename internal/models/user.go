package models

import "time"

// RoleUser is the role every registered account carries. Nothing assigns
// any other role yet.
const RoleUser = "user"

// User represents a musician's account. The password hash and reset-token
// fields never leave the server.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`

	// Artist profile
	BandName string `json:"band_name,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Website  string `json:"website,omitempty"`
	Bio      string `json:"bio,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`

	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	PasswordHash        string     `json:"-"`
	ResetPasswordToken  *string    `json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`
}

// Registration carries the fields accepted at signup.
type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Validate checks the registration payload.
func (r Registration) Validate() error {
	var v validator
	v.require("email", r.Email)
	v.email("email", r.Email)
	if len(r.Password) < 6 {
		v.add("password", "must be at least 6 characters")
	}
	v.require("first_name", r.FirstName)
	v.require("last_name", r.LastName)
	return v.err()
}

// ProfileUpdate holds the mutable profile fields. Nil means "leave as-is".
// Email, password, role and the reset-token fields are never updatable
// through this path.
type ProfileUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	BandName  *string `json:"band_name"`
	Genre     *string `json:"genre"`
	Website   *string `json:"website"`
	Bio       *string `json:"bio"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	Country   *string `json:"country"`
}

// Validate checks the profile update payload.
func (u ProfileUpdate) Validate() error {
	var v validator
	if u.FirstName != nil {
		v.require("first_name", *u.FirstName)
	}
	if u.LastName != nil {
		v.require("last_name", *u.LastName)
	}
	if u.Website != nil {
		v.website("website", *u.Website)
	}
	return v.err()
}

// Apply overlays the non-nil fields onto the user.
func (u ProfileUpdate) Apply(user *User) {
	if u.FirstName != nil {
		user.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		user.LastName = *u.LastName
	}
	if u.Phone != nil {
		user.Phone = *u.Phone
	}
	if u.BandName != nil {
		user.BandName = *u.BandName
	}
	if u.Genre != nil {
		user.Genre = *u.Genre
	}
	if u.Website != nil {
		user.Website = *u.Website
	}
	if u.Bio != nil {
		user.Bio = *u.Bio
	}
	if u.City != nil {
		user.City = *u.City
	}
	if u.State != nil {
		user.State = *u.State
	}
	if u.Country != nil {
		user.Country = *u.Country
	}
}
