package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gigtracker/internal/models"
)

const venueColumns = `
	id, user_id, name, address, city, state, country, venue_type, capacity,
	contact_name, contact_email, contact_phone, website, notes,
	last_performed_at, rating, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*models.Venue, error) {
	var (
		v             models.Venue
		capacity      sql.NullInt64
		lastPerformed sql.NullTime
		rating        sql.NullInt64
	)
	err := row.Scan(
		&v.ID, &v.UserID, &v.Name, &v.Address, &v.City, &v.State, &v.Country,
		&v.VenueType, &capacity, &v.ContactName, &v.ContactEmail,
		&v.ContactPhone, &v.Website, &v.Notes, &lastPerformed, &rating,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		v.Capacity = &c
	}
	if lastPerformed.Valid {
		v.LastPerformedAt = &lastPerformed.Time
	}
	if rating.Valid {
		r := int(rating.Int64)
		v.Rating = &r
	}
	return &v, nil
}

func collectVenues(rows *sql.Rows) ([]*models.Venue, error) {
	defer rows.Close()

	var venues []*models.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// CreateVenue adds a new venue for the user. The owner comes from the
// authenticated caller, never from the payload.
func (s *Store) CreateVenue(ctx context.Context, userID int64, venue *models.Venue) (*models.Venue, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO venues (user_id, name, address, city, state, country,
		                    venue_type, capacity, contact_name, contact_email,
		                    contact_phone, website, notes, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+venueColumns+`
	`, userID, venue.Name, venue.Address, venue.City, venue.State, venue.Country,
		venue.VenueType, venue.Capacity, venue.ContactName, venue.ContactEmail,
		venue.ContactPhone, venue.Website, venue.Notes, venue.Rating)

	created, err := scanVenue(row)
	if err != nil {
		return nil, fmt.Errorf("insert venue: %w", err)
	}
	return created, nil
}

// ListVenues returns every venue the user owns, by name.
func (s *Store) ListVenues(ctx context.Context, userID int64) ([]*models.Venue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE user_id = $1
		ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}
	return collectVenues(rows)
}

// GetVenue retrieves a single venue scoped to its owner. A venue owned by
// another user is indistinguishable from one that does not exist.
func (s *Store) GetVenue(ctx context.Context, userID, id int64) (*models.Venue, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	venue, err := scanVenue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("select venue: %w", err)
	}
	return venue, nil
}

// UpdateVenue writes the mutable venue fields. user_id and last_performed_at
// are untouched by this statement.
func (s *Store) UpdateVenue(ctx context.Context, userID, id int64, venue *models.Venue) (*models.Venue, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE venues
		SET name = $1, address = $2, city = $3, state = $4, country = $5,
		    venue_type = $6, capacity = $7, contact_name = $8,
		    contact_email = $9, contact_phone = $10, website = $11,
		    notes = $12, rating = $13, updated_at = CURRENT_TIMESTAMP
		WHERE id = $14 AND user_id = $15
		RETURNING `+venueColumns+`
	`, venue.Name, venue.Address, venue.City, venue.State, venue.Country,
		venue.VenueType, venue.Capacity, venue.ContactName, venue.ContactEmail,
		venue.ContactPhone, venue.Website, venue.Notes, venue.Rating,
		id, userID)

	updated, err := scanVenue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("update venue: %w", err)
	}
	return updated, nil
}

// DeleteVenue removes a venue. Performances and interactions at the venue go
// with it via the schema's cascading foreign keys.
func (s *Store) DeleteVenue(ctx context.Context, userID, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM venues
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete venue: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrVenueNotFound
	}

	return nil
}

// SearchVenues matches the query case-insensitively against name, address,
// city, state, country and venue type, scoped to the owner.
func (s *Store) SearchVenues(ctx context.Context, userID int64, query string) ([]*models.Venue, error) {
	pattern := "%" + query + "%"

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE user_id = $1
		  AND (name ILIKE $2 OR address ILIKE $2 OR city ILIKE $2
		       OR state ILIKE $2 OR country ILIKE $2 OR venue_type ILIKE $2)
		ORDER BY name ASC
	`, userID, pattern)
	if err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}
	return collectVenues(rows)
}

// VenuesByLocation returns the user's venues matching a city and country
// substring.
func (s *Store) VenuesByLocation(ctx context.Context, userID int64, city, country string) ([]*models.Venue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+venueColumns+`
		FROM venues
		WHERE user_id = $1 AND city ILIKE $2 AND country ILIKE $3
		ORDER BY name ASC
	`, userID, "%"+city+"%", "%"+country+"%")
	if err != nil {
		return nil, fmt.Errorf("select venues by location: %w", err)
	}
	return collectVenues(rows)
}
