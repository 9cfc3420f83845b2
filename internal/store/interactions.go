package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gigtracker/internal/models"
)

const interactionColumns = `
	i.id, i.user_id, i.venue_id, i.interaction_type, i.date, i.subject,
	i.description, i.contact_name, i.contact_email, i.contact_phone,
	i.follow_up_date, i.is_completed, i.outcome, i.notes, i.tags,
	i.created_at, i.updated_at
`

const interactionVenueColumns = interactionColumns + `,
	v.name AS venue_name, v.city AS venue_city, v.country AS venue_country
`

func scanInteraction(row rowScanner, in *models.Interaction, summary *models.VenueSummary) error {
	var (
		followUp sql.NullTime
		tags     []byte
	)

	dest := []any{
		&in.ID, &in.UserID, &in.VenueID, &in.Type, &in.Date, &in.Subject,
		&in.Description, &in.ContactName, &in.ContactEmail, &in.ContactPhone,
		&followUp, &in.IsCompleted, &in.Outcome, &in.Notes, &tags,
		&in.CreatedAt, &in.UpdatedAt,
	}
	if summary != nil {
		dest = append(dest, &summary.VenueName, &summary.VenueCity, &summary.VenueCountry)
	}

	if err := row.Scan(dest...); err != nil {
		return err
	}

	if followUp.Valid {
		fu := models.NewDate(followUp.Time)
		in.FollowUpDate = &fu
	}

	parsed, err := unmarshalTags(tags)
	if err != nil {
		return err
	}
	in.Tags = parsed

	return nil
}

func collectInteractions(rows *sql.Rows) ([]*models.InteractionWithVenue, error) {
	defer rows.Close()

	var interactions []*models.InteractionWithVenue
	for rows.Next() {
		var in models.InteractionWithVenue
		if err := scanInteraction(rows, &in.Interaction, &in.VenueSummary); err != nil {
			return nil, err
		}
		interactions = append(interactions, &in)
	}
	return interactions, rows.Err()
}

// CreateInteraction records a new interaction after verifying the venue
// belongs to the user.
func (s *Store) CreateInteraction(ctx context.Context, userID int64, in *models.Interaction) (*models.Interaction, error) {
	if _, err := s.GetVenue(ctx, userID, in.VenueID); err != nil {
		return nil, err
	}

	tagsJSON, err := marshalTags(in.Tags)
	if err != nil {
		return nil, err
	}

	var created models.Interaction
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO interactions (user_id, venue_id, interaction_type, date,
		                          subject, description, contact_name,
		                          contact_email, contact_phone, follow_up_date,
		                          is_completed, outcome, notes, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14::jsonb)
		RETURNING `+interactionColumns+`
	`, userID, in.VenueID, in.Type, in.Date, in.Subject, in.Description,
		in.ContactName, in.ContactEmail, in.ContactPhone, in.FollowUpDate,
		in.IsCompleted, in.Outcome, in.Notes, tagsJSON)

	if err := scanInteraction(row, &created, nil); err != nil {
		return nil, fmt.Errorf("insert interaction: %w", err)
	}
	return &created, nil
}

// ListInteractions returns the user's interactions with venue summaries,
// newest first.
func (s *Store) ListInteractions(ctx context.Context, userID int64) ([]*models.InteractionWithVenue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+interactionVenueColumns+`
		FROM interactions i
		INNER JOIN venues v ON i.venue_id = v.id
		WHERE i.user_id = $1
		ORDER BY i.date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select interactions: %w", err)
	}
	return collectInteractions(rows)
}

// GetInteraction retrieves a single interaction scoped to its owner.
func (s *Store) GetInteraction(ctx context.Context, userID, id int64) (*models.InteractionWithVenue, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+interactionVenueColumns+`
		FROM interactions i
		INNER JOIN venues v ON i.venue_id = v.id
		WHERE i.id = $1 AND i.user_id = $2
	`, id, userID)

	var in models.InteractionWithVenue
	if err := scanInteraction(row, &in.Interaction, &in.VenueSummary); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInteractionNotFound
		}
		return nil, fmt.Errorf("select interaction: %w", err)
	}
	return &in, nil
}

// UpdateInteraction writes the merged interaction row. The caller is expected
// to have re-verified venue ownership when the venue changed; the statement
// still scopes by owner.
func (s *Store) UpdateInteraction(ctx context.Context, userID, id int64, in *models.Interaction) (*models.Interaction, error) {
	if _, err := s.GetVenue(ctx, userID, in.VenueID); err != nil {
		return nil, err
	}

	tagsJSON, err := marshalTags(in.Tags)
	if err != nil {
		return nil, err
	}

	var updated models.Interaction
	row := s.db.QueryRowContext(ctx, `
		UPDATE interactions
		SET venue_id = $1, interaction_type = $2, date = $3, subject = $4,
		    description = $5, contact_name = $6, contact_email = $7,
		    contact_phone = $8, follow_up_date = $9, is_completed = $10,
		    outcome = $11, notes = $12, tags = $13::jsonb,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $14 AND user_id = $15
		RETURNING `+interactionColumns+`
	`, in.VenueID, in.Type, in.Date, in.Subject, in.Description,
		in.ContactName, in.ContactEmail, in.ContactPhone, in.FollowUpDate,
		in.IsCompleted, in.Outcome, in.Notes, tagsJSON,
		id, userID)

	if err := scanInteraction(row, &updated, nil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInteractionNotFound
		}
		return nil, fmt.Errorf("update interaction: %w", err)
	}
	return &updated, nil
}

// DeleteInteraction removes an interaction.
func (s *Store) DeleteInteraction(ctx context.Context, userID, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM interactions
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete interaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInteractionNotFound
	}

	return nil
}

// InteractionsByVenue returns the user's interactions at one venue, newest
// first. The venue is checked first so a foreign venue id reads as not found.
func (s *Store) InteractionsByVenue(ctx context.Context, userID, venueID int64) ([]*models.InteractionWithVenue, error) {
	if _, err := s.GetVenue(ctx, userID, venueID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+interactionVenueColumns+`
		FROM interactions i
		INNER JOIN venues v ON i.venue_id = v.id
		WHERE i.venue_id = $1 AND i.user_id = $2
		ORDER BY i.date DESC
	`, venueID, userID)
	if err != nil {
		return nil, fmt.Errorf("select interactions by venue: %w", err)
	}
	return collectInteractions(rows)
}

// UpcomingFollowUps returns open interactions whose follow-up date is today
// or later, soonest first.
func (s *Store) UpcomingFollowUps(ctx context.Context, userID int64) ([]*models.InteractionWithVenue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+interactionVenueColumns+`
		FROM interactions i
		INNER JOIN venues v ON i.venue_id = v.id
		WHERE i.user_id = $1
		  AND i.follow_up_date IS NOT NULL
		  AND i.follow_up_date >= CURRENT_DATE
		  AND i.is_completed = FALSE
		ORDER BY i.follow_up_date ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select follow-ups: %w", err)
	}
	return collectInteractions(rows)
}
