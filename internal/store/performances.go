package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gigtracker/internal/models"
)

const performanceColumns = `
	p.id, p.user_id, p.venue_id, p.date, p.start_time, p.end_time,
	p.event_name, p.description, p.fee, p.guarantee, p.ticket_price,
	p.tickets_sold, p.attendance, p.is_headliner, p.other_acts,
	p.is_cancelled, p.cancellation_reason, p.rating, p.notes, p.tags,
	p.created_at, p.updated_at
`

const performanceVenueColumns = performanceColumns + `,
	v.name AS venue_name, v.city AS venue_city, v.country AS venue_country
`

func scanPerformance(row rowScanner, p *models.Performance, summary *models.VenueSummary) error {
	var (
		fee         sql.NullFloat64
		guarantee   sql.NullFloat64
		ticketPrice sql.NullFloat64
		ticketsSold sql.NullInt64
		attendance  sql.NullInt64
		rating      sql.NullInt64
		tags        []byte
	)

	dest := []any{
		&p.ID, &p.UserID, &p.VenueID, &p.Date, &p.StartTime, &p.EndTime,
		&p.EventName, &p.Description, &fee, &guarantee, &ticketPrice,
		&ticketsSold, &attendance, &p.IsHeadliner, &p.OtherActs,
		&p.IsCancelled, &p.CancellationReason, &rating, &p.Notes, &tags,
		&p.CreatedAt, &p.UpdatedAt,
	}
	if summary != nil {
		dest = append(dest, &summary.VenueName, &summary.VenueCity, &summary.VenueCountry)
	}

	if err := row.Scan(dest...); err != nil {
		return err
	}

	if fee.Valid {
		p.Fee = &fee.Float64
	}
	if guarantee.Valid {
		p.Guarantee = &guarantee.Float64
	}
	if ticketPrice.Valid {
		p.TicketPrice = &ticketPrice.Float64
	}
	if ticketsSold.Valid {
		n := int(ticketsSold.Int64)
		p.TicketsSold = &n
	}
	if attendance.Valid {
		n := int(attendance.Int64)
		p.Attendance = &n
	}
	if rating.Valid {
		r := int(rating.Int64)
		p.Rating = &r
	}

	parsed, err := unmarshalTags(tags)
	if err != nil {
		return err
	}
	p.Tags = parsed

	return nil
}

func collectPerformances(rows *sql.Rows) ([]*models.PerformanceWithVenue, error) {
	defer rows.Close()

	var performances []*models.PerformanceWithVenue
	for rows.Next() {
		var p models.PerformanceWithVenue
		if err := scanPerformance(rows, &p.Performance, &p.VenueSummary); err != nil {
			return nil, err
		}
		performances = append(performances, &p)
	}
	return performances, rows.Err()
}

// venueOwnedTx verifies inside the transaction that the venue exists and
// belongs to the user.
func venueOwnedTx(ctx context.Context, tx *sql.Tx, userID, venueID int64) error {
	var id int64
	err := tx.QueryRowContext(ctx, `
		SELECT id
		FROM venues
		WHERE id = $1 AND user_id = $2
	`, venueID, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return fmt.Errorf("check venue: %w", err)
	}
	return nil
}

// CreatePerformance inserts a performance and sets the venue's
// last_performed_at to the new date in the same transaction. The write is
// unconditional: the newest write wins even when the new date precedes the
// stored one.
func (s *Store) CreatePerformance(ctx context.Context, userID int64, perf *models.Performance) (*models.Performance, error) {
	tagsJSON, err := marshalTags(perf.Tags)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if err := venueOwnedTx(ctx, tx, userID, perf.VenueID); err != nil {
		return nil, err
	}

	var created models.Performance
	row := tx.QueryRowContext(ctx, `
		INSERT INTO performances (user_id, venue_id, date, start_time, end_time,
		                          event_name, description, fee, guarantee,
		                          ticket_price, tickets_sold, attendance,
		                          is_headliner, other_acts, is_cancelled,
		                          cancellation_reason, rating, notes, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19::jsonb)
		RETURNING `+performanceColumns+`
	`, userID, perf.VenueID, perf.Date, perf.StartTime, perf.EndTime,
		perf.EventName, perf.Description, perf.Fee, perf.Guarantee,
		perf.TicketPrice, perf.TicketsSold, perf.Attendance,
		perf.IsHeadliner, perf.OtherActs, perf.IsCancelled,
		perf.CancellationReason, perf.Rating, perf.Notes, tagsJSON)

	if err := scanPerformance(row, &created, nil); err != nil {
		return nil, fmt.Errorf("insert performance: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE venues
		SET last_performed_at = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
	`, created.Date, created.VenueID, userID); err != nil {
		return nil, fmt.Errorf("update venue last performed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return &created, nil
}

// ListPerformances returns the user's performances with venue summaries,
// newest first.
func (s *Store) ListPerformances(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+performanceVenueColumns+`
		FROM performances p
		INNER JOIN venues v ON p.venue_id = v.id
		WHERE p.user_id = $1
		ORDER BY p.date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select performances: %w", err)
	}
	return collectPerformances(rows)
}

// GetPerformance retrieves a single performance scoped to its owner, with the
// venue summary joined in.
func (s *Store) GetPerformance(ctx context.Context, userID, id int64) (*models.PerformanceWithVenue, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+performanceVenueColumns+`
		FROM performances p
		INNER JOIN venues v ON p.venue_id = v.id
		WHERE p.id = $1 AND p.user_id = $2
	`, id, userID)

	var p models.PerformanceWithVenue
	if err := scanPerformance(row, &p.Performance, &p.VenueSummary); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPerformanceNotFound
		}
		return nil, fmt.Errorf("select performance: %w", err)
	}
	return &p, nil
}

// UpdatePerformance writes the merged performance row. When the payload
// carried a date, the venue's last_performed_at is overwritten with it in the
// same transaction (newest write wins, as on create).
func (s *Store) UpdatePerformance(ctx context.Context, userID, id int64, perf *models.Performance, dateChanged bool) (*models.Performance, error) {
	tagsJSON, err := marshalTags(perf.Tags)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if err := venueOwnedTx(ctx, tx, userID, perf.VenueID); err != nil {
		return nil, err
	}

	var updated models.Performance
	row := tx.QueryRowContext(ctx, `
		UPDATE performances
		SET venue_id = $1, date = $2, start_time = $3, end_time = $4,
		    event_name = $5, description = $6, fee = $7, guarantee = $8,
		    ticket_price = $9, tickets_sold = $10, attendance = $11,
		    is_headliner = $12, other_acts = $13, is_cancelled = $14,
		    cancellation_reason = $15, rating = $16, notes = $17,
		    tags = $18::jsonb, updated_at = CURRENT_TIMESTAMP
		WHERE id = $19 AND user_id = $20
		RETURNING `+performanceColumns+`
	`, perf.VenueID, perf.Date, perf.StartTime, perf.EndTime,
		perf.EventName, perf.Description, perf.Fee, perf.Guarantee,
		perf.TicketPrice, perf.TicketsSold, perf.Attendance,
		perf.IsHeadliner, perf.OtherActs, perf.IsCancelled,
		perf.CancellationReason, perf.Rating, perf.Notes, tagsJSON,
		id, userID)

	if err := scanPerformance(row, &updated, nil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPerformanceNotFound
		}
		return nil, fmt.Errorf("update performance: %w", err)
	}

	if dateChanged {
		if _, err := tx.ExecContext(ctx, `
			UPDATE venues
			SET last_performed_at = $1, updated_at = CURRENT_TIMESTAMP
			WHERE id = $2 AND user_id = $3
		`, updated.Date, updated.VenueID, userID); err != nil {
			return nil, fmt.Errorf("update venue last performed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return &updated, nil
}

// DeletePerformance removes a performance and re-derives the venue's
// last_performed_at from the surviving rows, clearing it when none remain.
// Delete and recompute share one transaction.
func (s *Store) DeletePerformance(ctx context.Context, userID, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	var venueID int64
	err = tx.QueryRowContext(ctx, `
		SELECT venue_id
		FROM performances
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&venueID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPerformanceNotFound
		}
		return fmt.Errorf("select performance: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM performances
		WHERE id = $1 AND user_id = $2
	`, id, userID); err != nil {
		return fmt.Errorf("delete performance: %w", err)
	}

	var latest sql.NullTime
	err = tx.QueryRowContext(ctx, `
		SELECT date
		FROM performances
		WHERE venue_id = $1 AND user_id = $2
		ORDER BY date DESC
		LIMIT 1
	`, venueID, userID).Scan(&latest)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("select latest performance: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE venues
		SET last_performed_at = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
	`, latest, venueID, userID); err != nil {
		return fmt.Errorf("update venue last performed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

// PerformancesByVenue returns the user's performances at one venue, newest
// first. The venue itself is checked first so a foreign venue id reads as
// not found.
func (s *Store) PerformancesByVenue(ctx context.Context, userID, venueID int64) ([]*models.PerformanceWithVenue, error) {
	if _, err := s.GetVenue(ctx, userID, venueID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+performanceVenueColumns+`
		FROM performances p
		INNER JOIN venues v ON p.venue_id = v.id
		WHERE p.venue_id = $1 AND p.user_id = $2
		ORDER BY p.date DESC
	`, venueID, userID)
	if err != nil {
		return nil, fmt.Errorf("select performances by venue: %w", err)
	}
	return collectPerformances(rows)
}

// UpcomingPerformances returns the user's future, non-cancelled performances,
// soonest first.
func (s *Store) UpcomingPerformances(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+performanceVenueColumns+`
		FROM performances p
		INNER JOIN venues v ON p.venue_id = v.id
		WHERE p.user_id = $1 AND p.date >= CURRENT_DATE AND p.is_cancelled = FALSE
		ORDER BY p.date ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select upcoming performances: %w", err)
	}
	return collectPerformances(rows)
}

// PastPerformances returns the user's performances before today, newest
// first. Cancelled shows stay in the history.
func (s *Store) PastPerformances(ctx context.Context, userID int64) ([]*models.PerformanceWithVenue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+performanceVenueColumns+`
		FROM performances p
		INNER JOIN venues v ON p.venue_id = v.id
		WHERE p.user_id = $1 AND p.date < CURRENT_DATE
		ORDER BY p.date DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("select past performances: %w", err)
	}
	return collectPerformances(rows)
}
