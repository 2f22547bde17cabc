package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"roomdesk/internal/models"
)

// Save writes the reservation, replacing any record with the same id.
// Last write wins; callers re-fetch before updating.
func (s *Store) Save(ctx context.Context, rec *models.ReservationRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	_, err := s.ExecContext(ctx, `
		INSERT OR REPLACE INTO reservations (
			reservation_id, room_id, customer_id, arrival_date, departure_date,
			status, total_price, paid_amount, number_of_guests, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ReservationID,
		rec.RoomID,
		rec.CustomerID,
		rec.ArrivalDate.Format(models.DateFormat),
		rec.DepartureDate.Format(models.DateFormat),
		string(rec.Status),
		rec.TotalPrice,
		rec.PaidAmount,
		rec.NumberOfGuests,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save reservation: %w", err)
	}
	return nil
}

// GetByID returns a single reservation.
func (s *Store) GetByID(ctx context.Context, id string) (*models.ReservationRecord, error) {
	row := s.QueryRowContext(ctx, `
		SELECT reservation_id, room_id, customer_id, arrival_date, departure_date,
		       status, total_price, paid_amount, number_of_guests, created_at, updated_at
		FROM reservations WHERE reservation_id = ?`, id)

	rec, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, models.ErrReservationMissing
	}
	if err != nil {
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return rec, nil
}

// List returns all reservations in insertion order.
func (s *Store) List(ctx context.Context) ([]models.ReservationRecord, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT reservation_id, room_id, customer_id, arrival_date, departure_date,
		       status, total_price, paid_amount, number_of_guests, created_at, updated_at
		FROM reservations ORDER BY created_at, reservation_id`)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var out []models.ReservationRecord
	for rows.Next() {
		rec, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// ListByRoom returns the reservations occupying a single room.
func (s *Store) ListByRoom(ctx context.Context, roomID int64) ([]models.ReservationRecord, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := all[:0]
	for _, r := range all {
		if r.RoomID == roomID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// UpdateStatus sets the reservation status. The lifecycle check belongs to
// the caller; the store only rejects unknown statuses and missing ids.
func (s *Store) UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error {
	if !models.ValidStatus(status) {
		return models.ErrInvalidStatus
	}

	res, err := s.ExecContext(ctx,
		`UPDATE reservations SET status = ?, updated_at = ? WHERE reservation_id = ?`,
		string(status), time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if affected == 0 {
		return models.ErrReservationMissing
	}
	return nil
}

// DeleteByID removes a reservation.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	res, err := s.ExecContext(ctx, `DELETE FROM reservations WHERE reservation_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if affected == 0 {
		return models.ErrReservationMissing
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*models.ReservationRecord, error) {
	var rec models.ReservationRecord
	var arrival, departure, status string
	err := row.Scan(
		&rec.ReservationID,
		&rec.RoomID,
		&rec.CustomerID,
		&arrival,
		&departure,
		&status,
		&rec.TotalPrice,
		&rec.PaidAmount,
		&rec.NumberOfGuests,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rec.ArrivalDate, err = models.ParseDate(arrival); err != nil {
		return nil, fmt.Errorf("parse arrival date: %w", err)
	}
	if rec.DepartureDate, err = models.ParseDate(departure); err != nil {
		return nil, fmt.Errorf("parse departure date: %w", err)
	}
	rec.Status = models.ReservationStatus(status)
	return &rec, nil
}
