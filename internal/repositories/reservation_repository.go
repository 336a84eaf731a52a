package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campground_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// ReservationRepository defines the interface for reservation operations.
// Every read joins the campsite's current nightly rate and derives the
// reservation's total price from it.
type ReservationRepository interface {
	CreateReservation(ctx context.Context, executor SQLExecutor, reservation *models.Reservation) (int64, error)
	GetReservationByID(ctx context.Context, id int64) (*models.Reservation, error)
	GetReservationsTouching(ctx context.Context, campsiteID int64, from, to models.Date) ([]models.Reservation, error)
	GetReservationsByCamper(ctx context.Context, camperID int64) ([]models.Reservation, error)
	GetReservations(ctx context.Context, status string) ([]models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, executor SQLExecutor, id int64, status string) error
}

type reservationRepository struct {
	db *sqlx.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sqlx.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationSelect = `SELECT r.id, r.camper_id, r.campsite_id, r.check_in_date, r.check_out_date,
	       r.number_of_guests, r.status, r.created_at, r.updated_at, c.price_per_night
	FROM reservations r
	JOIN campsites c ON c.id = r.campsite_id`

func (r *reservationRepository) CreateReservation(ctx context.Context, executor SQLExecutor, reservation *models.Reservation) (int64, error) {
	query := executor.Rebind(`INSERT INTO reservations (camper_id, campsite_id, check_in_date, check_out_date, number_of_guests, status, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	          RETURNING id`)
	now := time.Now().UTC()
	reservation.CreatedAt, reservation.UpdatedAt = now, now
	if reservation.Status == "" {
		reservation.Status = models.ReservationStatusPending
	}
	err := executor.GetContext(ctx, &reservation.ID, query,
		reservation.CamperID, reservation.CampsiteID, reservation.CheckInDate, reservation.CheckOutDate,
		reservation.NumberOfGuests, reservation.Status, reservation.CreatedAt, reservation.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("%w: creating reservation: %v", ErrDatabaseError, err)
	}
	return reservation.ID, nil
}

func (r *reservationRepository) GetReservationByID(ctx context.Context, id int64) (*models.Reservation, error) {
	reservation := &models.Reservation{}
	if err := r.db.GetContext(ctx, reservation, r.db.Rebind(reservationSelect+` WHERE r.id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding reservation %d: %v", ErrDatabaseError, id, err)
	}
	reservation.ApplyPrice()
	return reservation, nil
}

// GetReservationsTouching returns every reservation of the campsite whose
// [check-in, check-out] span, both ends inclusive, meets [from, to].
// Status is not filtered.
func (r *reservationRepository) GetReservationsTouching(ctx context.Context, campsiteID int64, from, to models.Date) ([]models.Reservation, error) {
	query := reservationSelect + ` WHERE r.campsite_id = ? AND r.check_in_date <= ? AND r.check_out_date >= ? ORDER BY r.check_in_date, r.id`
	return r.list(ctx, query, campsiteID, to, from)
}

func (r *reservationRepository) GetReservationsByCamper(ctx context.Context, camperID int64) ([]models.Reservation, error) {
	return r.list(ctx, reservationSelect+` WHERE r.camper_id = ? ORDER BY r.check_in_date DESC, r.id DESC`, camperID)
}

// GetReservations lists all reservations, optionally narrowed to one status.
func (r *reservationRepository) GetReservations(ctx context.Context, status string) ([]models.Reservation, error) {
	if status == "" {
		return r.list(ctx, reservationSelect+` ORDER BY r.id`)
	}
	return r.list(ctx, reservationSelect+` WHERE r.status = ? ORDER BY r.id`, status)
}

func (r *reservationRepository) UpdateReservationStatus(ctx context.Context, executor SQLExecutor, id int64, status string) error {
	query := executor.Rebind(`UPDATE reservations SET status = ?, updated_at = ? WHERE id = ?`)
	result, err := executor.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%w: updating reservation %d: %v", ErrDatabaseError, id, err)
	}
	return expectAffected(result, "updating reservation status")
}

func (r *reservationRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	if err := r.db.SelectContext(ctx, &reservations, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%w: listing reservations: %v", ErrDatabaseError, err)
	}
	for i := range reservations {
		reservations[i].ApplyPrice()
	}
	return reservations, nil
}
