package services

import (
	"context"
	"errors"
	"fmt"

	"campground_backend/internal/database"
	"campground_backend/internal/events"
	"campground_backend/internal/models"
	"campground_backend/internal/repositories"
	"campground_backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

// --- Custom Service Errors for Reservations ---
var (
	ErrReservationNotFound  = fmt.Errorf("reservation %w", ErrNotFound)
	ErrInvalidStayDate      = fmt.Errorf("%w: dates must be YYYY-MM-DD", ErrInvalidInput)
	ErrInvalidStayRange     = fmt.Errorf("%w: check_in_date must be before check_out_date", ErrInvalidRange)
	ErrInvalidGuestCount    = fmt.Errorf("%w: number_of_guests must be a positive integer", ErrInvalidInput)
	ErrReservationNotOwned  = fmt.Errorf("%w: reservation belongs to another camper", ErrForbidden)
	ErrReservationCompleted = fmt.Errorf("%w: completed reservations cannot be cancelled", ErrInvalidInput)
)

// --- Reservation DTOs ---

type CreateReservationRequest struct {
	CheckInDate    string `json:"check_in_date" binding:"required"`
	CheckOutDate   string `json:"check_out_date" binding:"required"`
	NumberOfGuests int    `json:"number_of_guests"`
}

type CancelReservationRequest struct {
	ReservationID int64 `json:"reservation_id" binding:"required"`
}

// --- ReservationService Interface ---
type ReservationService interface {
	CreateReservation(ctx context.Context, rc RequestContext, campsiteID int64, req CreateReservationRequest) (*models.Reservation, error)
	CancelReservation(ctx context.Context, rc RequestContext, reservationID int64) (*models.Reservation, error)
}

// --- reservationService Implementation ---
type reservationService struct {
	reservationRepo repositories.ReservationRepository
	campsiteRepo    repositories.CampsiteRepository
	camperRepo      repositories.CamperRepository
	publisher       events.Publisher
	db              *sqlx.DB
}

// NewReservationService creates a new instance of ReservationService.
func NewReservationService(
	rr repositories.ReservationRepository,
	csr repositories.CampsiteRepository,
	cr repositories.CamperRepository,
	publisher events.Publisher,
	db *sqlx.DB,
) ReservationService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &reservationService{
		reservationRepo: rr,
		campsiteRepo:    csr,
		camperRepo:      cr,
		publisher:       publisher,
		db:              db,
	}
}

// parseStay validates the stay dates and guest count.
func parseStay(req CreateReservationRequest) (checkIn, checkOut models.Date, err error) {
	checkIn, err = models.ParseDate(req.CheckInDate)
	if err != nil {
		return checkIn, checkOut, fmt.Errorf("check_in_date: %w", ErrInvalidStayDate)
	}
	checkOut, err = models.ParseDate(req.CheckOutDate)
	if err != nil {
		return checkIn, checkOut, fmt.Errorf("check_out_date: %w", ErrInvalidStayDate)
	}
	if !checkIn.Before(checkOut) {
		return checkIn, checkOut, fmt.Errorf("%w: %s to %s", ErrInvalidStayRange, checkIn, checkOut)
	}
	if req.NumberOfGuests <= 0 {
		return checkIn, checkOut, ErrInvalidGuestCount
	}
	return checkIn, checkOut, nil
}

// CreateReservation books a stay in pending status. Existing reservations
// for the same dates are not consulted.
func (s *reservationService) CreateReservation(ctx context.Context, rc RequestContext, campsiteID int64, req CreateReservationRequest) (*models.Reservation, error) {
	checkIn, checkOut, err := parseStay(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.campsiteRepo.GetCampsiteByID(ctx, campsiteID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrCampsiteNotFound, campsiteID)
		}
		return nil, fmt.Errorf("failed to get campsite: %w", err)
	}
	camper, err := resolveCamper(ctx, s.camperRepo, rc)
	if err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		CamperID:       camper.ID,
		CampsiteID:     campsiteID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: req.NumberOfGuests,
		Status:         models.ReservationStatusPending,
	}
	err = database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		_, err := s.reservationRepo.CreateReservation(ctx, tx, reservation)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	created, err := s.reservationRepo.GetReservationByID(ctx, reservation.ID)
	if err != nil {
		return nil, fmt.Errorf("reservation created but failed to retrieve it: %w", err)
	}

	event := events.ReservationCreated{
		ReservationID:  created.ID,
		CamperID:       created.CamperID,
		CampsiteID:     created.CampsiteID,
		CheckInDate:    created.CheckInDate.String(),
		CheckOutDate:   created.CheckOutDate.String(),
		NumberOfGuests: created.NumberOfGuests,
		TotalPrice:     created.TotalPrice,
		OccurredAt:     rc.Now.UTC(),
	}
	if err := s.publisher.PublishReservationCreated(ctx, event); err != nil {
		utils.LogWarn(err, "Failed to publish reservation event", map[string]interface{}{"reservation_id": created.ID})
	}
	return created, nil
}

// CancelReservation cancels one of the acting camper's reservations.
// Cancelling an already cancelled reservation is a no-op.
func (s *reservationService) CancelReservation(ctx context.Context, rc RequestContext, reservationID int64) (*models.Reservation, error) {
	camper, err := resolveCamper(ctx, s.camperRepo, rc)
	if err != nil {
		return nil, err
	}

	reservation, err := s.reservationRepo.GetReservationByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrReservationNotFound, reservationID)
		}
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation.CamperID != camper.ID {
		return nil, ErrReservationNotOwned
	}

	switch reservation.Status {
	case models.ReservationStatusCancelled:
		return reservation, nil
	case models.ReservationStatusCompleted:
		return nil, ErrReservationCompleted
	}

	if err := s.reservationRepo.UpdateReservationStatus(ctx, s.db, reservationID, models.ReservationStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}
	utils.LogInfo("Reservation cancelled", map[string]interface{}{"reservation_id": reservationID, "camper_id": camper.ID})
	return s.reservationRepo.GetReservationByID(ctx, reservationID)
}
