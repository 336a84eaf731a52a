package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campground_backend/internal/models"
	"campground_backend/internal/repositories"
)

var ErrInvalidMonth = fmt.Errorf("%w: month must be 1-12 and year 1-9999", ErrInvalidInput)

// --- AvailabilityService Interface ---
type AvailabilityService interface {
	// GetAvailability returns one entry per day of the month. A zero month
	// or year falls back to the current one from rc.
	GetAvailability(ctx context.Context, rc RequestContext, campsiteID int64, month, year int) ([]models.DayStatus, error)
}

type availabilityService struct {
	campsiteRepo    repositories.CampsiteRepository
	reservationRepo repositories.ReservationRepository
}

// NewAvailabilityService creates a new instance of AvailabilityService.
func NewAvailabilityService(csr repositories.CampsiteRepository, rr repositories.ReservationRepository) AvailabilityService {
	return &availabilityService{campsiteRepo: csr, reservationRepo: rr}
}

func (s *availabilityService) GetAvailability(ctx context.Context, rc RequestContext, campsiteID int64, month, year int) ([]models.DayStatus, error) {
	today := rc.Today()
	if month == 0 {
		month = int(today.Month())
	}
	if year == 0 {
		year = today.Year()
	}
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: got %d/%d", ErrInvalidMonth, month, year)
	}

	if _, err := s.campsiteRepo.GetCampsiteByID(ctx, campsiteID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %d", ErrCampsiteNotFound, campsiteID)
		}
		return nil, fmt.Errorf("failed to get campsite: %w", err)
	}

	first := models.NewDate(year, time.Month(month), 1)
	last := models.NewDate(year, time.Month(month)+1, 0)
	reservations, err := s.reservationRepo.GetReservationsTouching(ctx, campsiteID, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}

	return ComputeAvailability(year, time.Month(month), reservations, today), nil
}

// ComputeAvailability walks every day of the month in order. A day is
// available when it is not before today and no reservation covers it;
// a reservation covers its check-in day through its check-out day
// inclusive, whatever its status.
func ComputeAvailability(year int, month time.Month, reservations []models.Reservation, today models.Date) []models.DayStatus {
	start := models.NewDate(year, month, 1)
	end := models.NewDate(year, month+1, 1)

	reserved := make(map[string]struct{})
	for _, r := range reservations {
		from, to := r.CheckInDate, r.CheckOutDate
		if from.Before(start) {
			from = start
		}
		if !to.Before(end) {
			to = end.AddDays(-1)
		}
		for d := from; !d.After(to); d = d.AddDays(1) {
			reserved[d.String()] = struct{}{}
		}
	}

	days := make([]models.DayStatus, 0, start.DaysUntil(end))
	for d := start; d.Before(end); d = d.AddDays(1) {
		_, taken := reserved[d.String()]
		days = append(days, models.DayStatus{
			Date:        d,
			Day:         d.Weekday().String(),
			Month:       d.Month().String(),
			Year:        d.Year(),
			DayNumber:   d.Day(),
			MonthNumber: int(d.Month()),
			YearNumber:  d.Year(),
			Available:   !d.Before(today) && !taken,
		})
	}
	return days
}
