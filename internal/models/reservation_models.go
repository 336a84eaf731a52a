package models

import (
	"time"

	"campground_backend/pkg/utils"
)

// Reservation statuses.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCompleted = "completed"
	ReservationStatusCancelled = "cancelled"
)

// IsValidReservationStatus checks if the provided status string is a known status.
func IsValidReservationStatus(status string) bool {
	switch status {
	case ReservationStatusPending,
		ReservationStatusConfirmed,
		ReservationStatusCompleted,
		ReservationStatusCancelled:
		return true
	default:
		return false
	}
}

// Reservation is a camper's stay at a campsite. TotalPrice is never stored:
// it is derived on read from the stay length and the campsite's current rate.
type Reservation struct {
	ID             int64     `json:"id" db:"id"`
	CamperID       int64     `json:"camper_id" db:"camper_id"`
	CampsiteID     int64     `json:"campsite_id" db:"campsite_id"`
	CheckInDate    Date      `json:"check_in_date" db:"check_in_date"`
	CheckOutDate   Date      `json:"check_out_date" db:"check_out_date"`
	NumberOfGuests int       `json:"number_of_guests" db:"number_of_guests"`
	Status         string    `json:"status" db:"status"`
	PricePerNight  float64   `json:"-" db:"price_per_night"`
	TotalPrice     float64   `json:"total_price" db:"-"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
	Campsite       *Campsite `json:"campsite,omitempty" db:"-"`
}

// Nights is the number of nights between check-in and check-out.
func (r *Reservation) Nights() int {
	return StayNights(r.CheckInDate, r.CheckOutDate)
}

// ApplyPrice derives TotalPrice from the joined nightly rate.
func (r *Reservation) ApplyPrice() {
	r.TotalPrice = TotalPrice(r.CheckInDate, r.CheckOutDate, r.PricePerNight)
}

// StayNights returns checkOut - checkIn in days.
func StayNights(checkIn, checkOut Date) int {
	return checkIn.DaysUntil(checkOut)
}

// TotalPrice is nights x nightly rate rounded to cents.
func TotalPrice(checkIn, checkOut Date, pricePerNight float64) float64 {
	return utils.RoundCents(float64(StayNights(checkIn, checkOut)) * pricePerNight)
}
