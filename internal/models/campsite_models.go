package models

import "time"

// Campsite is a bookable site with a nightly rate.
type Campsite struct {
	ID            int64           `json:"id" db:"id"`
	SiteNumber    string          `json:"site_number" db:"site_number"`
	Description   string          `json:"description" db:"description"`
	Coordinates   string          `json:"coordinates" db:"coordinates"`
	PricePerNight float64         `json:"price_per_night" db:"price_per_night"`
	MaxOccupancy  int             `json:"max_occupancy" db:"max_occupancy"`
	Available     bool            `json:"available" db:"available"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
	Reviews       []Review        `json:"reviews" db:"-"`
	Images        []CampsiteImage `json:"images" db:"-"`
	Amenities     []Amenity       `json:"amenities" db:"-"`
}

// CampsiteImage references an uploaded picture of a campsite.
type CampsiteImage struct {
	ID         int64     `json:"id" db:"id"`
	CampsiteID int64     `json:"-" db:"campsite_id"`
	ImageURL   string    `json:"image_url" db:"image_url"`
	UploadedAt time.Time `json:"-" db:"uploaded_at"`
}

// Amenity is a named capability a campsite can offer.
type Amenity struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Review is a camper's rating of a campsite. Username is joined in on read.
type Review struct {
	ID         int64     `json:"id" db:"id"`
	CamperID   int64     `json:"-" db:"camper_id"`
	CampsiteID int64     `json:"-" db:"campsite_id"`
	Username   string    `json:"username" db:"username"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    *string   `json:"comment" db:"comment"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// DayStatus is one calendar day of a campsite's availability.
type DayStatus struct {
	Date        Date   `json:"date"`
	Day         string `json:"day"`
	Month       string `json:"month"`
	Year        int    `json:"year"`
	DayNumber   int    `json:"day_number"`
	MonthNumber int    `json:"month_number"`
	YearNumber  int    `json:"year_number"`
	Available   bool   `json:"available"`
}
