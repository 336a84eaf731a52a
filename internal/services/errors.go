package services

import (
	"errors"
	"time"

	"campground_backend/internal/models"
)

// Error taxonomy. Every error a service returns either wraps one of these
// or is unexpected and must surface as a generic internal error.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidRange = errors.New("invalid range")
	ErrForbidden    = errors.New("forbidden")
)

// RequestContext carries the acting identity and the request's notion of
// "now" into every operation.
type RequestContext struct {
	UserID  int64
	IsStaff bool
	Now     time.Time
}

// Today is the calendar day of Now.
func (rc RequestContext) Today() models.Date {
	return models.DateOf(rc.Now)
}
