package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"campground_backend/internal/events"
	"campground_backend/internal/models"
	"campground_backend/internal/repositories"
	"campground_backend/internal/testkit"

	"github.com/jmoiron/sqlx"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ReservationCreated
}

func (p *recordingPublisher) PublishReservationCreated(_ context.Context, e events.ReservationCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type testEnv struct {
	db        *sqlx.DB
	users     repositories.AuthRepository
	campers   repositories.CamperRepository
	payments  repositories.PaymentMethodRepository
	campsites repositories.CampsiteRepository
	amenities repositories.AmenityRepository
	reviews   repositories.ReviewRepository
	stays     repositories.ReservationRepository
	publisher *recordingPublisher

	auth         AuthService
	campsite     CampsiteService
	availability AvailabilityService
	reservation  ReservationService
	payment      PaymentMethodService
	profile      ProfileService
	report       ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testkit.OpenDB(t)
	env := &testEnv{
		db:        db,
		users:     repositories.NewAuthRepository(db),
		campers:   repositories.NewCamperRepository(db),
		payments:  repositories.NewPaymentMethodRepository(db),
		campsites: repositories.NewCampsiteRepository(db),
		amenities: repositories.NewAmenityRepository(db),
		reviews:   repositories.NewReviewRepository(db),
		stays:     repositories.NewReservationRepository(db),
		publisher: &recordingPublisher{},
	}
	env.auth = NewAuthService(env.users, env.campers, db, "test-secret", time.Hour)
	env.campsite = NewCampsiteService(env.campsites, env.amenities, env.reviews, env.campers, db)
	env.availability = NewAvailabilityService(env.campsites, env.stays)
	env.reservation = NewReservationService(env.stays, env.campsites, env.campers, env.publisher, db)
	env.payment = NewPaymentMethodService(env.payments, env.campers, db)
	env.profile = NewProfileService(env.users, env.campers, env.payments, env.stays, env.campsite, db)
	env.report = NewReportService(env.stays)
	return env
}

// camper creates a user with a camper profile and returns the request
// context acting as that user.
func (e *testEnv) camper(t *testing.T, username string) (RequestContext, *models.Camper) {
	t.Helper()
	ctx := context.Background()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	if _, err := e.users.CreateUser(ctx, e.db, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	camper := &models.Camper{UserID: user.ID}
	if _, err := e.campers.CreateCamper(ctx, e.db, camper); err != nil {
		t.Fatalf("create camper: %v", err)
	}
	rc := RequestContext{UserID: user.ID, Now: time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)}
	return rc, camper
}

func (e *testEnv) site(t *testing.T, price float64) *models.Campsite {
	t.Helper()
	site := &models.Campsite{SiteNumber: "S-1", PricePerNight: price, MaxOccupancy: 6, Available: true}
	if _, err := e.campsites.CreateCampsite(context.Background(), e.db, site); err != nil {
		t.Fatalf("create campsite: %v", err)
	}
	return site
}

func (e *testEnv) stay(t *testing.T, camperID, campsiteID int64, in, out, status string) *models.Reservation {
	t.Helper()
	r := &models.Reservation{
		CamperID: camperID, CampsiteID: campsiteID,
		CheckInDate: mustDate(t, in), CheckOutDate: mustDate(t, out),
		NumberOfGuests: 2, Status: status,
	}
	if _, err := e.stays.CreateReservation(context.Background(), e.db, r); err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	return r
}

func mustDate(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

var staffRC = RequestContext{UserID: 0, IsStaff: true, Now: time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)}
