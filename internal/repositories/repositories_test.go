package repositories_test

import (
	"context"
	"errors"
	"testing"

	"campground_backend/internal/models"
	"campground_backend/internal/repositories"
	"campground_backend/internal/testkit"

	"github.com/jmoiron/sqlx"
)

func seedCamper(t *testing.T, db *sqlx.DB, username string) *models.Camper {
	t.Helper()
	ctx := context.Background()
	user := &models.User{Username: username, PasswordHash: "x"}
	if _, err := repositories.NewAuthRepository(db).CreateUser(ctx, db, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	camper := &models.Camper{UserID: user.ID}
	if _, err := repositories.NewCamperRepository(db).CreateCamper(ctx, db, camper); err != nil {
		t.Fatalf("create camper: %v", err)
	}
	return camper
}

func seedCampsite(t *testing.T, db *sqlx.DB, price float64) *models.Campsite {
	t.Helper()
	site := &models.Campsite{SiteNumber: "A1", PricePerNight: price, MaxOccupancy: 4, Available: true}
	if _, err := repositories.NewCampsiteRepository(db).CreateCampsite(context.Background(), db, site); err != nil {
		t.Fatalf("create campsite: %v", err)
	}
	return site
}

func date(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	db := testkit.OpenDB(t)
	repo := repositories.NewAuthRepository(db)
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, db, &models.User{Username: "jo", PasswordHash: "h"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := repo.CreateUser(ctx, db, &models.User{Username: "jo", PasswordHash: "h"})
	if !errors.Is(err, repositories.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestFindUserByEmailIsCaseInsensitive(t *testing.T) {
	db := testkit.OpenDB(t)
	repo := repositories.NewAuthRepository(db)
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, db, &models.User{Username: "jo", Email: "Jo@Example.com", PasswordHash: "h"}); err != nil {
		t.Fatal(err)
	}
	user, err := repo.FindUserByEmail(ctx, "jo@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if user.Username != "jo" {
		t.Fatalf("got user %q", user.Username)
	}
	if _, err := repo.FindUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPaymentMethodSingleDefaultIsEnforced(t *testing.T) {
	db := testkit.OpenDB(t)
	repo := repositories.NewPaymentMethodRepository(db)
	camper := seedCamper(t, db, "pm")
	ctx := context.Background()

	newCard := func(isDefault bool) *models.PaymentMethod {
		return &models.PaymentMethod{
			CamperID:       camper.ID,
			Issuer:         models.IssuerVisa,
			CardNumber:     "4111111111111111",
			CardholderName: "P M",
			ExpirationDate: date(t, "2027-01-01"),
			CVV:            "123",
			IsDefault:      isDefault,
		}
	}

	if _, err := repo.CreatePaymentMethod(ctx, db, newCard(true)); err != nil {
		t.Fatalf("first default: %v", err)
	}
	if _, err := repo.CreatePaymentMethod(ctx, db, newCard(true)); !errors.Is(err, repositories.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey for second default, got %v", err)
	}
	if err := repo.ClearDefault(ctx, db, camper.ID); err != nil {
		t.Fatalf("clear default: %v", err)
	}
	if _, err := repo.CreatePaymentMethod(ctx, db, newCard(true)); err != nil {
		t.Fatalf("default after clear: %v", err)
	}

	methods, err := repo.GetPaymentMethodsByCamper(ctx, camper.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(methods))
	}
	if methods[0].IsDefault || !methods[1].IsDefault {
		t.Fatalf("unexpected default flags: %v %v", methods[0].IsDefault, methods[1].IsDefault)
	}
	if got := methods[0].ExpirationDate.String(); got != "2027-01-01" {
		t.Fatalf("expiration round trip = %s", got)
	}
}

func TestDeletePaymentMethodScopedToOwner(t *testing.T) {
	db := testkit.OpenDB(t)
	repo := repositories.NewPaymentMethodRepository(db)
	owner := seedCamper(t, db, "owner")
	other := seedCamper(t, db, "other")
	ctx := context.Background()

	pm := &models.PaymentMethod{
		CamperID: owner.ID, Issuer: models.IssuerAmex, CardNumber: "378282246310005",
		CardholderName: "O", ExpirationDate: date(t, "2026-05-01"), CVV: "1234",
	}
	if _, err := repo.CreatePaymentMethod(ctx, db, pm); err != nil {
		t.Fatal(err)
	}
	if err := repo.DeletePaymentMethod(ctx, db, pm.ID, other.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}
	if err := repo.DeletePaymentMethod(ctx, db, pm.ID, owner.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := repo.DeletePaymentMethod(ctx, db, pm.ID, owner.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for repeat delete, got %v", err)
	}
}

func TestReservationsTouchingWindow(t *testing.T) {
	db := testkit.OpenDB(t)
	repo := repositories.NewReservationRepository(db)
	camper := seedCamper(t, db, "r")
	site := seedCampsite(t, db, 45)
	ctx := context.Background()

	spans := [][2]string{
		{"2024-01-28", "2024-02-01"}, // ends inside window
		{"2024-02-10", "2024-02-13"},
		{"2024-03-01", "2024-03-03"}, // starts the day after
		{"2024-01-01", "2024-01-05"},
	}
	for _, s := range spans {
		res := &models.Reservation{
			CamperID: camper.ID, CampsiteID: site.ID,
			CheckInDate: date(t, s[0]), CheckOutDate: date(t, s[1]), NumberOfGuests: 2,
		}
		if _, err := repo.CreateReservation(ctx, db, res); err != nil {
			t.Fatalf("create %v: %v", s, err)
		}
	}

	got, err := repo.GetReservationsTouching(ctx, site.ID, date(t, "2024-02-01"), date(t, "2024-02-29"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 reservations in window, got %d", len(got))
	}
	if got[0].CheckInDate.String() != "2024-01-28" || got[1].CheckInDate.String() != "2024-02-10" {
		t.Fatalf("unexpected reservations: %s, %s", got[0].CheckInDate, got[1].CheckInDate)
	}
	if got[1].TotalPrice != 135 {
		t.Fatalf("expected derived total 135, got %v", got[1].TotalPrice)
	}
	if got[1].Status != models.ReservationStatusPending {
		t.Fatalf("expected default status pending, got %s", got[1].Status)
	}
}

func TestReservationPriceFollowsCurrentRate(t *testing.T) {
	db := testkit.OpenDB(t)
	repo := repositories.NewReservationRepository(db)
	sites := repositories.NewCampsiteRepository(db)
	camper := seedCamper(t, db, "rate")
	site := seedCampsite(t, db, 45)
	ctx := context.Background()

	res := &models.Reservation{
		CamperID: camper.ID, CampsiteID: site.ID,
		CheckInDate: date(t, "2025-06-10"), CheckOutDate: date(t, "2025-06-13"), NumberOfGuests: 1,
	}
	if _, err := repo.CreateReservation(ctx, db, res); err != nil {
		t.Fatal(err)
	}

	site.PricePerNight = 50
	if err := sites.UpdateCampsite(ctx, db, site); err != nil {
		t.Fatal(err)
	}
	got, err := repo.GetReservationByID(ctx, res.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalPrice != 150 {
		t.Fatalf("expected 150 at new rate, got %v", got.TotalPrice)
	}
}

func TestCampsiteAmenityLinks(t *testing.T) {
	db := testkit.OpenDB(t)
	sites := repositories.NewCampsiteRepository(db)
	amenities := repositories.NewAmenityRepository(db)
	site := seedCampsite(t, db, 20)
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"Water", "Power", "Fire pit"} {
		a := &models.Amenity{Name: name}
		if _, err := amenities.CreateAmenity(ctx, db, a); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, a.ID)
	}
	if _, err := amenities.CreateAmenity(ctx, db, &models.Amenity{Name: "Water"}); !errors.Is(err, repositories.ErrDuplicateKey) {
		t.Fatalf("expected duplicate amenity name error, got %v", err)
	}

	for _, id := range ids {
		if err := sites.LinkAmenity(ctx, db, site.ID, id); err != nil {
			t.Fatal(err)
		}
	}
	if err := sites.LinkAmenity(ctx, db, site.ID, ids[0]); !errors.Is(err, repositories.ErrDuplicateKey) {
		t.Fatalf("expected duplicate link error, got %v", err)
	}
	if err := sites.UnlinkAmenities(ctx, db, site.ID, ids[:2]); err != nil {
		t.Fatal(err)
	}

	linked, err := sites.GetAmenitiesForCampsites(ctx, []int64{site.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(linked[site.ID]) != 1 || linked[site.ID][0].Name != "Fire pit" {
		t.Fatalf("unexpected links: %+v", linked[site.ID])
	}

	found, err := amenities.GetAmenitiesByIDs(ctx, []int64{ids[0], 999})
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 {
		t.Fatalf("expected only the existing amenity, got %d", len(found))
	}
}
