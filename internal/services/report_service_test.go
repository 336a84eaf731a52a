package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"campground_backend/internal/models"
)

func TestMonthlyReservationCountsAlwaysTwelve(t *testing.T) {
	counts := MonthlyReservationCounts(nil)
	if len(counts) != 12 {
		t.Fatalf("got %d months", len(counts))
	}
	for i, c := range counts {
		if c.Month != time.Month(i+1).String() || c.Count != 0 {
			t.Errorf("entry %d = %+v", i, c)
		}
	}
}

func TestMonthlyReservationCountsBucketsByCheckIn(t *testing.T) {
	at := func(y int, m time.Month, d int) models.Reservation {
		return models.Reservation{CheckInDate: models.NewDate(y, m, d), CheckOutDate: models.NewDate(y, m, d+2)}
	}
	reservations := []models.Reservation{
		at(2024, time.March, 1),
		at(2025, time.March, 30), // spills into April but counts for March
		at(2025, time.December, 31),
		at(2023, time.July, 4),
	}
	counts := MonthlyReservationCounts(reservations)

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total != len(reservations) {
		t.Fatalf("counts sum to %d, want %d", total, len(reservations))
	}
	if counts[time.March-1].Count != 2 || counts[time.July-1].Count != 1 || counts[time.December-1].Count != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestTotalCompletedSales(t *testing.T) {
	reservations := []models.Reservation{
		{Status: models.ReservationStatusCompleted, TotalPrice: 135.00},
		{Status: models.ReservationStatusCompleted, TotalPrice: 0.1},
		{Status: models.ReservationStatusCompleted, TotalPrice: 0.2},
		{Status: models.ReservationStatusCancelled, TotalPrice: 999},
		{Status: models.ReservationStatusPending, TotalPrice: 50},
	}
	total, completed := TotalCompletedSales(reservations)
	if total != 135.30 {
		t.Errorf("total = %v, want 135.30", total)
	}
	if completed != 3 {
		t.Errorf("completed = %d, want 3", completed)
	}
}

func TestReportsRequireStaff(t *testing.T) {
	env := newTestEnv(t)
	rc, _ := env.camper(t, "notstaff")
	ctx := context.Background()

	if _, err := env.report.GetReportIndex(ctx, rc); !errors.Is(err, ErrForbidden) {
		t.Errorf("index: expected ErrForbidden, got %v", err)
	}
	if _, err := env.report.GetSalesReport(ctx, rc); !errors.Is(err, ErrForbidden) {
		t.Errorf("sales: expected ErrForbidden, got %v", err)
	}
	if _, err := env.report.GetReservationReport(ctx, rc); !errors.Is(err, ErrForbidden) {
		t.Errorf("reservations: expected ErrForbidden, got %v", err)
	}
}

func TestReportsFromStore(t *testing.T) {
	env := newTestEnv(t)
	_, camper := env.camper(t, "reported")
	site := env.site(t, 45)
	ctx := context.Background()

	env.stay(t, camper.ID, site.ID, "2025-06-10", "2025-06-13", models.ReservationStatusCompleted)
	env.stay(t, camper.ID, site.ID, "2025-06-20", "2025-06-21", models.ReservationStatusCompleted)
	env.stay(t, camper.ID, site.ID, "2025-08-01", "2025-08-05", models.ReservationStatusPending)

	sales, err := env.report.GetSalesReport(ctx, staffRC)
	if err != nil {
		t.Fatal(err)
	}
	if sales.TotalCompletedSales != 180.00 || sales.CompletedReservations != 2 {
		t.Fatalf("unexpected sales report: %+v", sales)
	}

	report, err := env.report.GetReservationReport(ctx, staffRC)
	if err != nil {
		t.Fatal(err)
	}
	if report.MonthlyCounts[time.June-1].Count != 2 || report.MonthlyCounts[time.August-1].Count != 1 {
		t.Fatalf("unexpected monthly counts: %+v", report.MonthlyCounts)
	}
	if len(report.Reservations) != 3 {
		t.Fatalf("got %d rows", len(report.Reservations))
	}
	row := report.Reservations[0]
	if row.Duration != "3 days" || row.Campsite != site.ID || row.TotalPrice != 135.00 {
		t.Fatalf("unexpected row: %+v", row)
	}

	index, err := env.report.GetReportIndex(ctx, staffRC)
	if err != nil {
		t.Fatal(err)
	}
	if len(index.Links) != 2 || len(index.Reservations) != 3 {
		t.Fatalf("unexpected index: %+v", index)
	}
}
