package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"campground_backend/internal/models"
)

func TestComputeAvailabilityDayCount(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"leap february", 2024, time.February, 29},
		{"common february", 2023, time.February, 28},
		{"century non-leap", 1900, time.February, 28},
		{"thirty days", 2025, time.April, 30},
		{"december", 2025, time.December, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := ComputeAvailability(tt.year, tt.month, nil, models.NewDate(2000, time.January, 1))
			if len(days) != tt.want {
				t.Fatalf("got %d days, want %d", len(days), tt.want)
			}
			for i, d := range days {
				if d.DayNumber != i+1 {
					t.Fatalf("entry %d has day_number %d", i, d.DayNumber)
				}
				if d.MonthNumber != int(tt.month) || d.YearNumber != tt.year || d.Year != tt.year {
					t.Fatalf("entry %d has wrong month/year: %+v", i, d)
				}
			}
		})
	}
}

func TestComputeAvailabilityDayFields(t *testing.T) {
	days := ComputeAvailability(2024, time.February, nil, models.NewDate(2024, time.January, 1))
	first := days[0]
	if first.Date.String() != "2024-02-01" || first.Day != "Thursday" || first.Month != "February" {
		t.Fatalf("unexpected first day: %+v", first)
	}
	if !first.Available {
		t.Fatal("future day with no reservations should be available")
	}
}

func TestComputeAvailabilityInclusiveCheckout(t *testing.T) {
	reservations := []models.Reservation{{
		CheckInDate:  models.NewDate(2024, time.February, 10),
		CheckOutDate: models.NewDate(2024, time.February, 13),
	}}
	days := ComputeAvailability(2024, time.February, reservations, models.NewDate(2024, time.January, 1))

	for _, d := range days {
		reserved := d.DayNumber >= 10 && d.DayNumber <= 13
		if d.Available == reserved {
			t.Errorf("day %d available=%v, want %v", d.DayNumber, d.Available, !reserved)
		}
	}
}

func TestComputeAvailabilityClipsToMonth(t *testing.T) {
	reservations := []models.Reservation{
		{CheckInDate: models.NewDate(2024, time.January, 25), CheckOutDate: models.NewDate(2024, time.February, 2)},
		{CheckInDate: models.NewDate(2024, time.February, 28), CheckOutDate: models.NewDate(2024, time.March, 5)},
	}
	days := ComputeAvailability(2024, time.February, reservations, models.NewDate(2024, time.January, 1))

	unavailable := map[int]bool{1: true, 2: true, 28: true, 29: true}
	for _, d := range days {
		if d.Available == unavailable[d.DayNumber] {
			t.Errorf("day %d available=%v", d.DayNumber, d.Available)
		}
	}
}

func TestComputeAvailabilityPastDaysUnavailable(t *testing.T) {
	today := models.NewDate(2024, time.February, 15)
	days := ComputeAvailability(2024, time.February, nil, today)
	for _, d := range days {
		want := d.DayNumber >= 15
		if d.Available != want {
			t.Errorf("day %d available=%v, want %v", d.DayNumber, d.Available, want)
		}
	}
}

func TestGetAvailability(t *testing.T) {
	env := newTestEnv(t)
	rc, camper := env.camper(t, "avail")
	site := env.site(t, 30)
	ctx := context.Background()

	env.stay(t, camper.ID, site.ID, "2025-07-04", "2025-07-06", models.ReservationStatusCancelled)
	env.stay(t, camper.ID, site.ID, "2025-07-20", "2025-07-21", models.ReservationStatusConfirmed)

	days, err := env.availability.GetAvailability(ctx, rc, site.ID, 7, 2025)
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	if len(days) != 31 {
		t.Fatalf("got %d days", len(days))
	}
	blocked := map[int]bool{4: true, 5: true, 6: true, 20: true, 21: true}
	for _, d := range days {
		if d.Available == blocked[d.DayNumber] {
			t.Errorf("day %d available=%v", d.DayNumber, d.Available)
		}
	}

	t.Run("defaults to current month", func(t *testing.T) {
		days, err := env.availability.GetAvailability(ctx, rc, site.ID, 0, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(days) != 30 || days[0].Date.String() != "2025-06-01" {
			t.Fatalf("expected June 2025, got %d days starting %s", len(days), days[0].Date)
		}
	})

	t.Run("unknown campsite", func(t *testing.T) {
		_, err := env.availability.GetAvailability(ctx, rc, site.ID+100, 7, 2025)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("bad month", func(t *testing.T) {
		_, err := env.availability.GetAvailability(ctx, rc, site.ID, 13, 2025)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}
