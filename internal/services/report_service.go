package services

import (
	"context"
	"fmt"
	"time"

	"campground_backend/internal/models"
	"campground_backend/internal/repositories"
	"campground_backend/pkg/utils"
)

// --- ReportService Interface ---
type ReportService interface {
	GetReportIndex(ctx context.Context, rc RequestContext) (*models.ReportIndex, error)
	GetSalesReport(ctx context.Context, rc RequestContext) (*models.SalesReport, error)
	GetReservationReport(ctx context.Context, rc RequestContext) (*models.ReservationReport, error)
}

type reportService struct {
	reservationRepo repositories.ReservationRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(rr repositories.ReservationRepository) ReportService {
	return &reportService{reservationRepo: rr}
}

var reportLinks = []models.ReportLink{
	{Endpoint: "reports/sales", Name: "Sales Report"},
	{Endpoint: "reports/reservations", Name: "Reservation Analytics"},
}

// MonthlyReservationCounts tallies reservations by check-in month across
// all years. All twelve months are present, January first.
func MonthlyReservationCounts(reservations []models.Reservation) []models.MonthlyReservationCount {
	counts := make([]models.MonthlyReservationCount, 12)
	for m := time.January; m <= time.December; m++ {
		counts[m-1] = models.MonthlyReservationCount{Month: m.String()}
	}
	for _, r := range reservations {
		counts[r.CheckInDate.Month()-1].Count++
	}
	return counts
}

// TotalCompletedSales sums the derived price of completed reservations.
func TotalCompletedSales(reservations []models.Reservation) (total float64, completed int) {
	for _, r := range reservations {
		if r.Status != models.ReservationStatusCompleted {
			continue
		}
		total += r.TotalPrice
		completed++
	}
	return utils.RoundCents(total), completed
}

func toReportRows(reservations []models.Reservation) []models.ReservationReportRow {
	rows := make([]models.ReservationReportRow, len(reservations))
	for i, r := range reservations {
		rows[i] = models.ReservationReportRow{
			ID:           r.ID,
			Campsite:     r.CampsiteID,
			Duration:     fmt.Sprintf("%d days", r.Nights()),
			CheckInDate:  r.CheckInDate,
			CheckOutDate: r.CheckOutDate,
			TotalPrice:   r.TotalPrice,
			Status:       r.Status,
		}
	}
	return rows
}

func (s *reportService) allReservations(ctx context.Context, rc RequestContext, status string) ([]models.Reservation, error) {
	if err := requireStaff(rc); err != nil {
		return nil, err
	}
	reservations, err := s.reservationRepo.GetReservations(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}
	return reservations, nil
}

func (s *reportService) GetReportIndex(ctx context.Context, rc RequestContext) (*models.ReportIndex, error) {
	reservations, err := s.allReservations(ctx, rc, "")
	if err != nil {
		return nil, err
	}
	return &models.ReportIndex{Links: reportLinks, Reservations: toReportRows(reservations)}, nil
}

func (s *reportService) GetSalesReport(ctx context.Context, rc RequestContext) (*models.SalesReport, error) {
	reservations, err := s.allReservations(ctx, rc, models.ReservationStatusCompleted)
	if err != nil {
		return nil, err
	}
	total, completed := TotalCompletedSales(reservations)
	return &models.SalesReport{TotalCompletedSales: total, CompletedReservations: completed}, nil
}

func (s *reportService) GetReservationReport(ctx context.Context, rc RequestContext) (*models.ReservationReport, error) {
	reservations, err := s.allReservations(ctx, rc, "")
	if err != nil {
		return nil, err
	}
	return &models.ReservationReport{
		MonthlyCounts: MonthlyReservationCounts(reservations),
		Reservations:  toReportRows(reservations),
	}, nil
}
