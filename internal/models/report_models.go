package models

// ReportLink points at a report sub-resource.
type ReportLink struct {
	Endpoint string `json:"endpoint"`
	Name     string `json:"name"`
}

// ReservationReportRow is a reservation flattened for staff reports.
type ReservationReportRow struct {
	ID           int64   `json:"id"`
	Campsite     int64   `json:"campsite"`
	Duration     string  `json:"duration"`
	CheckInDate  Date    `json:"check_in_date"`
	CheckOutDate Date    `json:"check_out_date"`
	TotalPrice   float64 `json:"total_price"`
	Status       string  `json:"status"`
}

// MonthlyReservationCount is one calendar month's reservation tally.
type MonthlyReservationCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// SalesReport summarizes revenue from completed stays.
type SalesReport struct {
	TotalCompletedSales   float64 `json:"total_completed_sales"`
	CompletedReservations int     `json:"completed_reservations"`
}

// ReservationReport bundles the monthly tally with the underlying rows.
type ReservationReport struct {
	MonthlyCounts []MonthlyReservationCount `json:"monthly_counts"`
	Reservations  []ReservationReportRow    `json:"reservations"`
}

// ReportIndex is the top-level reports payload.
type ReportIndex struct {
	Links        []ReportLink           `json:"links"`
	Reservations []ReservationReportRow `json:"reservations"`
}
