// internal/models/report.go
package models

// OccupancyReportRow is computed server-side per room; OccupancyRate is a percentage.
type OccupancyReportRow struct {
	RoomNumber       string  `json:"room_number"`
	Capacity         int     `json:"capacity"`
	CurrentOccupancy int     `json:"current_occupancy"`
	OccupancyRate    float64 `json:"occupancy_rate"`
}

// PaymentsReportResult holds the payments inside the requested window and their sum.
type PaymentsReportResult struct {
	Payments    []Payment `json:"payments"`
	TotalAmount float64   `json:"total_amount"`
}
