package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
)

// OccupancyReport fetches per-room occupancy (GET /reports/occupancy).
func (c *HostelClient) OccupancyReport(ctx context.Context) ([]models.OccupancyReportRow, error) {
	var rows []models.OccupancyReportRow
	if err := c.doRequest(ctx, http.MethodGet, "reports/occupancy", nil, nil, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.OccupancyReportRow{}
	}
	return rows, nil
}

// CheckReportWindow rejects bounds that are neither empty nor YYYY-MM-DD.
func CheckReportWindow(startDate, endDate string) error {
	return checkPayload("report window", dtos.PaymentsReportQuery{StartDate: startDate, EndDate: endDate})
}

// PaymentsReport fetches payments and their total between startDate and endDate
// (YYYY-MM-DD, inclusive on the server). An empty bound is left out of the query.
func (c *HostelClient) PaymentsReport(ctx context.Context, startDate, endDate string) (*models.PaymentsReportResult, error) {
	if err := CheckReportWindow(startDate, endDate); err != nil {
		return nil, err
	}
	q := dtos.PaymentsReportQuery{StartDate: startDate, EndDate: endDate}

	params := url.Values{}
	if q.StartDate != "" {
		params.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		params.Set("end_date", q.EndDate)
	}

	var result models.PaymentsReportResult
	if err := c.doRequest(ctx, http.MethodGet, "reports/payments", params, nil, &result); err != nil {
		return nil, err
	}
	if result.Payments == nil {
		result.Payments = []models.Payment{}
	}
	return &result, nil
}
