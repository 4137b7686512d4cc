// internal/services/reports_service.go
package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hostelworks/hostel-console/internal/client"
	"github.com/hostelworks/hostel-console/internal/models"
)

type ReportsPage struct {
	Occupancy []models.OccupancyReportRow
	Payments  *models.PaymentsReportResult
}

type ReportsService struct {
	api HostelAPI
}

func NewReportsService(api HostelAPI) *ReportsService {
	return &ReportsService{api: api}
}

// Load fetches the occupancy report and the unbounded payments report together.
func (s *ReportsService) Load(ctx context.Context) (*ReportsPage, error) {
	page := &ReportsPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page.Occupancy, err = s.api.OccupancyReport(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		page.Payments, err = s.api.PaymentsReport(gctx, "", "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

// CheckWindow validates a payments report window without calling the API.
func (s *ReportsService) CheckWindow(startDate, endDate string) error {
	return client.CheckReportWindow(startDate, endDate)
}

// FilterPayments re-runs the payments report for [startDate, endDate].
// Either bound may be "".
func (s *ReportsService) FilterPayments(ctx context.Context, startDate, endDate string) (*models.PaymentsReportResult, error) {
	return s.api.PaymentsReport(ctx, startDate, endDate)
}
