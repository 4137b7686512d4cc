// internal/controllers/reports_controller.go
package controllers

import (
	"context"
	"fmt"
	"io"

	"github.com/hostelworks/hostel-console/internal/models"
	"github.com/hostelworks/hostel-console/internal/services"
)

// Reports prints occupancy and the payments report. With a date bound the
// payments section is re-queried for that window.
func (c *Console) Reports(ctx context.Context, startDate, endDate string) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}
	if err := c.reports.CheckWindow(startDate, endDate); err != nil {
		return err
	}
	p, err := page(ctx, c.reports.Load)
	if err != nil {
		return err
	}
	if startDate != "" || endDate != "" {
		filtered, err := c.reports.FilterPayments(ctx, startDate, endDate)
		if err != nil {
			return err
		}
		p.Payments = filtered
	}
	return c.print(func(w io.Writer) error { return renderReports(w, p, startDate, endDate) })
}

func renderReports(w io.Writer, p *services.ReportsPage, startDate, endDate string) error {
	if _, err := fmt.Fprintln(w, "Occupancy Report"); err != nil {
		return err
	}
	if err := renderOccupancy(w, p.Occupancy); err != nil {
		return err
	}

	title := "Payments Report"
	if startDate != "" || endDate != "" {
		title = fmt.Sprintf("Payments Report (%s to %s)", orDash(startDate), orDash(endDate))
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}
	if len(p.Payments.Payments) > 0 {
		if err := renderPaymentRows(w, p.Payments.Payments, nil); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total: %s\n", money(p.Payments.TotalAmount))
	return err
}

func renderOccupancy(w io.Writer, rows []models.OccupancyReportRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No rooms.")
		return err
	}
	tw := newTable(w, "ROOM", "CAPACITY", "OCCUPANCY", "RATE")
	for _, r := range rows {
		row(tw, r.RoomNumber, r.Capacity, r.CurrentOccupancy, fmt.Sprintf("%.1f%%", r.OccupancyRate))
	}
	return tw.Flush()
}
