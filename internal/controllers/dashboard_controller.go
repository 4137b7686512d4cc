// internal/controllers/dashboard_controller.go
package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/hostelworks/hostel-console/internal/services"
	"github.com/hostelworks/hostel-console/internal/utils"
)

func (c *Console) Dashboard(ctx context.Context) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}
	stats, err := page(ctx, c.dashboard.Load)
	if err != nil {
		return err
	}
	return c.print(func(w io.Writer) error { return renderDashboard(w, stats) })
}

// WatchDashboard renders the dashboard now and again on every tick of spec
// (standard cron syntax or descriptors such as "@every 30s") until ctx ends.
// A refresh that is still loading when the next tick fires is cancelled.
func (c *Console) WatchDashboard(ctx context.Context, spec string) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		current *services.PageTask[*services.DashboardStats]
	)
	refresh := func() {
		task := services.StartPage(ctx, c.dashboard.Load)
		mu.Lock()
		if current != nil {
			current.Cancel()
		}
		current = task
		mu.Unlock()

		stats, err := task.Wait()
		switch {
		case errors.Is(err, services.ErrPageClosed):
			return
		case err != nil:
			utils.Logger.WithError(err).Warn("Dashboard refresh failed")
			return
		}
		if err := c.print(func(w io.Writer) error { return renderDashboard(w, stats) }); err != nil {
			utils.Logger.WithError(err).Warn("Failed to render dashboard")
		}
	}

	sched := cron.New()
	if _, err := sched.AddFunc(spec, refresh); err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", spec, err)
	}
	utils.Logger.WithField("schedule", spec).Info("Watching dashboard")

	refresh()
	sched.Start()
	<-ctx.Done()
	<-sched.Stop().Done()

	mu.Lock()
	if current != nil {
		current.Cancel()
	}
	mu.Unlock()
	return nil
}

func renderDashboard(w io.Writer, s *services.DashboardStats) error {
	tw := newTable(w, "METRIC", "VALUE")
	row(tw, "Total Members", s.TotalMembers)
	row(tw, "Total Rooms", s.TotalRooms)
	payments := fmt.Sprint(s.TotalPayments)
	if s.PaymentsDegraded {
		payments += " (unavailable)"
	}
	row(tw, "Total Payments", payments)
	row(tw, "Occupancy Rate", fmt.Sprintf("%d%%", s.OccupancyRate))
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
