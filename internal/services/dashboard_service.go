// internal/services/dashboard_service.go
package services

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/hostelworks/hostel-console/internal/models"
)

// DashboardStats are the headline numbers on the dashboard.
type DashboardStats struct {
	TotalRooms    int
	TotalMembers  int
	TotalPayments int
	// OccupancyRate is the mean per-room occupancy as a whole percentage.
	OccupancyRate int

	PaymentsDegraded bool
}

type DashboardService struct {
	api HostelAPI
}

func NewDashboardService(api HostelAPI) *DashboardService {
	return &DashboardService{api: api}
}

// Load fetches rooms, members and payments together and summarises them.
func (s *DashboardService) Load(ctx context.Context) (*DashboardStats, error) {
	var (
		rooms   []models.Room
		members []models.Member
		stats   DashboardStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rooms, err = s.api.ListRooms(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.api.ListMembers(gctx)
		return err
	})
	g.Go(func() error {
		listing := s.api.ListPayments(gctx)
		stats.TotalPayments = len(listing.Payments)
		stats.PaymentsDegraded = listing.Degraded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.TotalRooms = len(rooms)
	stats.TotalMembers = len(members)
	stats.OccupancyRate = OccupancyRate(rooms)
	return &stats, nil
}

// OccupancyRate is round(mean(current/capacity) * 100) over rooms, 0 when
// there are none. A room without capacity counts as empty.
func OccupancyRate(rooms []models.Room) int {
	if len(rooms) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rooms {
		sum += r.OccupancyRatio()
	}
	return int(math.Round(sum / float64(len(rooms)) * 100))
}
