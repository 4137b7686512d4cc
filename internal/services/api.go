// internal/services/api.go
package services

import (
	"context"

	"github.com/hostelworks/hostel-console/internal/client"
	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
)

// HostelAPI is the subset of *client.HostelClient the pages use.
type HostelAPI interface {
	ListRooms(ctx context.Context) ([]models.Room, error)
	CreateRoom(ctx context.Context, form dtos.RoomForm) (*models.Room, error)
	ListMembers(ctx context.Context) ([]models.Member, error)
	CreateMember(ctx context.Context, form dtos.MemberForm) (*models.Member, error)
	ListPayments(ctx context.Context) client.PaymentsListing
	CreatePayment(ctx context.Context, form dtos.PaymentForm) (*models.Payment, error)
	OccupancyReport(ctx context.Context) ([]models.OccupancyReportRow, error)
	PaymentsReport(ctx context.Context, startDate, endDate string) (*models.PaymentsReportResult, error)
}

var _ HostelAPI = (*client.HostelClient)(nil)
