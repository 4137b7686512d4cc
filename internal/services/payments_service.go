// internal/services/payments_service.go
package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
	"github.com/hostelworks/hostel-console/internal/utils"
)

// PaymentsPage lists payments next to the members who made them. Degraded is
// set when the payments could not be fetched and the list is empty for that
// reason rather than because there are none.
type PaymentsPage struct {
	Payments []models.Payment
	Members  []models.Member
	Degraded bool
}

// MemberName returns the payer's name, or "" when the member is unknown.
func (p *PaymentsPage) MemberName(memberID int) string {
	for _, m := range p.Members {
		if m.ID == memberID {
			return m.Name
		}
	}
	return ""
}

type PaymentsService struct {
	api HostelAPI
}

func NewPaymentsService(api HostelAPI) *PaymentsService {
	return &PaymentsService{api: api}
}

// Load fetches payments and members together.
func (s *PaymentsService) Load(ctx context.Context) (*PaymentsPage, error) {
	page := &PaymentsPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		listing := s.api.ListPayments(gctx)
		page.Payments = listing.Payments
		page.Degraded = listing.Degraded
		return nil
	})
	g.Go(func() error {
		var err error
		page.Members, err = s.api.ListMembers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *PaymentsService) Create(ctx context.Context, form dtos.PaymentForm) (*models.Payment, error) {
	payment, err := s.api.CreatePayment(ctx, form)
	if err != nil {
		return nil, err
	}
	utils.Logger.WithField("member_id", payment.MemberID).Infof("Payment of %.2f recorded", payment.Amount)
	return payment, nil
}
