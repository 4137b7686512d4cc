package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
	"github.com/hostelworks/hostel-console/internal/utils"
)

// PaymentsListing is the result of ListPayments. When the fetch fails the
// listing is empty and Degraded is set, with the failure kept in Cause.
type PaymentsListing struct {
	Payments []models.Payment
	Degraded bool
	Cause    error
}

// ListPayments fetches every payment (GET /payments). It never fails: a
// failed fetch degrades to an empty listing flagged as Degraded.
func (c *HostelClient) ListPayments(ctx context.Context) PaymentsListing {
	var payments []models.Payment
	if err := c.doRequest(ctx, http.MethodGet, "payments", nil, nil, &payments); err != nil {
		utils.Logger.WithError(err).Warn("Error fetching payments, showing an empty list")
		return PaymentsListing{Payments: []models.Payment{}, Degraded: true, Cause: err}
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return PaymentsListing{Payments: payments}
}

// CreatePayment records a payment (POST /payments). member_id, amount and
// payment_type are required and amount must be > 0; otherwise nothing is sent.
func (c *HostelClient) CreatePayment(ctx context.Context, form dtos.PaymentForm) (*models.Payment, error) {
	req, err := form.Normalize()
	if err != nil {
		return nil, coercionError("payment", err)
	}
	if err := checkPayload("payment", req); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.doRequest(ctx, http.MethodPost, "payments", nil, req, &raw); err != nil {
		return nil, err
	}
	payment, err := decodeCreated(raw, dtos.CreatePaymentResponse.Created, func() *models.Payment {
		p := &models.Payment{
			MemberID:    req.MemberID,
			Amount:      req.Amount,
			PaymentType: req.PaymentType,
			Description: req.Description,
		}
		if req.DueDate != "" {
			p.DueDate = utils.Ptr(req.DueDate)
		}
		return p
	})
	if err != nil {
		return nil, &ServerError{StatusCode: http.StatusOK, Message: err.Error(), Endpoint: c.Endpoint("payments")}
	}
	return payment, nil
}
