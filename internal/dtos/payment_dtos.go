package dtos

import (
	"fmt"

	"github.com/hostelworks/hostel-console/internal/models"
	"github.com/hostelworks/hostel-console/internal/utils"
)

type PaymentForm struct {
	MemberID    string
	Amount      string
	PaymentType string
	Description string
	DueDate     string
}

// CreatePaymentRequest is the POST /payments body. Amount must be > 0 before
// anything is sent.
type CreatePaymentRequest struct {
	MemberID    int                `json:"member_id" validate:"gt=0"`
	Amount      float64            `json:"amount" validate:"gt=0"`
	PaymentType models.PaymentType `json:"payment_type" validate:"required,payment_type"`
	Description string             `json:"description,omitempty"`
	DueDate     string             `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type CreatePaymentResponse struct {
	Message string          `json:"message"`
	Payment *models.Payment `json:"payment"`
}

func (r CreatePaymentResponse) Created() *models.Payment {
	return r.Payment
}

func (f PaymentForm) Normalize() (CreatePaymentRequest, error) {
	memberID, err := utils.CoerceInt(f.MemberID)
	if err != nil {
		return CreatePaymentRequest{}, fmt.Errorf("member_id: %w", err)
	}
	amount, err := utils.CoerceFloat(f.Amount)
	if err != nil {
		return CreatePaymentRequest{}, fmt.Errorf("amount: %w", err)
	}
	return CreatePaymentRequest{
		MemberID:    memberID,
		Amount:      amount,
		PaymentType: models.PaymentType(f.PaymentType),
		Description: f.Description,
		DueDate:     f.DueDate,
	}, nil
}
