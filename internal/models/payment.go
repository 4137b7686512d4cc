// internal/models/payment.go
package models

type Payment struct {
	ID          int           `json:"id"`
	MemberID    int           `json:"member_id"`
	Amount      float64       `json:"amount"`
	PaymentType PaymentType   `json:"payment_type"`
	Description string        `json:"description"`
	PaymentDate string        `json:"payment_date"`
	DueDate     *string       `json:"due_date"`
	Status      PaymentStatus `json:"status"`
}
