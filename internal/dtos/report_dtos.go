package dtos

// PaymentsReportQuery bounds GET /reports/payments. Empty means unbounded.
type PaymentsReportQuery struct {
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
}
