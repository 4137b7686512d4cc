// internal/models/enums.go
package models

// Severity classifies a status for display (success/warning/error/default).
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeverityDefault Severity = "default"
)

// ------------------------------------------------------------------------
// RoomType
// ------------------------------------------------------------------------
type RoomType string

const (
	RoomTypeSingle    RoomType = "Single"
	RoomTypeDouble    RoomType = "Double"
	RoomTypeDormitory RoomType = "Dormitory"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeDormitory:
		return true
	}
	return false
}

// ------------------------------------------------------------------------
// RoomStatus
// ------------------------------------------------------------------------
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Severity() Severity {
	switch s {
	case RoomStatusAvailable:
		return SeveritySuccess
	case RoomStatusOccupied:
		return SeverityWarning
	case RoomStatusMaintenance:
		return SeverityError
	default:
		return SeverityDefault
	}
}

// ------------------------------------------------------------------------
// PaymentType
// ------------------------------------------------------------------------
type PaymentType string

const (
	PaymentTypeRent    PaymentType = "rent"
	PaymentTypeDeposit PaymentType = "deposit"
	PaymentTypeUtility PaymentType = "utility"
	PaymentTypeOther   PaymentType = "other"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeRent, PaymentTypeDeposit, PaymentTypeUtility, PaymentTypeOther:
		return true
	}
	return false
}

// ------------------------------------------------------------------------
// PaymentStatus
// ------------------------------------------------------------------------
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Severity() Severity {
	switch s {
	case PaymentStatusCompleted:
		return SeveritySuccess
	case PaymentStatusPending:
		return SeverityWarning
	case PaymentStatusFailed:
		return SeverityError
	default:
		return SeverityDefault
	}
}
