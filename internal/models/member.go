// internal/models/member.go
package models

// Member is a resident. RoomID stays nil until a room is assigned.
type Member struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	RoomID           *int    `json:"room_id"`
	RoomNumber       *string `json:"room_number,omitempty"`
	EmergencyContact string  `json:"emergency_contact"`
	JoinDate         string  `json:"join_date,omitempty"`
	Status           string  `json:"status,omitempty"`
}
