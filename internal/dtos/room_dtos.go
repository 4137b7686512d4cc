package dtos

import (
	"fmt"
	"strings"

	"github.com/hostelworks/hostel-console/internal/models"
	"github.com/hostelworks/hostel-console/internal/utils"
)

// RoomForm is a room exactly as typed at the console.
type RoomForm struct {
	RoomNumber    string
	RoomType      string
	Capacity      string
	PricePerMonth string
}

// CreateRoomRequest is the POST /rooms body.
type CreateRoomRequest struct {
	RoomNumber    string          `json:"room_number" validate:"required"`
	Capacity      int             `json:"capacity" validate:"gt=0"`
	RoomType      models.RoomType `json:"room_type" validate:"required,room_type"`
	PricePerMonth float64         `json:"price_per_month" validate:"gt=0"`
}

// CreateRoomResponse is the envelope the API wraps a created room in.
type CreateRoomResponse struct {
	Message string       `json:"message"`
	Room    *models.Room `json:"room"`
}

func (r CreateRoomResponse) Created() *models.Room {
	return r.Room
}

// Normalize turns numeric-looking strings into numbers. It does not validate ranges.
func (f RoomForm) Normalize() (CreateRoomRequest, error) {
	capacity, err := utils.CoerceInt(f.Capacity)
	if err != nil {
		return CreateRoomRequest{}, fmt.Errorf("capacity: %w", err)
	}
	price, err := utils.CoerceFloat(f.PricePerMonth)
	if err != nil {
		return CreateRoomRequest{}, fmt.Errorf("price_per_month: %w", err)
	}
	return CreateRoomRequest{
		RoomNumber:    strings.TrimSpace(f.RoomNumber),
		Capacity:      capacity,
		RoomType:      models.RoomType(f.RoomType),
		PricePerMonth: price,
	}, nil
}
