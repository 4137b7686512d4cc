package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
)

// ListRooms fetches every room (GET /rooms).
func (c *HostelClient) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := c.doRequest(ctx, http.MethodGet, "rooms", nil, nil, &rooms); err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []models.Room{}
	}
	return rooms, nil
}

// CreateRoom normalises the form (capacity to int, price to float), checks it
// locally and posts it (POST /rooms).
func (c *HostelClient) CreateRoom(ctx context.Context, form dtos.RoomForm) (*models.Room, error) {
	req, err := form.Normalize()
	if err != nil {
		return nil, coercionError("room", err)
	}
	if err := checkPayload("room", req); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.doRequest(ctx, http.MethodPost, "rooms", nil, req, &raw); err != nil {
		return nil, err
	}
	room, err := decodeCreated(raw, dtos.CreateRoomResponse.Created, func() *models.Room {
		return &models.Room{
			RoomNumber:    req.RoomNumber,
			RoomType:      req.RoomType,
			Capacity:      req.Capacity,
			PricePerMonth: req.PricePerMonth,
			Status:        models.RoomStatusAvailable,
		}
	})
	if err != nil {
		return nil, &ServerError{StatusCode: http.StatusOK, Message: err.Error(), Endpoint: c.Endpoint("rooms")}
	}
	return room, nil
}
