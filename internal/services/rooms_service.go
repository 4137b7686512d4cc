// internal/services/rooms_service.go
package services

import (
	"context"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
	"github.com/hostelworks/hostel-console/internal/utils"
)

type RoomsService struct {
	api HostelAPI
}

func NewRoomsService(api HostelAPI) *RoomsService {
	return &RoomsService{api: api}
}

func (s *RoomsService) Load(ctx context.Context) ([]models.Room, error) {
	return s.api.ListRooms(ctx)
}

func (s *RoomsService) Create(ctx context.Context, form dtos.RoomForm) (*models.Room, error) {
	room, err := s.api.CreateRoom(ctx, form)
	if err != nil {
		return nil, err
	}
	utils.Logger.WithField("room_number", room.RoomNumber).Info("Room created")
	return room, nil
}
