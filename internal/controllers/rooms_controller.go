// internal/controllers/rooms_controller.go
package controllers

import (
	"context"
	"fmt"
	"io"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
)

func (c *Console) ListRooms(ctx context.Context) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}
	rooms, err := page(ctx, c.rooms.Load)
	if err != nil {
		return err
	}
	return c.print(func(w io.Writer) error { return renderRooms(w, rooms) })
}

func (c *Console) CreateRoom(ctx context.Context, form dtos.RoomForm) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}
	room, err := c.rooms.Create(ctx, form)
	if err != nil {
		return err
	}
	return c.print(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Room %s created (%s, %d beds, %s/month)\n",
			room.RoomNumber, room.RoomType, room.Capacity, money(room.PricePerMonth))
		return err
	})
}

func renderRooms(w io.Writer, rooms []models.Room) error {
	if len(rooms) == 0 {
		_, err := fmt.Fprintln(w, "No rooms yet.")
		return err
	}
	tw := newTable(w, "ROOM", "TYPE", "CAPACITY", "OCCUPANCY", "PRICE/MONTH", "STATUS")
	for _, r := range rooms {
		row(tw, r.RoomNumber, r.RoomType, r.Capacity,
			fmt.Sprintf("%d/%d", r.CurrentOccupancy, r.Capacity),
			money(r.PricePerMonth), status(string(r.Status), r.Status.Severity()))
	}
	return tw.Flush()
}
