// internal/models/room.go
package models

// Room is a bookable space with a fixed number of beds.
type Room struct {
	ID               int        `json:"id"`
	RoomNumber       string     `json:"room_number"`
	RoomType         RoomType   `json:"room_type"`
	Capacity         int        `json:"capacity"`
	CurrentOccupancy int        `json:"current_occupancy"`
	PricePerMonth    float64    `json:"price_per_month"`
	Status           RoomStatus `json:"status"`
}

// FreeBeds is how many more members the room can take. Never negative.
func (r Room) FreeBeds() int {
	if free := r.Capacity - r.CurrentOccupancy; free > 0 {
		return free
	}
	return 0
}

// OccupancyRatio is current/capacity, 0 for a room without capacity.
func (r Room) OccupancyRatio() float64 {
	if r.Capacity <= 0 {
		return 0
	}
	return float64(r.CurrentOccupancy) / float64(r.Capacity)
}
