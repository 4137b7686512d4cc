// internal/services/seeder.go
package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
	"github.com/hostelworks/hostel-console/internal/utils"
)

var sampleRooms = []dtos.RoomForm{
	{RoomNumber: "101", Capacity: "2", RoomType: string(models.RoomTypeSingle), PricePerMonth: "250.00"},
	{RoomNumber: "102", Capacity: "2", RoomType: string(models.RoomTypeSingle), PricePerMonth: "250.00"},
	{RoomNumber: "201", Capacity: "3", RoomType: string(models.RoomTypeDouble), PricePerMonth: "350.00"},
	{RoomNumber: "202", Capacity: "3", RoomType: string(models.RoomTypeDouble), PricePerMonth: "350.00"},
	{RoomNumber: "301", Capacity: "4", RoomType: string(models.RoomTypeDormitory), PricePerMonth: "200.00"},
	{RoomNumber: "302", Capacity: "4", RoomType: string(models.RoomTypeDormitory), PricePerMonth: "200.00"},
}

type sampleMember struct {
	form       dtos.MemberForm
	roomNumber string
}

var sampleMembers = []sampleMember{
	{dtos.MemberForm{Name: "John Doe", Email: "john@example.com", Phone: "555-1234", EmergencyContact: "Jane Doe (Mother) 555-5678"}, "101"},
	{dtos.MemberForm{Name: "Jane Smith", Email: "jane@example.com", Phone: "555-4321", EmergencyContact: "John Smith (Father) 555-8765"}, "102"},
	{dtos.MemberForm{Name: "Mike Johnson", Email: "mike@example.com", Phone: "555-6789", EmergencyContact: "Lisa Johnson (Sister) 555-9876"}, "201"},
}

// SeedResult counts what SeedSampleData actually created.
type SeedResult struct {
	RoomsCreated   int
	MembersCreated int
}

type Seeder struct {
	api HostelAPI
}

func NewSeeder(api HostelAPI) *Seeder {
	return &Seeder{api: api}
}

/* ------------------------------------------------------------------
   Seed sample rooms and members through the API (demo purposes only).
   Rooms are skipped when any room exists; members likewise.
------------------------------------------------------------------ */
func (s *Seeder) SeedSampleData(ctx context.Context) (*SeedResult, error) {
	res := &SeedResult{}

	rooms, err := s.api.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if len(rooms) > 0 {
		utils.Logger.Infof("Rooms already present (%d rooms found); skipping.", len(rooms))
	} else {
		for _, form := range sampleRooms {
			if _, err := s.api.CreateRoom(ctx, form); err != nil {
				return res, fmt.Errorf("create sample room %s: %w", form.RoomNumber, err)
			}
			res.RoomsCreated++
		}
		utils.Logger.Infof("Added %d sample rooms.", res.RoomsCreated)

		// Re-read so members are placed using the IDs the server assigned.
		if rooms, err = s.api.ListRooms(ctx); err != nil {
			return res, fmt.Errorf("list rooms: %w", err)
		}
	}

	members, err := s.api.ListMembers(ctx)
	if err != nil {
		return res, fmt.Errorf("list members: %w", err)
	}
	if len(members) > 0 {
		utils.Logger.Infof("Members already present (%d members found); skipping.", len(members))
		return res, nil
	}

	for _, sm := range sampleMembers {
		roomID := 0
		for _, r := range rooms {
			if r.RoomNumber == sm.roomNumber {
				roomID = r.ID
				break
			}
		}
		if roomID == 0 {
			return res, fmt.Errorf("sample room %s not found for %s", sm.roomNumber, sm.form.Name)
		}
		form := sm.form
		form.RoomID = strconv.Itoa(roomID)
		if _, err := s.api.CreateMember(ctx, form); err != nil {
			return res, fmt.Errorf("create sample member %s: %w", form.Name, err)
		}
		res.MembersCreated++
	}
	utils.Logger.Infof("Added %d sample members.", res.MembersCreated)
	return res, nil
}
