// internal/services/members_service.go
package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
	"github.com/hostelworks/hostel-console/internal/utils"
)

// MembersPage is the members listing with each member's room resolved.
type MembersPage struct {
	Members []models.Member
	Rooms   []models.Room
	// OpenRooms are the rooms that can still take a member.
	OpenRooms []models.Room
}

// RoomNumber resolves a member's room number, preferring what the API sent.
func (p *MembersPage) RoomNumber(m models.Member) string {
	if m.RoomNumber != nil {
		return *m.RoomNumber
	}
	if m.RoomID == nil {
		return ""
	}
	for _, r := range p.Rooms {
		if r.ID == *m.RoomID {
			return r.RoomNumber
		}
	}
	return ""
}

type MembersService struct {
	api HostelAPI
}

func NewMembersService(api HostelAPI) *MembersService {
	return &MembersService{api: api}
}

// Load fetches members and rooms together.
func (s *MembersService) Load(ctx context.Context) (*MembersPage, error) {
	page := &MembersPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page.Members, err = s.api.ListMembers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		page.Rooms, err = s.api.ListRooms(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	page.OpenRooms = make([]models.Room, 0, len(page.Rooms))
	for _, r := range page.Rooms {
		if r.FreeBeds() > 0 {
			page.OpenRooms = append(page.OpenRooms, r)
		}
	}
	return page, nil
}

func (s *MembersService) Create(ctx context.Context, form dtos.MemberForm) (*models.Member, error) {
	member, err := s.api.CreateMember(ctx, form)
	if err != nil {
		return nil, err
	}
	utils.Logger.WithField("member", member.Name).Info("Member added")
	return member, nil
}
