// internal/controllers/members_controller.go
package controllers

import (
	"context"
	"fmt"
	"io"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/services"
)

// ListMembers shows members with their rooms, then the rooms with free beds.
func (c *Console) ListMembers(ctx context.Context) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}
	p, err := page(ctx, c.members.Load)
	if err != nil {
		return err
	}
	return c.print(func(w io.Writer) error { return renderMembers(w, p) })
}

func (c *Console) CreateMember(ctx context.Context, form dtos.MemberForm) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}
	member, err := c.members.Create(ctx, form)
	if err != nil {
		return err
	}
	return c.print(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Member %s added\n", member.Name)
		return err
	})
}

func renderMembers(w io.Writer, p *services.MembersPage) error {
	if len(p.Members) == 0 {
		if _, err := fmt.Fprintln(w, "No members yet."); err != nil {
			return err
		}
	} else {
		tw := newTable(w, "ID", "NAME", "EMAIL", "PHONE", "ROOM", "EMERGENCY CONTACT")
		for _, m := range p.Members {
			row(tw, m.ID, m.Name, m.Email, m.Phone, orDash(p.RoomNumber(m)), orDash(m.EmergencyContact))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\nRooms with free beds:"); err != nil {
		return err
	}
	if len(p.OpenRooms) == 0 {
		_, err := fmt.Fprintln(w, "  none")
		return err
	}
	tw := newTable(w, "ROOM ID", "ROOM", "TYPE", "OCCUPANCY")
	for _, r := range p.OpenRooms {
		row(tw, r.ID, r.RoomNumber, r.RoomType, fmt.Sprintf("%d/%d", r.CurrentOccupancy, r.Capacity))
	}
	return tw.Flush()
}
