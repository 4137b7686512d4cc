package dtos

import (
	"fmt"
	"strings"

	"github.com/hostelworks/hostel-console/internal/models"
	"github.com/hostelworks/hostel-console/internal/utils"
)

type MemberForm struct {
	Name             string
	Email            string
	Phone            string
	RoomID           string
	EmergencyContact string
}

// CreateMemberRequest is the POST /members body.
type CreateMemberRequest struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"required"`
	RoomID           int    `json:"room_id" validate:"gt=0"`
	EmergencyContact string `json:"emergency_contact"`
}

// CreateMemberResponse: the API may echo the member back, or only a message.
type CreateMemberResponse struct {
	Message string         `json:"message"`
	Member  *models.Member `json:"member"`
}

func (r CreateMemberResponse) Created() *models.Member {
	return r.Member
}

func (f MemberForm) Normalize() (CreateMemberRequest, error) {
	roomID, err := utils.CoerceInt(f.RoomID)
	if err != nil {
		return CreateMemberRequest{}, fmt.Errorf("room_id: %w", err)
	}
	return CreateMemberRequest{
		Name:             strings.TrimSpace(f.Name),
		Email:            strings.TrimSpace(f.Email),
		Phone:            strings.TrimSpace(f.Phone),
		RoomID:           roomID,
		EmergencyContact: f.EmergencyContact,
	}, nil
}

// ToMember builds the member the server accepted when it did not echo one back.
func (r CreateMemberRequest) ToMember() *models.Member {
	return &models.Member{
		Name:             r.Name,
		Email:            r.Email,
		Phone:            r.Phone,
		RoomID:           utils.Ptr(r.RoomID),
		EmergencyContact: r.EmergencyContact,
	}
}
