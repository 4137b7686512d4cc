package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
)

// ListMembers fetches every member (GET /members).
func (c *HostelClient) ListMembers(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := c.doRequest(ctx, http.MethodGet, "members", nil, nil, &members); err != nil {
		return nil, err
	}
	if members == nil {
		members = []models.Member{}
	}
	return members, nil
}

// CreateMember posts a new member (POST /members). The API only answers with a
// message, so unless it echoes the member the result is built from what was sent
// and carries ID 0.
func (c *HostelClient) CreateMember(ctx context.Context, form dtos.MemberForm) (*models.Member, error) {
	req, err := form.Normalize()
	if err != nil {
		return nil, coercionError("member", err)
	}
	if err := checkPayload("member", req); err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.doRequest(ctx, http.MethodPost, "members", nil, req, &raw); err != nil {
		return nil, err
	}
	member, err := decodeCreated(raw, dtos.CreateMemberResponse.Created, req.ToMember)
	if err != nil {
		return nil, &ServerError{StatusCode: http.StatusOK, Message: err.Error(), Endpoint: c.Endpoint("members")}
	}
	return member, nil
}
