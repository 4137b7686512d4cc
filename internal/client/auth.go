package client

import (
	"context"
	"net/http"

	"github.com/hostelworks/hostel-console/internal/dtos"
)

// Authenticate exchanges credentials for a bearer token (POST /login).
// A response without a token is returned as-is; deciding what that means is
// up to the session store.
func (c *HostelClient) Authenticate(ctx context.Context, username, password string) (*dtos.LoginResponse, error) {
	req := dtos.LoginRequest{Username: username, Password: password}
	if err := checkPayload("credentials", req); err != nil {
		return nil, err
	}

	var resp dtos.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
