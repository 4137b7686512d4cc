package dtos

import "github.com/hostelworks/hostel-console/internal/models"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token and, optionally, the user's profile.
type LoginResponse struct {
	Token   string             `json:"token"`
	Message string             `json:"message,omitempty"`
	User    models.UserProfile `json:"user,omitempty"`
}
