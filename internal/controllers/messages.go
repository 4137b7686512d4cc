// internal/controllers/messages.go
package controllers

import (
	"context"
	"errors"

	"github.com/hostelworks/hostel-console/internal/client"
	"github.com/hostelworks/hostel-console/internal/utils"
)

// Describe turns a command error into the line shown to the user.
func Describe(err error) string {
	var (
		srvErr  *client.ServerError
		connErr *client.ConnectivityError
		preErr  *client.PreconditionError
	)
	switch {
	case errors.Is(err, utils.ErrNotLoggedIn):
		return "Not logged in. Run 'hostel-console login' first."
	case errors.Is(err, utils.ErrAlreadyLoggedIn):
		return "Already logged in. Run 'hostel-console logout' to switch user."
	case errors.Is(err, utils.ErrLoginFailed):
		return "Login failed: invalid credentials or the server could not be reached."
	case client.IsUnauthorized(err):
		return "The server rejected the session (401). Log out and log in again."
	case errors.As(err, &srvErr), errors.As(err, &connErr), errors.As(err, &preErr):
		return err.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Cancelled."
	default:
		return err.Error()
	}
}
