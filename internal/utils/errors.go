// internal/utils/errors.go
package utils

import "errors"

// Local failures raised before anything reaches the network.
var (
	ErrMissingValue    = errors.New("missing_value")
	ErrNotANumber      = errors.New("not_a_number")
	ErrInvalidKey      = errors.New("invalid_encryption_key")
	ErrNotLoggedIn     = errors.New("not_logged_in")
	ErrAlreadyLoggedIn = errors.New("already_logged_in")
	ErrLoginFailed     = errors.New("login_failed")
)

// Codes attached to validation failures and used in console messages.
const (
	ErrCodeValidation   = "validation_error"
	ErrCodeServer       = "server_error"
	ErrCodeConnectivity = "connectivity_error"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeCorrupt      = "corrupt_session"
)
