package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/utils"
)

// ServerError is returned when the API answered with a non-2xx status
// (or with a 2xx body that could not be understood).
type ServerError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *ServerError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return fmt.Sprintf("Server error: %d - %s", e.StatusCode, msg)
}

func (e *ServerError) Code() string {
	if e.StatusCode == http.StatusUnauthorized {
		return utils.ErrCodeUnauthorized
	}
	return utils.ErrCodeServer
}

// ConnectivityError is returned when a request went out but no response came back.
type ConnectivityError struct {
	Endpoint string
	Err      error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("No response from server at %s. Please check that the hostel API is running.", e.Endpoint)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

func (e *ConnectivityError) Code() string {
	return utils.ErrCodeConnectivity
}

// PreconditionError is returned when a request could not be built, typically
// because the input failed a local check. Nothing was sent.
type PreconditionError struct {
	Message string
	Details []dtos.ValidationErrorDetail
	Err     error
}

func (e *PreconditionError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Message)
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

func (e *PreconditionError) Code() string {
	return utils.ErrCodeValidation
}

// ErrorCode returns the code of the first client error in err's chain, or ""
// when err did not come from the client.
func ErrorCode(err error) string {
	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var srvErr *ServerError
	return errors.As(err, &srvErr) && srvErr.StatusCode == http.StatusUnauthorized
}
