// Package session owns the console's authentication state: the bearer token,
// the user's profile and their persisted copy. Nothing else reads or writes
// the session keys.
package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/hostelworks/hostel-console/internal/models"
)

// Storage keys. Both are written together and cleared together.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Session is an authenticated identity. User may be empty but is never nil
// for a session handed out by the Store.
type Session struct {
	Token string
	User  models.UserProfile
}

// Claims decodes the token as a JWT without verifying it. The token is
// opaque to the console, so this is for display only and fails for
// tokens that are not JWTs.
func (s Session) Claims() (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s Session) clone() Session {
	return Session{Token: s.Token, User: s.User.Clone()}
}
