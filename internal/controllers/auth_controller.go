// internal/controllers/auth_controller.go
package controllers

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/hostelworks/hostel-console/internal/utils"
)

// Login signs in. It refuses when a session is already active.
func (c *Console) Login(ctx context.Context, username, password string) error {
	if err := c.requireGuest(); err != nil {
		return err
	}
	if !c.sessions.Login(ctx, username, password) {
		return utils.ErrLoginFailed
	}
	sess, _ := c.sessions.CurrentUser()
	name := sess.User.String("username")
	if name == "" {
		name = username
	}
	return c.print(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Logged in as %s\n", name)
		return err
	})
}

// Logout always succeeds from the user's point of view; a storage failure is
// still returned so it can be reported.
func (c *Console) Logout(ctx context.Context) error {
	err := c.sessions.Logout(ctx)
	if perr := c.print(func(w io.Writer) error {
		_, err := fmt.Fprintln(w, "Logged out")
		return err
	}); perr != nil && err == nil {
		err = perr
	}
	return err
}

// WhoAmI prints the active profile and, for JWT tokens, their claims.
func (c *Console) WhoAmI(_ context.Context) error {
	sess, err := c.requireSession()
	if err != nil {
		return err
	}

	return c.print(func(w io.Writer) error {
		tw := newTable(w, "FIELD", "VALUE")
		keys := make([]string, 0, len(sess.User))
		for k := range sess.User {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			row(tw, k, sess.User[k])
		}
		if len(keys) == 0 {
			row(tw, "profile", "(none returned by the server)")
		}

		if claims, err := sess.Claims(); err == nil {
			if sub, err := claims.GetSubject(); err == nil && sub != "" {
				row(tw, "token subject", sub)
			}
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				row(tw, "token expires", exp.Time.UTC().Format(time.RFC3339))
			}
		}
		return tw.Flush()
	})
}
