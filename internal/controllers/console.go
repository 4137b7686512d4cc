// internal/controllers/console.go
package controllers

import (
	"context"
	"io"
	"sync"

	"github.com/hostelworks/hostel-console/internal/services"
	"github.com/hostelworks/hostel-console/internal/session"
	"github.com/hostelworks/hostel-console/internal/utils"
)

// Console runs the console commands. Every command except login and logout
// needs an active session; login refuses to run while one is active.
type Console struct {
	sessions  *session.Store
	dashboard *services.DashboardService
	rooms     *services.RoomsService
	members   *services.MembersService
	payments  *services.PaymentsService
	reports   *services.ReportsService
	seeder    *services.Seeder

	outMu sync.Mutex
	out   io.Writer
}

func NewConsole(
	sessions *session.Store,
	dashboard *services.DashboardService,
	rooms *services.RoomsService,
	members *services.MembersService,
	payments *services.PaymentsService,
	reports *services.ReportsService,
	seeder *services.Seeder,
	out io.Writer,
) *Console {
	return &Console{
		sessions:  sessions,
		dashboard: dashboard,
		rooms:     rooms,
		members:   members,
		payments:  payments,
		reports:   reports,
		seeder:    seeder,
		out:       out,
	}
}

func (c *Console) requireSession() (session.Session, error) {
	sess, ok := c.sessions.CurrentUser()
	if !ok {
		return session.Session{}, utils.ErrNotLoggedIn
	}
	return sess, nil
}

func (c *Console) requireGuest() error {
	if _, ok := c.sessions.CurrentUser(); ok {
		return utils.ErrAlreadyLoggedIn
	}
	return nil
}

// page runs one page load as a task tied to ctx and waits for it.
func page[T any](ctx context.Context, load func(context.Context) (T, error)) (T, error) {
	task := services.StartPage(ctx, load)
	defer task.Cancel()
	return task.Wait()
}

// print writes under the output lock so a watched dashboard never interleaves.
func (c *Console) print(render func(w io.Writer) error) error {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	return render(c.out)
}
