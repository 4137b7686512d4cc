// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/hostelworks/hostel-console/internal/client"
	"github.com/hostelworks/hostel-console/internal/config"
	"github.com/hostelworks/hostel-console/internal/controllers"
	"github.com/hostelworks/hostel-console/internal/services"
	"github.com/hostelworks/hostel-console/internal/session"
	"github.com/hostelworks/hostel-console/internal/storage"
	"github.com/hostelworks/hostel-console/internal/utils"
)

// App holds everything one console invocation needs.
type App struct {
	Config   *config.Config
	Storage  *storage.SQLiteStore
	Client   *client.HostelClient
	Sessions *session.Store
	Console  *controllers.Console
}

// NewApp opens the session database, wires the client and the pages, and
// restores any persisted session before returning.
func NewApp(ctx context.Context, cfg *config.Config, out io.Writer) (*App, error) {
	store, err := storage.OpenSQLite(cfg.SessionDBPath)
	if err != nil {
		return nil, err
	}

	a, err := wire(ctx, cfg, store, out)
	if err != nil {
		store.Close()
		return nil, err
	}
	return a, nil
}

func wire(ctx context.Context, cfg *config.Config, store *storage.SQLiteStore, out io.Writer) (*App, error) {
	key, err := sessionKey(ctx, cfg, store)
	if err != nil {
		return nil, err
	}

	api, err := client.NewHostelClient(cfg.APIURL, nil, cfg.HTTPTimeout)
	if err != nil {
		return nil, err
	}
	sessions, err := session.NewStore(store, api, key)
	if err != nil {
		return nil, err
	}
	api.Tokens = sessions

	if err := sessions.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	console := controllers.NewConsole(
		sessions,
		services.NewDashboardService(api),
		services.NewRoomsService(api),
		services.NewMembersService(api),
		services.NewPaymentsService(api),
		services.NewReportsService(api),
		services.NewSeeder(api),
		out,
	)

	utils.Logger.WithFields(logrus.Fields{
		"api":       cfg.APIURL,
		"encrypted": cfg.EncryptsSession(),
	}).Debug("Console ready")
	return &App{
		Config:   cfg,
		Storage:  store,
		Client:   api,
		Sessions: sessions,
		Console:  console,
	}, nil
}

// sessionKey picks the token encryption key: an explicit key wins, else one
// derived from the passphrase and this database's salt, else none.
func sessionKey(ctx context.Context, cfg *config.Config, store *storage.SQLiteStore) ([]byte, error) {
	if !cfg.EncryptsSession() {
		return nil, nil
	}
	if len(cfg.SessionKey) > 0 {
		return cfg.SessionKey, nil
	}
	salt, err := store.Salt(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session salt: %w", err)
	}
	key, err := utils.DeriveKey([]byte(cfg.SessionPassphrase), salt)
	if err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return key, nil
}

func (a *App) Close() error {
	if a.Storage == nil {
		return nil
	}
	return a.Storage.Close()
}
