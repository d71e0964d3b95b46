package cmd

import (
	"time"

	adapterclock "github.com/renato0307/shiftclock/internal/adapters/clock"
	adapterstorage "github.com/renato0307/shiftclock/internal/adapters/storage"
	"github.com/renato0307/shiftclock/internal/config"
	"github.com/renato0307/shiftclock/internal/ports"
	"github.com/renato0307/shiftclock/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	Clock          ports.Clock
	HistoryService *services.HistoryService
	Settings       *config.Settings
	Store          ports.SessionStore
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(settings *config.Settings) (*Container, error) {
	store, err := adapterstorage.NewSQLiteStore(config.GetDBPath())
	if err != nil {
		return nil, err
	}

	clock := adapterclock.System{}

	return &Container{
		Clock:          clock,
		HistoryService: services.NewHistoryService(store, clock, historyFormats(settings)),
		Settings:       settings,
		Store:          store,
	}, nil
}

// NewController creates a controller for owner. Callers must Close it.
func (c *Container) NewController(owner string) *services.Controller {
	return services.NewController(owner, c.Store, c.Clock, c.Settings.GetRefreshInterval())
}

// SyncInterval returns how often interactive views reload from the store
func (c *Container) SyncInterval() time.Duration {
	return c.Settings.GetSyncInterval()
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

func historyFormats(settings *config.Settings) services.HistoryFormats {
	return services.HistoryFormats{
		DateFormat: settings.GetDateFormat(),
		Location:   time.Local,
		TimeFormat: settings.GetTimeFormat(),
	}
}
