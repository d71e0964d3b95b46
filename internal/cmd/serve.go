package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/renato0307/shiftclock/internal/config"
	"github.com/renato0307/shiftclock/internal/server"
	"github.com/renato0307/shiftclock/internal/ui"
)

// ServeCmd serves the live clock over SSH
type ServeCmd struct {
	AuthorizedKeys string `help:"authorized_keys file checked on login (default ~/.ssh/authorized_keys)"`
	Host           string `help:"Address to bind (overrides settings)"`
	HistoryLimit   int    `help:"Rows shown in the history panel (0 = all)" default:"14"`
	Port           int    `help:"Port to listen on (overrides settings)"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	settings := cli.Container.Settings
	host := s.Host
	if host == "" {
		host = settings.GetSSHHost()
	}
	port := s.Port
	if port == 0 {
		port = settings.GetSSHPort()
	}

	srv, err := server.NewServer(server.Config{
		AuthorizedKeysPath: config.ExpandPath(s.AuthorizedKeys),
		Host:               host,
		HostKeyPath:        filepath.Join(config.GetSSHDir(), "id_ed25519"),
		Port:               port,
		View: ui.Options{
			HistoryLimit: s.HistoryLimit,
			SyncInterval: cli.Container.SyncInterval(),
			TimeFormat:   settings.GetTimeFormat(),
		},
	}, func(owner string) server.SessionController {
		return cli.Container.NewController(owner)
	}, cli.Container.HistoryService)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("SSH server listening on %s\n", srv.Address())
	return srv.Run(ctx)
}
