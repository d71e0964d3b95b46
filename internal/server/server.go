package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"
	"golang.org/x/sync/errgroup"

	"github.com/renato0307/shiftclock/internal/logging"
	"github.com/renato0307/shiftclock/internal/ui"
)

const shutdownTimeout = 30 * time.Second

// SessionController is a ui.SessionController the server closes when the SSH session ends
type SessionController interface {
	ui.SessionController
	Close() error
}

// ControllerFactory creates a controller for the shift of owner
type ControllerFactory func(owner string) SessionController

// Config holds the server settings
type Config struct {
	AuthorizedKeysPath string
	Host               string
	HostKeyPath        string
	Port               int
	View               ui.Options
}

// Server serves the live clock over SSH. The SSH user name is the owner.
type Server struct {
	config      Config
	controllers ControllerFactory
	history     ui.HistoryProvider
	wishServer  *ssh.Server
}

// NewServer creates a new SSH server instance
func NewServer(config Config, controllers ControllerFactory, history ui.HistoryProvider) (*Server, error) {
	if config.AuthorizedKeysPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		config.AuthorizedKeysPath = filepath.Join(homeDir, ".ssh", "authorized_keys")
	}
	if err := os.MkdirAll(filepath.Dir(config.HostKeyPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create SSH directory: %w", err)
	}

	s := &Server{
		config:      config,
		controllers: controllers,
		history:     history,
	}

	// Middleware executes in reverse order (last to first)
	wishServer, err := wish.NewServer(
		wish.WithAddress(s.Address()),
		wish.WithHostKeyPath(config.HostKeyPath),
		wish.WithPublicKeyAuth(s.authorize),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(), // Require PTY
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Address returns host:port
func (s *Server) Address() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// Run serves until ctx is canceled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Logger.Info("Starting SSH server", "address", s.Address())
		if err := s.wishServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("SSH server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logging.Logger.Info("Shutting down SSH server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.wishServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown SSH server: %w", err)
		}
		logging.Logger.Info("SSH server stopped")
		return nil
	})

	return g.Wait()
}
