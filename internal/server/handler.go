package server

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"github.com/renato0307/shiftclock/internal/logging"
	"github.com/renato0307/shiftclock/internal/ui"
)

// teaHandler creates a watch model for each SSH session. The controller lives
// as long as the session and is closed when the connection ends.
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	owner := sess.User()
	sessionID := fmt.Sprintf("%s@%s", owner, sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"owner", owner,
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	controller := s.controllers(owner)
	go closeWhenDone(sess.Context(), controller, sessionID, time.Now())

	model := ui.NewModel(sess.Context(), controller, s.history, s.config.View)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func closeWhenDone(ctx context.Context, controller SessionController, sessionID string, startTime time.Time) {
	<-ctx.Done()
	if err := controller.Close(); err != nil {
		logging.Logger.Error("Failed to close controller for SSH session", "error", err, "session_id", sessionID)
	}
	logging.Logger.Info("SSH session ended",
		"session_id", sessionID,
		"duration", time.Since(startTime).String())
}
