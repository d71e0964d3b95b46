package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/shiftclock/internal/logging"
	"github.com/renato0307/shiftclock/internal/ui"
)

// WatchCmd runs the live clock in the terminal
type WatchCmd struct {
	HistoryLimit int `help:"Rows shown in the history panel (0 = all)" default:"14"`
}

// Run executes the watch command
func (w *WatchCmd) Run(cli *CLI) error {
	logging.Logger.Info("Starting watch", "owner", cli.Owner)

	controller := cli.Container.NewController(cli.Owner)
	defer controller.Close()

	model := ui.NewModel(context.Background(), controller, cli.Container.HistoryService, w.viewOptions(cli))

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.Logger.Error("Watch program error", "error", err)
		return fmt.Errorf("error running program: %w", err)
	}

	logging.Logger.Info("Watch exited normally")
	return nil
}

func (w *WatchCmd) viewOptions(cli *CLI) ui.Options {
	return ui.Options{
		HistoryLimit: w.HistoryLimit,
		SyncInterval: cli.Container.SyncInterval(),
		TimeFormat:   cli.Container.Settings.GetTimeFormat(),
	}
}
