package cmd

import (
	"context"
	"os"

	"github.com/renato0307/shiftclock/internal/logging"
	"github.com/renato0307/shiftclock/internal/services"
)

// StartCmd starts a shift
type StartCmd struct{}

// Run executes the start command
func (s *StartCmd) Run(cli *CLI) error {
	return runTransition(context.Background(), cli, "start", (*services.Controller).Start)
}

// PauseCmd opens a break
type PauseCmd struct{}

// Run executes the pause command
func (p *PauseCmd) Run(cli *CLI) error {
	return runTransition(context.Background(), cli, "pause", (*services.Controller).Pause)
}

// ResumeCmd closes the current break
type ResumeCmd struct{}

// Run executes the resume command
func (r *ResumeCmd) Run(cli *CLI) error {
	return runTransition(context.Background(), cli, "resume", (*services.Controller).Resume)
}

// runTransition restores the owner's shift from the store, applies one
// lifecycle event and prints the resulting status line
func runTransition(ctx context.Context, cli *CLI, name string, apply func(*services.Controller, context.Context) error) error {
	logging.Logger.Info("Executing transition command", "command", name, "owner", cli.Owner)

	controller := cli.Container.NewController(cli.Owner)
	defer controller.Close()

	if err := controller.Load(ctx); err != nil {
		return err
	}
	if err := apply(controller, ctx); err != nil {
		return err
	}

	printStatus(os.Stdout, controller.Snapshot(), cli.Container.Settings.GetTimeFormat())
	return nil
}
