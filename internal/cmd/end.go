package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/renato0307/shiftclock/internal/domain"
	"github.com/renato0307/shiftclock/internal/logging"
)

// EndCmd ends the current shift
type EndCmd struct {
	Yes bool `help:"End without confirmation" short:"y"`
}

// Run executes the end command
func (e *EndCmd) Run(cli *CLI) error {
	ctx := context.Background()
	logging.Logger.Info("Executing transition command", "command", "end", "owner", cli.Owner, "yes", e.Yes)

	controller := cli.Container.NewController(cli.Owner)
	defer controller.Close()

	if err := controller.Load(ctx); err != nil {
		return err
	}

	// Illegal ends fail without prompting
	if domain.CanTransition(controller.State(), domain.EventEnd) && !e.Yes && isatty.IsTerminal(os.Stdin.Fd()) {
		confirmed, err := confirmEnd(controller.Snapshot())
		if err != nil {
			return err
		}
		if !confirmed {
			logging.Logger.Info("User cancelled end of shift", "owner", cli.Owner)
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := controller.End(ctx); err != nil {
		return err
	}

	printStatus(os.Stdout, controller.Snapshot(), cli.Container.Settings.GetTimeFormat())
	return nil
}

func confirmEnd(snap domain.Snapshot) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("End the current shift?").
				Description(fmt.Sprintf("%s so far. A completed shift cannot be resumed.", snap.Clock)).
				Affirmative("End shift").
				Negative("Keep working").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return confirmed, nil
}
