package cmd

import (
	"context"
	"os"
)

// StatusCmd shows the owner's current shift
type StatusCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the status command
func (s *StatusCmd) Run(cli *CLI) error {
	controller := cli.Container.NewController(cli.Owner)
	defer controller.Close()

	if err := controller.Load(context.Background()); err != nil {
		return err
	}

	snap := controller.Snapshot()
	if s.Format == "json" {
		return printStatusJSON(os.Stdout, snap)
	}
	printStatus(os.Stdout, snap, cli.Container.Settings.GetTimeFormat())
	return nil
}
