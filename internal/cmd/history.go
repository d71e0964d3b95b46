package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/renato0307/shiftclock/internal/logging"
	"github.com/renato0307/shiftclock/internal/services"
	"github.com/renato0307/shiftclock/internal/theme"
)

// HistoryCmd lists past shifts
type HistoryCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
	Limit  int    `help:"Show only the N most recent shifts (0 = all)" short:"n" default:"0"`
}

// Run executes the history command
func (h *HistoryCmd) Run(cli *CLI) error {
	logging.Logger.Info("Executing history command", "owner", cli.Owner, "limit", h.Limit)

	rows, totals, err := cli.Container.HistoryService.History(context.Background(), cli.Owner, h.Limit)
	if err != nil {
		return err
	}

	if h.Format == "json" {
		return printJSON(map[string]any{
			"owner":    cli.Owner,
			"sessions": rows,
			"totals":   totals,
		})
	}

	if len(rows) == 0 {
		fmt.Println("No shifts recorded yet.")
		return nil
	}

	printHistoryTable(os.Stdout, rows, totals)
	return nil
}

// RenderHistoryTable renders rows as a bordered table
func RenderHistoryTable(rows []services.HistoryRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(theme.TableBorderStyle).
		Headers("Date", "Start", "Breaks", "Paused", "End", "Worked").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeaderStyle
			}
			return theme.TableCellStyle
		})

	for _, r := range rows {
		t.Row(r.Date, r.Start, r.Pauses, r.Paused, r.End, r.Worked)
	}
	return t.Render()
}

func printHistoryTable(w io.Writer, rows []services.HistoryRow, totals services.HistoryTotals) {
	fmt.Fprintln(w, RenderHistoryTable(rows))
	fmt.Fprintln(w, theme.TotalsStyle.Render("Total: "+totals.String()))
}
