package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/freeform/internal/config"
	"github.com/marcus/freeform/internal/events"
	"github.com/marcus/freeform/internal/output"
	"github.com/marcus/freeform/internal/store"
	"github.com/marcus/freeform/pkg/monitor"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"ui"},
	Short:   "Open the interactive board",
	Long: `Open the board in the terminal. Drag cards with the mouse, or use the
keyboard: press ? for the bindings.

Settings come from .freeform/config.json; --set overrides one for this run.
--events picks the notifications summarized on the status line, e.g.
--events=drag-start,drop. Logs are written to .freeform/freeform.log while
the board is open.`,
	GroupID: "core",
	RunE:    runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)

	boardCmd.Flags().StringToString("set", nil, "Override a setting for this run (key=value)")
	boardCmd.Flags().String("events", "drop,reorder,select", "Notifications shown on the status line (comma-separated)")
}

func runBoard(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("board needs a terminal; use 'freeform show' for plain output")
	}
	dir := getBoard()

	cfg, err := config.Load(dir)
	if err != nil {
		output.Error("%v", err)
		return err
	}
	overrides, _ := cmd.Flags().GetStringToString("set")
	for k, v := range overrides {
		if err := cfg.Set(k, v); err != nil {
			output.Error("%v", err)
			return err
		}
	}

	list, _ := cmd.Flags().GetString("events")
	feed, err := events.ParseKinds(list)
	if err != nil {
		output.Error("%v", err)
		return err
	}

	db, err := store.Open(dir)
	if err != nil {
		output.Error("%v", err)
		return err
	}
	defer db.Close()

	// The terminal belongs to the board; logs go to a file.
	f, err := os.OpenFile(dir.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	logger, err := newLogger(f, logLevel)
	if err != nil {
		return err
	}
	logger.Info("board opened", "root", dir.Root, "found", dir.Source.String(), "version", version)

	p := tea.NewProgram(
		monitor.New(db, cfg, logger).WithFeed(feed...),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		slog.Error("board exited", "err", err)
		return err
	}
	return nil
}
