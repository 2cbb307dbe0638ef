package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/marcus/freeform/internal/output"
	"github.com/marcus/freeform/internal/store"
	"github.com/marcus/freeform/internal/workdir"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var defaultColumns = []string{"Todo", "Doing", "Done"}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a board in the current directory",
	Long: `Create .freeform/board.db with a name and a set of columns.

Without flags on a terminal the name and columns are asked for
interactively.`,
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		columns, _ := cmd.Flags().GetStringSlice("column")

		if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("column") && term.IsTerminal(int(os.Stdin.Fd())) {
			var err error
			name, columns, err = askBoard(name, columns)
			if err != nil {
				return err
			}
		}

		if err := createBoard(cmd.Context(), getBoard(), name, columns); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("INITIALIZED %s (%s)", name, strings.Join(columns, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringP("name", "n", "Board", "Board name")
	initCmd.Flags().StringSliceP("column", "c", defaultColumns, "Column names, in order")
}

// askBoard runs the interactive setup form.
func askBoard(name string, columns []string) (string, []string, error) {
	cols := strings.Join(columns, ", ")
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Board name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Columns").
				Description("Comma separated, left to right").
				Value(&cols),
		),
	)
	if err := form.Run(); err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(name), splitColumns(cols), nil
}

func splitColumns(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// createBoard initializes the store and adds the columns. Running it on an
// existing board is an error.
func createBoard(ctx context.Context, dir workdir.Board, name string, columns []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(columns) == 0 {
		return errors.New("a board needs at least one column")
	}
	db, err := store.Initialize(dir)
	if err != nil {
		return err
	}
	defer db.Close()

	existing, err := db.Columns(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return fmt.Errorf("board already initialized in %s", dir.Root)
	}
	if err := db.SetBoardName(ctx, name); err != nil {
		return err
	}
	for _, c := range columns {
		if _, err := db.AddColumn(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
