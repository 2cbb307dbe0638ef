package cmd

import (
	"errors"

	"github.com/marcus/freeform/internal/output"
	"github.com/marcus/freeform/internal/store"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move <item-id>...",
	Short: "Move cards without the board",
	Long: `Move cards the way a drop on the board would.

  --to COLUMN [--index N]   insert into a column (default: at the end)
  --into FOLDER             file into a folder
  --out-of FOLDER           take out of a folder, right after it

Within one column --index is an insertion index into the current order,
so moving a card to just before the card at index N is --index N.`,
	GroupID: "core",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		to, _ := cmd.Flags().GetString("to")
		into, _ := cmd.Flags().GetString("into")
		outOf, _ := cmd.Flags().GetString("out-of")
		index, _ := cmd.Flags().GetInt("index")

		set := 0
		for _, s := range []string{to, into, outOf} {
			if s != "" {
				set++
			}
		}
		if set != 1 {
			err := errors.New("exactly one of --to, --into or --out-of is required")
			output.Error("%v", err)
			return err
		}

		db, err := store.Open(getBoard())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer db.Close()

		switch {
		case into != "":
			err = db.MoveIntoFolder(ctx, into, args)
		case outOf != "":
			err = db.MoveOutOfFolder(ctx, outOf, args)
		default:
			err = moveToColumn(cmd, db, to, args, index)
		}
		if err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("MOVED %d", len(args))
		return nil
	},
}

// moveToColumn reorders when every card already sits at the top level of
// the column, and moves otherwise.
func moveToColumn(cmd *cobra.Command, db *store.DB, ref string, ids []string, index int) error {
	ctx := cmd.Context()
	b, err := db.LoadBoard(ctx)
	if err != nil {
		return err
	}
	col, err := findColumn(b, ref)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("index") {
		index = len(col.Items)
	}

	local := true
	for _, id := range ids {
		found := false
		for _, it := range col.Items {
			if it.ID == id {
				found = true
				break
			}
		}
		local = local && found
	}
	if local {
		return db.Reorder(ctx, col.ID, ids, index)
	}
	return db.MoveToColumn(ctx, col.ID, ids, index)
}

func init() {
	rootCmd.AddCommand(moveCmd)

	moveCmd.Flags().String("to", "", "Target column id or name")
	moveCmd.Flags().Int("index", 0, "Insertion index in the target column")
	moveCmd.Flags().String("into", "", "Target folder id")
	moveCmd.Flags().String("out-of", "", "Folder to take the cards out of")
}
