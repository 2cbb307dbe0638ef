package cmd

import (
	"strings"

	"github.com/marcus/freeform/internal/models"
	"github.com/marcus/freeform/internal/output"
	"github.com/marcus/freeform/internal/store"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <column> <label>...",
	Short: "Add a card or folder to a column",
	Long: `Add a card to the end of a column. The column is given by id or name.
With --folder the new entry is a folder; with --into the card is filed
inside an existing folder instead.`,
	GroupID: "core",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := store.Open(getBoard())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer db.Close()

		label := strings.Join(args[1:], " ")
		var it models.Item
		if folderID, _ := cmd.Flags().GetString("into"); folderID != "" {
			it, err = db.AddToFolder(ctx, folderID, label)
		} else {
			b, lerr := db.LoadBoard(ctx)
			if lerr != nil {
				output.Error("%v", lerr)
				return lerr
			}
			col, ferr := findColumn(b, args[0])
			if ferr != nil {
				output.Error("%v", ferr)
				return ferr
			}
			kind := models.KindItem
			if folder, _ := cmd.Flags().GetBool("folder"); folder {
				kind = models.KindContainer
			}
			it, err = db.AddItem(ctx, col.ID, label, kind)
		}
		if err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("ADDED %s %s", it.ID, it.Label)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:     "rm <item-id>...",
	Short:   "Delete cards; a deleted folder takes its contents with it",
	GroupID: "core",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(getBoard())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer db.Close()

		for _, id := range args {
			if err := db.DeleteItem(cmd.Context(), id); err != nil {
				output.Error("%v", err)
				return err
			}
			output.Success("DELETED %s", id)
		}
		return nil
	},
}

var disableCmd = &cobra.Command{
	Use:     "disable <item-id>...",
	Short:   "Pin cards so they cannot be selected or dragged",
	GroupID: "core",
	Args:    cobra.MinimumNArgs(1),
	RunE:    setDisabled(true),
}

var enableCmd = &cobra.Command{
	Use:     "enable <item-id>...",
	Short:   "Unpin cards",
	GroupID: "core",
	Args:    cobra.MinimumNArgs(1),
	RunE:    setDisabled(false),
}

func setDisabled(disabled bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(getBoard())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer db.Close()

		for _, id := range args {
			if err := db.SetDisabled(cmd.Context(), id, disabled); err != nil {
				output.Error("%v", err)
				return err
			}
		}
		return nil
	}
}

func init() {
	rootCmd.AddCommand(addCmd, removeCmd, disableCmd, enableCmd)

	addCmd.Flags().Bool("folder", false, "Create a folder instead of a card")
	addCmd.Flags().String("into", "", "File the card inside this folder")
}
