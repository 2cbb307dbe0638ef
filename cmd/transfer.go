package cmd

import (
	"io"
	"os"

	"github.com/marcus/freeform/internal/output"
	"github.com/marcus/freeform/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Write the board as YAML",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(getBoard())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer db.Close()

		var w io.Writer = cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		return db.WriteYAML(cmd.Context(), w)
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add the columns and cards of a YAML board",
	Long: `Import a board written by 'freeform export'. Columns are appended to
the current board; use 'freeform init' first for an empty one.`,
	GroupID: "system",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer f.Close()

		db, err := store.Open(getBoard())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer db.Close()

		if err := db.ReadYAML(cmd.Context(), f); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("IMPORTED %s", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}
