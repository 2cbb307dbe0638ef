package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/marcus/freeform/internal/output"
	"github.com/marcus/freeform/internal/store"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print the board as a tree",
	GroupID: "core",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(getBoard())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer db.Close()

		b, err := db.LoadBoard(cmd.Context())
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(output.BoardTree(b))
		}
		ids, _ := cmd.Flags().GetBool("ids")
		depth, _ := cmd.Flags().GetInt("depth")
		fmt.Println(output.RenderBoard(b, output.TreeRenderOptions{ShowIDs: ids, MaxDepth: depth}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("ids", false, "Show item ids")
	showCmd.Flags().Int("depth", 0, "Limit nesting depth (0 = unlimited)")
	showCmd.Flags().Bool("json", false, "Output the tree as JSON")
}

// findColumn resolves a column by id or case-insensitive name.
func findColumn(b *store.Board, ref string) (*store.Column, error) {
	if col, ok := b.Column(ref); ok {
		return col, nil
	}
	for i := range b.Columns {
		if strings.EqualFold(b.Columns[i].Name, ref) {
			return &b.Columns[i], nil
		}
	}
	return nil, &store.NotFoundError{Kind: "column", ID: ref}
}
