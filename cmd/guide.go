package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const guideMarkdown = `# freeform

A board of **columns**, **cards** and **folders**. Everything is arranged by
dragging and saved to ` + "`.freeform/board.db`" + `.

## Getting started

    freeform init --name "Sprint" -c Todo,Doing,Done
    freeform add todo "Write the release notes"
    freeform add todo --folder "Later"
    freeform board

## Mouse

| Action | Result |
|---|---|
| Drag a card | Reorder it; the gap opens where it will land |
| Drag onto another column | Move it there |
| Drop on a folder | File it inside; the folder turns green |
| Click, Shift-click, Ctrl-click | Select, select a range, toggle |
| Drag on empty space | Lasso select |
| Double-click a folder | Open it as its own lane |

Dragging near the top or bottom edge scrolls the board.

## Keyboard

Press **?** on the board for every binding. **H**/**L** move the selection
within its column, **J**/**K** move it to the next or previous lane and
**/** selects cards by fuzzy match.

## Settings

    freeform config list
    freeform config set drag_threshold 8
    freeform board --set auto_scroll.max_speed=30
`

var guideCmd = &cobra.Command{
	Use:     "guide",
	Short:   "Show how to use the board",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := renderGuide(term.IsTerminal(int(os.Stdout.Fd())))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}

// renderGuide styles the guide for a terminal, or returns the markdown as
// is when output is piped.
func renderGuide(styled bool) (string, error) {
	if !styled {
		return guideMarkdown, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(guideMarkdown)
}
