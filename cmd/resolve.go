package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/marcus/freeform/internal/config"
	"github.com/marcus/freeform/internal/geom"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// layoutFile is the input of the resolve command. JSON is accepted too,
// being valid YAML.
type layoutFile struct {
	Pointer struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
	} `yaml:"pointer"`
	Items   []layoutItem `yaml:"items"`
	Exclude []int        `yaml:"exclude"`
}

type layoutItem struct {
	Index int     `yaml:"index"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Compute the drop index for a pointer over a layout",
	Long: `Read a layout (YAML or JSON) and print the insertion index a drag would
resolve to, or "no-change" when the pointer is over the middle of an item.

  pointer: {x: 130, y: 20}
  exclude: [0]            # indices being dragged
  items:
    - {index: 0, x: 0,   y: 0, w: 100, h: 50}
    - {index: 1, x: 110, y: 0, w: 100, h: 50}

Tolerances come from .freeform/config.json when present. Reads stdin
without a file argument.`,
	GroupID: "system",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}

		cfg, err := config.Load(getBoard())
		if err != nil {
			return err
		}
		res, err := resolveLayout(r, cfg.ZoneOptions().Resolver)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

// resolveLayout decodes a layout and resolves it, returning the index or
// "no-change".
func resolveLayout(r io.Reader, res geom.Resolver) (string, error) {
	var lf layoutFile
	if err := yaml.NewDecoder(r).Decode(&lf); err != nil {
		return "", fmt.Errorf("decode layout: %w", err)
	}
	entries := make([]geom.Entry, len(lf.Items))
	for i, it := range lf.Items {
		entries[i] = geom.Entry{
			Index: it.Index,
			Rect:  geom.Rect{X: it.X, Y: it.Y, W: it.W, H: it.H},
		}
	}
	idx, ok := res.Resolve(
		geom.Point{X: lf.Pointer.X, Y: lf.Pointer.Y},
		entries,
		geom.NewIndexSet(lf.Exclude...),
	)
	if !ok {
		return "no-change", nil
	}
	return fmt.Sprint(idx), nil
}
