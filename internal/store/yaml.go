package store

import (
	"context"
	"fmt"
	"io"

	"github.com/marcus/freeform/internal/models"
	"gopkg.in/yaml.v3"
)

// BoardFile is the portable YAML form of a board. Ids are not exported;
// importing always creates fresh ones.
type BoardFile struct {
	Name    string       `yaml:"name"`
	Columns []ColumnFile `yaml:"columns"`
}

// ColumnFile is one column in a BoardFile.
type ColumnFile struct {
	Name  string     `yaml:"name"`
	Items []ItemFile `yaml:"items,omitempty"`
}

// ItemFile is a card, or a folder with the cards inside it.
type ItemFile struct {
	Label    string          `yaml:"label"`
	Kind     models.ItemKind `yaml:"kind,omitempty"`
	Disabled bool            `yaml:"disabled,omitempty"`
	Items    []ItemFile      `yaml:"items,omitempty"`
}

// Export converts the stored board to its file form.
func (db *DB) Export(ctx context.Context) (*BoardFile, error) {
	b, err := db.LoadBoard(ctx)
	if err != nil {
		return nil, err
	}
	f := &BoardFile{Name: b.Name}
	for _, col := range b.Columns {
		cf := ColumnFile{Name: col.Name}
		for _, it := range col.Items {
			itf := itemFile(it)
			for _, child := range col.Folders[it.ID] {
				itf.Items = append(itf.Items, itemFile(child))
			}
			cf.Items = append(cf.Items, itf)
		}
		f.Columns = append(f.Columns, cf)
	}
	return f, nil
}

func itemFile(it models.Item) ItemFile {
	f := ItemFile{Label: it.Label, Disabled: it.Disabled}
	if it.Kind == models.KindContainer {
		f.Kind = it.Kind
	}
	return f
}

// Import appends the columns of f to the board. The board name is taken
// from f when it has one.
func (db *DB) Import(ctx context.Context, f *BoardFile) error {
	if f.Name != "" {
		if err := db.SetBoardName(ctx, f.Name); err != nil {
			return err
		}
	}
	for _, cf := range f.Columns {
		col, err := db.AddColumn(ctx, cf.Name)
		if err != nil {
			return err
		}
		for _, itf := range cf.Items {
			if len(itf.Items) > 0 && itf.Kind != models.KindContainer {
				return fmt.Errorf("%s/%s: only folders can hold items", cf.Name, itf.Label)
			}
			it, err := db.AddItem(ctx, col.ID, itf.Label, itf.Kind)
			if err != nil {
				return fmt.Errorf("%s/%s: %w", cf.Name, itf.Label, err)
			}
			if itf.Disabled {
				if err := db.SetDisabled(ctx, it.ID, true); err != nil {
					return err
				}
			}
			for _, child := range itf.Items {
				if child.Kind == models.KindContainer {
					return fmt.Errorf("%s/%s/%s: folders cannot be nested", cf.Name, itf.Label, child.Label)
				}
				c, err := db.AddToFolder(ctx, it.ID, child.Label)
				if err != nil {
					return err
				}
				if child.Disabled {
					if err := db.SetDisabled(ctx, c.ID, true); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// WriteYAML exports the board as YAML.
func (db *DB) WriteYAML(ctx context.Context, w io.Writer) error {
	f, err := db.Export(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	return enc.Close()
}

// ReadYAML imports a YAML board.
func (db *DB) ReadYAML(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	var f BoardFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse board: %w", err)
	}
	return db.Import(ctx, &f)
}
