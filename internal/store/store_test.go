package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/marcus/freeform/internal/models"
	"github.com/marcus/freeform/internal/workdir"
	"gopkg.in/yaml.v3"
)

func newDB(t *testing.T) *DB {
	t.Helper()
	db, err := Initialize(workdir.At(t.TempDir()))
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seed creates a column with one card per label and returns the ids.
func seed(t *testing.T, db *DB, name string, labels ...string) (Column, []string) {
	t.Helper()
	ctx := context.Background()
	col, err := db.AddColumn(ctx, name)
	if err != nil {
		t.Fatalf("AddColumn: %v", err)
	}
	var ids []string
	for _, l := range labels {
		kind := models.KindItem
		if strings.HasPrefix(l, "dir:") {
			kind = models.KindContainer
		}
		it, err := db.AddItem(ctx, col.ID, l, kind)
		if err != nil {
			t.Fatalf("AddItem: %v", err)
		}
		ids = append(ids, it.ID)
	}
	return col, ids
}

func labels(items []models.Item) string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return fmt.Sprint(out)
}

func load(t *testing.T, db *DB) *Board {
	t.Helper()
	b, err := db.LoadBoard(context.Background())
	if err != nil {
		t.Fatalf("LoadBoard: %v", err)
	}
	return b
}

func TestInitialize(t *testing.T) {
	dir := workdir.At(t.TempDir())

	if _, err := Open(dir); err == nil {
		t.Error("Open should fail before Initialize")
	}

	db, err := Initialize(dir)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	db.Close()

	if _, err := os.Stat(filepath.Join(dir.Root, ".freeform", "board.db")); err != nil {
		t.Errorf("database file not created: %v", err)
	}

	db, err = Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	db.Close()
}

func TestLoadBoard(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	if err := db.SetBoardName(ctx, "Sprint"); err != nil {
		t.Fatalf("SetBoardName: %v", err)
	}
	seed(t, db, "Todo", "a", "b", "dir:f")
	seed(t, db, "Done", "c")

	b := load(t, db)
	if b.Name != "Sprint" {
		t.Errorf("Name = %q", b.Name)
	}
	if len(b.Columns) != 2 || b.Columns[0].Name != "Todo" || b.Columns[1].Name != "Done" {
		t.Fatalf("columns = %+v", b.Columns)
	}
	if got := labels(b.Columns[0].Items); got != "[a b dir:f]" {
		t.Errorf("Todo = %s", got)
	}
	if !b.Columns[0].Items[2].IsContainer() {
		t.Error("folder kind lost")
	}
	if _, ok := b.Column(b.Columns[1].ID); !ok {
		t.Error("Column lookup failed")
	}
}

func TestReorder(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	col, ids := seed(t, db, "Todo", "a", "b", "c", "d", "e")

	if err := db.Reorder(ctx, col.ID, []string{ids[1], ids[3]}, 0); err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if got := labels(load(t, db).Columns[0].Items); got != "[b d a c e]" {
		t.Errorf("after reorder = %s", got)
	}

	err := db.Reorder(ctx, col.ID, []string{"it-missing"}, 0)
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "it-missing" {
		t.Errorf("err = %v, want NotFoundError", err)
	}
	if err := db.Reorder(ctx, "col-missing", nil, 0); !errors.As(err, &nf) || nf.Kind != "column" {
		t.Errorf("err = %v, want column NotFoundError", err)
	}
}

func TestMoveToColumn(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	todo, ids := seed(t, db, "Todo", "a", "b", "c")
	done, _ := seed(t, db, "Done", "x", "y")

	if err := db.MoveToColumn(ctx, done.ID, []string{ids[0], ids[2]}, 1); err != nil {
		t.Fatalf("MoveToColumn: %v", err)
	}
	b := load(t, db)
	if got := labels(b.Columns[1].Items); got != "[x a c y]" {
		t.Errorf("Done = %s", got)
	}
	if got := labels(b.Columns[0].Items); got != "[b]" {
		t.Errorf("Todo = %s", got)
	}

	// Index beyond the end appends.
	if err := db.MoveToColumn(ctx, todo.ID, []string{ids[0]}, 99); err != nil {
		t.Fatalf("MoveToColumn: %v", err)
	}
	if got := labels(load(t, db).Columns[0].Items); got != "[b a]" {
		t.Errorf("Todo = %s", got)
	}
}

func TestFolders(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	_, ids := seed(t, db, "Todo", "a", "dir:f", "b", "dir:g")
	folder := ids[1]

	if err := db.MoveIntoFolder(ctx, folder, []string{ids[0], ids[2]}); err != nil {
		t.Fatalf("MoveIntoFolder: %v", err)
	}
	col := load(t, db).Columns[0]
	if got := labels(col.Items); got != "[dir:f dir:g]" {
		t.Errorf("column = %s", got)
	}
	if got := labels(col.Folders[folder]); got != "[a b]" {
		t.Errorf("folder = %s", got)
	}

	var me *MoveError
	if err := db.MoveIntoFolder(ctx, folder, []string{ids[3]}); !errors.As(err, &me) {
		t.Errorf("nesting folders: err = %v, want MoveError", err)
	}
	if err := db.MoveIntoFolder(ctx, ids[0], []string{ids[2]}); !errors.As(err, &me) {
		t.Errorf("card as folder: err = %v, want MoveError", err)
	}

	if err := db.MoveOutOfFolder(ctx, folder, []string{ids[2]}); err != nil {
		t.Fatalf("MoveOutOfFolder: %v", err)
	}
	col = load(t, db).Columns[0]
	if got := labels(col.Items); got != "[dir:f b dir:g]" {
		t.Errorf("column after move out = %s", got)
	}
	if got := labels(col.Folders[folder]); got != "[a]" {
		t.Errorf("folder after move out = %s", got)
	}

	if err := db.DeleteItem(ctx, folder); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	col = load(t, db).Columns[0]
	if got := labels(col.Items); got != "[b dir:g]" || len(col.Folders) != 0 {
		t.Errorf("after delete = %s, folders %v", got, col.Folders)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	src := `name: Planning
columns:
  - name: Ideas
    items:
      - label: one
      - label: archive
        kind: container
        items:
          - label: old
            disabled: true
  - name: Doing
`
	db := newDB(t)
	ctx := context.Background()
	if err := db.ReadYAML(ctx, strings.NewReader(src)); err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}

	b := load(t, db)
	if b.Name != "Planning" || len(b.Columns) != 2 {
		t.Fatalf("board = %+v", b)
	}
	ideas := b.Columns[0]
	if got := labels(ideas.Items); got != "[one archive]" {
		t.Errorf("Ideas = %s", got)
	}
	inside := ideas.Folders[ideas.Items[1].ID]
	if len(inside) != 1 || inside[0].Label != "old" || !inside[0].Disabled {
		t.Errorf("folder contents = %+v", inside)
	}

	var buf bytes.Buffer
	if err := db.WriteYAML(ctx, &buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	var want, got BoardFile
	if err := yaml.Unmarshal([]byte(src), &want); err != nil {
		t.Fatalf("parse source: %v", err)
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("export = %+v\nwant %+v", got, want)
	}
}

func TestImportRejectsNesting(t *testing.T) {
	db := newDB(t)
	f := &BoardFile{Columns: []ColumnFile{{
		Name:  "c",
		Items: []ItemFile{{Label: "card", Items: []ItemFile{{Label: "x"}}}},
	}}}
	if err := db.Import(context.Background(), f); err == nil {
		t.Error("expected error for items under a card")
	}
}

func TestReorderFolder(t *testing.T) {
	db := newDB(t)
	ctx := context.Background()
	_, ids := seed(t, db, "Todo", "dir:f")
	folder := ids[0]
	var inside []string
	for _, l := range []string{"a", "b", "c"} {
		it, err := db.AddToFolder(ctx, folder, l)
		if err != nil {
			t.Fatalf("AddToFolder: %v", err)
		}
		inside = append(inside, it.ID)
	}

	if err := db.ReorderFolder(ctx, folder, []string{inside[2]}, 0); err != nil {
		t.Fatalf("ReorderFolder: %v", err)
	}
	if got := labels(load(t, db).Columns[0].Folders[folder]); got != "[c a b]" {
		t.Errorf("folder = %s", got)
	}
}
