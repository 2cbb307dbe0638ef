package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/marcus/freeform/internal/models"
	"golang.org/x/sync/errgroup"
)

// Column is one zone of the board with its top-level cards in order.
type Column struct {
	ID       string
	Name     string
	Position int
	Items    []models.Item

	// Folders maps a folder card's id to the cards filed inside it.
	Folders map[string][]models.Item
}

// Board is the whole persisted board.
type Board struct {
	Name    string
	Columns []Column
}

// Column returns the column with id.
func (b *Board) Column(id string) (*Column, bool) {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i], true
		}
	}
	return nil, false
}

// BoardName returns the board's display name.
func (db *DB) BoardName(ctx context.Context) (string, error) {
	var name string
	err := db.conn.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'name'`).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return name, err
}

// SetBoardName sets the board's display name.
func (db *DB) SetBoardName(ctx context.Context, name string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES ('name', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, name)
	return err
}

// AddColumn appends a column to the board.
func (db *DB) AddColumn(ctx context.Context, name string) (Column, error) {
	col := Column{ID: newZoneID(), Name: name}
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM zones`).Scan(&col.Position); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO zones (id, name, position) VALUES (?, ?, ?)`, col.ID, col.Name, col.Position)
		return err
	})
	if err != nil {
		return Column{}, fmt.Errorf("add column: %w", err)
	}
	return col, nil
}

// Columns lists the columns in board order, without their items.
func (db *DB) Columns(ctx context.Context) ([]Column, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT id, name, position FROM zones ORDER BY position, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.ID, &c.Name, &c.Position); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// AddItem appends a card or folder to a column.
func (db *DB) AddItem(ctx context.Context, columnID, label string, kind models.ItemKind) (models.Item, error) {
	return db.addItem(ctx, columnID, "", label, kind)
}

// AddToFolder appends a card to a folder.
func (db *DB) AddToFolder(ctx context.Context, folderID, label string) (models.Item, error) {
	var zoneID string
	var kind models.ItemKind
	err := db.conn.QueryRowContext(ctx, `SELECT zone_id, kind FROM items WHERE id = ?`, folderID).Scan(&zoneID, &kind)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Item{}, &NotFoundError{Kind: "item", ID: folderID}
	}
	if err != nil {
		return models.Item{}, err
	}
	if kind != models.KindContainer {
		return models.Item{}, &MoveError{ItemID: folderID, Reason: "not a folder"}
	}
	return db.addItem(ctx, zoneID, folderID, label, models.KindItem)
}

func (db *DB) addItem(ctx context.Context, zoneID, parentID, label string, kind models.ItemKind) (models.Item, error) {
	if !models.IsValidKind(kind) {
		return models.Item{}, fmt.Errorf("invalid kind %q", kind)
	}
	if kind == "" {
		kind = models.KindItem
	}
	item := models.Item{ID: newItemID(), Kind: kind, Label: label}
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireColumn(ctx, tx, zoneID); err != nil {
			return err
		}
		var pos int
		if err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(MAX(position) + 1, 0) FROM items WHERE zone_id = ? AND parent_id = ?
		`, zoneID, parentID).Scan(&pos); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO items (id, zone_id, parent_id, kind, label, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, item.ID, zoneID, parentID, string(item.Kind), item.Label, pos)
		return err
	})
	if err != nil {
		return models.Item{}, err
	}
	return item, nil
}

// SetDisabled marks an item as not draggable or selectable.
func (db *DB) SetDisabled(ctx context.Context, itemID string, disabled bool) error {
	res, err := db.conn.ExecContext(ctx, `
		UPDATE items SET disabled = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, disabled, itemID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Kind: "item", ID: itemID}
	}
	return nil
}

// DeleteItem removes an item. Cards filed in a deleted folder go with it.
func (db *DB) DeleteItem(ctx context.Context, itemID string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, itemID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return &NotFoundError{Kind: "item", ID: itemID}
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM items WHERE parent_id = ?`, itemID)
		return err
	})
}

// LoadBoard reads the board. Columns are loaded concurrently.
func (db *DB) LoadBoard(ctx context.Context) (*Board, error) {
	name, err := db.BoardName(ctx)
	if err != nil {
		return nil, fmt.Errorf("board name: %w", err)
	}
	cols, err := db.Columns(ctx)
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	eg, gctx := errgroup.WithContext(ctx)
	for i := range cols {
		eg.Go(func() error {
			return db.loadColumnItems(gctx, &cols[i])
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &Board{Name: name, Columns: cols}, nil
}

func (db *DB) loadColumnItems(ctx context.Context, col *Column) error {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, parent_id, kind, label, disabled FROM items
		WHERE zone_id = ? ORDER BY position, rowid
	`, col.ID)
	if err != nil {
		return fmt.Errorf("load %s: %w", col.ID, err)
	}
	defer rows.Close()

	col.Items = nil
	col.Folders = make(map[string][]models.Item)
	for rows.Next() {
		var it models.Item
		var parentID string
		if err := rows.Scan(&it.ID, &parentID, &it.Kind, &it.Label, &it.Disabled); err != nil {
			return err
		}
		if parentID == "" {
			col.Items = append(col.Items, it)
		} else {
			col.Folders[parentID] = append(col.Folders[parentID], it)
		}
	}
	return rows.Err()
}

func requireColumn(ctx context.Context, tx *sql.Tx, id string) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM zones WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Kind: "column", ID: id}
	}
	return err
}
