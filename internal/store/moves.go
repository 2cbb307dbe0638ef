package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/marcus/freeform/internal/models"
	"github.com/marcus/freeform/internal/zone"
)

// Reorder applies an in-column reorder: the named items move to dropIndex,
// an insertion index into the column as it was before the move.
func (db *DB) Reorder(ctx context.Context, columnID string, itemIDs []string, dropIndex int) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireColumn(ctx, tx, columnID); err != nil {
			return err
		}
		return reorderList(ctx, tx, columnID, "", itemIDs, dropIndex)
	})
}

// ReorderFolder is Reorder for the cards inside a folder.
func (db *DB) ReorderFolder(ctx context.Context, folderID string, itemIDs []string, dropIndex int) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		var zoneID string
		err := tx.QueryRowContext(ctx, `SELECT zone_id FROM items WHERE id = ?`, folderID).Scan(&zoneID)
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundError{Kind: "item", ID: folderID}
		}
		if err != nil {
			return err
		}
		return reorderList(ctx, tx, zoneID, folderID, itemIDs, dropIndex)
	})
}

func reorderList(ctx context.Context, tx *sql.Tx, zoneID, parentID string, itemIDs []string, dropIndex int) error {
	ids, err := childIDs(ctx, tx, zoneID, parentID)
	if err != nil {
		return err
	}
	for _, id := range itemIDs {
		if !slices.Contains(ids, id) {
			return &NotFoundError{Kind: "item", ID: id}
		}
	}

	items := make([]models.Item, len(ids))
	for i, id := range ids {
		items[i] = models.Item{ID: id}
	}
	next := models.IDs(zone.Reorder(items, itemIDs, dropIndex))
	return writeOrder(ctx, tx, zoneID, parentID, next)
}

// MoveToColumn moves items from any column to index in columnID. The
// index counts only the target column's own items. Items pulled out of a
// folder land in the column itself.
func (db *DB) MoveToColumn(ctx context.Context, columnID string, itemIDs []string, index int) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireColumn(ctx, tx, columnID); err != nil {
			return err
		}
		sources, err := itemOrigins(ctx, tx, itemIDs)
		if err != nil {
			return err
		}

		target, err := childIDs(ctx, tx, columnID, "")
		if err != nil {
			return err
		}
		target = slices.DeleteFunc(target, func(id string) bool { return slices.Contains(itemIDs, id) })
		index = max(0, min(index, len(target)))
		next := slices.Concat(target[:index], itemIDs, target[index:])
		if err := writeOrder(ctx, tx, columnID, "", next); err != nil {
			return err
		}
		return renumber(ctx, tx, sources)
	})
}

// MoveIntoFolder files items at the end of a folder. Folders only take
// cards.
func (db *DB) MoveIntoFolder(ctx context.Context, folderID string, itemIDs []string) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		var zoneID string
		var kind models.ItemKind
		err := tx.QueryRowContext(ctx, `SELECT zone_id, kind FROM items WHERE id = ?`, folderID).Scan(&zoneID, &kind)
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundError{Kind: "item", ID: folderID}
		}
		if err != nil {
			return err
		}
		if kind != models.KindContainer {
			return &MoveError{ItemID: folderID, Reason: "target is not a folder"}
		}

		for _, id := range itemIDs {
			if id == folderID {
				return &MoveError{ItemID: id, Reason: "a folder cannot contain itself"}
			}
			var k models.ItemKind
			err := tx.QueryRowContext(ctx, `SELECT kind FROM items WHERE id = ?`, id).Scan(&k)
			if errors.Is(err, sql.ErrNoRows) {
				return &NotFoundError{Kind: "item", ID: id}
			}
			if err != nil {
				return err
			}
			if k == models.KindContainer {
				return &MoveError{ItemID: id, Reason: "folders cannot be nested"}
			}
		}

		sources, err := itemOrigins(ctx, tx, itemIDs)
		if err != nil {
			return err
		}
		children, err := childIDs(ctx, tx, zoneID, folderID)
		if err != nil {
			return err
		}
		children = slices.DeleteFunc(children, func(id string) bool { return slices.Contains(itemIDs, id) })
		if err := writeOrder(ctx, tx, zoneID, folderID, append(children, itemIDs...)); err != nil {
			return err
		}
		return renumber(ctx, tx, sources)
	})
}

// MoveOutOfFolder is MoveToColumn for cards that sit in a folder; the
// folder's column receives them right after the folder.
func (db *DB) MoveOutOfFolder(ctx context.Context, folderID string, itemIDs []string) error {
	var zoneID string
	err := db.conn.QueryRowContext(ctx, `SELECT zone_id FROM items WHERE id = ?`, folderID).Scan(&zoneID)
	if errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Kind: "item", ID: folderID}
	}
	if err != nil {
		return err
	}
	var pos int
	err = db.conn.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM items
		WHERE zone_id = ? AND parent_id = '' AND position <= (SELECT position FROM items WHERE id = ?)
	`, zoneID, folderID).Scan(&pos)
	if err != nil {
		return err
	}
	return db.MoveToColumn(ctx, zoneID, itemIDs, pos)
}

type origin struct {
	zoneID   string
	parentID string
}

// itemOrigins returns the distinct lists the items currently live in.
func itemOrigins(ctx context.Context, tx *sql.Tx, itemIDs []string) ([]origin, error) {
	var out []origin
	for _, id := range itemIDs {
		var o origin
		err := tx.QueryRowContext(ctx, `SELECT zone_id, parent_id FROM items WHERE id = ?`, id).Scan(&o.zoneID, &o.parentID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Kind: "item", ID: id}
		}
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, o) {
			out = append(out, o)
		}
	}
	return out, nil
}

// renumber closes the gaps left in the given lists.
func renumber(ctx context.Context, tx *sql.Tx, lists []origin) error {
	for _, o := range lists {
		ids, err := childIDs(ctx, tx, o.zoneID, o.parentID)
		if err != nil {
			return err
		}
		if err := writeOrder(ctx, tx, o.zoneID, o.parentID, ids); err != nil {
			return err
		}
	}
	return nil
}

func childIDs(ctx context.Context, tx *sql.Tx, zoneID, parentID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id FROM items WHERE zone_id = ? AND parent_id = ? ORDER BY position, rowid
	`, zoneID, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// writeOrder places ids in zoneID/parentID at positions 0..n-1.
func writeOrder(ctx context.Context, tx *sql.Tx, zoneID, parentID string, ids []string) error {
	stmt, err := tx.PrepareContext(ctx, `
		UPDATE items SET zone_id = ?, parent_id = ?, position = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, id := range ids {
		if _, err := stmt.ExecContext(ctx, zoneID, parentID, i, id); err != nil {
			return fmt.Errorf("move %s: %w", id, err)
		}
	}
	return nil
}
