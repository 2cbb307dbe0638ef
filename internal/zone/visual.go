package zone

import (
	"github.com/marcus/freeform/internal/geom"
	"github.com/marcus/freeform/internal/models"
)

// VisualIndex returns the slot an item should render in right now. It is
// derived from the drag state on every call and never changes the
// collection.
//
// Outside a drag it is the item's index. While another zone's drag hovers
// this one, items at or after the drop index move one slot later to make
// room for the incoming placeholder. During an internal drag the dragged
// items report -1 (they render as a ghost) and every other item is laid
// out in compacted space, shifted past the placeholder by the number of
// dragged items when it sits at or after it.
//
// Unknown ids return -1.
func (z *Zone) VisualIndex(id string) int {
	actual := models.IndexOf(z.items, id)
	if actual < 0 {
		return -1
	}
	if !z.hasSource || !z.hasDrop {
		return actual
	}

	if z.sourceIndex == -1 {
		if actual >= z.dropIndex {
			return actual + 1
		}
		return actual
	}

	dragged := z.draggedIndices()
	if dragged.Has(actual) {
		return -1
	}
	isDragged := dragged.Has
	compacted := geom.CompactedPosition(actual, isDragged)
	placeholder := geom.CompactedPosition(z.dropIndex, isDragged)
	if compacted >= placeholder {
		return compacted + len(dragged)
	}
	return compacted
}

// PlaceholderPosition returns the first visual slot of the drop
// placeholder and how many slots it spans. ok is false when nothing is
// being dropped here.
func (z *Zone) PlaceholderPosition() (slot, span int, ok bool) {
	if !z.hasSource || !z.hasDrop {
		return 0, 0, false
	}
	if z.sourceIndex == -1 {
		return z.dropIndex, 1, true
	}
	dragged := z.draggedIndices()
	return geom.CompactedPosition(z.dropIndex, dragged.Has), len(dragged), true
}

// Reorder returns the collection a host gets by moving the items named in
// draggedIDs to the insertion index dropIndex. dropIndex refers to the
// order before the move. Moved items keep their relative order. The input
// slice is not modified.
func Reorder(items []models.Item, draggedIDs []string, dropIndex int) []models.Item {
	isDragged := func(i int) bool {
		if i < 0 || i >= len(items) {
			return false
		}
		for _, id := range draggedIDs {
			if items[i].ID == id {
				return true
			}
		}
		return false
	}

	var kept, moved []models.Item
	for i, it := range items {
		if isDragged(i) {
			moved = append(moved, it)
		} else {
			kept = append(kept, it)
		}
	}

	pos := geom.CompactedPosition(dropIndex, isDragged)
	if pos > len(kept) {
		pos = len(kept)
	}
	if pos < 0 {
		pos = 0
	}

	out := make([]models.Item, 0, len(items))
	out = append(out, kept[:pos]...)
	out = append(out, moved...)
	out = append(out, kept[pos:]...)
	return out
}

// ReorderChanges reports whether Reorder would produce a different order.
func ReorderChanges(items []models.Item, draggedIDs []string, dropIndex int) bool {
	return !sameIDs(items, Reorder(items, draggedIDs, dropIndex))
}
