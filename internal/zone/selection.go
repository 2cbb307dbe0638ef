package zone

import (
	"github.com/marcus/freeform/internal/events"
	"github.com/marcus/freeform/internal/geom"
	"github.com/marcus/freeform/internal/models"
)

// SelectionState is the current selection plus the transient lasso.
// Items keeps insertion order.
type SelectionState struct {
	Items       []models.Item
	LassoActive bool
	LassoRect   geom.Rect
}

// Selection returns a copy of the selection state.
func (z *Zone) Selection() SelectionState {
	s := z.selection
	s.Items = append([]models.Item(nil), z.selection.Items...)
	return s
}

// IsSelected reports whether the item with id is selected.
func (z *Zone) IsSelected(id string) bool {
	return models.ContainsID(z.selection.Items, id)
}

// Select applies a click to the selection. Ctrl toggles the item, Shift
// selects the run between the last anchor and the item in collection
// order, and a plain click makes the item the only selection.
func (z *Zone) Select(item models.Item, mods models.Modifiers) {
	if !z.canSelect() {
		return
	}

	switch {
	case mods.Ctrl:
		next := append([]models.Item(nil), z.selection.Items...)
		if i := models.IndexOf(next, item.ID); i >= 0 {
			next = append(next[:i], next[i+1:]...)
		} else {
			next = append(next, item)
			z.anchor = item.ID
		}
		z.replaceSelection(next, mods)

	case mods.Shift && z.anchor != "":
		from := models.IndexOf(z.items, z.anchor)
		to := models.IndexOf(z.items, item.ID)
		if from < 0 || to < 0 {
			z.anchor = item.ID
			z.replaceSelection([]models.Item{item}, mods)
			return
		}
		if from > to {
			from, to = to, from
		}
		var run []models.Item
		for _, it := range z.items[from : to+1] {
			if !it.Disabled || it.ID == item.ID {
				run = append(run, it)
			}
		}
		z.replaceSelection(run, mods)

	default:
		z.anchor = item.ID
		z.replaceSelection([]models.Item{item}, mods)
	}
}

// SelectAll selects every enabled item.
func (z *Zone) SelectAll() {
	if !z.canSelect() {
		return
	}
	var all []models.Item
	for _, it := range z.items {
		if !it.Disabled {
			all = append(all, it)
		}
	}
	z.replaceSelection(all, models.Modifiers{})
}

// ClearSelection empties the selection.
func (z *Zone) ClearSelection() {
	z.anchor = ""
	z.replaceSelection(nil, models.Modifiers{})
}

// SetSelection replaces the selection with the given items. Ids that are
// not in the collection are dropped.
func (z *Zone) SetSelection(items []models.Item) {
	if !z.canSelect() {
		return
	}
	var next []models.Item
	for _, it := range items {
		if models.ContainsID(z.items, it.ID) && !models.ContainsID(next, it.ID) {
			next = append(next, it)
		}
	}
	if len(next) > 0 {
		z.anchor = next[len(next)-1].ID
	}
	z.replaceSelection(next, models.Modifiers{})
}

// BeginLasso starts a rubber-band selection at p. With Ctrl held the lasso
// adds to the existing selection instead of replacing it.
func (z *Zone) BeginLasso(p geom.Point, mods models.Modifiers) bool {
	if !z.canSelect() || z.drag.Active {
		return false
	}
	z.lassoStart = p
	z.lassoBase = nil
	if mods.Ctrl {
		z.lassoBase = append([]models.Item(nil), z.selection.Items...)
	}
	z.selection.LassoActive = true
	z.selection.LassoRect = geom.RectFromPoints(p, p)
	return true
}

// UpdateLasso stretches the lasso to p and selects every enabled item whose
// live bounds intersect it.
func (z *Zone) UpdateLasso(p geom.Point) {
	if !z.selection.LassoActive {
		return
	}
	rect := geom.RectFromPoints(z.lassoStart, p)
	z.selection.LassoRect = rect

	next := append([]models.Item(nil), z.lassoBase...)
	for _, it := range z.items {
		if it.Disabled || models.ContainsID(next, it.ID) {
			continue
		}
		b, ok := z.itemBounds[it.ID]
		if !ok {
			continue
		}
		r, ok := b()
		if !ok || !r.Intersects(rect) {
			continue
		}
		next = append(next, it)
	}
	z.replaceSelection(next, models.Modifiers{Ctrl: z.lassoBase != nil})
}

// EndLasso finishes the rubber-band selection; the selection stays.
func (z *Zone) EndLasso() {
	z.selection.LassoActive = false
	z.selection.LassoRect = geom.Rect{}
	z.lassoBase = nil
}

func (z *Zone) canSelect() bool {
	return z.opts.SelectionEnabled && !z.opts.Disabled
}

// replaceSelection swaps in next and emits selection-changed if the ids
// differ.
func (z *Zone) replaceSelection(next []models.Item, mods models.Modifiers) {
	if sameIDs(z.selection.Items, next) {
		return
	}
	z.selection.Items = next
	z.events.Emit(events.Selection{
		ZoneID: z.id,
		Items:  append([]models.Item(nil), next...),
		Shift:  mods.Shift,
		Ctrl:   mods.Ctrl,
	})
}

func sameIDs(a, b []models.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
