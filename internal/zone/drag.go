package zone

import (
	"math"

	"github.com/marcus/freeform/internal/events"
	"github.com/marcus/freeform/internal/geom"
	"github.com/marcus/freeform/internal/models"
)

// Release is the outcome of a pointer-up. It captures the drag as it was
// just before the zone went back to idle.
type Release struct {
	Items    []models.Item
	Position geom.Point

	// Dragged is false when the press never crossed the drag threshold.
	Dragged bool

	// Target is the container the items were released on, if any.
	Target *DropTarget

	// FromIndex and ToIndex describe an internal reorder. ToIndex is an
	// insertion index into the collection as it was before the drag.
	FromIndex  int
	ToIndex    int
	HasIndices bool

	// External is set when the release happened over another zone.
	External *ExternalResult

	// Void is true when nothing should change: a click, a release
	// outside every zone, or a rejecting target.
	Void bool
}

// PointerDown handles a press on item. With modifiers held the selection
// is edited first; a drag is armed when the pressed item ends up selected
// or is pressed without modifiers. It reports whether a drag was armed.
func (z *Zone) PointerDown(item models.Item, ev models.PointerEvent) bool {
	if z.opts.Disabled || ev.Button != models.ButtonLeft {
		return false
	}
	if models.IndexOf(z.items, item.ID) < 0 {
		return false
	}

	mods := ev.Modifiers
	if mods.Shift || mods.Ctrl {
		z.Select(item, mods)
		if !z.IsSelected(item.ID) {
			return false
		}
	}

	if !z.opts.DragEnabled || item.Disabled {
		if !mods.Shift && !mods.Ctrl {
			z.Select(item, mods)
		}
		return false
	}

	z.arm(item, ev.Position)
	return true
}

// arm moves the state machine from idle to armed.
func (z *Zone) arm(item models.Item, at geom.Point) {
	var dragged []models.Item
	if z.IsSelected(item.ID) {
		// Disabled state comes from the current collection, not the
		// selection snapshot.
		for _, sel := range z.selection.Items {
			i := models.IndexOf(z.items, sel.ID)
			if i >= 0 && !z.items[i].Disabled {
				dragged = append(dragged, z.items[i])
			}
		}
	} else {
		z.replaceSelection([]models.Item{item}, models.Modifiers{})
		z.anchor = item.ID
		dragged = []models.Item{item}
	}

	z.sourceIndex = models.IndexOf(z.items, item.ID)
	z.hasSource = true
	z.hasDrop = false
	z.target = nil

	z.hasSize = false
	if b, ok := z.itemBounds[item.ID]; ok {
		if r, ok := b(); ok {
			z.draggedSize = r.Size()
			z.hasSize = true
		}
	}

	z.drag = DragState{
		Active:          true,
		Items:           dragged,
		StartPosition:   at,
		CurrentPosition: at,
	}
	z.logger.Debug("drag armed", "item", item.ID, "count", len(dragged), "source", z.sourceIndex)
}

// PointerMove advances an armed or active drag. Moves without a drag are
// ignored.
func (z *Zone) PointerMove(ev models.PointerEvent) {
	if !z.drag.Active {
		return
	}
	p := ev.Position

	if !z.drag.ThresholdPassed {
		d := p.Sub(z.drag.StartPosition)
		if math.Abs(d.X) < z.opts.DragThreshold && math.Abs(d.Y) < z.opts.DragThreshold {
			return
		}
		z.drag.ThresholdPassed = true
		z.dropIndex = z.sourceIndex
		z.hasDrop = true
		z.logger.Debug("drag started", "count", len(z.drag.Items))
		z.drag.CurrentPosition = p
		z.emitDrag(events.KindDragStarted, p)
	}

	z.drag.CurrentPosition = p
	z.updateDropTarget(p)

	if z.external != nil {
		z.external.Detect(p, z.drag.Items)
	}
	z.emitDrag(events.KindDragMoved, p)
}

// updateDropTarget runs container hit-testing and, when no container is
// hit, reorder resolution. A hit container suspends reordering for the
// event.
func (z *Zone) updateDropTarget(p geom.Point) {
	if t := z.containerAt(p, z.drag.Items, z.drag.Items); t != nil {
		z.target = t
		return
	}
	z.target = nil

	if !z.insideBounds(p) {
		return
	}
	idx, ok := z.opts.Resolver.Resolve(p, z.visibleEntries(), z.draggedIndices())
	if ok {
		z.dropIndex = idx
		z.hasDrop = true
	}
}

// PointerUp ends the drag and reports what the host should do with it.
// The zone returns to idle whatever the outcome. ok is false when no drag
// was armed.
func (z *Zone) PointerUp(ev models.PointerEvent) (rel Release, ok bool) {
	if !z.drag.Active {
		return Release{}, false
	}
	defer z.resetDrag()

	rel = Release{
		Items:    append([]models.Item(nil), z.drag.Items...),
		Position: ev.Position,
		Dragged:  z.drag.ThresholdPassed,
	}
	if !rel.Dragged {
		rel.Void = true
		return rel, true
	}
	z.emitDrag(events.KindDragEnded, ev.Position)

	if z.external != nil {
		if ext, hovered := z.external.Finish(rel.Items); hovered {
			rel.External = &ext
			rel.Void = ext.Void
			if ext.Void {
				z.logger.Debug("external drop rejected", "target", ext.ZoneID)
			} else {
				z.logger.Debug("external drop", "target", ext.ZoneID, "index", ext.DropIndex, "container", ext.ContainerID)
				z.events.Emit(events.Drop{
					ZoneID:      z.id,
					Items:       rel.Items,
					Position:    rel.Position,
					TargetZone:  ext.ZoneID,
					ToIndex:     ext.DropIndex,
					ContainerID: ext.ContainerID,
				})
			}
			return rel, true
		}
	}

	if z.target != nil {
		t := *z.target
		rel.Target = &t
		if !t.Accepted {
			rel.Void = true
			z.logger.Debug("container rejected drop", "container", t.Item.ID)
			return rel, true
		}
		z.events.Emit(events.Drop{
			ZoneID:   z.id,
			Items:    rel.Items,
			Position: rel.Position,
			Target: &events.Target{
				Item:     t.Item,
				Bounds:   t.Bounds,
				Accepted: t.Accepted,
			},
		})
		return rel, true
	}

	if !z.insideBounds(ev.Position) || !z.hasDrop {
		rel.Void = true
		return rel, true
	}

	rel.FromIndex = z.sourceIndex
	rel.ToIndex = z.dropIndex
	rel.HasIndices = true
	z.events.Emit(events.Drop{
		ZoneID:     z.id,
		Items:      rel.Items,
		Position:   rel.Position,
		FromIndex:  rel.FromIndex,
		ToIndex:    rel.ToIndex,
		HasIndices: true,
	})
	if ReorderChanges(z.items, models.IDs(rel.Items), rel.ToIndex) {
		z.events.Emit(events.Reorder{ZoneID: z.id, From: rel.FromIndex, To: rel.ToIndex})
	}
	return rel, true
}

// SetDropTarget points the drag at a registered container directly, for
// hosts that track hover themselves. The drop index follows the
// container's position in the collection.
func (z *Zone) SetDropTarget(item models.Item) {
	c, ok := z.findContainer(item.ID)
	if !ok {
		return
	}
	r, ok := c.bounds()
	if !ok {
		return
	}
	z.target = &DropTarget{
		Item:     c.item,
		Bounds:   r,
		Accepted: c.accept.Accepts(z.drag.Items),
	}
	if idx := models.IndexOf(z.items, item.ID); idx >= 0 {
		z.dropIndex = idx
		z.hasDrop = true
	}
}

// ClearDropTarget forgets the current container target.
func (z *Zone) ClearDropTarget() {
	z.target = nil
}

// resetDrag returns every transient drag field to idle. Another zone may
// have been hovering this one while its own drag ran; the target side picks
// that hover up straight away.
func (z *Zone) resetDrag() {
	z.drag = DragState{}
	z.hasDrop = false
	z.dropIndex = 0
	z.hasSource = false
	z.sourceIndex = 0
	z.target = nil
	z.hasSize = false
	z.draggedSize = geom.Size{}
	if z.incoming != nil {
		z.incoming.Sync()
	}
}

func (z *Zone) emitDrag(kind events.Kind, p geom.Point) {
	z.events.Emit(events.Drag{
		ZoneID:   z.id,
		Phase:    kind,
		Items:    z.drag.Items,
		Position: p,
	})
}
