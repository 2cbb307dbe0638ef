package monitor

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/freeform/internal/models"
	"github.com/marcus/freeform/internal/zone"
	"github.com/marcus/freeform/pkg/monitor/mouse"
)

// wheelLines is how far one wheel notch scrolls.
const wheelLines = 3

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	a := m.mouse.HandleMouse(msg)
	ev := m.scale.PointerEvent(msg)

	switch a.Type {
	case mouse.ActionClick:
		m.press(a, ev)

	case mouse.ActionDoubleClick:
		if h, ok := regionHit(a.Region); ok && h.index >= 0 {
			it := m.lanes[h.lane].items[h.index]
			if it.IsContainer() && !m.lanes[h.lane].isFolder() {
				m.toggleFolder(it.ID)
				return m, nil
			}
		}
		m.press(a, ev)

	case mouse.ActionDrag:
		m.pointer = ev
		switch {
		case m.dragging != nil:
			m.dragging.z.PointerMove(ev)
			if m.dragging.z.DragState().ThresholdPassed && m.scroller.OnDragMove(ev.Position) {
				return m, scrollTick()
			}
		case m.lassoing != nil:
			m.lassoing.z.UpdateLasso(ev.Position)
		}

	case mouse.ActionDragEnd:
		m.scroller.Stop()
		if m.lassoing != nil {
			m.lassoing.z.EndLasso()
			m.lassoing = nil
		}
		if src := m.dragging; src != nil {
			m.dragging = nil
			if rel, ok := src.z.PointerUp(ev); ok {
				return m, m.applyRelease(src, rel)
			}
		}

	case mouse.ActionScrollUp:
		if m.layout.scrollBy(-wheelLines) {
			m.rebuildHitMap()
		}
	case mouse.ActionScrollDown:
		if m.layout.scrollBy(wheelLines) {
			m.rebuildHitMap()
		}
	}
	return m, nil
}

// press starts a drag on a card or a lasso on empty lane space.
func (m *Model) press(a mouse.MouseAction, ev models.PointerEvent) {
	h, ok := regionHit(a.Region)
	if !ok {
		return
	}
	ln := m.lanes[h.lane]
	m.focus = h.lane
	if h.index < 0 {
		if ln.z.BeginLasso(ev.Position, ev.Modifiers) {
			m.lassoing = ln
			m.mouse.StartDrag(a.X, a.Y, a.Region.ID, h.lane)
		}
		return
	}

	m.cursor = h.index
	if ln.z.PointerDown(ln.items[h.index], ev) {
		m.dragging = ln
		m.pointer = ev
		m.mouse.StartDrag(a.X, a.Y, a.Region.ID, h.index)
	}
}

func regionHit(r *mouse.Region) (hit, bool) {
	if r == nil {
		return hit{}, false
	}
	h, ok := r.Data.(hit)
	return h, ok
}

// stepAutoScroll runs one auto-scroll frame and re-resolves the drag at
// the last pointer position, since the content moved under it.
func (m Model) stepAutoScroll() (Model, tea.Cmd) {
	if m.dragging == nil {
		m.scroller.Stop()
		return m, nil
	}
	before := m.layout.offset
	if !m.scroller.Step() {
		return m, nil
	}
	if m.layout.offset != before {
		m.rebuildHitMap()
		m.dragging.z.PointerMove(m.pointer)
	}
	return m, scrollTick()
}

// applyRelease turns a finished drag into a store write.
func (m Model) applyRelease(src *lane, rel zone.Release) tea.Cmd {
	if rel.Void {
		if rel.Dragged {
			m.logger.Debug("drop ignored", "lane", src.id)
		}
		return nil
	}
	ids := models.IDs(rel.Items)
	n := len(ids)

	switch {
	case rel.External != nil:
		dst, ok := m.laneByID(rel.External.ZoneID)
		if !ok {
			return nil
		}
		switch {
		case rel.External.ContainerID != "":
			folder := rel.External.ContainerID
			return m.apply(fmt.Sprintf("filed %d into %s", n, dst.title), func(ctx context.Context) error {
				return m.db.MoveIntoFolder(ctx, folder, ids)
			})
		case dst.isFolder():
			return m.apply(fmt.Sprintf("filed %d into %s", n, dst.title), func(ctx context.Context) error {
				return m.db.MoveIntoFolder(ctx, dst.folderID, ids)
			})
		default:
			index := rel.External.DropIndex
			return m.apply(fmt.Sprintf("moved %d to %s", n, dst.title), func(ctx context.Context) error {
				return m.db.MoveToColumn(ctx, dst.columnID, ids, index)
			})
		}

	case rel.Target != nil:
		folder := rel.Target.Item
		return m.apply(fmt.Sprintf("filed %d into %s", n, folder.Label), func(ctx context.Context) error {
			return m.db.MoveIntoFolder(ctx, folder.ID, ids)
		})

	case rel.HasIndices:
		if !zone.ReorderChanges(src.items, ids, rel.ToIndex) {
			return nil
		}
		to := rel.ToIndex
		if src.isFolder() {
			return m.apply(fmt.Sprintf("reordered %s", src.title), func(ctx context.Context) error {
				return m.db.ReorderFolder(ctx, src.folderID, ids, to)
			})
		}
		return m.apply(fmt.Sprintf("reordered %s", src.title), func(ctx context.Context) error {
			return m.db.Reorder(ctx, src.columnID, ids, to)
		})
	}
	return nil
}

// toggleFolder opens folderID as an extra lane, or closes it when it is
// already open.
func (m *Model) toggleFolder(folderID string) {
	if m.openFolder == folderID {
		m.openFolder = ""
	} else {
		m.openFolder = folderID
	}
	if m.board != nil {
		m.setBoard(m.board)
	}
}
