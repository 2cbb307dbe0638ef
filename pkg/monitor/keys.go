package monitor

import (
	"context"
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/freeform/internal/models"
)

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	ln := m.focused()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filter.SetValue("")
		return m, m.filter.Focus()
	}
	if ln == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.cursor--
		m.clampCursor()
	case key.Matches(msg, m.keys.Right):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.Up):
		m.moveCursorRow(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursorRow(1)
	case key.Matches(msg, m.keys.NextLane):
		m.focusLane(m.focus + 1)
	case key.Matches(msg, m.keys.PrevLane):
		m.focusLane(m.focus - 1)

	case key.Matches(msg, m.keys.Select):
		if it, ok := m.cursorItem(); ok {
			ln.z.Select(it, models.Modifiers{Ctrl: true})
		}
	case key.Matches(msg, m.keys.SelectAll):
		ln.z.SelectAll()
	case key.Matches(msg, m.keys.Clear):
		if len(ln.z.Selection().Items) == 0 && m.openFolder != "" {
			m.toggleFolder(m.openFolder)
			return m, nil
		}
		ln.z.ClearSelection()
	case key.Matches(msg, m.keys.OpenFolder):
		if it, ok := m.cursorItem(); ok && it.IsContainer() && !ln.isFolder() {
			m.toggleFolder(it.ID)
		}
	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLane(ln)

	case key.Matches(msg, m.keys.MoveEarlier):
		return m, m.shift(ln, -1)
	case key.Matches(msg, m.keys.MoveLater):
		return m, m.shift(ln, 1)
	case key.Matches(msg, m.keys.MoveToPrev):
		return m, m.transfer(ln, m.focus-1)
	case key.Matches(msg, m.keys.MoveToNext):
		return m, m.transfer(ln, m.focus+1)
	}
	return m, nil
}

func (m *Model) focusLane(i int) {
	if len(m.lanes) == 0 {
		return
	}
	m.focus = (i + len(m.lanes)) % len(m.lanes)
	m.clampCursor()
	m.ensureLaneVisible(m.focus)
}

func (m *Model) moveCursorRow(dir int) {
	ln := m.focused()
	next := m.cursor + dir*m.layout.perRow
	if next >= 0 && next < len(ln.items) {
		m.cursor = next
		return
	}
	m.focusLane(m.focus + dir)
}

// ensureLaneVisible scrolls so the header of lane i is on screen.
func (m *Model) ensureLaneVisible(i int) {
	if i >= len(m.layout.laneTops) {
		return
	}
	top := float64(m.layout.laneTops[i])
	bottom := top + float64(1+m.layout.laneRows[i]*chipHeight)
	view := float64(m.layout.viewHeight())
	moved := false
	switch {
	case top < m.layout.offset:
		moved = m.layout.scrollBy(top - m.layout.offset)
	case bottom > m.layout.offset+view:
		moved = m.layout.scrollBy(math.Min(bottom-view, top) - m.layout.offset)
	}
	if moved {
		m.rebuildHitMap()
	}
}

func (m *Model) cursorItem() (models.Item, bool) {
	ln := m.focused()
	if ln == nil || m.cursor < 0 || m.cursor >= len(ln.items) {
		return models.Item{}, false
	}
	return ln.items[m.cursor], true
}

// acting returns the cards a keyboard move applies to: the selection, or
// the card under the cursor. Disabled cards never move.
func (m *Model) acting(ln *lane) []models.Item {
	var out []models.Item
	sel := ln.z.Selection().Items
	if len(sel) == 0 {
		if it, ok := m.cursorItem(); ok {
			sel = []models.Item{it}
		}
	}
	for _, it := range sel {
		if i := models.IndexOf(ln.items, it.ID); i >= 0 && !ln.items[i].Disabled {
			out = append(out, ln.items[i])
		}
	}
	return out
}

// shift moves the acting cards one slot earlier or later in their lane.
// The drop index is an insertion index into the current order, so moving
// later skips past the block and one more card.
func (m *Model) shift(ln *lane, dir int) tea.Cmd {
	cards := m.acting(ln)
	if len(cards) == 0 {
		return nil
	}
	first, last := len(ln.items), -1
	for _, it := range cards {
		i := models.IndexOf(ln.items, it.ID)
		first, last = min(first, i), max(last, i)
	}
	to := first - 1
	if dir > 0 {
		to = last + 2
	}
	to = max(0, min(to, len(ln.items)))
	ids := models.IDs(cards)

	m.cursor = max(0, min(m.cursor+dir, len(ln.items)-1))
	if ln.isFolder() {
		return m.apply(fmt.Sprintf("reordered %s", ln.title), func(ctx context.Context) error {
			return m.db.ReorderFolder(ctx, ln.folderID, ids, to)
		})
	}
	return m.apply(fmt.Sprintf("reordered %s", ln.title), func(ctx context.Context) error {
		return m.db.Reorder(ctx, ln.columnID, ids, to)
	})
}

// transfer moves the acting cards to the end of lane target. Leaving a
// folder lane upward takes the cards out of the folder, right after it.
func (m *Model) transfer(ln *lane, target int) tea.Cmd {
	if target < 0 || target >= len(m.lanes) {
		return nil
	}
	cards := m.acting(ln)
	if len(cards) == 0 {
		return nil
	}
	ids := models.IDs(cards)
	dst := m.lanes[target]
	from := m.focus
	m.focus = target
	m.cursor = len(dst.items)

	switch {
	case dst.isFolder():
		if !cardsOnly(cards) {
			m.status, m.statusErr = "folders cannot be nested", true
			return nil
		}
		return m.apply(fmt.Sprintf("filed %d into %s", len(ids), dst.title), func(ctx context.Context) error {
			return m.db.MoveIntoFolder(ctx, dst.folderID, ids)
		})
	case ln.isFolder() && target < from:
		return m.apply(fmt.Sprintf("took %d out of %s", len(ids), ln.title), func(ctx context.Context) error {
			return m.db.MoveOutOfFolder(ctx, ln.folderID, ids)
		})
	default:
		end := len(dst.items)
		return m.apply(fmt.Sprintf("moved %d to %s", len(ids), dst.title), func(ctx context.Context) error {
			return m.db.MoveToColumn(ctx, dst.columnID, ids, end)
		})
	}
}

func (m *Model) copyLane(ln *lane) tea.Cmd {
	cards := ln.z.Selection().Items
	if len(cards) == 0 {
		cards = ln.items
	}
	var folders map[string][]models.Item
	if col, ok := m.board.Column(ln.columnID); ok {
		folders = col.Folders
	}
	text := formatCardsAsMarkdown(ln.title, cards, folders)
	logger := m.logger
	return func() tea.Msg {
		if err := copyToClipboard(text); err != nil {
			logger.Warn("copy failed", "err", err)
			return boardLoadedMsg{err: err}
		}
		return nil
	}
}
