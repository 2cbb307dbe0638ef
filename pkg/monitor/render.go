package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/freeform/internal/models"
)

// slot is one chip position in a rendered lane.
type slot struct {
	item        *models.Item
	placeholder string // label shown in a placeholder slot
	isHole      bool
}

// View renders the board.
func (m Model) View() string {
	if m.board == nil {
		if m.statusErr {
			return errorStyle.Render(m.status)
		}
		return hintStyle.Render("loading board…")
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteByte('\n')
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(0, m.width))))
	b.WriteByte('\n')

	content := m.renderLanes()
	top := m.layout.scrollLine()
	for i := 0; i < m.layout.viewHeight(); i++ {
		if n := top + i; n < len(content) {
			b.WriteString(content[n])
		}
		b.WriteByte('\n')
	}

	b.WriteString(m.renderStatus())
	b.WriteByte('\n')
	if m.filtering {
		b.WriteString(m.filter.View())
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderTitle() string {
	title := titleStyle.Render(" " + m.board.Name + " ")
	var hint string
	if m.dragging != nil {
		if ds := m.dragging.z.DragState(); ds.ThresholdPassed {
			hint = ghostStyle.Render(ghostLabel(ds.Items))
		}
	}
	if hint == "" {
		hint = hintStyle.Render(fmt.Sprintf("%d lanes", len(m.lanes)))
	}
	return ansi.Truncate(title+" "+hint, max(1, m.width), "…")
}

// ghostLabel describes the dragged cards.
func ghostLabel(items []models.Item) string {
	if len(items) == 0 {
		return ""
	}
	if len(items) == 1 {
		return "⠿ " + items[0].Label
	}
	return fmt.Sprintf("⠿ %s +%d", items[0].Label, len(items)-1)
}

func (m Model) renderStatus() string {
	var s string
	switch {
	case m.status != "" && m.statusErr:
		return ansi.Truncate(errorStyle.Render(m.status), max(1, m.width), "…")
	case m.lassoing != nil:
		r := m.lassoing.z.Selection().LassoRect
		s = fmt.Sprintf("lasso %.0fx%.0f", r.W/m.scale.CellW, r.H/m.scale.CellH)
	case m.feed.last != "":
		s = m.feed.last
	default:
		s = m.status
	}
	return ansi.Truncate(statusStyle.Render(s), max(1, m.width), "…")
}

// renderLanes returns every content line of the board, in layout order.
func (m Model) renderLanes() []string {
	var lines []string
	for i, ln := range m.lanes {
		lines = append(lines, m.renderLaneHeader(i, ln))

		slots := m.laneSlots(ln)
		rows := m.layout.laneRows[i]
		for r := 0; r < rows; r++ {
			parts := make([]string, 0, 2*m.layout.perRow)
			for c := 0; c < m.layout.perRow; c++ {
				if c > 0 {
					parts = append(parts, strings.Repeat(" ", chipGap))
				}
				s := r*m.layout.perRow + c
				if s < len(slots) {
					parts = append(parts, m.renderSlot(i, ln, slots[s]))
				} else {
					parts = append(parts, blankChip())
				}
			}
			row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
			lines = append(lines, strings.Split(row, "\n")...)
		}
		lines = append(lines, "")
	}
	return lines
}

func (m Model) renderLaneHeader(i int, ln *lane) string {
	color := laneColors[i%len(laneColors)]
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	marker := "  "
	if i == m.focus {
		marker = "▸ "
	}
	header := style.Render(marker+strings.ToUpper(ln.title)) +
		hintStyle.Render(fmt.Sprintf(" (%d)", len(ln.items)))
	if ln.z.ReceivingExternal() {
		header += " " + ghostStyle.Render("drop here")
	}
	if n := len(ln.z.Selection().Items); n > 0 {
		header += " " + statusStyle.Render(fmt.Sprintf("%d selected", n))
	}
	return ansi.Truncate(header, max(1, m.width), "…")
}

// laneSlots places cards by visual index and fills the placeholder. Cards
// being dragged out of the lane leave their slots to the placeholder.
func (m Model) laneSlots(ln *lane) []slot {
	n := len(ln.items)
	if ln.z.ReceivingExternal() {
		n++
	}
	slots := make([]slot, n)
	for i := range slots {
		slots[i].isHole = true
	}
	for i := range ln.items {
		v := ln.z.VisualIndex(ln.items[i].ID)
		if v < 0 || v >= n {
			continue
		}
		slots[v] = slot{item: &ln.items[i]}
	}

	if start, span, ok := ln.z.PlaceholderPosition(); ok {
		labels := m.placeholderLabels(ln)
		for k := 0; k < span && start+k < n; k++ {
			label := ""
			if k < len(labels) {
				label = labels[k].Label
			}
			slots[start+k] = slot{placeholder: label}
		}
	}
	return slots
}

func (m Model) placeholderLabels(ln *lane) []models.Item {
	if ln.z.ReceivingExternal() {
		return m.reg.HoveredItems()
	}
	return ln.z.DragState().Items
}

func (m Model) renderSlot(laneIdx int, ln *lane, s slot) string {
	if s.item == nil {
		if s.isHole {
			return blankChip()
		}
		return placeholderStyle.Render(chipLabel(s.placeholder))
	}
	it := *s.item
	label := it.Label
	if it.IsContainer() {
		var inside int
		if col, ok := m.board.Column(ln.columnID); ok {
			inside = len(col.Folders[it.ID])
		}
		label = fmt.Sprintf("▣ %s (%d)", it.Label, inside)
	}

	style := chipStyle
	switch {
	case it.Disabled:
		style = chipDisabledStyle
	case m.targetStyle(ln, it.ID) != nil:
		style = *m.targetStyle(ln, it.ID)
	case ln.z.IsSelected(it.ID):
		style = chipSelectedStyle
	case laneIdx == m.focus && models.IndexOf(ln.items, it.ID) == m.cursor:
		style = chipCursorStyle
	case it.IsContainer():
		style = chipFolderStyle
	}
	return style.Render(chipLabel(label))
}

// targetStyle returns the highlight for a folder under the pointer.
func (m Model) targetStyle(ln *lane, id string) *lipgloss.Style {
	t, ok := ln.z.DropTarget()
	if !ok || t.Item.ID != id {
		return nil
	}
	if t.Accepted {
		return &chipAcceptStyle
	}
	return &chipRejectStyle
}

func chipLabel(s string) string {
	return ansi.Truncate(s, chipWidth-4, "…")
}

func blankChip() string {
	line := strings.Repeat(" ", chipWidth)
	return strings.TrimSuffix(strings.Repeat(line+"\n", chipHeight), "\n")
}
