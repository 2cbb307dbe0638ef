package monitor

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/freeform/internal/models"
	"github.com/sahilm/fuzzy"
)

func (m Model) handleFilterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		m.applyFilter(m.filter.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

// applyFilter selects the focused lane's cards whose labels fuzzy-match
// pattern and moves the cursor to the best match.
func (m *Model) applyFilter(pattern string) {
	ln := m.focused()
	pattern = strings.TrimSpace(pattern)
	if ln == nil || pattern == "" {
		return
	}
	matches := matchCards(pattern, ln.items)
	ln.z.SetSelection(matches)
	if len(matches) == 0 {
		m.status, m.statusErr = fmt.Sprintf("no cards match %q", pattern), false
		return
	}
	m.cursor = models.IndexOf(ln.items, matches[0].ID)
	m.status, m.statusErr = fmt.Sprintf("%d match %q", len(matches), pattern), false
}

// matchCards returns the enabled cards matching pattern, best first.
func matchCards(pattern string, cards []models.Item) []models.Item {
	labels := make([]string, len(cards))
	for i, c := range cards {
		labels[i] = c.Label
	}
	var out []models.Item
	for _, mt := range fuzzy.Find(pattern, labels) {
		if c := cards[mt.Index]; !c.Disabled {
			out = append(out, c)
		}
	}
	return out
}
