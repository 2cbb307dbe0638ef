// Package mouse turns terminal mouse reports into board interactions.
//
// Rendering code records every clickable or droppable rectangle in a HitMap
// as it draws a frame. The Handler tests reports against that map, tracks
// double clicks and drags, and the Scale converts terminal cells into the
// logical pixel space the drag engine measures in.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/freeform/internal/geom"
	"github.com/marcus/freeform/internal/models"
)

// DoubleClickWindow is the longest gap between two clicks on the same
// region that still counts as a double click.
const DoubleClickWindow = 400 * time.Millisecond

// Rect is a rectangle in terminal cells. Right and bottom edges are
// exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named area of the screen.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions of the last rendered frame. Later regions sit on
// top of earlier ones.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect adds a region.
func (m *HitMap) AddRect(id string, x, y, w, h int, data any) {
	m.regions = append(m.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h}, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (m *HitMap) Test(x, y int) *Region {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].Rect.Contains(x, y) {
			return &m.regions[i]
		}
	}
	return nil
}

// Lookup returns the topmost region with id.
func (m *HitMap) Lookup(id string) (Region, bool) {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].ID == id {
			return m.regions[i], true
		}
	}
	return Region{}, false
}

// Regions returns every region in insertion order.
func (m *HitMap) Regions() []Region {
	return m.regions
}

// Clear drops every region. Call it before rendering a new frame.
func (m *HitMap) Clear() {
	m.regions = m.regions[:0]
}

// Bounds returns a live geometry accessor for the region id: each call
// reads the current frame, so a region that was not drawn reports false.
func (m *HitMap) Bounds(id string, s Scale) models.BoundsFunc {
	return func() (geom.Rect, bool) {
		r, ok := m.Lookup(id)
		if !ok {
			return geom.Rect{}, false
		}
		return s.Rect(r.Rect), true
	}
}

// Scale maps terminal cells to logical pixels.
type Scale struct {
	CellW, CellH float64
}

// DefaultScale is an 8x16 pixel cell.
var DefaultScale = Scale{CellW: 8, CellH: 16}

// Point returns the logical position of the center of cell (x, y).
func (s Scale) Point(x, y int) geom.Point {
	return geom.Point{
		X: (float64(x) + 0.5) * s.CellW,
		Y: (float64(y) + 0.5) * s.CellH,
	}
}

// Rect returns r in logical pixels.
func (s Scale) Rect(r Rect) geom.Rect {
	return geom.Rect{
		X: float64(r.X) * s.CellW,
		Y: float64(r.Y) * s.CellH,
		W: float64(r.W) * s.CellW,
		H: float64(r.H) * s.CellH,
	}
}

// PointerEvent converts a mouse report into the engine's pointer event.
func (s Scale) PointerEvent(msg tea.MouseMsg) models.PointerEvent {
	ev := models.PointerEvent{
		Position: s.Point(msg.X, msg.Y),
		Modifiers: models.Modifiers{
			Shift: msg.Shift,
			Ctrl:  msg.Ctrl,
			Alt:   msg.Alt,
		},
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		ev.Button = models.ButtonLeft
	case tea.MouseButtonMiddle:
		ev.Button = models.ButtonMiddle
	case tea.MouseButtonRight:
		ev.Button = models.ButtonRight
	}
	return ev
}
