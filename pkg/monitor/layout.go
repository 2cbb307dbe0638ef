package monitor

import (
	"math"

	"github.com/marcus/freeform/internal/geom"
	"github.com/marcus/freeform/pkg/monitor/mouse"
)

// Chip and frame dimensions, in terminal cells.
const (
	chipWidth  = 18
	chipHeight = 3
	chipGap    = 1

	// headerLines is the title and divider above the lanes; footerLines
	// is the status and help lines below them.
	headerLines = 2
	footerLines = 2
)

// layout places lanes and chips on screen. It is shared by pointer between
// the model and the geometry accessors handed to zones, so reflowing or
// scrolling moves what the zones measure.
type layout struct {
	width, height int

	// offset is the vertical scroll in lines. Auto-scroll moves it in
	// fractions of a line.
	offset float64

	perRow   int
	laneTops []int // content line of each lane header
	laneRows []int // chip rows per lane
	content  int   // total content lines
}

// reflow recomputes the lane geometry for a terminal of width x height
// and lanes holding counts[i] chips. Every lane keeps room for one extra
// chip so an incoming placeholder never changes the layout.
func (l *layout) reflow(width, height int, counts []int) {
	l.width, l.height = width, height
	l.perRow = max(1, (width+chipGap)/(chipWidth+chipGap))

	l.laneTops = l.laneTops[:0]
	l.laneRows = l.laneRows[:0]
	line := 0
	for _, n := range counts {
		rows := max(1, (n+1+l.perRow-1)/l.perRow)
		l.laneTops = append(l.laneTops, line)
		l.laneRows = append(l.laneRows, rows)
		line += 1 + rows*chipHeight + 1
	}
	l.content = line
	l.clampOffset()
}

func (l *layout) viewTop() int { return headerLines }

func (l *layout) viewHeight() int {
	return max(1, l.height-headerLines-footerLines)
}

func (l *layout) scrollLine() int { return int(math.Floor(l.offset)) }

func (l *layout) maxOffset() float64 {
	return float64(max(0, l.content-l.viewHeight()))
}

func (l *layout) clampOffset() {
	l.offset = max(0, min(l.offset, l.maxOffset()))
}

// scrollBy moves the view by lines and reports whether it moved.
func (l *layout) scrollBy(lines float64) bool {
	before := l.offset
	l.offset += lines
	l.clampOffset()
	return l.offset != before
}

// viewport returns the lane area of the screen.
func (l *layout) viewport() mouse.Rect {
	return mouse.Rect{X: 0, Y: l.viewTop(), W: l.width, H: l.viewHeight()}
}

// laneRect returns lane i on screen: its header line and chip rows.
func (l *layout) laneRect(i int) mouse.Rect {
	return mouse.Rect{
		X: 0,
		Y: l.viewTop() + l.laneTops[i] - l.scrollLine(),
		W: l.width,
		H: 1 + l.laneRows[i]*chipHeight,
	}
}

// slotRect returns the on-screen cell rect of chip slot in lane i.
func (l *layout) slotRect(i, slot int) mouse.Rect {
	lane := l.laneRect(i)
	row, col := slot/l.perRow, slot%l.perRow
	return mouse.Rect{
		X: col * (chipWidth + chipGap),
		Y: lane.Y + 1 + row*chipHeight,
		W: chipWidth,
		H: chipHeight,
	}
}

// clip returns the part of r inside the viewport.
func (l *layout) clip(r mouse.Rect) (mouse.Rect, bool) {
	v := l.viewport()
	x0, y0 := max(r.X, v.X), max(r.Y, v.Y)
	x1, y1 := min(r.X+r.W, v.X+v.W), min(r.Y+r.H, v.Y+v.H)
	if x1 <= x0 || y1 <= y0 {
		return mouse.Rect{}, false
	}
	return mouse.Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

// scrollViewport adapts the layout to autoscroll.Viewport.
type scrollViewport struct {
	l     *layout
	scale mouse.Scale
}

func (v scrollViewport) Bounds() geom.Rect { return v.scale.Rect(v.l.viewport()) }

func (v scrollViewport) ScrollBy(_, dy float64) {
	v.l.scrollBy(dy / v.scale.CellH)
}
