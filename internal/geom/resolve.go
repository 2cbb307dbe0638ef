package geom

import (
	"math"
	"sort"
)

// Resolver defaults.
const (
	DefaultRowTolerance = 20
	DefaultEdgeRatio    = 0.40
	DefaultEdgeMin      = 20
)

// Entry is one visible item: its logical index in the collection and its
// live bounds.
type Entry struct {
	Index int
	Rect  Rect
}

// IndexSet is a set of logical indices to leave out of a computation.
type IndexSet map[int]struct{}

// NewIndexSet builds a set from the given indices.
func NewIndexSet(indices ...int) IndexSet {
	s := make(IndexSet, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

// Has reports whether i is in the set. A nil set is empty.
func (s IndexSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Resolver converts a pointer position plus the visible item rects into an
// insertion index. The zero value is not useful; use DefaultResolver.
type Resolver struct {
	// RowTolerance is the maximum difference between two tops for the
	// entries to share a row.
	RowTolerance float64

	// EdgeRatio and EdgeMin size the edge band of an item:
	// max(EdgeRatio*width, EdgeMin), measured inward from each side.
	EdgeRatio float64
	EdgeMin   float64
}

// DefaultResolver returns a resolver with the standard tolerances.
func DefaultResolver() Resolver {
	return Resolver{
		RowTolerance: DefaultRowTolerance,
		EdgeRatio:    DefaultEdgeRatio,
		EdgeMin:      DefaultEdgeMin,
	}
}

// EdgeThreshold returns the width of the edge band for an item of the
// given width.
func (r Resolver) EdgeThreshold(width float64) float64 {
	return math.Max(width*r.EdgeRatio, r.EdgeMin)
}

// GroupRows sorts entries top-to-bottom and splits them into rows. An entry
// joins the current row while its top is within RowTolerance of the
// previous entry's top. Each row is ordered left-to-right.
func (r Resolver) GroupRows(entries []Entry) [][]Entry {
	if len(entries) == 0 {
		return nil
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rect.Top() != sorted[j].Rect.Top() {
			return sorted[i].Rect.Top() < sorted[j].Rect.Top()
		}
		return sorted[i].Rect.Left() < sorted[j].Rect.Left()
	})

	var rows [][]Entry
	var row []Entry
	lastTop := math.Inf(-1)
	for _, e := range sorted {
		if len(row) == 0 || math.Abs(e.Rect.Top()-lastTop) < r.RowTolerance {
			row = append(row, e)
		} else {
			rows = append(rows, row)
			row = []Entry{e}
		}
		lastTop = e.Rect.Top()
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].Rect.Left() < row[j].Rect.Left()
		})
	}
	return rows
}

// Resolve returns the insertion index for p. The boolean is false when p
// sits over the interior of an item rather than a gap; callers keep their
// previous index in that case.
//
// Entries whose Index is in exclude are ignored. With nothing visible the
// answer is 0.
func (r Resolver) Resolve(p Point, entries []Entry, exclude IndexSet) (int, bool) {
	visible := entries
	if len(exclude) > 0 {
		visible = make([]Entry, 0, len(entries))
		for _, e := range entries {
			if !exclude.Has(e.Index) {
				visible = append(visible, e)
			}
		}
	}
	if len(visible) == 0 {
		return 0, true
	}

	rows := r.GroupRows(visible)

	// Pointer above the first row is treated as being on it.
	if p.Y < rowTop(rows[0]) {
		return r.resolveInRow(rows[0], p.X)
	}

	for i, row := range rows {
		top := rowTop(row)
		bottom := math.Inf(1)
		if i+1 < len(rows) {
			bottom = rowTop(rows[i+1])
		}
		if p.Y >= top && p.Y < bottom {
			return r.resolveInRow(row, p.X)
		}
	}

	last := rows[len(rows)-1]
	return last[len(last)-1].Index + 1, true
}

// rowTop is the highest top in a row. Rows are ordered left to right, so
// the first entry is not necessarily the highest one.
func rowTop(row []Entry) float64 {
	top := math.Inf(1)
	for _, e := range row {
		top = math.Min(top, e.Rect.Top())
	}
	return top
}

// resolveInRow scans the gaps of a row left to right. The gap between A and
// B runs from A's right edge band to B's left edge band.
func (r Resolver) resolveInRow(row []Entry, x float64) (int, bool) {
	for i := 0; i <= len(row); i++ {
		var prev, next *Entry
		if i > 0 {
			prev = &row[i-1]
		}
		if i < len(row) {
			next = &row[i]
		}

		left := math.Inf(-1)
		right := math.Inf(1)
		if prev != nil {
			left = prev.Rect.Right() - r.EdgeThreshold(prev.Rect.W)
		}
		if next != nil {
			right = next.Rect.Left() + r.EdgeThreshold(next.Rect.W)
		}

		if x >= left && x < right {
			if next != nil {
				return next.Index, true
			}
			return prev.Index + 1, true
		}
	}
	return 0, false
}

// CompactedPosition returns where index target lands once every index for
// which dragged reports true is removed from the list: the count of
// undragged indices below target.
func CompactedPosition(target int, dragged func(i int) bool) int {
	pos := 0
	for i := 0; i < target; i++ {
		if !dragged(i) {
			pos++
		}
	}
	return pos
}
