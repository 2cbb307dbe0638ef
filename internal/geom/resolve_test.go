package geom

import "testing"

// threeInARow is a single row of three 100px-wide items with no gaps.
func threeInARow() []Entry {
	return []Entry{
		{Index: 0, Rect: Rect{X: 0, Y: 0, W: 100, H: 50}},
		{Index: 1, Rect: Rect{X: 100, Y: 0, W: 100, H: 50}},
		{Index: 2, Rect: Rect{X: 200, Y: 0, W: 100, H: 50}},
	}
}

func TestEdgeThreshold(t *testing.T) {
	r := DefaultResolver()

	tests := []struct {
		width float64
		want  float64
	}{
		{100, 40},
		{200, 80},
		{40, 20}, // 16 < minimum
		{0, 20},
	}
	for _, tt := range tests {
		if got := r.EdgeThreshold(tt.width); got != tt.want {
			t.Errorf("EdgeThreshold(%v) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestResolveEmpty(t *testing.T) {
	idx, ok := DefaultResolver().Resolve(Point{X: 500, Y: 500}, nil, nil)
	if !ok || idx != 0 {
		t.Errorf("Resolve(empty) = (%d, %v), want (0, true)", idx, ok)
	}
}

func TestResolveSingleRow(t *testing.T) {
	r := DefaultResolver()
	entries := threeInARow()

	tests := []struct {
		name   string
		x      float64
		want   int
		wantOK bool
	}{
		{"far left", -50, 0, true},
		{"leading band of first item", 30, 0, true},
		{"interior of item 0", 50, 0, false},
		{"between item 0 and 1", 95, 1, true},
		{"left band of item 1", 130, 1, true},
		{"interior of item 1", 150, 0, false},
		{"between item 1 and 2", 170, 2, true},
		{"interior of item 2", 250, 0, false},
		{"trailing band of last item", 280, 3, true},
		{"far right", 1000, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := r.Resolve(Point{X: tt.x, Y: 25}, entries, nil)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(x=%v) ok = %v, want %v", tt.x, ok, tt.wantOK)
			}
			if ok && idx != tt.want {
				t.Errorf("Resolve(x=%v) = %d, want %d", tt.x, idx, tt.want)
			}
		})
	}
}

func TestResolveLeadingBandAlwaysZero(t *testing.T) {
	r := DefaultResolver()
	widths := []float64{30, 60, 100, 250}

	for _, w := range widths {
		entries := []Entry{
			{Index: 0, Rect: Rect{X: 10, Y: 0, W: w, H: 20}},
			{Index: 1, Rect: Rect{X: 10 + w, Y: 0, W: w, H: 20}},
		}
		band := r.EdgeThreshold(w)
		for _, x := range []float64{10, 10 + band/2, 10 + band - 0.01} {
			idx, ok := r.Resolve(Point{X: x, Y: 5}, entries, nil)
			if !ok || idx != 0 {
				t.Errorf("width %v x=%v: Resolve = (%d, %v), want (0, true)", w, x, idx, ok)
			}
		}
	}
}

func TestResolveExcludesIndices(t *testing.T) {
	r := DefaultResolver()
	entries := threeInARow()

	// With item 1 excluded, x=150 falls in the gap between items 0 and 2.
	idx, ok := r.Resolve(Point{X: 150, Y: 25}, entries, NewIndexSet(1))
	if !ok || idx != 2 {
		t.Errorf("Resolve with exclusion = (%d, %v), want (2, true)", idx, ok)
	}

	// Everything excluded behaves like an empty collection.
	idx, ok = r.Resolve(Point{X: 150, Y: 25}, entries, NewIndexSet(0, 1, 2))
	if !ok || idx != 0 {
		t.Errorf("Resolve with all excluded = (%d, %v), want (0, true)", idx, ok)
	}
}

func TestResolveGrid(t *testing.T) {
	r := DefaultResolver()
	// Two rows of two, deliberately shuffled.
	entries := []Entry{
		{Index: 3, Rect: Rect{X: 100, Y: 100, W: 100, H: 80}},
		{Index: 0, Rect: Rect{X: 0, Y: 0, W: 100, H: 80}},
		{Index: 2, Rect: Rect{X: 0, Y: 104, W: 100, H: 80}},
		{Index: 1, Rect: Rect{X: 100, Y: 3, W: 100, H: 80}},
	}

	tests := []struct {
		name   string
		p      Point
		want   int
		wantOK bool
	}{
		{"above first row", Point{X: 10, Y: -40}, 0, true},
		{"first row middle gap", Point{X: 100, Y: 40}, 1, true},
		{"first row trailing", Point{X: 190, Y: 40}, 2, true},
		{"second row leading", Point{X: 5, Y: 150}, 2, true},
		{"second row middle gap", Point{X: 100, Y: 150}, 3, true},
		{"below everything", Point{X: 195, Y: 900}, 4, true},
		{"second row interior", Point{X: 150, Y: 150}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, ok := r.Resolve(tt.p, entries, nil)
			if ok != tt.wantOK || (ok && idx != tt.want) {
				t.Errorf("Resolve(%v) = (%d, %v), want (%d, %v)", tt.p, idx, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestGroupRows(t *testing.T) {
	r := DefaultResolver()

	// Tops within tolerance share a row regardless of input order.
	rows := r.GroupRows([]Entry{
		{Index: 1, Rect: Rect{X: 200, Y: 5, W: 10, H: 10}},
		{Index: 0, Rect: Rect{X: 0, Y: 0, W: 10, H: 10}},
		{Index: 2, Rect: Rect{X: 100, Y: 19, W: 10, H: 10}},
	})
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	got := []int{rows[0][0].Index, rows[0][1].Index, rows[0][2].Index}
	want := []int{0, 2, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row order = %v, want %v", got, want)
			break
		}
	}

	// Tops further apart than tolerance split rows.
	rows = r.GroupRows([]Entry{
		{Index: 0, Rect: Rect{X: 0, Y: 0, W: 10, H: 10}},
		{Index: 1, Rect: Rect{X: 0, Y: 21, W: 10, H: 10}},
	})
	if len(rows) != 2 {
		t.Errorf("len(rows) = %d, want 2", len(rows))
	}

	if rows := r.GroupRows(nil); rows != nil {
		t.Errorf("GroupRows(nil) = %v, want nil", rows)
	}
}

func TestResolveStaggeredRowTop(t *testing.T) {
	r := DefaultResolver()
	// The second row's leftmost card sits 15 lower than its neighbour; the
	// row still starts at the higher of the two.
	entries := []Entry{
		{Index: 0, Rect: Rect{X: 0, Y: 0, W: 100, H: 50}},
		{Index: 1, Rect: Rect{X: 100, Y: 0, W: 100, H: 50}},
		{Index: 2, Rect: Rect{X: 0, Y: 115, W: 100, H: 50}},
		{Index: 3, Rect: Rect{X: 100, Y: 100, W: 100, H: 50}},
	}

	tests := []struct {
		name string
		p    Point
		want int
	}{
		{name: "between the two tops", p: Point{X: 95, Y: 105}, want: 3},
		{name: "above the higher top", p: Point{X: 95, Y: 95}, want: 1},
		{name: "below both tops", p: Point{X: 95, Y: 120}, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.p, entries, nil)
			if !ok || got != tt.want {
				t.Errorf("Resolve(%v) = (%d, %v), want (%d, true)", tt.p, got, ok, tt.want)
			}
		})
	}

	// A first row whose leftmost card is lower still catches a pointer
	// between its tops.
	first := []Entry{
		{Index: 0, Rect: Rect{X: 0, Y: 15, W: 100, H: 50}},
		{Index: 1, Rect: Rect{X: 100, Y: 0, W: 100, H: 50}},
	}
	if got, ok := r.Resolve(Point{X: 95, Y: 5}, first, nil); !ok || got != 1 {
		t.Errorf("Resolve in staggered first row = (%d, %v), want (1, true)", got, ok)
	}
}

func TestCompactedPosition(t *testing.T) {
	dragged := func(i int) bool { return i == 1 || i == 3 }

	tests := []struct {
		target int
		want   int
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
	}
	for _, tt := range tests {
		if got := CompactedPosition(tt.target, dragged); got != tt.want {
			t.Errorf("CompactedPosition(%d) = %d, want %d", tt.target, got, tt.want)
		}
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 100, H: 40}

	if !r.Contains(Point{X: 10, Y: 10}) || !r.Contains(Point{X: 110, Y: 50}) {
		t.Error("Contains should include edges")
	}
	if r.Contains(Point{X: 9, Y: 20}) {
		t.Error("Contains(9,20) = true, want false")
	}

	inset := r.InsetX(20)
	if inset.Contains(Point{X: 25, Y: 20}) {
		t.Error("inset rect should exclude the left margin")
	}
	if !inset.Contains(Point{X: 30, Y: 20}) {
		t.Error("inset rect should include x=30")
	}

	narrow := Rect{X: 0, Y: 0, W: 30, H: 10}.InsetX(20)
	if narrow.Contains(Point{X: 15, Y: 5}) {
		t.Error("over-inset rect should contain nothing")
	}

	lasso := RectFromPoints(Point{X: 50, Y: 60}, Point{X: 0, Y: 20})
	if lasso != (Rect{X: 0, Y: 20, W: 50, H: 40}) {
		t.Errorf("RectFromPoints = %+v", lasso)
	}
	if !lasso.Intersects(r) {
		t.Error("expected lasso to intersect r")
	}
	if lasso.Intersects(Rect{X: 200, Y: 200, W: 5, H: 5}) {
		t.Error("unexpected intersection")
	}
}
