// Package geom holds the coordinate types shared by every zone and the
// resolver that turns a pointer position into an insertion index.
//
// All values are logical pixels in one coordinate space (the viewport).
// Rects are never cached by callers: they are re-read from live layout
// every time a computation needs them.
package geom

import "math"

// Point is a position in the shared coordinate space.
type Point struct {
	X float64
	Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Size is a width/height pair.
type Size struct {
	W float64
	H float64
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// RectFromPoints returns the normalized rect spanned by two corners.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(a.X - b.X),
		H: math.Abs(a.Y - b.Y),
	}
}

// Left returns the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Size returns the rect's dimensions.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// Area returns W*H.
func (r Rect) Area() float64 { return r.W * r.H }

// Contains reports whether p lies inside r. Edges are inclusive on all
// four sides, matching how zones and containers are hit-tested.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left() && p.X <= r.Right() &&
		p.Y >= r.Top() && p.Y <= r.Bottom()
}

// InsetX shrinks r horizontally by dx on each side. The result may have a
// negative width, in which case Contains never matches.
func (r Rect) InsetX(dx float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y, W: r.W - 2*dx, H: r.H}
}

// Intersects reports whether r and o overlap (touching edges count).
func (r Rect) Intersects(o Rect) bool {
	return r.Left() <= o.Right() && o.Left() <= r.Right() &&
		r.Top() <= o.Bottom() && o.Top() <= r.Bottom()
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}
