package autoscroll

import (
	"testing"

	"github.com/marcus/freeform/internal/geom"
)

type fakeViewport struct {
	rect   geom.Rect
	sx, sy float64
}

func (v *fakeViewport) Bounds() geom.Rect { return v.rect }

func (v *fakeViewport) ScrollBy(dx, dy float64) {
	v.sx += dx
	v.sy += dy
}

func newScroller() (*Scroller, *fakeViewport) {
	vp := &fakeViewport{rect: geom.Rect{X: 0, Y: 0, W: 400, H: 300}}
	return New(vp, Options{}), vp
}

func TestSpeed(t *testing.T) {
	s, _ := newScroller()
	tests := []struct {
		dist float64
		want float64
	}{
		{50, 8},
		{25, 12},
		{1, 15.84},
		{0, 16},
	}
	for _, tt := range tests {
		if got := s.Speed(tt.dist); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("Speed(%v) = %v, want %v", tt.dist, got, tt.want)
		}
	}

	capped := New(nil, Options{Threshold: 50, Speed: 15, MaxSpeed: 20})
	if got := capped.Speed(0); got != 20 {
		t.Errorf("capped Speed(0) = %v, want 20", got)
	}
}

func TestOnDragMoveEdges(t *testing.T) {
	s, _ := newScroller()
	tests := []struct {
		name   string
		p      geom.Point
		dx, dy float64
	}{
		{"center", geom.Point{X: 200, Y: 150}, 0, 0},
		{"left", geom.Point{X: 25, Y: 150}, -12, 0},
		{"right", geom.Point{X: 375, Y: 150}, 12, 0},
		{"top", geom.Point{X: 200, Y: 25}, 0, -12},
		{"bottom", geom.Point{X: 200, Y: 275}, 0, 12},
		{"corner", geom.Point{X: 25, Y: 25}, -12, -12},
		{"on edge", geom.Point{X: 0, Y: 150}, 0, 0},
		{"outside", geom.Point{X: -10, Y: 150}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.OnDragMove(tt.p)
			dx, dy := s.Velocity()
			if dx != tt.dx || dy != tt.dy {
				t.Errorf("velocity = (%v, %v), want (%v, %v)", dx, dy, tt.dx, tt.dy)
			}
		})
	}
}

func TestLeftWinsInNarrowViewport(t *testing.T) {
	vp := &fakeViewport{rect: geom.Rect{X: 0, Y: 0, W: 60, H: 300}}
	s := New(vp, Options{})
	s.OnDragMove(geom.Point{X: 20, Y: 150})
	if dx, _ := s.Velocity(); dx >= 0 {
		t.Errorf("dx = %v, want negative", dx)
	}
}

func TestStepLifecycle(t *testing.T) {
	s, vp := newScroller()

	if s.OnDragMove(geom.Point{X: 200, Y: 150}) {
		t.Error("center should not start scrolling")
	}
	if !s.OnDragMove(geom.Point{X: 200, Y: 275}) {
		t.Fatal("bottom band should start scrolling")
	}
	if !s.IsScrolling() {
		t.Error("IsScrolling should be true")
	}
	if s.OnDragMove(geom.Point{X: 200, Y: 280}) {
		t.Error("already scrolling should not start again")
	}

	if !s.Step() || !s.Step() {
		t.Fatal("Step should continue while velocity is non-zero")
	}
	if vp.sy != 2*s.Speed(20) || vp.sx != 0 {
		t.Errorf("scrolled (%v, %v)", vp.sx, vp.sy)
	}

	s.OnDragMove(geom.Point{X: 200, Y: 150})
	if s.Step() {
		t.Error("Step should stop once the pointer leaves the band")
	}
	if s.IsScrolling() {
		t.Error("IsScrolling should be false after the loop ends")
	}

	s.OnDragMove(geom.Point{X: 10, Y: 150})
	s.Stop()
	if s.IsScrolling() || s.Step() {
		t.Error("Stop should end scrolling")
	}
	if dx, dy := s.Velocity(); dx != 0 || dy != 0 {
		t.Errorf("velocity after Stop = (%v, %v)", dx, dy)
	}
}
