// Package autoscroll scrolls a viewport while a drag hovers near its edges.
//
// The Scroller does not own a timer. Hosts call OnDragMove with every drag
// position and, while IsScrolling reports true, call Step once per frame
// (the board drives it from a tea.Tick). Stop ends scrolling when the drag
// ends.
package autoscroll

import (
	"time"

	"github.com/marcus/freeform/internal/geom"
)

// Defaults for Options.
const (
	DefaultThreshold = 50
	DefaultSpeed     = 8
	DefaultMaxSpeed  = 20
)

// FrameInterval is the suggested delay between Steps.
const FrameInterval = 16 * time.Millisecond

// Options tune the edge band and the scroll speed.
type Options struct {
	// Threshold is the width of the band along each edge, in pixels.
	Threshold float64 `json:"threshold"`
	// Speed is the base scroll per frame.
	Speed float64 `json:"speed"`
	// MaxSpeed caps the scroll per frame.
	MaxSpeed float64 `json:"max_speed"`
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Speed:     DefaultSpeed,
		MaxSpeed:  DefaultMaxSpeed,
	}
}

// Viewport is a scrollable region.
type Viewport interface {
	// Bounds returns the visible rect in the same space as drag positions.
	Bounds() geom.Rect
	// ScrollBy moves the content offset.
	ScrollBy(dx, dy float64)
}

// Scroller tracks the current scroll velocity for one viewport.
type Scroller struct {
	vp        Viewport
	opts      Options
	dx, dy    float64
	scrolling bool
}

// New returns a scroller for vp. Zero fields in opts take their defaults.
func New(vp Viewport, opts Options) *Scroller {
	def := DefaultOptions()
	if opts.Threshold <= 0 {
		opts.Threshold = def.Threshold
	}
	if opts.Speed <= 0 {
		opts.Speed = def.Speed
	}
	if opts.MaxSpeed <= 0 {
		opts.MaxSpeed = def.MaxSpeed
	}
	return &Scroller{vp: vp, opts: opts}
}

// Speed returns the per-frame speed for a pointer dist pixels from an edge.
// It grows linearly from Speed at the band's inner edge toward twice that
// at the viewport edge, capped at MaxSpeed.
func (s *Scroller) Speed(dist float64) float64 {
	ratio := 1 - dist/s.opts.Threshold
	return min(s.opts.Speed+ratio*s.opts.Speed, s.opts.MaxSpeed)
}

// OnDragMove recomputes the velocity for pointer p. Left is checked before
// right and top before bottom. It reports whether the caller should start
// stepping, that is, whether scrolling was idle and now has a velocity.
func (s *Scroller) OnDragMove(p geom.Point) (start bool) {
	if s.vp == nil {
		return false
	}
	r := s.vp.Bounds()
	left := p.X - r.Left()
	right := r.Right() - p.X
	top := p.Y - r.Top()
	bottom := r.Bottom() - p.Y

	s.dx, s.dy = 0, 0
	switch {
	case s.inBand(left):
		s.dx = -s.Speed(left)
	case s.inBand(right):
		s.dx = s.Speed(right)
	}
	switch {
	case s.inBand(top):
		s.dy = -s.Speed(top)
	case s.inBand(bottom):
		s.dy = s.Speed(bottom)
	}

	if (s.dx != 0 || s.dy != 0) && !s.scrolling {
		s.scrolling = true
		return true
	}
	return false
}

func (s *Scroller) inBand(dist float64) bool {
	return dist > 0 && dist < s.opts.Threshold
}

// Step applies one frame of scrolling. It reports whether another frame
// should follow; once the velocity drops to zero scrolling stops.
func (s *Scroller) Step() bool {
	if s.vp == nil || (s.dx == 0 && s.dy == 0) {
		s.scrolling = false
		return false
	}
	s.vp.ScrollBy(s.dx, s.dy)
	return true
}

// Stop zeroes the velocity and ends scrolling.
func (s *Scroller) Stop() {
	s.dx, s.dy = 0, 0
	s.scrolling = false
}

// IsScrolling reports whether frames are being stepped.
func (s *Scroller) IsScrolling() bool { return s.scrolling }

// Velocity returns the current per-frame scroll.
func (s *Scroller) Velocity() (dx, dy float64) { return s.dx, s.dy }
