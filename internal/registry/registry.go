// Package registry brokers cross-zone drags.
//
// A Registry is shared by every zone that should be able to exchange items.
// It is built explicitly and handed to each zone; there is no package-level
// instance, so tests can run isolated registries side by side.
//
// # Field ownership
//
// The hover fields (hovered zone, payload, position) are written only by the
// zone a drag started in. The resolution fields (target index, target
// container) are written only by the zone being hovered, and read back by
// the source when the pointer is released. Writes to resolution fields from
// any other zone are ignored.
//
// A Registry is not safe for concurrent use. Drive it from the goroutine
// that delivers pointer events, such as a bubbletea Update loop.
package registry

import (
	"log/slog"
	"slices"

	"github.com/marcus/freeform/internal/geom"
	"github.com/marcus/freeform/internal/models"
)

// Entry is one registered zone.
type Entry struct {
	ID     string
	Bounds models.BoundsFunc
	Accept models.AcceptFunc
}

// Accepts evaluates the entry's accept predicate against items.
func (e Entry) Accepts(items []models.Item) bool {
	return e.Accept.Accepts(items)
}

// Registry holds the registered zones and the state of the drag currently
// crossing between them.
type Registry struct {
	order   []string
	entries map[string]Entry

	hoveredZone  string
	hoveredItems []models.Item
	position     geom.Point
	hasPosition  bool

	targetIndex       int
	hasTargetIndex    bool
	targetContainer   string
	containerAccepted bool

	watchers  []watcher
	nextWatch int

	logger *slog.Logger
}

type watcher struct {
	id int
	fn func()
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]Entry),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds or replaces a zone. Replacing keeps the zone's original
// position in the scan order.
func (r *Registry) Register(id string, bounds models.BoundsFunc, accept models.AcceptFunc) {
	if id == "" || bounds == nil {
		return
	}
	if _, exists := r.entries[id]; !exists {
		r.order = append(r.order, id)
	}
	r.entries[id] = Entry{ID: id, Bounds: bounds, Accept: accept}
}

// Unregister removes a zone. If the zone was being hovered the hover state
// is cleared so nothing keeps reading its geometry.
func (r *Registry) Unregister(id string) {
	if _, ok := r.entries[id]; !ok {
		return
	}
	delete(r.entries, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.hoveredZone == id {
		r.logger.Debug("hovered zone unregistered", "zone", id)
		r.hoveredZone = ""
		r.hoveredItems = nil
		r.hasPosition = false
		r.resetTarget()
		r.notify()
	}
}

// Lookup returns the entry for id.
func (r *Registry) Lookup(id string) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Entries returns the registered zones in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id])
	}
	return out
}

// FindAtPosition returns the first zone, in registration order, whose live
// bounds contain p. Zones named in exclude and zones that are not laid out
// are skipped.
func (r *Registry) FindAtPosition(p geom.Point, exclude ...string) (Entry, bool) {
	for _, id := range r.order {
		if slices.Contains(exclude, id) {
			continue
		}
		e := r.entries[id]
		rect, ok := e.Bounds()
		if !ok {
			continue
		}
		if rect.Contains(p) {
			return e, true
		}
	}
	return Entry{}, false
}

// SetHovered records the zone a drag is over, the dragged payload and the
// pointer position. Passing an empty zoneID clears the hover. A change of
// zone discards the previous target resolution so it is recomputed for the
// new zone.
func (r *Registry) SetHovered(zoneID string, items []models.Item, p geom.Point) {
	if r.hoveredZone != zoneID {
		r.logger.Debug("hover zone changed", "from", r.hoveredZone, "to", zoneID)
		r.resetTarget()
	}
	r.hoveredZone = zoneID
	if zoneID == "" {
		r.hoveredItems = nil
		r.position = geom.Point{}
		r.hasPosition = false
	} else {
		r.hoveredItems = items
		r.position = p
		r.hasPosition = true
	}
	r.notify()
}

// ClearHover ends the current hover.
func (r *Registry) ClearHover() {
	r.SetHovered("", nil, geom.Point{})
}

// UpdatePosition moves the pointer without touching anything else. It is a
// no-op when nothing is hovered.
func (r *Registry) UpdatePosition(p geom.Point) {
	if r.hoveredZone == "" {
		return
	}
	r.position = p
	r.hasPosition = true
	r.notify()
}

// SetTargetDropIndex records the insertion index resolved by the hovered
// zone. ok=false clears it. Writes from any zone other than the hovered,
// registered one are ignored.
func (r *Registry) SetTargetDropIndex(writer string, index int, ok bool) {
	if !r.isTargetWriter(writer) {
		r.logger.Debug("ignoring stale drop index", "zone", writer, "hovered", r.hoveredZone)
		return
	}
	r.targetIndex = index
	r.hasTargetIndex = ok
}

// SetTargetContainer records the container the hovered zone resolved and
// whether it accepts the payload. An empty id clears it.
func (r *Registry) SetTargetContainer(writer, containerID string, accepted bool) {
	if !r.isTargetWriter(writer) {
		r.logger.Debug("ignoring stale container", "zone", writer, "hovered", r.hoveredZone)
		return
	}
	r.targetContainer = containerID
	r.containerAccepted = containerID != "" && accepted
}

// HoveredZone returns the id of the zone under the drag, or "".
func (r *Registry) HoveredZone() string { return r.hoveredZone }

// HoveredItems returns the payload of the drag over HoveredZone.
func (r *Registry) HoveredItems() []models.Item { return r.hoveredItems }

// Position returns the last pointer position of the hovering drag.
func (r *Registry) Position() (geom.Point, bool) { return r.position, r.hasPosition }

// TargetDropIndex returns the index resolved by the hovered zone.
func (r *Registry) TargetDropIndex() (int, bool) { return r.targetIndex, r.hasTargetIndex }

// TargetContainer returns the container resolved by the hovered zone, if
// any, and whether it accepts the payload.
func (r *Registry) TargetContainer() (id string, accepted bool) {
	return r.targetContainer, r.containerAccepted
}

// Watch calls fn after every change to the hover fields. Target zones use
// it to recompute their resolution. The returned func stops the watch.
func (r *Registry) Watch(fn func()) (cancel func()) {
	r.nextWatch++
	id := r.nextWatch
	r.watchers = append(r.watchers, watcher{id: id, fn: fn})
	return func() {
		for i, w := range r.watchers {
			if w.id == id {
				r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
				return
			}
		}
	}
}

func (r *Registry) notify() {
	ws := append([]watcher(nil), r.watchers...)
	for _, w := range ws {
		w.fn()
	}
}

func (r *Registry) resetTarget() {
	r.targetIndex = 0
	r.hasTargetIndex = false
	r.targetContainer = ""
	r.containerAccepted = false
}

func (r *Registry) isTargetWriter(zoneID string) bool {
	if zoneID == "" || zoneID != r.hoveredZone {
		return false
	}
	_, ok := r.entries[zoneID]
	return ok
}
