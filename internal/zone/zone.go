// Package zone implements one drag-and-drop and selection scope.
//
// A Zone owns a read-only view of the host's item collection, the live
// geometry accessors of the items and containers it renders, and all
// transient pointer state: the drag state machine, the selection, the lasso
// and the current drop index. It never mutates the collection. Completed
// drags are reported through Release values and events; the host applies
// them and hands the new collection back with SetItems.
//
// Zones that share a registry.Registry can exchange items. The zone a drag
// starts in publishes its hover through the registry (see ExternalDrag) and
// the hovered zone answers with a resolved index or container (see
// ExternalDrop).
//
// Like the registry, a Zone is not safe for concurrent use.
package zone

import (
	"log/slog"

	"github.com/marcus/freeform/internal/events"
	"github.com/marcus/freeform/internal/geom"
	"github.com/marcus/freeform/internal/models"
	"github.com/marcus/freeform/internal/registry"
)

// Defaults for Options.
const (
	DefaultDragThreshold  = 5
	DefaultContainerInset = 20
)

// Options are the recognized zone settings.
type Options struct {
	// DragThreshold is how far, on either axis, the pointer must travel
	// before an armed press becomes a drag.
	DragThreshold float64

	SelectionEnabled bool
	DragEnabled      bool

	// Disabled suppresses every interaction.
	Disabled bool

	// ContainerInset is trimmed from the left and right of a container's
	// bounds before hit-testing, so its edges still reorder.
	ContainerInset float64

	Resolver geom.Resolver
}

// DefaultOptions returns the standard settings.
func DefaultOptions() Options {
	return Options{
		DragThreshold:    DefaultDragThreshold,
		SelectionEnabled: true,
		DragEnabled:      true,
		ContainerInset:   DefaultContainerInset,
		Resolver:         geom.DefaultResolver(),
	}
}

// DragState describes the drag in progress. Items is non-empty exactly
// when Active is true.
type DragState struct {
	Active          bool
	Items           []models.Item
	StartPosition   geom.Point
	CurrentPosition geom.Point
	ThresholdPassed bool
}

// Phase is the position of a zone in the drag state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseArmed
	PhaseDragging
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseArmed:
		return "armed"
	case PhaseDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// DropTarget is the container under the pointer.
type DropTarget struct {
	Item     models.Item
	Bounds   geom.Rect
	Accepted bool
}

type container struct {
	item   models.Item
	bounds models.BoundsFunc
	accept models.AcceptFunc
}

// Zone is a single drag-and-drop scope.
type Zone struct {
	id     string
	opts   Options
	logger *slog.Logger

	items      []models.Item
	itemBounds map[string]models.BoundsFunc
	containers []container
	bounds     models.BoundsFunc
	accept     models.AcceptFunc

	reg        *registry.Registry
	registered bool
	external   *ExternalDrag
	incoming   *ExternalDrop

	drag        DragState
	selection   SelectionState
	anchor      string
	lassoStart  geom.Point
	lassoBase   []models.Item
	dropIndex   int
	hasDrop     bool
	sourceIndex int
	hasSource   bool
	target      *DropTarget
	draggedSize geom.Size
	hasSize     bool

	events events.Dispatcher
}

// Option configures a Zone.
type Option func(*Zone)

// WithOptions replaces the zone settings.
func WithOptions(o Options) Option {
	return func(z *Zone) { z.opts = o }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(z *Zone) {
		if l != nil {
			z.logger = l
		}
	}
}

// WithBounds sets the accessor for the zone's own bounds. Without it the
// zone treats every position as inside and cannot be a cross-zone target.
func WithBounds(b models.BoundsFunc) Option {
	return func(z *Zone) { z.bounds = b }
}

// WithAccept sets the predicate deciding whether the zone takes items
// dropped from another zone directly (not into one of its containers).
func WithAccept(f models.AcceptFunc) Option {
	return func(z *Zone) { z.accept = f }
}

// WithRegistry connects the zone to a shared registry. A zone with bounds
// registers itself as a target; every connected zone can act as a source.
func WithRegistry(r *registry.Registry) Option {
	return func(z *Zone) { z.reg = r }
}

// New creates a zone with the given id and the host's current collection.
func New(id string, items []models.Item, opts ...Option) *Zone {
	z := &Zone{
		id:         id,
		opts:       DefaultOptions(),
		logger:     slog.Default(),
		items:      items,
		itemBounds: make(map[string]models.BoundsFunc),
	}
	for _, opt := range opts {
		opt(z)
	}
	z.logger = z.logger.With("zone", id)

	if z.reg != nil {
		z.external = newExternalDrag(z.reg, id, z.logger)
		if id != "" && z.bounds != nil {
			z.reg.Register(id, z.bounds, z.accept)
			z.registered = true
			z.incoming = newExternalDrop(z)
		}
	}
	return z
}

// Close detaches the zone from its registry. Any hover the zone published
// or received is cleared so no other zone reads its geometry again.
func (z *Zone) Close() {
	if z.external != nil {
		z.external.Cleanup()
	}
	if z.incoming != nil {
		z.incoming.stop()
		z.incoming = nil
	}
	if z.registered {
		z.reg.Unregister(z.id)
		z.registered = false
	}
	z.resetDrag()
}

// ID returns the zone identifier.
func (z *Zone) ID() string { return z.id }

// Options returns the zone settings.
func (z *Zone) Options() Options { return z.opts }

// SetOptions replaces the zone settings.
func (z *Zone) SetOptions(o Options) { z.opts = o }

// Items returns the collection as last supplied by the host.
func (z *Zone) Items() []models.Item { return z.items }

// SetItems replaces the collection. Hosts call it after applying a drop.
func (z *Zone) SetItems(items []models.Item) {
	z.items = items
}

// Bounds returns the zone's live bounds.
func (z *Zone) Bounds() (geom.Rect, bool) {
	if z.bounds == nil {
		return geom.Rect{}, false
	}
	return z.bounds()
}

// Registered reports whether other zones can drop into this one.
func (z *Zone) Registered() bool { return z.registered }

// RegisterItem attaches the geometry accessor for a rendered item.
func (z *Zone) RegisterItem(id string, bounds models.BoundsFunc) {
	if id == "" || bounds == nil {
		return
	}
	z.itemBounds[id] = bounds
}

// UnregisterItem detaches an item, typically when it is no longer rendered.
func (z *Zone) UnregisterItem(id string) {
	delete(z.itemBounds, id)
}

// RegisterContainer makes item a drop target inside this zone. accept may
// be nil.
func (z *Zone) RegisterContainer(item models.Item, bounds models.BoundsFunc, accept models.AcceptFunc) {
	if item.ID == "" || bounds == nil {
		return
	}
	c := container{item: item, bounds: bounds, accept: accept}
	for i := range z.containers {
		if z.containers[i].item.ID == item.ID {
			z.containers[i] = c
			return
		}
	}
	z.containers = append(z.containers, c)
}

// UnregisterContainer removes a container. If it was the current drop
// target the target is cleared.
func (z *Zone) UnregisterContainer(id string) {
	for i := range z.containers {
		if z.containers[i].item.ID == id {
			z.containers = append(z.containers[:i], z.containers[i+1:]...)
			break
		}
	}
	if z.target != nil && z.target.Item.ID == id {
		z.target = nil
	}
}

// Subscribe registers h for the given notification kinds (all when none
// are given).
func (z *Zone) Subscribe(h events.Handler, kinds ...events.Kind) (unsubscribe func()) {
	return z.events.Subscribe(h, kinds...)
}

// DragState returns a copy of the current drag state.
func (z *Zone) DragState() DragState {
	d := z.drag
	d.Items = append([]models.Item(nil), z.drag.Items...)
	return d
}

// Phase returns the current state machine phase.
func (z *Zone) Phase() Phase {
	switch {
	case !z.drag.Active:
		return PhaseIdle
	case !z.drag.ThresholdPassed:
		return PhaseArmed
	default:
		return PhaseDragging
	}
}

// DropIndex returns the insertion index the pointer currently resolves to.
func (z *Zone) DropIndex() (int, bool) { return z.dropIndex, z.hasDrop }

// SourceIndex returns the index the drag started from, or -1 while an
// external drag is hovering this zone.
func (z *Zone) SourceIndex() (int, bool) { return z.sourceIndex, z.hasSource }

// ReceivingExternal reports whether another zone's drag is over this one.
func (z *Zone) ReceivingExternal() bool {
	return z.hasSource && z.sourceIndex == -1
}

// DropTarget returns the container under the pointer, if any.
func (z *Zone) DropTarget() (DropTarget, bool) {
	if z.target == nil {
		return DropTarget{}, false
	}
	return *z.target, true
}

// DraggedSize returns the size of the first dragged item, captured when the
// press was armed.
func (z *Zone) DraggedSize() (geom.Size, bool) { return z.draggedSize, z.hasSize }

// External returns the source-side coordinator, or nil without a registry.
func (z *Zone) External() *ExternalDrag { return z.external }

// IsDragged reports whether the item with id is part of the active drag.
func (z *Zone) IsDragged(id string) bool {
	return z.drag.Active && models.ContainsID(z.drag.Items, id)
}

// insideBounds reports whether p is within the zone. Zones without a
// bounds accessor contain everything; zones that are not laid out contain
// nothing.
func (z *Zone) insideBounds(p geom.Point) bool {
	if z.bounds == nil {
		return true
	}
	r, ok := z.bounds()
	return ok && r.Contains(p)
}

// visibleEntries collects the live rect of every laid-out item that is
// still part of the collection.
func (z *Zone) visibleEntries() []geom.Entry {
	entries := make([]geom.Entry, 0, len(z.itemBounds))
	for i, it := range z.items {
		b, ok := z.itemBounds[it.ID]
		if !ok {
			continue
		}
		r, ok := b()
		if !ok {
			continue
		}
		entries = append(entries, geom.Entry{Index: i, Rect: r})
	}
	return entries
}

// draggedIndices returns the collection indices of the dragged items.
func (z *Zone) draggedIndices() geom.IndexSet {
	set := make(geom.IndexSet, len(z.drag.Items))
	for _, it := range z.drag.Items {
		if i := models.IndexOf(z.items, it.ID); i >= 0 {
			set[i] = struct{}{}
		}
	}
	return set
}

// containerAt hit-tests the registered containers. Containers named in
// skip are ignored. When several inset rects contain p the smallest wins,
// ties going to the earliest registered.
func (z *Zone) containerAt(p geom.Point, skip []models.Item, payload []models.Item) *DropTarget {
	var best *DropTarget
	bestArea := 0.0
	for _, c := range z.containers {
		if models.ContainsID(skip, c.item.ID) {
			continue
		}
		r, ok := c.bounds()
		if !ok {
			continue
		}
		if !r.InsetX(z.opts.ContainerInset).Contains(p) {
			continue
		}
		if best != nil && r.Area() >= bestArea {
			continue
		}
		best = &DropTarget{
			Item:     c.item,
			Bounds:   r,
			Accepted: c.accept.Accepts(payload),
		}
		bestArea = r.Area()
	}
	return best
}

func (z *Zone) findContainer(id string) (container, bool) {
	for _, c := range z.containers {
		if c.item.ID == id {
			return c, true
		}
	}
	return container{}, false
}
