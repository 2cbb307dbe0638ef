// Package events defines the outbound notifications a zone produces.
//
// The taxonomy provides:
//   - Canonical notification kinds
//   - Normalization of the spellings hosts tend to use for them
//   - Payload types for each kind
//   - A Dispatcher that fans one notification out to many handlers
//
// # Spellings
//
// Hosts coming from other toolkits name the same notification differently.
// NormalizeKind accepts kebab, snake and camel case as well as the short
// forms:
//   - 'drag-start', 'drag_start', 'dragStart', 'dragstart' → 'drag-started'
//   - 'select', 'selection' → 'selection-changed'
//   - 'reorder' → 'reorder-intent'
//
// Payloads only ever describe what the engine observed; none of them carry
// a mutated collection. Applying a drop or reorder is the host's job.
package events

import (
	"fmt"
	"sort"
	"strings"

	"github.com/marcus/freeform/internal/geom"
	"github.com/marcus/freeform/internal/models"
)

// Kind is a canonical notification kind.
type Kind string

// Canonical kinds
const (
	KindSelectionChanged Kind = "selection-changed"
	KindDragStarted      Kind = "drag-started"
	KindDragMoved        Kind = "drag-moved"
	KindDragEnded        Kind = "drag-ended"
	KindDrop             Kind = "drop"
	KindReorderIntent    Kind = "reorder-intent"
)

// AllKinds returns all valid kinds.
func AllKinds() map[Kind]bool {
	return map[Kind]bool{
		KindSelectionChanged: true,
		KindDragStarted:      true,
		KindDragMoved:        true,
		KindDragEnded:        true,
		KindDrop:             true,
		KindReorderIntent:    true,
	}
}

// IsValidKind checks if the given kind string is canonical.
func IsValidKind(k string) bool {
	return AllKinds()[Kind(k)]
}

// NormalizeKind maps a kind spelling to its canonical form.
// Returns the canonical kind and true if recognized, or empty string and false.
func NormalizeKind(kind string) (Kind, bool) {
	k := strings.ToLower(kind)
	k = strings.NewReplacer("_", "", "-", "", " ", "").Replace(k)
	switch k {
	case "select", "selection", "selectionchanged", "selectionchange":
		return KindSelectionChanged, true
	case "dragstart", "dragstarted":
		return KindDragStarted, true
	case "dragmove", "dragmoved":
		return KindDragMoved, true
	case "dragend", "dragended":
		return KindDragEnded, true
	case "drop", "dropped":
		return KindDrop, true
	case "reorder", "reorderintent":
		return KindReorderIntent, true
	default:
		return "", false
	}
}

// ParseKinds reads a comma-separated list of kinds in any spelling
// NormalizeKind accepts. Duplicates collapse; an unknown name is an error.
func ParseKinds(list string) ([]Kind, error) {
	var kinds []Kind
	seen := make(map[Kind]bool)
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k := Kind(part)
		if !IsValidKind(part) {
			var ok bool
			if k, ok = NormalizeKind(part); !ok {
				return nil, fmt.Errorf("unknown event %q (want one of %s)", part, strings.Join(kindNames(), ", "))
			}
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

func kindNames() []string {
	var names []string
	for k := range AllKinds() {
		names = append(names, string(k))
	}
	sort.Strings(names)
	return names
}

// Event is implemented by every payload type.
type Event interface {
	Kind() Kind
	// Zone is the id of the zone that produced the event.
	Zone() string
}

// Selection is emitted whenever a zone's selection changes.
type Selection struct {
	ZoneID string
	Items  []models.Item
	Shift  bool
	Ctrl   bool
}

func (e Selection) Kind() Kind   { return KindSelectionChanged }
func (e Selection) Zone() string { return e.ZoneID }

// Drag is the payload of drag-started, drag-moved and drag-ended.
type Drag struct {
	ZoneID   string
	Phase    Kind
	Items    []models.Item
	Position geom.Point
}

func (e Drag) Kind() Kind   { return e.Phase }
func (e Drag) Zone() string { return e.ZoneID }

// Target names the container a drop landed on.
type Target struct {
	Item     models.Item
	Bounds   geom.Rect
	Accepted bool
}

// Drop is emitted when a drag is released onto a valid destination.
//
// For an internal reorder FromIndex/ToIndex are set and TargetZone is
// empty. For a cross-zone drop TargetZone names the receiving zone,
// ToIndex is its resolved insertion index and ContainerID the container
// inside it, if any.
type Drop struct {
	ZoneID      string
	Items       []models.Item
	Target      *Target
	Position    geom.Point
	FromIndex   int
	ToIndex     int
	HasIndices  bool
	TargetZone  string
	ContainerID string
}

func (e Drop) Kind() Kind   { return KindDrop }
func (e Drop) Zone() string { return e.ZoneID }

// External reports whether the drop left its originating zone.
func (e Drop) External() bool {
	return e.TargetZone != ""
}

// Reorder asks the host to move the dragged block from From to To. To is an
// insertion index in the collection as it was before the drag.
type Reorder struct {
	ZoneID string
	From   int
	To     int
}

func (e Reorder) Kind() Kind   { return KindReorderIntent }
func (e Reorder) Zone() string { return e.ZoneID }

// Handler receives notifications.
type Handler func(Event)

// Dispatcher fans notifications out to handlers in subscription order,
// optionally filtered by kind.
type Dispatcher struct {
	subs []subscription
	next int
}

type subscription struct {
	id      int
	kinds   map[Kind]bool
	handler Handler
}

// Subscribe registers h for the given kinds, or every kind when none are
// given. The returned func removes the subscription.
func (d *Dispatcher) Subscribe(h Handler, kinds ...Kind) (unsubscribe func()) {
	d.next++
	sub := subscription{id: d.next, handler: h}
	if len(kinds) > 0 {
		sub.kinds = make(map[Kind]bool, len(kinds))
		for _, k := range kinds {
			sub.kinds[k] = true
		}
	}
	d.subs = append(d.subs, sub)

	id := sub.id
	return func() {
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers e to every matching handler. A nil Dispatcher drops it.
func (d *Dispatcher) Emit(e Event) {
	if d == nil {
		return
	}
	// Copy so handlers may unsubscribe while being called.
	subs := append([]subscription(nil), d.subs...)
	for _, s := range subs {
		if s.kinds != nil && !s.kinds[e.Kind()] {
			continue
		}
		s.handler(e)
	}
}

// Len returns the number of subscriptions.
func (d *Dispatcher) Len() int {
	if d == nil {
		return 0
	}
	return len(d.subs)
}
