package models

import "github.com/marcus/freeform/internal/geom"

// ItemKind distinguishes plain items from containers
type ItemKind string

const (
	KindItem      ItemKind = "item"
	KindContainer ItemKind = "container"
)

// IsValidKind checks if a kind is valid. The empty kind is accepted and
// means KindItem.
func IsValidKind(k ItemKind) bool {
	switch k {
	case "", KindItem, KindContainer:
		return true
	}
	return false
}

// Item is one entry of a host collection. The engine only ever reads an
// Item; Data is carried through untouched.
type Item struct {
	ID       string   `json:"id" yaml:"id"`
	Kind     ItemKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
	Disabled bool     `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Data     any      `json:"-" yaml:"-"`
}

// IsContainer reports whether the item can receive drops.
func (i Item) IsContainer() bool {
	return i.Kind == KindContainer
}

// IDs returns the ids of items in order.
func IDs(items []Item) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}

// IndexOf returns the position of id in items, or -1.
func IndexOf(items []Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// ContainsID reports whether items holds an item with the given id.
func ContainsID(items []Item, id string) bool {
	return IndexOf(items, id) >= 0
}

// AcceptFunc decides whether a container or zone takes a payload. A nil
// AcceptFunc accepts everything.
type AcceptFunc func(items []Item) bool

// Accepts evaluates f, treating nil as accept-all.
func (f AcceptFunc) Accepts(items []Item) bool {
	if f == nil {
		return true
	}
	return f(items)
}

// BoundsFunc returns the live bounds of an element. ok is false when the
// element is not currently laid out (unmounted, scrolled away); such
// elements are left out of every computation.
type BoundsFunc func() (r geom.Rect, ok bool)

// Button identifies the pointer button of an event.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Modifiers are the keys held during a pointer event.
type Modifiers struct {
	Shift bool
	Ctrl  bool // ctrl or cmd
	Alt   bool
}

// PointerEvent is one inbound pointer event in the shared coordinate space.
type PointerEvent struct {
	Position  geom.Point
	Button    Button
	Modifiers Modifiers
}
