package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ActionType classifies a mouse report.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionRightClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
	ActionRelease
)

// String returns a string representation of the action.
func (a ActionType) String() string {
	switch a {
	case ActionClick:
		return "click"
	case ActionDoubleClick:
		return "double-click"
	case ActionRightClick:
		return "right-click"
	case ActionHover:
		return "hover"
	case ActionScrollUp:
		return "scroll-up"
	case ActionScrollDown:
		return "scroll-down"
	case ActionScrollLeft:
		return "scroll-left"
	case ActionScrollRight:
		return "scroll-right"
	case ActionDrag:
		return "drag"
	case ActionDragEnd:
		return "drag-end"
	case ActionRelease:
		return "release"
	default:
		return "none"
	}
}

// MouseAction is a classified mouse report.
type MouseAction struct {
	Type   ActionType
	Region *Region
	X, Y   int

	// DragDX and DragDY are the cell offsets from the drag start.
	DragDX, DragDY int

	Msg tea.MouseMsg
}

// ClickResult is the outcome of HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler classifies mouse reports against a HitMap.
type Handler struct {
	HitMap *HitMap

	now func() time.Time

	lastClickID   string
	lastClickTime time.Time

	dragging       bool
	dragStartX     int
	dragStartY     int
	dragRegion     string
	dragStartValue int
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// HandleClick records a click at (x, y). A second click on the same region
// within DoubleClickWindow is a double click; the sequence then resets.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	now := h.now()

	id := ""
	if region != nil {
		id = region.ID
	}
	double := region != nil &&
		id == h.lastClickID &&
		!h.lastClickTime.IsZero() &&
		now.Sub(h.lastClickTime) <= DoubleClickWindow

	if double {
		h.lastClickID = ""
		h.lastClickTime = time.Time{}
	} else {
		h.lastClickID = id
		h.lastClickTime = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// StartDrag begins tracking a drag that started at (x, y) on region.
// startValue is any number the caller wants back when the drag moves, such
// as a scroll offset.
func (h *Handler) StartDrag(x, y int, region string, startValue int) {
	h.dragging = true
	h.dragStartX = x
	h.dragStartY = y
	h.dragRegion = region
	h.dragStartValue = startValue
}

// IsDragging reports whether a drag is being tracked.
func (h *Handler) IsDragging() bool { return h.dragging }

// DragRegion returns the region the drag started on.
func (h *Handler) DragRegion() string { return h.dragRegion }

// DragStartValue returns the value passed to StartDrag.
func (h *Handler) DragStartValue() int { return h.dragStartValue }

// DragDelta returns the offset of (x, y) from the drag start.
func (h *Handler) DragDelta(x, y int) (dx, dy int) {
	return x - h.dragStartX, y - h.dragStartY
}

// EndDrag stops tracking the drag.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
	h.dragStartValue = 0
}

// Clear drops the hit map regions and any drag in progress.
func (h *Handler) Clear() {
	h.HitMap.Clear()
	h.EndDrag()
}

// HandleMouse classifies msg. Wheel reports with Shift held scroll
// horizontally.
func (h *Handler) HandleMouse(msg tea.MouseMsg) MouseAction {
	a := MouseAction{X: msg.X, Y: msg.Y, Msg: msg}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.Type = ActionScrollUp
			if msg.Shift {
				a.Type = ActionScrollLeft
			}
		case tea.MouseButtonWheelDown:
			a.Type = ActionScrollDown
			if msg.Shift {
				a.Type = ActionScrollRight
			}
		case tea.MouseButtonWheelLeft:
			a.Type = ActionScrollLeft
		case tea.MouseButtonWheelRight:
			a.Type = ActionScrollRight
		case tea.MouseButtonLeft:
			res := h.HandleClick(msg.X, msg.Y)
			a.Region = res.Region
			a.Type = ActionClick
			if res.IsDoubleClick {
				a.Type = ActionDoubleClick
			}
		case tea.MouseButtonRight:
			a.Region = h.HitMap.Test(msg.X, msg.Y)
			a.Type = ActionRightClick
		}

	case tea.MouseActionMotion:
		a.Region = h.HitMap.Test(msg.X, msg.Y)
		if h.dragging {
			a.Type = ActionDrag
			a.DragDX, a.DragDY = h.DragDelta(msg.X, msg.Y)
		} else {
			a.Type = ActionHover
		}

	case tea.MouseActionRelease:
		a.Region = h.HitMap.Test(msg.X, msg.Y)
		if h.dragging {
			a.Type = ActionDragEnd
			a.DragDX, a.DragDY = h.DragDelta(msg.X, msg.Y)
			h.EndDrag()
		} else {
			a.Type = ActionRelease
		}
	}
	return a
}
