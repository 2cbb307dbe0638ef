package zone

import (
	"log/slog"

	"github.com/marcus/freeform/internal/geom"
	"github.com/marcus/freeform/internal/models"
	"github.com/marcus/freeform/internal/registry"
)

// ExternalResult is what the source learns when a drag is released over
// another zone.
type ExternalResult struct {
	ZoneID      string
	DropIndex   int
	ContainerID string

	// Void is true when the hovered zone or container rejected the
	// payload.
	Void bool
}

// ExternalDrag is the source side of a cross-zone drag. It watches the
// pointer against the registry and publishes the hover there.
type ExternalDrag struct {
	reg     *registry.Registry
	ownID   string
	current string
	logger  *slog.Logger
}

func newExternalDrag(reg *registry.Registry, ownID string, logger *slog.Logger) *ExternalDrag {
	return &ExternalDrag{reg: reg, ownID: ownID, logger: logger}
}

// Current returns the zone the drag is hovering, or "".
func (d *ExternalDrag) Current() string { return d.current }

// Detect resolves the zone under p, ignoring the source's own zone, and
// updates the registry. A change of zone publishes a fresh hover; staying
// in the same zone only moves the position.
func (d *ExternalDrag) Detect(p geom.Point, items []models.Item) {
	var exclude []string
	if d.ownID != "" {
		exclude = append(exclude, d.ownID)
	}
	zoneID := ""
	if e, ok := d.reg.FindAtPosition(p, exclude...); ok {
		zoneID = e.ID
	}

	if zoneID != d.current {
		d.logger.Debug("external hover", "from", d.current, "to", zoneID)
		d.current = zoneID
		d.reg.SetHovered(zoneID, items, p)
		return
	}
	if zoneID != "" {
		d.reg.UpdatePosition(p)
	}
}

// Finish settles the drag on release. hovered is false when no other zone
// was under the pointer, in which case the source handles the release
// itself. The registry hover is cleared either way.
func (d *ExternalDrag) Finish(items []models.Item) (res ExternalResult, hovered bool) {
	if d.current == "" {
		return ExternalResult{}, false
	}
	defer d.Cleanup()

	res.ZoneID = d.current
	containerID, accepted := d.reg.TargetContainer()
	if containerID != "" {
		if !accepted {
			res.Void = true
			return res, true
		}
	} else {
		e, ok := d.reg.Lookup(d.current)
		if !ok || !e.Accepts(items) {
			res.Void = true
			return res, true
		}
	}

	if idx, ok := d.reg.TargetDropIndex(); ok {
		res.DropIndex = idx
	}
	res.ContainerID = containerID
	return res, true
}

// Cleanup forgets the hovered zone and clears the registry hover, if this
// drag published one.
func (d *ExternalDrag) Cleanup() {
	if d.current == "" {
		return
	}
	d.current = ""
	d.reg.ClearHover()
}

// ExternalDrop is the target side of a cross-zone drag. It recomputes the
// zone's local drop state whenever the registry hover changes and writes
// the resolution back for the source to read on release.
type ExternalDrop struct {
	z      *Zone
	cancel func()
}

func newExternalDrop(z *Zone) *ExternalDrop {
	d := &ExternalDrop{z: z}
	d.cancel = z.reg.Watch(d.Sync)
	d.Sync()
	return d
}

func (d *ExternalDrop) stop() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Receiving reports whether this zone is the target of another zone's
// drag. A zone never receives its own drag.
func (d *ExternalDrop) Receiving() bool {
	z := d.z
	return z.registered &&
		z.reg.HoveredZone() == z.id &&
		len(z.reg.HoveredItems()) > 0 &&
		!z.drag.Active
}

// Sync recomputes the local external-drop state from the registry. When
// this zone is not receiving only local state is cleared; registry fields
// belong to whichever zone is.
func (d *ExternalDrop) Sync() {
	z := d.z
	p, hasPos := z.reg.Position()
	if !d.Receiving() || !hasPos {
		z.clearExternalDrop()
		return
	}

	index, indexOK, target := z.handleExternalDrop(p, z.reg.HoveredItems())
	z.reg.SetTargetDropIndex(z.id, index, indexOK)
	if target != nil {
		z.reg.SetTargetContainer(z.id, target.Item.ID, target.Accepted)
	} else {
		z.reg.SetTargetContainer(z.id, "", false)
	}
}

// handleExternalDrop updates the zone's local state for an incoming
// payload at p. A hit container takes precedence over reordering.
func (z *Zone) handleExternalDrop(p geom.Point, incoming []models.Item) (index int, ok bool, target *DropTarget) {
	z.sourceIndex = -1
	z.hasSource = true

	if t := z.containerAt(p, nil, incoming); t != nil {
		z.target = t
		return z.dropIndex, z.hasDrop, t
	}
	z.target = nil

	if z.insideBounds(p) {
		if idx, ok := z.opts.Resolver.Resolve(p, z.visibleEntries(), nil); ok {
			z.dropIndex = idx
			z.hasDrop = true
		}
	}
	return z.dropIndex, z.hasDrop, nil
}

// clearExternalDrop drops external visualization. A zone running its own
// drag keeps its state.
func (z *Zone) clearExternalDrop() {
	if z.drag.Active {
		return
	}
	z.hasDrop = false
	z.dropIndex = 0
	z.hasSource = false
	z.sourceIndex = 0
	z.target = nil
}

// Incoming returns the target-side coordinator, or nil when the zone is
// not registered.
func (z *Zone) Incoming() *ExternalDrop { return z.incoming }
