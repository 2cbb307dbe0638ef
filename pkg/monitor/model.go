// Package monitor is the interactive board: a terminal host for drag and
// drop zones. Every column of the board is a zone sharing one registry, so
// cards can be dragged within a column, across columns and into folders.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/freeform/internal/autoscroll"
	"github.com/marcus/freeform/internal/config"
	"github.com/marcus/freeform/internal/events"
	"github.com/marcus/freeform/internal/models"
	"github.com/marcus/freeform/internal/registry"
	"github.com/marcus/freeform/internal/store"
	"github.com/marcus/freeform/internal/zone"
	"github.com/marcus/freeform/pkg/monitor/mouse"
)

// Store is the persistence the board reads from and writes drops through.
type Store interface {
	LoadBoard(ctx context.Context) (*store.Board, error)
	Reorder(ctx context.Context, columnID string, itemIDs []string, dropIndex int) error
	ReorderFolder(ctx context.Context, folderID string, itemIDs []string, dropIndex int) error
	MoveToColumn(ctx context.Context, columnID string, itemIDs []string, index int) error
	MoveIntoFolder(ctx context.Context, folderID string, itemIDs []string) error
	MoveOutOfFolder(ctx context.Context, folderID string, itemIDs []string) error
}

// folderLanePrefix marks the zone id of an open folder's lane.
const folderLanePrefix = "folder:"

// lane is one zone on screen: a column, or the contents of an open folder.
type lane struct {
	id       string
	title    string
	columnID string // owning column; for a folder lane, the folder's column
	folderID string // set for a folder lane
	items    []models.Item
	z        *zone.Zone
}

func (l *lane) isFolder() bool { return l.folderID != "" }

// DefaultFeed is the notifications summarized on the status line unless
// WithFeed picks others.
var DefaultFeed = []events.Kind{events.KindDrop, events.KindReorderIntent, events.KindSelectionChanged}

// feed keeps the latest engine notification for the status line. It is
// shared by pointer because zone handlers outlive Model copies.
type feed struct {
	kinds []events.Kind
	last  string
}

// Model is the board's bubbletea model.
type Model struct {
	db     Store
	cfg    *config.Options
	logger *slog.Logger

	board *store.Board
	lanes []*lane
	reg   *registry.Registry

	layout   *layout
	scale    mouse.Scale
	mouse    *mouse.Handler
	scroller *autoscroll.Scroller
	feed     *feed

	// Focus and keyboard cursor.
	focus  int
	cursor int

	// openFolder is the folder shown as an extra lane, or "".
	openFolder string

	// Pointer interaction in progress.
	dragging *lane
	lassoing *lane
	pointer  models.PointerEvent

	keys      KeyMap
	help      help.Model
	filter    textinput.Model
	filtering bool

	status    string
	statusErr bool
	width     int
	height    int
}

// New creates a board model reading from db. cfg may be nil for defaults.
func New(db Store, cfg *config.Options, logger *slog.Logger) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "find cards"
	ti.CharLimit = 64
	ti.Cursor.SetMode(cursor.CursorStatic)

	scale := mouse.Scale{CellW: cfg.CellWidth, CellH: cfg.CellHeight}
	l := &layout{}
	return Model{
		db:       db,
		cfg:      cfg,
		logger:   logger,
		reg:      registry.New(registry.WithLogger(logger)),
		layout:   l,
		scale:    scale,
		mouse:    mouse.NewHandler(),
		scroller: autoscroll.New(scrollViewport{l: l, scale: scale}, cfg.AutoScroll),
		feed:     &feed{kinds: DefaultFeed},
		keys:     DefaultKeyMap,
		help:     help.New(),
		filter:   ti,
		width:    80,
		height:   24,
	}
}

// WithFeed picks which notifications the status line reports. With no
// kinds the status line only shows the board's own messages.
func (m Model) WithFeed(kinds ...events.Kind) Model {
	m.feed = &feed{kinds: kinds}
	return m
}

// Messages

type boardLoadedMsg struct {
	board  *store.Board
	status string
	err    error
}

type scrollTickMsg struct{}

// Init loads the board.
func (m Model) Init() tea.Cmd {
	return m.load("")
}

func (m Model) load(status string) tea.Cmd {
	db := m.db
	return func() tea.Msg {
		b, err := db.LoadBoard(context.Background())
		return boardLoadedMsg{board: b, status: status, err: err}
	}
}

// apply runs a store write and reloads the board after it.
func (m Model) apply(status string, fn func(ctx context.Context) error) tea.Cmd {
	db := m.db
	logger := m.logger
	return func() tea.Msg {
		ctx := context.Background()
		if err := fn(ctx); err != nil {
			logger.Warn("board write failed", "op", status, "err", err)
			return boardLoadedMsg{err: err}
		}
		b, err := db.LoadBoard(ctx)
		return boardLoadedMsg{board: b, status: status, err: err}
	}
}

func scrollTick() tea.Cmd {
	return tea.Tick(autoscroll.FrameInterval, func(time.Time) tea.Msg {
		return scrollTickMsg{}
	})
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.reflow()
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			if m.board != nil {
				// Put zones back in line with what is stored.
				return m, m.load("")
			}
			return m, nil
		}
		if msg.status != "" {
			m.status, m.statusErr = msg.status, false
		}
		m.setBoard(msg.board)
		return m, nil

	case scrollTickMsg:
		return m.stepAutoScroll()

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// setBoard rebuilds the lanes and zones for b. The selection of each lane
// survives a reload by id.
func (m *Model) setBoard(b *store.Board) {
	selected := make(map[string][]string)
	for _, ln := range m.lanes {
		selected[ln.id] = models.IDs(ln.z.Selection().Items)
		ln.z.Close()
	}
	m.dragging, m.lassoing = nil, nil
	m.board = b
	m.lanes = m.lanes[:0]

	for _, col := range b.Columns {
		m.lanes = append(m.lanes, &lane{
			id:       col.ID,
			title:    col.Name,
			columnID: col.ID,
			items:    col.Items,
		})
	}
	if m.openFolder != "" {
		if ln, ok := m.folderLane(m.openFolder); ok {
			m.lanes = append(m.lanes, ln)
		} else {
			m.openFolder = ""
		}
	}

	m.reflow()

	opts := m.cfg.ZoneOptions()
	for _, ln := range m.lanes {
		var accept models.AcceptFunc
		if ln.isFolder() {
			accept = cardsOnly
		}
		ln.z = zone.New(ln.id, ln.items,
			zone.WithOptions(opts),
			zone.WithLogger(m.logger),
			zone.WithRegistry(m.reg),
			zone.WithBounds(m.mouse.HitMap.Bounds(laneRegion(ln.id), m.scale)),
			zone.WithAccept(accept),
		)
		for _, it := range ln.items {
			bounds := m.mouse.HitMap.Bounds(cardRegion(it.ID), m.scale)
			ln.z.RegisterItem(it.ID, bounds)
			if it.IsContainer() && !ln.isFolder() {
				ln.z.RegisterContainer(it, bounds, cardsOnly)
			}
		}
		if len(m.feed.kinds) > 0 {
			ln.z.Subscribe(m.feed.record(ln.title), m.feed.kinds...)
		}

		var keep []models.Item
		for _, it := range ln.items {
			for _, id := range selected[ln.id] {
				if it.ID == id {
					keep = append(keep, it)
				}
			}
		}
		ln.z.SetSelection(keep)
	}

	m.focus = max(0, min(m.focus, len(m.lanes)-1))
	m.clampCursor()
}

// folderLane builds the lane for an open folder.
func (m *Model) folderLane(folderID string) (*lane, bool) {
	for _, col := range m.board.Columns {
		i := models.IndexOf(col.Items, folderID)
		if i < 0 {
			continue
		}
		return &lane{
			id:       folderLanePrefix + folderID,
			title:    col.Items[i].Label + "/",
			columnID: col.ID,
			folderID: folderID,
			items:    col.Folders[folderID],
		}, true
	}
	return nil, false
}

// cardsOnly accepts payloads that hold no folder.
func cardsOnly(items []models.Item) bool {
	for _, it := range items {
		if it.IsContainer() {
			return false
		}
	}
	return true
}

// reflow recomputes the layout and the hit map that zone geometry reads.
func (m *Model) reflow() {
	counts := make([]int, len(m.lanes))
	for i, ln := range m.lanes {
		counts[i] = len(ln.items)
	}
	m.layout.reflow(m.width, m.height, counts)
	m.rebuildHitMap()
}

// rebuildHitMap registers every lane and card at its natural position.
// Lanes are clipped to the viewport so the header and footer never count
// as part of a zone; cards are registered after their lane and win hit
// tests over it.
func (m *Model) rebuildHitMap() {
	hm := m.mouse.HitMap
	hm.Clear()
	for i, ln := range m.lanes {
		if r, ok := m.layout.clip(m.layout.laneRect(i)); ok {
			hm.AddRect(laneRegion(ln.id), r.X, r.Y, r.W, r.H, hit{lane: i, index: -1})
		}
	}
	for i, ln := range m.lanes {
		for j, it := range ln.items {
			r := m.layout.slotRect(i, j)
			hm.AddRect(cardRegion(it.ID), r.X, r.Y, r.W, r.H, hit{lane: i, index: j})
		}
	}
}

// hit is the data attached to hit map regions.
type hit struct {
	lane  int
	index int // card index, -1 for the lane itself
}

func laneRegion(id string) string { return "lane:" + id }
func cardRegion(id string) string { return "card:" + id }

func (m *Model) laneByID(id string) (*lane, bool) {
	for _, ln := range m.lanes {
		if ln.id == id {
			return ln, true
		}
	}
	return nil, false
}

func (m *Model) focused() *lane {
	if m.focus < 0 || m.focus >= len(m.lanes) {
		return nil
	}
	return m.lanes[m.focus]
}

func (m *Model) clampCursor() {
	ln := m.focused()
	if ln == nil || len(ln.items) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = max(0, min(m.cursor, len(ln.items)-1))
}

// record returns an event handler that keeps a one-line summary.
func (f *feed) record(lane string) events.Handler {
	return func(e events.Event) {
		switch e := e.(type) {
		case events.Selection:
			if len(e.Items) == 0 {
				f.last = ""
				return
			}
			f.last = fmt.Sprintf("%d selected in %s", len(e.Items), lane)
		case events.Drop:
			switch {
			case e.ContainerID != "" || e.Target != nil:
				f.last = fmt.Sprintf("dropped %d into a folder", len(e.Items))
			case e.External():
				f.last = fmt.Sprintf("dropped %d from %s", len(e.Items), lane)
			default:
				f.last = fmt.Sprintf("dropped %d in %s at %d", len(e.Items), lane, e.ToIndex)
			}
		case events.Reorder:
			f.last = fmt.Sprintf("reordered %s: %d → %d", lane, e.From, e.To)
		case events.Drag:
			switch e.Phase {
			case events.KindDragStarted:
				f.last = fmt.Sprintf("dragging %d from %s", len(e.Items), lane)
			case events.KindDragMoved:
				f.last = fmt.Sprintf("dragging %d at %.0f,%.0f", len(e.Items), e.Position.X, e.Position.Y)
			case events.KindDragEnded:
				f.last = fmt.Sprintf("released %d", len(e.Items))
			}
		}
	}
}
