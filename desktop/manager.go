// Package desktop owns the window-manager context: the client registry,
// per-workspace mode/layout state, focus, and the Alt-Tab cycle state
// machine. It is the single owned value passed by exclusive reference
// into every event handler, rather than relying on ambient globals
// beyond the X connection itself.
package desktop

import (
	"github.com/jezek/xgb/xproto"

	log "github.com/sirupsen/logrus"

	"github.com/hsdcc/hsdwm/common"
	"github.com/hsdcc/hsdwm/dock"
	"github.com/hsdcc/hsdwm/layout"
	"github.com/hsdcc/hsdwm/store"
)

// Workspace holds a single workspace tag's tiling/floating mode and
// active layout.
type Workspace struct {
	Mode   common.Mode
	Layout common.Layout
}

// Manager is the WM context: registry, workspace array, focus, cycling
// state, and the current reserved margins.
type Manager struct {
	Reg        *store.Registry
	Workspaces [9]Workspace
	Current    int
	Focus      *store.Client
	Cycling    bool
	CycleStart *store.Client
	Margins    dock.Margins
}

// New builds a Manager with every workspace initialized to the
// compile-time default mode/layout.
func New() *Manager {
	m := &Manager{Reg: store.NewRegistry()}
	for i := range m.Workspaces {
		m.Workspaces[i] = Workspace{Mode: common.Current.DefaultMode, Layout: common.Current.DefaultLayout}
	}
	return m
}

// Manage creates a Client for a newly mapped (or pre-existing, at
// startup scan) top-level window, classifies it, places it on the
// current workspace unless it is a dock, and triggers the side effects
// the lifecycle section names: registry insert, border/event mask
// setup, initial geometry, focus, and sidecar rewrite.
func (m *Manager) Manage(w xproto.Window) {
	if m.Reg.Find(w) != nil {
		return // already managed, ignore duplicate MapRequest
	}

	isDock, strut := dock.IsDock(w)
	class, instance := store.ReadClass(w)

	c := &store.Client{
		Win:      w,
		IsDock:   isDock,
		Strut:    strut,
		Class:    class,
		Instance: instance,
	}

	if isDock {
		c.Workspace = -1
	} else {
		c.Workspace = m.Current
		if g, err := store.QueryGeometry(w); err == nil {
			c.Geom = centered(g)
		}
	}

	m.Reg.Insert(c)
	selectEventMask(w, isDock)

	if isDock {
		m.recomputeMargins()
		store.SetAbove(w)
		store.Map(w)
		m.RetileAll()
	} else {
		store.Map(w)
		if m.Workspaces[c.Workspace].Mode == common.Tiling {
			m.Retile(c.Workspace)
		} else {
			store.MoveResize(w, c.Geom.Inset(common.Current.BorderPxFocused))
		}
		m.Focus1(c)
	}

	m.writeStatus()
	log.WithField("window", w).WithField("dock", isDock).Info("managed client")
}

// centered places a newly mapped floating window centered on the
// screen.
func centered(g common.Geometry) common.Geometry {
	sw, sh := store.ScreenGeometry()
	return common.Geometry{X: (sw - g.W) / 2, Y: (sh - g.H) / 2, W: g.W, H: g.H}
}

// selectEventMask installs the per-client event mask: docks get a
// minimal mask (no EnterNotify/PointerMotion) to prevent focus theft,
// ordinary clients get EnterWindow|PropertyChange|StructureNotify so the
// tracker sees ConfigureRequest-adjacent notifications and property
// changes.
func selectEventMask(w xproto.Window, isDock bool) {
	mask := xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if !isDock {
		mask |= xproto.EventMaskEnterWindow
	}
	_ = xproto.ChangeWindowAttributesChecked(store.X.Conn(), w, xproto.CwEventMask, []uint32{uint32(mask)}).Check()
}

// Unmanage removes a client from the registry on DestroyNotify (or an
// acknowledged WM_DELETE_WINDOW), reassigns focus if it was focused, and
// retiles/rewrites status as needed.
func (m *Manager) Unmanage(w xproto.Window) {
	c := m.Reg.Find(w)
	if c == nil {
		return
	}
	ws := c.Workspace
	wasDock := c.IsDock
	wasFocus := m.Focus == c

	m.Reg.Remove(c)

	if wasDock {
		m.recomputeMargins()
		m.RetileAll()
	} else {
		if m.Workspaces[ws].Mode == common.Tiling {
			m.Retile(ws)
		}
		if wasFocus {
			m.Focus = nil
			if next := m.firstOnWorkspace(ws); next != nil {
				m.Focus1(next)
			}
		}
	}

	m.writeStatus()
	log.WithField("window", w).Info("unmanaged client")
}

func (m *Manager) firstOnWorkspace(ws int) *store.Client {
	cl := m.Reg.Collect(ws)
	if len(cl) == 0 {
		return nil
	}
	return cl[0]
}

// recomputeMargins rebuilds the reserved-margin set from every current
// dock, per the dock tracker's per-side-maximum reduction rule, then
// reapplies each dock's strut-derived geometry.
func (m *Manager) recomputeMargins() {
	docks := m.Reg.Docks()
	m.Margins = dock.ComputeMargins(docks)

	sw, sh := store.ScreenGeometry()
	for _, d := range docks {
		g := dock.Geometry(sw, sh, m.Margins, d.Strut)
		d.Geom = g
		store.MoveResize(d.Win, g)
	}
}

// NotifyDockChange re-reads strut-derived geometry for every dock and
// retiles every tiled workspace, the handler PropertyNotify invokes
// when a dock's window type or strut properties change.
func (m *Manager) NotifyDockChange() {
	m.recomputeMargins()
	m.RetileAll()
}

// Available returns the usable rectangle for a workspace given the
// current reserved margins.
func (m *Manager) Available() common.Geometry {
	sw, sh := store.ScreenGeometry()
	return layout.Available(sw, sh, m.Margins.Left, m.Margins.Right, m.Margins.Top, m.Margins.Bottom)
}

// Retile recomputes geometry for one tiled workspace and applies it to
// the X server.
func (m *Manager) Retile(ws int) {
	if m.Workspaces[ws].Mode != common.Tiling {
		return
	}
	clients := m.Reg.Collect(ws)
	if len(clients) == 0 {
		return
	}
	avail := m.Available()
	cells := layout.Tile(avail, len(clients), m.Workspaces[ws].Layout)
	for i, c := range clients {
		c.Geom = cells[i]
		store.MoveResize(c.Win, cells[i])
	}
}

// RetileAll recomputes every workspace currently in TILING mode, used
// after a dock insert/remove/property change per the dock tracker's
// "reapply geometry, retile" rule.
func (m *Manager) RetileAll() {
	for ws := range m.Workspaces {
		m.Retile(ws)
	}
}

func (m *Manager) writeStatus() {
	WriteFocused(m.Current)

	occupied := map[int]bool{}
	for _, c := range m.Reg.All() {
		if !c.IsDock {
			occupied[c.Workspace] = true
		}
	}
	var list []int
	for ws, ok := range occupied {
		if ok {
			list = append(list, ws)
		}
	}
	WriteOccupied(list)
}
