// Command hsdwm is a reparenting-free X11 window manager: a single
// process that attaches to a display, becomes the substructure
// redirect/notify client of the root window, and mediates top-level
// window geometry, mapping, stacking, focus, and input routing until
// exit.
package main

import (
	"os"

	"github.com/jezek/xgb/xproto"

	log "github.com/sirupsen/logrus"

	"github.com/hsdcc/hsdwm/common"
	"github.com/hsdcc/hsdwm/desktop"
	"github.com/hsdcc/hsdwm/input"
	"github.com/hsdcc/hsdwm/spawn"
	"github.com/hsdcc/hsdwm/store"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := store.Connect(); err != nil {
		log.Fatal(err) // no display
	}

	if err := store.BecomeWM(); err != nil {
		log.Fatal(err) // BadAccess: another window manager is already running
	}

	if err := input.LoadKeymap(); err != nil {
		log.Fatal("failed to load keyboard mapping: ", err)
	}
	if err := input.GrabAll(); err != nil {
		log.Warn("some key grabs failed: ", err)
	}
	if err := input.GrabButtons(); err != nil {
		log.Warn("some button grabs failed: ", err)
	}
	input.LoadCursors()

	spawn.Reap()
	spawn.RunAutolaunch()

	m := desktop.New()
	scanExisting(m)
	m.SwitchWorkspace(m.Current) // no-op (tag equals m.Current); the initial sidecar files are written below
	desktop.WriteFocused(m.Current)
	desktop.WriteOccupied(occupiedWorkspaces(m))

	runLoop(m)
}

// scanExisting manages every already-mapped top-level window, the
// startup counterpart to MapRequest handling for windows that existed
// before this process became the window manager (e.g. a restart).
func scanExisting(m *desktop.Manager) {
	tree, err := xproto.QueryTree(store.X.Conn(), store.X.RootWin()).Reply()
	if err != nil {
		log.Warn("initial window scan failed: ", err)
		return
	}
	for _, w := range tree.Children {
		attr, err := xproto.GetWindowAttributes(store.X.Conn(), w).Reply()
		if err != nil || attr.OverrideRedirect || attr.MapState != xproto.MapStateViewable {
			continue
		}
		m.Manage(w)
	}
}

func occupiedWorkspaces(m *desktop.Manager) []int {
	occ := map[int]bool{}
	for _, c := range m.Reg.All() {
		if !c.IsDock {
			occ[c.Workspace] = true
		}
	}
	var out []int
	for ws := range occ {
		out = append(out, ws)
	}
	return out
}

// runLoop is the single-threaded blocking event loop: a tagged-variant
// type switch over every event kind, with no internal timers. The only
// other goroutine in the process is spawn's SIGCHLD reaper, which never
// touches the X connection. Every handler leaves
// registry invariants intact before returning and never propagates an
// error across this boundary; failures are logged and swallowed at the
// point they occur.
func runLoop(m *desktop.Manager) {
	for {
		if input.Quit {
			os.Exit(0)
		}

		ev, err := store.X.Conn().WaitForEvent()
		if err != nil {
			log.WithField("error", err).Debug("event wait error")
			continue
		}

		switch e := ev.(type) {
		case xproto.MapRequestEvent:
			m.Manage(e.Window)

		case xproto.DestroyNotifyEvent:
			m.Unmanage(e.Window)

		case xproto.UnmapNotifyEvent:
			// ignored: unmanage happens on DestroyNotify instead.

		case xproto.ConfigureRequestEvent:
			handleConfigureRequest(m, e)

		case xproto.EnterNotifyEvent:
			m.PointerFollow(e.Event)

		case xproto.MotionNotifyEvent:
			if e.Event == store.X.RootWin() {
				m.PointerFollow(e.Child)
			}

		case xproto.ButtonPressEvent:
			input.HandleButtonPress(m, e)

		case xproto.KeyPressEvent:
			input.HandleKeyPress(m, e)

		case xproto.KeyReleaseEvent:
			input.HandleKeyRelease(m, e)

		case xproto.ClientMessageEvent:
			handleClientMessage(m, e)

		case xproto.PropertyNotifyEvent:
			handlePropertyNotify(m, e)
		}
	}
}

// handleConfigureRequest honors a non-dock's request when its
// workspace is not tiled; tiled clients keep the tiler's geometry and
// are immediately retiled instead. Docks and tiled clients never get
// their position/size from the request, but any stacking/border-width
// portion of it is still honored so an ICCCM client waiting on those
// does not stall, and both branches answer with a synthetic
// ConfigureNotify per ICCCM 4.1.5 since the position/size the client
// asked for is being refused.
func handleConfigureRequest(m *desktop.Manager, e xproto.ConfigureRequestEvent) {
	c := m.Reg.Find(e.Window)
	if c == nil {
		// Unmanaged window (e.g. override-redirect); honor verbatim.
		mask := uint16(e.ValueMask)
		values := configureValues(e)
		_ = xproto.ConfigureWindowChecked(store.X.Conn(), e.Window, mask, values).Check()
		return
	}

	if c.IsDock {
		honorStacking(e)
		c.Strut = store.ReadStrut(e.Window)
		m.NotifyDockChange() // re-apply strut-derived geometry instead of the request
		store.SendConfigureNotify(e.Window, c.Geom, 0)
		return
	}

	if m.Workspaces[c.Workspace].Mode == common.Tiling {
		honorStacking(e)
		m.Retile(c.Workspace)
		store.SendConfigureNotify(e.Window, c.Geom, borderWidthFor(m, c))
		return
	}

	c.Geom.X, c.Geom.Y, c.Geom.W, c.Geom.H = int32(e.X), int32(e.Y), int32(e.Width), int32(e.Height)
	store.MoveResize(e.Window, c.Geom)
}

// honorStacking applies the stacking-mode/sibling/border-width portion
// of a ConfigureRequest, the only portion docks and tiled clients do
// not have refused outright: their position and size stay owned by
// the tiler or the dock margins, but a restack or border-width request
// has no bearing on that and is granted as asked.
func honorStacking(e xproto.ConfigureRequestEvent) {
	const stackingMask = xproto.ConfigWindowBorderWidth | xproto.ConfigWindowSibling | xproto.ConfigWindowStackMode
	mask := uint16(e.ValueMask) & stackingMask
	if mask == 0 {
		return
	}
	var values []uint32
	if mask&xproto.ConfigWindowBorderWidth != 0 {
		values = append(values, uint32(e.BorderWidth))
	}
	if mask&xproto.ConfigWindowSibling != 0 {
		values = append(values, uint32(e.Sibling))
	}
	if mask&xproto.ConfigWindowStackMode != 0 {
		values = append(values, uint32(e.StackMode))
	}
	_ = xproto.ConfigureWindowChecked(store.X.Conn(), e.Window, mask, values).Check()
}

// borderWidthFor reports the border pixel width renderBorders would
// currently assign c, the value a synthetic ConfigureNotify must
// report since the client's actual border is never the zero the
// geometry fields alone would suggest.
func borderWidthFor(m *desktop.Manager, c *store.Client) int32 {
	cfg := common.Current
	switch {
	case c.Workspace != m.Current:
		return 0
	case m.Focus == c:
		return cfg.BorderPxFocused
	default:
		return cfg.BorderPxUnfocused
	}
}

func configureValues(e xproto.ConfigureRequestEvent) []uint32 {
	var values []uint32
	mask := e.ValueMask
	if mask&xproto.ConfigWindowX != 0 {
		values = append(values, uint32(e.X))
	}
	if mask&xproto.ConfigWindowY != 0 {
		values = append(values, uint32(e.Y))
	}
	if mask&xproto.ConfigWindowWidth != 0 {
		values = append(values, uint32(e.Width))
	}
	if mask&xproto.ConfigWindowHeight != 0 {
		values = append(values, uint32(e.Height))
	}
	if mask&xproto.ConfigWindowBorderWidth != 0 {
		values = append(values, uint32(e.BorderWidth))
	}
	if mask&xproto.ConfigWindowSibling != 0 {
		values = append(values, uint32(e.Sibling))
	}
	if mask&xproto.ConfigWindowStackMode != 0 {
		values = append(values, uint32(e.StackMode))
	}
	return values
}

func handleClientMessage(m *desktop.Manager, e xproto.ClientMessageEvent) {
	if e.Type != store.Atoms.WMProtocols {
		return
	}
	data := e.Data.Data32
	if len(data) > 0 && xproto.Atom(data[0]) == store.Atoms.WMDeleteWindow {
		m.Unmanage(e.Window)
	}
}

func handlePropertyNotify(m *desktop.Manager, e xproto.PropertyNotifyEvent) {
	c := m.Reg.Find(e.Window)
	if c == nil {
		return
	}
	if e.Atom == store.Atoms.NetWMStrutPartial || e.Atom == store.Atoms.NetWMStrut || e.Atom == store.Atoms.NetWMWindowType {
		wasDock := c.IsDock
		strut := store.ReadStrut(c.Win)
		newDock := store.ReadWindowType(c.Win) || strut.NonZero()

		c.Strut = strut
		c.IsDock = newDock
		if newDock {
			c.Workspace = -1
		} else if wasDock {
			c.Workspace = m.Current
		}
		m.NotifyDockChange()
	}
}
