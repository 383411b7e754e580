package desktop

import (
	"github.com/jezek/xgb/xproto"

	log "github.com/sirupsen/logrus"

	"github.com/hsdcc/hsdwm/common"
	"github.com/hsdcc/hsdwm/store"
)

// Focus1 sets focus to c: precondition is that c is on the current
// workspace and is not a dock. It raises c, calls SetInputFocus with
// RevertToPointerRoot, re-renders every client's border, and re-raises
// all docks last so they stay on top.
func (m *Manager) Focus1(c *store.Client) {
	if c == nil || c.IsDock || c.Workspace != m.Current {
		return
	}
	if m.Focus == c {
		return // idempotent: focus(x); focus(x) == focus(x)
	}
	m.Focus = c
	store.Raise(c.Win)
	store.SetInputFocus(c.Win)
	m.renderBorders()
	m.raiseDocks()
	log.WithField("window", c.Win).Debug("focus changed")
}

// MakePriority behaves like Focus1 but also maps the window, the
// variant used when the pointer enters a window that may not yet be
// mapped in the caller's view (EnterNotify race).
func (m *Manager) MakePriority(c *store.Client) {
	if c == nil {
		return
	}
	store.Map(c.Win)
	m.Focus1(c)
}

// renderBorders applies the per-client border rule: off-workspace gets
// width 0; focused gets BorderPxFocused in the focus color; everything
// else gets BorderPxUnfocused in the unfocus color. Docks are excluded
// since they carry no border.
func (m *Manager) renderBorders() {
	cfg := common.Current
	for _, c := range m.Reg.All() {
		if c.IsDock {
			continue
		}
		switch {
		case c.Workspace != m.Current:
			store.SetBorder(c.Win, 0, cfg.BorderUnfocused)
		case c == m.Focus:
			store.SetBorder(c.Win, cfg.BorderPxFocused, cfg.BorderFocused)
		default:
			store.SetBorder(c.Win, cfg.BorderPxUnfocused, cfg.BorderUnfocused)
		}
	}
}

// raiseDocks maps and raises every dock, run after every focus
// transition and after any restacking so panels remain on top of
// normal windows regardless of the focus change that just occurred.
func (m *Manager) raiseDocks() {
	for _, d := range m.Reg.Docks() {
		store.Map(d.Win)
		store.Raise(d.Win)
	}
}

// TopLevelFrom walks up from w via QueryTree until it finds a managed
// client or reaches the root, resolving the managed ancestor of a
// subwindow the way EnterNotify/ButtonPress events name their
// sub-window rather than the top-level frame.
func (m *Manager) TopLevelFrom(w xproto.Window) *store.Client {
	if w == 0 {
		return nil
	}
	if c := m.Reg.Find(w); c != nil {
		return c
	}
	cur := w
	for i := 0; i < 32; i++ { // bounded: a window tree cannot cycle
		tree, err := xproto.QueryTree(store.X.Conn(), cur).Reply()
		if err != nil || tree.Parent == 0 {
			return nil
		}
		if c := m.Reg.Find(tree.Parent); c != nil {
			return c
		}
		if tree.Parent == store.X.RootWin() {
			return nil
		}
		cur = tree.Parent
	}
	return nil
}

// PointerFollow resolves the top-level ancestor of w and gives it
// priority if it is a non-dock client on the current workspace; this
// is the collapsing handler shared by EnterNotify and root
// MotionNotify. It goes through MakePriority rather than Focus1
// because an EnterNotify can race a window's own initial map request,
// and the pointer entering it should not leave it unmapped.
func (m *Manager) PointerFollow(w xproto.Window) {
	c := m.TopLevelFrom(w)
	if c == nil || c.IsDock || c.Workspace != m.Current {
		return
	}
	m.MakePriority(c)
}
