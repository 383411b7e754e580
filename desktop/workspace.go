package desktop

import (
	"github.com/jezek/xgb/xproto"

	"github.com/hsdcc/hsdwm/common"
	"github.com/hsdcc/hsdwm/nav"
	"github.com/hsdcc/hsdwm/store"
)

// SwitchWorkspace unmaps the outgoing workspace's clients, maps the
// incoming workspace's clients and all docks, focuses the incoming
// workspace's first registry entry (or nothing), retiles if TILING, and
// rewrites both sidecar files.
func (m *Manager) SwitchWorkspace(tag int) {
	if tag == m.Current || tag < 0 || tag >= len(m.Workspaces) {
		return
	}

	for _, c := range m.Reg.Collect(m.Current) {
		store.Unmap(c.Win)
	}

	m.Current = tag
	m.Focus = nil

	incoming := m.Reg.Collect(tag)
	for _, c := range incoming {
		store.Map(c.Win)
	}
	m.raiseDocks()

	if m.Workspaces[tag].Mode == common.Tiling {
		m.Retile(tag)
	}
	m.renderBorders()

	if len(incoming) > 0 {
		m.Focus1(incoming[0])
	}

	m.writeStatus()
}

// MoveFocusedToWorkspace retags the focused client. If the target
// differs from the current workspace the client is unmapped; both the
// source and target workspaces are retiled if they are TILING.
func (m *Manager) MoveFocusedToWorkspace(tag int) {
	c := m.Focus
	if c == nil || c.IsDock || tag < 0 || tag >= len(m.Workspaces) {
		return
	}
	src := c.Workspace
	if tag == src {
		return
	}

	c.Workspace = tag
	if tag != m.Current {
		store.Unmap(c.Win)
		m.Focus = nil
		if next := m.firstOnWorkspace(src); next != nil {
			m.Focus1(next)
		}
	}

	if m.Workspaces[src].Mode == common.Tiling {
		m.Retile(src)
	}
	if m.Workspaces[tag].Mode == common.Tiling {
		m.Retile(tag)
	}

	m.writeStatus()
}

// ToggleMode flips a workspace between FLOATING and TILING. When all is
// true every workspace is toggled (Shift+T); otherwise only the current
// one is.
func (m *Manager) ToggleMode(all bool) {
	toggle := func(i int) {
		if m.Workspaces[i].Mode == common.Tiling {
			m.Workspaces[i].Mode = common.Floating
		} else {
			m.Workspaces[i].Mode = common.Tiling
			m.Retile(i)
		}
	}
	if all {
		for i := range m.Workspaces {
			toggle(i)
		}
	} else {
		toggle(m.Current)
	}
}

// DirectionalFocus moves focus to the best neighbor of the currently
// focused client in dir, falling back to the extremum client when there
// is no current focus.
func (m *Manager) DirectionalFocus(dir nav.Direction) {
	candidates := m.Reg.Collect(m.Current)
	if m.Focus == nil {
		if best := nav.Extremum(candidates, dir); best != nil {
			m.Focus1(best)
		}
		return
	}
	if best := nav.Best(m.Focus, candidates, dir); best != nil {
		m.Focus1(best)
	}
}

// DirectionalSwap splices the focused client with its best neighbor in
// dir, retiles, recomputes margins, refreshes borders, and keeps focus
// on the user-moved client (the caller).
func (m *Manager) DirectionalSwap(dir nav.Direction) {
	if m.Focus == nil {
		return
	}
	candidates := m.Reg.Collect(m.Current)
	other := nav.Best(m.Focus, candidates, dir)
	if other == nil {
		return
	}
	m.SwapKeepFocus(m.Focus, other)
}

// SwapKeepFocus swaps a and b in the registry and retiles, bracketing
// the whole sequence with a server grab/ungrab and two syncs so other
// clients never observe an inconsistent intermediate state, then
// refocuses a (the client the user was moving) rather than whichever
// slot it ends up in.
func (m *Manager) SwapKeepFocus(a, b *store.Client) {
	_ = xproto.GrabServer(store.X.Conn())
	defer xproto.UngrabServer(store.X.Conn())

	m.Reg.Swap(a, b)
	if m.Workspaces[a.Workspace].Mode == common.Tiling {
		m.Retile(a.Workspace)
	}
	m.recomputeMargins()
	m.renderBorders()
	store.Sync()

	m.Focus = nil
	m.Focus1(a)
	store.Sync()
}
