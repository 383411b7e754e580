package desktop

import (
	"github.com/hsdcc/hsdwm/common"
	"github.com/hsdcc/hsdwm/store"
)

// ToggleFullscreen is a geometry-only toggle for FLOATING-mode clients:
// it swaps between a full-screen rectangle at (0,0) and the geometry
// the client had before it was fullscreened. No _NET_WM_STATE_FULLSCREEN atom is set; callers only get the
// geometry effect, not EWMH fullscreen state. Tiled clients have their
// geometry overwritten on every layout pass, so toggling fullscreen on
// one is a deliberate no-op.
func (m *Manager) ToggleFullscreen() {
	c := m.Focus
	if c == nil || c.IsDock || m.Workspaces[c.Workspace].Mode != common.Floating {
		return
	}

	if c.Fullscreen {
		c.Geom = c.PreFullscreen
		c.Fullscreen = false
	} else {
		c.PreFullscreen = c.Geom
		sw, sh := store.ScreenGeometry()
		c.Geom = common.Geometry{X: 0, Y: 0, W: sw, H: sh}
		c.Fullscreen = true
	}
	store.MoveResize(c.Win, c.Geom)
}
