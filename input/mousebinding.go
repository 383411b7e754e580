package input

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/xcursor"

	log "github.com/sirupsen/logrus"

	"github.com/hsdcc/hsdwm/common"
	"github.com/hsdcc/hsdwm/desktop"
	"github.com/hsdcc/hsdwm/store"
)

// Standard X cursor font glyph numbers (X11/cursorfont.h), named
// directly since the retrieved xcursor package ships no glyph-name
// constants of its own: XC_fleur and XC_sizing.
const (
	xcFleur  = 52
	xcSizing = 120
)

// Cursor glyphs created once at startup, used while a drag/resize is
// active.
var (
	moveCursor   xproto.Cursor
	resizeCursor xproto.Cursor
)

// LoadCursors creates the move/resize cursor glyphs.
func LoadCursors() {
	moveCursor = xproto.Cursor(xcursor.CreateCursor(store.X, xcFleur))
	resizeCursor = xproto.Cursor(xcursor.CreateCursor(store.X, xcSizing))
}

// GrabButtons registers Button1 (move) and Button3 (resize) under both
// modifier bases. Pointer grabs are unaffected by NumLock/CapsLock the
// way key grabs are, so no lock-mask cross product is needed here.
func GrabButtons() error {
	for _, base := range bases() {
		for _, btn := range []xproto.Button{1, 3} {
			err := xproto.GrabButtonChecked(store.X.Conn(), false, store.X.RootWin(),
				xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease,
				xproto.GrabModeAsync, xproto.GrabModeAsync, 0, 0, btn, base).Check()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// HandleButtonPress focuses the clicked client and, for non-dock
// floating-mode clients, begins an interactive move (Button1) or resize
// (Button3). Docks and tiled-mode clients refuse drag/resize outright:
// tiling overwrites geometry on every layout pass, so a drag would be
// immediately undone.
func HandleButtonPress(m *desktop.Manager, e xproto.ButtonPressEvent) {
	if e.Child == 0 {
		return
	}
	c := m.TopLevelFrom(e.Child)
	if c == nil {
		return
	}
	m.Focus1(c)
	if c.IsDock || m.Workspaces[c.Workspace].Mode != common.Floating {
		return
	}
	switch e.Detail {
	case 1:
		dragMove(c)
	case 3:
		dragResize(c)
	}
}

// dragMove and dragResize both grab the pointer exclusively and spin a
// nested loop consuming only PointerMotion/ButtonRelease until release,
// applying incremental geometry on every motion event. This is the
// only other blocking read in the process besides the main event
// loop's own.
func dragMove(c *store.Client) {
	if !grabPointer(moveCursor) {
		return
	}
	defer ungrabPointer()

	origX, origY := c.Geom.X, c.Geom.Y
	pump(func(dx, dy int32) {
		c.Geom.X = origX + dx
		c.Geom.Y = origY + dy
		store.MoveResize(c.Win, c.Geom)
	})
}

func dragResize(c *store.Client) {
	if !grabPointer(resizeCursor) {
		return
	}
	defer ungrabPointer()

	origW, origH := c.Geom.W, c.Geom.H
	cfg := common.Current
	pump(func(dx, dy int32) {
		w := common.ClampDim(origW+dx, cfg.MinW, 0)
		h := common.ClampDim(origH+dy, cfg.MinH, 0)
		c.Geom.W, c.Geom.H = w, h
		store.MoveResize(c.Win, c.Geom)
	})
}

func grabPointer(cursor xproto.Cursor) bool {
	reply, err := xproto.GrabPointer(store.X.Conn(), false, store.X.RootWin(),
		xproto.EventMaskPointerMotion|xproto.EventMaskButtonRelease,
		xproto.GrabModeAsync, xproto.GrabModeAsync, 0, cursor, xproto.TimeCurrentTime).Reply()
	if err != nil || reply.Status != xproto.GrabStatusSuccess {
		log.Warn("pointer grab failed for drag")
		return false
	}
	return true
}

func ungrabPointer() {
	_ = xproto.UngrabPointerChecked(store.X.Conn(), xproto.TimeCurrentTime).Check()
}

// pump spins the nested event loop: it reads raw events directly off
// the connection (not through the main dispatcher) until ButtonRelease,
// applying apply(dx, dy) on every MotionNotify.
func pump(apply func(dx, dy int32)) {
	var startX, startY int32
	first := true
	for {
		ev, err := store.X.Conn().WaitForEvent()
		if err != nil {
			continue
		}
		switch e := ev.(type) {
		case xproto.MotionNotifyEvent:
			if first {
				startX, startY = int32(e.RootX), int32(e.RootY)
				first = false
			}
			apply(int32(e.RootX)-startX, int32(e.RootY)-startY)
		case xproto.ButtonReleaseEvent:
			return
		}
	}
}
