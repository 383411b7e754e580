package store

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"

	log "github.com/sirupsen/logrus"

	"github.com/hsdcc/hsdwm/common"
)

// ReadWindowType reports whether w carries _NET_WM_WINDOW_TYPE_DOCK among
// its EWMH window types. Absence of the property is treated as "not a
// dock": a missing property means the default, never an error.
func ReadWindowType(w xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(X, w)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

// ReadStrut reads the twelve _NET_WM_STRUT_PARTIAL cardinals, falling
// back to the four-field _NET_WM_STRUT if partial is absent. A missing
// property of either kind yields the zero Strut (no reservation).
func ReadStrut(w xproto.Window) Strut {
	if p, err := ewmh.WmStrutPartialGet(X, w); err == nil {
		return Strut{
			Left: int32(p.Left), Right: int32(p.Right),
			Top: int32(p.Top), Bottom: int32(p.Bottom),
			LeftStartY: int32(p.LeftStartY), LeftEndY: int32(p.LeftEndY),
			RightStartY: int32(p.RightStartY), RightEndY: int32(p.RightEndY),
			TopStartX: int32(p.TopStartX), TopEndX: int32(p.TopEndX),
			BottomStartX: int32(p.BottomStartX), BottomEndX: int32(p.BottomEndX),
		}
	}
	if s, err := ewmh.WmStrutGet(X, w); err == nil {
		return Strut{Left: int32(s.Left), Right: int32(s.Right), Top: int32(s.Top), Bottom: int32(s.Bottom)}
	}
	return Strut{}
}

// ReadClass reads WM_CLASS for diagnostics/logging only; it has no
// effect on management decisions.
func ReadClass(w xproto.Window) (class, instance string) {
	h, err := icccm.WmClassGet(X, w)
	if err != nil || h == nil {
		return "", ""
	}
	return h.Class, h.Instance
}

// SetAbove sets _NET_WM_STATE to contain _NET_WM_STATE_ABOVE, the EWMH
// hint that keeps a dock above ordinary client windows.
func SetAbove(w xproto.Window) {
	if err := ewmh.WmStateSet(X, w, []string{"_NET_WM_STATE_ABOVE"}); err != nil {
		log.WithField("window", w).Warn("failed to set _NET_WM_STATE_ABOVE: ", err)
	}
}

// SupportsDelete reports whether w advertises WM_DELETE_WINDOW in
// WM_PROTOCOLS, the precondition for sending a delete ClientMessage
// instead of destroying the window forcibly.
func SupportsDelete(w xproto.Window) bool {
	protocols, err := icccm.WmProtocolsGet(X, w)
	if err != nil {
		return false
	}
	for _, p := range protocols {
		if p == "WM_DELETE_WINDOW" {
			return true
		}
	}
	return false
}

// SendDelete sends the WM_PROTOCOLS/WM_DELETE_WINDOW ClientMessage used
// to close a focused client cooperatively (Mod+Q). Unlike
// icccm.WmProtocolsSet (which rewrites the window's own WM_PROTOCOLS
// property), this constructs and delivers the actual ClientMessage
// event the client's event loop is waiting to receive.
func SendDelete(w xproto.Window) error {
	data := xproto.ClientMessageDataUnionData32New([]uint32{
		uint32(Atoms.WMDeleteWindow), uint32(xproto.TimeCurrentTime), 0, 0, 0,
	})
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w,
		Type:   Atoms.WMProtocols,
		Data:   data,
	}
	return xproto.SendEventChecked(X.Conn(), false, w, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// SendConfigureNotify delivers the synthetic ConfigureNotify ICCCM
// requires when a ConfigureRequest is answered with geometry other
// than what the client asked for (tiled/dock clients, whose geometry
// the tiler or the dock margins own): without it the client believes
// its request is still pending and never reconfigures its contents.
func SendConfigureNotify(w xproto.Window, g common.Geometry, borderWidth int32) {
	ev := xproto.ConfigureNotifyEvent{
		Event:            w,
		Window:           w,
		AboveSibling:     0,
		X:                int16(g.X),
		Y:                int16(g.Y),
		Width:            uint16(g.W),
		Height:           uint16(g.H),
		BorderWidth:      uint16(borderWidth),
		OverrideRedirect: false,
	}
	_ = xproto.SendEventChecked(X.Conn(), false, w, xproto.EventMaskStructureNotify, string(ev.Bytes())).Check()
}

// MoveResize applies geometry to a window; the layout engine has
// already subtracted border width from g before calling this.
func MoveResize(w xproto.Window, g common.Geometry) {
	err := xproto.ConfigureWindowChecked(X.Conn(), w,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(g.X)), uint32(int32(g.Y)), uint32(g.W), uint32(g.H)},
	).Check()
	if err != nil {
		log.WithField("window", w).Warn("configure failed: ", err)
	}
}

// SetBorder sets both the border pixel width and color of w.
func SetBorder(w xproto.Window, px int32, color uint32) {
	_ = xproto.ConfigureWindowChecked(X.Conn(), w, xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(px)}).Check()
	_ = xproto.ChangeWindowAttributesChecked(X.Conn(), w, xproto.CwBorderPixel,
		[]uint32{color}).Check()
}

// Map and Unmap are thin wrappers kept for call-site symmetry with the
// rest of the store package's naming.
func Map(w xproto.Window)   { _ = xproto.MapWindowChecked(X.Conn(), w).Check() }
func Unmap(w xproto.Window) { _ = xproto.UnmapWindowChecked(X.Conn(), w).Check() }

// Raise restacks w above all its siblings.
func Raise(w xproto.Window) {
	_ = xproto.ConfigureWindowChecked(X.Conn(), w, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove}).Check()
}

// SetInputFocus gives w the input focus with RevertToPointerRoot, the
// exact revert mode the focus controller specifies.
func SetInputFocus(w xproto.Window) {
	_ = xproto.SetInputFocusChecked(X.Conn(), xproto.InputFocusPointerRoot, w, xproto.TimeCurrentTime).Check()
}

// QueryGeometry fetches a window's current geometry from the server,
// used when a client is first managed.
func QueryGeometry(w xproto.Window) (common.Geometry, error) {
	g, err := xproto.GetGeometry(X.Conn(), xproto.Drawable(w)).Reply()
	if err != nil {
		return common.Geometry{}, err
	}
	return common.Geometry{X: int32(g.X), Y: int32(g.Y), W: int32(g.Width), H: int32(g.Height)}, nil
}
