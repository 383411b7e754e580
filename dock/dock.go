// Package dock implements the EWMH dock/strut tracker: classification,
// reserved-margin accounting, and strut-derived geometry for panel/bar
// windows.
package dock

import (
	"github.com/jezek/xgb/xproto"

	"github.com/hsdcc/hsdwm/common"
	"github.com/hsdcc/hsdwm/store"
)

// Margins holds the screen-global reserved area, derived as the
// per-side maximum across every mapped dock's strut.
type Margins struct {
	Left, Right, Top, Bottom int32
}

// IsDock classifies a window as a dock if its EWMH window type names
// _NET_WM_WINDOW_TYPE_DOCK, or if any of the four primary strut sizes is
// non-zero, since some panels set struts without the window-type hint.
func IsDock(w xproto.Window) (bool, store.Strut) {
	strut := store.ReadStrut(w)
	if store.ReadWindowType(w) || strut.NonZero() {
		return true, strut
	}
	return false, strut
}

// ComputeMargins reduces a set of docks to the per-side maximum
// reservation, recomputed on any dock insert/remove/property change.
func ComputeMargins(docks []*store.Client) Margins {
	var m Margins
	for _, d := range docks {
		if d.Strut.Left > m.Left {
			m.Left = d.Strut.Left
		}
		if d.Strut.Right > m.Right {
			m.Right = d.Strut.Right
		}
		if d.Strut.Top > m.Top {
			m.Top = d.Strut.Top
		}
		if d.Strut.Bottom > m.Bottom {
			m.Bottom = d.Strut.Bottom
		}
	}
	return m
}

// Geometry computes a dock's on-screen rectangle from its strut rather
// than from any client-requested geometry: a top strut yields
// (top_start_x, 0, top_end_x-top_start_x+1, top_size) when partial
// coordinates are present, otherwise full width minus the already
// reserved left/right margins; analogously for the other three sides.
// When more than one primary size is non-zero (unusual but not
// forbidden), the first in top/bottom/left/right priority order wins.
// A real dock reserves exactly one edge.
func Geometry(screenW, screenH int32, m Margins, s store.Strut) common.Geometry {
	switch {
	case s.Top != 0:
		if s.TopEndX != 0 || s.TopStartX != 0 {
			return common.Geometry{X: s.TopStartX, Y: 0, W: s.TopEndX - s.TopStartX + 1, H: s.Top}
		}
		return common.Geometry{X: m.Left, Y: 0, W: screenW - m.Left - m.Right, H: s.Top}
	case s.Bottom != 0:
		y := screenH - s.Bottom
		if s.BottomEndX != 0 || s.BottomStartX != 0 {
			return common.Geometry{X: s.BottomStartX, Y: y, W: s.BottomEndX - s.BottomStartX + 1, H: s.Bottom}
		}
		return common.Geometry{X: m.Left, Y: y, W: screenW - m.Left - m.Right, H: s.Bottom}
	case s.Left != 0:
		if s.LeftEndY != 0 || s.LeftStartY != 0 {
			return common.Geometry{X: 0, Y: s.LeftStartY, W: s.Left, H: s.LeftEndY - s.LeftStartY + 1}
		}
		return common.Geometry{X: 0, Y: m.Top, W: s.Left, H: screenH - m.Top - m.Bottom}
	case s.Right != 0:
		x := screenW - s.Right
		if s.RightEndY != 0 || s.RightStartY != 0 {
			return common.Geometry{X: x, Y: s.RightStartY, W: s.Right, H: s.RightEndY - s.RightStartY + 1}
		}
		return common.Geometry{X: x, Y: m.Top, W: s.Right, H: screenH - m.Top - m.Bottom}
	default:
		return common.Geometry{}
	}
}
