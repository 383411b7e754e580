// Package layout implements the two tiling algorithms: master/stack and
// dwindle. Both take an available rectangle and an ordered list of
// clients and return one placed rectangle per client, in input order.
package layout

import (
	"github.com/hsdcc/hsdwm/common"
)

// Available computes the usable rectangle for a workspace: the screen
// rectangle shrunk by outer gap + border on every side, then further
// shrunk by the reserved dock margins, floored at the configured
// minimum dimensions.
func Available(screenW, screenH int32, reservedLeft, reservedRight, reservedTop, reservedBottom int32) common.Geometry {
	cfg := common.Current
	outer := cfg.GapOuter + cfg.BorderPxFocused

	x := outer + reservedLeft
	y := outer + reservedTop
	w := screenW - 2*outer - reservedLeft - reservedRight
	h := screenH - 2*outer - reservedTop - reservedBottom

	w = common.ClampDim(w, cfg.MinW, 0)
	h = common.ClampDim(h, cfg.MinH, 0)

	return common.Geometry{X: x, Y: y, W: w, H: h}
}

// Tile computes placed, bordered-window rectangles (border already
// subtracted) for n clients in avail, using the given layout algorithm.
// The returned slice has one entry per input client, same order.
func Tile(avail common.Geometry, n int, l common.Layout) []common.Geometry {
	if n == 0 {
		return nil
	}
	b := common.Current.BorderPxFocused

	var cells []common.Geometry
	if n == 1 {
		cells = []common.Geometry{avail}
	} else if l == common.Master {
		cells = masterStack(avail, n)
	} else {
		cells = dwindle(avail, n, false)
	}

	out := make([]common.Geometry, len(cells))
	for i, c := range cells {
		out[i] = c.Inset(b)
	}
	return out
}

// masterStack places client 0 as the master column (full available
// height) and clients 1..n-1 as a vertical stack filling the remainder.
// The last stack client absorbs the rounding remainder so the stack's
// bottom edge always lands exactly on the available rectangle's bottom.
func masterStack(avail common.Geometry, n int) []common.Geometry {
	cfg := common.Current
	gi := cfg.GapInner

	masterW := common.ClampDim(avail.W*cfg.MasterFactor/100, cfg.MinW, 0)
	stackW := common.ClampDim(avail.W-masterW-gi, cfg.MinW, 0)

	out := make([]common.Geometry, n)
	out[0] = common.Geometry{X: avail.X, Y: avail.Y, W: masterW, H: avail.H}

	stackN := n - 1
	stackX := avail.X + masterW + gi
	totalGaps := int32(stackN-1) * gi
	baseH := (avail.H - totalGaps) / int32(stackN)

	y := avail.Y
	for i := 0; i < stackN; i++ {
		h := baseH
		if i == stackN-1 {
			// Absorb rounding remainder so the bottom lands exactly on
			// avail's bottom edge.
			h = avail.Bottom() - y
		}
		out[i+1] = common.Geometry{X: stackX, Y: y, W: stackW, H: h}
		y += h + gi
	}
	return out
}

// dwindle recursively splits avail in a spiral: the first of n clients
// takes the "amount" slice along the current orientation, and the rest
// recurse into the complementary rectangle with the orientation flipped.
// Initial orientation is vertical (horiz=false) per the layout engine's
// framing.
func dwindle(avail common.Geometry, n int, horiz bool) []common.Geometry {
	if n == 1 {
		return []common.Geometry{avail}
	}

	cfg := common.Current
	gi := cfg.GapInner

	if !horiz {
		amount := common.ClampDim(avail.W*cfg.MasterFactor/100, cfg.MinW, avail.W-cfg.MinW-gi)
		placed := common.Geometry{X: avail.X, Y: avail.Y, W: amount, H: avail.H}
		rest := common.Geometry{X: avail.X + amount + gi, Y: avail.Y, W: avail.W - amount - gi, H: avail.H}
		return append([]common.Geometry{placed}, dwindle(rest, n-1, true)...)
	}

	amount := common.ClampDim(avail.H*cfg.MasterFactor/100, cfg.MinH, avail.H-cfg.MinH-gi)
	placed := common.Geometry{X: avail.X, Y: avail.Y, W: avail.W, H: amount}
	rest := common.Geometry{X: avail.X, Y: avail.Y + amount + gi, W: avail.W, H: avail.H - amount - gi}
	return append([]common.Geometry{placed}, dwindle(rest, n-1, false)...)
}
