// Package common holds geometry primitives and compile-time configuration
// shared by every other package in this window manager.
package common

// Geometry is a window rectangle in root coordinates.
type Geometry struct {
	X, Y int32
	W, H int32
}

// Point is a single root-coordinate pixel position.
type Point struct {
	X, Y int32
}

// Right returns the x coordinate one past the rectangle's right edge.
func (g Geometry) Right() int32 { return g.X + g.W }

// Bottom returns the y coordinate one past the rectangle's bottom edge.
func (g Geometry) Bottom() int32 { return g.Y + g.H }

// CenterX returns the rectangle's horizontal center.
func (g Geometry) CenterX() int32 { return g.X + g.W/2 }

// CenterY returns the rectangle's vertical center.
func (g Geometry) CenterY() int32 { return g.Y + g.H/2 }

// Contains reports whether p lies within g (right/bottom exclusive).
func (g Geometry) Contains(p Point) bool {
	return p.X >= g.X && p.X < g.Right() && p.Y >= g.Y && p.Y < g.Bottom()
}

// Overlaps reports whether two rectangles share any area.
func (g Geometry) Overlaps(o Geometry) bool {
	return g.X < o.Right() && o.X < g.Right() && g.Y < o.Bottom() && o.Y < g.Bottom()
}

// Inset shrinks the rectangle on all four sides by n, used to carve
// border thickness out of a placed client's reported width/height.
func (g Geometry) Inset(n int32) Geometry {
	return Geometry{X: g.X + n, Y: g.Y + n, W: g.W - 2*n, H: g.H - 2*n}
}

// ClampDim floors v at lo and, if hi is positive, ceilings it at hi.
func ClampDim(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}

// OverlapLen returns the length of the 1D intersection of [a1,a2) and
// [b1,b2), or 0 if they do not overlap.
func OverlapLen(a1, a2, b1, b2 int32) int32 {
	lo := a1
	if b1 > lo {
		lo = b1
	}
	hi := a2
	if b2 < hi {
		hi = b2
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}
