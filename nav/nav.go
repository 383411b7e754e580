// Package nav implements directional neighbor search over a workspace's
// clients: given a current client and a direction, find the best
// candidate to focus or swap with.
package nav

import (
	"github.com/hsdcc/hsdwm/common"
	"github.com/hsdcc/hsdwm/store"
)

// Direction is one of the four compass directions the keybinding table
// dispatches on.
type Direction int

const (
	Left Direction = iota
	Down
	Up
	Right
)

// bonus constants encode a strict lexicographic preference:
// in-direction-with-overlap beats in-direction-without-overlap beats
// not-in-direction, ties broken by edge distance then perpendicular
// center distance.
const (
	inDirectionBonus = -1_000_000_000
	overlapBonus     = -500_000_000
	primaryScale     = 100_000
	secondaryScale   = 100
)

// Best returns the highest-scoring candidate among others for moving
// focus from cur in direction dir, or nil if others holds no client
// other than cur. Candidates
// are assumed already filtered to the same workspace and non-dock.
func Best(cur *store.Client, others []*store.Client, dir Direction) *store.Client {
	var best *store.Client
	var bestScore int64
	first := true

	for _, cand := range others {
		if cand == cur {
			continue
		}
		s, _ := score(cur.Geom, cand.Geom, dir)
		if first || s < bestScore {
			best = cand
			bestScore = s
			first = false
		}
	}
	return best
}

// score computes the composite score for moving from a to b in
// direction dir. Lower is better (the bonuses are large negative
// numbers so in-direction candidates always win).
func score(a, b common.Geometry, dir Direction) (int64, bool) {
	var primary, secondary int64
	var overlap int32
	var inDirection bool

	switch dir {
	case Left:
		overlap = common.OverlapLen(a.Y, a.Bottom(), b.Y, b.Bottom())
		inDirection = b.Right() <= a.X || (overlap > 0 && b.X <= a.X)
		primary = int64(a.X - b.Right())
		secondary = int64(abs32(a.CenterY() - b.CenterY()))
	case Right:
		overlap = common.OverlapLen(a.Y, a.Bottom(), b.Y, b.Bottom())
		inDirection = b.X >= a.Right() || (overlap > 0 && b.Right() >= a.Right())
		primary = int64(b.X - a.Right())
		secondary = int64(abs32(a.CenterY() - b.CenterY()))
	case Up:
		overlap = common.OverlapLen(a.X, a.Right(), b.X, b.Right())
		inDirection = b.Bottom() <= a.Y || (overlap > 0 && b.Y <= a.Y)
		primary = int64(a.Y - b.Bottom())
		secondary = int64(abs32(a.CenterX() - b.CenterX()))
	case Down:
		overlap = common.OverlapLen(a.X, a.Right(), b.X, b.Right())
		inDirection = b.Y >= a.Bottom() || (overlap > 0 && b.Bottom() >= a.Bottom())
		primary = int64(b.Y - a.Bottom())
		secondary = int64(abs32(a.CenterX() - b.CenterX()))
	}

	if overlap > 0 {
		secondary = 0
	}
	if primary < 0 {
		primary = 0
	}

	s := primary*primaryScale + secondary*secondaryScale
	if inDirection {
		s += inDirectionBonus
		if overlap > 0 {
			s += overlapBonus
		}
		return s, true
	}

	// Fallback: squared Euclidean center distance, always worse than any
	// in-direction candidate thanks to the bonuses above.
	dx := int64(a.CenterX() - b.CenterX())
	dy := int64(a.CenterY() - b.CenterY())
	return dx*dx + dy*dy, false
}

// Extremum selects the extreme-position client on a workspace when
// there is no current focus to navigate from: the maximum center-x for
// Right, minimum for Left, maximum center-y for Down, minimum for Up.
func Extremum(candidates []*store.Client, dir Direction) *store.Client {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		switch dir {
		case Right:
			if c.Geom.CenterX() > best.Geom.CenterX() {
				best = c
			}
		case Left:
			if c.Geom.CenterX() < best.Geom.CenterX() {
				best = c
			}
		case Down:
			if c.Geom.CenterY() > best.Geom.CenterY() {
				best = c
			}
		case Up:
			if c.Geom.CenterY() < best.Geom.CenterY() {
				best = c
			}
		}
	}
	return best
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
