package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsdcc/hsdwm/common"
)

func withTestConfig(t *testing.T) {
	t.Helper()
	saved := common.Current
	common.Current = common.Config{
		BorderPxFocused: 12,
		GapOuter:        24,
		GapInner:        8,
		MasterFactor:    60,
		MinW:            20,
		MinH:            20,
	}
	t.Cleanup(func() { common.Current = saved })
}

func TestAvailableRectangle(t *testing.T) {
	withTestConfig(t)
	avail := Available(1000, 800, 0, 0, 0, 0)
	// outer inset = go(24) + b(12) = 36 on every side.
	assert.Equal(t, common.Geometry{X: 36, Y: 36, W: 928, H: 728}, avail)
}

func TestAvailableRectangleWithReservedMargins(t *testing.T) {
	withTestConfig(t)
	avail := Available(1000, 800, 0, 0, 30, 0)
	assert.Equal(t, int32(36), avail.X)
	assert.Equal(t, int32(66), avail.Y)
	assert.Equal(t, int32(800-2*36-30), avail.H)
}

func TestTileSingleClientFillsAvailable(t *testing.T) {
	withTestConfig(t)
	avail := common.Geometry{X: 36, Y: 36, W: 928, H: 728}
	cells := Tile(avail, 1, common.Master)
	require.Len(t, cells, 1)
	assert.Equal(t, avail.Inset(12), cells[0])
}

func TestTileMasterStackTwoClients(t *testing.T) {
	withTestConfig(t)
	avail := common.Geometry{X: 36, Y: 36, W: 928, H: 728}
	cells := Tile(avail, 2, common.Master)
	require.Len(t, cells, 2)

	// Single stack client (boundary behavior): it fills full available
	// height, i.e. its bordered cell spans the full available rectangle
	// top-to-bottom.
	stack := cells[1]
	assert.Equal(t, avail.Y+12, stack.Y)
	assert.Equal(t, avail.Bottom()-12, stack.Bottom())
}

func TestMasterStackNoOverlapAndWithinAvailable(t *testing.T) {
	withTestConfig(t)
	avail := common.Geometry{X: 36, Y: 36, W: 928, H: 728}
	for n := 1; n <= 5; n++ {
		cells := Tile(avail, n, common.Master)
		assertNoOverlapWithinAvailable(t, avail, cells)
	}
}

func TestDwindleNoOverlapAndWithinAvailable(t *testing.T) {
	withTestConfig(t)
	avail := common.Geometry{X: 36, Y: 36, W: 928, H: 728}
	for n := 1; n <= 6; n++ {
		cells := Tile(avail, n, common.Dwindle)
		assertNoOverlapWithinAvailable(t, avail, cells)
	}
}

// assertNoOverlapWithinAvailable checks the two testable-property
// invariants shared by both layouts: every placed (bordered) rectangle
// lies within the outer available rectangle once its border is added
// back, and no two placed rectangles overlap.
func assertNoOverlapWithinAvailable(t *testing.T, avail common.Geometry, cells []common.Geometry) {
	t.Helper()
	b := common.Current.BorderPxFocused
	for i, c := range cells {
		outer := common.Geometry{X: c.X - b, Y: c.Y - b, W: c.W + 2*b, H: c.H + 2*b}
		assert.GreaterOrEqual(t, outer.X, avail.X)
		assert.GreaterOrEqual(t, outer.Y, avail.Y)
		assert.LessOrEqual(t, outer.Right(), avail.Right())
		assert.LessOrEqual(t, outer.Bottom(), avail.Bottom())
		for j, other := range cells {
			if i == j {
				continue
			}
			assert.False(t, c.Overlaps(other), "cells %d and %d overlap", i, j)
		}
	}
}
