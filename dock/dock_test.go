package dock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hsdcc/hsdwm/store"
)

func TestComputeMarginsTakesPerSideMax(t *testing.T) {
	docks := []*store.Client{
		{Strut: store.Strut{Top: 30, Left: 10}},
		{Strut: store.Strut{Top: 20, Left: 40, Right: 5}},
	}
	m := ComputeMargins(docks)
	assert.Equal(t, int32(30), m.Top)
	assert.Equal(t, int32(40), m.Left)
	assert.Equal(t, int32(5), m.Right)
	assert.Equal(t, int32(0), m.Bottom)
}

func TestGeometryTopStrutWithPartialCoords(t *testing.T) {
	s := store.Strut{Top: 30, TopStartX: 0, TopEndX: 999}
	g := Geometry(1000, 800, Margins{}, s)
	assert.Equal(t, int32(0), g.X)
	assert.Equal(t, int32(0), g.Y)
	assert.Equal(t, int32(1000), g.W)
	assert.Equal(t, int32(30), g.H)
}

func TestGeometryTopStrutFallsBackToFullWidthMinusMargins(t *testing.T) {
	s := store.Strut{Top: 30}
	g := Geometry(1000, 800, Margins{Left: 50, Right: 20}, s)
	assert.Equal(t, int32(50), g.X)
	assert.Equal(t, int32(930), g.W)
}

func TestGeometryBottomStrut(t *testing.T) {
	s := store.Strut{Bottom: 40, BottomStartX: 0, BottomEndX: 999}
	g := Geometry(1000, 800, Margins{}, s)
	assert.Equal(t, int32(760), g.Y)
	assert.Equal(t, int32(40), g.H)
}

func TestStrutNonZeroClassification(t *testing.T) {
	assert.False(t, store.Strut{}.NonZero())
	assert.True(t, store.Strut{Left: 1}.NonZero())
	assert.True(t, store.Strut{Right: 1}.NonZero())
}
