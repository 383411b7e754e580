package nav

import (
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"

	"github.com/hsdcc/hsdwm/common"
	"github.com/hsdcc/hsdwm/store"
)

func clientAt(win int, g common.Geometry) *store.Client {
	return &store.Client{Win: 0x1000 + xproto.Window(uint32Win(win)), Geom: g}
}

func uint32Win(v int) uint32 { return uint32(v) }

func TestBestPrefersInDirectionOverCloserOffAxis(t *testing.T) {
	cur := clientAt(1, common.Geometry{X: 100, Y: 100, W: 100, H: 100})
	right := clientAt(2, common.Geometry{X: 210, Y: 100, W: 100, H: 100})
	below := clientAt(3, common.Geometry{X: 150, Y: 205, W: 20, H: 20})

	got := Best(cur, []*store.Client{right, below}, Right)
	assert.Equal(t, right, got)
}

func TestBestFallsBackToCandidateBehindDirection(t *testing.T) {
	cur := clientAt(1, common.Geometry{X: 200, Y: 100, W: 100, H: 100})
	left := clientAt(2, common.Geometry{X: 0, Y: 100, W: 100, H: 100})

	got := Best(cur, []*store.Client{left}, Right)
	// left is not in-direction for Right, but it's the only candidate so
	// the fallback distance metric still picks it.
	assert.Equal(t, left, got)
}

func TestBestPicksNearestAmongMultipleInDirection(t *testing.T) {
	cur := clientAt(1, common.Geometry{X: 0, Y: 0, W: 100, H: 100})
	near := clientAt(2, common.Geometry{X: 110, Y: 0, W: 100, H: 100})
	far := clientAt(3, common.Geometry{X: 400, Y: 0, W: 100, H: 100})

	got := Best(cur, []*store.Client{far, near}, Right)
	assert.Equal(t, near, got)
}

func TestBestIgnoresSelf(t *testing.T) {
	cur := clientAt(1, common.Geometry{X: 0, Y: 0, W: 100, H: 100})
	got := Best(cur, []*store.Client{cur}, Right)
	assert.Nil(t, got)
}

func TestExtremumSelectsEdgeClient(t *testing.T) {
	left := clientAt(1, common.Geometry{X: 0, Y: 0, W: 100, H: 100})
	mid := clientAt(2, common.Geometry{X: 200, Y: 0, W: 100, H: 100})
	right := clientAt(3, common.Geometry{X: 400, Y: 0, W: 100, H: 100})

	assert.Equal(t, right, Extremum([]*store.Client{left, mid, right}, Right))
	assert.Equal(t, left, Extremum([]*store.Client{left, mid, right}, Left))
}

func TestExtremumEmptyReturnsNil(t *testing.T) {
	assert.Nil(t, Extremum(nil, Up))
}
