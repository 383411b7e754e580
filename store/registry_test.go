package store

import (
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(win xproto.Window, ws int) *Client {
	return &Client{Win: win, Workspace: ws}
}

func TestRegistryInsertPrepends(t *testing.T) {
	r := NewRegistry()
	a := newClient(1, 0)
	b := newClient(2, 0)

	r.Insert(a)
	r.Insert(b)

	require.Equal(t, b, r.Head)
	assert.Equal(t, a, r.Head.Next)
	assert.Nil(t, r.Head.Prev)
	assert.Equal(t, b, a.Prev)
}

func TestRegistryFindAndRemove(t *testing.T) {
	r := NewRegistry()
	a, b, c := newClient(1, 0), newClient(2, 0), newClient(3, 0)
	r.Insert(a)
	r.Insert(b)
	r.Insert(c)

	require.Equal(t, b, r.Find(2))

	r.Remove(b)
	assert.Nil(t, r.Find(2))
	assert.Equal(t, c, r.Head)
	assert.Equal(t, a, c.Next)
	assert.Equal(t, c, a.Prev)
	assert.Empty(t, r.CheckInvariants())
}

func TestRegistryCollectFiltersByWorkspaceAndDock(t *testing.T) {
	r := NewRegistry()
	a := newClient(1, 0)
	dockC := newClient(2, -1)
	dockC.IsDock = true
	b := newClient(3, 0)
	other := newClient(4, 1)

	r.Insert(a)
	r.Insert(dockC)
	r.Insert(b)
	r.Insert(other)

	got := r.Collect(0)
	require.Len(t, got, 2)
	assert.Equal(t, b, got[0]) // most recently inserted of ws 0 is head-most
	assert.Equal(t, a, got[1])

	docks := r.Docks()
	require.Len(t, docks, 1)
	assert.Equal(t, dockC, docks[0])
}

func TestRegistrySwapAdjacent(t *testing.T) {
	r := NewRegistry()
	a, b, c := newClient(1, 0), newClient(2, 0), newClient(3, 0)
	r.Insert(c) // head
	r.Insert(b)
	r.Insert(a) // a -> b -> c, a is head

	r.Swap(a, b)
	assert.Equal(t, b, r.Head)
	assert.Equal(t, a, b.Next)
	assert.Equal(t, c, a.Next)
	assert.Empty(t, r.CheckInvariants())
}

func TestRegistrySwapNonAdjacent(t *testing.T) {
	r := NewRegistry()
	a, b, c, d := newClient(1, 0), newClient(2, 0), newClient(3, 0), newClient(4, 0)
	r.Insert(d)
	r.Insert(c)
	r.Insert(b)
	r.Insert(a) // order: a b c d

	r.Swap(a, c)
	got := r.All()
	require.Equal(t, []*Client{c, b, a, d}, got)
	assert.Empty(t, r.CheckInvariants())
}

func TestRegistrySwapIsIdempotentInPairs(t *testing.T) {
	r := NewRegistry()
	a, b, c := newClient(1, 0), newClient(2, 0), newClient(3, 0)
	r.Insert(c)
	r.Insert(b)
	r.Insert(a) // a b c

	before := append([]*Client(nil), r.All()...)
	r.Swap(a, b)
	r.Swap(a, b)
	after := r.All()

	assert.Equal(t, before, after)
}

func TestRegistryInvariantsCatchBadWorkspace(t *testing.T) {
	r := NewRegistry()
	bad := newClient(1, 99)
	r.Insert(bad)
	problems := r.CheckInvariants()
	assert.NotEmpty(t, problems)
}
