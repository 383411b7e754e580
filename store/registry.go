package store

import (
	"fmt"

	"github.com/jezek/xgb/xproto"

	"github.com/hsdcc/hsdwm/common"
)

// Strut holds the twelve EWMH _NET_WM_STRUT_PARTIAL cardinals. A client
// with any of the four primary sizes non-zero is classified as a dock
// even absent an explicit _NET_WM_WINDOW_TYPE_DOCK atom.
type Strut struct {
	Left, Right, Top, Bottom               int32
	LeftStartY, LeftEndY                   int32
	RightStartY, RightEndY                 int32
	TopStartX, TopEndX                     int32
	BottomStartX, BottomEndX               int32
}

// NonZero reports whether any of the four primary strut sizes reserves
// screen area.
func (s Strut) NonZero() bool {
	return s.Left != 0 || s.Right != 0 || s.Top != 0 || s.Bottom != 0
}

// Client is one managed top-level window. Workspace is -1 for docks,
// meaning "global", and in [0, common.Current.Workspaces) otherwise.
type Client struct {
	Win       xproto.Window
	Geom      common.Geometry
	Workspace int
	IsDock    bool
	Strut     Strut

	Class    string
	Instance string

	// PreFullscreen is the floating-mode geometry to restore when the
	// fullscreen toggle is switched back off. It is meaningful only
	// while Fullscreen is true.
	PreFullscreen common.Geometry
	Fullscreen    bool

	Prev, Next *Client
}

// Registry is a doubly-linked, prepend-on-insert ordered list of managed
// clients. Insertion order is the single source of truth for Alt-Tab
// order, dwindle placement order, and master/stack assignment.
type Registry struct {
	Head *Client
	byWin map[xproto.Window]*Client
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byWin: make(map[xproto.Window]*Client)}
}

// Insert prepends a new client, making it the head of the registry.
func (r *Registry) Insert(c *Client) {
	c.Prev = nil
	c.Next = r.Head
	if r.Head != nil {
		r.Head.Prev = c
	}
	r.Head = c
	r.byWin[c.Win] = c
}

// Remove unlinks c from the registry. c must be a member; callers look
// it up via Find first.
func (r *Registry) Remove(c *Client) {
	if c.Prev != nil {
		c.Prev.Next = c.Next
	} else {
		r.Head = c.Next
	}
	if c.Next != nil {
		c.Next.Prev = c.Prev
	}
	c.Prev, c.Next = nil, nil
	delete(r.byWin, c.Win)
}

// Find returns the client owning window w, or nil.
func (r *Registry) Find(w xproto.Window) *Client {
	return r.byWin[w]
}

// Collect returns the ordered subsequence of clients tagged with
// workspace ws, preserving registry order. Docks (workspace -1) are
// never included since they participate in no workspace's layout.
func (r *Registry) Collect(ws int) []*Client {
	var out []*Client
	for c := r.Head; c != nil; c = c.Next {
		if c.Workspace == ws && !c.IsDock {
			out = append(out, c)
		}
	}
	return out
}

// Docks returns every client classified as a dock, in registry order.
func (r *Registry) Docks() []*Client {
	var out []*Client
	for c := r.Head; c != nil; c = c.Next {
		if c.IsDock {
			out = append(out, c)
		}
	}
	return out
}

// All returns every managed client in registry order.
func (r *Registry) All() []*Client {
	var out []*Client
	for c := r.Head; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}

// Len reports the number of managed clients.
func (r *Registry) Len() int {
	n := 0
	for c := r.Head; c != nil; c = c.Next {
		n++
	}
	return n
}

// Swap splices two registry nodes, handling the three possible
// adjacency cases: a immediately precedes b, b immediately precedes a,
// or neither (non-adjacent). The head pointer is updated if either
// node was head. Swap never touches focus; callers decide what happens
// to focus afterward.
func (r *Registry) Swap(a, b *Client) {
	if a == b {
		return
	}
	if a.Next == b {
		r.swapAdjacent(a, b)
		return
	}
	if b.Next == a {
		r.swapAdjacent(b, a)
		return
	}

	aPrev, aNext := a.Prev, a.Next
	bPrev, bNext := b.Prev, b.Next

	a.Prev, a.Next = bPrev, bNext
	b.Prev, b.Next = aPrev, aNext

	if bPrev != nil {
		bPrev.Next = a
	}
	if bNext != nil {
		bNext.Prev = a
	}
	if aPrev != nil {
		aPrev.Next = b
	}
	if aNext != nil {
		aNext.Prev = b
	}

	r.fixHead(a, b)
}

// swapAdjacent swaps x and y where x immediately precedes y.
func (r *Registry) swapAdjacent(x, y *Client) {
	before, after := x.Prev, y.Next

	y.Prev, y.Next = before, x
	x.Prev, x.Next = y, after

	if before != nil {
		before.Next = y
	}
	if after != nil {
		after.Prev = x
	}

	r.fixHead(x, y)
}

func (r *Registry) fixHead(a, b *Client) {
	if r.Head == a {
		r.Head = b
	} else if r.Head == b {
		r.Head = a
	}
}

// CheckInvariants validates the registry's structural invariants:
// single head, consistent prev/next links, and correct workspace
// tagging for docks vs. non-docks. It is exercised from tests, not
// from production code paths.
func (r *Registry) CheckInvariants() []string {
	var problems []string
	heads := 0
	for c := r.Head; c != nil; c = c.Next {
		if c.Prev == nil {
			heads++
		} else if c.Prev.Next != c {
			problems = append(problems, "prev.next != c for "+winString(c.Win))
		}
		if c.Next != nil && c.Next.Prev != c {
			problems = append(problems, "next.prev != c for "+winString(c.Win))
		}
		if c.IsDock && c.Workspace != -1 {
			problems = append(problems, "dock with workspace != -1: "+winString(c.Win))
		}
		if !c.IsDock && (c.Workspace < 0 || c.Workspace >= common.Current.Workspaces) {
			problems = append(problems, "non-dock with out-of-range workspace: "+winString(c.Win))
		}
	}
	if heads != 1 && r.Head != nil {
		problems = append(problems, "not exactly one head")
	}
	return problems
}

func winString(w xproto.Window) string {
	return fmt.Sprintf("0x%x", uint32(w))
}
