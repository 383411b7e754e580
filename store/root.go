package store

import (
	"fmt"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/xevent"

	log "github.com/sirupsen/logrus"
)

// X is the process-wide connection handle. The X connection is an
// exclusively-owned resource used from exactly one control-flow path;
// it is a singleton because the event loop itself is a singleton, not
// because global state is otherwise encouraged.
var X *xgbutil.XUtil

// Atoms interned once at startup and used throughout for ICCCM/EWMH
// property and ClientMessage comparisons.
var Atoms struct {
	WMProtocols         xproto.Atom
	WMDeleteWindow      xproto.Atom
	NetWMWindowType     xproto.Atom
	NetWMWindowTypeDock xproto.Atom
	NetWMStrutPartial   xproto.Atom
	NetWMStrut          xproto.Atom
	NetWMState          xproto.Atom
	NetWMStateAbove     xproto.Atom
}

// rootEventMask is selected on the root window: SubstructureRedirect is
// what makes this process the window manager, refused with BadAccess if
// another WM already holds it.
const rootEventMask = xproto.EventMaskSubstructureRedirect |
	xproto.EventMaskSubstructureNotify |
	xproto.EventMaskButtonPress |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskKeyRelease

// Connect opens the X connection, retrying a few times the way the
// teacher's Connected() does, since the X server or the session manager
// may not be fully up yet on early-boot autostart.
func Connect() error {
	var err error
	const retries = 5
	for i := 0; i <= retries; i++ {
		if i > 0 {
			log.Warn("retrying X connection (", i, "/", retries, ")")
			time.Sleep(500 * time.Millisecond)
		}
		X, err = xgbutil.NewConn()
		if err == nil {
			break
		}
		log.Error("connection to X server failed: ", err)
	}
	if err != nil {
		return fmt.Errorf("could not connect to X server: %w", err)
	}

	xevent.ErrorHandlerSet(X, xgbutil.ErrorHandlerFun(handleXError))

	if err := internAtoms(); err != nil {
		return fmt.Errorf("atom intern failed: %w", err)
	}
	return nil
}

// BecomeWM selects SubstructureRedirect on the root window. A BadAccess
// here means another window manager already owns the display; that is
// the sole fatal runtime condition beyond startup connection failure.
func BecomeWM() error {
	err := xproto.ChangeWindowAttributesChecked(X.Conn(), X.RootWin(), xproto.CwEventMask,
		[]uint32{rootEventMask}).Check()
	if err != nil {
		if _, ok := err.(xproto.AccessError); ok {
			return fmt.Errorf("another window manager is already running: %w", err)
		}
		return err
	}
	return nil
}

func internAtoms() error {
	names := []struct {
		name string
		dst  *xproto.Atom
	}{
		{"WM_PROTOCOLS", &Atoms.WMProtocols},
		{"WM_DELETE_WINDOW", &Atoms.WMDeleteWindow},
		{"_NET_WM_WINDOW_TYPE", &Atoms.NetWMWindowType},
		{"_NET_WM_WINDOW_TYPE_DOCK", &Atoms.NetWMWindowTypeDock},
		{"_NET_WM_STRUT_PARTIAL", &Atoms.NetWMStrutPartial},
		{"_NET_WM_STRUT", &Atoms.NetWMStrut},
		{"_NET_WM_STATE", &Atoms.NetWMState},
		{"_NET_WM_STATE_ABOVE", &Atoms.NetWMStateAbove},
	}
	for _, n := range names {
		a, err := xproto.InternAtom(X.Conn(), false, uint16(len(n.name)), n.name).Reply()
		if err != nil {
			return fmt.Errorf("intern %s: %w", n.name, err)
		}
		*n.dst = a.Atom
	}
	return nil
}

// handleXError demotes every X protocol error to a warning. BadAccess
// during the initial BecomeWM call is checked synchronously above and
// never reaches here; every other BadAccess (e.g. a race where a client
// is destroyed between our query and our request) is routine.
func handleXError(err xgb.Error) {
	log.WithField("error", err).Warn("X protocol error")
}

// Sync flushes the connection and waits for the server to process all
// outstanding requests, used to bracket the grab/splice/refocus
// sequence in a directional swap so no intermediate state is visible.
func Sync() {
	X.Sync()
}

// ScreenGeometry returns the whole-display rectangle. Multi-monitor
// regioning is an explicit non-goal, so the display is treated as one
// screen regardless of RandR output layout.
func ScreenGeometry() (w, h int32) {
	screen := xproto.Setup(X.Conn()).DefaultScreen(X.Conn())
	return int32(screen.WidthInPixels), int32(screen.HeightInPixels)
}
