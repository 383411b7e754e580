package input

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"

	log "github.com/sirupsen/logrus"

	"github.com/hsdcc/hsdwm/common"
	"github.com/hsdcc/hsdwm/desktop"
	"github.com/hsdcc/hsdwm/nav"
	"github.com/hsdcc/hsdwm/spawn"
	"github.com/hsdcc/hsdwm/store"
)

// bases are the two modifier bases both accepted for every binding: the
// configured main modifier and Alt.
func bases() []uint16 {
	return []uint16{common.Current.ModMask, common.ModAlt}
}

// GrabAll registers every keysym grab named in the binding table, each
// under the cross product of both modifier bases and eight lock-mask
// combinations: every entry of xgbutil.IgnoreMods (none, CapsLock,
// NumLock, both), each with and without Shift, so NumLock/CapsLock
// being on never breaks a binding.
func GrabAll() error {
	grab := func(sym xproto.Keysym, shift bool) error {
		for _, kc := range KeycodesFor(sym) {
			for _, base := range bases() {
				mod := base
				if shift {
					mod |= common.ModShift
				}
				for _, ignore := range xgbutil.IgnoreMods {
					for _, extra := range []uint16{0, common.ModShift} {
						err := xproto.GrabKeyChecked(store.X.Conn(), false, store.X.RootWin(),
							mod|ignore|extra, kc, xproto.GrabModeAsync, xproto.GrabModeAsync).Check()
						if err != nil {
							return err
						}
					}
				}
			}
		}
		return nil
	}

	plain := []xproto.Keysym{xkReturn, xkD, xkF, xkTab, xkT, xkQ, xkA, xkH, xkJ, xkK, xkL, xkLeft, xkUp, xkDown, xkRight}
	for _, s := range plain {
		if err := grab(s, false); err != nil {
			return err
		}
	}
	// Shift variants: workspace move, all-workspace mode toggle, quit,
	// directional swap.
	shifted := []xproto.Keysym{xkE, xkT, xkH, xkJ, xkK, xkL, xkLeft, xkUp, xkDown, xkRight}
	for _, s := range shifted {
		if err := grab(s, true); err != nil {
			return err
		}
	}
	for i := 0; i < common.Current.Workspaces; i++ {
		if err := grab(xproto.Keysym(xk1+i), false); err != nil {
			return err
		}
		if err := grab(xproto.Keysym(xk1+i), true); err != nil {
			return err
		}
	}
	for _, s := range azertyTopRow {
		if err := grab(s, false); err != nil {
			return err
		}
		if err := grab(s, true); err != nil {
			return err
		}
	}
	return nil
}

// acceptedMods strips the lock masks the grab cross product absorbs, so
// dispatch compares against the same canonical base+shift state
// regardless of NumLock/CapsLock.
func acceptedMods(state uint16) uint16 {
	return state &^ (common.ModLock | common.Mod2)
}

// HandleKeyPress dispatches a KeyPress event to an action.
func HandleKeyPress(m *desktop.Manager, e xproto.KeyPressEvent) {
	sym := KeysymOf(e.Detail)
	state := acceptedMods(e.State)
	shift := state&common.ModShift != 0

	switch sym {
	case xkReturn:
		spawn.Launch(common.Current.Terminal)
	case xkD:
		spawn.Launch(common.Current.Launcher)
	case xkF:
		m.ToggleFullscreen()
	case xkTab:
		if !m.Cycling {
			m.StartCycle()
		}
		m.Advance(shift)
	case xkT:
		m.ToggleMode(shift)
	case xkQ, xkA:
		closeFocused(m)
	case xkE:
		if shift {
			Quit = true
		}
	case xkH, xkLeft:
		if shift {
			m.DirectionalSwap(nav.Left)
		} else {
			m.DirectionalFocus(nav.Left)
		}
	case xkL, xkRight:
		if shift {
			m.DirectionalSwap(nav.Right)
		} else {
			m.DirectionalFocus(nav.Right)
		}
	case xkK, xkUp:
		if shift {
			m.DirectionalSwap(nav.Up)
		} else {
			m.DirectionalFocus(nav.Up)
		}
	case xkJ, xkDown:
		if shift {
			m.DirectionalSwap(nav.Down)
		} else {
			m.DirectionalFocus(nav.Down)
		}
	default:
		if ws := WorkspaceForKeysym(sym); ws >= 0 {
			if shift {
				m.MoveFocusedToWorkspace(ws)
			} else {
				m.SwitchWorkspace(ws)
			}
		}
	}
}

// HandleKeyRelease ends Alt-Tab cycling when an Alt or Super key is
// released; releasing any other key, Tab included, leaves cycling on.
func HandleKeyRelease(m *desktop.Manager, e xproto.KeyReleaseEvent) {
	if !m.Cycling {
		return
	}
	sym := KeysymOf(e.Detail)
	if sym == 0 {
		return
	}
	if isModifierKeysym(sym) {
		m.EndCycle()
	}
}

func isModifierKeysym(sym xproto.Keysym) bool {
	const (
		xkAltL    = 0xffe9
		xkAltR    = 0xffea
		xkSuperL  = 0xffeb
		xkSuperR  = 0xffec
	)
	switch sym {
	case xkAltL, xkAltR, xkSuperL, xkSuperR:
		return true
	}
	return false
}

func closeFocused(m *desktop.Manager) {
	c := m.Focus
	if c == nil {
		return
	}
	if store.SupportsDelete(c.Win) {
		if err := store.SendDelete(c.Win); err != nil {
			log.WithField("window", c.Win).Warn("delete send failed: ", err)
		}
		return
	}
	_ = xproto.DestroyWindowChecked(store.X.Conn(), c.Win).Check()
}

// Quit is set by Shift+Mod+E; the event loop checks it after every
// dispatched event and exits cleanly (exit code 0) when true.
var Quit bool
