package x11

import (
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/nigeltao/tagwm/internal/wm"
)

const buttonMask = xp.EventMaskButtonPress | xp.EventMaskButtonRelease

// SetInputFocus focuses win, or hands focus back to the pointer root when
// win is zero.
func (c *Conn) SetInputFocus(win xp.Window) {
	if win == 0 {
		win = xp.InputFocusPointerRoot
	}
	c.check(xp.SetInputFocusChecked(c.xu.Conn(), xp.InputFocusPointerRoot, win, xp.TimeCurrentTime))
}

func (c *Conn) NumlockMask() uint16 { return c.numlock }

func (c *Conn) ParseKey(s string) (uint16, []xp.Keycode, error) {
	return keybind.ParseString(c.xu, s)
}

func (c *Conn) ParseButton(s string) (uint16, xp.Button, error) {
	return mousebind.ParseString(c.xu, s)
}

// RefreshKeyboard reloads the keyboard and modifier maps after a
// MappingNotify and recomputes which modifier Num_Lock sits on. Every grab
// is repeated with Lock and Num_Lock added.
func (c *Conn) RefreshKeyboard() {
	km, mm := keybind.MapsGet(c.xu)
	keybind.KeyMapSet(c.xu, km)
	keybind.ModMapSet(c.xu, mm)

	c.numlock = 0
	for _, kc := range keybind.StrToKeycodes(c.xu, "Num_Lock") {
		if m := keybind.ModGet(c.xu, kc); m != 0 {
			c.numlock = m
			break
		}
	}
	xevent.IgnoreMods = []uint16{0, xp.ModMaskLock}
	if c.numlock != 0 {
		xevent.IgnoreMods = append(xevent.IgnoreMods, c.numlock, c.numlock|xp.ModMaskLock)
	}
}

func (c *Conn) GrabKeys(grabs []wm.KeyGrab) {
	c.check(xp.UngrabKeyChecked(c.xu.Conn(), xp.GrabAny, c.root, xp.ModMaskAny))
	for _, g := range grabs {
		keybind.Grab(c.xu, c.root, g.Mods, g.Code)
	}
}

// GrabButtons sets up the passive grabs of a client. An unfocused client
// grabs every button synchronously so that a click can focus it and then
// be replayed to it.
func (c *Conn) GrabButtons(win xp.Window, focused bool, grabs []wm.ButtonGrab) {
	c.UngrabButtons(win)
	if !focused {
		c.check(xp.GrabButtonChecked(c.xu.Conn(), false, win, buttonMask,
			xp.GrabModeSync, xp.GrabModeSync, 0, 0, xp.ButtonIndexAny, xp.ModMaskAny))
	}
	for _, g := range grabs {
		mousebind.Grab(c.xu, win, g.Mods, g.Button, false)
	}
}

func (c *Conn) UngrabButtons(win xp.Window) {
	c.check(xp.UngrabButtonChecked(c.xu.Conn(), xp.ButtonIndexAny, win, xp.ModMaskAny))
}

func (c *Conn) ReplayPointer() {
	xevent.ReplayPointer(c.xu)
}

func (c *Conn) GrabPointer(cur wm.Cursor) bool {
	ok, err := mousebind.GrabPointer(c.xu, c.root, 0, c.cursors[cur])
	if err != nil {
		c.log.Warnf("%v", err)
	}
	return ok
}

func (c *Conn) UngrabPointer() {
	mousebind.UngrabPointer(c.xu)
}

func (c *Conn) QueryPointer() (x, y int, ok bool) {
	p, err := xp.QueryPointer(c.xu.Conn(), c.root).Reply()
	if err != nil {
		return 0, 0, false
	}
	return int(p.RootX), int(p.RootY), true
}

func (c *Conn) WarpPointer(win xp.Window, x, y int) {
	c.check(xp.WarpPointerChecked(c.xu.Conn(), 0, win, 0, 0, 0, 0, int16(x), int16(y)))
}

// Sync makes a round trip and returns the sequence number of the request.
// Every event queued before it was generated by an earlier request.
func (c *Conn) Sync() uint16 {
	c.Flush()
	reply, err := xp.GetInputFocus(c.xu.Conn()).Reply()
	if err != nil {
		c.ReportError(err)
		return 0
	}
	return reply.Sequence
}
