package wm

import (
	"github.com/BurntSushi/xgbutil/icccm"
)

// focus gives the input focus to c, or to the most recently focused
// visible client of the selected monitor when c is nil or hidden.
func (wm *Manager) focus(c *Client) {
	if wm.stopping {
		return
	}
	if c == nil || !c.visible() {
		c = wm.firstVisibleInStack(wm.selmon)
	}
	if sel := wm.selmon.sel; sel != nil && sel != c {
		wm.unfocus(sel, false, c)
	}
	if c != nil {
		if c.mon != wm.selmon {
			wm.selmon = c.mon
		}
		if c.urgent {
			wm.setUrgent(c, false)
		}
		wm.detachStack(c)
		wm.attachStack(c)
		wm.grabButtons(c, true)
		wm.dpy.SetBorderColor(c.win, SchemeSel)
		wm.setFocus(c)
	} else {
		wm.dpy.SetInputFocus(0)
		wm.dpy.SetActiveWindow(0)
	}
	wm.selmon.sel = c
	wm.drawBars()
}

// unfocus takes the focus away from c. next is the client about to be
// focused, if any.
func (wm *Manager) unfocus(c *Client, setFocus bool, next *Client) {
	if c == nil {
		return
	}
	if wm.cfg.LoseFullscreen && c.reallyFullscreen() && next != nil &&
		next.mon == c.mon && !next.floating && c.visible() {
		wm.setFullscreen(c, false)
	}
	wm.grabButtons(c, false)
	wm.dpy.SetBorderColor(c.win, SchemeNorm)
	if setFocus {
		wm.dpy.SetInputFocus(0)
		wm.dpy.SetActiveWindow(0)
	}
}

func (wm *Manager) setFocus(c *Client) {
	if !c.neverFocus {
		wm.dpy.SetInputFocus(c.win)
		wm.dpy.SetActiveWindow(c.win)
	}
	wm.dpy.SendProtocol(c.win, "WM_TAKE_FOCUS")
}

func (wm *Manager) setUrgent(c *Client, urgent bool) {
	c.urgent = urgent
	h := wm.dpy.WMHints(c.win)
	if h == nil {
		return
	}
	if urgent {
		h.Flags |= icccm.HintUrgency
	} else {
		h.Flags &^= icccm.HintUrgency
	}
	wm.dpy.SetWMHints(c.win, h)
}

func (wm *Manager) updateWMHints(c *Client) {
	h := wm.dpy.WMHints(c.win)
	if h == nil {
		return
	}
	if c == wm.selmon.sel && h.Flags&icccm.HintUrgency != 0 {
		h.Flags &^= icccm.HintUrgency
		wm.dpy.SetWMHints(c.win, h)
	} else {
		c.urgent = h.Flags&icccm.HintUrgency != 0
		if c.urgent {
			wm.dpy.SetBorderColor(c.win, SchemeUrg)
		}
	}
	if h.Flags&icccm.HintInput != 0 {
		c.neverFocus = h.Input == 0
	} else {
		c.neverFocus = false
	}
}

// focusLocked reports whether a fullscreen selected client holds on to the
// focus.
func (wm *Manager) focusLocked() bool {
	sel := wm.selmon.sel
	return wm.cfg.LockFullscreen && sel != nil && sel.reallyFullscreen()
}

// focusStack focuses the next (dir > 0) or previous visible client in list
// order, wrapping around.
func (wm *Manager) focusStack(dir int) {
	m := wm.selmon
	if m.sel == nil || wm.focusLocked() {
		return
	}
	var vis []*Client
	cur := -1
	for _, c := range wm.clientsOf(m) {
		if !c.visible() {
			continue
		}
		if c == m.sel {
			cur = len(vis)
		}
		vis = append(vis, c)
	}
	if cur < 0 || len(vis) < 2 {
		return
	}
	n := len(vis)
	next := vis[((cur+dir)%n+n)%n]
	wm.focus(next)
	wm.restack(m)
}

// zoom swaps the selected tiled client with the master, or the master with
// the next tiled client when the master is already selected.
func (wm *Manager) zoom() {
	m := wm.selmon
	c := m.sel
	if c == nil || c.floating || wm.layoutOf(m).Floating() {
		return
	}
	tiled := wm.tiled(m)
	if len(tiled) == 0 {
		return
	}
	if c == tiled[0] {
		if len(tiled) < 2 {
			return
		}
		c = tiled[1]
	}
	wm.detach(c)
	m.clients = insertAt(m.clients, 0, c.handle)
	wm.focus(c)
	wm.arrange(m)
}

func (wm *Manager) killClient() {
	for _, c := range wm.targets() {
		if !wm.dpy.SendProtocol(c.win, "WM_DELETE_WINDOW") {
			wm.dpy.Kill(c.win)
		}
	}
}

func (wm *Manager) toggleFloating() {
	cs := wm.targets()
	for _, c := range cs {
		wm.flipFloating(c)
	}
	wm.arrangeAll(cs)
}

// flipFloating switches c between floating and tiled. Fixed size clients
// always float.
func (wm *Manager) flipFloating(c *Client) {
	if c.reallyFullscreen() {
		return
	}
	c.floating = !c.floating || c.fixed
	if c.floating {
		wm.resize(c, c.r, false)
	}
}

func (wm *Manager) toggleSticky() {
	c := wm.selmon.sel
	if c == nil {
		return
	}
	c.sticky = !c.sticky
	wm.arrange(wm.selmon)
}

// grabButtons installs the client-region button bindings on c. Unfocused
// clients also get every button grabbed so a click focuses them.
func (wm *Manager) grabButtons(c *Client, focused bool) {
	var grabs []ButtonGrab
	for _, b := range wm.buttons {
		if b.click == clickClient {
			grabs = append(grabs, ButtonGrab{Mods: b.mods, Button: b.button})
		}
	}
	wm.dpy.GrabButtons(c.win, focused, grabs)
}
