package wm

import (
	"github.com/nigeltao/tagwm/internal/geom"
	"github.com/nigeltao/tagwm/internal/layout"
)

func (wm *Manager) countVisible(m *Monitor) int {
	n := 0
	for _, c := range wm.clientsOf(m) {
		if c.visible() {
			n++
		}
	}
	return n
}

// arrange shows, hides and lays out the clients of m, or of every monitor
// when m is nil.
func (wm *Manager) arrange(m *Monitor) {
	if wm.stopping {
		return
	}
	if m != nil {
		wm.showHide(m)
		wm.arrangeMon(m)
		wm.restack(m)
		return
	}
	for _, m := range wm.mons {
		wm.showHide(m)
	}
	for _, m := range wm.mons {
		wm.arrangeMon(m)
	}
}

// showHide moves visible clients into place from the top of the stack down,
// then moves hidden clients off screen from the bottom up, so that nothing
// underneath flashes.
func (wm *Manager) showHide(m *Monitor) {
	floatingLayout := wm.layoutOf(m).Floating()
	for _, h := range m.stack {
		c := wm.reg.get(h)
		if !c.visible() {
			continue
		}
		wm.dpy.MoveWindow(c.win, c.r.X, c.r.Y)
		if (floatingLayout || c.floating) && !c.reallyFullscreen() {
			wm.resize(c, c.r, false)
		}
	}
	for i := len(m.stack) - 1; i >= 0; i-- {
		c := wm.reg.get(m.stack[i])
		if c.visible() {
			continue
		}
		wm.dpy.MoveWindow(c.win, -2*c.width(), c.r.Y)
	}
}

func (wm *Manager) arrangeMon(m *Monitor) {
	l := wm.layoutOf(m)
	m.ltsymbol = l.Symbol(wm.countVisible(m))
	if l.Floating() {
		return
	}
	var slots []layout.Slot
	for _, c := range wm.tiled(m) {
		if c.reallyFullscreen() {
			continue
		}
		slots = append(slots, slot{wm, c})
	}
	l.Arrange(m.win, slots, layout.Params{NMaster: m.nmaster, MFact: m.mfact})
}

// resize applies size hints to r and moves the client there if anything
// changed.
func (wm *Manager) resize(c *Client, r geom.Rect, interactive bool) {
	honor := wm.cfg.ResizeHints || c.floating || wm.layoutOf(c.mon).Floating()
	if honor && !c.hintsValid {
		wm.updateSizeHints(c)
	}
	nr, changed := geom.Resolve(r, c.r, c.bw, c.hints, geom.Bounds{
		Screen:      wm.screen,
		Area:        c.mon.win,
		Interactive: interactive,
		MinSide:     wm.bh,
		Honor:       honor,
	})
	if changed {
		wm.resizeClient(c, nr)
	}
}

// resizeClient moves the client to r unconditionally and tells it so.
func (wm *Manager) resizeClient(c *Client, r geom.Rect) {
	c.old = c.r
	c.r = r
	wm.dpy.ConfigureWindow(c.win, r, c.bw)
	wm.dpy.SendConfigureNotify(c.win, r, c.bw)
}

func (wm *Manager) updateSizeHints(c *Client) {
	c.hints = geom.HintsFromNormal(wm.dpy.NormalHints(c.win))
	c.fixed = c.hints.Fixed()
	c.hintsValid = true
}

// restack raises the selected client if it floats and puts the tiled
// clients below the bar in focus order.
func (wm *Manager) restack(m *Monitor) {
	wm.drawBar(m)
	sel := m.sel
	if sel == nil {
		return
	}
	floatingLayout := wm.layoutOf(m).Floating()
	if sel.floating || floatingLayout {
		wm.dpy.Raise(sel.win)
	}
	if !floatingLayout {
		sibling := m.barwin
		for _, h := range m.stack {
			c := wm.reg.get(h)
			if c.floating || !c.visible() {
				continue
			}
			wm.dpy.StackBelow(c.win, sibling)
			sibling = c.win
		}
	}
	wm.setEnterBarrier()
}

// setEnterBarrier makes the dispatcher ignore the crossing events that the
// requests sent so far will cause.
func (wm *Manager) setEnterBarrier() {
	wm.enterBarrier = wm.dpy.Sync()
	wm.barrierSet = true
}

// beforeBarrier reports whether an event with sequence seq was generated
// before the last barrier.
func (wm *Manager) beforeBarrier(seq uint16) bool {
	return wm.barrierSet && int16(seq-wm.enterBarrier) < 0
}
