package wm

import (
	"github.com/nigeltao/tagwm/internal/geom"
)

// uniqueHeads drops outputs that mirror an earlier one.
func uniqueHeads(heads []geom.Rect) []geom.Rect {
	var out []geom.Rect
outer:
	for _, h := range heads {
		for _, u := range out {
			if u == h {
				continue outer
			}
		}
		out = append(out, h)
	}
	return out
}

// updateGeom matches the monitor list to the current outputs and reports
// whether anything changed. Clients of removed monitors move to the first
// monitor.
func (wm *Manager) updateGeom() bool {
	heads := uniqueHeads(wm.dpy.Heads())
	if len(heads) == 0 {
		heads = []geom.Rect{wm.screen}
	}
	dirty := false
	n := len(wm.mons)
	for i := n; i < len(heads); i++ {
		wm.mons = append(wm.mons, wm.createMonitor())
	}
	for i, h := range heads {
		m := wm.mons[i]
		if i >= n || m.scr != h {
			dirty = true
			m.num = i
			m.scr = h
			wm.updateBarPos(m)
		}
	}
	for len(wm.mons) > len(heads) {
		m := wm.mons[len(wm.mons)-1]
		wm.mons = wm.mons[:len(wm.mons)-1]
		first := wm.mons[0]
		for len(m.clients) > 0 {
			dirty = true
			c := wm.reg.get(m.clients[0])
			wm.detach(c)
			wm.detachStack(c)
			c.mon = first
			wm.attachEnd(c)
			first.stack = append(first.stack, c.handle)
		}
		if wm.selmon == m {
			wm.selmon = first
		}
		if wm.motionMon == m {
			wm.motionMon = nil
		}
		if m.barwin != 0 {
			wm.rnd.DestroyBar(m.barwin)
		}
		wm.log.Infof("monitor %d removed", m.num)
	}
	if dirty {
		wm.selmon = wm.monitorUnderPointer()
	}
	return dirty
}

func (wm *Manager) monitorUnderPointer() *Monitor {
	if x, y, ok := wm.dpy.QueryPointer(); ok {
		for _, m := range wm.mons {
			if m.scr.Contains(x, y) {
				return m
			}
		}
	}
	if wm.selmon != nil && wm.monitorIndex(wm.selmon) >= 0 {
		return wm.selmon
	}
	return wm.mons[0]
}

// screenChanged reacts to a new root window size or output layout.
func (wm *Manager) screenChanged(w, h int) {
	resized := w != wm.screen.W || h != wm.screen.H
	wm.screen.W, wm.screen.H = w, h
	if !wm.updateGeom() && !resized {
		return
	}
	wm.updateBars()
	for _, m := range wm.mons {
		for _, c := range wm.clientsOf(m) {
			if c.reallyFullscreen() {
				wm.resizeClient(c, m.scr)
			}
		}
		wm.rnd.MoveBar(m.barwin, wm.barRect(m))
	}
	wm.focus(nil)
	wm.arrange(nil)
}

// sendMon moves c to m, where it takes the monitor's current tags.
func (wm *Manager) sendMon(c *Client, m *Monitor) {
	if c.mon == m {
		return
	}
	fs := c.reallyFullscreen()
	if fs {
		wm.setFullscreen(c, false)
	}
	wm.unfocus(c, true, nil)
	wm.detach(c)
	wm.detachStack(c)
	c.mon = m
	c.tags = wm.defaultTags(m)
	wm.attach(c)
	wm.attachStack(c)
	if fs {
		wm.setFullscreen(c, true)
	}
	wm.focus(nil)
	wm.arrange(nil)
}

func (wm *Manager) focusMon(dir int) {
	if len(wm.mons) < 2 {
		return
	}
	m := wm.dirToMonitor(dir)
	if m == wm.selmon {
		return
	}
	wm.unfocus(wm.selmon.sel, false, nil)
	wm.selmon = m
	wm.focus(nil)
	wm.updateDesktops()
}

func (wm *Manager) tagMon(dir int) {
	if len(wm.mons) < 2 {
		return
	}
	m := wm.dirToMonitor(dir)
	for _, c := range wm.targets() {
		wm.sendMon(c, m)
	}
}
