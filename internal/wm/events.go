package wm

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/nigeltao/tagwm/internal/geom"
)

// Handle dispatches one X event. While a pointer drag is in progress only
// the events the drag needs are handled; the rest are replayed once it
// ends.
func (wm *Manager) Handle(ev xgb.Event) {
	if wm.drag != nil {
		wm.handleDragging(ev)
		return
	}
	switch e := ev.(type) {
	case xp.ButtonPressEvent:
		wm.buttonPress(e)
	case xp.ClientMessageEvent:
		wm.clientMessage(e)
	case xp.ConfigureNotifyEvent:
		if e.Window == wm.dpy.Root() {
			wm.screenChanged(int(e.Width), int(e.Height))
		}
	case randr.ScreenChangeNotifyEvent:
		wm.screenChanged(int(e.Width), int(e.Height))
	case xp.ConfigureRequestEvent:
		wm.configureRequest(e)
	case xp.DestroyNotifyEvent:
		if c := wm.reg.byWindow(e.Window); c != nil {
			wm.unmanage(c, true)
		}
	case xp.EnterNotifyEvent:
		wm.enterNotify(e)
	case xp.ExposeEvent:
		wm.expose(e)
	case xp.FocusInEvent:
		// Some clients grab the focus without asking.
		if sel := wm.selmon.sel; sel != nil && e.Event != sel.win {
			wm.setFocus(sel)
		}
	case xp.KeyPressEvent:
		wm.keyPress(e)
	case xp.MappingNotifyEvent:
		wm.dpy.RefreshKeyboard()
		if e.Request == xp.MappingKeyboard || e.Request == xp.MappingModifier {
			if err := wm.compileBindings(); err != nil {
				wm.log.Warnf("rebinding after keyboard change: %v", err)
			}
			wm.grabKeys()
		}
	case xp.MapRequestEvent:
		wm.mapRequest(e)
	case xp.MotionNotifyEvent:
		wm.motionNotify(e)
	case xp.PropertyNotifyEvent:
		wm.propertyNotify(e)
	case xp.UnmapNotifyEvent:
		wm.unmapNotify(e)
	}
}

func (wm *Manager) buttonPress(e xp.ButtonPressEvent) {
	click := clickRoot
	var tagMask uint32
	if m := wm.winToMonitor(e.Event); m != nil && m != wm.selmon {
		wm.unfocus(wm.selmon.sel, true, nil)
		wm.selmon = m
		wm.focus(nil)
	}
	if m := wm.selmon; e.Event == m.barwin && m.barwin != 0 {
		click, tagMask = wm.barClick(m, int(e.EventX))
	} else if c := wm.reg.byWindow(e.Event); c != nil {
		wm.focus(c)
		wm.restack(wm.selmon)
		wm.dpy.ReplayPointer()
		click = clickClient
	}
	state := wm.cleanMask(e.State)
	for _, b := range wm.buttons {
		if b.click == click && b.button == e.Detail && wm.cleanMask(b.mods) == state {
			b.cmd(wm, tagMask)
		}
	}
}

// barClick maps an x offset within the bar of m to a click region.
func (wm *Manager) barClick(m *Monitor, x int) (clickRegion, uint32) {
	for i, end := range m.bar.TagEnds {
		if x < end {
			return clickTag, 1 << uint(i)
		}
	}
	switch {
	case x < m.bar.LayoutEnd:
		return clickLayout, 0
	case m.bar.StatusStart > 0 && x >= m.bar.StatusStart:
		return clickStatus, 0
	}
	return clickTitle, 0
}

func (wm *Manager) clientMessage(e xp.ClientMessageEvent) {
	data := e.Data.Data32
	name := wm.dpy.AtomName(e.Type)
	if name == "_NET_CURRENT_DESKTOP" && len(data) > 0 {
		if i := int(data[0]); i < len(wm.cfg.Tags) {
			wm.view(1 << uint(i))
		}
		return
	}
	c := wm.reg.byWindow(e.Window)
	if c == nil || len(data) < 3 {
		return
	}
	switch name {
	case "_NET_WM_STATE":
		for _, a := range data[1:3] {
			if a != 0 && wm.dpy.AtomName(xp.Atom(a)) == "_NET_WM_STATE_FULLSCREEN" {
				wm.requestFullscreen(c, data[0])
				break
			}
		}
	case "_NET_ACTIVE_WINDOW":
		switch {
		case !wm.cfg.FocusOnActivate:
			if c != wm.selmon.sel && !c.urgent {
				wm.setUrgent(c, true)
				wm.dpy.SetBorderColor(c.win, SchemeUrg)
				wm.drawBars()
			}
		default:
			wm.activate(c)
		}
	}
}

// activate brings c into view and focuses it. A hidden scratchpad client
// is shown the way toggling its scratchpad would; any other client has its
// monitor switched to its first tag.
func (wm *Manager) activate(c *Client) {
	if c.mon != wm.selmon {
		wm.unfocus(wm.selmon.sel, true, nil)
		wm.selmon = c.mon
	}
	if !c.visible() {
		m := c.mon
		if sp := c.tags & wm.tagset.ScratchMask(); sp != 0 {
			m.tagset[m.seltags] |= sp
			wm.arrange(m)
		} else if t := wm.firstTag(c.tags); t != 0 {
			wm.view(1 << uint(t-1))
		}
	}
	wm.focus(c)
	wm.restack(c.mon)
}

func (wm *Manager) configureRequest(e xp.ConfigureRequestEvent) {
	c := wm.reg.byWindow(e.Window)
	if c == nil {
		wm.dpy.ForwardConfigure(e)
		return
	}
	switch {
	case e.ValueMask&xp.ConfigWindowBorderWidth != 0:
		c.bw = int(e.BorderWidth)
	case (c.floating || wm.layoutOf(wm.selmon).Floating()) && !c.reallyFullscreen():
		m := c.mon
		if e.ValueMask&xp.ConfigWindowX != 0 {
			c.old.X = c.r.X
			c.r.X = m.scr.X + int(e.X)
		}
		if e.ValueMask&xp.ConfigWindowY != 0 {
			c.old.Y = c.r.Y
			c.r.Y = m.scr.Y + int(e.Y)
		}
		if e.ValueMask&xp.ConfigWindowWidth != 0 {
			c.old.W = c.r.W
			c.r.W = int(e.Width)
		}
		if e.ValueMask&xp.ConfigWindowHeight != 0 {
			c.old.H = c.r.H
			c.r.H = int(e.Height)
		}
		if c.r.X+c.r.W > m.scr.Right() && c.floating {
			c.r.X = m.scr.X + (m.scr.W/2 - c.width()/2)
		}
		if c.r.Y+c.r.H > m.scr.Bottom() && c.floating {
			c.r.Y = m.scr.Y + (m.scr.H/2 - c.height()/2)
		}
		pos := uint16(xp.ConfigWindowX | xp.ConfigWindowY)
		size := uint16(xp.ConfigWindowWidth | xp.ConfigWindowHeight)
		if e.ValueMask&pos != 0 && e.ValueMask&size == 0 {
			wm.dpy.SendConfigureNotify(c.win, c.r, c.bw)
		}
		if c.visible() {
			wm.dpy.ConfigureWindow(c.win, c.r, c.bw)
		}
	default:
		wm.dpy.SendConfigureNotify(c.win, c.r, c.bw)
	}
}

func (wm *Manager) enterNotify(e xp.EnterNotifyEvent) {
	if wm.beforeBarrier(e.Sequence) {
		return
	}
	root := wm.dpy.Root()
	if (e.Mode != xp.NotifyModeNormal || e.Detail == xp.NotifyDetailInferior) && e.Event != root {
		return
	}
	c := wm.reg.byWindow(e.Event)
	m := wm.winToMonitor(e.Event)
	if c != nil {
		m = c.mon
	}
	if m != wm.selmon {
		wm.unfocus(wm.selmon.sel, true, nil)
		wm.selmon = m
	} else if c == nil || c == wm.selmon.sel || wm.focusLocked() {
		return
	}
	wm.focus(c)
}

func (wm *Manager) expose(e xp.ExposeEvent) {
	if e.Count != 0 {
		return
	}
	for _, m := range wm.mons {
		if m.barwin == e.Window {
			wm.drawBar(m)
		}
	}
}

func (wm *Manager) keyPress(e xp.KeyPressEvent) {
	state := wm.cleanMask(e.State)
	for _, k := range wm.keys {
		if wm.cleanMask(k.mods) != state {
			continue
		}
		for _, code := range k.codes {
			if code == e.Detail {
				k.cmd(wm, 0)
				break
			}
		}
	}
}

func (wm *Manager) mapRequest(e xp.MapRequestEvent) {
	wa, err := wm.dpy.Attributes(e.Window)
	if err != nil || wa.OverrideRedirect {
		return
	}
	if wm.reg.byWindow(e.Window) == nil {
		wm.manage(e.Window, wa)
	}
}

func (wm *Manager) motionNotify(e xp.MotionNotifyEvent) {
	if e.Event != wm.dpy.Root() {
		return
	}
	m := wm.rectToMonitor(geom.Rect{X: int(e.RootX), Y: int(e.RootY), W: 1, H: 1})
	if m != wm.motionMon && wm.motionMon != nil {
		wm.unfocus(wm.selmon.sel, true, nil)
		wm.selmon = m
		wm.focus(nil)
	}
	wm.motionMon = m
}

func (wm *Manager) propertyNotify(e xp.PropertyNotifyEvent) {
	if e.Window == wm.dpy.Root() {
		if e.Atom == xp.AtomWmName {
			wm.updateStatus()
		}
		return
	}
	if e.State == xp.PropertyDelete {
		return
	}
	c := wm.reg.byWindow(e.Window)
	if c == nil {
		return
	}
	switch e.Atom {
	case xp.AtomWmTransientFor:
		if trans, ok := wm.dpy.TransientFor(c.win); ok && !c.floating && wm.reg.byWindow(trans) != nil {
			c.floating = true
			wm.arrange(c.mon)
		}
	case xp.AtomWmNormalHints:
		c.hintsValid = false
	case xp.AtomWmHints:
		wm.updateWMHints(c)
		wm.drawBars()
	}
	name := wm.dpy.AtomName(e.Atom)
	if e.Atom == xp.AtomWmName || name == "_NET_WM_NAME" {
		wm.updateTitle(c)
		if c == c.mon.sel {
			wm.drawBar(c.mon)
		}
	}
	if name == "_NET_WM_WINDOW_TYPE" {
		wm.updateWindowType(c)
	}
}

// unmapNotify forgets a client that withdrew itself. Client windows report
// their own unmaps; a notification addressed to the root window is the
// synthetic withdrawal request, which is only acknowledged.
func (wm *Manager) unmapNotify(e xp.UnmapNotifyEvent) {
	c := wm.reg.byWindow(e.Window)
	if c == nil {
		return
	}
	if e.Event != e.Window {
		wm.dpy.SetWMState(c.win, icccm.StateWithdrawn)
		return
	}
	wm.unmanage(c, false)
}
