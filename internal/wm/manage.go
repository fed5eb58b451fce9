package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/nigeltao/tagwm/internal/config"
	"github.com/nigeltao/tagwm/internal/rules"
)

// manage takes over a new top-level window.
func (wm *Manager) manage(win xp.Window, wa WindowAttributes) *Client {
	c := &Client{
		win:   win,
		r:     wa.Rect,
		old:   wa.Rect,
		oldBW: wa.BorderWidth,
	}
	wm.reg.add(c)
	wm.updateTitle(c)

	trans, isTransient := wm.dpy.TransientFor(win)
	if t := wm.reg.byWindow(trans); isTransient && t != nil {
		c.mon = t.mon
		c.tags = t.tags
	} else {
		c.mon = wm.selmon
		wm.applyRules(c)
	}

	m := c.mon
	if c.r.X+c.width() > m.win.Right() {
		c.r.X = m.win.Right() - c.width()
	}
	if c.r.Y+c.height() > m.win.Bottom() {
		c.r.Y = m.win.Bottom() - c.height()
	}
	c.r.X = max(c.r.X, m.win.X)
	c.r.Y = max(c.r.Y, m.win.Y)
	c.bw = wm.cfg.BorderPx

	wm.dpy.SetBorderWidth(win, c.bw)
	wm.dpy.SetBorderColor(win, SchemeNorm)
	wm.dpy.SendConfigureNotify(win, c.r, c.bw)
	wm.updateWindowType(c)
	wm.updateSizeHints(c)
	wm.updateWMHints(c)
	wm.dpy.SelectClientInput(win)
	wm.grabButtons(c, false)
	if !c.floating {
		c.floating = isTransient || c.fixed
	}
	if c.floating {
		wm.dpy.Raise(win)
	}
	wm.attach(c)
	wm.attachStack(c)
	wm.updateClientList()
	// Some clients only map correctly after being moved once.
	wm.dpy.ConfigureWindow(win, c.r.Move(c.r.X+2*wm.screen.W, c.r.Y), c.bw)
	wm.dpy.SetWMState(win, icccm.StateNormal)
	if c.mon == wm.selmon {
		wm.unfocus(wm.selmon.sel, false, nil)
	}
	c.mon.sel = c
	wm.arrange(c.mon)
	wm.dpy.MapWindow(win)
	wm.focus(nil)
	wm.log.Debugf("managing 0x%x %q on monitor %d, tags %#x", win, c.name, c.mon.num, c.tags)
	return c
}

// applyRules assigns tags, monitor and flags from the rule table.
func (wm *Manager) applyRules(c *Client) {
	p := wm.dpy.Props(c.win)
	if p.Title == "" {
		p.Title = c.name
	}
	res := rules.Apply(wm.rules, p, wm.cfg.RuleMatch == config.RuleMatchFirst)
	c.floating = res.Floating
	c.sticky = res.Sticky
	if res.FakeFullscreen {
		c.fake = FakeOn
	}
	if res.Monitor >= 0 && res.Monitor < len(wm.mons) {
		c.mon = wm.mons[res.Monitor]
	}
	valid := wm.tagMask() | wm.tagset.ScratchMask()
	if res.Tags&valid != 0 {
		c.tags = res.Tags & valid
	} else {
		c.tags = wm.defaultTags(c.mon)
	}
	if c.tags&wm.tagset.ScratchMask() != 0 {
		c.floating = true
		res.Center = true
	}
	if res.Center {
		c.r = c.r.Outer(wm.cfg.BorderPx).Center(c.mon.win)
		c.r.W -= 2 * wm.cfg.BorderPx
		c.r.H -= 2 * wm.cfg.BorderPx
	}
}

func (wm *Manager) updateTitle(c *Client) {
	c.name = wm.dpy.Title(c.win)
	if c.name == "" {
		c.name = "broken"
	}
}

func (wm *Manager) updateWindowType(c *Client) {
	for _, s := range wm.dpy.NetWMState(c.win) {
		if s == "_NET_WM_STATE_FULLSCREEN" {
			wm.setFullscreen(c, true)
		}
	}
	for _, t := range wm.dpy.WindowTypes(c.win) {
		if t == "_NET_WM_WINDOW_TYPE_DIALOG" {
			c.floating = true
		}
	}
}

// unmanage forgets c. If the window still exists it is handed back in the
// state it arrived in.
func (wm *Manager) unmanage(c *Client, destroyed bool) {
	m := c.mon
	wm.detach(c)
	wm.detachStack(c)
	if !destroyed {
		wm.dpy.SetBorderWidth(c.win, c.oldBW)
		wm.dpy.UngrabButtons(c.win)
		wm.dpy.SetWMState(c.win, icccm.StateWithdrawn)
	}
	if wm.drag != nil && wm.drag.c == c {
		wm.drag.c = nil
	}
	wm.reg.remove(c.handle)
	wm.log.Debugf("unmanaged 0x%x", c.win)
	wm.focus(nil)
	wm.updateClientList()
	wm.arrange(m)
}

// scan manages the windows that were mapped before we started. Transient
// windows go second so their parents are already known.
func (wm *Manager) scan() error {
	wins, err := wm.dpy.Children()
	if err != nil {
		return err
	}
	manageable := func(win xp.Window) (WindowAttributes, bool) {
		wa, err := wm.dpy.Attributes(win)
		if err != nil || wa.OverrideRedirect {
			return wa, false
		}
		if wa.Viewable {
			return wa, true
		}
		st, ok := wm.dpy.WMState(win)
		return wa, ok && st == icccm.StateIconic
	}
	for _, transients := range []bool{false, true} {
		for _, win := range wins {
			if _, t := wm.dpy.TransientFor(win); t != transients {
				continue
			}
			if wa, ok := manageable(win); ok && wm.reg.byWindow(win) == nil {
				wm.manage(win, wa)
			}
		}
	}
	return nil
}
