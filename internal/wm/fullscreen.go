package wm

// setFullscreen moves c into or out of fullscreen, taking its fake
// fullscreen state into account. A fake fullscreen client is told it is
// fullscreen but keeps its place in the layout.
func (wm *Manager) setFullscreen(c *Client, fs bool) {
	save := (c.fake == FakeOff && fs && !c.fullscreen) || (c.fake == FakeReal && fs)
	restore := (c.fake == FakeOff && !fs && c.fullscreen) || (c.fake >= FakeReal && !fs)

	switch {
	case c.fake == FakeReal && !fs && c.fullscreen:
		// Back from real fullscreen to fake fullscreen.
		c.fake = FakeOn
		fs = true
	case c.fake == FakeExiting:
		c.fake = FakeOn
	}
	if fs != c.fullscreen {
		wm.dpy.SetFullscreenState(c.win, fs)
	}
	c.fullscreen = fs

	switch {
	case save && !c.saveLocked:
		c.saveLocked = true
		c.savedFloating = c.floating
		c.saved = c.r
		c.oldBW = c.bw
		c.bw = 0
		c.floating = true
		wm.resizeClient(c, c.mon.scr)
		wm.dpy.Raise(c.win)
	case restore && c.saveLocked:
		c.saveLocked = false
		c.bw = c.oldBW
		c.floating = c.savedFloating
		wm.resizeClient(c, c.saved)
		wm.arrange(c.mon)
	case c.fake == FakeOn:
		// Repeat the current geometry so the client sees a configure
		// event for its new state.
		wm.resizeClient(c, c.r)
	}
}

// toggleFullscreen flips real fullscreen on the selected client. A fake
// fullscreen client goes to real fullscreen and later returns to fake.
func (wm *Manager) toggleFullscreen() {
	c := wm.selmon.sel
	if c == nil {
		return
	}
	if c.fake == FakeOn {
		c.fake = FakeReal
		wm.setFullscreen(c, true)
		return
	}
	wm.setFullscreen(c, !c.fullscreen)
}

// toggleFakeFullscreen flips fake fullscreen on the selected client.
func (wm *Manager) toggleFakeFullscreen() {
	c := wm.selmon.sel
	if c == nil {
		return
	}
	switch {
	case c.fake != FakeOn && c.fullscreen:
		c.fake = FakeReal
		wm.setFullscreen(c, false)
	case c.fake == FakeOn:
		wm.setFullscreen(c, false)
		c.fake = FakeOff
	default:
		c.fake = FakeOn
		wm.setFullscreen(c, true)
	}
}

// requestFullscreen handles a client's own _NET_WM_STATE request. action is
// 0 to remove, 1 to add and 2 to toggle.
func (wm *Manager) requestFullscreen(c *Client, action uint32) {
	fs := action == 1 || (action == 2 && !c.fullscreen)
	if c.fake == FakeReal && c.fullscreen && !fs {
		c.fake = FakeExiting
	}
	wm.setFullscreen(c, fs)
}
