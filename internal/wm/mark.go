package wm

// Marks group clients for the next action that works on clients: kill,
// tag, toggletag, tagmon and togglefloating then apply to every marked
// client instead of the selected one, and the marks are used up.

func (wm *Manager) setMark(c *Client, on bool) {
	if c == nil || c.marked == on {
		return
	}
	c.marked = on
	wm.drawBar(c.mon)
}

func (wm *Manager) mark()   { wm.setMark(wm.selmon.sel, true) }
func (wm *Manager) unmark() { wm.setMark(wm.selmon.sel, false) }

func (wm *Manager) toggleMark() {
	if c := wm.selmon.sel; c != nil {
		wm.setMark(c, !c.marked)
	}
}

// markAll marks the visible clients of the selected monitor, only the
// floating ones if floatingOnly is set.
func (wm *Manager) markAll(floatingOnly bool) {
	for _, c := range wm.clientsOf(wm.selmon) {
		if c.visible() && (!floatingOnly || c.floating) {
			c.marked = true
		}
	}
	wm.drawBar(wm.selmon)
}

func (wm *Manager) unmarkAll() {
	for _, m := range wm.mons {
		for _, c := range wm.clientsOf(m) {
			c.marked = false
		}
	}
	wm.drawBars()
}

// targets returns the clients an action applies to: the marked clients in
// monitor and list order, which lose their marks, or else the selected
// client.
func (wm *Manager) targets() []*Client {
	var out []*Client
	for _, m := range wm.mons {
		for _, c := range wm.clientsOf(m) {
			if c.marked {
				c.marked = false
				out = append(out, c)
			}
		}
	}
	if len(out) > 0 {
		wm.drawBars()
		return out
	}
	if c := wm.selmon.sel; c != nil {
		return []*Client{c}
	}
	return nil
}

// arrangeAll rearranges every monitor holding one of cs.
func (wm *Manager) arrangeAll(cs []*Client) {
	seen := map[*Monitor]bool{}
	for _, c := range cs {
		if !seen[c.mon] {
			seen[c.mon] = true
			wm.arrange(c.mon)
		}
	}
}
