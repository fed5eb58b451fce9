package wm

import (
	"math/bits"
)

// tagMask returns the bits of the ordinary tags.
func (wm *Manager) tagMask() uint32 { return wm.tagset.Mask() }

// firstTag returns the 1-based index of the lowest ordinary tag in mask, or
// 0 if there is none.
func (wm *Manager) firstTag(mask uint32) int {
	mask &= wm.tagMask()
	if mask == 0 {
		return 0
	}
	return bits.TrailingZeros32(mask) + 1
}

// defaultTags returns the tags for a client placed on m without a rule:
// the ordinary tags in view, else those of the previous view, else tag 1.
// Scratchpad bits are never handed out this way.
func (wm *Manager) defaultTags(m *Monitor) uint32 {
	if t := m.tagset[m.seltags] & wm.tagMask(); t != 0 {
		return t
	}
	if t := m.tagset[m.seltags^1] & wm.tagMask(); t != 0 {
		return t
	}
	return 1
}

// applyPertag loads the settings remembered for the current tag.
func (wm *Manager) applyPertag(m *Monitor) {
	t := m.pt.curtag
	m.nmaster = m.pt.nmasters[t]
	m.mfact = m.pt.mfacts[t]
	m.sellt = m.pt.sellts[t]
	m.lt = m.pt.ltidxs[t]
	if m.showbar != m.pt.showbars[t] {
		wm.toggleBar(m)
	}
}

// view shows the tags in mask on the selected monitor. A zero mask
// switches back to the previously viewed tag set.
func (wm *Manager) view(mask uint32) {
	m := wm.selmon
	mask &= wm.tagMask()
	if mask == m.tagset[m.seltags] {
		if !wm.cfg.ViewSameTagTogglesPrevious {
			return
		}
		mask = 0
	}
	m.seltags ^= 1
	if mask != 0 {
		m.tagset[m.seltags] = mask
		m.pt.prevtag = m.pt.curtag
		if mask == wm.tagMask() {
			m.pt.curtag = 0
		} else {
			m.pt.curtag = wm.firstTag(mask)
		}
	} else {
		m.pt.curtag, m.pt.prevtag = m.pt.prevtag, m.pt.curtag
	}
	wm.applyPertag(m)
	wm.focus(nil)
	wm.arrange(m)
	wm.updateDesktops()
}

// toggleView adds or removes the tags in mask from the selected monitor's
// view. The view never becomes empty.
func (wm *Manager) toggleView(mask uint32) {
	m := wm.selmon
	newset := m.tagset[m.seltags] ^ (mask & (wm.tagMask() | wm.tagset.ScratchMask()))
	if newset == 0 {
		return
	}
	m.tagset[m.seltags] = newset
	ordinary := newset & wm.tagMask()
	cur := m.pt.curtag
	switch {
	case ordinary == 0:
	case ordinary == wm.tagMask():
		m.pt.prevtag, m.pt.curtag = cur, 0
	case cur == 0 || ordinary&(1<<uint(cur-1)) == 0:
		m.pt.prevtag, m.pt.curtag = cur, wm.firstTag(ordinary)
	}
	wm.applyPertag(m)
	wm.focus(nil)
	wm.arrange(m)
	wm.updateDesktops()
}

// tag moves the selected or marked clients to the tags in mask.
func (wm *Manager) tag(mask uint32) {
	mask &= wm.tagMask()
	if mask == 0 {
		return
	}
	cs := wm.targets()
	for _, c := range cs {
		c.tags = mask
	}
	wm.focus(nil)
	wm.arrangeAll(cs)
}

// toggleTag adds or removes the tags in mask from the selected or marked
// clients. A client always keeps at least one tag.
func (wm *Manager) toggleTag(mask uint32) {
	cs := wm.targets()
	for _, c := range cs {
		if newtags := c.tags ^ (mask & wm.tagMask()); newtags != 0 {
			c.tags = newtags
		}
	}
	wm.focus(nil)
	wm.arrangeAll(cs)
}

// toggleScratch shows or hides the named scratchpad on the selected
// monitor, starting its command if no client holds it yet.
func (wm *Manager) toggleScratch(name string) {
	bit := wm.tagset.ScratchBit(name)
	if bit == 0 {
		return
	}
	m := wm.selmon
	var found *Client
	for _, mon := range wm.mons {
		for _, c := range wm.clientsOf(mon) {
			if c.tags&bit != 0 {
				found = c
				break
			}
		}
		if found != nil {
			break
		}
	}
	if found == nil {
		m.tagset[m.seltags] |= bit
		for _, sp := range wm.cfg.Scratchpads {
			if sp.Name == name {
				wm.spawn(sp.Command)
			}
		}
		return
	}
	if found.mon != m {
		// Bring it over instead of hiding it elsewhere.
		old := found.mon
		wm.detach(found)
		wm.detachStack(found)
		found.mon = m
		wm.attach(found)
		wm.attachStack(found)
		m.tagset[m.seltags] |= bit
		wm.arrange(old)
	} else if newset := m.tagset[m.seltags] ^ bit; newset != 0 {
		m.tagset[m.seltags] = newset
	}
	wm.focus(nil)
	wm.arrange(m)
	if found.visible() {
		wm.focus(found)
		wm.restack(m)
	}
}

// toggleBar shows or hides the bar of m and remembers the choice for the
// current tag.
func (wm *Manager) toggleBar(m *Monitor) {
	m.showbar = !m.showbar
	m.pt.showbars[m.pt.curtag] = m.showbar
	wm.updateBarPos(m)
	if m.barwin != 0 {
		wm.rnd.MoveBar(m.barwin, wm.barRect(m))
	}
}

// setLayout selects layout index i for the current tag. A negative i
// switches to the previously used layout.
func (wm *Manager) setLayout(i int) {
	m := wm.selmon
	if i < 0 || i != m.lt[m.sellt] {
		m.sellt ^= 1
		m.pt.sellts[m.pt.curtag] = m.sellt
	}
	if i >= 0 {
		m.lt[m.sellt] = i
		m.pt.ltidxs[m.pt.curtag][m.sellt] = i
	}
	m.ltsymbol = wm.layoutOf(m).Symbol(wm.countVisible(m))
	if m.sel != nil {
		wm.arrange(m)
	} else {
		wm.drawBar(m)
	}
}

// SetMFact sets the master area ratio of the current tag. Ratios outside
// [0.05, 0.95] are rejected.
func (wm *Manager) SetMFact(f float64) bool {
	m := wm.selmon
	if wm.layoutOf(m).Floating() || f < 0.05 || f > 0.95 {
		return false
	}
	m.mfact = f
	m.pt.mfacts[m.pt.curtag] = f
	wm.arrange(m)
	return true
}

// incNMaster changes the number of master clients of the current tag.
func (wm *Manager) incNMaster(delta int) {
	m := wm.selmon
	m.nmaster = max(m.nmaster+delta, 0)
	m.pt.nmasters[m.pt.curtag] = m.nmaster
	wm.arrange(m)
}
