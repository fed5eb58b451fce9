package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/tagwm/internal/geom"
	"github.com/nigeltao/tagwm/internal/layout"
)

// pertag remembers layout settings per tag. Index 0 is the "all tags"
// view, index i is tag i.
type pertag struct {
	curtag, prevtag int
	nmasters        []int
	mfacts          []float64
	sellts          []int
	ltidxs          [][2]int
	showbars        []bool
}

// Monitor is one physical output and its tag view.
type Monitor struct {
	num      int
	ltsymbol string
	mfact    float64
	nmaster  int

	// scr is the output, win the part left to clients after the bar.
	scr, win geom.Rect
	by       int

	seltags int
	sellt   int
	tagset  [2]uint32
	showbar bool
	topbar  bool

	clients []Handle
	stack   []Handle
	sel     *Client

	lt     [2]int
	barwin xp.Window
	bar    BarLayout

	pt pertag
}

func (m *Monitor) Num() int              { return m.num }
func (m *Monitor) Rect() geom.Rect       { return m.scr }
func (m *Monitor) WindowArea() geom.Rect { return m.win }
func (m *Monitor) MFact() float64        { return m.mfact }
func (m *Monitor) NMaster() int          { return m.nmaster }
func (m *Monitor) Tagset() uint32        { return m.tagset[m.seltags] }
func (m *Monitor) Selected() *Client     { return m.sel }
func (m *Monitor) Symbol() string        { return m.ltsymbol }
func (m *Monitor) ShowBar() bool         { return m.showbar }

func (wm *Manager) layoutOf(m *Monitor) layout.Layout {
	return wm.layouts[m.lt[m.sellt]]
}

func (wm *Manager) createMonitor() *Monitor {
	n := len(wm.tagset.Names) + 1
	m := &Monitor{
		mfact:   wm.cfg.MFact,
		nmaster: wm.cfg.NMaster,
		showbar: wm.cfg.ShowBar,
		topbar:  wm.cfg.TopBar,
		tagset:  [2]uint32{1, 1},
		lt:      [2]int{0, 1 % len(wm.layouts)},
	}
	m.ltsymbol = wm.layouts[0].Symbol(0)
	m.pt = pertag{
		curtag:   1,
		prevtag:  1,
		nmasters: make([]int, n),
		mfacts:   make([]float64, n),
		sellts:   make([]int, n),
		ltidxs:   make([][2]int, n),
		showbars: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		m.pt.nmasters[i] = m.nmaster
		m.pt.mfacts[i] = m.mfact
		m.pt.ltidxs[i] = m.lt
		m.pt.showbars[i] = m.showbar
	}
	return m
}

// updateBarPos splits the monitor area between bar and clients.
func (wm *Manager) updateBarPos(m *Monitor) {
	m.win = m.scr
	if m.showbar {
		m.win.H -= wm.bh
		if m.topbar {
			m.by = m.win.Y
			m.win.Y += wm.bh
		} else {
			m.by = m.win.Y + m.win.H
		}
	} else {
		m.by = -wm.bh
	}
}

func (wm *Manager) barRect(m *Monitor) geom.Rect {
	return geom.Rect{X: m.win.X, Y: m.by, W: m.win.W, H: wm.bh}
}

func (wm *Manager) monitorIndex(m *Monitor) int {
	for i, x := range wm.mons {
		if x == m {
			return i
		}
	}
	return -1
}

// dirToMonitor returns the monitor after (dir > 0) or before the selected
// one, wrapping around.
func (wm *Manager) dirToMonitor(dir int) *Monitor {
	n := len(wm.mons)
	i := wm.monitorIndex(wm.selmon)
	if dir > 0 {
		return wm.mons[(i+1)%n]
	}
	return wm.mons[(i+n-1)%n]
}

// rectToMonitor returns the monitor whose window area overlaps r the most,
// or the selected monitor when none does.
func (wm *Manager) rectToMonitor(r geom.Rect) *Monitor {
	best, area := wm.selmon, 0
	for _, m := range wm.mons {
		if a := r.IntersectArea(m.win); a > area {
			best, area = m, a
		}
	}
	return best
}

// winToMonitor maps a window, bar or root to a monitor.
func (wm *Manager) winToMonitor(win xp.Window) *Monitor {
	if win == wm.dpy.Root() {
		if x, y, ok := wm.dpy.QueryPointer(); ok {
			return wm.rectToMonitor(geom.Rect{X: x, Y: y, W: 1, H: 1})
		}
	}
	for _, m := range wm.mons {
		if win != 0 && win == m.barwin {
			return m
		}
	}
	if c := wm.reg.byWindow(win); c != nil {
		return c.mon
	}
	return wm.selmon
}
