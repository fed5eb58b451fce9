package wm

import (
	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/tagwm/internal/geom"
)

// motionInterval is the minimum time between two applied drag motions, in
// milliseconds.
const motionInterval = 1000 / 60

// dragState is an interactive move or resize in progress.
type dragState struct {
	c      *Client
	resize bool
	// orig is the client rectangle when the drag started.
	orig geom.Rect
	// px, py is the pointer position when a move started.
	px, py int
	// left and top select the corner a resize follows.
	left, top bool
	last      xp.Timestamp
}

// Dragging reports whether a pointer drag is in progress.
func (wm *Manager) Dragging() bool { return wm.drag != nil }

func (wm *Manager) startDrag(resize bool) {
	c := wm.selmon.sel
	if c == nil || c.reallyFullscreen() {
		return
	}
	wm.restack(wm.selmon)
	cursor := CursorMove
	if resize {
		cursor = CursorResize
	}
	x, y, ok := wm.dpy.QueryPointer()
	if !ok {
		return
	}
	if !wm.dpy.GrabPointer(cursor) {
		return
	}
	d := &dragState{c: c, resize: resize, orig: c.r, px: x, py: y}
	if resize {
		d.left = x-c.r.X < c.r.W/2
		d.top = y-c.r.Y < c.r.H/2
		cx, cy := wm.dragCorner(d)
		wm.dpy.WarpPointer(c.win, cx, cy)
	}
	wm.drag = d
}

// dragCorner returns the corner a resize follows, relative to the client.
func (wm *Manager) dragCorner(d *dragState) (int, int) {
	c := d.c
	x, y := c.r.W+c.bw-1, c.r.H+c.bw-1
	if d.left {
		x = -c.bw
	}
	if d.top {
		y = -c.bw
	}
	return x, y
}

// handleDragging runs while the pointer is grabbed. Geometry and mapping
// requests still need answers; everything else waits until the drag ends.
func (wm *Manager) handleDragging(ev xgb.Event) {
	switch e := ev.(type) {
	case xp.ConfigureRequestEvent:
		wm.configureRequest(e)
	case xp.ExposeEvent:
		wm.expose(e)
	case xp.MapRequestEvent:
		wm.mapRequest(e)
	case xp.MotionNotifyEvent:
		if e.Time-wm.drag.last <= motionInterval {
			return
		}
		wm.drag.last = e.Time
		wm.dragMotion(int(e.RootX), int(e.RootY))
	case xp.ButtonReleaseEvent:
		wm.endDrag()
	default:
		wm.deferred = append(wm.deferred, ev)
	}
}

func (wm *Manager) dragMotion(x, y int) {
	d := wm.drag
	c := d.c
	if c == nil {
		return
	}
	m := wm.selmon
	snap := wm.cfg.Snap
	tiledLayout := !wm.layoutOf(m).Floating()
	if !d.resize {
		r := geom.Rect{X: d.orig.X + x - d.px, Y: d.orig.Y + y - d.py, W: c.width(), H: c.height()}
		r = geom.Snap(r, m.win, snap)
		if !c.floating && tiledLayout && (abs(r.X-c.r.X) > snap || abs(r.Y-c.r.Y) > snap) {
			wm.flipFloating(c)
			wm.arrange(m)
		}
		if !tiledLayout || c.floating {
			wm.resize(c, geom.Rect{X: r.X, Y: r.Y, W: c.r.W, H: c.r.H}, true)
		}
		return
	}
	var r geom.Rect
	if d.left {
		r.X = x
		r.W = d.orig.X + d.orig.W - x
	} else {
		r.X = c.r.X
		r.W = x - d.orig.X - 2*c.bw + 1
	}
	if d.top {
		r.Y = y
		r.H = d.orig.Y + d.orig.H - y
	} else {
		r.Y = c.r.Y
		r.H = y - d.orig.Y - 2*c.bw + 1
	}
	r.W, r.H = max(r.W, 1), max(r.H, 1)
	if m.win.Contains(r.X+r.W, r.Y+r.H) && m.win.Contains(r.X, r.Y) {
		if !c.floating && tiledLayout && (abs(r.W-c.r.W) > snap || abs(r.H-c.r.H) > snap) {
			wm.flipFloating(c)
			wm.arrange(m)
		}
	}
	if !tiledLayout || c.floating {
		wm.resize(c, r, true)
	}
}

// endDrag releases the pointer, moves the client to the monitor it was
// dropped on and replays the events that arrived meanwhile.
func (wm *Manager) endDrag() {
	d := wm.drag
	wm.drag = nil
	if c := d.c; c != nil && d.resize {
		cx, cy := wm.dragCorner(d)
		wm.dpy.WarpPointer(c.win, cx, cy)
	}
	wm.dpy.UngrabPointer()
	if c := d.c; c != nil {
		if m := wm.rectToMonitor(c.r); m != wm.selmon {
			wm.sendMon(c, m)
			wm.selmon = m
			wm.focus(nil)
		}
	}
	wm.setEnterBarrier()

	pending := wm.deferred
	wm.deferred = nil
	for i, ev := range pending {
		if wm.drag != nil {
			// A replayed binding started another drag.
			wm.deferred = append(wm.deferred, pending[i:]...)
			return
		}
		if _, ok := ev.(xp.EnterNotifyEvent); ok {
			continue
		}
		wm.Handle(ev)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
