package geom

import (
	"github.com/BurntSushi/xgbutil/icccm"
)

// SizeHints are the resolved WM_NORMAL_HINTS constraints of a window. A zero
// field means the constraint is absent.
type SizeHints struct {
	BaseW, BaseH int
	IncW, IncH   int
	MaxW, MaxH   int
	MinW, MinH   int
	MinA, MaxA   float64
}

// HintsFromNormal derives SizeHints from a window's WM_NORMAL_HINTS. A nil
// argument yields no constraints. When only one of base size and minimum
// size is given, it stands in for the other.
func HintsFromNormal(nh *icccm.NormalHints) SizeHints {
	var h SizeHints
	if nh == nil {
		return h
	}
	switch {
	case nh.Flags&icccm.SizeHintPBaseSize != 0:
		h.BaseW, h.BaseH = int(nh.BaseWidth), int(nh.BaseHeight)
	case nh.Flags&icccm.SizeHintPMinSize != 0:
		h.BaseW, h.BaseH = int(nh.MinWidth), int(nh.MinHeight)
	}
	if nh.Flags&icccm.SizeHintPResizeInc != 0 {
		h.IncW, h.IncH = int(nh.WidthInc), int(nh.HeightInc)
	}
	if nh.Flags&icccm.SizeHintPMaxSize != 0 {
		h.MaxW, h.MaxH = int(nh.MaxWidth), int(nh.MaxHeight)
	}
	switch {
	case nh.Flags&icccm.SizeHintPMinSize != 0:
		h.MinW, h.MinH = int(nh.MinWidth), int(nh.MinHeight)
	case nh.Flags&icccm.SizeHintPBaseSize != 0:
		h.MinW, h.MinH = int(nh.BaseWidth), int(nh.BaseHeight)
	}
	if nh.Flags&icccm.SizeHintPAspect != 0 && nh.MinAspectNum != 0 && nh.MaxAspectDen != 0 {
		h.MinA = float64(nh.MinAspectDen) / float64(nh.MinAspectNum)
		h.MaxA = float64(nh.MaxAspectNum) / float64(nh.MaxAspectDen)
	}
	return h
}

// Fixed reports whether the hints pin the window to a single size.
func (h SizeHints) Fixed() bool {
	return h.MaxW != 0 && h.MaxH != 0 && h.MaxW == h.MinW && h.MaxH == h.MinH
}

// Bounds is the environment a requested rectangle is resolved against.
type Bounds struct {
	// Screen is the whole root window; Area is the owning monitor's window
	// area. Interactive requests are kept on Screen, others on Area.
	Screen, Area Rect
	Interactive  bool
	// MinSide is the smallest width or height allowed, normally the bar
	// height.
	MinSide int
	// Honor applies the size hints. Callers set it when hints are enforced
	// globally, or the window is floating, or no tiling layout is active.
	Honor bool
}

// Resolve returns the nearest legal rectangle to req for a window currently
// at cur with border width bw, and whether that differs from cur. Resolving
// the result again yields the same rectangle and false.
func Resolve(req, cur Rect, bw int, h SizeHints, b Bounds) (Rect, bool) {
	r := req
	r.W = max(1, r.W)
	r.H = max(1, r.H)
	curW, curH := cur.W+2*bw, cur.H+2*bw
	if b.Interactive {
		if r.X > b.Screen.Right() {
			r.X = b.Screen.Right() - curW
		}
		if r.Y > b.Screen.Bottom() {
			r.Y = b.Screen.Bottom() - curH
		}
		if r.X+r.W+2*bw < b.Screen.X {
			r.X = b.Screen.X
		}
		if r.Y+r.H+2*bw < b.Screen.Y {
			r.Y = b.Screen.Y
		}
	} else {
		if r.X >= b.Area.Right() {
			r.X = b.Area.Right() - curW
		}
		if r.Y >= b.Area.Bottom() {
			r.Y = b.Area.Bottom() - curH
		}
		if r.X+r.W+2*bw <= b.Area.X {
			r.X = b.Area.X
		}
		if r.Y+r.H+2*bw <= b.Area.Y {
			r.Y = b.Area.Y
		}
	}
	r.W = max(r.W, b.MinSide)
	r.H = max(r.H, b.MinSide)
	if b.Honor {
		r.W, r.H = h.apply(r.W, r.H)
	}
	return r, r != cur
}

func (h SizeHints) apply(w, hh int) (int, int) {
	baseIsMin := h.BaseW == h.MinW && h.BaseH == h.MinH
	if !baseIsMin {
		// ICCCM 4.1.2.3: base size is not part of the aspect ratio.
		w -= h.BaseW
		hh -= h.BaseH
	}
	if h.MinA > 0 && h.MaxA > 0 && w > 0 && hh > 0 {
		if h.MaxA < float64(w)/float64(hh) {
			w = int(float64(hh)*h.MaxA + 0.5)
		} else if h.MinA < float64(hh)/float64(w) {
			hh = int(float64(w)*h.MinA + 0.5)
		}
	}
	if baseIsMin {
		w -= h.BaseW
		hh -= h.BaseH
	}
	if h.IncW > 0 {
		w -= w % h.IncW
	}
	if h.IncH > 0 {
		hh -= hh % h.IncH
	}
	w = max(w+h.BaseW, h.MinW)
	hh = max(hh+h.BaseH, h.MinH)
	if h.MaxW > 0 {
		w = min(w, h.MaxW)
	}
	if h.MaxH > 0 {
		hh = min(hh, h.MaxH)
	}
	return max(1, w), max(1, hh)
}
