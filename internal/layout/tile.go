package layout

import "github.com/nigeltao/tagwm/internal/geom"

// Tile is the master/stack layout: the first NMaster clients share a column
// MFact of the area wide, the rest share the remaining column.
type Tile struct{}

func (Tile) Name() string      { return "tile" }
func (Tile) Symbol(int) string { return "[]=" }
func (Tile) Floating() bool    { return false }

func (Tile) Arrange(area geom.Rect, slots []Slot, p Params) {
	n := len(slots)
	if n == 0 {
		return
	}
	mw := area.W
	if n > p.NMaster {
		mw = 0
		if p.NMaster > 0 {
			mw = int(float64(area.W) * p.MFact)
		}
	}
	nmaster := min(n, p.NMaster)
	my, ty := 0, 0
	for i, s := range slots {
		bw := s.Border()
		if i < p.NMaster {
			h := (area.H - my) / (nmaster - i)
			got := s.Place(geom.Rect{X: area.X, Y: area.Y + my, W: mw - 2*bw, H: h - 2*bw})
			if my+got.H+2*bw < area.H {
				my += got.H + 2*bw
			}
		} else {
			h := (area.H - ty) / (n - i)
			got := s.Place(geom.Rect{X: area.X + mw, Y: area.Y + ty, W: area.W - mw - 2*bw, H: h - 2*bw})
			if ty+got.H+2*bw < area.H {
				ty += got.H + 2*bw
			}
		}
	}
}
