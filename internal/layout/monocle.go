package layout

import (
	"strconv"

	"github.com/nigeltao/tagwm/internal/geom"
)

// Monocle gives every tiled client the whole area. The focused one is
// raised above the others by the stacking pass.
type Monocle struct{}

func (Monocle) Name() string   { return "monocle" }
func (Monocle) Floating() bool { return false }

func (Monocle) Symbol(visible int) string {
	if visible > 0 {
		return "[" + strconv.Itoa(visible) + "]"
	}
	return "[M]"
}

func (Monocle) Arrange(area geom.Rect, slots []Slot, _ Params) {
	for _, s := range slots {
		bw := s.Border()
		s.Place(geom.Rect{X: area.X, Y: area.Y, W: area.W - 2*bw, H: area.H - 2*bw})
	}
}

// Float assigns no geometry at all.
type Float struct{}

func (Float) Name() string                      { return "float" }
func (Float) Symbol(int) string                 { return "><>" }
func (Float) Floating() bool                    { return true }
func (Float) Arrange(geom.Rect, []Slot, Params) {}
