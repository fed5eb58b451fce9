// Package layout holds the arrangement strategies a monitor can use for its
// tiled clients.
package layout

import (
	"fmt"
	"sort"

	"github.com/nigeltao/tagwm/internal/geom"
)

// Slot is one tileable client as seen by a layout.
type Slot interface {
	Border() int
	// Place moves the client to r (excluding its border) and returns the
	// rectangle it actually took once its size hints were applied.
	Place(r geom.Rect) geom.Rect
}

// Params are the per-tag tiling parameters of a monitor.
type Params struct {
	NMaster int
	MFact   float64
}

// Layout is an arrangement strategy. Arrange is only called with the
// visible, non-floating clients of a monitor, in arrangement order.
type Layout interface {
	Name() string
	// Symbol is shown in the bar. visible is the number of clients visible
	// on the monitor.
	Symbol(visible int) string
	// Floating reports whether this layout leaves every client where the
	// user put it. Such a layout is never asked to Arrange.
	Floating() bool
	Arrange(area geom.Rect, slots []Slot, p Params)
}

var registry = map[string]Layout{}

func register(l Layout) {
	registry[l.Name()] = l
}

func init() {
	register(Tile{})
	register(Monocle{})
	register(Float{})
}

// Lookup returns the layout registered under name.
func Lookup(name string) (Layout, error) {
	if l, ok := registry[name]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("unknown layout %q", name)
}

// Names returns the registered layout names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
