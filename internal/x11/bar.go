package x11

import (
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/nigeltao/tagwm/internal/config"
	"github.com/nigeltao/tagwm/internal/geom"
	"github.com/nigeltao/tagwm/internal/wm"
)

// Metrics of X11's default font (fixed), used when the server does not
// answer QueryFont.
const (
	fontWidth   = 6
	fontAscent  = 11
	fontDescent = 2
)

// DefaultFont is the core font the bar draws with.
const DefaultFont = "fixed"

type colorPair struct{ fg, bg uint32 }

// Bar draws the status bars with a core font. It implements wm.Renderer.
// The font is assumed to be fixed width.
type Bar struct {
	c    *Conn
	font xp.Font
	gc   xp.Gcontext

	charWidth, ascent, height int

	norm, sel colorPair
}

var _ wm.Renderer = (*Bar)(nil)

// NewBar opens the font and the graphics context the bars share.
func NewBar(c *Conn, fontName string, cols config.Colors) (*Bar, error) {
	conn := c.xu.Conn()
	b := &Bar{c: c}
	if err := b.SetColors(cols); err != nil {
		return nil, err
	}
	var err error
	if b.font, err = xp.NewFontId(conn); err != nil {
		return nil, err
	}
	if b.gc, err = xp.NewGcontextId(conn); err != nil {
		return nil, err
	}
	if err := xp.OpenFontChecked(conn, b.font, uint16(len(fontName)), fontName).Check(); err != nil {
		return nil, fmt.Errorf("opening font %q: %w", fontName, err)
	}
	if err := xp.CreateGCChecked(conn, b.gc, xp.Drawable(c.root),
		xp.GcForeground|xp.GcBackground|xp.GcFont|xp.GcGraphicsExposures,
		[]uint32{b.norm.fg, b.norm.bg, uint32(b.font), 0}).Check(); err != nil {
		return nil, fmt.Errorf("creating bar graphics context: %w", err)
	}

	b.charWidth, b.ascent, b.height = fontWidth, fontAscent, fontAscent+fontDescent
	if q, err := xp.QueryFont(conn, xp.Fontable(b.font)).Reply(); err != nil {
		c.log.Warnf("querying font %q: %v", fontName, err)
	} else if q.MaxBounds.CharacterWidth > 0 {
		b.charWidth = int(q.MaxBounds.CharacterWidth)
		b.ascent = int(q.FontAscent)
		b.height = int(q.FontAscent) + int(q.FontDescent)
	}
	return b, nil
}

// SetColors parses the bar colors. The next DrawBar uses them.
func (b *Bar) SetColors(cols config.Colors) error {
	var err error
	parse := func(s string) uint32 {
		px, e := config.ParseColor(s)
		if e != nil && err == nil {
			err = e
		}
		return px
	}
	norm := colorPair{parse(cols.NormFg), parse(cols.NormBg)}
	sel := colorPair{parse(cols.SelFg), parse(cols.SelBg)}
	if err != nil {
		return err
	}
	b.norm, b.sel = norm, sel
	return nil
}

// Close frees the font and graphics context.
func (b *Bar) Close() {
	conn := b.c.xu.Conn()
	b.c.check(xp.FreeGCChecked(conn, b.gc))
	b.c.check(xp.CloseFontChecked(conn, b.font))
}

func (b *Bar) BarHeight() int { return b.height + 2 }

// padding is the horizontal space around every text cell.
func (b *Bar) padding() int { return b.height }

func (b *Bar) textWidth(s string) int {
	return len(latin1(s))*b.charWidth + b.padding()
}

func (b *Bar) CreateBar(r geom.Rect) xp.Window {
	w, err := xwindow.Generate(b.c.xu)
	if err != nil {
		b.c.ReportError(err)
		return 0
	}
	if err := w.CreateChecked(b.c.root, r.X, r.Y, r.W, r.H,
		xp.CwBackPixel|xp.CwOverrideRedirect|xp.CwEventMask|xp.CwCursor,
		b.norm.bg, 1, xp.EventMaskButtonPress|xp.EventMaskExposure,
		uint32(b.c.cursors[wm.CursorNormal])); err != nil {
		b.c.ReportError(err)
		return 0
	}
	b.c.check(xp.MapWindowChecked(b.c.xu.Conn(), w.Id))
	b.c.Raise(w.Id)
	return w.Id
}

func (b *Bar) MoveBar(win xp.Window, r geom.Rect) {
	if win == 0 {
		return
	}
	b.c.configure(win, xp.ConfigWindowX|xp.ConfigWindowY|xp.ConfigWindowWidth|xp.ConfigWindowHeight,
		uint32(r.X), uint32(r.Y), uint32(max(r.W, 1)), uint32(max(r.H, 1)))
}

func (b *Bar) DestroyBar(win xp.Window) {
	if win != 0 {
		b.c.check(xp.DestroyWindowChecked(b.c.xu.Conn(), win))
	}
}

// DrawBar paints, from the left, the tag cells, the layout symbol and the
// selected client's title, with the status text flush right.
func (b *Bar) DrawBar(win xp.Window, bc wm.BarContent) wm.BarLayout {
	var out wm.BarLayout
	if win == 0 {
		return out
	}
	bh := b.BarHeight()
	box, boxw := b.height/9, b.height/6+2

	out.StatusStart = bc.Width
	if bc.Status != "" {
		tw := b.textWidth(bc.Status) - b.padding() + 2
		out.StatusStart = bc.Width - tw
		b.text(win, out.StatusStart, tw, bh, bc.Status, b.norm, false)
	}

	x := 0
	for _, t := range bc.Tags {
		w := b.textWidth(t.Name)
		cp := b.norm
		if t.Selected {
			cp = b.sel
		}
		b.text(win, x, w, bh, t.Name, cp, t.Urgent)
		if t.Occupied {
			fg := cp.fg
			if t.Urgent {
				fg = cp.bg
			}
			b.rect(win, x+box, box, boxw, boxw, fg, t.Focused)
		}
		x += w
		out.TagEnds = append(out.TagEnds, x)
	}

	w := b.textWidth(bc.Layout)
	b.text(win, x, w, bh, bc.Layout, b.norm, false)
	x += w
	out.LayoutEnd = x

	if w = out.StatusStart - x; w > bh {
		cp := b.norm
		if bc.Selected && bc.Title != "" {
			cp = b.sel
		}
		b.text(win, x, w, bh, bc.Title, cp, bc.Marked)
		if bc.Floating {
			b.rect(win, x+box, box, boxw, boxw, cp.fg, false)
		}
	}
	return out
}

// text fills a cell and draws s in it, cut to fit.
func (b *Bar) text(win xp.Window, x, w, h int, s string, cp colorPair, invert bool) {
	if w <= 0 {
		return
	}
	if invert {
		cp.fg, cp.bg = cp.bg, cp.fg
	}
	conn := b.c.xu.Conn()
	b.setColors(cp.bg, cp.bg)
	b.c.check(xp.PolyFillRectangleChecked(conn, xp.Drawable(win), b.gc, []xp.Rectangle{{
		X: int16(x), Y: 0, Width: uint16(w), Height: uint16(h),
	}}))

	str := latin1(s)
	if n := (w - b.padding()) / b.charWidth; len(str) > n {
		str = str[:max(n, 0)]
	}
	if len(str) > 255 {
		str = str[:255]
	}
	if len(str) == 0 {
		return
	}
	b.setColors(cp.fg, cp.bg)
	ty := (h-b.height)/2 + b.ascent
	b.c.check(xp.ImageText8Checked(conn, byte(len(str)), xp.Drawable(win), b.gc,
		int16(x+b.padding()/2), int16(ty), string(str)))
}

func (b *Bar) rect(win xp.Window, x, y, w, h int, fg uint32, filled bool) {
	conn := b.c.xu.Conn()
	b.setColors(fg, fg)
	r := []xp.Rectangle{{X: int16(x), Y: int16(y), Width: uint16(w), Height: uint16(h)}}
	if filled {
		b.c.check(xp.PolyFillRectangleChecked(conn, xp.Drawable(win), b.gc, r))
		return
	}
	b.c.check(xp.PolyRectangleChecked(conn, xp.Drawable(win), b.gc, r))
}

func (b *Bar) setColors(fg, bg uint32) {
	b.c.check(xp.ChangeGCChecked(b.c.xu.Conn(), b.gc, xp.GcForeground|xp.GcBackground,
		[]uint32{fg, bg}))
}

// latin1 converts s for the core font's 8-bit encoding.
func latin1(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xff {
			r = '?'
		}
		out = append(out, byte(r))
	}
	return out
}
