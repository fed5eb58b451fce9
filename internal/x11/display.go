package x11

import (
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xinerama"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/nigeltao/tagwm/internal/geom"
	"github.com/nigeltao/tagwm/internal/rules"
	"github.com/nigeltao/tagwm/internal/wm"
)

func (c *Conn) Root() xp.Window { return c.root }

func (c *Conn) ScreenRect() geom.Rect {
	r, err := xwindow.RawGeometry(c.xu, xp.Drawable(c.root))
	if err != nil {
		s := c.xu.Screen()
		return geom.Rect{W: int(s.WidthInPixels), H: int(s.HeightInPixels)}
	}
	return geom.Rect{X: r.X(), Y: r.Y(), W: r.Width(), H: r.Height()}
}

// Heads lists the physical outputs. It returns nil when Xinerama is not
// active, and the caller falls back to the whole screen.
func (c *Conn) Heads() []geom.Rect {
	heads, err := xinerama.PhysicalHeads(c.xu)
	if err != nil {
		c.log.Debugf("xinerama: %v", err)
		return nil
	}
	out := make([]geom.Rect, len(heads))
	for i, h := range heads {
		x, y, w, ht := h.Pieces()
		out[i] = geom.Rect{X: x, Y: y, W: w, H: ht}
	}
	return out
}

func (c *Conn) Attributes(win xp.Window) (wm.WindowAttributes, error) {
	attrs, err := xp.GetWindowAttributes(c.xu.Conn(), win).Reply()
	if err != nil {
		return wm.WindowAttributes{}, fmt.Errorf("window %#x attributes: %w", win, err)
	}
	g, err := xp.GetGeometry(c.xu.Conn(), xp.Drawable(win)).Reply()
	if err != nil {
		return wm.WindowAttributes{}, fmt.Errorf("window %#x geometry: %w", win, err)
	}
	return wm.WindowAttributes{
		Rect:             geom.Rect{X: int(g.X), Y: int(g.Y), W: int(g.Width), H: int(g.Height)},
		BorderWidth:      int(g.BorderWidth),
		OverrideRedirect: attrs.OverrideRedirect,
		Viewable:         attrs.MapState == xp.MapStateViewable,
	}, nil
}

func (c *Conn) Children() ([]xp.Window, error) {
	tree, err := xp.QueryTree(c.xu.Conn(), c.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("querying root children: %w", err)
	}
	out := tree.Children[:0:0]
	for _, w := range tree.Children {
		if w != c.support {
			out = append(out, w)
		}
	}
	return out, nil
}

func (c *Conn) AtomName(atom xp.Atom) string {
	name, err := xprop.AtomName(c.xu, atom)
	if err != nil {
		return ""
	}
	return name
}

// Title prefers _NET_WM_NAME and falls back to WM_NAME.
func (c *Conn) Title(win xp.Window) string {
	if name, err := ewmh.WmNameGet(c.xu, win); err == nil && name != "" {
		return name
	}
	name, _ := icccm.WmNameGet(c.xu, win)
	return name
}

func (c *Conn) RootName() string {
	name, _ := icccm.WmNameGet(c.xu, c.root)
	return name
}

func (c *Conn) Props(win xp.Window) rules.Props {
	p := rules.Props{
		Title: c.Title(win),
		Types: c.WindowTypes(win),
	}
	if cls, err := icccm.WmClassGet(c.xu, win); err == nil {
		p.Class, p.Instance = cls.Class, cls.Instance
	}
	p.Role, _ = xprop.PropValStr(xprop.GetProperty(c.xu, win, "WM_WINDOW_ROLE"))
	return p
}

func (c *Conn) TransientFor(win xp.Window) (xp.Window, bool) {
	parent, err := icccm.WmTransientForGet(c.xu, win)
	if err != nil || parent == 0 {
		return 0, false
	}
	return parent, true
}

func (c *Conn) NormalHints(win xp.Window) *icccm.NormalHints {
	h, err := icccm.WmNormalHintsGet(c.xu, win)
	if err != nil {
		return nil
	}
	return h
}

func (c *Conn) WMHints(win xp.Window) *icccm.Hints {
	h, err := icccm.WmHintsGet(c.xu, win)
	if err != nil {
		return nil
	}
	return h
}

func (c *Conn) SetWMHints(win xp.Window, h *icccm.Hints) {
	if err := icccm.WmHintsSet(c.xu, win, h); err != nil {
		c.ReportError(err)
	}
}

func (c *Conn) WMState(win xp.Window) (uint, bool) {
	st, err := icccm.WmStateGet(c.xu, win)
	if err != nil {
		return 0, false
	}
	return st.State, true
}

func (c *Conn) SetWMState(win xp.Window, state uint) {
	if err := icccm.WmStateSet(c.xu, win, &icccm.WmState{State: state}); err != nil {
		c.ReportError(err)
	}
}

func (c *Conn) NetWMState(win xp.Window) []string {
	st, _ := ewmh.WmStateGet(c.xu, win)
	return st
}

func (c *Conn) SetFullscreenState(win xp.Window, on bool) {
	st := []string{}
	if on {
		st = append(st, "_NET_WM_STATE_FULLSCREEN")
	}
	if err := ewmh.WmStateSet(c.xu, win, st); err != nil {
		c.ReportError(err)
	}
}

func (c *Conn) WindowTypes(win xp.Window) []string {
	types, _ := ewmh.WmWindowTypeGet(c.xu, win)
	return types
}

func (c *Conn) SendProtocol(win xp.Window, protocol string) bool {
	protos, err := icccm.WmProtocolsGet(c.xu, win)
	if err != nil {
		return false
	}
	for _, p := range protos {
		if p == protocol {
			c.sendClientMessage(win, protocol)
			return true
		}
	}
	return false
}

func (c *Conn) sendClientMessage(win xp.Window, protocol string) {
	wmProtocols, err := xprop.Atm(c.xu, "WM_PROTOCOLS")
	if err != nil {
		c.ReportError(err)
		return
	}
	atom, err := xprop.Atm(c.xu, protocol)
	if err != nil {
		c.ReportError(err)
		return
	}
	c.check(xp.SendEventChecked(c.xu.Conn(), false, win, xp.EventMaskNoEvent,
		string(xp.ClientMessageEvent{
			Format: 32,
			Window: win,
			Type:   wmProtocols,
			Data: xp.ClientMessageDataUnionData32New([]uint32{
				uint32(atom),
				uint32(xp.TimeCurrentTime),
				0,
				0,
				0,
			}),
		}.Bytes()),
	))
}

// Kill disconnects the client owning win, destroying all its resources.
func (c *Conn) Kill(win xp.Window) {
	c.xu.Grab()
	c.check(xp.SetCloseDownModeChecked(c.xu.Conn(), xp.CloseDownDestroyAll))
	c.check(xp.KillClientChecked(c.xu.Conn(), uint32(win)))
	c.xu.Ungrab()
}

// SetActiveWindow updates _NET_ACTIVE_WINDOW. Zero removes the property.
func (c *Conn) SetActiveWindow(win xp.Window) {
	if win != 0 {
		if err := ewmh.ActiveWindowSet(c.xu, win); err != nil {
			c.ReportError(err)
		}
		return
	}
	atom, err := xprop.Atm(c.xu, "_NET_ACTIVE_WINDOW")
	if err != nil {
		c.ReportError(err)
		return
	}
	c.check(xp.DeletePropertyChecked(c.xu.Conn(), c.root, atom))
}

func (c *Conn) SetClientList(wins []xp.Window) {
	if err := ewmh.ClientListSet(c.xu, wins); err != nil {
		c.ReportError(err)
	}
}

func (c *Conn) SetDesktops(names []string, current int) {
	if err := ewmh.NumberOfDesktopsSet(c.xu, uint(len(names))); err != nil {
		c.ReportError(err)
	}
	if err := ewmh.DesktopNamesSet(c.xu, names); err != nil {
		c.ReportError(err)
	}
	if err := ewmh.CurrentDesktopSet(c.xu, uint(current)); err != nil {
		c.ReportError(err)
	}
}

func (c *Conn) configure(win xp.Window, mask uint16, values ...uint32) {
	c.check(xp.ConfigureWindowChecked(c.xu.Conn(), win, mask, values))
}

func (c *Conn) ConfigureWindow(win xp.Window, r geom.Rect, bw int) {
	c.configure(win,
		xp.ConfigWindowX|xp.ConfigWindowY|xp.ConfigWindowWidth|xp.ConfigWindowHeight|xp.ConfigWindowBorderWidth,
		uint32(r.X), uint32(r.Y), uint32(max(r.W, 1)), uint32(max(r.H, 1)), uint32(bw))
}

func (c *Conn) MoveWindow(win xp.Window, x, y int) {
	c.configure(win, xp.ConfigWindowX|xp.ConfigWindowY, uint32(x), uint32(y))
}

func (c *Conn) SetBorderWidth(win xp.Window, bw int) {
	c.configure(win, xp.ConfigWindowBorderWidth, uint32(bw))
}

// SendConfigureNotify tells a client its geometry without changing it, as
// ICCCM requires when a configure request is refused or only moves it.
func (c *Conn) SendConfigureNotify(win xp.Window, r geom.Rect, bw int) {
	cne := xp.ConfigureNotifyEvent{
		Event:       win,
		Window:      win,
		X:           int16(r.X),
		Y:           int16(r.Y),
		Width:       uint16(r.W),
		Height:      uint16(r.H),
		BorderWidth: uint16(bw),
	}
	c.check(xp.SendEventChecked(c.xu.Conn(), false, win,
		xp.EventMaskStructureNotify, string(cne.Bytes())))
}

// ForwardConfigure grants an unmanaged window's configure request as is.
func (c *Conn) ForwardConfigure(e xp.ConfigureRequestEvent) {
	mask, values := uint16(0), []uint32(nil)
	if e.ValueMask&xp.ConfigWindowX != 0 {
		mask |= xp.ConfigWindowX
		values = append(values, uint32(e.X))
	}
	if e.ValueMask&xp.ConfigWindowY != 0 {
		mask |= xp.ConfigWindowY
		values = append(values, uint32(e.Y))
	}
	if e.ValueMask&xp.ConfigWindowWidth != 0 {
		mask |= xp.ConfigWindowWidth
		values = append(values, uint32(e.Width))
	}
	if e.ValueMask&xp.ConfigWindowHeight != 0 {
		mask |= xp.ConfigWindowHeight
		values = append(values, uint32(e.Height))
	}
	if e.ValueMask&xp.ConfigWindowBorderWidth != 0 {
		mask |= xp.ConfigWindowBorderWidth
		values = append(values, uint32(e.BorderWidth))
	}
	if e.ValueMask&xp.ConfigWindowSibling != 0 {
		mask |= xp.ConfigWindowSibling
		values = append(values, uint32(e.Sibling))
	}
	if e.ValueMask&xp.ConfigWindowStackMode != 0 {
		mask |= xp.ConfigWindowStackMode
		values = append(values, uint32(e.StackMode))
	}
	c.configure(e.Window, mask, values...)
}

func (c *Conn) SetBorderColor(win xp.Window, s wm.Scheme) {
	c.check(xp.ChangeWindowAttributesChecked(c.xu.Conn(), win, xp.CwBorderPixel,
		[]uint32{c.borders[s]}))
}

func (c *Conn) Raise(win xp.Window) {
	c.configure(win, xp.ConfigWindowStackMode, xp.StackModeAbove)
}

func (c *Conn) StackBelow(win, sibling xp.Window) {
	if sibling == 0 {
		c.configure(win, xp.ConfigWindowStackMode, xp.StackModeBelow)
		return
	}
	c.configure(win, xp.ConfigWindowSibling|xp.ConfigWindowStackMode,
		uint32(sibling), xp.StackModeBelow)
}

func (c *Conn) MapWindow(win xp.Window) {
	c.check(xp.MapWindowChecked(c.xu.Conn(), win))
}

func (c *Conn) SelectClientInput(win xp.Window) {
	if err := xwindow.New(c.xu, win).Listen(clientEventMask); err != nil {
		c.ReportError(err)
	}
}
