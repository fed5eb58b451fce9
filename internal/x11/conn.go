// Package x11 connects the window manager core to an X server through xgb
// and xgbutil.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/nigeltao/tagwm/internal/config"
	"github.com/nigeltao/tagwm/internal/util"
	"github.com/nigeltao/tagwm/internal/wm"
)

const rootEventMask = xp.EventMaskSubstructureRedirect |
	xp.EventMaskStructureNotify |
	xp.EventMaskButtonPress |
	xp.EventMaskPointerMotion |
	xp.EventMaskEnterWindow |
	xp.EventMaskLeaveWindow |
	xp.EventMaskPropertyChange

const clientEventMask = xp.EventMaskEnterWindow |
	xp.EventMaskFocusChange |
	xp.EventMaskPropertyChange |
	xp.EventMaskStructureNotify

var supported = []string{
	"_NET_SUPPORTED",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_WM_NAME",
	"_NET_WM_STATE",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_WINDOW_TYPE_DIALOG",
	"_NET_CLIENT_LIST",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_DESKTOP_NAMES",
	"_NET_CURRENT_DESKTOP",
}

// Conn is a connection to an X server's default screen. It implements
// wm.Display. It is not safe for concurrent use except for WaitForEvent.
type Conn struct {
	xu   *xgbutil.XUtil
	log  *util.Logger
	root xp.Window

	// support is the _NET_SUPPORTING_WM_CHECK window. It also owns the
	// XSETTINGS selection.
	support xp.Window

	cursors [3]xp.Cursor
	borders [3]uint32
	numlock uint16

	checkers []checker
}

var _ wm.Display = (*Conn)(nil)

// Connect opens the named display, or $DISPLAY when name is empty.
func Connect(name string, log *util.Logger) (*Conn, error) {
	xu, err := xgbutil.NewConnDisplay(name)
	if err != nil {
		return nil, fmt.Errorf("opening display %q: %w", name, err)
	}
	return &Conn{xu: xu, log: log, root: xu.RootWin()}, nil
}

// BecomeWM asks for substructure redirection on the root window. Only one
// client may hold it, so failure means another window manager runs.
func (c *Conn) BecomeWM() error {
	err := xp.ChangeWindowAttributesChecked(c.xu.Conn(), c.root, xp.CwEventMask,
		[]uint32{rootEventMask}).Check()
	if _, ok := err.(xp.AccessError); ok {
		return wm.ErrOtherWM
	}
	if err != nil {
		return fmt.Errorf("selecting root window events: %w", err)
	}
	return nil
}

// Init prepares the screen once BecomeWM has succeeded: keyboard maps,
// cursors, colors, EWMH support hints and XSETTINGS.
func (c *Conn) Init(cfg *config.Config) error {
	keybind.Initialize(c.xu)
	c.RefreshKeyboard()

	if err := randr.Init(c.xu.Conn()); err != nil {
		c.log.Warnf("randr unavailable, relying on root ConfigureNotify: %v", err)
	} else {
		c.check(randr.SelectInputChecked(c.xu.Conn(), c.root, randr.NotifyMaskScreenChange))
	}

	for i, shape := range [...]uint16{
		wm.CursorNormal: xcursor.LeftPtr,
		wm.CursorMove:   xcursor.Fleur,
		wm.CursorResize: xcursor.Sizing,
	} {
		cur, err := xcursor.CreateCursor(c.xu, shape)
		if err != nil {
			return fmt.Errorf("creating cursor %d: %w", shape, err)
		}
		c.cursors[i] = cur
	}
	c.check(xp.ChangeWindowAttributesChecked(c.xu.Conn(), c.root, xp.CwCursor,
		[]uint32{uint32(c.cursors[wm.CursorNormal])}))

	if err := c.SetColors(cfg.Colors); err != nil {
		return err
	}

	sw, err := xwindow.Generate(c.xu)
	if err != nil {
		return fmt.Errorf("allocating supporting window: %w", err)
	}
	if err := sw.CreateChecked(c.root, -1, -1, 1, 1, xp.CwOverrideRedirect, 1); err != nil {
		return fmt.Errorf("creating supporting window: %w", err)
	}
	c.support = sw.Id
	for _, w := range []xp.Window{c.root, c.support} {
		if err := ewmh.SupportingWmCheckSet(c.xu, w, c.support); err != nil {
			return fmt.Errorf("setting _NET_SUPPORTING_WM_CHECK: %w", err)
		}
	}
	if err := ewmh.WmNameSet(c.xu, c.support, "tagwm"); err != nil {
		return fmt.Errorf("setting _NET_WM_NAME: %w", err)
	}
	if err := ewmh.SupportedSet(c.xu, supported); err != nil {
		return fmt.Errorf("setting _NET_SUPPORTED: %w", err)
	}
	c.SetClientList(nil)

	if len(cfg.XSettings) != 0 {
		if err := c.announceXSettings(cfg.XSettings); err != nil {
			c.log.Warnf("could not set xsettings: %v", err)
		}
	}
	c.Flush()
	return nil
}

// SetColors parses the border colors. Bar colors belong to the Bar.
func (c *Conn) SetColors(cols config.Colors) error {
	for s, hex := range [...]string{
		wm.SchemeNorm: cols.NormBorder,
		wm.SchemeSel:  cols.SelBorder,
		wm.SchemeUrg:  cols.UrgBorder,
	} {
		px, err := config.ParseColor(hex)
		if err != nil {
			return err
		}
		c.borders[s] = px
	}
	return nil
}

// WaitForEvent blocks until the next event or asynchronous error arrives.
func (c *Conn) WaitForEvent() (xgb.Event, xgb.Error) {
	return c.xu.Conn().WaitForEvent()
}

// Close releases the grabs and windows owned by the connection and closes
// it.
func (c *Conn) Close() {
	conn := c.xu.Conn()
	c.check(xp.UngrabKeyChecked(conn, xp.GrabAny, c.root, xp.ModMaskAny))
	if c.support != 0 {
		c.check(xp.DestroyWindowChecked(conn, c.support))
		if atom, err := xprop.Atm(c.xu, "_NET_SUPPORTING_WM_CHECK"); err == nil {
			c.check(xp.DeletePropertyChecked(conn, c.root, atom))
		}
	}
	for _, cur := range c.cursors {
		if cur != 0 {
			c.check(xp.FreeCursorChecked(conn, cur))
		}
	}
	c.Flush()
	conn.Close()
}
