package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/tagwm/internal/geom"
)

// Handle is a stable reference to a Client in the registry arena. The zero
// Handle refers to no client.
type Handle uint32

// FakeState is the fake fullscreen state of a client.
type FakeState uint8

const (
	// FakeOff is plain fullscreen handling.
	FakeOff FakeState = iota
	// FakeOn tells the client it is fullscreen while it stays tiled.
	FakeOn
	// FakeReal is real fullscreen entered from fake fullscreen. Leaving it
	// returns to FakeOn.
	FakeReal
	// FakeExiting is FakeReal after the client itself asked to leave
	// fullscreen.
	FakeExiting
)

func (s FakeState) String() string {
	switch s {
	case FakeOff:
		return "off"
	case FakeOn:
		return "fake"
	case FakeReal:
		return "real-from-fake"
	case FakeExiting:
		return "exiting"
	}
	return "invalid"
}

// Client is one managed top-level window.
type Client struct {
	handle Handle
	win    xp.Window
	name   string

	r, old geom.Rect
	bw     int
	oldBW  int

	hints      geom.SizeHints
	hintsValid bool

	tags       uint32
	floating   bool
	fixed      bool
	urgent     bool
	neverFocus bool
	fullscreen bool
	sticky     bool
	marked     bool
	fake       FakeState

	// saveLocked is set between saving the pre-fullscreen state and
	// restoring it, so a client that signals fullscreen twice is only
	// snapshotted once.
	saveLocked    bool
	savedFloating bool
	saved         geom.Rect

	mon *Monitor
}

func (c *Client) Handle() Handle    { return c.handle }
func (c *Client) Window() xp.Window { return c.win }
func (c *Client) Name() string      { return c.name }
func (c *Client) Rect() geom.Rect   { return c.r }
func (c *Client) Border() int       { return c.bw }
func (c *Client) Tags() uint32      { return c.tags }
func (c *Client) Floating() bool    { return c.floating }
func (c *Client) Fullscreen() bool  { return c.fullscreen }
func (c *Client) Fake() FakeState   { return c.fake }
func (c *Client) Urgent() bool      { return c.urgent }
func (c *Client) Sticky() bool      { return c.sticky }
func (c *Client) Marked() bool      { return c.marked }
func (c *Client) Monitor() *Monitor { return c.mon }

// reallyFullscreen reports whether the client covers its monitor, as
// opposed to only believing it does.
func (c *Client) reallyFullscreen() bool {
	return c.fullscreen && c.fake != FakeOn
}

func (c *Client) width() int  { return c.r.W + 2*c.bw }
func (c *Client) height() int { return c.r.H + 2*c.bw }

// visible reports whether the client is shown under its monitor's current
// tag set.
func (c *Client) visible() bool {
	return c.sticky || c.tags&c.mon.tagset[c.mon.seltags] != 0
}

// slot adapts a client to layout.Slot.
type slot struct {
	wm *Manager
	c  *Client
}

func (s slot) Border() int { return s.c.bw }

func (s slot) Place(r geom.Rect) geom.Rect {
	s.wm.resize(s.c, r, false)
	return s.c.r
}
