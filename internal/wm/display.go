package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/nigeltao/tagwm/internal/geom"
	"github.com/nigeltao/tagwm/internal/rules"
)

// Scheme selects a border color.
type Scheme int

const (
	SchemeNorm Scheme = iota
	SchemeSel
	SchemeUrg
)

// Cursor selects the pointer shape of a grab.
type Cursor int

const (
	CursorNormal Cursor = iota
	CursorMove
	CursorResize
)

// WindowAttributes is the subset of a window's attributes the manager
// looks at when deciding whether to manage it.
type WindowAttributes struct {
	Rect             geom.Rect
	BorderWidth      int
	OverrideRedirect bool
	Viewable         bool
}

// KeyGrab is one key combination grabbed on the root window.
type KeyGrab struct {
	Mods uint16
	Code xp.Keycode
}

// ButtonGrab is one button combination grabbed on a client window.
type ButtonGrab struct {
	Mods   uint16
	Button xp.Button
}

// Properties reads and writes client window properties.
type Properties interface {
	Attributes(win xp.Window) (WindowAttributes, error)
	Children() ([]xp.Window, error)
	AtomName(atom xp.Atom) string
	Title(win xp.Window) string
	RootName() string
	Props(win xp.Window) rules.Props
	TransientFor(win xp.Window) (xp.Window, bool)
	NormalHints(win xp.Window) *icccm.NormalHints
	WMHints(win xp.Window) *icccm.Hints
	SetWMHints(win xp.Window, h *icccm.Hints)
	WMState(win xp.Window) (uint, bool)
	SetWMState(win xp.Window, state uint)
	NetWMState(win xp.Window) []string
	SetFullscreenState(win xp.Window, on bool)
	WindowTypes(win xp.Window) []string
	// SendProtocol delivers a WM_PROTOCOLS message if the window supports
	// the protocol, and reports whether it did.
	SendProtocol(win xp.Window, protocol string) bool
	Kill(win xp.Window)

	SetActiveWindow(win xp.Window)
	SetClientList(wins []xp.Window)
	SetDesktops(names []string, current int)
}

// Geometry changes window placement and stacking.
type Geometry interface {
	Root() xp.Window
	ScreenRect() geom.Rect
	Heads() []geom.Rect

	ConfigureWindow(win xp.Window, r geom.Rect, bw int)
	MoveWindow(win xp.Window, x, y int)
	SetBorderWidth(win xp.Window, bw int)
	SendConfigureNotify(win xp.Window, r geom.Rect, bw int)
	ForwardConfigure(e xp.ConfigureRequestEvent)
	SetBorderColor(win xp.Window, s Scheme)
	Raise(win xp.Window)
	StackBelow(win, sibling xp.Window)
	MapWindow(win xp.Window)
	SelectClientInput(win xp.Window)
}

// Input covers focus, grabs and the keyboard map.
type Input interface {
	SetInputFocus(win xp.Window)
	NumlockMask() uint16
	ParseKey(s string) (uint16, []xp.Keycode, error)
	ParseButton(s string) (uint16, xp.Button, error)
	RefreshKeyboard()
	GrabKeys(grabs []KeyGrab)
	GrabButtons(win xp.Window, focused bool, grabs []ButtonGrab)
	UngrabButtons(win xp.Window)
	ReplayPointer()
	GrabPointer(c Cursor) bool
	UngrabPointer()
	QueryPointer() (x, y int, ok bool)
	WarpPointer(win xp.Window, x, y int)
	// Sync issues a round trip marker and returns its sequence number.
	// Events generated before the marker carry a smaller sequence.
	Sync() uint16
}

// Display is everything the manager asks of the display server.
type Display interface {
	Properties
	Geometry
	Input
}

// TagLabel is one tag cell of a bar.
type TagLabel struct {
	Name     string
	Selected bool
	Occupied bool
	// Focused marks that the selected client of the bar's monitor carries
	// this tag.
	Focused bool
	Urgent  bool
}

// BarContent is what a bar should show.
type BarContent struct {
	Width    int
	Selected bool
	Tags     []TagLabel
	Layout   string
	Title    string
	Floating bool
	// Marked is set when the selected client is marked.
	Marked bool
	Status string
}

// BarLayout is the geometry a renderer consumed, in bar-relative x
// co-ordinates, so clicks can be mapped back to regions.
type BarLayout struct {
	TagEnds     []int
	LayoutEnd   int
	StatusStart int
}

// Renderer owns the bar windows and draws into them.
type Renderer interface {
	BarHeight() int
	CreateBar(r geom.Rect) xp.Window
	MoveBar(win xp.Window, r geom.Rect)
	DestroyBar(win xp.Window)
	DrawBar(win xp.Window, b BarContent) BarLayout
}

// Launcher starts external programs.
type Launcher interface {
	Spawn(argv []string) error
}
