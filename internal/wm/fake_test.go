package wm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/nigeltao/tagwm/internal/config"
	"github.com/nigeltao/tagwm/internal/geom"
	"github.com/nigeltao/tagwm/internal/rules"
)

const testRoot xp.Window = 1

var testAtoms = map[xp.Atom]string{
	301: "_NET_WM_STATE",
	302: "_NET_WM_STATE_FULLSCREEN",
	303: "_NET_ACTIVE_WINDOW",
	304: "_NET_CURRENT_DESKTOP",
	305: "_NET_WM_NAME",
	306: "_NET_WM_WINDOW_TYPE",
}

func atomOf(name string) xp.Atom {
	for a, n := range testAtoms {
		if n == name {
			return a
		}
	}
	panic("no test atom " + name)
}

type fakeWindow struct {
	attrs     WindowAttributes
	title     string
	props     rules.Props
	transient xp.Window
	normal    *icccm.NormalHints
	hints     *icccm.Hints
	state     uint
	hasState  bool
	netState  []string
	protocols []string

	r          geom.Rect
	bw         int
	scheme     Scheme
	mapped     bool
	fullscreen bool
}

type fakeDisplay struct {
	screen geom.Rect
	heads  []geom.Rect
	wins   map[xp.Window]*fakeWindow
	order  []xp.Window

	focus      xp.Window
	active     xp.Window
	clientList []xp.Window
	desktops   []string
	current    int
	rootName   string

	seq       uint16
	px, py    int
	grabbed   bool
	raised    []xp.Window
	killed    []xp.Window
	sent      []string
	keyGrabs  []KeyGrab
	keycodes  map[string]xp.Keycode
	configure int
}

func newFakeDisplay(heads ...geom.Rect) *fakeDisplay {
	d := &fakeDisplay{
		screen:   geom.Rect{W: 1000, H: 800},
		heads:    heads,
		wins:     map[xp.Window]*fakeWindow{},
		keycodes: map[string]xp.Keycode{},
		seq:      100,
	}
	for _, h := range heads {
		if h.Right() > d.screen.W {
			d.screen.W = h.Right()
		}
	}
	return d
}

func (d *fakeDisplay) win(w xp.Window) *fakeWindow {
	fw, ok := d.wins[w]
	if !ok {
		fw = &fakeWindow{}
		d.wins[w] = fw
	}
	return fw
}

func (d *fakeDisplay) Attributes(w xp.Window) (WindowAttributes, error) {
	fw, ok := d.wins[w]
	if !ok {
		return WindowAttributes{}, errors.New("bad window")
	}
	return fw.attrs, nil
}

func (d *fakeDisplay) Children() ([]xp.Window, error) { return d.order, nil }
func (d *fakeDisplay) AtomName(a xp.Atom) string      { return testAtoms[a] }
func (d *fakeDisplay) Title(w xp.Window) string       { return d.win(w).title }
func (d *fakeDisplay) RootName() string               { return d.rootName }
func (d *fakeDisplay) Props(w xp.Window) rules.Props  { return d.win(w).props }

func (d *fakeDisplay) TransientFor(w xp.Window) (xp.Window, bool) {
	t := d.win(w).transient
	return t, t != 0
}

func (d *fakeDisplay) NormalHints(w xp.Window) *icccm.NormalHints { return d.win(w).normal }
func (d *fakeDisplay) WMHints(w xp.Window) *icccm.Hints {
	if h := d.win(w).hints; h != nil {
		c := *h
		return &c
	}
	return nil
}
func (d *fakeDisplay) SetWMHints(w xp.Window, h *icccm.Hints) { d.win(w).hints = h }

func (d *fakeDisplay) WMState(w xp.Window) (uint, bool) {
	fw := d.win(w)
	return fw.state, fw.hasState
}

func (d *fakeDisplay) SetWMState(w xp.Window, s uint) {
	fw := d.win(w)
	fw.state, fw.hasState = s, true
}

func (d *fakeDisplay) NetWMState(w xp.Window) []string { return d.win(w).netState }
func (d *fakeDisplay) SetFullscreenState(w xp.Window, on bool) {
	d.win(w).fullscreen = on
}
func (d *fakeDisplay) WindowTypes(w xp.Window) []string { return d.win(w).props.Types }

func (d *fakeDisplay) SendProtocol(w xp.Window, p string) bool {
	for _, x := range d.win(w).protocols {
		if x == p {
			d.sent = append(d.sent, fmt.Sprintf("%d:%s", w, p))
			return true
		}
	}
	return false
}

func (d *fakeDisplay) Kill(w xp.Window)                  { d.killed = append(d.killed, w) }
func (d *fakeDisplay) SetActiveWindow(w xp.Window)       { d.active = w }
func (d *fakeDisplay) SetClientList(wins []xp.Window)    { d.clientList = wins }
func (d *fakeDisplay) SetDesktops(names []string, c int) { d.desktops, d.current = names, c }

func (d *fakeDisplay) Root() xp.Window       { return testRoot }
func (d *fakeDisplay) ScreenRect() geom.Rect { return d.screen }
func (d *fakeDisplay) Heads() []geom.Rect    { return d.heads }

func (d *fakeDisplay) ConfigureWindow(w xp.Window, r geom.Rect, bw int) {
	fw := d.win(w)
	fw.r, fw.bw = r, bw
	d.configure++
}

func (d *fakeDisplay) MoveWindow(w xp.Window, x, y int) {
	fw := d.win(w)
	fw.r.X, fw.r.Y = x, y
}

func (d *fakeDisplay) SetBorderWidth(w xp.Window, bw int)            { d.win(w).bw = bw }
func (d *fakeDisplay) SendConfigureNotify(xp.Window, geom.Rect, int) {}
func (d *fakeDisplay) ForwardConfigure(e xp.ConfigureRequestEvent)   { d.configure++ }
func (d *fakeDisplay) SetBorderColor(w xp.Window, s Scheme)          { d.win(w).scheme = s }
func (d *fakeDisplay) Raise(w xp.Window)                             { d.raised = append(d.raised, w) }
func (d *fakeDisplay) StackBelow(w, sibling xp.Window)               {}
func (d *fakeDisplay) MapWindow(w xp.Window)                         { d.win(w).mapped = true }
func (d *fakeDisplay) SelectClientInput(xp.Window)                   {}
func (d *fakeDisplay) SetInputFocus(w xp.Window)                     { d.focus = w }
func (d *fakeDisplay) NumlockMask() uint16                           { return xp.ModMask2 }
func (d *fakeDisplay) RefreshKeyboard()                              {}
func (d *fakeDisplay) GrabKeys(grabs []KeyGrab)                      { d.keyGrabs = grabs }
func (d *fakeDisplay) GrabButtons(xp.Window, bool, []ButtonGrab)     {}
func (d *fakeDisplay) UngrabButtons(xp.Window)                       {}
func (d *fakeDisplay) ReplayPointer()                                {}
func (d *fakeDisplay) UngrabPointer()                                { d.grabbed = false }
func (d *fakeDisplay) QueryPointer() (int, int, bool)                { return d.px, d.py, true }
func (d *fakeDisplay) WarpPointer(w xp.Window, x, y int)             {}
func (d *fakeDisplay) Sync() uint16                                  { d.seq += 10; return d.seq }

func (d *fakeDisplay) GrabPointer(Cursor) bool {
	d.grabbed = true
	return true
}

var testMods = map[string]uint16{
	"Shift":   xp.ModMaskShift,
	"Control": xp.ModMaskControl,
	"Mod1":    xp.ModMask1,
	"Mod4":    xp.ModMask4,
}

func parseMods(s string) (uint16, string, error) {
	parts := strings.Split(s, "-")
	var mods uint16
	for _, p := range parts[:len(parts)-1] {
		m, ok := testMods[p]
		if !ok {
			return 0, "", fmt.Errorf("unknown modifier %q", p)
		}
		mods |= m
	}
	return mods, parts[len(parts)-1], nil
}

func (d *fakeDisplay) ParseKey(s string) (uint16, []xp.Keycode, error) {
	mods, key, err := parseMods(s)
	if err != nil {
		return 0, nil, err
	}
	code, ok := d.keycodes[key]
	if !ok {
		code = xp.Keycode(10 + len(d.keycodes))
		d.keycodes[key] = code
	}
	return mods, []xp.Keycode{code}, nil
}

func (d *fakeDisplay) ParseButton(s string) (uint16, xp.Button, error) {
	mods, b, err := parseMods(s)
	if err != nil {
		return 0, 0, err
	}
	n, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, err
	}
	return mods, xp.Button(n), nil
}

// fakeRenderer lays out tags 10 pixels wide, then a 20 pixel layout
// symbol, and puts the status in the last 50 pixels.
type fakeRenderer struct {
	next  xp.Window
	bars  map[xp.Window]geom.Rect
	drawn map[xp.Window]BarContent
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{next: 1000, bars: map[xp.Window]geom.Rect{}, drawn: map[xp.Window]BarContent{}}
}

func (r *fakeRenderer) BarHeight() int { return 16 }

func (r *fakeRenderer) CreateBar(rect geom.Rect) xp.Window {
	r.next++
	r.bars[r.next] = rect
	return r.next
}

func (r *fakeRenderer) MoveBar(w xp.Window, rect geom.Rect) { r.bars[w] = rect }
func (r *fakeRenderer) DestroyBar(w xp.Window)              { delete(r.bars, w) }

func (r *fakeRenderer) DrawBar(w xp.Window, b BarContent) BarLayout {
	r.drawn[w] = b
	var l BarLayout
	for i := range b.Tags {
		l.TagEnds = append(l.TagEnds, 10*(i+1))
	}
	l.LayoutEnd = 10*len(b.Tags) + 20
	if b.Status != "" {
		l.StatusStart = b.Width - 50
	}
	return l
}

type fakeLauncher struct{ spawned [][]string }

func (l *fakeLauncher) Spawn(argv []string) error {
	l.spawned = append(l.spawned, argv)
	return nil
}

type testEnv struct {
	wm  *Manager
	dpy *fakeDisplay
	rnd *fakeRenderer
	run *fakeLauncher
}

func newTestEnv(t *testing.T, cfg *config.Config, heads ...geom.Rect) *testEnv {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	env := &testEnv{dpy: newFakeDisplay(heads...), rnd: newFakeRenderer(), run: &fakeLauncher{}}
	wm, err := New(cfg, Options{Display: env.dpy, Renderer: env.rnd, Launcher: env.run, Version: "test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := wm.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	env.wm = wm
	return env
}

// mapWindow creates a window and asks the manager to map it.
func (env *testEnv) mapWindow(w xp.Window, r geom.Rect, props rules.Props) *Client {
	fw := env.dpy.win(w)
	fw.attrs = WindowAttributes{Rect: r, BorderWidth: 0}
	fw.r = r
	fw.props = props
	fw.title = fmt.Sprintf("window %d", w)
	env.dpy.order = append(env.dpy.order, w)
	env.wm.Handle(xp.MapRequestEvent{Parent: testRoot, Window: w})
	return env.wm.Client(w)
}

func (env *testEnv) key(spec string) {
	mods, codes, err := env.dpy.ParseKey(spec)
	if err != nil {
		panic(err)
	}
	env.wm.Handle(xp.KeyPressEvent{Detail: codes[0], State: mods, Root: testRoot, Event: testRoot})
}
