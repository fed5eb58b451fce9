// Package wm is the window management core: the client registry, monitors
// and their tag views, arrangement, focus and stacking, and the X event
// dispatcher. It talks to the display server only through the Display,
// Renderer and Launcher interfaces.
package wm

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/tagwm/internal/config"
	"github.com/nigeltao/tagwm/internal/geom"
	"github.com/nigeltao/tagwm/internal/layout"
	"github.com/nigeltao/tagwm/internal/rules"
	"github.com/nigeltao/tagwm/internal/util"
)

// ErrOtherWM is returned when another window manager already redirects
// the root window's substructure.
var ErrOtherWM = errors.New("another window manager is already running")

// ErrTagsChanged is returned by Reconfigure when the new configuration has
// a different number of tags or scratchpads than the running one.
var ErrTagsChanged = errors.New("the number of tags and scratchpads cannot change while running")

// Options are the collaborators of a Manager.
type Options struct {
	Display  Display
	Renderer Renderer
	Launcher Launcher
	Log      *util.Logger
	// Version is shown in the status area until a status is set.
	Version string
	// Reload is invoked by the reload action.
	Reload func()
}

// Manager is the window manager state. It is not safe for concurrent use;
// every method must be called from the event loop goroutine.
type Manager struct {
	cfg    *config.Config
	log    *util.Logger
	dpy    Display
	rnd    Renderer
	launch Launcher
	reload func()
	ver    string

	reg    *registry
	mons   []*Monitor
	selmon *Monitor
	// motionMon is the monitor the pointer was last seen on.
	motionMon *Monitor
	screen    geom.Rect
	bh        int

	layouts []layout.Layout
	tagset  rules.Tagset
	rules   []rules.Rule
	keys    []keyBinding
	buttons []buttonBinding
	numlock uint16

	status   string
	running  bool
	stopping bool

	// EnterNotify events older than enterBarrier were caused by our own
	// restacking and are dropped.
	enterBarrier uint16
	barrierSet   bool

	drag     *dragState
	deferred []xgb.Event
}

// New returns a Manager for cfg. Nothing is sent to the display until
// Start.
func New(cfg *config.Config, o Options) (*Manager, error) {
	if o.Log == nil {
		o.Log = util.Discard()
	}
	wm := &Manager{
		dpy:     o.Display,
		rnd:     o.Renderer,
		launch:  o.Launcher,
		log:     o.Log,
		reload:  o.Reload,
		ver:     o.Version,
		reg:     newRegistry(),
		running: true,
	}
	if err := wm.setConfig(cfg); err != nil {
		return nil, err
	}
	return wm, nil
}

func (wm *Manager) setConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	lts := make([]layout.Layout, 0, len(cfg.Layouts))
	for _, name := range cfg.Layouts {
		l, err := layout.Lookup(name)
		if err != nil {
			return err
		}
		lts = append(lts, l)
	}
	ts := rules.Tagset{Names: cfg.Tags}
	for _, sp := range cfg.Scratchpads {
		ts.Scratch = append(ts.Scratch, sp.Name)
	}
	rs, err := rules.Compile(cfg.Rules, ts)
	if err != nil {
		return err
	}
	prev := wm.cfg
	wm.cfg, wm.layouts, wm.tagset, wm.rules = cfg, lts, ts, rs
	if err := wm.compileBindings(); err != nil {
		wm.cfg = prev
		return err
	}
	return nil
}

// Config returns the configuration in effect.
func (wm *Manager) Config() *config.Config { return wm.cfg }

// Running reports whether the quit action has not been invoked yet.
func (wm *Manager) Running() bool { return wm.running }

// Quit makes Running report false. The caller's event loop then ends and
// calls Shutdown.
func (wm *Manager) Quit() { wm.running = false }

// Monitors returns the monitors in order.
func (wm *Manager) Monitors() []*Monitor { return wm.mons }

// SelectedMonitor returns the monitor that has the input focus.
func (wm *Manager) SelectedMonitor() *Monitor { return wm.selmon }

// Client returns the client managing win, or nil.
func (wm *Manager) Client(win xp.Window) *Client { return wm.reg.byWindow(win) }

// Clients returns the clients of m in list order.
func (wm *Manager) Clients(m *Monitor) []*Client { return wm.clientsOf(m) }

// Stack returns the clients of m in focus order, most recent first.
func (wm *Manager) Stack(m *Monitor) []*Client {
	out := make([]*Client, 0, len(m.stack))
	for _, h := range m.stack {
		out = append(out, wm.reg.get(h))
	}
	return out
}

// Start takes over the screen: it creates the monitors and their bars,
// grabs the configured keys and manages the windows that already exist.
func (wm *Manager) Start() error {
	if wm.dpy == nil || wm.rnd == nil {
		return errors.New("wm: display and renderer are required")
	}
	wm.screen = wm.dpy.ScreenRect()
	wm.bh = wm.cfg.BarHeight
	if wm.bh == 0 {
		wm.bh = wm.rnd.BarHeight()
	}
	wm.updateGeom()
	if wm.selmon == nil {
		wm.selmon = wm.mons[0]
	}
	wm.updateBars()
	wm.updateStatus()
	wm.updateDesktops()
	wm.grabKeys()
	if err := wm.scan(); err != nil {
		return fmt.Errorf("scanning existing windows: %w", err)
	}
	wm.focus(nil)
	for _, argv := range wm.cfg.Autostart {
		wm.spawn(argv)
	}
	return nil
}

// Shutdown gives every client back to the display server, at its last
// floating or tiled position, and removes the bars.
func (wm *Manager) Shutdown() {
	wm.stopping = true
	for _, m := range wm.mons {
		for len(m.stack) > 0 {
			c := wm.reg.get(m.stack[0])
			wm.dpy.MoveWindow(c.win, c.r.X, c.r.Y)
			wm.unmanage(c, false)
		}
		if m.barwin != 0 {
			wm.rnd.DestroyBar(m.barwin)
			m.barwin = 0
		}
	}
	wm.dpy.SetInputFocus(0)
	wm.dpy.SetActiveWindow(0)
}

// Reconfigure applies a new configuration. Monitors keep their per-tag
// state; the new defaults only affect monitors created afterwards.
func (wm *Manager) Reconfigure(cfg *config.Config) error {
	if len(cfg.Tags) != len(wm.cfg.Tags) || len(cfg.Scratchpads) != len(wm.cfg.Scratchpads) {
		return ErrTagsChanged
	}
	prevLayouts := len(wm.layouts)
	if err := wm.setConfig(cfg); err != nil {
		return err
	}
	for _, m := range wm.mons {
		for t := range m.pt.ltidxs {
			for j := range m.pt.ltidxs[t] {
				if m.pt.ltidxs[t][j] >= len(wm.layouts) || prevLayouts != len(wm.layouts) {
					m.pt.ltidxs[t][j] = j % len(wm.layouts)
				}
			}
		}
		m.lt = m.pt.ltidxs[m.pt.curtag]
		for _, c := range wm.clientsOf(m) {
			if !c.reallyFullscreen() {
				c.bw = wm.cfg.BorderPx
			}
			c.hintsValid = false
		}
	}
	wm.grabKeys()
	for _, m := range wm.mons {
		for _, c := range wm.clientsOf(m) {
			wm.grabButtons(c, c == wm.selmon.sel)
			wm.dpy.SetBorderColor(c.win, SchemeNorm)
		}
	}
	if s := wm.selmon.sel; s != nil {
		wm.dpy.SetBorderColor(s.win, SchemeSel)
	}
	wm.updateDesktops()
	wm.arrange(nil)
	return nil
}

func (wm *Manager) spawn(argv []string) {
	if wm.launch == nil || len(argv) == 0 {
		return
	}
	if err := wm.launch.Spawn(argv); err != nil {
		wm.log.Warnf("spawn %q: %v", argv, err)
	}
}

// updateStatus re-reads the root window name into the status area.
func (wm *Manager) updateStatus() {
	wm.status = wm.dpy.RootName()
	if wm.status == "" {
		wm.status = "tagwm-" + wm.ver
	}
	wm.drawBar(wm.selmon)
}

func (wm *Manager) updateClientList() {
	var wins []xp.Window
	for _, m := range wm.mons {
		for _, c := range wm.clientsOf(m) {
			wins = append(wins, c.win)
		}
	}
	wm.dpy.SetClientList(wins)
}

func (wm *Manager) updateDesktops() {
	cur := 0
	if wm.selmon != nil && wm.selmon.pt.curtag > 0 {
		cur = wm.selmon.pt.curtag - 1
	}
	wm.dpy.SetDesktops(wm.cfg.Tags, cur)
}

func (wm *Manager) updateBars() {
	for _, m := range wm.mons {
		if m.barwin == 0 {
			m.barwin = wm.rnd.CreateBar(wm.barRect(m))
		}
	}
}

func (wm *Manager) drawBars() {
	for _, m := range wm.mons {
		wm.drawBar(m)
	}
}

func (wm *Manager) drawBar(m *Monitor) {
	if m == nil || m.barwin == 0 || !m.showbar {
		return
	}
	var occ, urg uint32
	for _, c := range wm.clientsOf(m) {
		occ |= c.tags
		if c.urgent {
			urg |= c.tags
		}
	}
	b := BarContent{
		Width:    m.win.W,
		Selected: m == wm.selmon,
		Layout:   m.ltsymbol,
	}
	for i, name := range wm.cfg.Tags {
		bit := uint32(1) << uint(i)
		b.Tags = append(b.Tags, TagLabel{
			Name:     name,
			Selected: m.tagset[m.seltags]&bit != 0,
			Occupied: occ&bit != 0,
			Focused:  m.sel != nil && m.sel.tags&bit != 0,
			Urgent:   urg&bit != 0,
		})
	}
	if m == wm.selmon {
		b.Status = wm.status
	}
	if m.sel != nil {
		b.Title = m.sel.name
		b.Floating = m.sel.floating
		b.Marked = m.sel.marked
	}
	m.bar = wm.rnd.DrawBar(m.barwin, b)
}
