package wm

import (
	"errors"
	"fmt"
	"sort"

	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/tagwm/internal/config"
)

type clickRegion int

const (
	clickTag clickRegion = iota
	clickLayout
	clickTitle
	clickStatus
	clickClient
	clickRoot
)

var clickRegions = map[string]clickRegion{
	config.ClickTag:    clickTag,
	config.ClickLayout: clickLayout,
	config.ClickTitle:  clickTitle,
	config.ClickStatus: clickStatus,
	config.ClickClient: clickClient,
	config.ClickRoot:   clickRoot,
}

// command is a compiled action. tagMask is the tag under the pointer for
// tag bar clicks and 0 otherwise.
type command func(wm *Manager, tagMask uint32)

type keyBinding struct {
	key   string
	mods  uint16
	codes []xp.Keycode
	cmd   command
}

type buttonBinding struct {
	click  clickRegion
	mods   uint16
	button xp.Button
	cmd    command
}

type actionFunc func(wm *Manager, arg config.Arg) (command, error)

var actions map[string]actionFunc

func init() {
	actions = map[string]actionFunc{
		"spawn": func(wm *Manager, arg config.Arg) (command, error) {
			if len(arg) == 0 {
				return nil, fmt.Errorf("spawn needs a command")
			}
			argv := []string(arg)
			return func(wm *Manager, _ uint32) { wm.spawn(argv) }, nil
		},
		"killclient": simple((*Manager).killClient),
		"quit":       simple((*Manager).Quit),
		"reload": simple(func(wm *Manager) {
			if wm.reload != nil {
				wm.reload()
			}
		}),
		"view":       tagAction((*Manager).view),
		"toggleview": tagAction((*Manager).toggleView),
		"tag":        tagAction((*Manager).tag),
		"toggletag":  tagAction((*Manager).toggleTag),
		"focusstack": intAction((*Manager).focusStack, 1),
		"focusmon":   intAction((*Manager).focusMon, 1),
		"tagmon":     intAction((*Manager).tagMon, 1),
		"incnmaster": intAction((*Manager).incNMaster, 1),
		"setmfact": func(wm *Manager, arg config.Arg) (command, error) {
			f, err := arg.Float(0)
			if err != nil {
				return nil, err
			}
			return func(wm *Manager, _ uint32) {
				m := wm.selmon
				// Values below 1 are relative, values above are absolute
				// plus one.
				if f < 1 {
					wm.SetMFact(m.mfact + f)
				} else {
					wm.SetMFact(f - 1)
				}
			}, nil
		},
		"setlayout": func(wm *Manager, arg config.Arg) (command, error) {
			i := -1
			if name := arg.String(); name != "" {
				i = -2
				for j, l := range wm.layouts {
					if l.Name() == name {
						i = j
					}
				}
				if i == -2 {
					return nil, fmt.Errorf("layout %q is not in the layouts list", name)
				}
			}
			return func(wm *Manager, _ uint32) { wm.setLayout(i) }, nil
		},
		"togglefloating":       simple((*Manager).toggleFloating),
		"togglesticky":         simple((*Manager).toggleSticky),
		"togglebar":            simple(func(wm *Manager) { wm.toggleBar(wm.selmon); wm.arrange(wm.selmon) }),
		"zoom":                 simple((*Manager).zoom),
		"togglefullscreen":     simple((*Manager).toggleFullscreen),
		"togglefakefullscreen": simple((*Manager).toggleFakeFullscreen),
		"togglescratch": func(wm *Manager, arg config.Arg) (command, error) {
			name := arg.String()
			if wm.tagset.ScratchBit(name) == 0 {
				return nil, fmt.Errorf("unknown scratchpad %q", name)
			}
			return func(wm *Manager, _ uint32) { wm.toggleScratch(name) }, nil
		},
		"mark":       simple((*Manager).mark),
		"unmark":     simple((*Manager).unmark),
		"togglemark": simple((*Manager).toggleMark),
		"unmarkall":  simple((*Manager).unmarkAll),
		"markall": func(wm *Manager, arg config.Arg) (command, error) {
			var floatingOnly bool
			switch s := arg.String(); s {
			case "":
			case "floating":
				floatingOnly = true
			default:
				return nil, fmt.Errorf("markall takes no argument or \"floating\", not %q", s)
			}
			return func(wm *Manager, _ uint32) { wm.markAll(floatingOnly) }, nil
		},
		"movemouse":   simple(func(wm *Manager) { wm.startDrag(false) }),
		"resizemouse": simple(func(wm *Manager) { wm.startDrag(true) }),
	}
}

// ActionNames returns the names usable in key and button bindings.
func ActionNames() []string {
	names := make([]string, 0, len(actions))
	for n := range actions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func simple(f func(*Manager)) actionFunc {
	return func(*Manager, config.Arg) (command, error) {
		return func(wm *Manager, _ uint32) { f(wm) }, nil
	}
}

func intAction(f func(*Manager, int), def int) actionFunc {
	return func(_ *Manager, arg config.Arg) (command, error) {
		n, err := arg.Int(def)
		if err != nil {
			return nil, err
		}
		return func(wm *Manager, _ uint32) { f(wm, n) }, nil
	}
}

// tagAction resolves a tag reference. Without one, the action uses the tag
// that was clicked, or 0 for keys.
func tagAction(f func(*Manager, uint32)) actionFunc {
	return func(wm *Manager, arg config.Arg) (command, error) {
		var mask uint32
		if ref := arg.String(); ref != "" {
			m, err := wm.tagset.Resolve(ref)
			if err != nil {
				return nil, err
			}
			mask = m
		}
		return func(wm *Manager, clicked uint32) {
			if mask != 0 {
				f(wm, mask)
			} else {
				f(wm, clicked)
			}
		}, nil
	}
}

func (wm *Manager) compileAction(name string, arg config.Arg) (command, error) {
	a, ok := actions[name]
	if !ok {
		return nil, fmt.Errorf("unknown action %q", name)
	}
	return a(wm, arg)
}

// compileBindings resolves the configured keys and buttons against the
// current keyboard mapping.
func (wm *Manager) compileBindings() error {
	var keys []keyBinding
	var buttons []buttonBinding
	var errs []error
	for _, k := range wm.cfg.AllKeys() {
		cmd, err := wm.compileAction(k.Action, k.Arg)
		if err != nil {
			errs = append(errs, fmt.Errorf("key %s: %w", k.Key, err))
			continue
		}
		kb := keyBinding{key: k.Key, cmd: cmd}
		if wm.dpy != nil {
			kb.mods, kb.codes, err = wm.dpy.ParseKey(k.Key)
			if err != nil {
				wm.log.Warnf("key %s: %v", k.Key, err)
				continue
			}
		}
		keys = append(keys, kb)
	}
	for _, b := range wm.cfg.Buttons {
		cmd, err := wm.compileAction(b.Action, b.Arg)
		if err != nil {
			errs = append(errs, fmt.Errorf("button %s in %s: %w", b.Button, b.Click, err))
			continue
		}
		bb := buttonBinding{click: clickRegions[b.Click], cmd: cmd}
		if wm.dpy != nil {
			bb.mods, bb.button, err = wm.dpy.ParseButton(b.Button)
			if err != nil {
				errs = append(errs, fmt.Errorf("button %s: %w", b.Button, err))
				continue
			}
		}
		buttons = append(buttons, bb)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	wm.keys, wm.buttons = keys, buttons
	if wm.dpy != nil {
		wm.numlock = wm.dpy.NumlockMask()
	}
	return nil
}

// CheckBindings compiles the bindings of cfg without a display, so that
// unknown actions and malformed arguments are reported.
func CheckBindings(cfg *config.Config) error {
	_, err := New(cfg, Options{})
	return err
}

const modMask = xp.ModMaskShift | xp.ModMaskControl | xp.ModMask1 |
	xp.ModMask2 | xp.ModMask3 | xp.ModMask4 | xp.ModMask5

// cleanMask drops the lock modifiers from a key or button state.
func (wm *Manager) cleanMask(state uint16) uint16 {
	return state &^ (wm.numlock | xp.ModMaskLock) & modMask
}

func (wm *Manager) grabKeys() {
	var grabs []KeyGrab
	for _, k := range wm.keys {
		for _, code := range k.codes {
			grabs = append(grabs, KeyGrab{Mods: k.mods, Code: code})
		}
	}
	wm.dpy.GrabKeys(grabs)
}
