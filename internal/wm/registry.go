package wm

import (
	xp "github.com/BurntSushi/xgb/xproto"

	"github.com/nigeltao/tagwm/internal/config"
)

// registry owns every managed client. Clients live in an arena indexed by
// Handle; monitors keep ordered Handle lists into it.
type registry struct {
	arena []*Client
	free  []Handle
	byWin map[xp.Window]Handle
}

func newRegistry() *registry {
	// Slot 0 is the nil handle.
	return &registry{arena: []*Client{nil}, byWin: map[xp.Window]Handle{}}
}

func (r *registry) add(c *Client) Handle {
	var h Handle
	if n := len(r.free); n > 0 {
		h, r.free = r.free[n-1], r.free[:n-1]
		r.arena[h] = c
	} else {
		h = Handle(len(r.arena))
		r.arena = append(r.arena, c)
	}
	c.handle = h
	r.byWin[c.win] = h
	return h
}

func (r *registry) remove(h Handle) {
	c := r.get(h)
	if c == nil {
		return
	}
	delete(r.byWin, c.win)
	r.arena[h] = nil
	r.free = append(r.free, h)
}

func (r *registry) get(h Handle) *Client {
	if h == 0 || int(h) >= len(r.arena) {
		return nil
	}
	return r.arena[h]
}

func (r *registry) byWindow(win xp.Window) *Client {
	return r.get(r.byWin[win])
}

func (r *registry) len() int { return len(r.byWin) }

func indexOf(list []Handle, h Handle) int {
	for i, x := range list {
		if x == h {
			return i
		}
	}
	return -1
}

func insertAt(list []Handle, i int, h Handle) []Handle {
	list = append(list, 0)
	copy(list[i+1:], list[i:])
	list[i] = h
	return list
}

func removeHandle(list []Handle, h Handle) []Handle {
	if i := indexOf(list, h); i >= 0 {
		return append(list[:i], list[i+1:]...)
	}
	return list
}

// attach inserts c into its monitor's client list following the attach
// policy.
func (wm *Manager) attach(c *Client) {
	m := c.mon
	i := 0
	switch wm.cfg.Attach {
	case config.AttachBack:
		i = len(m.clients)
	case config.AttachAside:
		n := 0
		for i < len(m.clients) && n < m.nmaster {
			if x := wm.reg.get(m.clients[i]); !x.floating && x.visible() {
				n++
			}
			i++
		}
	case config.AttachAbove, config.AttachBelow:
		if m.sel != nil && m.sel != c && !m.sel.floating {
			if j := indexOf(m.clients, m.sel.handle); j >= 0 {
				i = j
				if wm.cfg.Attach == config.AttachBelow {
					i++
				}
			}
		}
	}
	m.clients = insertAt(m.clients, i, c.handle)
}

// attachEnd appends c to the end of its monitor's client list.
func (wm *Manager) attachEnd(c *Client) {
	c.mon.clients = append(c.mon.clients, c.handle)
}

func (wm *Manager) detach(c *Client) {
	c.mon.clients = removeHandle(c.mon.clients, c.handle)
}

func (wm *Manager) attachStack(c *Client) {
	c.mon.stack = insertAt(c.mon.stack, 0, c.handle)
}

// detachStack removes c from the focus stack. If c was selected, the most
// recently focused visible client takes its place.
func (wm *Manager) detachStack(c *Client) {
	m := c.mon
	m.stack = removeHandle(m.stack, c.handle)
	if m.sel == c {
		m.sel = wm.firstVisibleInStack(m)
	}
}

func (wm *Manager) firstVisibleInStack(m *Monitor) *Client {
	for _, h := range m.stack {
		if c := wm.reg.get(h); c.visible() {
			return c
		}
	}
	return nil
}

// tiled returns the visible non-floating clients of m in list order.
func (wm *Manager) tiled(m *Monitor) []*Client {
	var out []*Client
	for _, h := range m.clients {
		if c := wm.reg.get(h); !c.floating && c.visible() {
			out = append(out, c)
		}
	}
	return out
}

func (wm *Manager) clientsOf(m *Monitor) []*Client {
	out := make([]*Client, 0, len(m.clients))
	for _, h := range m.clients {
		out = append(out, wm.reg.get(h))
	}
	return out
}
