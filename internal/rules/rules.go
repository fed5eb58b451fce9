// Package rules compiles the configured window rules and matches them
// against the properties of a newly managed window.
package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nigeltao/tagwm/internal/config"
)

// Props are the identifying properties of a window at manage time.
type Props struct {
	Class, Instance string
	Title           string
	Role            string
	// Types are _NET_WM_WINDOW_TYPE atom names.
	Types []string
}

// Rule is a compiled RuleConfig.
type Rule struct {
	Class, Instance, Title, Role string
	WindowType                   string
	Tags                         uint32
	Floating                     bool
	FakeFullscreen               bool
	Center                       bool
	Sticky                       bool
	Monitor                      int
	Scratch                      uint32
}

// Result is what the matching rules decided for a window. A zero Tags means
// no rule chose any.
type Result struct {
	Tags           uint32
	Floating       bool
	FakeFullscreen bool
	Center         bool
	Sticky         bool
	Monitor        int
	Matched        int
}

// Tagset maps tag and scratchpad names to bits.
type Tagset struct {
	Names   []string
	Scratch []string
}

// Mask returns the bits of the ordinary tags.
func (ts Tagset) Mask() uint32 {
	return 1<<uint(len(ts.Names)) - 1
}

// ScratchBit returns the tag bit of the named scratchpad, or 0.
func (ts Tagset) ScratchBit(name string) uint32 {
	for i, s := range ts.Scratch {
		if s == name {
			return 1 << uint(len(ts.Names)+i)
		}
	}
	return 0
}

// ScratchMask returns the bits of all scratchpads.
func (ts Tagset) ScratchMask() uint32 {
	return (1<<uint(len(ts.Scratch)) - 1) << uint(len(ts.Names))
}

// Resolve turns a tag reference into a mask. A reference is a tag name, a
// 1-based tag number, or "all".
func (ts Tagset) Resolve(ref string) (uint32, error) {
	if ref == "all" {
		return ts.Mask(), nil
	}
	for i, n := range ts.Names {
		if n == ref {
			return 1 << uint(i), nil
		}
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 1 && i <= len(ts.Names) {
		return 1 << uint(i-1), nil
	}
	return 0, fmt.Errorf("unknown tag %q", ref)
}

// Compile resolves tag and scratchpad names in the rule table.
func Compile(rcs []config.RuleConfig, ts Tagset) ([]Rule, error) {
	out := make([]Rule, 0, len(rcs))
	for i, rc := range rcs {
		r := Rule{
			Class:          rc.Class,
			Instance:       rc.Instance,
			Title:          rc.Title,
			Role:           rc.Role,
			WindowType:     strings.ToUpper(rc.WindowType),
			Floating:       rc.Floating,
			FakeFullscreen: rc.FakeFullscreen,
			Center:         rc.Center,
			Sticky:         rc.Sticky,
			Monitor:        rc.Monitor,
		}
		for _, ref := range rc.Tags {
			m, err := ts.Resolve(ref)
			if err != nil {
				return nil, fmt.Errorf("rules[%d]: %w", i, err)
			}
			r.Tags |= m
		}
		if rc.Scratchpad != "" {
			r.Scratch = ts.ScratchBit(rc.Scratchpad)
			if r.Scratch == 0 {
				return nil, fmt.Errorf("rules[%d]: unknown scratchpad %q", i, rc.Scratchpad)
			}
			r.Tags = r.Scratch
		}
		out = append(out, r)
	}
	return out, nil
}

// Matches reports whether every non-empty pattern of r occurs in p.
func (r Rule) Matches(p Props) bool {
	if r.Class != "" && !strings.Contains(p.Class, r.Class) {
		return false
	}
	if r.Instance != "" && !strings.Contains(p.Instance, r.Instance) {
		return false
	}
	if r.Title != "" && !strings.Contains(p.Title, r.Title) {
		return false
	}
	if r.Role != "" && !strings.Contains(p.Role, r.Role) {
		return false
	}
	if r.WindowType != "" {
		found := false
		for _, t := range p.Types {
			if strings.TrimPrefix(t, "_NET_WM_WINDOW_TYPE_") == r.WindowType {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Apply runs the rule table over p. With firstOnly, matching stops at the
// first rule that matches; otherwise later rules refine earlier ones and
// their tags accumulate.
func Apply(rules []Rule, p Props, firstOnly bool) Result {
	res := Result{Monitor: -1}
	for _, r := range rules {
		if !r.Matches(p) {
			continue
		}
		res.Matched++
		res.Floating = r.Floating
		res.FakeFullscreen = res.FakeFullscreen || r.FakeFullscreen
		res.Center = res.Center || r.Center
		res.Sticky = res.Sticky || r.Sticky
		if r.Scratch != 0 {
			res.Tags = r.Scratch
		} else {
			res.Tags |= r.Tags
		}
		if r.Monitor >= 0 {
			res.Monitor = r.Monitor
		}
		if firstOnly {
			break
		}
	}
	return res
}
