package config

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/nigeltao/tagwm/internal/layout"
)

const (
	AttachFront = "front"
	AttachBack  = "back"
	AttachAside = "aside"
	AttachAbove = "above"
	AttachBelow = "below"

	RuleMatchFirst = "first"
	RuleMatchAll   = "all"

	ClickTag    = "tag"
	ClickLayout = "layout"
	ClickTitle  = "title"
	ClickStatus = "status"
	ClickClient = "client"
	ClickRoot   = "root"
)

// MaxTags is the number of tag bits available for ordinary tags and
// scratchpads together.
const MaxTags = 31

// ErrNoTags is returned when the document defines no tags.
var ErrNoTags = errors.New("config must define at least one tag")

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate reports every problem with the document at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.BorderPx < 0 {
		add("borderPx cannot be negative")
	}
	if c.Snap < 0 {
		add("snap cannot be negative")
	}
	if c.BarHeight < 0 {
		add("barHeight cannot be negative")
	}
	if c.MFact < 0.05 || c.MFact > 0.95 {
		add("mfact must be within [0.05, 0.95], got %v", c.MFact)
	}
	if c.NMaster < 0 {
		add("nmaster cannot be negative")
	}
	switch c.Attach {
	case AttachFront, AttachBack, AttachAside, AttachAbove, AttachBelow:
	default:
		add("attach must be one of front, back, aside, above, below, got %q", c.Attach)
	}
	switch c.RuleMatch {
	case RuleMatchFirst, RuleMatchAll:
	default:
		add("ruleMatch must be first or all, got %q", c.RuleMatch)
	}
	if len(c.Layouts) == 0 {
		add("config must define at least one layout")
	}
	for _, name := range c.Layouts {
		if _, err := layout.Lookup(name); err != nil {
			errs = append(errs, err)
		}
	}

	if len(c.Tags) == 0 {
		errs = append(errs, ErrNoTags)
	}
	if n := len(c.Tags) + len(c.Scratchpads); n > MaxTags {
		add("tags and scratchpads together must not exceed %d, got %d", MaxTags, n)
	}
	scratch := map[string]struct{}{}
	for i, sp := range c.Scratchpads {
		if sp.Name == "" {
			add("scratchpads[%d]: name is required", i)
			continue
		}
		if _, dup := scratch[sp.Name]; dup {
			add("scratchpads[%d]: duplicate name %q", i, sp.Name)
		}
		scratch[sp.Name] = struct{}{}
	}
	for i, r := range c.Rules {
		if r.Scratchpad == "" {
			continue
		}
		if _, ok := scratch[r.Scratchpad]; !ok {
			add("rules[%d]: unknown scratchpad %q", i, r.Scratchpad)
		}
	}

	for name, v := range map[string]string{
		"normFg": c.Colors.NormFg, "normBg": c.Colors.NormBg, "normBorder": c.Colors.NormBorder,
		"selFg": c.Colors.SelFg, "selBg": c.Colors.SelBg, "selBorder": c.Colors.SelBorder,
		"urgBorder": c.Colors.UrgBorder,
	} {
		if !colorPattern.MatchString(v) {
			add("colors.%s must look like #rrggbb, got %q", name, v)
		}
	}

	for i, k := range c.Keys {
		if k.Key == "" || k.Action == "" {
			add("keys[%d]: key and action are required", i)
		}
	}
	for i, b := range c.Buttons {
		switch b.Click {
		case ClickTag, ClickLayout, ClickTitle, ClickStatus, ClickClient, ClickRoot:
		default:
			add("buttons[%d]: unknown click region %q", i, b.Click)
		}
		if b.Button == "" || b.Action == "" {
			add("buttons[%d]: button and action are required", i)
		}
	}
	for i, cmd := range c.Autostart {
		if len(cmd) == 0 {
			add("autostart[%d]: empty command", i)
		}
	}
	return errors.Join(errs...)
}

// ParseColor converts "#rrggbb" into a 24-bit pixel value.
func ParseColor(s string) (uint32, error) {
	if !colorPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}
