// Package config loads the window manager's YAML configuration document.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document.
type Config struct {
	BorderPx  int  `yaml:"borderPx"`
	Snap      int  `yaml:"snap"`
	BarHeight int  `yaml:"barHeight"`
	ShowBar   bool `yaml:"showBar"`
	TopBar    bool `yaml:"topBar"`

	MFact       float64 `yaml:"mfact"`
	NMaster     int     `yaml:"nmaster"`
	ResizeHints bool    `yaml:"resizeHints"`
	// LockFullscreen keeps focus on a fullscreen client when the pointer
	// or the keyboard would move it elsewhere on the same monitor.
	LockFullscreen bool `yaml:"lockFullscreen"`
	// LoseFullscreen drops a fullscreen client out of fullscreen when focus
	// moves to a tiled client on the same monitor.
	LoseFullscreen bool     `yaml:"loseFullscreen"`
	Attach         string   `yaml:"attach"`
	Layouts        []string `yaml:"layouts"`

	Tags []string `yaml:"tags"`
	// ViewSameTagTogglesPrevious makes viewing the current tags switch to
	// the previous tag set instead of doing nothing.
	ViewSameTagTogglesPrevious bool `yaml:"viewSameTagTogglesPrevious"`
	// FocusOnActivate makes a _NET_ACTIVE_WINDOW request view and focus the
	// client instead of marking it urgent.
	FocusOnActivate bool   `yaml:"focusOnActivate"`
	RuleMatch       string `yaml:"ruleMatch"`

	Colors      Colors             `yaml:"colors"`
	Rules       []RuleConfig       `yaml:"rules"`
	Scratchpads []ScratchpadConfig `yaml:"scratchpads"`
	// TagKeys is the modifier prefix for the generated per-tag bindings
	// (view, toggleview, tag, toggletag on keys 1 to 9). Empty disables them.
	TagKeys   string         `yaml:"tagKeys"`
	Keys      []KeyConfig    `yaml:"keys"`
	Buttons   []ButtonConfig `yaml:"buttons"`
	Autostart [][]string     `yaml:"autostart,omitempty"`
	XSettings []XSetting     `yaml:"xsettings,omitempty"`
}

// Colors are "#rrggbb" strings.
type Colors struct {
	NormFg     string `yaml:"normFg"`
	NormBg     string `yaml:"normBg"`
	NormBorder string `yaml:"normBorder"`
	SelFg      string `yaml:"selFg"`
	SelBg      string `yaml:"selBg"`
	SelBorder  string `yaml:"selBorder"`
	UrgBorder  string `yaml:"urgBorder"`
}

// RuleConfig places matching new windows. Empty patterns match anything;
// non-empty patterns match as substrings.
type RuleConfig struct {
	Class          string   `yaml:"class"`
	Instance       string   `yaml:"instance"`
	Title          string   `yaml:"title"`
	Role           string   `yaml:"role"`
	WindowType     string   `yaml:"windowType"`
	Tags           []string `yaml:"tags,omitempty"`
	Floating       bool     `yaml:"floating"`
	FakeFullscreen bool     `yaml:"fakeFullscreen"`
	Center         bool     `yaml:"center"`
	Sticky         bool     `yaml:"sticky"`
	// Monitor is the target monitor index, or -1 for the selected one.
	Monitor    int    `yaml:"monitor"`
	Scratchpad string `yaml:"scratchpad"`
}

// UnmarshalYAML defaults Monitor to -1 when it is absent.
func (r *RuleConfig) UnmarshalYAML(value *yaml.Node) error {
	type rawRule RuleConfig
	raw := rawRule{Monitor: -1}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*r = RuleConfig(raw)
	return nil
}

// ScratchpadConfig names a scratchpad window. Command is spawned when no
// client is assigned to the scratchpad yet.
type ScratchpadConfig struct {
	Name    string   `yaml:"name"`
	Command []string `yaml:"command"`
}

// KeyConfig binds a key combination such as "Mod4-Shift-Return".
type KeyConfig struct {
	Key    string `yaml:"key"`
	Action string `yaml:"action"`
	Arg    Arg    `yaml:"arg,omitempty"`
}

// ButtonConfig binds a button combination such as "Mod4-1" in a click
// region: tag, layout, title, status, client or root.
type ButtonConfig struct {
	Click  string `yaml:"click"`
	Button string `yaml:"button"`
	Action string `yaml:"action"`
	Arg    Arg    `yaml:"arg,omitempty"`
}

// DefaultPath returns $XDG_CONFIG_HOME/tagwm/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "tagwm", "config.yaml")
}

// Load reads and validates the document at path. A missing file yields the
// defaults.
func Load(path string) (*Config, []byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		return cfg, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, data, err
	}
	return cfg, data, nil
}

// Parse decodes a document over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal serializes the configuration back to YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// AllKeys returns the configured key bindings followed by the generated
// per-tag bindings.
func (c *Config) AllKeys() []KeyConfig {
	keys := append([]KeyConfig(nil), c.Keys...)
	if c.TagKeys == "" {
		return keys
	}
	for i := range c.Tags {
		if i >= 9 {
			break
		}
		n := strconv.Itoa(i + 1)
		tag := Arg{n}
		keys = append(keys,
			KeyConfig{Key: c.TagKeys + "-" + n, Action: "view", Arg: tag},
			KeyConfig{Key: c.TagKeys + "-Control-" + n, Action: "toggleview", Arg: tag},
			KeyConfig{Key: c.TagKeys + "-Shift-" + n, Action: "tag", Arg: tag},
			KeyConfig{Key: c.TagKeys + "-Control-Shift-" + n, Action: "toggletag", Arg: tag},
		)
	}
	return keys
}
