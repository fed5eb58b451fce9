package config

// Default returns the built-in configuration.
func Default() *Config {
	term := []string{"st"}
	return &Config{
		BorderPx:       1,
		Snap:           32,
		ShowBar:        true,
		TopBar:         true,
		MFact:          0.55,
		NMaster:        1,
		ResizeHints:    true,
		LockFullscreen: true,
		LoseFullscreen: true,
		Attach:         AttachFront,
		Layouts:        []string{"tile", "float", "monocle"},
		Tags:           []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		RuleMatch:      RuleMatchAll,
		Colors: Colors{
			NormFg:     "#bbbbbb",
			NormBg:     "#222222",
			NormBorder: "#444444",
			SelFg:      "#eeeeee",
			SelBg:      "#005577",
			SelBorder:  "#005577",
			UrgBorder:  "#ff0000",
		},
		Rules: []RuleConfig{
			{Class: "Gimp", Floating: true, Monitor: -1},
			{Class: "Firefox", Tags: []string{"9"}, Monitor: -1},
			{WindowType: "dialog", Floating: true, Center: true, Monitor: -1},
			{Instance: "scratchterm", Scratchpad: "term", Floating: true, Center: true, Monitor: -1},
		},
		Scratchpads: []ScratchpadConfig{
			{Name: "term", Command: []string{"st", "-n", "scratchterm", "-g", "120x34"}},
		},
		TagKeys: "Mod4",
		Keys: []KeyConfig{
			{Key: "Mod4-p", Action: "spawn", Arg: Arg{"dmenu_run"}},
			{Key: "Mod4-Shift-Return", Action: "spawn", Arg: Arg(term)},
			{Key: "Mod4-b", Action: "togglebar"},
			{Key: "Mod4-j", Action: "focusstack", Arg: Arg{"+1"}},
			{Key: "Mod4-k", Action: "focusstack", Arg: Arg{"-1"}},
			{Key: "Mod4-i", Action: "incnmaster", Arg: Arg{"+1"}},
			{Key: "Mod4-d", Action: "incnmaster", Arg: Arg{"-1"}},
			{Key: "Mod4-h", Action: "setmfact", Arg: Arg{"-0.05"}},
			{Key: "Mod4-l", Action: "setmfact", Arg: Arg{"+0.05"}},
			{Key: "Mod4-Return", Action: "zoom"},
			{Key: "Mod4-Tab", Action: "view"},
			{Key: "Mod4-Shift-c", Action: "killclient"},
			{Key: "Mod4-t", Action: "setlayout", Arg: Arg{"tile"}},
			{Key: "Mod4-f", Action: "setlayout", Arg: Arg{"float"}},
			{Key: "Mod4-m", Action: "setlayout", Arg: Arg{"monocle"}},
			{Key: "Mod4-space", Action: "setlayout"},
			{Key: "Mod4-Shift-space", Action: "togglefloating"},
			{Key: "Mod4-Shift-f", Action: "togglefullscreen"},
			{Key: "Mod4-Shift-y", Action: "togglefakefullscreen"},
			{Key: "Mod4-s", Action: "togglesticky"},
			{Key: "Mod4-Shift-m", Action: "togglemark"},
			{Key: "Mod4-Control-m", Action: "markall"},
			{Key: "Mod4-Control-Shift-m", Action: "unmarkall"},
			{Key: "Mod4-grave", Action: "togglescratch", Arg: Arg{"term"}},
			{Key: "Mod4-0", Action: "view", Arg: Arg{"all"}},
			{Key: "Mod4-Shift-0", Action: "tag", Arg: Arg{"all"}},
			{Key: "Mod4-comma", Action: "focusmon", Arg: Arg{"-1"}},
			{Key: "Mod4-period", Action: "focusmon", Arg: Arg{"+1"}},
			{Key: "Mod4-Shift-comma", Action: "tagmon", Arg: Arg{"-1"}},
			{Key: "Mod4-Shift-period", Action: "tagmon", Arg: Arg{"+1"}},
			{Key: "Mod4-Shift-r", Action: "reload"},
			{Key: "Mod4-Shift-q", Action: "quit"},
		},
		Buttons: []ButtonConfig{
			{Click: ClickLayout, Button: "1", Action: "setlayout"},
			{Click: ClickLayout, Button: "3", Action: "setlayout", Arg: Arg{"monocle"}},
			{Click: ClickTitle, Button: "2", Action: "zoom"},
			{Click: ClickStatus, Button: "2", Action: "spawn", Arg: Arg(term)},
			{Click: ClickClient, Button: "Mod4-1", Action: "movemouse"},
			{Click: ClickClient, Button: "Mod4-2", Action: "togglefloating"},
			{Click: ClickClient, Button: "Mod4-3", Action: "resizemouse"},
			{Click: ClickTag, Button: "1", Action: "view"},
			{Click: ClickTag, Button: "3", Action: "toggleview"},
			{Click: ClickTag, Button: "Mod4-1", Action: "tag"},
			{Click: ClickTag, Button: "Mod4-3", Action: "toggletag"},
		},
	}
}
