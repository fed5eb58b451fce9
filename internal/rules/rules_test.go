package rules

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nigeltao/tagwm/internal/config"
)

var testTags = Tagset{
	Names:   []string{"www", "dev", "chat", "4"},
	Scratch: []string{"term", "music"},
}

func TestTagsetBits(t *testing.T) {
	if got := testTags.Mask(); got != 0b1111 {
		t.Fatalf("Mask = %b", got)
	}
	if got := testTags.ScratchBit("music"); got != 1<<5 {
		t.Fatalf("ScratchBit(music) = %b", got)
	}
	if got := testTags.ScratchMask(); got != 0b110000 {
		t.Fatalf("ScratchMask = %b", got)
	}
	if testTags.Mask()&testTags.ScratchMask() != 0 {
		t.Fatalf("scratch bits must not overlap ordinary tags")
	}
	for ref, want := range map[string]uint32{"dev": 0b10, "3": 0b100, "4": 0b1000, "all": 0b1111} {
		got, err := testTags.Resolve(ref)
		if err != nil || got != want {
			t.Fatalf("Resolve(%q) = %b, %v; want %b", ref, got, err, want)
		}
	}
	if _, err := testTags.Resolve("9"); err == nil {
		t.Fatalf("expected out-of-range tag number to fail")
	}
}

func compile(t *testing.T, rcs []config.RuleConfig) []Rule {
	t.Helper()
	rs, err := Compile(rcs, testTags)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return rs
}

func TestApply(t *testing.T) {
	rs := compile(t, []config.RuleConfig{
		{Class: "Firefox", Tags: []string{"www"}, Monitor: -1},
		{Title: "Picture-in-Picture", Floating: true, Sticky: true, Monitor: 1},
		{WindowType: "dialog", Floating: true, Center: true, Monitor: -1},
		{Instance: "scratchterm", Scratchpad: "term", Floating: true, Monitor: -1},
	})

	tests := []struct {
		name      string
		props     Props
		firstOnly bool
		want      Result
	}{
		{
			name:  "no match",
			props: Props{Class: "XTerm", Instance: "xterm"},
			want:  Result{Monitor: -1},
		},
		{
			name:  "class substring",
			props: Props{Class: "Firefox-esr", Title: "Mozilla"},
			want:  Result{Tags: 0b1, Monitor: -1, Matched: 1},
		},
		{
			name:  "all matches accumulate",
			props: Props{Class: "Firefox", Title: "Picture-in-Picture"},
			want:  Result{Tags: 0b1, Floating: true, Sticky: true, Monitor: 1, Matched: 2},
		},
		{
			name:      "first match only",
			props:     Props{Class: "Firefox", Title: "Picture-in-Picture"},
			firstOnly: true,
			want:      Result{Tags: 0b1, Monitor: -1, Matched: 1},
		},
		{
			name:  "window type",
			props: Props{Class: "Gimp", Types: []string{"_NET_WM_WINDOW_TYPE_DIALOG"}},
			want:  Result{Floating: true, Center: true, Monitor: -1, Matched: 1},
		},
		{
			name:  "scratchpad",
			props: Props{Class: "St", Instance: "scratchterm"},
			want:  Result{Tags: 1 << 4, Floating: true, Monitor: -1, Matched: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(rs, tt.props, tt.firstOnly)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Apply mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := Compile([]config.RuleConfig{{Tags: []string{"nope"}}}, testTags)
	if err == nil || !strings.Contains(err.Error(), `unknown tag "nope"`) {
		t.Fatalf("expected unknown tag error, got %v", err)
	}
	_, err = Compile([]config.RuleConfig{{Scratchpad: "nope"}}, testTags)
	if err == nil || !strings.Contains(err.Error(), "unknown scratchpad") {
		t.Fatalf("expected unknown scratchpad error, got %v", err)
	}
}
