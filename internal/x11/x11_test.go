package x11

import (
	"errors"
	"testing"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/google/go-cmp/cmp"

	"github.com/nigeltao/tagwm/internal/config"
)

func TestIgnorable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"window gone", xp.WindowError{MajorOpcode: opConfigureWindow}, true},
		{"focus on unviewable window", xp.MatchError{MajorOpcode: opSetInputFocus}, true},
		{"configure sibling mismatch", xp.MatchError{MajorOpcode: opConfigureWindow}, true},
		{"match on other request", xp.MatchError{MajorOpcode: 1}, false},
		{"text on destroyed bar", xp.DrawableError{MajorOpcode: opImageText8}, true},
		{"fill on destroyed bar", xp.DrawableError{MajorOpcode: opPolyFillRectangle}, true},
		{"drawable on other request", xp.DrawableError{MajorOpcode: 14}, false},
		{"button already grabbed", xp.AccessError{MajorOpcode: opGrabButton}, true},
		{"key already grabbed", xp.AccessError{MajorOpcode: opGrabKey}, true},
		{"redirect taken", xp.AccessError{MajorOpcode: 2}, false},
		{"value", xp.ValueError{MajorOpcode: opConfigureWindow}, false},
		{"not an x error", errors.New("boom"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Ignorable(tc.err); got != tc.want {
				t.Errorf("Ignorable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestEncodeXSettings(t *testing.T) {
	got, err := encodeXSettings([]config.XSetting{
		{Name: "Xft/DPI", Value: 96 * 1024},
		{Name: "Net/ThemeName", Value: "Adwaita"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0, 0, 0, 0, // little-endian
		0, 0, 0, 0, // serial
		2, 0, 0, 0, // count

		0, 0, // integer
		7, 0, // name length
		'X', 'f', 't', '/', 'D', 'P', 'I', 0,
		0, 0, 0, 0, // serial
		0x00, 0x80, 0x01, 0x00, // 98304

		1, 0, // string
		13, 0,
		'N', 'e', 't', '/', 'T', 'h', 'e', 'm', 'e', 'N', 'a', 'm', 'e', 0, 0, 0,
		0, 0, 0, 0,
		7, 0, 0, 0,
		'A', 'd', 'w', 'a', 'i', 't', 'a', 0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("encoding mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeXSettingsRejectsUnknownType(t *testing.T) {
	if _, err := encodeXSettings([]config.XSetting{{Name: "Gtk/Scale", Value: 1.5}}); err == nil {
		t.Fatal("expected an error for a float value")
	}
}

func TestLatin1(t *testing.T) {
	tests := []struct {
		in   string
		want []byte
	}{
		{"", []byte{}},
		{"st", []byte("st")},
		{"café", []byte{'c', 'a', 'f', 0xe9}},
		{"☃ vim", []byte("? vim")},
	}
	for _, tc := range tests {
		if diff := cmp.Diff(tc.want, latin1(tc.in)); diff != "" {
			t.Errorf("latin1(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}
