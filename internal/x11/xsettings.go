package x11

import (
	"bytes"
	"fmt"

	xp "github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/nigeltao/tagwm/internal/config"
)

// announceXSettings takes the XSETTINGS selection of the default screen
// and publishes the settings. GTK+ programs read their font and theme
// parameters from it. Leaving the list empty lets another program, such as
// gnome-settings-daemon, own it instead.
func (c *Conn) announceXSettings(settings []config.XSetting) error {
	encoded, err := encodeXSettings(settings)
	if err != nil {
		return err
	}
	sel, err := xprop.Atm(c.xu, fmt.Sprintf("_XSETTINGS_S%d", c.xu.Conn().DefaultScreen))
	if err != nil {
		return err
	}
	if err := xp.SetSelectionOwnerChecked(c.xu.Conn(), c.support, sel,
		xp.TimeCurrentTime).Check(); err != nil {
		return err
	}
	return xprop.ChangeProp(c.xu, c.support, 8, "_XSETTINGS_SETTINGS", "_XSETTINGS_SETTINGS", encoded)
}

func encodeXSettings(settings []config.XSetting) ([]byte, error) {
	b := new(bytes.Buffer)
	b.WriteString("\x00\x00\x00\x00") // Zero means little-endian.
	b.WriteString("\x00\x00\x00\x00") // Serial number.
	writeUint32(b, uint32(len(settings)))
	for _, s := range settings {
		switch s.Value.(type) {
		case int:
			b.WriteString("\x00\x00")
		case string:
			b.WriteString("\x01\x00")
		default:
			return nil, fmt.Errorf("xsetting %q: unsupported type %T", s.Name, s.Value)
		}
		writeUint16(b, uint16(len(s.Name)))
		b.WriteString(s.Name)
		pad(b, len(s.Name))
		b.WriteString("\x00\x00\x00\x00") // Serial number.
		switch v := s.Value.(type) {
		case int:
			writeUint32(b, uint32(v))
		case string:
			writeUint32(b, uint32(len(v)))
			b.WriteString(v)
			pad(b, len(v))
		}
	}
	return b.Bytes(), nil
}

func pad(b *bytes.Buffer, n int) {
	if x := n % 4; x != 0 {
		b.WriteString("\x00\x00\x00\x00"[:4-x])
	}
}

func writeUint16(b *bytes.Buffer, u uint16) {
	b.WriteByte(byte(u >> 0))
	b.WriteByte(byte(u >> 8))
}

func writeUint32(b *bytes.Buffer, u uint32) {
	b.WriteByte(byte(u >> 0))
	b.WriteByte(byte(u >> 8))
	b.WriteByte(byte(u >> 16))
	b.WriteByte(byte(u >> 24))
}
