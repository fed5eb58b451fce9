package x11

import (
	xp "github.com/BurntSushi/xgb/xproto"
)

// Core protocol major opcodes that show up in routine errors.
const (
	opConfigureWindow   = 12
	opGrabButton        = 28
	opGrabKey           = 33
	opSetInputFocus     = 42
	opCopyArea          = 62
	opPolySegment       = 66
	opPolyFillRectangle = 70
	opPolyText8         = 74
	opImageText8        = 76
)

// Ignorable reports whether err is one a window manager provokes in the
// normal course of things, usually by talking to a window that has just
// been destroyed.
func Ignorable(err error) bool {
	switch e := err.(type) {
	case xp.WindowError:
		return true
	case xp.MatchError:
		return e.MajorOpcode == opSetInputFocus || e.MajorOpcode == opConfigureWindow
	case xp.DrawableError:
		switch e.MajorOpcode {
		case opPolyText8, opImageText8, opPolyFillRectangle, opPolySegment, opCopyArea:
			return true
		}
	case xp.AccessError:
		return e.MajorOpcode == opGrabButton || e.MajorOpcode == opGrabKey
	}
	return false
}

type checker interface {
	Check() error
}

// check queues a checked request. The queue is drained by Flush.
func (c *Conn) check(ck checker) {
	c.checkers = append(c.checkers, ck)
}

// Flush waits for every queued request and reports the failures.
func (c *Conn) Flush() {
	for i, ck := range c.checkers {
		if err := ck.Check(); err != nil {
			c.ReportError(err)
		}
		c.checkers[i] = nil
	}
	c.checkers = c.checkers[:0]
}

// ReportError logs an asynchronous or checked request error. Nothing is
// fatal once the manager is running.
func (c *Conn) ReportError(err error) {
	if Ignorable(err) {
		c.log.Debugf("x11: %v", err)
		return
	}
	c.log.Errorf("x11: %v", err)
}
