package main

import (
	"errors"
	"fmt"
	"os/exec"
	"syscall"

	"github.com/nigeltao/tagwm/internal/util"
)

// launcher starts programs in their own session so that they outlive the
// window manager and do not receive its terminal's signals.
type launcher struct {
	log *util.Logger
}

func (l launcher) Spawn(argv []string) error {
	if len(argv) == 0 {
		return errors.New("spawn: empty command")
	}
	c := exec.Command(argv[0], argv[1:]...)
	c.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := c.Start(); err != nil {
		return fmt.Errorf("could not start command %q: %w", argv, err)
	}
	l.log.Debugf("started %q as pid %d", argv, c.Process.Pid)
	go func() {
		// Ignore any error from the program itself.
		c.Wait()
	}()
	return nil
}
