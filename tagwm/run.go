package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb"

	"github.com/nigeltao/tagwm/internal/config"
	"github.com/nigeltao/tagwm/internal/util"
	"github.com/nigeltao/tagwm/internal/wm"
	"github.com/nigeltao/tagwm/internal/x11"
)

type xEventOrError struct {
	event xgb.Event
	error xgb.Error
}

// errDisplayClosed is returned when the server goes away under us.
var errDisplayClosed = errors.New("connection to the display was closed")

func run(opts options) error {
	log := opts.log
	cfg, data, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if data == nil {
		log.Infof("%s not found, using the built-in configuration", opts.configPath)
	}

	conn, err := x11.Connect(opts.display, log)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := conn.BecomeWM(); err != nil {
		return err
	}
	if err := conn.Init(cfg); err != nil {
		return err
	}
	bar, err := x11.NewBar(conn, x11.DefaultFont, cfg.Colors)
	if err != nil {
		return err
	}
	defer bar.Close()

	// proactiveChan carries operations that happen of the program's own
	// accord, such as a configuration reload or a quit signal. These are
	// sent to the main goroutine from other goroutines. In comparison,
	// examples of reactive operations are responding to window creation and
	// key presses.
	proactiveChan := make(chan func())

	r := &reloader{path: opts.configPath, log: log, last: data}
	m, err := wm.New(cfg, wm.Options{
		Display:  conn,
		Renderer: bar,
		Launcher: launcher{log: log},
		Log:      log,
		Version:  version,
		Reload:   func() { r.reload("reload requested") },
	})
	if err != nil {
		return err
	}
	r.apply = func(cfg *config.Config) error {
		return reconfigure(m, conn, bar, cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	send := func(ctx context.Context, f func()) {
		select {
		case proactiveChan <- f:
		case <-ctx.Done():
		}
	}
	request := func(ctx context.Context, reason string) {
		send(ctx, func() { r.reload(reason) })
	}
	sup := newSupervisor(log,
		&configWatcher{path: opts.configPath, log: log, request: request},
		&signalListener{log: log, request: request, quit: func(ctx context.Context) {
			send(ctx, m.Quit)
		}},
	)
	supDone := sup.ServeBackground(ctx)
	stop := func() {
		cancel()
		<-supDone
	}

	if err := m.Start(); err != nil {
		stop()
		return err
	}
	log.Infof("tagwm %s managing %d monitor(s)", version, len(m.Monitors()))

	err = loop(m, conn, proactiveChan)
	m.Shutdown()
	stop()
	return err
}

// eventSource is the part of the X connection the event loop uses.
type eventSource interface {
	WaitForEvent() (xgb.Event, xgb.Error)
	Flush()
	ReportError(err error)
}

// eventHandler is the part of the manager the event loop uses.
type eventHandler interface {
	Running() bool
	Handle(ev xgb.Event)
}

// loop processes X events until the manager quits.
func loop(m eventHandler, conn eventSource, proactiveChan <-chan func()) error {
	eeChan := make(chan xEventOrError)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			e, err := conn.WaitForEvent()
			if e == nil && err == nil {
				close(eeChan)
				return
			}
			select {
			case eeChan <- xEventOrError{e, err}:
			case <-done:
				return
			}
		}
	}()
	for m.Running() {
		conn.Flush()

		select {
		case f := <-proactiveChan:
			f()
		case ee, ok := <-eeChan:
			if !ok {
				return errDisplayClosed
			}
			if ee.error != nil {
				conn.ReportError(ee.error)
				continue
			}
			m.Handle(ee.event)
		}
	}
	conn.Flush()
	return nil
}

// reconfigure applies a reloaded configuration. Colors are switched first
// so that the borders repainted by Reconfigure use them, and switched back
// if the manager refuses the document.
func reconfigure(m *wm.Manager, conn *x11.Conn, bar *x11.Bar, cfg *config.Config) error {
	prev := m.Config().Colors
	setColors := func(cols config.Colors) error {
		if err := conn.SetColors(cols); err != nil {
			return err
		}
		return bar.SetColors(cols)
	}
	if err := setColors(cfg.Colors); err != nil {
		return err
	}
	if err := m.Reconfigure(cfg); err != nil {
		if restoreErr := setColors(prev); restoreErr != nil {
			return errors.Join(err, restoreErr)
		}
		return err
	}
	return nil
}

// options are the runtime settings resolved from flags and the
// environment.
type options struct {
	configPath string
	display    string
	log        *util.Logger
}

func (o options) String() string {
	return fmt.Sprintf("config=%s display=%q", o.configPath, o.display)
}
