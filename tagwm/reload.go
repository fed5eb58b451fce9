package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/thejerf/suture/v4"

	"github.com/nigeltao/tagwm/internal/config"
	"github.com/nigeltao/tagwm/internal/util"
)

const debounceWindow = 250 * time.Millisecond

// reloader re-reads the configuration file. It runs on the event
// goroutine only.
type reloader struct {
	path string
	log  *util.Logger
	// last is the last accepted document, nil when running on defaults.
	last  []byte
	apply func(*config.Config) error
}

func (r *reloader) reload(reason string) {
	r.log.Infof("%s, reloading %s", reason, r.path)
	cfg, data, err := config.Load(r.path)
	if err == nil {
		err = r.apply(cfg)
	}
	if err != nil {
		r.log.Errorf("keeping the previous configuration: %v", err)
		if data != nil {
			if diff := config.DiffSerialized(r.last, data); diff != "" {
				r.log.Infof("rejected changes:\n%s", diff)
			}
		}
		return
	}
	r.last = data
	r.log.Infof("configuration reloaded")
}

// configWatcher asks for a reload when the configuration file is written,
// created or renamed into place. Bursts of events within debounceWindow
// count once.
type configWatcher struct {
	path    string
	log     *util.Logger
	request func(ctx context.Context, reason string)
}

func (w *configWatcher) String() string { return "config watcher" }

func (w *configWatcher) Serve(ctx context.Context) error {
	target := filepath.Clean(w.path)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			w.log.Infof("not watching %s: %v", target, err)
			return suture.ErrDoNotRestart
		}
		return fmt.Errorf("watch config dir: %w", err)
	}

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("config watcher closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					<-timerCh
				}
				timer.Reset(debounceWindow)
			}
		case <-timerCh:
			timer, timerCh = nil, nil
			w.request(ctx, "config file updated")
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("config watcher closed")
			}
			w.log.Warnf("config watcher error: %v", err)
		}
	}
}

// signalListener turns SIGHUP into a reload and SIGINT or SIGTERM into a
// quit.
type signalListener struct {
	log     *util.Logger
	request func(ctx context.Context, reason string)
	quit    func(ctx context.Context)
}

func (s *signalListener) String() string { return "signal listener" }

func (s *signalListener) Serve(ctx context.Context) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-sigs:
			if sig == syscall.SIGHUP {
				s.request(ctx, "received SIGHUP")
				continue
			}
			s.log.Infof("received %s, shutting down", sig)
			s.quit(ctx)
		}
	}
}

// newSupervisor runs the background services. Their failures are logged
// and they are restarted with suture's backoff.
func newSupervisor(log *util.Logger, services ...suture.Service) *suture.Supervisor {
	sup := suture.New("tagwm", suture.Spec{
		EventHook: func(e suture.Event) {
			log.Warnf("supervisor: %s", e)
		},
	})
	for _, s := range services {
		sup.Add(s)
	}
	return sup
}
