package main

import (
	"errors"
	"testing"
	"time"

	"github.com/BurntSushi/xgb"
	xp "github.com/BurntSushi/xgb/xproto"
)

// feedSource hands out the events written to feed. A closed feed reads as
// a lost connection.
type feedSource struct {
	feed    chan xgb.Event
	flushes int
	errs    []error
}

func (s *feedSource) WaitForEvent() (xgb.Event, xgb.Error) {
	e, ok := <-s.feed
	if !ok {
		return nil, nil
	}
	return e, nil
}

func (s *feedSource) Flush()                { s.flushes++ }
func (s *feedSource) ReportError(err error) { s.errs = append(s.errs, err) }

// countingHandler stops after handling limit events.
type countingHandler struct {
	handled []xgb.Event
	limit   int
}

func (h *countingHandler) Running() bool       { return len(h.handled) < h.limit }
func (h *countingHandler) Handle(ev xgb.Event) { h.handled = append(h.handled, ev) }

func TestLoopStopsPumpOnQuit(t *testing.T) {
	src := &feedSource{feed: make(chan xgb.Event)}
	h := &countingHandler{limit: 1}
	done := make(chan error, 1)
	go func() { done <- loop(h, src, nil) }()

	src.feed <- xp.KeyPressEvent{Detail: 10}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("loop = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not return after the handler quit")
	}
	if len(h.handled) != 1 {
		t.Fatalf("handled %d events, want 1", len(h.handled))
	}

	// The pump is still reading; the next event must not wedge it.
	select {
	case src.feed <- xp.KeyPressEvent{Detail: 11}:
	case <-time.After(5 * time.Second):
		t.Fatal("pump stopped reading")
	}
	select {
	case src.feed <- xp.KeyPressEvent{Detail: 12}:
		t.Fatal("pump kept running after the loop returned")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLoopReportsClosedDisplay(t *testing.T) {
	src := &feedSource{feed: make(chan xgb.Event)}
	close(src.feed)
	err := loop(&countingHandler{limit: 1}, src, nil)
	if !errors.Is(err, errDisplayClosed) {
		t.Fatalf("loop = %v, want errDisplayClosed", err)
	}
}

func TestLoopRunsProactiveWork(t *testing.T) {
	src := &feedSource{feed: make(chan xgb.Event)}
	h := &countingHandler{limit: 1}
	proactive := make(chan func())
	done := make(chan error, 1)
	go func() { done <- loop(h, src, proactive) }()

	ran := make(chan struct{})
	proactive <- func() {
		h.limit = 0
		close(ran)
	}
	<-ran
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("loop = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not return")
	}
	close(src.feed)
}
