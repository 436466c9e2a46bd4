package main

import "github.com/ackinari/debugview"

type tickTimer struct {
	remaining int
	every     int
	fn        func()
}

// tickScheduler drives the renderer's timers off the TUI tick loop. One
// Advance call equals one scheduler tick.
type tickScheduler struct {
	timers map[*tickTimer]struct{}
}

func newTickScheduler() *tickScheduler {
	return &tickScheduler{timers: map[*tickTimer]struct{}{}}
}

func (s *tickScheduler) RunAfter(ticks int, fn func()) debugview.Handle {
	if ticks < 1 {
		ticks = 1
	}
	t := &tickTimer{remaining: ticks, fn: fn}
	s.timers[t] = struct{}{}
	return t
}

func (s *tickScheduler) RunEvery(ticks int, fn func()) debugview.Handle {
	if ticks < 1 {
		ticks = 1
	}
	t := &tickTimer{remaining: ticks, every: ticks, fn: fn}
	s.timers[t] = struct{}{}
	return t
}

func (s *tickScheduler) Cancel(h debugview.Handle) {
	if t, ok := h.(*tickTimer); ok {
		delete(s.timers, t)
	}
}

// Advance moves every timer one tick and fires the due ones. Callbacks
// run after the sweep so a firing timer can safely cancel others.
func (s *tickScheduler) Advance() {
	var due []func()
	for t := range s.timers {
		t.remaining--
		if t.remaining > 0 {
			continue
		}
		due = append(due, t.fn)
		if t.every > 0 {
			t.remaining = t.every
		} else {
			delete(s.timers, t)
		}
	}
	for _, fn := range due {
		fn()
	}
}
