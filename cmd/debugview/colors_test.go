package main

import (
	"strings"
	"testing"

	"github.com/ackinari/debugview"
)

func TestTranslatePlainDropsCodes(t *testing.T) {
	in := "§e[LOCK]§r plain §a\"ok\"§r"
	got := translate(in, true)
	if strings.ContainsRune(got, '§') {
		t.Fatalf("codes left behind: %q", got)
	}
	if got != `[LOCK] plain "ok"` {
		t.Fatalf("got %q", got)
	}
}

func TestTranslateUnknownCodeIsDropped(t *testing.T) {
	if got := translate("§zx", true); got != "x" {
		t.Fatalf("got %q", got)
	}
}

func TestTranslateTrailingMarkerKept(t *testing.T) {
	if got := translate("abc§", true); got != "abc§" {
		t.Fatalf("got %q", got)
	}
}

func TestSchedulerOneShot(t *testing.T) {
	s := newTickScheduler()
	fired := 0
	s.RunAfter(2, func() { fired++ })
	s.Advance()
	if fired != 0 {
		t.Fatalf("fired early")
	}
	s.Advance()
	s.Advance()
	if fired != 1 {
		t.Fatalf("fired = %d, want exactly once", fired)
	}
}

func TestSchedulerRepeatAndCancel(t *testing.T) {
	s := newTickScheduler()
	fired := 0
	h := s.RunEvery(1, func() { fired++ })
	s.Advance()
	s.Advance()
	if fired != 2 {
		t.Fatalf("fired = %d", fired)
	}
	s.Cancel(h)
	s.Advance()
	if fired != 2 {
		t.Fatalf("cancelled timer fired")
	}
}

func TestSchedulerCancelFromCallback(t *testing.T) {
	s := newTickScheduler()
	fired := 0
	var victim debugview.Handle
	s.RunEvery(1, func() { s.Cancel(victim) })
	victim = s.RunEvery(1, func() { fired++ })
	s.Advance()
	s.Advance()
	if fired > 1 {
		t.Fatalf("timer survived a cancel from another callback: %d", fired)
	}
}
