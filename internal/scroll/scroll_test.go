package scroll

import (
	"testing"
	"time"

	"github.com/ackinari/debugview/config"
)

type fakeInput struct {
	slot    int
	pressed bool
}

func (f *fakeInput) Slot() int         { return f.slot }
func (f *fakeInput) SetSlot(s int)     { f.slot = s }
func (f *fakeInput) LockPressed() bool { return f.pressed }

type fakeTimer struct {
	every     bool
	ticks     int
	fn        func()
	cancelled bool
}

type fakeSched struct {
	timers []*fakeTimer
}

func (s *fakeSched) RunAfter(ticks int, fn func()) Handle {
	t := &fakeTimer{ticks: ticks, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeSched) RunEvery(ticks int, fn func()) Handle {
	t := &fakeTimer{every: true, ticks: ticks, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeSched) Cancel(h Handle) {
	if t, ok := h.(*fakeTimer); ok {
		t.cancelled = true
	}
}

func (s *fakeSched) live() int {
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func scrollCfg() config.Scroll {
	return config.Scroll{
		Enabled:        true,
		ShiftLock:      config.ShiftLock{Enabled: true, LockSlot: true},
		FastMultiplier: 3,
		FastThreshold:  2,
		Momentum:       false,
		ScrollAmount:   1,
	}
}

func TestSlotDelta(t *testing.T) {
	cases := []struct{ old, new, want int }{
		{8, 0, 1},
		{0, 8, -1},
		{0, 4, 4},
		{4, 0, -4},
		{0, 5, -4},
		{5, 0, 4},
		{3, 3, 0},
		{2, 3, 1},
		{3, 2, -1},
	}
	for _, c := range cases {
		if got := SlotDelta(c.old, c.new); got != c.want {
			t.Fatalf("SlotDelta(%d,%d) = %d, want %d", c.old, c.new, got, c.want)
		}
	}
}

func newState(slot, total, maxScroll int) *State {
	return &State{
		CurrentSlot: slot,
		LockedSlot:  4,
		TotalLines:  total,
		MaxScroll:   maxScroll,
		Bookmarks:   map[string]int{},
	}
}

func TestProcessBasicStep(t *testing.T) {
	st := newState(0, 50, 30)
	in := &fakeInput{slot: 1}
	moved := Process(st, in, scrollCfg(), t0, nil, nil)
	if moved != 1 || st.ScrollPosition != 1 {
		t.Fatalf("moved=%d pos=%d, want 1/1", moved, st.ScrollPosition)
	}
	if st.ScrollVelocity != 1 {
		t.Fatalf("velocity = %d", st.ScrollVelocity)
	}
}

func TestProcessClampsAtBounds(t *testing.T) {
	st := newState(0, 50, 30)
	in := &fakeInput{slot: 8}
	// Backwards off the top stays at zero.
	Process(st, in, scrollCfg(), t0, nil, nil)
	if st.ScrollPosition != 0 {
		t.Fatalf("pos = %d, want clamp at 0", st.ScrollPosition)
	}
	// Drive far past the bottom.
	cfg := scrollCfg()
	cfg.ScrollAmount = 100
	in.slot = 7
	Process(st, in, cfg, t0.Add(time.Second), nil, nil)
	if st.ScrollPosition != 0 {
		t.Fatalf("pos = %d", st.ScrollPosition)
	}
	in.slot = 8
	cfg.FastThreshold = 99 // keep the base amount
	Process(st, in, cfg, t0.Add(2*time.Second), nil, nil)
	if st.ScrollPosition != 30 {
		t.Fatalf("pos = %d, want clamp at 30", st.ScrollPosition)
	}
}

func TestProcessFastThreshold(t *testing.T) {
	st := newState(0, 200, 150)
	in := &fakeInput{slot: 3}
	moved := Process(st, in, scrollCfg(), t0, nil, nil)
	// |delta| = 3 >= threshold 2, so amount = 3 * fastMultiplier 3.
	if moved != 9 || st.ScrollPosition != 9 {
		t.Fatalf("moved=%d pos=%d, want 9/9", moved, st.ScrollPosition)
	}
}

func TestProcessMomentumBonus(t *testing.T) {
	cfg := scrollCfg()
	cfg.Momentum = true
	st := newState(0, 200, 150)
	in := &fakeInput{slot: 1}
	Process(st, in, cfg, t0, nil, nil)
	// 30ms later: bonus = floor(3 - 30/50) = 2. A partial 50ms slice
	// already costs a bonus point.
	in.slot = 2
	moved := Process(st, in, cfg, t0.Add(30*time.Millisecond), nil, nil)
	if moved != 3 {
		t.Fatalf("moved = %d, want 1 + bonus 2", moved)
	}
	// Exactly 50ms later: bonus = floor(3 - 50/50) = 2.
	in.slot = 3
	moved = Process(st, in, cfg, t0.Add(80*time.Millisecond), nil, nil)
	if moved != 3 {
		t.Fatalf("moved = %d, want 1 + bonus 2", moved)
	}
	// 90ms later: bonus = floor(3 - 90/50) = 1.
	in.slot = 4
	moved = Process(st, in, cfg, t0.Add(170*time.Millisecond), nil, nil)
	if moved != 2 {
		t.Fatalf("moved = %d, want 1 + bonus 1", moved)
	}
	// Outside the window: no bonus.
	in.slot = 5
	moved = Process(st, in, cfg, t0.Add(time.Second), nil, nil)
	if moved != 1 {
		t.Fatalf("moved = %d, want 1", moved)
	}
}

func TestProcessInvert(t *testing.T) {
	cfg := scrollCfg()
	cfg.Invert = true
	st := newState(0, 50, 30)
	st.ScrollPosition = 10
	in := &fakeInput{slot: 1}
	moved := Process(st, in, cfg, t0, nil, nil)
	if moved != -1 || st.ScrollPosition != 9 {
		t.Fatalf("moved=%d pos=%d, want -1/9", moved, st.ScrollPosition)
	}
}

func TestLockSuppressesScrollAndPinsSlot(t *testing.T) {
	st := newState(2, 50, 30)
	in := &fakeInput{slot: 6, pressed: true}
	moved := Process(st, in, scrollCfg(), t0, nil, nil)
	if moved != 0 || !st.IsLocked {
		t.Fatalf("lock tick moved=%d locked=%v", moved, st.IsLocked)
	}
	if st.LockedSlot != 6 {
		t.Fatalf("locked slot = %d, want captured 6", st.LockedSlot)
	}
	// Slot drifts while locked: forced back, zero movement.
	in.slot = 1
	moved = Process(st, in, scrollCfg(), t0.Add(time.Second), nil, nil)
	if moved != 0 || in.slot != 6 {
		t.Fatalf("drift while locked: moved=%d slot=%d", moved, in.slot)
	}
	if st.ScrollPosition != 0 {
		t.Fatalf("scroll moved while locked")
	}
}

func TestUnlockAbsorbsFirstReading(t *testing.T) {
	st := newState(2, 50, 30)
	in := &fakeInput{slot: 2, pressed: true}
	Process(st, in, scrollCfg(), t0, nil, nil)
	// Release with the slot far from where it was captured.
	in.pressed = false
	in.slot = 7
	moved := Process(st, in, scrollCfg(), t0.Add(time.Second), nil, nil)
	if moved != 0 || st.ScrollPosition != 0 {
		t.Fatalf("unlock tick must not scroll: moved=%d pos=%d", moved, st.ScrollPosition)
	}
	if st.CurrentSlot != 7 {
		t.Fatalf("slot tracking not reseeded: %d", st.CurrentSlot)
	}
}

func TestScrollCueOnlyOnMovement(t *testing.T) {
	st := newState(0, 50, 0) // maxScroll 0: position can never change
	in := &fakeInput{slot: 1}
	cues := 0
	Process(st, in, scrollCfg(), t0, func() { cues++ }, nil)
	if cues != 0 {
		t.Fatalf("cue fired without movement")
	}
	st = newState(0, 50, 30)
	in = &fakeInput{slot: 1}
	Process(st, in, scrollCfg(), t0, func() { cues++ }, nil)
	if cues != 1 {
		t.Fatalf("cue count = %d", cues)
	}
}

func TestSelectionMovesCursor(t *testing.T) {
	st := newState(0, 50, 30)
	st.SelectionMode = true
	st.SelectedLine = 5
	in := &fakeInput{slot: 1}
	selCues := 0
	Process(st, in, scrollCfg(), t0, nil, func() { selCues++ })
	if st.SelectedLine != 6 {
		t.Fatalf("selected line = %d", st.SelectedLine)
	}
	if selCues != 1 {
		t.Fatalf("selection cue count = %d", selCues)
	}
	// Cursor clamps to totalLines-1.
	st.SelectedLine = 49
	in.slot = 2
	Process(st, in, scrollCfg(), t0.Add(time.Second), nil, func() { selCues++ })
	if st.SelectedLine != 49 {
		t.Fatalf("selected line = %d, want clamped 49", st.SelectedLine)
	}
	if selCues != 1 {
		t.Fatalf("cue fired without cursor movement")
	}
}

func TestToggleSelectionInitializesCursor(t *testing.T) {
	st := newState(0, 50, 30)
	st.ScrollPosition = 12
	if !ToggleSelection(st) {
		t.Fatalf("expected selection on")
	}
	if st.SelectedLine != 12 || st.CursorPosition != 0 {
		t.Fatalf("cursor init wrong: %d/%d", st.SelectedLine, st.CursorPosition)
	}
	if ToggleSelection(st) {
		t.Fatalf("expected selection off")
	}
}

func TestMoveCursor(t *testing.T) {
	st := newState(0, 3, 0)
	if MoveCursor(st, true) {
		t.Fatalf("MoveCursor outside selection mode must report false")
	}
	st.SelectionMode = true
	MoveCursor(st, true)
	MoveCursor(st, true)
	MoveCursor(st, true) // clamped at totalLines-1
	if st.SelectedLine != 2 {
		t.Fatalf("selected = %d", st.SelectedLine)
	}
	MoveCursor(st, false)
	if st.SelectedLine != 1 {
		t.Fatalf("selected = %d", st.SelectedLine)
	}
}

func TestBookmarks(t *testing.T) {
	st := newState(0, 50, 30)
	st.ScrollPosition = 4
	if got := st.SetBookmark("here", nil); got != 4 {
		t.Fatalf("SetBookmark current = %d", got)
	}
	pos := 7
	st.SetBookmark("a", &pos)
	st.ScrollPosition = 0
	if !st.GotoBookmark("a") || st.ScrollPosition != 7 {
		t.Fatalf("GotoBookmark a: pos = %d", st.ScrollPosition)
	}
	if st.GotoBookmark("missing") {
		t.Fatalf("missing bookmark must report false")
	}
	if st.ScrollPosition != 7 {
		t.Fatalf("missing bookmark must not move, pos = %d", st.ScrollPosition)
	}
	// Stored positions clamp at use time, not set time.
	far := 999
	st.SetBookmark("far", &far)
	st.GotoBookmark("far")
	if st.ScrollPosition != 30 {
		t.Fatalf("clamp on goto: pos = %d", st.ScrollPosition)
	}
	// Overwrite semantics.
	p2 := 2
	st.SetBookmark("a", &p2)
	st.GotoBookmark("a")
	if st.ScrollPosition != 2 {
		t.Fatalf("overwrite: pos = %d", st.ScrollPosition)
	}
}

func selCfg() config.Selection {
	return config.Selection{Enabled: true, Delay: 350 * time.Millisecond}
}

func TestDoublePressToggles(t *testing.T) {
	st := newState(0, 50, 30)
	sched := &fakeSched{}
	// Seed edge tracking.
	HandleDoublePress(st, false, selCfg(), t0, sched)
	// First press opens the window.
	if HandleDoublePress(st, true, selCfg(), t0.Add(50*time.Millisecond), sched) {
		t.Fatalf("single press must not toggle")
	}
	HandleDoublePress(st, false, selCfg(), t0.Add(100*time.Millisecond), sched)
	// Second press within the delay toggles.
	if !HandleDoublePress(st, true, selCfg(), t0.Add(300*time.Millisecond), sched) {
		t.Fatalf("double press should toggle selection")
	}
	if !st.SelectionMode {
		t.Fatalf("selection mode not on")
	}
}

func TestDoublePressWindowExpires(t *testing.T) {
	st := newState(0, 50, 30)
	HandleDoublePress(st, false, selCfg(), t0, nil)
	HandleDoublePress(st, true, selCfg(), t0.Add(time.Millisecond), nil)
	HandleDoublePress(st, false, selCfg(), t0.Add(10*time.Millisecond), nil)
	// Second press after the window: restarts the gesture, no toggle.
	if HandleDoublePress(st, true, selCfg(), t0.Add(time.Second), nil) {
		t.Fatalf("late press must not toggle")
	}
	if st.SelectionMode {
		t.Fatalf("selection mode must stay off")
	}
}

func TestDoublePressShowDelayTimer(t *testing.T) {
	st := newState(0, 50, 30)
	cfg := selCfg()
	cfg.ShowDelay = true
	sched := &fakeSched{}
	HandleDoublePress(st, false, cfg, t0, sched)
	HandleDoublePress(st, true, cfg, t0.Add(time.Millisecond), sched)
	if !st.ShowingDelay {
		t.Fatalf("delay indicator not showing")
	}
	if sched.live() != 1 {
		t.Fatalf("expected one pending timer, have %d", sched.live())
	}
	// Window expires via the timer callback.
	sched.timers[0].fn()
	if st.ShowingDelay {
		t.Fatalf("delay indicator must clear on expiry")
	}
	// A later press starts a fresh gesture rather than completing the old
	// one.
	HandleDoublePress(st, false, cfg, t0.Add(time.Second), sched)
	if HandleDoublePress(st, true, cfg, t0.Add(1100*time.Millisecond), sched) {
		t.Fatalf("press after expiry must not toggle")
	}
}

func TestAutoScrollDownAndClamp(t *testing.T) {
	st := newState(0, 50, 3)
	sched := &fakeSched{}
	StartAutoScroll(st, config.AutoScroll{Enabled: true, ScrollAmount: 2, Speed: 5, Direction: "down"}, sched)
	if !AutoScrolling(st) {
		t.Fatalf("timer not armed")
	}
	tick := sched.timers[0].fn
	tick()
	tick()
	tick()
	if st.ScrollPosition != 3 {
		t.Fatalf("pos = %d, want clamp at 3", st.ScrollPosition)
	}
}

func TestAutoScrollBackAndForth(t *testing.T) {
	st := newState(0, 50, 2)
	sched := &fakeSched{}
	StartAutoScroll(st, config.AutoScroll{Enabled: true, ScrollAmount: 1, Speed: 5, Direction: "backAndForth"}, sched)
	tick := sched.timers[0].fn
	tick() // 1
	tick() // hits max 2, reverses
	if st.ScrollPosition != 2 {
		t.Fatalf("pos = %d", st.ScrollPosition)
	}
	tick() // 1
	tick() // hits 0, reverses
	if st.ScrollPosition != 0 {
		t.Fatalf("pos = %d", st.ScrollPosition)
	}
	tick() // 1 again
	if st.ScrollPosition != 1 {
		t.Fatalf("pos = %d after reversal", st.ScrollPosition)
	}
}

func TestAutoScrollStartIsNoOpWhileActive(t *testing.T) {
	st := newState(0, 50, 10)
	sched := &fakeSched{}
	cfg := config.AutoScroll{Enabled: true, ScrollAmount: 1, Speed: 5, Direction: "down"}
	StartAutoScroll(st, cfg, sched)
	StartAutoScroll(st, cfg, sched)
	if len(sched.timers) != 1 {
		t.Fatalf("second start must not arm a new timer, have %d", len(sched.timers))
	}
	StopAutoScroll(st, sched)
	if AutoScrolling(st) || sched.live() != 0 {
		t.Fatalf("stop did not cancel")
	}
}

func TestStoreGetCreatesAndTouches(t *testing.T) {
	now := t0
	store := NewStore(func() time.Time { return now }, nil)
	st := store.Get("p1", 3)
	if st.CurrentSlot != 3 || st.LockedSlot != 4 {
		t.Fatalf("fresh state wrong: %+v", st)
	}
	now = now.Add(time.Minute)
	if store.Get("p1", 7) != st {
		t.Fatalf("Get must return the same state")
	}
	if !st.LastUsed.Equal(now) {
		t.Fatalf("LastUsed not touched")
	}
	if st.CurrentSlot != 3 {
		t.Fatalf("slot seed must only apply on creation")
	}
}

func TestStoreEvictIdleCancelsTimers(t *testing.T) {
	now := t0
	sched := &fakeSched{}
	store := NewStore(func() time.Time { return now }, sched)
	st := store.Get("p1", 0)
	StartAutoScroll(st, config.AutoScroll{Enabled: true, Direction: "down"}, sched)
	store.Get("p2", 0)

	now = now.Add(6 * time.Minute)
	store.Get("p2", 0) // refresh p2
	store.EvictIdle(5 * time.Minute)
	if store.Len() != 1 {
		t.Fatalf("store len = %d, want 1", store.Len())
	}
	if _, ok := store.Peek("p1"); ok {
		t.Fatalf("idle p1 not evicted")
	}
	if sched.live() != 0 {
		t.Fatalf("eviction must cancel owned timers")
	}
}

func TestStoreResetClearsNavigation(t *testing.T) {
	sched := &fakeSched{}
	store := NewStore(nil, sched)
	st := store.Get("p1", 0)
	st.ScrollPosition = 9
	st.MaxScroll = 20
	st.SelectionMode = true
	st.SelectedLine = 5
	st.IsLocked = true
	st.SetBookmark("keep", nil)
	StartAutoScroll(st, config.AutoScroll{Enabled: true, Direction: "down"}, sched)

	store.Reset("p1")
	if st.ScrollPosition != 0 || st.SelectionMode || st.IsLocked || st.ScrollVelocity != 0 {
		t.Fatalf("reset incomplete: %+v", st)
	}
	if AutoScrolling(st) || sched.live() != 0 {
		t.Fatalf("reset must cancel timers")
	}
	if _, ok := st.Bookmarks["keep"]; !ok {
		t.Fatalf("reset must keep bookmarks")
	}
}

func TestStoreRemove(t *testing.T) {
	sched := &fakeSched{}
	store := NewStore(nil, sched)
	st := store.Get("p1", 0)
	StartAutoScroll(st, config.AutoScroll{Enabled: true, Direction: "down"}, sched)
	store.Remove("p1")
	if store.Len() != 0 || sched.live() != 0 {
		t.Fatalf("remove must drop state and cancel timers")
	}
}
