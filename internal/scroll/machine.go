package scroll

import (
	"time"

	"github.com/ackinari/debugview/config"
)

// Input is the discrete input device of one viewer: a slot selector that
// wraps in a ring of RingSize positions and a binary lock gesture.
type Input interface {
	Slot() int
	SetSlot(int)
	LockPressed() bool
}

// SlotDelta converts two slot readings into a signed movement, correcting
// for ring wraparound: stepping off either end of the ring is a single
// step, and any jump longer than half the ring is read as the shorter way
// around.
func SlotDelta(oldSlot, newSlot int) int {
	delta := newSlot - oldSlot
	switch {
	case oldSlot == RingSize-1 && newSlot == 0:
		return 1
	case oldSlot == 0 && newSlot == RingSize-1:
		return -1
	case delta > RingSize/2:
		return delta - RingSize
	case delta < -(RingSize / 2):
		return delta + RingSize
	}
	return delta
}

// momentumWindow is how recently the previous scroll must have happened
// for a velocity bonus to apply.
const momentumWindow = 100 * time.Millisecond

// Process runs one tick of the scroll state machine and returns the signed
// movement applied. The stored state is authoritative; the return value is
// diagnostic. scrollCue and selectCue fire when the scroll position or the
// selection cursor actually moved; either may be nil.
func Process(st *State, in Input, cfg config.Scroll, now time.Time, scrollCue, selectCue func()) int {
	currentSlot := in.Slot()
	shouldLock := cfg.ShiftLock.Enabled && (in.LockPressed() != cfg.ShiftLock.Invert)
	if shouldLock {
		if !st.IsLocked {
			st.IsLocked = true
			if cfg.ShiftLock.LockSlot {
				st.LockedSlot = currentSlot
			}
		}
		if cfg.ShiftLock.LockSlot {
			in.SetSlot(st.LockedSlot)
		}
		return 0
	}
	if st.IsLocked {
		// Leaving lock absorbs the first slot reading so unlocking never
		// scrolls.
		st.IsLocked = false
		st.CurrentSlot = currentSlot
	}
	if st.CurrentSlot == currentSlot {
		return 0
	}
	delta := SlotDelta(st.CurrentSlot, currentSlot)
	if cfg.Invert {
		delta = -delta
	}
	abs := delta
	direction := 1
	if delta < 0 {
		abs = -delta
		direction = -1
	}
	amount := abs * cfg.ScrollAmount
	if abs >= cfg.FastThreshold {
		amount = abs * cfg.FastMultiplier
	}
	if cfg.Momentum {
		if elapsed := now.Sub(st.LastScrollTime); elapsed < momentumWindow {
			// floor(3 - elapsed/50ms), so any partial 50ms already costs
			// a bonus point.
			if bonus := 3 - int((elapsed.Milliseconds()+49)/50); bonus > 0 {
				amount += bonus
			}
		}
	}
	st.CurrentSlot = currentSlot
	oldPos := st.ScrollPosition
	st.ScrollPosition = clamp(st.ScrollPosition+direction*amount, 0, st.MaxScroll)
	st.LastScrollTime = now
	st.ScrollVelocity = amount
	if st.SelectionMode {
		oldSel := st.SelectedLine
		st.SelectedLine = clamp(st.SelectedLine+direction*amount, 0, st.TotalLines-1)
		if st.SelectedLine != oldSel && selectCue != nil {
			selectCue()
		}
	} else if st.ScrollPosition != oldPos && scrollCue != nil {
		scrollCue()
	}
	return direction * amount
}

// ToggleSelection flips selection mode. Entering it parks the cursor on
// the first visible line and reports the new mode.
func ToggleSelection(st *State) bool {
	st.SelectionMode = !st.SelectionMode
	if st.SelectionMode {
		st.SelectedLine = st.ScrollPosition
		st.CursorPosition = 0
	}
	return st.SelectionMode
}

// MoveCursor nudges the selection cursor one line and reports whether
// selection mode was active.
func MoveCursor(st *State, down bool) bool {
	if !st.SelectionMode {
		return false
	}
	if down {
		if st.SelectedLine < st.TotalLines-1 {
			st.SelectedLine++
		}
	} else if st.SelectedLine > 0 {
		st.SelectedLine--
	}
	return true
}
