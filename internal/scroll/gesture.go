package scroll

import (
	"time"

	"github.com/ackinari/debugview/config"
)

// HandleDoublePress tracks the lock gesture's press edges and toggles
// selection mode when two presses land within the configured delay.
// Returns true when selection mode was toggled on this tick.
//
// The very first observation only seeds edge tracking. A lone press opens
// a delay window; when ShowDelay is set a scheduler timeout clears the
// window (and the [SHIFT] indicator) if no second press arrives. A second
// press inside the window toggles; outside it the window simply restarts
// the gesture.
func HandleDoublePress(st *State, pressed bool, cfg config.Selection, now time.Time, sched Scheduler) bool {
	if !cfg.Enabled {
		return false
	}
	if !st.shiftKnown {
		st.shiftKnown = true
		st.lastShiftState = pressed
		return false
	}
	toggled := false
	if pressed && !st.lastShiftState {
		if st.lastShiftTime.IsZero() {
			st.lastShiftTime = now
			if cfg.ShowDelay && sched != nil {
				st.ShowingDelay = true
				if st.delayTimer != nil {
					sched.Cancel(st.delayTimer)
				}
				st.delayTimer = sched.RunAfter(Ticks(cfg.Delay), func() {
					st.ShowingDelay = false
					st.lastShiftTime = time.Time{}
					st.delayTimer = nil
				})
			}
		} else {
			elapsed := now.Sub(st.lastShiftTime)
			if st.delayTimer != nil && sched != nil {
				sched.Cancel(st.delayTimer)
				st.delayTimer = nil
			}
			st.ShowingDelay = false
			st.lastShiftTime = time.Time{}
			if elapsed <= cfg.Delay {
				toggled = ToggleSelection(st)
			}
		}
	}
	st.lastShiftState = pressed
	return toggled
}
