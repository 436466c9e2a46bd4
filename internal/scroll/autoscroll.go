package scroll

import "github.com/ackinari/debugview/config"

// StartAutoScroll arms the repeating auto-scroll timer for st. At most one
// timer runs per viewer: starting while one is active is a no-op, so the
// existing cadence is never disturbed.
func StartAutoScroll(st *State, cfg config.AutoScroll, sched Scheduler) {
	if !cfg.Enabled || sched == nil || st.autoTimer != nil {
		return
	}
	amount := cfg.ScrollAmount
	if amount <= 0 {
		amount = 1
	}
	speed := cfg.Speed
	if speed <= 0 {
		speed = 20
	}
	switch cfg.Direction {
	case "backAndForth":
		st.autoDirection = 1
		st.autoTimer = sched.RunEvery(speed, func() {
			next := st.ScrollPosition + st.autoDirection*amount
			switch {
			case next >= st.MaxScroll:
				st.ScrollPosition = st.MaxScroll
				st.autoDirection = -1
			case next <= 0:
				st.ScrollPosition = 0
				st.autoDirection = 1
			default:
				st.ScrollPosition = next
			}
		})
	default:
		dir := 1
		if cfg.Direction == "up" {
			dir = -1
		}
		st.autoTimer = sched.RunEvery(speed, func() {
			st.ScrollPosition = clamp(st.ScrollPosition+dir*amount, 0, st.MaxScroll)
		})
	}
}

// StopAutoScroll cancels the auto-scroll timer if one is running.
func StopAutoScroll(st *State, sched Scheduler) {
	if st.autoTimer != nil && sched != nil {
		sched.Cancel(st.autoTimer)
	}
	st.autoTimer = nil
}

// AutoScrolling reports whether an auto-scroll timer is armed.
func AutoScrolling(st *State) bool {
	return st.autoTimer != nil
}
