// Package scroll owns the per-viewer navigation state: scroll offset,
// lock mode, momentum, selection cursor, bookmarks, auto-scroll timers and
// the change tracker. State is mutated by exactly one writer per tick; a
// multi-threaded host must serialize access per viewer.
package scroll

import (
	"sync"
	"time"

	"github.com/ackinari/debugview/internal/change"
)

// RingSize is the number of discrete input slots. Slots wrap around, so
// moving past the last slot lands on the first.
const RingSize = 9

// Handle identifies a pending scheduler callback.
type Handle any

// Scheduler registers tick-based callbacks. No two outstanding handles may
// alias; Cancel on an already-fired or nil handle is a no-op.
type Scheduler interface {
	RunAfter(ticks int, fn func()) Handle
	RunEvery(ticks int, fn func()) Handle
	Cancel(h Handle)
}

// TickDuration is the wall-clock length of one scheduler tick, used to
// convert configured delays into tick counts.
const TickDuration = 50 * time.Millisecond

// Ticks converts a duration to whole scheduler ticks, rounding down.
func Ticks(d time.Duration) int {
	return int(d / TickDuration)
}

// State is the persistent navigation record of one viewer.
type State struct {
	CurrentSlot    int
	ScrollPosition int
	TotalLines     int
	MaxScroll      int
	LastUsed       time.Time

	IsLocked   bool
	LockedSlot int

	LastScrollTime time.Time
	ScrollVelocity int

	Bookmarks map[string]int

	SelectionMode  bool
	SelectedLine   int
	CursorPosition int

	// ShowingDelay reports an in-progress double-press gesture window for
	// the indicator strip.
	ShowingDelay bool

	Changes change.Tracker

	shiftKnown     bool
	lastShiftState bool
	lastShiftTime  time.Time
	delayTimer     Handle

	autoTimer     Handle
	autoDirection int
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// SetBookmark stores pos under name, replacing any previous position. A
// nil pos bookmarks the current scroll position. Returns the stored
// position.
func (st *State) SetBookmark(name string, pos *int) int {
	p := st.ScrollPosition
	if pos != nil {
		p = *pos
	}
	st.Bookmarks[name] = p
	return p
}

// GotoBookmark adopts the named bookmark, clamped into the current scroll
// bounds, and reports whether the name existed.
func (st *State) GotoBookmark(name string) bool {
	p, ok := st.Bookmarks[name]
	if !ok {
		return false
	}
	st.ScrollPosition = clamp(p, 0, st.MaxScroll)
	return true
}

// Store is the repository of viewer states, keyed by viewer identity.
// Holding it on the owning API keeps state lifetime and test isolation
// explicit.
type Store struct {
	mu     sync.Mutex
	states map[string]*State
	now    func() time.Time
	sched  Scheduler
}

// NewStore builds a Store. now may be nil for wall-clock time.
func NewStore(now func() time.Time, sched Scheduler) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{states: map[string]*State{}, now: now, sched: sched}
}

// Get returns the state for id, creating it on first use. slot seeds the
// slot tracking of a fresh state. LastUsed is stamped on every call.
func (s *Store) Get(id string, slot int) *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok {
		st = &State{
			CurrentSlot:   slot,
			LockedSlot:    4,
			Bookmarks:     map[string]int{},
			autoDirection: 1,
		}
		s.states[id] = st
	}
	st.LastUsed = s.now()
	return st
}

// Peek returns the state for id without creating or touching it.
func (s *Store) Peek(id string) (*State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	return st, ok
}

// Reset returns a viewer to the top of the content: position, lock,
// velocity and selection are cleared and any owned timers cancelled.
// Bookmarks and change history survive.
func (s *Store) Reset(id string) {
	s.mu.Lock()
	st, ok := s.states[id]
	s.mu.Unlock()
	if !ok {
		return
	}
	st.ScrollPosition = 0
	st.IsLocked = false
	st.ScrollVelocity = 0
	st.SelectionMode = false
	st.SelectedLine = 0
	st.CursorPosition = 0
	st.cancelTimers(s.sched)
}

// Remove deletes a viewer's state, cancelling its timers first.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	st, ok := s.states[id]
	delete(s.states, id)
	s.mu.Unlock()
	if ok {
		st.cancelTimers(s.sched)
	}
}

// EvictIdle removes every state not used within maxIdle. Timers owned by
// an evicted state are cancelled before it is dropped, so a stale timer
// can never mutate resurrected state.
func (s *Store) EvictIdle(maxIdle time.Duration) {
	cutoff := s.now().Add(-maxIdle)
	s.mu.Lock()
	var evicted []*State
	for id, st := range s.states {
		if st.LastUsed.Before(cutoff) {
			evicted = append(evicted, st)
			delete(s.states, id)
		}
	}
	s.mu.Unlock()
	for _, st := range evicted {
		st.cancelTimers(s.sched)
	}
}

// Len reports the number of live states.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}

func (st *State) cancelTimers(sched Scheduler) {
	if sched == nil {
		st.autoTimer, st.delayTimer = nil, nil
		st.ShowingDelay = false
		return
	}
	if st.autoTimer != nil {
		sched.Cancel(st.autoTimer)
		st.autoTimer = nil
	}
	if st.delayTimer != nil {
		sched.Cancel(st.delayTimer)
		st.delayTimer = nil
	}
	st.ShowingDelay = false
}
