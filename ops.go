package debugview

import (
	"strings"
	"time"

	"github.com/ackinari/debugview/internal/change"
	"github.com/ackinari/debugview/internal/scroll"
	"github.com/ackinari/debugview/internal/style"
)

// idleEviction is how long a viewer's state survives without activity.
const idleEviction = 5 * time.Minute

// SelectionInfo reports a viewer's selection cursor.
type SelectionInfo struct {
	SelectionMode  bool
	SelectedLine   int
	CursorPosition int
}

// ChangeRecord is one entry of a viewer's change history.
type ChangeRecord = change.Record

// SetBookmark stores a named scroll position for v. A nil position
// bookmarks the current scroll position. Returns the stored position.
func (a *API) SetBookmark(v Viewer, name string, position *int) int {
	return a.state(v).SetBookmark(name, position)
}

// GotoBookmark jumps v to a named bookmark, clamped into the current
// scroll bounds. Reports whether the bookmark existed.
func (a *API) GotoBookmark(v Viewer, name string) bool {
	return a.state(v).GotoBookmark(name)
}

// ResetScroll returns v to the top of the content, clearing lock,
// velocity and selection and cancelling any auto-scroll timer. Bookmarks
// and change history survive.
func (a *API) ResetScroll(v Viewer) {
	a.store.Reset(v.ID())
}

// CleanupStates drops the state of every viewer idle beyond the eviction
// window, cancelling owned timers first.
func (a *API) CleanupStates() {
	a.store.EvictIdle(idleEviction)
}

// SelectionInfo reports v's current selection cursor.
func (a *API) SelectionInfo(v Viewer) SelectionInfo {
	st := a.state(v)
	return SelectionInfo{
		SelectionMode:  st.SelectionMode,
		SelectedLine:   st.SelectedLine,
		CursorPosition: st.CursorPosition,
	}
}

// ToggleSelectionMode flips v's selection mode and reports the new mode.
// Entering selection parks the cursor on the first visible line.
func (a *API) ToggleSelectionMode(v Viewer) bool {
	return scroll.ToggleSelection(a.state(v))
}

// EnableSelectionMode turns selection mode on, parking the cursor on the
// first visible line.
func (a *API) EnableSelectionMode(v Viewer) bool {
	st := a.state(v)
	st.SelectionMode = true
	st.SelectedLine = st.ScrollPosition
	return true
}

// DisableSelectionMode turns selection mode off.
func (a *API) DisableSelectionMode(v Viewer) bool {
	a.state(v).SelectionMode = false
	return true
}

// MoveCursor nudges v's selection cursor one line down or up. Reports
// whether selection mode was active.
func (a *API) MoveCursor(v Viewer, down bool) bool {
	return scroll.MoveCursor(a.state(v), down)
}

// OpenTextEditor asks the prompter to edit the currently selected line of
// lines. The request is fire-and-forget: the dialog resolves on a later
// tick, may be dismissed, and only reports back through v.Message; it
// never writes into viewer state. Returns whether a dialog was requested.
func (a *API) OpenTextEditor(v Viewer, lines []string) bool {
	if a.prompt == nil {
		return false
	}
	st := a.state(v)
	if !st.SelectionMode || st.SelectedLine < 0 || st.SelectedLine >= len(lines) {
		return false
	}
	current := strings.TrimSpace(style.Strip(lines[st.SelectedLine]))
	a.prompt.Prompt(v, style.Yellow+"Text Editor - Debug", "Edit line:", current, func(value string, ok bool) {
		if ok && value != current {
			v.Message(style.Green + "Line edited: " + style.White + value)
		}
	})
	return true
}

// ChangeHistory returns v's recorded change batches, oldest first.
func (a *API) ChangeHistory(v Viewer) []ChangeRecord {
	return a.state(v).Changes.History()
}

// StopAutoScroll cancels v's auto-scroll timer if one is running.
func (a *API) StopAutoScroll(v Viewer) {
	scroll.StopAutoScroll(a.state(v), a.sched)
}
