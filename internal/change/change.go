// Package change diffs successive snapshots of a rendered value and tracks
// which field paths changed recently. Paths use dotted keys with bracketed
// indices ("a.b[2].c"); the root path is the empty string.
package change

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// maxDepth bounds the structural recursion so cyclic or pathologically deep
// input reports an error instead of overflowing the stack.
const maxDepth = 64

// ErrTooDeep is returned when a snapshot nests past the supported depth.
var ErrTooDeep = errors.New("value nests too deeply to diff")

// Record is one change-history entry.
type Record struct {
	Timestamp time.Time
	Paths     []string
}

// Tracker owns the previous snapshot, the per-path highlight expiries, and
// the bounded history log for one viewer. The zero value is ready to use.
type Tracker struct {
	last    any
	expiry  map[string]time.Time
	history []Record
}

// Options configures one Detect call.
type Options struct {
	Cooldown       time.Duration
	HistoryEnabled bool
	HistoryMax     int
}

// Detect compares the previous snapshot against current, refreshes expiry
// stamps for newly changed paths, purges expired ones, and stores current
// as the next comparison base. current must be an independent normalized
// tree (maps, slices, primitives) that the caller will not mutate.
// The returned slice holds all currently active paths, sorted.
func (t *Tracker) Detect(current any, now time.Time, opts Options) ([]string, error) {
	if t.expiry == nil {
		t.expiry = map[string]time.Time{}
	}
	changed := map[string]struct{}{}
	if t.last != nil {
		if err := compare("", t.last, current, changed, 0); err != nil {
			return nil, err
		}
	}
	for p := range changed {
		t.expiry[p] = now.Add(opts.Cooldown)
	}
	for p, exp := range t.expiry {
		if now.After(exp) {
			delete(t.expiry, p)
		}
	}
	if opts.HistoryEnabled && len(changed) > 0 {
		max := opts.HistoryMax
		if max <= 0 {
			max = 10
		}
		t.history = append(t.history, Record{Timestamp: now, Paths: sortedKeys(changed)})
		if len(t.history) > max {
			t.history = t.history[len(t.history)-max:]
		}
	}
	t.last = current
	return t.Active(now), nil
}

// Active returns the non-expired paths, sorted.
func (t *Tracker) Active(now time.Time) []string {
	paths := make([]string, 0, len(t.expiry))
	for p, exp := range t.expiry {
		if !now.After(exp) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// History returns the recorded change entries, oldest first.
func (t *Tracker) History() []Record {
	return t.history
}

// Reset drops the snapshot, expiries and history.
func (t *Tracker) Reset() {
	t.last = nil
	t.expiry = nil
	t.history = nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type kind int

const (
	kindNull kind = iota
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
)

func kindOf(v any) kind {
	switch v.(type) {
	case nil:
		return kindNull
	case bool:
		return kindBool
	case float64:
		return kindNumber
	case string:
		return kindString
	case []any:
		return kindArray
	case map[string]any:
		return kindObject
	default:
		// Normalized trees only contain the kinds above; anything else is
		// treated as an opaque scalar.
		return kindString
	}
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func compare(path string, old, new any, changed map[string]struct{}, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w (path %q)", ErrTooDeep, path)
	}
	if kindOf(old) != kindOf(new) {
		changed[path] = struct{}{}
		return nil
	}
	switch nv := new.(type) {
	case []any:
		ov := old.([]any)
		if len(ov) != len(nv) {
			changed[path] = struct{}{}
		}
		n := len(ov)
		if len(nv) > n {
			n = len(nv)
		}
		for i := 0; i < n; i++ {
			var oe, ne any
			if i < len(ov) {
				oe = ov[i]
			}
			if i < len(nv) {
				ne = nv[i]
			}
			if err := compare(fmt.Sprintf("%s[%d]", path, i), oe, ne, changed, depth+1); err != nil {
				return err
			}
		}
	case map[string]any:
		ov := old.(map[string]any)
		if len(ov) != len(nv) {
			changed[path] = struct{}{}
		}
		keys := map[string]struct{}{}
		for k := range ov {
			keys[k] = struct{}{}
		}
		for k := range nv {
			keys[k] = struct{}{}
		}
		for _, k := range sortedKeys(keys) {
			if err := compare(childPath(path, k), ov[k], nv[k], changed, depth+1); err != nil {
				return err
			}
		}
	default:
		if old != new {
			changed[path] = struct{}{}
		}
	}
	return nil
}
