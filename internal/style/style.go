// Package style implements the format-code text model shared by every
// rendering component: a color or formatting directive is the marker rune
// '§' followed by a single code rune, and occupies zero display cells.
package style

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
)

// Marker introduces a format code. The rune after it selects the color or
// formatting directive and is never displayed.
const Marker = '§'

// Color and formatting codes understood by presentation hosts.
const (
	Black       = "§0"
	DarkBlue    = "§1"
	DarkGreen   = "§2"
	DarkAqua    = "§3"
	DarkRed     = "§4"
	DarkPurple  = "§5"
	Gold        = "§6"
	Gray        = "§7"
	DarkGray    = "§8"
	Blue        = "§9"
	Green       = "§a"
	Aqua        = "§b"
	Red         = "§c"
	LightPurple = "§d"
	Yellow      = "§e"
	White       = "§f"
	MineGold    = "§g"

	Bold   = "§l"
	Italic = "§o"
	Reset  = "§r"
)

var (
	lengthMu    sync.RWMutex
	lengthCache = map[string]int{}
)

// Strip returns s with every format code removed.
func Strip(s string) string {
	if !strings.ContainsRune(s, Marker) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	skip := false
	for _, r := range s {
		if skip {
			skip = false
			continue
		}
		if r == Marker {
			skip = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// VisibleLen returns the display-cell width of s with format codes removed.
// Results are memoized per exact string for the lifetime of the process;
// call ResetCache to drop the memo table. The cache is unbounded, which is
// an accepted tradeoff for tick-rendered content whose line variety is
// small.
func VisibleLen(s string) int {
	lengthMu.RLock()
	n, ok := lengthCache[s]
	lengthMu.RUnlock()
	if ok {
		return n
	}
	n = runewidth.StringWidth(Strip(s))
	lengthMu.Lock()
	lengthCache[s] = n
	lengthMu.Unlock()
	return n
}

// ResetCache clears the memoized visible-length table.
func ResetCache() {
	lengthMu.Lock()
	lengthCache = map[string]int{}
	lengthMu.Unlock()
}

// Pad appends fill until the visible width of s reaches width.
func Pad(s string, width int, fill string) string {
	n := width - VisibleLen(s)
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(fill, n)
}

// Center pads s on both sides with fill until its visible width reaches
// width. The left side receives the floor of the padding, the right side
// the remainder. Strings already at or past width are returned unchanged.
func Center(s string, width int, fill string) string {
	n := VisibleLen(s)
	if n >= width {
		return s
	}
	total := width - n
	left := total / 2
	return strings.Repeat(fill, left) + s + strings.Repeat(fill, total-left)
}

// MaxVisibleLen returns the largest visible width among lines, or 0 for an
// empty slice.
func MaxVisibleLen(lines []string) int {
	max := 0
	for _, l := range lines {
		if n := VisibleLen(l); n > max {
			max = n
		}
	}
	return max
}
