package style

import (
	"strings"
	"testing"
)

func TestStripRemovesCodes(t *testing.T) {
	in := "§e[§a1§e/§a2§e]§r"
	if got := Strip(in); got != "[1/2]" {
		t.Fatalf("Strip(%q) = %q", in, got)
	}
	if got := Strip("plain"); got != "plain" {
		t.Fatalf("Strip should pass plain text through, got %q", got)
	}
}

func TestVisibleLenIgnoresCodes(t *testing.T) {
	ResetCache()
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"§aabc§r", 3},
		{"§l§o§r", 0},
		{`§b"name"§f: §a"x"§f`, 11},
	}
	for _, c := range cases {
		if got := VisibleLen(c.in); got != c.want {
			t.Fatalf("VisibleLen(%q) = %d, want %d", c.in, got, c.want)
		}
		// Memoized path must agree with the first computation.
		if got := VisibleLen(c.in); got != c.want {
			t.Fatalf("memoized VisibleLen(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestVisibleLenStripInvariant(t *testing.T) {
	samples := []string{"§e{§f", "  \"a\": §61§f,", "§8···§r", "no codes at all"}
	for _, s := range samples {
		if VisibleLen(Strip(s)) != VisibleLen(s) {
			t.Fatalf("VisibleLen(Strip(%q)) != VisibleLen(%q)", s, s)
		}
		if VisibleLen(s) > len(s) {
			t.Fatalf("VisibleLen(%q) exceeds byte length", s)
		}
	}
}

func TestPad(t *testing.T) {
	if got := Pad("§aab§r", 5, " "); Strip(got) != "ab   " {
		t.Fatalf("Pad produced %q", got)
	}
	if got := Pad("abcdef", 3, " "); got != "abcdef" {
		t.Fatalf("Pad must not trim, got %q", got)
	}
}

func TestCenter(t *testing.T) {
	got := Center("§6ab§r", 7, "=")
	if VisibleLen(got) != 7 {
		t.Fatalf("centered width = %d, want 7", VisibleLen(got))
	}
	if !strings.Contains(Strip(got), "ab") {
		t.Fatalf("centered text lost content: %q", got)
	}
	// Odd padding: left gets the floor.
	if got := Center("ab", 5, "."); got != ".ab.." {
		t.Fatalf("Center split = %q, want .ab..", got)
	}
	if got := Center("abcde", 3, "."); got != "abcde" {
		t.Fatalf("Center must return wide strings unchanged, got %q", got)
	}
}

func TestMaxVisibleLen(t *testing.T) {
	if got := MaxVisibleLen(nil); got != 0 {
		t.Fatalf("MaxVisibleLen(nil) = %d", got)
	}
	if got := MaxVisibleLen([]string{"a", "§eabc§r", "ab"}); got != 3 {
		t.Fatalf("MaxVisibleLen = %d, want 3", got)
	}
}
