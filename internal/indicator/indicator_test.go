package indicator

import (
	"strings"
	"testing"

	"github.com/ackinari/debugview/config"
	"github.com/ackinari/debugview/internal/style"
)

func indicatorCfg() config.Indicators {
	return config.Indicators{
		Enabled: true,
		Show: config.Show{
			Progress: config.Progress{Percentage: true, Style: "brackets"},
		},
	}
}

func TestBuildDisabledReturnsNothing(t *testing.T) {
	cfg := indicatorCfg()
	cfg.Enabled = false
	if out := Build(Status{ScrollPos: 5, MaxScroll: 10}, cfg, nil, "", 4); out != nil {
		t.Fatalf("got %q", out)
	}
}

func TestBuildPercentage(t *testing.T) {
	out := Build(Status{ScrollPos: 5, MaxScroll: 10}, indicatorCfg(), nil, "", 4)
	if len(out) != 1 || out[0] != style.Gray+"[50%]"+style.Reset {
		t.Fatalf("got %q", out)
	}
}

func TestBuildNumberJoinsPercentage(t *testing.T) {
	cfg := indicatorCfg()
	cfg.Show.Progress.Number = true
	out := Build(Status{ScrollPos: 3, MaxScroll: 12}, cfg, nil, "", 4)
	want := style.Gray + "[3/12]" + style.Reset + " " + style.Gray + "[25%]" + style.Reset
	if len(out) != 1 || out[0] != want {
		t.Fatalf("got %q\nwant %q", out, want)
	}
}

func TestBuildMinimalNumberStyle(t *testing.T) {
	cfg := indicatorCfg()
	cfg.Show.Progress.Number = true
	cfg.Show.Progress.NumberStyle = "minimal"
	cfg.Show.Progress.Percentage = false
	out := Build(Status{ScrollPos: 3, MaxScroll: 12}, cfg, nil, "", 4)
	want := style.DarkGray + "3" + style.Gray + "/" + style.DarkGray + "12" + style.Reset
	if len(out) != 1 || out[0] != want {
		t.Fatalf("got %q", out)
	}
}

func TestBuildStatusFlags(t *testing.T) {
	cfg := indicatorCfg()
	cfg.Show.Progress = config.Progress{}
	cfg.Show.ScrollVelocity = true
	out := Build(Status{
		Locked:         true,
		ScrollVelocity: 4,
		SelectionMode:  true,
		SelectedLine:   7,
		ShowingDelay:   true,
	}, cfg, nil, "", 4)
	if len(out) != 1 {
		t.Fatalf("got %q", out)
	}
	for _, part := range []string{"[LOCK]", "×4", "[SEL:7]", "[SHIFT]"} {
		if !strings.Contains(out[0], part) {
			t.Fatalf("missing %q in %q", part, out[0])
		}
	}
}

func TestBuildStatistics(t *testing.T) {
	cfg := indicatorCfg()
	cfg.Show.Progress = config.Progress{}
	cfg.Show.Statistics = true
	stats := &Stats{TotalLines: 9, ObjectKeys: 4, NestingDepth: 2}
	out := Build(Status{}, cfg, stats, "", 4)
	if len(out) != 1 || !strings.Contains(out[0], "Lines: 9 Keys: 4 Depth: 2") {
		t.Fatalf("got %q", out)
	}
}

func TestProgressBarFill(t *testing.T) {
	bar := ProgressBar(5, 10, 10, "blocks")
	if strings.Count(bar, "█") != 5 || strings.Count(bar, "─") != 5 {
		t.Fatalf("bar = %q", bar)
	}
	if !strings.HasPrefix(bar, style.Green) {
		t.Fatalf("bar color: %q", bar)
	}
}

func TestProgressBarZeroMax(t *testing.T) {
	bar := ProgressBar(0, 0, 6, "blocks")
	if bar != style.DarkGray+"──────"+style.Reset {
		t.Fatalf("bar = %q", bar)
	}
}

func TestProgressBarUnknownStyleFallsBack(t *testing.T) {
	if ProgressBar(2, 4, 8, "nope") != ProgressBar(2, 4, 8, "blocks") {
		t.Fatalf("unknown style must render as blocks")
	}
}

func TestProgressBarStyleGlyphs(t *testing.T) {
	for name, glyphs := range map[string][2]string{
		"dots":   {"●", "○"},
		"arrows": {"►", "─"},
		"retro":  {"#", "-"},
		"fire":   {"▲", "▽"},
	} {
		bar := ProgressBar(1, 2, 4, name)
		if !strings.Contains(bar, glyphs[0]) || !strings.Contains(bar, glyphs[1]) {
			t.Fatalf("style %s: bar = %q", name, bar)
		}
	}
}

func TestMiniMapCursor(t *testing.T) {
	m := MiniMap(0, 10, 5)
	if !strings.HasPrefix(m, style.DarkGray+"["+style.Green+"█") {
		t.Fatalf("cursor not at start: %q", m)
	}
	m = MiniMap(10, 10, 5)
	if !strings.HasSuffix(m, "█"+style.DarkGray+"]"+style.Reset) {
		t.Fatalf("cursor not at end: %q", m)
	}
	if strings.Count(m, "▓") != 4 {
		t.Fatalf("trail cells = %q", m)
	}
	if MiniMap(0, 0, 5) != "" {
		t.Fatalf("zero max must render empty")
	}
}

func TestProgressBarMinimapStyle(t *testing.T) {
	if ProgressBar(0, 10, 5, "minimap") != MiniMap(0, 10, 5) {
		t.Fatalf("minimap style must delegate")
	}
}

func TestDensityMapTiers(t *testing.T) {
	deep := strings.Repeat(" ", 16) + "x"
	mid := strings.Repeat(" ", 8) + "x"
	flat := "x"
	text := strings.Join([]string{deep, mid, flat}, "\n")
	m := DensityMap(text, 3, 4)
	if !strings.Contains(m, style.Red+"█") {
		t.Fatalf("deep tier missing: %q", m)
	}
	if !strings.Contains(m, style.Yellow+"▓") {
		t.Fatalf("mid tier missing: %q", m)
	}
	if !strings.Contains(m, style.Gray+"·") {
		t.Fatalf("flat tier missing: %q", m)
	}
	if !strings.HasPrefix(m, style.DarkGray+"[") || !strings.HasSuffix(m, "]"+style.Reset) {
		t.Fatalf("brackets missing: %q", m)
	}
}

func TestDensityMapIgnoresColorCodes(t *testing.T) {
	colored := style.Green + strings.Repeat(" ", 16) + "x" + style.Reset
	plain := strings.Repeat(" ", 16) + "x"
	if DensityMap(colored, 1, 4) != DensityMap(plain, 1, 4) {
		t.Fatalf("color codes must not affect depth")
	}
}

func TestCountKeys(t *testing.T) {
	v := map[string]any{
		"a": 1.0,
		"b": map[string]any{"c": 2.0},
		"d": []any{map[string]any{"e": 3.0, "f": 4.0}},
	}
	if got := CountKeys(v); got != 6 {
		t.Fatalf("CountKeys = %d, want 6", got)
	}
	if CountKeys("scalar") != 0 {
		t.Fatalf("scalar keys != 0")
	}
}

func TestMaxDepth(t *testing.T) {
	cases := []struct {
		v    any
		want int
	}{
		{"s", 0},
		{map[string]any{}, 1},
		{[]any{}, 1},
		{map[string]any{"a": 1.0}, 1},
		{map[string]any{"a": []any{map[string]any{"b": 1.0}}}, 3},
	}
	for _, c := range cases {
		if got := MaxDepth(c.v); got != c.want {
			t.Fatalf("MaxDepth(%v) = %d, want %d", c.v, got, c.want)
		}
	}
}

func TestStatsWalksAreDepthBounded(t *testing.T) {
	v := any(1.0)
	for i := 0; i < 100; i++ {
		v = map[string]any{"k": v}
	}
	if got := MaxDepth(v); got != maxWalkDepth {
		t.Fatalf("MaxDepth = %d, want cap %d", got, maxWalkDepth)
	}
	// One key per level; levels past the cap are not walked.
	if got := CountKeys(v); got != maxWalkDepth {
		t.Fatalf("CountKeys = %d, want %d", got, maxWalkDepth)
	}
}

func TestComputeStats(t *testing.T) {
	v := map[string]any{"a": 1.0, "b": map[string]any{"c": "xy"}}
	stats := ComputeStats(v, config.Braces{}, 4)
	// {
	//     "a": 1,
	//     "b": {
	//         "c": "xy"
	//     }
	// }
	if stats.TotalLines != 6 {
		t.Fatalf("TotalLines = %d", stats.TotalLines)
	}
	if stats.ObjectKeys != 3 || stats.NestingDepth != 2 {
		t.Fatalf("keys/depth = %d/%d", stats.ObjectKeys, stats.NestingDepth)
	}
	trimmed := ComputeStats(v, config.Braces{HideFirstLast: true}, 4)
	if trimmed.TotalLines != 4 {
		t.Fatalf("trimmed TotalLines = %d", trimmed.TotalLines)
	}
	if trimmed.TotalCharacters != stats.TotalCharacters {
		t.Fatalf("character totals must ignore the brace trim")
	}
}
