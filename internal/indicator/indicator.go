// Package indicator builds the short status strings shown alongside the
// content block: position counter, percentage, progress bar, lock and
// selection flags, scroll velocity, density map and content statistics.
package indicator

import (
	"fmt"
	"strings"

	"github.com/ackinari/debugview/config"
	"github.com/ackinari/debugview/internal/style"
)

// Status is the slice of viewer state the builder reads.
type Status struct {
	ScrollPos      int
	MaxScroll      int
	Locked         bool
	ScrollVelocity int
	SelectionMode  bool
	SelectedLine   int
	ShowingDelay   bool
}

// barWidth is the fixed width of the progress bar indicator.
const barWidth = 18

// densityWidth is the fixed cell count of the density map indicator.
const densityWidth = 12

// Build assembles the enabled indicators in display order. debugText is
// the full rendered content, used only by the density map; indentSize
// scales its depth buckets.
func Build(st Status, cfg config.Indicators, stats *Stats, debugText string, indentSize int) []string {
	if !cfg.Enabled {
		return nil
	}
	var out []string
	percent := 0
	if st.MaxScroll > 0 {
		percent = int(float64(st.ScrollPos)/float64(st.MaxScroll)*100 + 0.5)
	}
	prog := cfg.Show.Progress
	if prog.Number || prog.Percentage || prog.Bar {
		bracket := prog.Style
		if bracket == "" {
			bracket = "parentheses"
		}
		var numberInfo string
		if prog.Number {
			ns := prog.NumberStyle
			if ns == "" {
				ns = bracket
			}
			switch ns {
			case "brackets":
				numberInfo = fmt.Sprintf("%s[%d/%d]%s", style.Gray, st.ScrollPos, st.MaxScroll, style.Reset)
			case "parentheses":
				numberInfo = fmt.Sprintf("%s(%d/%d)%s", style.Gray, st.ScrollPos, st.MaxScroll, style.Reset)
			case "minimal":
				numberInfo = fmt.Sprintf("%s%d%s/%s%d%s", style.DarkGray, st.ScrollPos, style.Gray, style.DarkGray, st.MaxScroll, style.Reset)
			}
		}
		if prog.Percentage {
			var pct string
			switch bracket {
			case "brackets":
				pct = fmt.Sprintf("%s[%d%%]%s", style.Gray, percent, style.Reset)
			case "parentheses":
				pct = fmt.Sprintf("%s(%d%%)%s", style.Gray, percent, style.Reset)
			default:
				pct = fmt.Sprintf("%s%d%%%s", style.Gray, percent, style.Reset)
			}
			if numberInfo != "" {
				numberInfo += " " + pct
			} else {
				out = append(out, pct)
			}
		}
		if numberInfo != "" {
			out = append(out, numberInfo)
		}
		if prog.Bar {
			bs := prog.BarStyle
			if bs == "" {
				bs = "blocks"
			}
			out = append(out, ProgressBar(st.ScrollPos, st.MaxScroll, barWidth, bs))
		}
	}
	var status []string
	if st.Locked {
		status = append(status, style.Yellow+"[LOCK]"+style.Reset)
	}
	if cfg.Show.ScrollVelocity {
		status = append(status, fmt.Sprintf("%s×%d%s", style.Aqua, st.ScrollVelocity, style.Reset))
	}
	if st.SelectionMode {
		status = append(status, fmt.Sprintf("%s[SEL:%d]%s", style.LightPurple, st.SelectedLine, style.Reset))
	}
	if st.ShowingDelay {
		status = append(status, style.Yellow+"[SHIFT]"+style.Reset)
	}
	if len(status) > 0 {
		out = append(out, strings.Join(status, " "))
	}
	if cfg.Show.DensityMap && st.MaxScroll > 0 && debugText != "" {
		out = append(out, DensityMap(debugText, densityWidth, indentSize))
	}
	if cfg.Show.Statistics && stats != nil {
		out = append(out, fmt.Sprintf("%sLines: %d Keys: %d Depth: %d%s",
			style.DarkGray, stats.TotalLines, stats.ObjectKeys, stats.NestingDepth, style.Reset))
	}
	return out
}

type barLook struct {
	filled, empty, color string
}

var barStyles = map[string]barLook{
	"blocks":   {"█", "─", style.Green},
	"dots":     {"●", "○", style.Aqua},
	"arrows":   {"►", "─", style.Yellow},
	"slim":     {"│", "┆", style.LightPurple},
	"thick":    {"┃", "┊", style.Gold},
	"modern":   {"▰", "▱", style.DarkAqua},
	"gradient": {"█", "░", style.Green},
	"retro":    {"#", "-", style.DarkGreen},
	"wave":     {"~", ".", style.Aqua},
	"fire":     {"▲", "▽", style.Red},
}

// ProgressBar renders scroll progress as a fixed-width bar. An unknown
// style name falls back to blocks; "minimap" renders as a position map
// instead.
func ProgressBar(current, max, width int, styleName string) string {
	if max == 0 {
		return style.DarkGray + strings.Repeat("─", width) + style.Reset
	}
	if styleName == "minimap" {
		return MiniMap(current, max, width)
	}
	look, ok := barStyles[styleName]
	if !ok {
		look = barStyles["blocks"]
	}
	filled := current * width / max
	return look.color + strings.Repeat(look.filled, filled) +
		style.DarkGray + strings.Repeat(look.empty, width-filled) + style.Reset
}

// MiniMap renders the scroll position as a bracketed strip with a cursor
// cell, trail above it and empty track below.
func MiniMap(pos, max, width int) string {
	if max == 0 {
		return ""
	}
	current := pos * (width - 1) / max
	var b strings.Builder
	b.WriteString(style.DarkGray + "[")
	for i := 0; i < width; i++ {
		switch {
		case i == current:
			b.WriteString(style.Green + "█" + style.DarkGray)
		case i < current:
			b.WriteString(style.Gray + "▓" + style.DarkGray)
		default:
			b.WriteString("░")
		}
	}
	b.WriteString("]" + style.Reset)
	return b.String()
}

// DensityMap compresses the whole rendered text into a fixed-width strip.
// Each cell shows the average indentation depth of its chunk of lines,
// bucketed into five tiers.
func DensityMap(text string, width, indentSize int) string {
	if indentSize <= 0 {
		indentSize = 4
	}
	lines := strings.Split(text, "\n")
	chunk := (len(lines) + width - 1) / width
	if chunk == 0 {
		chunk = 1
	}
	var b strings.Builder
	b.WriteString(style.DarkGray + "[")
	for i := 0; i < width; i++ {
		start := i * chunk
		if start > len(lines) {
			start = len(lines)
		}
		end := start + chunk
		if end > len(lines) {
			end = len(lines)
		}
		depth, counted := 0, 0
		for _, line := range lines[start:end] {
			clean := style.Strip(line)
			lead := len(clean) - len(strings.TrimLeft(clean, " "))
			if lead > 0 {
				depth += lead / indentSize
				counted++
			}
		}
		avg := 0.0
		if counted > 0 {
			avg = float64(depth) / float64(counted)
		}
		switch {
		case avg >= 4:
			b.WriteString(style.Red + "█" + style.DarkGray)
		case avg >= 3:
			b.WriteString(style.Gold + "▓" + style.DarkGray)
		case avg >= 2:
			b.WriteString(style.Yellow + "▓" + style.DarkGray)
		case avg >= 1:
			b.WriteString(style.Green + "░" + style.DarkGray)
		default:
			b.WriteString(style.Gray + "·" + style.DarkGray)
		}
	}
	b.WriteString("]" + style.Reset)
	return b.String()
}
