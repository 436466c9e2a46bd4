// Package effects stacks the optional decorations over a windowed slice
// of rendered lines: type markers, separators, indent guides, line
// numbers, change emphasis, the selection cursor, a border and bookmark
// banners. Stage order is significant; later stages assume the text shape
// left by earlier ones.
package effects

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/ackinari/debugview/config"
	"github.com/ackinari/debugview/internal/style"
)

// Context carries the per-pass state the pipeline reads. It never writes
// back to viewer state.
type Context struct {
	// ScrollOffset is the absolute line number of the first visible line.
	ScrollOffset int
	// MaxWidth is the maximum visible width of the undecorated window,
	// used to size bookmark banners.
	MaxWidth int
	Palette  config.Palette

	// ChangedPaths are the still-active changed paths for emphasis.
	ChangedPaths []string

	SelectionMode bool
	SelectedLine  int

	Bookmarks map[string]int
}

// Apply runs the decoration pipeline over lines and returns a new slice.
// The input is never mutated.
func Apply(lines []string, cfg *config.Config, ctx Context) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	vis := cfg.Visual

	if vis.TypeIndicators {
		for i, line := range out {
			out[i] = typeMarker(line) + " " + line
		}
	}
	if vis.Separators {
		out = insertSeparators(out)
	}
	if vis.IndentGuides != config.GuidesOff {
		for i, line := range out {
			out[i] = drawGuides(line, cfg.IndentSize, vis.IndentGuides, ctx.Palette)
		}
	}
	if vis.LineNumbers {
		out = numberLines(out, ctx.ScrollOffset, vis.AlternateLineNumbers)
	}
	if cfg.Highlight.OnChange.Enabled && len(ctx.ChangedPaths) > 0 {
		for i, line := range out {
			out[i] = emphasizeChange(line, ctx.ChangedPaths, cfg.Highlight.OnChange.Format, ctx.Palette)
		}
	}
	if ctx.SelectionMode {
		rel := ctx.SelectedLine - ctx.ScrollOffset
		if rel >= 0 && rel < len(out) {
			out[rel] = markSelected(out[rel], cfg.Selection, vis.LineNumbers, ctx.Palette)
		}
	}
	if vis.Border && len(out) > 0 {
		glyph, color := borderStyle(vis.BorderStyle)
		rule := color + strings.Repeat(glyph, style.MaxVisibleLen(out)) + style.Reset
		out = append(append([]string{rule}, out...), rule)
	}
	if cfg.Bookmarks.Enabled && len(ctx.Bookmarks) > 0 {
		out = insertBanners(out, ctx.Bookmarks, ctx.ScrollOffset, ctx.MaxWidth)
	}
	return out
}

func typeMarker(line string) string {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.Contains(trimmed, `"`) && strings.Contains(trimmed, ":"):
		return style.Blue + "○" + style.Reset
	case strings.HasPrefix(trimmed, "[") || strings.HasSuffix(trimmed, ","):
		return style.Yellow + "□" + style.Reset
	case trimmed != "" && unicode.IsDigit(rune(trimmed[0])):
		return style.Gold + "#" + style.Reset
	case strings.Contains(trimmed, `"`):
		return style.Green + `"` + style.Reset
	}
	return style.Gray + "·" + style.Reset
}

// insertSeparators places a divider after a line that closes a brace or
// bracket, unless the next line continues the same collection with a
// leading comma.
func insertSeparators(lines []string) []string {
	divider := style.DarkGray + strings.Repeat("─", 20) + style.Reset
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		out = append(out, line)
		if !strings.ContainsAny(line, "}]") {
			continue
		}
		if i < len(lines)-1 && !strings.HasPrefix(strings.TrimSpace(lines[i+1]), ",") {
			out = append(out, divider)
		}
	}
	return out
}

func drawGuides(line string, indentSize int, mode config.GuideMode, pal config.Palette) string {
	if indentSize <= 0 {
		indentSize = 4
	}
	lead := len(line) - len(strings.TrimLeft(line, " "))
	if lead < indentSize {
		return line
	}
	level := lead / indentSize
	gap := strings.Repeat(" ", indentSize-1)
	var b strings.Builder
	for i := 0; i < level; i++ {
		color := style.DarkGray
		if mode == config.GuidesBracketColor && len(pal.Braces) > 0 {
			color = pal.Braces[i%len(pal.Braces)]
		} else if i%2 == 1 {
			color = style.Gray
		}
		b.WriteString(color)
		b.WriteString("│")
		b.WriteString(style.Reset)
		b.WriteString(gap)
	}
	b.WriteString(line[lead:])
	return b.String()
}

func numberLines(lines []string, offset int, alternate bool) []string {
	width := len(fmt.Sprint(offset + len(lines)))
	out := make([]string, len(lines))
	for i, line := range lines {
		color := style.Gray
		if alternate && i%2 == 1 {
			color = style.DarkGray
		}
		out[i] = fmt.Sprintf("%s%*d%s │ %s", color, width, offset+i+1, style.Reset, line)
	}
	return out
}

// emphasizeChange applies the configured emphasis to a line mentioning a
// changed key. Only the first matching path is applied.
func emphasizeChange(line string, paths []string, format config.ChangeFormat, pal config.Palette) string {
	var hit string
	for _, p := range paths {
		key := lastSegment(p)
		if key != "" && strings.Contains(line, `"`+key+`"`) {
			hit = key
			break
		}
	}
	if hit == "" {
		return line
	}
	formatting := style.White
	if format.Colored {
		formatting = pal.Highlight
		if format.Color != "" {
			formatting = format.Color
		}
	}
	if format.Bold {
		formatting += style.Bold
	}
	if format.Italic {
		formatting += style.Italic
	}
	if format.FullLine {
		return formatting + style.Strip(line) + style.Reset
	}
	re := regexp.MustCompile(`("` + regexp.QuoteMeta(hit) + `"[^,}\]]*)`)
	return re.ReplaceAllString(line, formatting+"$1"+style.Reset)
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.Index(path, "["); i >= 0 {
		path = path[:i]
	}
	return path
}

func markSelected(line string, sel config.Selection, lineNumbers bool, pal config.Palette) string {
	if sel.Highlight {
		color := sel.HighlightColor
		if color == "" {
			color = pal.Highlight
		}
		return color + style.Strip(line) + style.Reset
	}
	cursor := " " + style.Yellow + "►" + style.Reset + " "
	if lineNumbers && strings.Contains(line, " │ ") {
		return strings.Replace(line, " │ ", cursor, 1)
	}
	return style.Yellow + "►" + style.Reset + " " + line
}

func borderStyle(name string) (glyph, color string) {
	switch name {
	case "double":
		return "═", style.DarkGray
	case "thick":
		return "━", style.Gray
	case "rounded":
		return "─", style.DarkGray
	case "ascii":
		return "-", style.Gray
	case "dots":
		return "·", style.DarkGray
	default:
		return "─", style.DarkGray
	}
}

// insertBanners splices a centered banner row for every bookmark visible
// in the window. Banners are inserted in ascending position order so a
// later banner lands below the rows an earlier one shifted down.
func insertBanners(lines []string, bookmarks map[string]int, offset, maxWidth int) []string {
	type mark struct {
		name string
		pos  int
	}
	marks := make([]mark, 0, len(bookmarks))
	for name, pos := range bookmarks {
		marks = append(marks, mark{name, pos})
	}
	sort.Slice(marks, func(i, j int) bool {
		if marks[i].pos != marks[j].pos {
			return marks[i].pos < marks[j].pos
		}
		return marks[i].name < marks[j].name
	})
	out := lines
	for _, m := range marks {
		idx := m.pos - offset
		if idx < 0 || idx >= len(out) {
			continue
		}
		content := "<" + m.name + ">"
		pad := maxWidth - len(content)
		if pad < 0 {
			pad = 0
		}
		left := pad / 2
		banner := style.Yellow + strings.Repeat("=", left) +
			style.Gold + content +
			style.Yellow + strings.Repeat("=", pad-left) + style.Reset
		out = append(out[:idx], append([]string{banner}, out[idx:]...)...)
	}
	return out
}
