package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// noColor reports whether color output should be disabled.
func noColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

var codeStyles = map[rune]lipgloss.Style{
	'0': lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
	'1': lipgloss.NewStyle().Foreground(lipgloss.Color("19")),
	'2': lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	'3': lipgloss.NewStyle().Foreground(lipgloss.Color("37")),
	'4': lipgloss.NewStyle().Foreground(lipgloss.Color("124")),
	'5': lipgloss.NewStyle().Foreground(lipgloss.Color("127")),
	'6': lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	'7': lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	'8': lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	'9': lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
	'a': lipgloss.NewStyle().Foreground(lipgloss.Color("83")),
	'b': lipgloss.NewStyle().Foreground(lipgloss.Color("87")),
	'c': lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	'd': lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
	'e': lipgloss.NewStyle().Foreground(lipgloss.Color("227")),
	'f': lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	'g': lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
}

// translate converts embedded format codes into ANSI escapes. Codes
// accumulate until a reset, matching how the renderer composes them
// (color then bold/italic modifiers).
func translate(s string, plain bool) string {
	var b strings.Builder
	style := lipgloss.NewStyle()
	styled := false
	var run strings.Builder

	flush := func() {
		if run.Len() == 0 {
			return
		}
		if styled && !plain {
			b.WriteString(style.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '§' || i+1 >= len(runes) {
			run.WriteRune(runes[i])
			continue
		}
		flush()
		code := runes[i+1]
		i++
		switch code {
		case 'r':
			style = lipgloss.NewStyle()
			styled = false
		case 'l':
			style = style.Bold(true)
			styled = true
		case 'o':
			style = style.Italic(true)
			styled = true
		default:
			if fg, ok := codeStyles[code]; ok {
				style = fg
				styled = true
			}
		}
	}
	flush()
	return b.String()
}
