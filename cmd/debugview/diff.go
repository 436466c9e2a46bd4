package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

var (
	diffDelLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	diffAddLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	diffDelChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true)
	diffAddChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
	faint       = lipgloss.NewStyle().Faint(true)
)

// renderFrameDiff shows what changed between the previous and current
// presented frame, with char-level highlights when the line counts match.
func renderFrameDiff(before, after string) string {
	if before == after {
		return "No changes\n"
	}
	bLines := strings.Split(before, "\n")
	aLines := strings.Split(after, "\n")
	var sb strings.Builder
	if len(bLines) == len(aLines) && len(bLines) > 0 {
		for i := 0; i < len(bLines); i++ {
			bl, al := bLines[i], aLines[i]
			if bl == al {
				if strings.TrimSpace(bl) == "" {
					continue
				}
				sb.WriteString("  ")
				sb.WriteString(faint.Render(bl))
				sb.WriteString("\n")
				continue
			}
			d := dmp.New()
			diffs := d.DiffMain(bl, al, false)
			d.DiffCleanupSemantic(diffs)
			sb.WriteString(diffDelLine.Render("- "))
			for _, df := range diffs {
				switch df.Type {
				case dmp.DiffDelete:
					sb.WriteString(diffDelChar.Render(df.Text))
				case dmp.DiffEqual:
					sb.WriteString(diffDelLine.Render(df.Text))
				}
			}
			sb.WriteString("\n")
			sb.WriteString(diffAddLine.Render("+ "))
			for _, df := range diffs {
				switch df.Type {
				case dmp.DiffInsert:
					sb.WriteString(diffAddChar.Render(df.Text))
				case dmp.DiffEqual:
					sb.WriteString(diffAddLine.Render(df.Text))
				}
			}
			sb.WriteString("\n")
		}
		return sb.String()
	}
	sb.WriteString(faint.Render("PREVIOUS") + "\n")
	for _, l := range bLines {
		sb.WriteString(diffDelLine.Render("- ") + l + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(faint.Render("CURRENT") + "\n")
	for _, l := range aLines {
		sb.WriteString(diffAddLine.Render("+ ") + l + "\n")
	}
	return sb.String()
}
