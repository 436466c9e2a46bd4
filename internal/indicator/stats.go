package indicator

import (
	"math"
	"strings"

	"github.com/ackinari/debugview/config"
	"github.com/ackinari/debugview/internal/highlight"
	"github.com/ackinari/debugview/internal/style"
)

// Stats summarizes the serialized content of one rendering pass.
type Stats struct {
	TotalLines        int
	TotalCharacters   int
	VisibleCharacters int
	AvgLineLength     int
	MaxLineLength     int
	ObjectKeys        int
	NestingDepth      int
}

// ComputeStats measures v as it would be serialized. Line counts respect
// the outer-brace trim so they match what the viewer actually sees; the
// character totals measure the full serialization.
func ComputeStats(v any, braces config.Braces, indent int) Stats {
	text, err := highlight.Serialize(v, indent)
	if err != nil {
		return Stats{}
	}
	lines := strings.Split(text, "\n")
	if braces.HideFirstLast && len(lines) > 2 {
		first := strings.TrimSpace(lines[0])
		last := strings.TrimSpace(lines[len(lines)-1])
		if (first == "{" || first == "[") && (last == "}" || last == "]") {
			lines = lines[1 : len(lines)-1]
		}
	}
	joined := strings.ReplaceAll(text, "\n", "")
	return Stats{
		TotalLines:        len(lines),
		TotalCharacters:   len(text),
		VisibleCharacters: len(style.Strip(text)),
		AvgLineLength:     int(math.Round(float64(len(joined)) / float64(len(lines)))),
		MaxLineLength:     style.MaxVisibleLen(lines),
		ObjectKeys:        CountKeys(v),
		NestingDepth:      MaxDepth(v),
	}
}

// maxWalkDepth bounds the recursive stats walks so pathologically deep
// input cannot overflow the stack.
const maxWalkDepth = 64

// CountKeys counts object keys recursively across the whole value,
// including keys of objects nested inside arrays. Keys nested past the
// walk depth limit are not counted.
func CountKeys(v any) int {
	return countKeys(v, 0)
}

func countKeys(v any, d int) int {
	if d >= maxWalkDepth {
		return 0
	}
	switch t := v.(type) {
	case map[string]any:
		n := len(t)
		for _, child := range t {
			n += countKeys(child, d+1)
		}
		return n
	case []any:
		n := 0
		for _, child := range t {
			n += countKeys(child, d+1)
		}
		return n
	}
	return 0
}

// MaxDepth reports the deepest container nesting, capped at the walk
// depth limit. Scalars are depth 0; an empty container still counts its
// own level.
func MaxDepth(v any) int {
	return depth(v, 0)
}

func depth(v any, d int) int {
	if d >= maxWalkDepth {
		return d
	}
	switch t := v.(type) {
	case map[string]any:
		deepest := d + 1
		for _, child := range t {
			if cd := depth(child, d+1); cd > deepest {
				deepest = cd
			}
		}
		return deepest
	case []any:
		deepest := d + 1
		for _, child := range t {
			if cd := depth(child, d+1); cd > deepest {
				deepest = cd
			}
		}
		return deepest
	}
	return d
}
