// Package highlight serializes values to indented JSON text and colorizes
// the result with format codes. Codes are purely additive: stripping them
// yields the plain serialization byte for byte (modulo the optional brace
// transforms).
package highlight

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ackinari/debugview/config"
)

var (
	emptyObject = regexp.MustCompile(`\{\s*\}`)
	emptyArray  = regexp.MustCompile(`\[\s*\]`)
	anyBrace    = strings.NewReplacer("{", "", "}", "", "[", "", "]", "")
)

// Serialize renders v as indented JSON without HTML escaping, matching the
// spacing the highlighter scan expects.
func Serialize(v any, indent int) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("serialize value: %w", err)
	}
	// Encoder appends a trailing newline; the renderer works on bare text.
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ApplyBraceDisplay performs the configured brace transforms on plain
// serialized text.
func ApplyBraceDisplay(text string, opts config.Braces, indent int) string {
	if opts.HideFirstLast {
		lines := strings.Split(text, "\n")
		if len(lines) > 2 {
			if t := strings.TrimSpace(lines[0]); t == "{" || t == "[" {
				lines = lines[1:]
			}
			if t := strings.TrimSpace(lines[len(lines)-1]); t == "}" || t == "]" {
				lines = lines[:len(lines)-1]
			}
			unit := strings.Repeat(" ", indent)
			for i, l := range lines {
				lines[i] = strings.TrimPrefix(l, unit)
			}
			text = strings.Join(lines, "\n")
		}
	}
	switch opts.Mode {
	case config.BracesHiddenAll:
		text = anyBrace.Replace(text)
	case config.BracesHidden:
		text = emptyObject.ReplaceAllString(text, "\x00O")
		text = emptyArray.ReplaceAllString(text, "\x00A")
		text = anyBrace.Replace(text)
		text = strings.ReplaceAll(text, "\x00O", "{}")
		text = strings.ReplaceAll(text, "\x00A", "[]")
	}
	return text
}

func isNumberChar(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-'
}

// Colorize wraps each token run of serialized JSON text in its palette
// color followed by the palette default. Key strings are recognized by the
// ':' immediately after their closing quote. Brace color follows nesting
// depth so a pair always matches.
func Colorize(text string, pal config.Palette) string {
	var out strings.Builder
	out.Grow(len(text) * 2)
	depth := 0
	inString := false
	var current strings.Builder
	flushString := func(isValue bool) {
		color := pal.Key
		if isValue {
			color = pal.String
		}
		out.WriteString(color)
		out.WriteByte('"')
		out.WriteString(current.String())
		out.WriteByte('"')
		out.WriteString(pal.Default)
		current.Reset()
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case inString:
			if c == '\\' && i+1 < len(text) {
				current.WriteByte(c)
				i++
				current.WriteByte(text[i])
				continue
			}
			if c == '"' {
				inString = false
				flushString(i+1 >= len(text) || text[i+1] != ':')
				continue
			}
			current.WriteByte(c)
		case c == '"':
			inString = true
		case c >= '0' && c <= '9':
			j := i
			for j < len(text) && isNumberChar(text[j]) {
				j++
			}
			out.WriteString(pal.Number)
			out.WriteString(text[i:j])
			out.WriteString(pal.Default)
			i = j - 1
		case c == '{' || c == '[':
			out.WriteString(pal.Braces[depth%len(pal.Braces)])
			out.WriteByte(c)
			out.WriteString(pal.Default)
			depth++
		case c == '}' || c == ']':
			depth--
			idx := depth % len(pal.Braces)
			if idx < 0 {
				idx += len(pal.Braces)
			}
			out.WriteString(pal.Braces[idx])
			out.WriteByte(c)
			out.WriteString(pal.Default)
		case c == ':' || c == ',':
			out.WriteString(pal.Default)
			out.WriteByte(c)
		case strings.HasPrefix(text[i:], "true"):
			out.WriteString(pal.Boolean)
			out.WriteString("true")
			out.WriteString(pal.Default)
			i += 3
		case strings.HasPrefix(text[i:], "false"):
			out.WriteString(pal.Boolean)
			out.WriteString("false")
			out.WriteString(pal.Default)
			i += 4
		case strings.HasPrefix(text[i:], "null"):
			out.WriteString(pal.Null)
			out.WriteString("null")
			out.WriteString(pal.Default)
			i += 3
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

// Render serializes v and returns the brace-transformed, colorized text.
func Render(v any, indent int, pal config.Palette, braces config.Braces) (string, error) {
	text, err := Serialize(v, indent)
	if err != nil {
		return "", err
	}
	return Colorize(ApplyBraceDisplay(text, braces, indent), pal), nil
}

// RenderPlain serializes v with the brace transforms but no colors.
func RenderPlain(v any, indent int, braces config.Braces) (string, error) {
	text, err := Serialize(v, indent)
	if err != nil {
		return "", err
	}
	return ApplyBraceDisplay(text, braces, indent), nil
}
