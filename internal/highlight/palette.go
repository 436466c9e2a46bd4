package highlight

import (
	"github.com/ackinari/debugview/config"
	"github.com/ackinari/debugview/internal/style"
)

// DefaultPalette is used whenever a palette name is unknown or no palette
// is given.
var DefaultPalette = config.Palette{
	Braces:    []string{style.Yellow, style.LightPurple, style.Blue},
	Key:       style.Aqua,
	String:    style.Green,
	Number:    style.Gold,
	Boolean:   style.MineGold,
	Null:      style.DarkGray,
	Default:   style.White,
	Highlight: style.Red,
}

var palettes = map[string]config.Palette{
	"default": DefaultPalette,
	"dark": {
		Braces:    []string{style.DarkGray, style.Gray, style.White},
		Key:       style.White,
		String:    style.Green,
		Number:    style.Gold,
		Boolean:   style.Yellow,
		Null:      style.DarkGray,
		Default:   style.Gray,
		Highlight: style.Yellow,
	},
	"vibrant": {
		Braces:    []string{style.Red, style.Green, style.Aqua},
		Key:       style.LightPurple,
		String:    style.Yellow,
		Number:    style.Red,
		Boolean:   style.Green,
		Null:      style.DarkGray,
		Default:   style.White,
		Highlight: style.Red,
	},
	"retro": {
		Braces:    []string{style.DarkGreen, style.Green, style.Gold},
		Key:       style.Green,
		String:    style.DarkGreen,
		Number:    style.Gold,
		Boolean:   style.Yellow,
		Null:      style.DarkGray,
		Default:   style.White,
		Highlight: style.Gold,
	},
	"neon": {
		Braces:    []string{style.DarkPurple, style.LightPurple, style.Aqua},
		Key:       style.Aqua,
		String:    style.LightPurple,
		Number:    style.DarkPurple,
		Boolean:   style.Aqua,
		Null:      style.DarkGray,
		Default:   style.White,
		Highlight: style.LightPurple,
	},
}

// Named returns the palette registered under name, falling back to
// DefaultPalette for unknown names.
func Named(name string) config.Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return DefaultPalette
}

// Resolve picks the effective palette for a highlight configuration: a
// custom palette when given, the named one otherwise.
func Resolve(h config.Highlight) config.Palette {
	if h.Custom != nil {
		p := *h.Custom
		if len(p.Braces) == 0 {
			p.Braces = DefaultPalette.Braces
		}
		return p
	}
	return Named(h.Palette)
}

// PaletteNames lists the registered palette names.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	return names
}
