package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Options is a partial configuration. Nil fields keep the value of the
// layer below (default or preset); Options therefore round-trips cleanly
// through JSON for file-based configuration. Duration-valued fields are
// expressed in seconds, matching the option files this format descends
// from.
type Options struct {
	Title      *string `json:"title,omitempty"`
	MaxLines   *int    `json:"maxLines,omitempty"`
	IndentSize *int    `json:"indentSize,omitempty"`
	StartLine  *int    `json:"startLine,omitempty"`
	SingleLine *bool   `json:"singleLine,omitempty"`

	Highlight     *HighlightOptions     `json:"highlight,omitempty"`
	Indicators    *IndicatorOptions     `json:"indicators,omitempty"`
	Visual        *VisualOptions        `json:"visual,omitempty"`
	Braces        *BraceOptions         `json:"braces,omitempty"`
	Scroll        *ScrollOptions        `json:"scroll,omitempty"`
	Bookmarks     *BookmarkOptions      `json:"bookmarks,omitempty"`
	Selection     *SelectionOptions     `json:"selection,omitempty"`
	Filter        *FilterOptions        `json:"filter,omitempty"`
	AutoScroll    *AutoScrollOptions    `json:"autoScroll,omitempty"`
	ChangeHistory *ChangeHistoryOptions `json:"changeHistory,omitempty"`
}

type HighlightOptions struct {
	Enabled  *bool            `json:"enabled,omitempty"`
	Palette  *string          `json:"palette,omitempty"`
	Custom   *Palette         `json:"custom,omitempty"`
	OnChange *OnChangeOptions `json:"onChange,omitempty"`
}

type OnChangeOptions struct {
	Enabled  *bool                `json:"enabled,omitempty"`
	Cooldown *float64             `json:"cooldown,omitempty"` // seconds
	Format   *ChangeFormatOptions `json:"format,omitempty"`
}

type ChangeFormatOptions struct {
	Bold     *bool   `json:"bold,omitempty"`
	Italic   *bool   `json:"italic,omitempty"`
	Colored  *bool   `json:"colored,omitempty"`
	Color    *string `json:"color,omitempty"`
	FullLine *bool   `json:"fullLine,omitempty"`
}

type IndicatorOptions struct {
	Enabled  *bool         `json:"enabled,omitempty"`
	Centered *bool         `json:"centered,omitempty"`
	Position *string       `json:"position,omitempty"` // "top" | "bottom"
	Row      *int          `json:"row,omitempty"`      // fixed row; wins over Position
	Show     *ShowOptions  `json:"show,omitempty"`
	Sound    *SoundOptions `json:"sound,omitempty"`
}

type ShowOptions struct {
	DensityMap     *bool            `json:"densityMap,omitempty"`
	ScrollVelocity *bool            `json:"scrollVelocity,omitempty"`
	Statistics     *bool            `json:"statistics,omitempty"`
	Progress       *ProgressOptions `json:"progress,omitempty"`
}

type ProgressOptions struct {
	Number      *bool   `json:"number,omitempty"`
	NumberStyle *string `json:"numberStyle,omitempty"`
	Style       *string `json:"style,omitempty"`
	Bar         *bool   `json:"bar,omitempty"`
	BarStyle    *string `json:"barStyle,omitempty"`
	Percentage  *bool   `json:"percentage,omitempty"`
}

type SoundOptions struct {
	Enabled *bool    `json:"enabled,omitempty"`
	Sound   *string  `json:"sound,omitempty"`
	Pitch   *float64 `json:"pitch,omitempty"`
	Volume  *float64 `json:"volume,omitempty"`
}

type VisualOptions struct {
	AlternateLineNumbers *bool   `json:"alternateLineNumbers,omitempty"`
	Border               *bool   `json:"border,omitempty"`
	BorderStyle          *string `json:"borderStyle,omitempty"`
	IndentGuides         *string `json:"indentGuides,omitempty"` // "off" | "alternate" | "bracketColor"
	LineNumbers          *bool   `json:"lineNumbers,omitempty"`
	Separators           *bool   `json:"separators,omitempty"`
	TypeIndicators       *bool   `json:"typeIndicators,omitempty"`
}

type BraceOptions struct {
	HideFirstLast *bool   `json:"hideFirstLast,omitempty"`
	Hide          *string `json:"hide,omitempty"` // "none" | "keepEmpty" | "all"
}

type ScrollOptions struct {
	Enabled        *bool             `json:"enabled,omitempty"`
	Invert         *bool             `json:"invert,omitempty"`
	ShiftLock      *ShiftLockOptions `json:"shiftLock,omitempty"`
	FastMultiplier *int              `json:"fastMultiplier,omitempty"`
	FastThreshold  *int              `json:"fastThreshold,omitempty"`
	Momentum       *bool             `json:"momentum,omitempty"`
	ScrollAmount   *int              `json:"scrollAmount,omitempty"`
}

type ShiftLockOptions struct {
	Enabled  *bool `json:"enabled,omitempty"`
	LockSlot *bool `json:"lockSlot,omitempty"`
	Invert   *bool `json:"invert,omitempty"`
}

type BookmarkOptions struct {
	Enabled *bool  `json:"enabled,omitempty"`
	Marks   []Mark `json:"marks,omitempty"`
}

type SelectionOptions struct {
	Enabled        *bool         `json:"enabled,omitempty"`
	Delay          *float64      `json:"delay,omitempty"` // seconds
	ShowDelay      *bool         `json:"showDelay,omitempty"`
	Highlight      *bool         `json:"highlight,omitempty"`
	HighlightColor *string       `json:"highlightColor,omitempty"`
	Sound          *SoundOptions `json:"sound,omitempty"`
}

type FilterOptions struct {
	Enabled   *bool    `json:"enabled,omitempty"`
	Keys      []string `json:"keys,omitempty"`
	Mode      *string  `json:"mode,omitempty"`
	Recursive *bool    `json:"recursive,omitempty"`
}

type AutoScrollOptions struct {
	Enabled      *bool   `json:"enabled,omitempty"`
	ScrollAmount *int    `json:"scrollAmount,omitempty"`
	Speed        *int    `json:"speed,omitempty"`
	Direction    *string `json:"direction,omitempty"`
}

type ChangeHistoryOptions struct {
	Enabled    *bool `json:"enabled,omitempty"`
	MaxEntries *int  `json:"maxEntries,omitempty"`
}

// Pointer helpers for building Options literals.
func Bool(v bool) *bool        { return &v }
func Int(v int) *int           { return &v }
func Float(v float64) *float64 { return &v }
func String(v string) *string  { return &v }

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setSeconds(dst *time.Duration, src *float64) {
	if src != nil {
		*dst = time.Duration(*src * float64(time.Second))
	}
}

func applySound(dst *Sound, src *SoundOptions) {
	if src == nil {
		return
	}
	setBool(&dst.Enabled, src.Enabled)
	setString(&dst.Sound, src.Sound)
	setFloat(&dst.Pitch, src.Pitch)
	setFloat(&dst.Volume, src.Volume)
}

// Apply layers the non-nil fields of o over c and returns the result. It
// recurses into every known option group and overwrites scalars in place;
// unknown values (palette names, styles) pass through and fall back at the
// point of use.
func Apply(c Config, o *Options) Config {
	if o == nil {
		return c
	}
	setString(&c.Title, o.Title)
	setInt(&c.MaxLines, o.MaxLines)
	setInt(&c.IndentSize, o.IndentSize)
	setInt(&c.StartLine, o.StartLine)
	setBool(&c.SingleLine, o.SingleLine)

	if h := o.Highlight; h != nil {
		setBool(&c.Highlight.Enabled, h.Enabled)
		setString(&c.Highlight.Palette, h.Palette)
		if h.Custom != nil {
			c.Highlight.Custom = h.Custom
		}
		if oc := h.OnChange; oc != nil {
			setBool(&c.Highlight.OnChange.Enabled, oc.Enabled)
			setSeconds(&c.Highlight.OnChange.Cooldown, oc.Cooldown)
			if f := oc.Format; f != nil {
				setBool(&c.Highlight.OnChange.Format.Bold, f.Bold)
				setBool(&c.Highlight.OnChange.Format.Italic, f.Italic)
				setBool(&c.Highlight.OnChange.Format.Colored, f.Colored)
				setString(&c.Highlight.OnChange.Format.Color, f.Color)
				setBool(&c.Highlight.OnChange.Format.FullLine, f.FullLine)
			}
		}
	}
	if in := o.Indicators; in != nil {
		setBool(&c.Indicators.Enabled, in.Enabled)
		setBool(&c.Indicators.Centered, in.Centered)
		if in.Row != nil {
			c.Indicators.Position = AtRow
			c.Indicators.Row = *in.Row
		} else if in.Position != nil {
			switch *in.Position {
			case "bottom":
				c.Indicators.Position = Bottom
			default:
				c.Indicators.Position = Top
			}
		}
		if s := in.Show; s != nil {
			setBool(&c.Indicators.Show.DensityMap, s.DensityMap)
			setBool(&c.Indicators.Show.ScrollVelocity, s.ScrollVelocity)
			setBool(&c.Indicators.Show.Statistics, s.Statistics)
			if p := s.Progress; p != nil {
				setBool(&c.Indicators.Show.Progress.Number, p.Number)
				setString(&c.Indicators.Show.Progress.NumberStyle, p.NumberStyle)
				setString(&c.Indicators.Show.Progress.Style, p.Style)
				setBool(&c.Indicators.Show.Progress.Bar, p.Bar)
				setString(&c.Indicators.Show.Progress.BarStyle, p.BarStyle)
				setBool(&c.Indicators.Show.Progress.Percentage, p.Percentage)
			}
		}
		applySound(&c.Indicators.Sound, in.Sound)
	}
	if v := o.Visual; v != nil {
		setBool(&c.Visual.AlternateLineNumbers, v.AlternateLineNumbers)
		setBool(&c.Visual.Border, v.Border)
		setString(&c.Visual.BorderStyle, v.BorderStyle)
		if v.IndentGuides != nil {
			switch *v.IndentGuides {
			case "bracketColor":
				c.Visual.IndentGuides = GuidesBracketColor
			case "alternate":
				c.Visual.IndentGuides = GuidesAlternate
			default:
				c.Visual.IndentGuides = GuidesOff
			}
		}
		setBool(&c.Visual.LineNumbers, v.LineNumbers)
		setBool(&c.Visual.Separators, v.Separators)
		setBool(&c.Visual.TypeIndicators, v.TypeIndicators)
	}
	if b := o.Braces; b != nil {
		setBool(&c.Braces.HideFirstLast, b.HideFirstLast)
		if b.Hide != nil {
			switch *b.Hide {
			case "all":
				c.Braces.Mode = BracesHiddenAll
			case "keepEmpty":
				c.Braces.Mode = BracesHidden
			default:
				c.Braces.Mode = BracesShown
			}
		}
	}
	if s := o.Scroll; s != nil {
		setBool(&c.Scroll.Enabled, s.Enabled)
		setBool(&c.Scroll.Invert, s.Invert)
		if sl := s.ShiftLock; sl != nil {
			setBool(&c.Scroll.ShiftLock.Enabled, sl.Enabled)
			setBool(&c.Scroll.ShiftLock.LockSlot, sl.LockSlot)
			setBool(&c.Scroll.ShiftLock.Invert, sl.Invert)
		}
		setInt(&c.Scroll.FastMultiplier, s.FastMultiplier)
		setInt(&c.Scroll.FastThreshold, s.FastThreshold)
		setBool(&c.Scroll.Momentum, s.Momentum)
		setInt(&c.Scroll.ScrollAmount, s.ScrollAmount)
	}
	if b := o.Bookmarks; b != nil {
		setBool(&c.Bookmarks.Enabled, b.Enabled)
		if b.Marks != nil {
			c.Bookmarks.Marks = append([]Mark(nil), b.Marks...)
		}
	}
	if s := o.Selection; s != nil {
		setBool(&c.Selection.Enabled, s.Enabled)
		setSeconds(&c.Selection.Delay, s.Delay)
		setBool(&c.Selection.ShowDelay, s.ShowDelay)
		setBool(&c.Selection.Highlight, s.Highlight)
		setString(&c.Selection.HighlightColor, s.HighlightColor)
		applySound(&c.Selection.Sound, s.Sound)
	}
	if f := o.Filter; f != nil {
		setBool(&c.Filter.Enabled, f.Enabled)
		if f.Keys != nil {
			c.Filter.Keys = append([]string(nil), f.Keys...)
		}
		setString(&c.Filter.Mode, f.Mode)
		setBool(&c.Filter.Recursive, f.Recursive)
	}
	if a := o.AutoScroll; a != nil {
		setBool(&c.AutoScroll.Enabled, a.Enabled)
		setInt(&c.AutoScroll.ScrollAmount, a.ScrollAmount)
		setInt(&c.AutoScroll.Speed, a.Speed)
		setString(&c.AutoScroll.Direction, a.Direction)
	}
	if h := o.ChangeHistory; h != nil {
		setBool(&c.ChangeHistory.Enabled, h.Enabled)
		setInt(&c.ChangeHistory.MaxEntries, h.MaxEntries)
	}
	return c
}

var presets = map[string]*Options{
	"default": {},
	"minimal": {
		Title:      String("DEBUG"),
		MaxLines:   Int(20),
		IndentSize: Int(2),
		Highlight: &HighlightOptions{
			Enabled:  Bool(true),
			Palette:  String("default"),
			OnChange: &OnChangeOptions{Enabled: Bool(false)},
		},
		Indicators: &IndicatorOptions{
			Enabled:  Bool(true),
			Centered: Bool(false),
			Position: String("top"),
			Show: &ShowOptions{
				Progress: &ProgressOptions{Percentage: Bool(true), Bar: Bool(false), Number: Bool(false)},
			},
			Sound: &SoundOptions{Enabled: Bool(false)},
		},
		Visual: &VisualOptions{
			LineNumbers:          Bool(false),
			IndentGuides:         String("off"),
			AlternateLineNumbers: Bool(false),
			Border:               Bool(false),
			Separators:           Bool(false),
			TypeIndicators:       Bool(false),
		},
		Braces:    &BraceOptions{HideFirstLast: Bool(true), Hide: String("none")},
		Scroll:    &ScrollOptions{Enabled: Bool(true), ScrollAmount: Int(1), FastMultiplier: Int(2)},
		Bookmarks: &BookmarkOptions{Enabled: Bool(false)},
		Selection: &SelectionOptions{Enabled: Bool(false)},
	},
	"compact": {
		Title:      String(""),
		MaxLines:   Int(35),
		IndentSize: Int(2),
		Highlight: &HighlightOptions{
			Enabled:  Bool(true),
			Palette:  String("dark"),
			OnChange: &OnChangeOptions{Enabled: Bool(false)},
		},
		Indicators: &IndicatorOptions{
			Enabled:  Bool(true),
			Centered: Bool(false),
			Position: String("top"),
			Show: &ShowOptions{
				Progress: &ProgressOptions{Number: Bool(true), NumberStyle: String("minimal"), Bar: Bool(false), Percentage: Bool(false)},
			},
			Sound: &SoundOptions{Enabled: Bool(false)},
		},
		Visual: &VisualOptions{
			LineNumbers:          Bool(true),
			IndentGuides:         String("off"),
			AlternateLineNumbers: Bool(true),
			Border:               Bool(false),
			Separators:           Bool(false),
			TypeIndicators:       Bool(false),
		},
		Braces:    &BraceOptions{HideFirstLast: Bool(true), Hide: String("keepEmpty")},
		Scroll:    &ScrollOptions{Enabled: Bool(true), ScrollAmount: Int(2), FastMultiplier: Int(4)},
		Bookmarks: &BookmarkOptions{Enabled: Bool(false)},
		Selection: &SelectionOptions{Enabled: Bool(false)},
	},
}

// PresetNames lists the registered preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	return names
}

// Resolve produces the effective configuration for one pass: the default
// configuration, then the named preset (unknown names act as "default"),
// then the explicit options. opts may be nil.
func Resolve(preset string, opts *Options) Config {
	c := Default()
	if p, ok := presets[preset]; ok {
		c = Apply(c, p)
	}
	return Apply(c, opts)
}

// Load reads a partial options file in JSON form.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	var o Options
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("parse options JSON: %w", err)
	}
	return &o, nil
}
