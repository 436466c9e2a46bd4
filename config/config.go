// Package config defines the rendering configuration: resolved per-pass
// settings, partial user options, named presets, and the deep merge that
// layers default < preset < explicit options.
package config

import "time"

// Palette assigns format codes to token classes. Braces is indexed by
// nesting depth modulo its length, so an open/close brace pair at the same
// depth always shares a color.
type Palette struct {
	Braces    []string
	Key       string
	String    string
	Number    string
	Boolean   string
	Null      string
	Default   string
	Highlight string
}

// BraceMode selects how literal brace/bracket characters are displayed.
type BraceMode int

const (
	// BracesShown leaves braces untouched.
	BracesShown BraceMode = iota
	// BracesHidden removes braces but keeps empty-object and empty-array
	// tokens visible.
	BracesHidden
	// BracesHiddenAll removes every brace character.
	BracesHiddenAll
)

// Braces controls the string-level brace transforms applied to the plain
// serialization before colorizing.
type Braces struct {
	// HideFirstLast strips the outermost brace pair when it occupies its
	// own first and last lines, de-indenting the remainder one level.
	HideFirstLast bool
	Mode          BraceMode
}

// Placement selects where indicator lines are spliced into the output.
type Placement int

const (
	Top Placement = iota
	Bottom
	AtRow
)

// GuideMode selects how indent guides are colored.
type GuideMode int

const (
	GuidesOff GuideMode = iota
	// GuidesAlternate alternates two gray shades per level.
	GuidesAlternate
	// GuidesBracketColor follows the palette brace color for the level.
	GuidesBracketColor
)

// Sound configures one feedback cue.
type Sound struct {
	Enabled bool
	Sound   string
	Pitch   float64
	Volume  float64
}

// ChangeFormat controls how changed lines are emphasized.
type ChangeFormat struct {
	Bold     bool
	Italic   bool
	Colored  bool
	Color    string // explicit format code; empty means palette highlight
	FullLine bool
}

// OnChange configures change detection and highlighting.
type OnChange struct {
	Enabled  bool
	Cooldown time.Duration
	Format   ChangeFormat
}

// Highlight configures the renderer.
type Highlight struct {
	Enabled bool
	// Palette names a registered palette; Custom (when non-nil) wins.
	Palette  string
	Custom   *Palette
	OnChange OnChange
}

// Progress configures the position counter, percentage and bar indicators.
type Progress struct {
	Number      bool
	NumberStyle string // "brackets" | "parentheses" | "minimal"; empty uses Style
	Style       string // bracket style for the percentage
	Bar         bool
	BarStyle    string
	Percentage  bool
}

// Show toggles the individual indicators.
type Show struct {
	DensityMap     bool
	ScrollVelocity bool
	Statistics     bool
	Progress       Progress
}

// Indicators configures the status strip.
type Indicators struct {
	Enabled  bool
	Centered bool
	Position Placement
	Row      int // used when Position == AtRow
	Show     Show
	Sound    Sound
}

// Visual configures the decoration pipeline.
type Visual struct {
	AlternateLineNumbers bool
	Border               bool
	BorderStyle          string
	IndentGuides         GuideMode
	LineNumbers          bool
	Separators           bool
	TypeIndicators       bool
}

// ShiftLock configures the lock gesture.
type ShiftLock struct {
	Enabled  bool
	LockSlot bool
	Invert   bool
}

// Scroll configures the scroll state machine.
type Scroll struct {
	Enabled        bool
	Invert         bool
	ShiftLock      ShiftLock
	FastMultiplier int
	FastThreshold  int
	Momentum       bool
	ScrollAmount   int
}

// Mark is an initial bookmark. A nil Position means the viewer's current
// scroll position at the time the mark is applied.
type Mark struct {
	Name     string `json:"name"`
	Position *int   `json:"position,omitempty"`
}

// Bookmarks configures bookmark banners and initial marks.
type Bookmarks struct {
	Enabled bool
	Marks   []Mark
}

// Selection configures selection mode and its toggle gesture.
type Selection struct {
	Enabled        bool
	Delay          time.Duration
	ShowDelay      bool
	Highlight      bool
	HighlightColor string // explicit format code; empty means palette highlight
	Sound          Sound
}

// Filter configures the pre-render key filter.
type Filter struct {
	Enabled   bool
	Keys      []string
	Mode      string // "include" | "exclude"
	Recursive bool
}

// AutoScroll configures the repeating scroll timer. Speed is in scheduler
// ticks between steps.
type AutoScroll struct {
	Enabled      bool
	ScrollAmount int
	Speed        int
	Direction    string // "up" | "down" | "backAndForth"
}

// ChangeHistory configures the bounded change log.
type ChangeHistory struct {
	Enabled    bool
	MaxEntries int
}

// Config is the effective configuration of one rendering pass. It is fully
// resolved and treated as immutable once produced.
type Config struct {
	Title      string
	MaxLines   int
	IndentSize int
	StartLine  int
	// SingleLine collapses the final output to one logical line for hosts
	// whose presentation channel accepts a single line only.
	SingleLine bool

	Highlight     Highlight
	Indicators    Indicators
	Visual        Visual
	Braces        Braces
	Scroll        Scroll
	Bookmarks     Bookmarks
	Selection     Selection
	Filter        Filter
	AutoScroll    AutoScroll
	ChangeHistory ChangeHistory
}

// Default returns the baseline configuration every preset and user option
// set is layered over.
func Default() Config {
	return Config{
		Title:      "DEBUG.A",
		MaxLines:   28,
		IndentSize: 4,
		SingleLine: true,
		Highlight: Highlight{
			Enabled: true,
			Palette: "default",
			OnChange: OnChange{
				Enabled:  true,
				Cooldown: 250 * time.Millisecond,
				Format:   ChangeFormat{Colored: true},
			},
		},
		Indicators: Indicators{
			Enabled:  true,
			Centered: true,
			Position: Top,
			Show: Show{
				Progress: Progress{Style: "brackets", Percentage: true},
			},
			Sound: Sound{Enabled: true, Sound: "random.click", Pitch: 2, Volume: 0.25},
		},
		Visual: Visual{
			AlternateLineNumbers: true,
			IndentGuides:         GuidesBracketColor,
			LineNumbers:          true,
		},
		Braces: Braces{HideFirstLast: true},
		Scroll: Scroll{
			Enabled:        true,
			ShiftLock:      ShiftLock{Enabled: true},
			FastMultiplier: 3,
			FastThreshold:  2,
			Momentum:       true,
			ScrollAmount:   1,
		},
		Bookmarks: Bookmarks{Enabled: true},
		Selection: Selection{
			Enabled: true,
			Delay:   350 * time.Millisecond,
			Sound:   Sound{Enabled: true, Sound: "random.click", Pitch: 3, Volume: 0.5},
		},
		Filter:        Filter{Mode: "include"},
		AutoScroll:    AutoScroll{ScrollAmount: 1, Speed: 20, Direction: "down"},
		ChangeHistory: ChangeHistory{MaxEntries: 10},
	}
}
