// Package debugview renders live values as colorized, scrollable text for
// a constrained single-line display channel. Each viewer gets an
// independent scroll, lock and selection state driven by a nine-slot ring
// input, and the rendered JSON is decorated by a configurable pipeline of
// visual effects and status indicators.
package debugview

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ackinari/debugview/config"
	"github.com/ackinari/debugview/internal/change"
	"github.com/ackinari/debugview/internal/effects"
	"github.com/ackinari/debugview/internal/highlight"
	"github.com/ackinari/debugview/internal/indicator"
	"github.com/ackinari/debugview/internal/scroll"
	"github.com/ackinari/debugview/internal/style"
)

// Format codes accepted anywhere a color is configured. A code is the
// marker rune followed by one selector and occupies zero display cells.
const (
	Black       = style.Black
	DarkBlue    = style.DarkBlue
	DarkGreen   = style.DarkGreen
	DarkAqua    = style.DarkAqua
	DarkRed     = style.DarkRed
	DarkPurple  = style.DarkPurple
	Gold        = style.Gold
	Gray        = style.Gray
	DarkGray    = style.DarkGray
	Blue        = style.Blue
	Green       = style.Green
	Aqua        = style.Aqua
	Red         = style.Red
	LightPurple = style.LightPurple
	Yellow      = style.Yellow
	White       = style.White
	Bold        = style.Bold
	Italic      = style.Italic
	Reset       = style.Reset
)

// Viewer is one connected display target. Present replaces whatever the
// viewer currently sees and must tolerate being called once per tick with
// a single line containing embedded format codes. Message delivers
// out-of-band feedback (editor confirmations, errors).
type Viewer interface {
	ID() string
	Slot() int
	SetSlot(int)
	LockPressed() bool
	Present(text string)
	Message(text string)
}

// Scheduler registers tick-based callbacks for auto-scroll and the
// selection gesture window.
type Scheduler = scroll.Scheduler

// Handle identifies a pending scheduler callback.
type Handle = scroll.Handle

// TickDuration is the wall-clock length of one scheduler tick.
const TickDuration = scroll.TickDuration

// SoundPlayer plays audible feedback cues for one viewer. Failures are
// swallowed; cues never affect state.
type SoundPlayer interface {
	Play(v Viewer, cue string, pitch, volume float64) error
}

// Prompter requests a modal text entry from the viewer. The done callback
// fires on a later tick with the entered value, or ok=false when the
// dialog was cancelled or failed. The callback may never fire.
type Prompter interface {
	Prompt(v Viewer, title, label, defaultValue string, done func(value string, ok bool))
}

// Stats summarizes the serialized content of one pass.
type Stats = indicator.Stats

// Result is the per-invocation summary returned by Debug.
type Result struct {
	TotalLines    int
	MaxScroll     int
	Scroll        int
	CanScroll     bool
	IsLocked      bool
	SelectionMode bool
	SelectedLine  int
	Stats         *Stats
	ChangedPaths  []string
	Err           error
}

// API owns the viewer state repository and the boundary collaborators.
// One API instance serves any number of viewers.
type API struct {
	store  *scroll.Store
	sched  Scheduler
	sound  SoundPlayer
	prompt Prompter
	now    func() time.Time
}

// Option configures an API.
type Option func(*API)

// WithClock injects a time source. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *API) { a.now = now }
}

// WithSound attaches an audible feedback collaborator.
func WithSound(s SoundPlayer) Option {
	return func(a *API) { a.sound = s }
}

// WithPrompter attaches the modal text entry collaborator used by the
// inline editor.
func WithPrompter(p Prompter) Option {
	return func(a *API) { a.prompt = p }
}

// New builds an API around the host's scheduler.
func New(sched Scheduler, opts ...Option) *API {
	a := &API{sched: sched, now: time.Now}
	for _, o := range opts {
		o(a)
	}
	a.store = scroll.NewStore(a.now, sched)
	return a
}

// Store exposes the viewer state repository for lifecycle management.
func (a *API) Store() *scroll.Store { return a.store }

func (a *API) state(v Viewer) *scroll.State {
	return a.store.Get(v.ID(), v.Slot())
}

// Debug renders value for v under cfg: detects changes, filters, renders,
// windows by the viewer's scroll state, decorates and presents. It is
// called once per tick per active viewer and never blocks.
func (a *API) Debug(v Viewer, value any, cfg config.Config) Result {
	res, err := a.debug(v, value, &cfg)
	if err != nil {
		text := style.Red + "Error: " + err.Error()
		if strings.TrimSpace(cfg.Title) != "" {
			text = cfg.Title + "\n" + text
		}
		a.present(v, text, cfg.SingleLine)
		return Result{Err: err}
	}
	return res
}

// DebugPreset resolves preset and opts over the default configuration and
// renders with the result. An unknown preset name falls back to the
// default configuration.
func (a *API) DebugPreset(v Viewer, value any, preset string, opts *config.Options) Result {
	return a.Debug(v, value, config.Resolve(preset, opts))
}

func (a *API) debug(v Viewer, value any, cfg *config.Config) (Result, error) {
	now := a.now()
	st := a.state(v)
	for _, mark := range cfg.Bookmarks.Marks {
		st.SetBookmark(mark.Name, mark.Position)
	}

	norm, err := normalize(value)
	if err != nil {
		return Result{}, fmt.Errorf("serialize: %w", err)
	}
	changed, err := a.detectChanges(st, norm, cfg, now)
	if err != nil {
		return Result{}, fmt.Errorf("detect changes: %w", err)
	}

	var stats *Stats
	if cfg.Indicators.Show.Statistics {
		s := indicator.ComputeStats(norm, cfg.Braces, cfg.IndentSize)
		stats = &s
	}
	pal := highlight.Resolve(cfg.Highlight)

	filtered := norm
	if cfg.Filter.Enabled && len(cfg.Filter.Keys) > 0 {
		filtered = filterValue(norm, cfg.Filter)
	}

	var text string
	if cfg.Highlight.Enabled {
		text, err = highlight.Render(filtered, cfg.IndentSize, pal, cfg.Braces)
	} else {
		text, err = highlight.RenderPlain(filtered, cfg.IndentSize, cfg.Braces)
	}
	if err != nil {
		return Result{}, fmt.Errorf("render: %w", err)
	}

	lines := strings.Split(text, "\n")
	totalLines := len(lines)
	maxScroll := totalLines - cfg.MaxLines
	if maxScroll < 0 {
		maxScroll = 0
	}

	if cfg.Scroll.Enabled && totalLines > cfg.MaxLines {
		return a.renderScrolling(v, st, cfg, lines, text, pal, stats, changed, now), nil
	}
	return a.renderStatic(v, st, cfg, lines, pal, stats, changed, totalLines), nil
}

func (a *API) renderScrolling(v Viewer, st *scroll.State, cfg *config.Config, lines []string, text string, pal config.Palette, stats *Stats, changed []string, now time.Time) Result {
	totalLines := len(lines)
	st.TotalLines = totalLines
	st.MaxScroll = totalLines - cfg.MaxLines
	if cfg.StartLine > 0 && st.ScrollPosition == 0 {
		st.ScrollPosition = cfg.StartLine
		if st.ScrollPosition > st.MaxScroll {
			st.ScrollPosition = st.MaxScroll
		}
	}
	if cfg.AutoScroll.Enabled {
		scroll.StartAutoScroll(st, cfg.AutoScroll, a.sched)
	}
	scroll.Process(st, viewerInput{v}, cfg.Scroll, now,
		a.cue(v, cfg.Indicators.Sound), a.cue(v, cfg.Selection.Sound))

	pos := st.ScrollPosition
	indicators := indicator.Build(indicator.Status{
		ScrollPos:      pos,
		MaxScroll:      st.MaxScroll,
		Locked:         st.IsLocked,
		ScrollVelocity: st.ScrollVelocity,
		SelectionMode:  st.SelectionMode,
		SelectedLine:   st.SelectedLine,
		ShowingDelay:   st.ShowingDelay,
	}, cfg.Indicators, stats, text, cfg.IndentSize)

	end := pos + cfg.MaxLines
	if end > totalLines {
		end = totalLines
	}
	visible := lines[pos:end]
	processed := effects.Apply(visible, cfg, effects.Context{
		ScrollOffset:  pos,
		MaxWidth:      style.MaxVisibleLen(visible),
		Palette:       pal,
		ChangedPaths:  changed,
		SelectionMode: st.SelectionMode,
		SelectedLine:  st.SelectedLine,
		Bookmarks:     st.Bookmarks,
	})

	var parts []string
	if strings.TrimSpace(cfg.Title) != "" {
		parts = append(parts, cfg.Title)
	}
	parts = append(parts, splice(processed, indicators, cfg.Indicators)...)

	if cfg.Selection.Enabled {
		scroll.HandleDoublePress(st, v.LockPressed(), cfg.Selection, now, a.sched)
	}
	a.present(v, strings.Join(parts, "\n"), cfg.SingleLine)
	return Result{
		TotalLines:    totalLines,
		MaxScroll:     st.MaxScroll,
		Scroll:        pos,
		CanScroll:     true,
		IsLocked:      st.IsLocked,
		SelectionMode: st.SelectionMode,
		SelectedLine:  st.SelectedLine,
		Stats:         stats,
		ChangedPaths:  changed,
	}
}

func (a *API) renderStatic(v Viewer, st *scroll.State, cfg *config.Config, lines []string, pal config.Palette, stats *Stats, changed []string, totalLines int) Result {
	if len(lines) > cfg.MaxLines {
		lines = lines[:cfg.MaxLines]
	}
	processed := effects.Apply(lines, cfg, effects.Context{
		MaxWidth:      style.MaxVisibleLen(lines),
		Palette:       pal,
		ChangedPaths:  changed,
		SelectionMode: st.SelectionMode,
		SelectedLine:  st.SelectedLine,
		Bookmarks:     st.Bookmarks,
	})
	var parts []string
	if strings.TrimSpace(cfg.Title) != "" {
		parts = append(parts, cfg.Title)
	}
	parts = append(parts, processed...)
	a.present(v, strings.Join(parts, "\n"), cfg.SingleLine)
	return Result{
		TotalLines:    totalLines,
		SelectionMode: st.SelectionMode,
		SelectedLine:  st.SelectedLine,
		Stats:         stats,
		ChangedPaths:  changed,
	}
}

// splice places the indicator strip above, below or at a fixed row inside
// the decorated content. Centering aligns each indicator to the width of
// the decorated block.
func splice(content, indicators []string, cfg config.Indicators) []string {
	if len(indicators) == 0 || !cfg.Enabled {
		return content
	}
	if cfg.Centered {
		width := style.MaxVisibleLen(content)
		centered := make([]string, len(indicators))
		for i, ind := range indicators {
			centered[i] = style.Center(ind, width, " ")
		}
		indicators = centered
	}
	switch cfg.Position {
	case config.Bottom:
		return append(append([]string{}, content...), indicators...)
	case config.AtRow:
		at := cfg.Row
		if at > len(content) {
			at = len(content)
		}
		if at < 0 {
			at = 0
		}
		out := append([]string{}, content[:at]...)
		out = append(out, indicators...)
		return append(out, content[at:]...)
	default:
		return append(append([]string{}, indicators...), content...)
	}
}

func (a *API) detectChanges(st *scroll.State, norm any, cfg *config.Config, now time.Time) ([]string, error) {
	if !cfg.Highlight.OnChange.Enabled {
		return nil, nil
	}
	cooldown := cfg.Highlight.OnChange.Cooldown
	if cooldown <= 0 {
		cooldown = 500 * time.Millisecond
	}
	return st.Changes.Detect(norm, now, change.Options{
		Cooldown:       cooldown,
		HistoryEnabled: cfg.ChangeHistory.Enabled,
		HistoryMax:     cfg.ChangeHistory.MaxEntries,
	})
}

// cue returns a callback playing snd, or nil when feedback is off. Play
// failures are ignored.
func (a *API) cue(v Viewer, snd config.Sound) func() {
	if a.sound == nil || !snd.Enabled {
		return nil
	}
	return func() {
		_ = a.sound.Play(v, snd.Sound, snd.Pitch, snd.Volume)
	}
}

func (a *API) present(v Viewer, text string, singleLine bool) {
	text = strings.TrimPrefix(text, "\n")
	if singleLine {
		text = strings.ReplaceAll(text, "\n", "")
	}
	v.Present(text)
}

// normalize reduces value to plain JSON shapes (maps, slices, float64,
// string, bool, nil) so change diffing and stats see the same structure
// the renderer serializes.
func normalize(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var norm any
	if err := json.Unmarshal(raw, &norm); err != nil {
		return nil, err
	}
	return norm, nil
}

// viewerInput adapts a Viewer to the scroll state machine's input device.
type viewerInput struct{ v Viewer }

func (in viewerInput) Slot() int         { return in.v.Slot() }
func (in viewerInput) SetSlot(s int)     { in.v.SetSlot(s) }
func (in viewerInput) LockPressed() bool { return in.v.LockPressed() }
