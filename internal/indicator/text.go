// Package indicator provides the header and footer widgets shown above and
// below a pulled content pane.
package indicator

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"k8s.io/utils/clock"

	"github.com/kyaoi/mdpull/internal/refresh"
)

// TextRows is the height of a Text indicator: label, bar and a spacer.
const TextRows = 3

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6"))
	armedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
	spinStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bb9af7"))
)

// Phase is what a Text indicator currently shows.
type Phase int

const (
	PhaseHidden Phase = iota
	PhasePulling
	PhaseArmed
	PhaseRefreshing
	PhaseResult
)

// Labels are the texts shown in each phase.
type Labels struct {
	Pull       string
	Release    string
	Refreshing string
	Done       string
}

func HeaderLabels() Labels {
	return Labels{
		Pull:       "pull to reload",
		Release:    "release to reload",
		Refreshing: "reloading",
		Done:       "reloaded",
	}
}

func FooterLabels() Labels {
	return Labels{
		Pull:       "pull for the next document",
		Release:    "release to load the next document",
		Refreshing: "loading",
		Done:       "loaded",
	}
}

// Option configures a Text indicator.
type Option func(*Text)

func WithLabels(l Labels) Option {
	return func(t *Text) { t.labels = l }
}

// WithLinger keeps the result on screen for d before the refresh closes.
func WithLinger(d time.Duration) Option {
	return func(t *Text) { t.linger = d }
}

func WithClock(c clock.PassiveClock) Option {
	return func(t *Text) {
		if c != nil {
			t.clock = c
		}
	}
}

// WithFPS matches the smoothing spring to the host frame rate.
func WithFPS(fps int) Option {
	return func(t *Text) {
		if fps > 0 {
			t.fps = fps
		}
	}
}

// Text is a refreshable header or footer. It shows a label and a bar that
// fills as the content is pulled, a spinner while refreshing and the result
// once the refresh completes.
type Text struct {
	header bool
	labels Labels
	linger time.Duration
	clock  clock.PassiveClock
	fps    int
	width  int

	phase    Phase
	target   float64
	shown    float64
	velocity float64
	spring   harmonica.Spring
	bar      progress.Model
	spin     spinner.Spinner

	startedAt time.Time
	resultAt  time.Time
	result    string
	failed    bool
	held      *refresh.Completion
}

// NewHeader returns a Text for the top of the content.
func NewHeader(opts ...Option) *Text {
	return newText(true, HeaderLabels(), opts)
}

// NewFooter returns a Text for the bottom of the content.
func NewFooter(opts ...Option) *Text {
	return newText(false, FooterLabels(), opts)
}

func newText(header bool, labels Labels, opts []Option) *Text {
	t := &Text{
		header: header,
		labels: labels,
		clock:  clock.RealClock{},
		fps:    60,
		spin:   spinner.MiniDot,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.spring = harmonica.NewSpring(harmonica.FPS(t.fps), 12.0, 0.9)
	t.bar = progress.New(progress.WithSolidFill("#7aa2f7"), progress.WithoutPercentage())
	t.SetWidth(40)
	return t
}

func (t *Text) Phase() Phase { return t.phase }

// Shown is the spring-smoothed pull fraction the bar displays.
func (t *Text) Shown() float64 { return t.shown }

// SetWidth sets the space available to the indicator.
func (t *Text) SetWidth(width int) {
	t.width = max(width, 0)
	t.bar.Width = min(max(t.width-4, 0), 40)
}

func (t *Text) Size() (int, int) { return t.width, TextRows }

func (t *Text) IsIndicator() bool { return false }

func (t *Text) OnOffset(fraction float64) {
	t.target = fraction
	switch t.phase {
	case PhaseRefreshing, PhaseResult:
		return
	}
	if fraction >= 1 {
		t.phase = PhaseArmed
	} else if fraction > 0 {
		t.phase = PhasePulling
	}
}

func (t *Text) OnRelease(trigger bool) {
	if trigger && t.phase != PhaseRefreshing {
		t.phase = PhaseArmed
	}
}

func (t *Text) OnReset() {
	t.phase = PhaseHidden
	t.target, t.shown, t.velocity = 0, 0, 0
	t.result, t.failed = "", false
	t.held = nil
}

func (t *Text) ContentSize() int { return TextRows }

// SetResult sets the text shown after the running refresh completes.
func (t *Text) SetResult(msg string, failed bool) {
	t.result, t.failed = msg, failed
}

// OnRefreshStart switches to the spinner when the refresh is on this side.
func (t *Text) OnRefreshStart(fromHeader bool) {
	if fromHeader != t.header {
		return
	}
	t.phase = PhaseRefreshing
	t.startedAt = t.clock.Now()
}

// OnRefreshComplete holds the completion while the result lingers.
func (t *Text) OnRefreshComplete(c *refresh.Completion) bool {
	if t.phase != PhaseRefreshing || t.linger <= 0 {
		return false
	}
	t.phase = PhaseResult
	t.resultAt = t.clock.Now()
	t.held = c
	return true
}

// Tick advances the smoothing and releases a lingering completion. It
// reports whether another frame is needed.
func (t *Text) Tick() bool {
	t.shown, t.velocity = t.spring.Update(t.shown, t.velocity, t.target)
	if t.phase == PhaseResult && t.held != nil && t.clock.Since(t.resultAt) >= t.linger {
		held := t.held
		t.held = nil
		held.Complete()
	}
	return t.Animating()
}

// Animating reports whether the indicator changes without further input.
func (t *Text) Animating() bool {
	if t.phase == PhaseRefreshing || t.held != nil {
		return true
	}
	return math.Abs(t.shown-t.target) > 0.005 || math.Abs(t.velocity) > 0.005
}

// View renders TextRows lines.
func (t *Text) View() string {
	var label string
	switch t.phase {
	case PhasePulling:
		label = labelStyle.Render(t.labels.Pull)
	case PhaseArmed:
		label = armedStyle.Render(t.labels.Release)
	case PhaseRefreshing:
		label = spinStyle.Render(t.spinnerFrame()) + " " + labelStyle.Render(t.labels.Refreshing)
	case PhaseResult:
		label = t.resultLabel()
	default:
		label = labelStyle.Render(t.labels.Pull)
	}

	fill := min(max(t.shown, 0), 1)
	if t.phase == PhaseRefreshing || t.phase == PhaseResult {
		fill = 1
	}
	bar := ""
	if t.bar.Width > 0 {
		bar = t.bar.ViewAs(fill)
	}
	return strings.Join([]string{label, bar, ""}, "\n")
}

func (t *Text) resultLabel() string {
	msg := t.result
	if msg == "" {
		msg = t.labels.Done
	}
	if t.failed {
		return failedStyle.Render(msg)
	}
	return resultStyle.Render(msg)
}

func (t *Text) spinnerFrame() string {
	frames := t.spin.Frames
	if len(frames) == 0 || t.spin.FPS <= 0 {
		return ""
	}
	i := int(t.clock.Since(t.startedAt)/t.spin.FPS) % len(frames)
	return frames[i]
}

// Listener fans the refresh callbacks out to several Text indicators. The
// first indicator that holds the completion wins.
func Listener(texts ...*Text) refresh.RefreshListener {
	return group(texts)
}

type group []*Text

func (g group) OnRefreshStart(fromHeader bool) {
	for _, t := range g {
		if t != nil {
			t.OnRefreshStart(fromHeader)
		}
	}
}

func (g group) OnRefreshComplete(c *refresh.Completion) bool {
	for _, t := range g {
		if t != nil && t.OnRefreshComplete(c) {
			return true
		}
	}
	return false
}
