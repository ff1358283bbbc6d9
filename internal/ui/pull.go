package ui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"k8s.io/utils/clock"

	"github.com/kyaoi/mdpull/internal/refresh"
)

// Panel is a header or footer shown by a Pull.
type Panel interface {
	refresh.View
	View() string
	SetWidth(width int)
}

// ticker is implemented by panels that animate between frames.
type ticker interface {
	Tick() bool
}

// PullOptions configure a Pull.
type PullOptions struct {
	WheelStep     int
	ReleaseDelay  time.Duration
	FrameInterval time.Duration
	TouchSlop     float64
	Mouse         bool
	// Gravity places the header and footer horizontally.
	Gravity refresh.Gravity
	Clock   clock.PassiveClock
	Logger  *slog.Logger
}

func (o PullOptions) withDefaults() PullOptions {
	if o.WheelStep <= 0 {
		o.WheelStep = 3
	}
	if o.ReleaseDelay <= 0 {
		o.ReleaseDelay = 150 * time.Millisecond
	}
	if o.FrameInterval <= 0 {
		o.FrameInterval = time.Second / 60
	}
	if o.Clock == nil {
		o.Clock = clock.RealClock{}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

type frameMsg struct {
	id string
}

type wheelIdleMsg struct {
	id  string
	seq int
}

// contentPane reports the viewport extent to the coordinator.
type contentPane struct {
	vp *viewport.Model
}

func (c contentPane) Size() (int, int) { return c.vp.Width, c.vp.Height }

// Pull hosts a scrollable viewport between a header and a footer. Wheel
// events scroll the viewport as a nested scroll of the coordinator, so
// scrolling past either edge pulls the header or footer into view; a left
// button drag drives the coordinator's pointer path directly.
type Pull struct {
	id     string
	opts   PullOptions
	log    *slog.Logger
	zones  *zone.Manager
	coord  *refresh.Coordinator
	nested *refresh.ChildHelper
	vp     *viewport.Model

	header        Panel
	footer        Panel
	pendingFooter Panel

	width  int
	height int

	frameWanted   bool
	frameQueued   bool
	wheelSeq      int
	pointerActive bool
	lastY         int
	hit           func(tea.MouseMsg) bool
}

// NewPull returns an empty container. id must be unique among the zones
// marked with zones.
func NewPull(id string, zones *zone.Manager, opts PullOptions) *Pull {
	opts = opts.withDefaults()
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Padding(0, 1)
	vp.MouseWheelEnabled = false
	vp.SetHorizontalStep(2)

	p := &Pull{
		id:     id,
		opts:   opts,
		log:    opts.Logger,
		zones:  zones,
		nested: refresh.NewChildHelper(),
		vp:     &vp,
	}
	p.coord = refresh.New(
		refresh.WithLogger(opts.Logger),
		refresh.WithClock(opts.Clock),
		refresh.WithTouchSlop(opts.TouchSlop),
		refresh.WithInvalidator(func() { p.frameWanted = true }),
	)
	// Roles are fixed here, so AddChild cannot fail.
	_ = p.coord.AddChild(contentPane{vp: p.vp}, refresh.LayoutParams{Role: refresh.RoleContent})
	p.nested.SetParent(p.coord)
	p.nested.SetNestedScrollingEnabled(true)
	p.hit = func(msg tea.MouseMsg) bool {
		if p.zones == nil {
			return false
		}
		info := p.zones.Get(p.id)
		return info != nil && info.InBounds(msg)
	}
	return p
}

func (p *Pull) Coordinator() *refresh.Coordinator { return p.coord }

func (p *Pull) Viewport() *viewport.Model { return p.vp }

func (p *Pull) Header() Panel { return p.header }

// Footer returns the attached footer, or the one waiting to replace it.
func (p *Pull) Footer() Panel {
	if p.pendingFooter != nil {
		return p.pendingFooter
	}
	return p.footer
}

// SetHeader attaches panel above the content. A nil panel detaches it.
func (p *Pull) SetHeader(panel Panel) error {
	if panel == nil {
		p.coord.RemoveChild(refresh.RoleHeader)
		p.header = nil
		return nil
	}
	panel.SetWidth(p.width)
	if err := p.coord.AddChild(panel, refresh.LayoutParams{
		Role:    refresh.RoleHeader,
		Gravity: p.opts.Gravity.Horizontal() | refresh.GravityBottom,
	}); err != nil {
		return err
	}
	p.header = panel
	return nil
}

// SetFooter attaches panel below the content. While a gesture involves the
// footer the swap waits until the coordinator is idle again.
func (p *Pull) SetFooter(panel Panel) error {
	if p.coord.State() != refresh.StateIdle {
		p.pendingFooter = panel
		return nil
	}
	return p.attachFooter(panel)
}

func (p *Pull) attachFooter(panel Panel) error {
	p.pendingFooter = nil
	if panel == nil {
		p.coord.RemoveChild(refresh.RoleFooter)
		p.footer = nil
		return nil
	}
	panel.SetWidth(p.width)
	if err := p.coord.AddChild(panel, refresh.LayoutParams{
		Role:    refresh.RoleFooter,
		Gravity: p.opts.Gravity.Horizontal() | refresh.GravityTop,
	}); err != nil {
		return err
	}
	p.footer = panel
	return nil
}

// SetSize sets the outer size of the container.
func (p *Pull) SetSize(width, height int) {
	p.width, p.height = width, height
	p.vp.Width = width
	p.vp.Height = height
	for _, panel := range []Panel{p.header, p.footer, p.pendingFooter} {
		if panel != nil {
			panel.SetWidth(width)
		}
	}
}

// SetContent replaces the viewport content.
func (p *Pull) SetContent(s string) { p.vp.SetContent(s) }

// ContentWidth is the width available to content inside the viewport frame.
func (p *Pull) ContentWidth() int {
	return max(p.width-p.vp.Style.GetHorizontalFrameSize(), 0)
}

// SetRefresh starts a refresh from code.
func (p *Pull) SetRefresh(fromHeader bool) tea.Cmd {
	p.coord.SetRefresh(fromHeader)
	return p.flush()
}

// CompleteRefresh closes the running refresh. A frame is always requested
// so that a panel holding the completion gets ticked.
func (p *Pull) CompleteRefresh() tea.Cmd {
	p.coord.CompleteRefresh()
	p.frameWanted = true
	return p.flush()
}

// Kick schedules a frame when the coordinator asked for one outside of
// Update, e.g. after a restore.
func (p *Pull) Kick() tea.Cmd { return p.flush() }

// Update handles mouse input and the container's own frame messages.
func (p *Pull) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.id != p.id {
			return nil
		}
		p.frameQueued = false
		p.coord.ComputeScroll()
		busy := p.coord.State() == refresh.StateSettling
		for _, panel := range []Panel{p.header, p.footer} {
			if tk, ok := panel.(ticker); ok && tk.Tick() {
				busy = true
			}
		}
		if p.pendingFooter != nil && p.coord.State() == refresh.StateIdle {
			if err := p.attachFooter(p.pendingFooter); err != nil {
				p.log.Warn("footer swap failed", "error", err)
			}
		}
		if busy {
			p.frameWanted = true
		}
		return p.flush()

	case wheelIdleMsg:
		if msg.id != p.id || msg.seq != p.wheelSeq {
			return nil
		}
		p.nested.StopNestedScroll()
		return p.flush()

	case tea.MouseMsg:
		if !p.opts.Mouse {
			return nil
		}
		return p.handleMouse(msg)
	}
	return nil
}

func (p *Pull) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action == tea.MouseActionPress && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown) {
		if !p.hit(msg) {
			return nil
		}
		dy := p.opts.WheelStep
		if msg.Button == tea.MouseButtonWheelUp {
			dy = -dy
		}
		p.Scroll(dy)
		p.wheelSeq++
		seq := p.wheelSeq
		return tea.Batch(p.flush(), tea.Tick(p.opts.ReleaseDelay, func(time.Time) tea.Msg {
			return wheelIdleMsg{id: p.id, seq: seq}
		}))
	}

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !p.hit(msg) {
			return nil
		}
		p.pointerActive = true
		p.lastY = msg.Y
		p.coord.OnPointerEvent(refresh.PointerEvent{Action: refresh.PointerPress, Y: float64(msg.Y)})
	case msg.Action == tea.MouseActionMotion && p.pointerActive:
		p.pointerMove(msg.Y)
	case msg.Action == tea.MouseActionRelease && p.pointerActive:
		p.pointerActive = false
		p.coord.OnPointerEvent(refresh.PointerEvent{Action: refresh.PointerRelease, Y: float64(msg.Y)})
	default:
		return nil
	}
	return p.flush()
}

// Scroll feeds dy rows as one nested scroll step: the coordinator is
// offered the delta first, the viewport takes what it can and the rest goes
// back to the coordinator.
func (p *Pull) Scroll(dy int) {
	p.nested.StartNestedScroll(refresh.AxisVertical)
	consumed := p.nested.DispatchNestedPreScroll(dy)
	rest := dy - consumed
	used := p.scrollContent(rest)
	p.nested.DispatchNestedScroll(used, rest-used)
}

// Release ends a nested scroll started by Scroll.
func (p *Pull) Release() tea.Cmd {
	p.nested.StopNestedScroll()
	return p.flush()
}

// pointerMove drags the content like a touch screen while the viewport can
// still scroll, and hands the gesture to the coordinator at the edges.
func (p *Pull) pointerMove(y int) {
	dy := p.lastY - y
	if dy == 0 {
		return
	}
	if p.coord.State() == refresh.StateIdle {
		if used := p.scrollContent(dy); used != 0 {
			p.lastY = y
			p.coord.OnPointerEvent(refresh.PointerEvent{Action: refresh.PointerPress, Y: float64(y)})
			return
		}
	}
	p.lastY = y
	p.coord.OnPointerEvent(refresh.PointerEvent{Action: refresh.PointerMove, Y: float64(y)})
}

func (p *Pull) scrollContent(dy int) int {
	before := p.vp.YOffset
	switch {
	case dy > 0:
		p.vp.ScrollDown(dy)
	case dy < 0:
		p.vp.ScrollUp(-dy)
	}
	return p.vp.YOffset - before
}

func (p *Pull) flush() tea.Cmd {
	if !p.frameWanted {
		return nil
	}
	p.frameWanted = false
	if p.frameQueued {
		return nil
	}
	p.frameQueued = true
	id := p.id
	return tea.Tick(p.opts.FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}

// View renders exactly height rows: the viewport shifted by the content
// offset with the header or footer in the uncovered rows.
func (p *Pull) View() string {
	if p.height <= 0 {
		return ""
	}
	lines := fitRows(strings.Split(p.vp.View(), "\n"), p.height)
	offset := p.coord.ContentOffset()
	switch {
	case offset < 0:
		reveal := min(-offset, p.height)
		top := p.panelRows(refresh.RoleHeader, reveal)
		lines = append(top, lines[:p.height-reveal]...)
	case offset > 0:
		reveal := min(offset, p.height)
		bottom := p.panelRows(refresh.RoleFooter, reveal)
		lines = append(lines[reveal:], bottom...)
	}
	out := strings.Join(lines, "\n")
	if p.zones == nil {
		return out
	}
	return p.zones.Mark(p.id, out)
}

// panelRows renders n rows for the header or footer. A partly revealed
// header shows its bottom rows and a footer its top rows; extra rows are
// distributed by the panel's vertical gravity.
func (p *Pull) panelRows(role refresh.Role, n int) []string {
	rows := make([]string, 0, n)
	view, params, ok := p.coord.Child(role)
	panel, isPanel := view.(Panel)
	if !ok || !isPanel {
		for range n {
			rows = append(rows, "")
		}
		return rows
	}

	body := strings.Split(panel.View(), "\n")
	for i, line := range body {
		left := refresh.HorizontalOffset(params.Gravity, p.width, lipgloss.Width(line), params.Margin)
		body[i] = ansi.Truncate(strings.Repeat(" ", left)+line, p.width, "")
	}

	if n < len(body) {
		if role == refresh.RoleHeader {
			return append(rows, body[len(body)-n:]...)
		}
		return append(rows, body[:n]...)
	}
	pad := refresh.VerticalOffset(params.Gravity, n, len(body), params.Margin)
	for range pad {
		rows = append(rows, "")
	}
	rows = append(rows, body...)
	for len(rows) < n {
		rows = append(rows, "")
	}
	return rows
}

func fitRows(lines []string, n int) []string {
	if len(lines) > n {
		return lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}
