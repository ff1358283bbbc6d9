package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	zone "github.com/lrstanley/bubblezone"
	"k8s.io/utils/clock"

	"github.com/kyaoi/mdpull/internal/config"
	"github.com/kyaoi/mdpull/internal/docs"
	"github.com/kyaoi/mdpull/internal/indicator"
	"github.com/kyaoi/mdpull/internal/refresh"
	"github.com/kyaoi/mdpull/internal/session"
)

const (
	pullZoneID   = "mdpull-content"
	statusHeight = 1
	noMoreText   = "no more documents"
)

var (
	helpBoxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Background(lipgloss.Color("#1f2335"))
	statusStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#a9b1d6")).
			Background(lipgloss.Color("#1f2335"))
	docTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1b26")).
			Background(lipgloss.Color("#7aa2f7")).
			Bold(true).
			Padding(0, 1)
	tagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89"))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
)

// Model implements the Bubble Tea program for the markdown reader.
type Model struct {
	pull     *Pull
	zones    *zone.Manager
	renderer *glamour.TermRenderer
	cfg      config.Config
	log      *slog.Logger
	clock    clock.PassiveClock

	lib       *docs.Library
	loaded    []docs.Doc
	exhausted bool

	headerText *indicator.Text
	footerText *indicator.Text

	store    *session.Store
	restoreY int
	restored bool

	showHelp   bool
	pendingKey string
	ready      bool
	width      int
	height     int
	err        error
	pending    []tea.Cmd

	watcher   *fsnotify.Watcher
	watchDirs map[string]bool
	watchChan chan tea.Msg
}

type fileEventMsg struct {
	path string
	op   fsnotify.Op
}

type fileWatchErrMsg struct {
	err error
}

// NewModel constructs the reader model with the provided initial state.
func NewModel(state State) *Model {
	log := state.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	clk := state.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	cfg := state.Config

	m := &Model{
		zones:     zone.New(),
		cfg:       cfg,
		log:       log,
		clock:     clk,
		lib:       state.Library,
		loaded:    state.Docs,
		store:     state.Store,
		watchDirs: make(map[string]bool),
	}
	m.pull = NewPull(pullZoneID, m.zones, PullOptions{
		WheelStep:     cfg.Refresh.WheelStep,
		ReleaseDelay:  cfg.Refresh.ReleaseDelay.Duration,
		FrameInterval: cfg.Refresh.FrameInterval(),
		TouchSlop:     cfg.Refresh.TouchSlop,
		Mouse:         cfg.Viewer.Mouse,
		Gravity:       gravityFor(cfg.Refresh.HeaderGravity),
		Clock:         clk,
		Logger:        log,
	})
	m.attachIndicators()
	coord := m.pull.Coordinator()
	coord.SetOnRefreshListener(m)

	if state.Restore != nil {
		m.restoreY = state.Restore.YOffset
		coord.RestoreState(state.Restore.Refresh)
		if coord.State() == refresh.StateRefreshing {
			fromHeader := coord.ContentOffset() < 0
			for _, text := range []*indicator.Text{m.headerText, m.footerText} {
				if text != nil {
					text.OnRefreshStart(fromHeader)
				}
			}
			m.OnRefreshStart(fromHeader)
		}
	}
	return m
}

func (m *Model) attachIndicators() {
	var header, footer Panel
	switch m.cfg.Refresh.Indicator {
	case config.IndicatorPlain:
		header = indicator.NewPlain("↓ reload")
		footer = indicator.NewPlain("↑ next document")
	default:
		opts := []indicator.Option{
			indicator.WithLinger(m.cfg.Refresh.ResultLinger.Duration),
			indicator.WithClock(m.clock),
			indicator.WithFPS(m.cfg.Refresh.FrameRate),
		}
		m.headerText = indicator.NewHeader(opts...)
		m.footerText = indicator.NewFooter(opts...)
		header, footer = m.headerText, m.footerText
		m.pull.Coordinator().SetInternalOnRefreshListener(indicator.Listener(m.headerText, m.footerText))
	}
	if err := m.pull.SetHeader(header); err != nil {
		m.err = err
	}
	if !m.hasNext() {
		m.exhausted = true
		footer = indicator.NewHint(noMoreText)
	}
	if err := m.pull.SetFooter(footer); err != nil {
		m.err = err
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := m.takePending()
	if m.cfg.Viewer.Watch {
		for _, doc := range m.loaded {
			cmds = append(cmds, m.startWatching(doc.Abs))
		}
	}
	cmds = append(cmds, m.pull.Kick())
	return tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		helpContent := strings.Join([]string{
			"help (? / esc to close)",
			"wheel past the top  : reload",
			"wheel past the end  : load the next document",
			"drag with the mouse : pull the content",
			"r                   : reload",
			"n                   : next document",
			"j / k               : scroll",
			"ctrl+d / ctrl+u     : half page",
			"gg / G              : top / bottom",
			"q / ctrl+c          : quit",
		}, "\n")
		helpOverlay := helpBoxStyle.Render(helpContent)
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpOverlay)
		}
		return helpOverlay
	}

	body := lipgloss.JoinVertical(lipgloss.Left, m.pull.View(), m.statusLine())
	return m.zones.Scan(body)
}

func (m *Model) statusLine() string {
	if m.err != nil {
		return errStyle.Render(m.err.Error())
	}
	var parts []string
	if len(m.loaded) > 0 {
		parts = append(parts, m.loaded[0].Path)
		if n := len(m.loaded); n > 1 {
			parts = append(parts, fmt.Sprintf("+%d", n-1))
		}
	}
	if state := m.pull.Coordinator().State(); state != refresh.StateIdle {
		parts = append(parts, state.String())
	}
	parts = append(parts, fmt.Sprintf("%3.f%%", m.pull.Viewport().ScrollPercent()*100))
	line := strings.Join(parts, "  ")
	if m.width > 0 {
		return statusStyle.Width(m.width).MaxWidth(m.width).Render(line)
	}
	return statusStyle.Render(line)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileEventMsg:
		return m, m.batch(m.handleFileEvent(msg))
	case fileWatchErrMsg:
		m.err = msg.err
		return m, m.waitForFileEvent()
	case docsLoadedMsg:
		return m, m.batch(m.applyLoaded(msg))
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, m.batch(nil)

	case tea.KeyMsg:
		key := msg.String()
		if key != "g" {
			m.pendingKey = ""
		}

		if m.showHelp {
			m.pendingKey = ""
			switch key {
			case "q", "?", "esc":
				m.showHelp = false
			}
			return m, nil
		}

		switch key {
		case "q", "ctrl+c":
			m.saveSession()
			m.stopWatching()
			return m, tea.Quit
		case "?":
			m.showHelp = true
			m.pendingKey = ""
			return m, nil
		case "r":
			return m, m.batch(m.pull.SetRefresh(true))
		case "n":
			return m, m.batch(m.pull.SetRefresh(false))
		}

		if m.handleContentKey(key) {
			return m, nil
		}
		vp := m.pull.Viewport()
		var cmd tea.Cmd
		*vp, cmd = vp.Update(msg)
		return m, cmd
	}

	return m, m.batch(m.pull.Update(msg))
}

func (m *Model) handleContentKey(key string) bool {
	vp := m.pull.Viewport()
	switch key {
	case "j", "down":
		vp.ScrollDown(1)
	case "k", "up":
		vp.ScrollUp(1)
	case "ctrl+d":
		vp.HalfPageDown()
	case "ctrl+u":
		vp.HalfPageUp()
	case "h":
		vp.ScrollLeft(max(2, vp.Width/6))
	case "l":
		vp.ScrollRight(max(2, vp.Width/6))
	case "g":
		if m.pendingKey == "g" {
			vp.GotoTop()
			m.pendingKey = ""
		} else {
			m.pendingKey = "g"
		}
		return true
	case "G":
		m.pendingKey = ""
		vp.GotoBottom()
	default:
		return false
	}
	m.pendingKey = ""
	return true
}

// OnRefreshStart queues the load for the side that refreshed: the header
// reloads the shown documents, the footer appends the next one.
func (m *Model) OnRefreshStart(fromHeader bool) {
	if fromHeader {
		m.pending = append(m.pending, m.reloadCmd())
		return
	}
	m.pending = append(m.pending, m.nextCmd())
}

// OnRefreshComplete never holds the completion; the indicators do.
func (m *Model) OnRefreshComplete(*refresh.Completion) bool { return false }

func (m *Model) takePending() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

func (m *Model) batch(cmd tea.Cmd) tea.Cmd {
	cmds := m.takePending()
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= statusHeight {
		return
	}

	m.width = width
	m.height = height
	m.pull.SetSize(width, height-statusHeight)

	renderer, err := newRenderer(m.cfg.Viewer.Style, m.pull.ContentWidth())
	if err != nil {
		m.err = err
		return
	}
	m.renderer = renderer
	m.renderDocs()
	if !m.ready {
		m.ready = true
		if m.restoreY > 0 {
			m.pull.Viewport().SetYOffset(m.restoreY)
		}
	}
}

func (m *Model) renderDocs() {
	if m.renderer == nil {
		return
	}
	sections := make([]string, 0, len(m.loaded))
	for _, doc := range m.loaded {
		rendered, err := m.renderer.Render(doc.Body)
		if err != nil {
			m.err = err
			return
		}
		sections = append(sections, docHeading(doc)+"\n"+rendered)
	}
	m.err = nil
	m.pull.SetContent(strings.Join(sections, "\n"))
}

func docHeading(doc docs.Doc) string {
	heading := docTitleStyle.Render(doc.Title)
	if len(doc.Tags) > 0 {
		heading += " " + tagStyle.Render("#"+strings.Join(doc.Tags, " #"))
	}
	return heading
}

func (m *Model) hasNext() bool {
	if m.lib == nil || len(m.loaded) == 0 {
		return false
	}
	_, ok := m.lib.Next(m.loaded[len(m.loaded)-1].Path)
	return ok
}

func (m *Model) saveSession() {
	if m.store == nil || m.lib == nil {
		return
	}
	paths := make([]string, 0, len(m.loaded))
	for _, doc := range m.loaded {
		paths = append(paths, doc.Path)
	}
	err := m.store.Save(session.Session{
		Root:    m.lib.Root(),
		Loaded:  paths,
		YOffset: m.pull.Viewport().YOffset,
		Refresh: m.pull.Coordinator().SaveState(),
		SavedAt: m.clock.Now(),
	})
	if err != nil {
		m.log.Error("failed to save session", "error", err)
	}
}

func gravityFor(name string) refresh.Gravity {
	switch name {
	case config.GravityStart:
		return refresh.GravityStart
	case config.GravityEnd:
		return refresh.GravityEnd
	default:
		return refresh.GravityCenterHorizontal
	}
}

func newRenderer(style string, width int) (*glamour.TermRenderer, error) {
	if style == "" {
		style = "tokyo-night"
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width, 0)),
	)
}

func (m *Model) startWatching(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	if err := m.ensureWatcher(); err != nil {
		m.err = err
		return nil
	}

	dir := filepath.Dir(filepath.Clean(path))
	if m.watchDirs[dir] {
		return nil
	}
	if err := m.watcher.Add(dir); err != nil {
		m.err = err
		return nil
	}
	m.watchDirs[dir] = true
	if len(m.watchDirs) == 1 {
		return m.waitForFileEvent()
	}
	return nil
}

func (m *Model) ensureWatcher() error {
	if m.watcher != nil {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = watcher
	m.watchChan = make(chan tea.Msg, 10)

	go m.watchLoop(watcher, m.watchChan)
	return nil
}

func (m *Model) stopWatching() {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.Close(); err != nil {
		m.log.Warn("failed to close watcher", "error", err)
	}
	m.watcher = nil
}

func (m *Model) watchLoop(watcher *fsnotify.Watcher, out chan<- tea.Msg) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			out <- fileEventMsg{path: event.Name, op: event.Op}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			out <- fileWatchErrMsg{err: err}
		}
	}
}

func (m *Model) waitForFileEvent() tea.Cmd {
	if m.watchChan == nil {
		return nil
	}
	ch := m.watchChan
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// handleFileEvent starts a header refresh when a shown document changed on
// disk. A refresh that is already running absorbs the event.
func (m *Model) handleFileEvent(msg fileEventMsg) tea.Cmd {
	changed := filepath.Clean(msg.path)
	for _, doc := range m.loaded {
		if filepath.Clean(doc.Abs) == changed {
			m.log.Debug("document changed", "path", doc.Path, "op", msg.op.String())
			return tea.Batch(m.pull.SetRefresh(true), m.waitForFileEvent())
		}
	}
	return m.waitForFileEvent()
}
