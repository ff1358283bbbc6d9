package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/mdpull/internal/docs"
	"github.com/kyaoi/mdpull/internal/indicator"
)

type loadKind int

const (
	loadReload loadKind = iota
	loadNext
)

var errNoNext = errors.New("no further document")

type docsLoadedMsg struct {
	kind loadKind
	docs []docs.Doc
	err  error
}

// reloadCmd reads every shown document again.
func (m *Model) reloadCmd() tea.Cmd {
	lib := m.lib
	paths := make([]string, 0, len(m.loaded))
	for _, doc := range m.loaded {
		paths = append(paths, doc.Path)
	}
	return func() tea.Msg {
		if lib == nil {
			return docsLoadedMsg{kind: loadReload, err: errors.New("no library")}
		}
		loaded := make([]docs.Doc, 0, len(paths))
		for _, p := range paths {
			doc, err := lib.Read(p)
			if err != nil {
				return docsLoadedMsg{kind: loadReload, err: err}
			}
			loaded = append(loaded, doc)
		}
		return docsLoadedMsg{kind: loadReload, docs: loaded}
	}
}

// nextCmd reads the document after the last shown one. The library is
// rescanned first so that new files are found.
func (m *Model) nextCmd() tea.Cmd {
	lib := m.lib
	if lib == nil || len(m.loaded) == 0 {
		return func() tea.Msg { return docsLoadedMsg{kind: loadNext, err: errNoNext} }
	}
	if err := lib.Rescan(); err != nil {
		return func() tea.Msg { return docsLoadedMsg{kind: loadNext, err: err} }
	}
	next, ok := lib.Next(m.loaded[len(m.loaded)-1].Path)
	if !ok {
		return func() tea.Msg { return docsLoadedMsg{kind: loadNext, err: errNoNext} }
	}
	return func() tea.Msg {
		doc, err := lib.Read(next)
		if err != nil {
			return docsLoadedMsg{kind: loadNext, err: err}
		}
		return docsLoadedMsg{kind: loadNext, docs: []docs.Doc{doc}}
	}
}

// applyLoaded shows the loaded documents and closes the refresh.
func (m *Model) applyLoaded(msg docsLoadedMsg) tea.Cmd {
	text := m.headerText
	if msg.kind == loadNext {
		text = m.footerText
	}

	var cmds []tea.Cmd
	switch {
	case msg.err != nil:
		m.log.Warn("refresh failed", "error", msg.err)
		if text != nil {
			text.SetResult(msg.err.Error(), true)
		}
		if errors.Is(msg.err, errNoNext) {
			m.markExhausted()
		} else {
			m.err = msg.err
		}
	case msg.kind == loadReload:
		offset := m.pull.Viewport().YOffset
		m.loaded = msg.docs
		m.renderDocs()
		m.pull.Viewport().SetYOffset(offset)
		if text != nil {
			text.SetResult(fmt.Sprintf("reloaded %d document(s)", len(msg.docs)), false)
		}
	default:
		m.loaded = append(m.loaded, msg.docs...)
		m.renderDocs()
		for _, doc := range msg.docs {
			if text != nil {
				text.SetResult("loaded "+doc.Title, false)
			}
			if m.cfg.Viewer.Watch {
				cmds = append(cmds, m.startWatching(doc.Abs))
			}
		}
		if !m.hasNext() {
			m.markExhausted()
		}
	}
	m.log.Info("refresh done", "kind", int(msg.kind), "documents", len(m.loaded))
	cmds = append(cmds, m.pull.CompleteRefresh())
	return tea.Batch(cmds...)
}

func (m *Model) markExhausted() {
	if m.exhausted {
		return
	}
	m.exhausted = true
	hint := indicator.NewHint(noMoreText)
	if err := m.pull.SetFooter(hint); err != nil {
		m.err = err
	}
}
