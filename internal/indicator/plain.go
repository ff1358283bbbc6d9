package indicator

import "strings"

// Plain is a static panel. It does not implement refresh.Refreshable, so
// the coordinator wraps it and it still starts refreshes, just without any
// feedback.
type Plain struct {
	lines []string
	width int
}

// NewPlain returns a panel showing text, one row per line.
func NewPlain(text string) *Plain {
	return &Plain{lines: strings.Split(text, "\n")}
}

func (p *Plain) SetWidth(width int) { p.width = max(width, 0) }

func (p *Plain) Size() (int, int) { return p.width, len(p.lines) }

func (p *Plain) View() string {
	return labelStyle.Render(strings.Join(p.lines, "\n"))
}
