package indicator

import "github.com/charmbracelet/lipgloss"

var hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")).Italic(true)

// Hint is a passive indicator. It shows how far the content is pulled but
// never starts a refresh.
type Hint struct {
	text     string
	width    int
	fraction float64
}

// NewHint returns a passive indicator showing text.
func NewHint(text string) *Hint {
	return &Hint{text: text}
}

func (h *Hint) SetWidth(width int) { h.width = max(width, 0) }

func (h *Hint) Size() (int, int) { return h.width, 2 }

func (h *Hint) IsIndicator() bool { return true }

func (h *Hint) OnOffset(fraction float64) { h.fraction = fraction }

func (h *Hint) OnRelease(bool) {}

func (h *Hint) OnReset() { h.fraction = 0 }

func (h *Hint) ContentSize() int { return 2 }

func (h *Hint) View() string {
	return "\n" + hintStyle.Render(h.text)
}
