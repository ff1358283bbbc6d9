package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/kyaoi/mdpull/internal/indicator"
	"github.com/kyaoi/mdpull/internal/refresh"
)

func newTestPull(t *testing.T) (*Pull, *indicator.Text, *testingclock.FakeClock) {
	t.Helper()
	clk := testingclock.NewFakeClock(time.Unix(1700000000, 0))
	p := NewPull("test", nil, PullOptions{
		WheelStep:     3,
		Mouse:         true,
		Clock:         clk,
		FrameInterval: time.Millisecond,
		ReleaseDelay:  time.Millisecond,
	})
	p.hit = func(tea.MouseMsg) bool { return true }
	header := indicator.NewHeader(indicator.WithClock(clk))
	require.NoError(t, p.SetHeader(header))
	require.NoError(t, p.SetFooter(indicator.NewFooter(indicator.WithClock(clk))))
	p.SetSize(40, 10)

	lines := make([]string, 20)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %02d", i)
	}
	p.SetContent(strings.Join(lines, "\n"))
	return p, header, clk
}

// runFrames delivers frame messages while the pull keeps asking for them.
func runFrames(p *Pull, clk *testingclock.FakeClock) {
	for i := 0; i < 200 && p.frameQueued; i++ {
		clk.Step(16 * time.Millisecond)
		p.Update(frameMsg{id: p.id})
	}
}

func wheel(button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{Button: button, Action: tea.MouseActionPress}
}

func TestWheelPastTopPullsHeader(t *testing.T) {
	p, header, clk := newTestPull(t)
	coord := p.Coordinator()

	for range 3 {
		require.NotNil(t, p.Update(wheel(tea.MouseButtonWheelUp)))
	}
	assert.Equal(t, refresh.StateDragFromTop, coord.State())
	assert.Equal(t, -4, coord.ContentOffset())
	assert.Equal(t, indicator.PhaseArmed, header.Phase())

	assert.Nil(t, p.Update(wheelIdleMsg{id: p.id, seq: p.wheelSeq - 1}), "stale idle message")
	assert.Equal(t, refresh.StateDragFromTop, coord.State())

	p.Update(wheelIdleMsg{id: p.id, seq: p.wheelSeq})
	assert.Equal(t, refresh.StateSettling, coord.State())
	runFrames(p, clk)
	assert.Equal(t, refresh.StateRefreshing, coord.State())
	assert.Equal(t, -indicator.TextRows, coord.ContentOffset())
}

func TestWheelScrollsContentBeforePulling(t *testing.T) {
	p, _, _ := newTestPull(t)
	p.Viewport().SetYOffset(5)

	p.Update(wheel(tea.MouseButtonWheelUp))
	assert.Equal(t, 2, p.Viewport().YOffset)
	assert.Equal(t, refresh.StateIdle, p.Coordinator().State())

	p.Update(wheel(tea.MouseButtonWheelUp))
	assert.Equal(t, 0, p.Viewport().YOffset)
	assert.Equal(t, refresh.StateDragFromTop, p.Coordinator().State(), "the row the viewport could not take pulls")
	assert.Equal(t, 0, p.Coordinator().ContentOffset())

	p.Update(wheel(tea.MouseButtonWheelDown))
	assert.Equal(t, refresh.StateIdle, p.Coordinator().State())
	assert.Equal(t, 2, p.Viewport().YOffset, "the excess goes back to the viewport")
}

func TestWheelPastBottomPullsFooter(t *testing.T) {
	p, _, clk := newTestPull(t)
	var fromHeader []bool
	p.Coordinator().SetOnRefreshListener(refresh.RefreshListenerFuncs{Start: func(h bool) {
		fromHeader = append(fromHeader, h)
	}})
	p.Viewport().GotoBottom()

	p.Update(wheel(tea.MouseButtonWheelDown))
	p.Update(wheel(tea.MouseButtonWheelDown))
	assert.Equal(t, 3, p.Coordinator().ContentOffset())

	p.Update(wheelIdleMsg{id: p.id, seq: p.wheelSeq})
	runFrames(p, clk)
	assert.Equal(t, []bool{false}, fromHeader)
	assert.Equal(t, refresh.StateRefreshing, p.Coordinator().State())
}

func TestViewRevealsHeaderRows(t *testing.T) {
	p, _, _ := newTestPull(t)
	for range 3 {
		p.Update(wheel(tea.MouseButtonWheelUp))
	}
	require.Equal(t, -4, p.Coordinator().ContentOffset())

	rows := strings.Split(ansi.Strip(p.View()), "\n")
	require.Len(t, rows, 10)
	assert.Empty(t, strings.TrimSpace(rows[0]), "header sticks to the content")
	assert.Contains(t, rows[1], "release to reload")
	assert.Contains(t, rows[4], "line 00")
}

func TestViewRevealsFooterRows(t *testing.T) {
	p, _, _ := newTestPull(t)
	p.Viewport().GotoBottom()
	p.Update(wheel(tea.MouseButtonWheelDown))
	require.Equal(t, 1, p.Coordinator().ContentOffset())

	rows := strings.Split(ansi.Strip(p.View()), "\n")
	require.Len(t, rows, 10)
	assert.Contains(t, rows[8], "line 19")
	assert.Contains(t, rows[9], "pull for the next document")
}

func TestPanelGravity(t *testing.T) {
	tests := []struct {
		name    string
		gravity refresh.Gravity
		check   func(t *testing.T, row string)
	}{
		{name: "start", gravity: refresh.GravityStart, check: func(t *testing.T, row string) {
			assert.True(t, strings.HasPrefix(row, "hello"))
		}},
		{name: "center", gravity: refresh.GravityCenterHorizontal, check: func(t *testing.T, row string) {
			assert.Equal(t, strings.Repeat(" ", 17)+"hello", row)
		}},
		{name: "end", gravity: refresh.GravityEnd, check: func(t *testing.T, row string) {
			assert.Equal(t, strings.Repeat(" ", 35)+"hello", row)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPull("g", nil, PullOptions{Gravity: tt.gravity})
			require.NoError(t, p.SetHeader(indicator.NewPlain("hello")))
			p.SetSize(40, 5)
			rows := p.panelRows(refresh.RoleHeader, 1)
			require.Len(t, rows, 1)
			tt.check(t, ansi.Strip(rows[0]))
		})
	}
}

func TestPointerDragAtTopPulls(t *testing.T) {
	p, _, clk := newTestPull(t)
	press := tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress, Y: 2}
	p.Update(press)
	p.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion, Y: 8})
	assert.Equal(t, refresh.StateDragFromTop, p.Coordinator().State())
	assert.Equal(t, -3, p.Coordinator().ContentOffset())

	p.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease, Y: 8})
	runFrames(p, clk)
	assert.Equal(t, refresh.StateRefreshing, p.Coordinator().State())
}

func TestPointerDragScrollsContentFirst(t *testing.T) {
	p, _, _ := newTestPull(t)
	p.Viewport().SetYOffset(5)
	p.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress, Y: 2})
	p.Update(tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion, Y: 5})
	assert.Equal(t, 2, p.Viewport().YOffset)
	assert.Equal(t, refresh.StateIdle, p.Coordinator().State())
}

func TestMouseDisabled(t *testing.T) {
	p, _, _ := newTestPull(t)
	p.opts.Mouse = false
	assert.Nil(t, p.Update(wheel(tea.MouseButtonWheelUp)))
	assert.Equal(t, refresh.StateIdle, p.Coordinator().State())
}

func TestFooterSwapWaitsForIdle(t *testing.T) {
	p, _, clk := newTestPull(t)
	p.SetRefresh(false)
	runFrames(p, clk)
	require.Equal(t, refresh.StateRefreshing, p.Coordinator().State())

	hint := indicator.NewHint("no more documents")
	require.NoError(t, p.SetFooter(hint))
	assert.Same(t, hint, p.Footer())
	assert.IsType(t, &indicator.Text{}, p.Coordinator().Refreshable(refresh.TargetFooter))

	p.CompleteRefresh()
	runFrames(p, clk)
	assert.Equal(t, refresh.StateIdle, p.Coordinator().State())
	assert.Same(t, hint, p.Coordinator().Refreshable(refresh.TargetFooter))
}

func TestForeignFrameIgnored(t *testing.T) {
	p, _, _ := newTestPull(t)
	assert.Nil(t, p.Update(frameMsg{id: "other"}))
}
