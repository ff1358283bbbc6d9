package refresh_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/kyaoi/mdpull/internal/refresh"
)

// fakeIndicator records every Refreshable callback.
type fakeIndicator struct {
	size      int
	indicator bool
	offsets   []float64
	releases  []bool
	resets    int
}

func (f *fakeIndicator) Size() (int, int)          { return 20, f.size }
func (f *fakeIndicator) IsIndicator() bool         { return f.indicator }
func (f *fakeIndicator) OnOffset(fraction float64) { f.offsets = append(f.offsets, fraction) }
func (f *fakeIndicator) OnRelease(trigger bool)    { f.releases = append(f.releases, trigger) }
func (f *fakeIndicator) OnReset()                  { f.resets++ }
func (f *fakeIndicator) ContentSize() int          { return f.size }

type fakeView struct {
	width, height int
}

func (v fakeView) Size() (int, int) { return v.width, v.height }

func newCoordinator(t *testing.T, header, footer refresh.View, opts ...refresh.Option) (*refresh.Coordinator, *testingclock.FakeClock) {
	t.Helper()
	clk := testingclock.NewFakeClock(time.Unix(1700000000, 0))
	c := refresh.New(append([]refresh.Option{refresh.WithClock(clk)}, opts...)...)
	require.NoError(t, c.AddChild(fakeView{width: 80, height: 24}, refresh.LayoutParams{Role: refresh.RoleContent}))
	if header != nil {
		require.NoError(t, c.AddChild(header, refresh.LayoutParams{Role: refresh.RoleHeader}))
	}
	if footer != nil {
		require.NoError(t, c.AddChild(footer, refresh.LayoutParams{Role: refresh.RoleFooter}))
	}
	return c, clk
}

// scroll feeds dy the way a content pane pinned at its edge does: the
// coordinator is offered the delta first and whatever it leaves comes back
// unconsumed.
func scroll(c *refresh.Coordinator, dy int) {
	consumed := c.OnNestedPreScroll(dy)
	if rest := dy - consumed; rest != 0 {
		c.OnNestedScroll(0, rest)
	}
}

// settle runs frames until the coordinator leaves the settling state and
// returns the offsets applied along the way.
func settle(t *testing.T, c *refresh.Coordinator, clk *testingclock.FakeClock) []int {
	t.Helper()
	var offsets []int
	for i := 0; i < 100 && c.State() == refresh.StateSettling; i++ {
		clk.Step(16 * time.Millisecond)
		c.ComputeScroll()
		offsets = append(offsets, c.ContentOffset())
	}
	require.NotEqual(t, refresh.StateSettling, c.State(), "settle did not finish")
	return offsets
}
