package refresh_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kyaoi/mdpull/internal/refresh"
	"github.com/kyaoi/mdpull/internal/refresh/mocks"
)

func TestDragIsDamped(t *testing.T) {
	t.Parallel()
	header := &fakeIndicator{size: 80}
	c, _ := newCoordinator(t, header, nil)

	scroll(c, -200)
	assert.Equal(t, refresh.StateDragFromTop, c.State())
	assert.Equal(t, -100, c.ContentOffset())
	assert.Equal(t, refresh.TargetHeader, c.ActiveTarget())

	scroll(c, -20)
	assert.Equal(t, -110, c.ContentOffset())

	scroll(c, 40)
	assert.Equal(t, -90, c.ContentOffset())
	assert.InDelta(t, 90.0/80.0, header.offsets[len(header.offsets)-1], 1e-9)
}

func TestDragFromBottomEngagesFooter(t *testing.T) {
	t.Parallel()
	header := &fakeIndicator{size: 3}
	footer := &fakeIndicator{size: 3}
	c, _ := newCoordinator(t, header, footer)

	scroll(c, 4)
	assert.Equal(t, refresh.StateDragFromBottom, c.State())
	assert.Equal(t, 2, c.ContentOffset())
	assert.Equal(t, refresh.TargetFooter, c.ActiveTarget())
	assert.Empty(t, header.offsets)
	require.NotEmpty(t, footer.offsets)
}

func TestDragStopsAtRestInsteadOfFlipping(t *testing.T) {
	t.Parallel()
	header := &fakeIndicator{size: 80}
	footer := &fakeIndicator{size: 80}
	c, _ := newCoordinator(t, header, footer)

	scroll(c, -40)
	require.Equal(t, -20, c.ContentOffset())

	consumed := c.OnNestedPreScroll(60)
	assert.Equal(t, 40, consumed, "only the way back to rest is consumed")
	assert.Equal(t, refresh.StateIdle, c.State())
	assert.Equal(t, 0, c.ContentOffset())
	assert.Equal(t, refresh.TargetNone, c.ActiveTarget())
	assert.Equal(t, refresh.TargetNone, c.LastActiveTarget())
	assert.Equal(t, 1, header.resets)
	assert.Empty(t, footer.offsets)
}

func TestZeroNetDisplacementReturnsToIdle(t *testing.T) {
	t.Parallel()
	sequences := [][]int{
		{-4, 4},
		{6, -2, -4},
		{-3, 1, 2},
		{10, -20, 10},
		{-1, -1, 2},
		{7, -7, -7, 7},
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		var seq []int
		sum := 0
		for range 1 + rng.IntN(12) {
			d := rng.IntN(61) - 30
			seq = append(seq, d)
			sum += d
		}
		sequences = append(sequences, append(seq, -sum))
	}

	for _, seq := range sequences {
		c, _ := newCoordinator(t, &fakeIndicator{size: 5}, &fakeIndicator{size: 5})
		for _, dy := range seq {
			scroll(c, dy)
			if c.ContentOffset() < 0 {
				assert.NotEqual(t, refresh.StateDragFromBottom, c.State(), "sequence %v", seq)
			}
			if c.ContentOffset() > 0 {
				assert.NotEqual(t, refresh.StateDragFromTop, c.State(), "sequence %v", seq)
			}
		}
		assert.Equal(t, refresh.StateIdle, c.State(), "sequence %v", seq)
		assert.Equal(t, 0, c.ContentOffset(), "sequence %v", seq)
	}
}

func TestReleaseActivationBoundary(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		raw         int
		size        int
		wantTrigger bool
	}{
		{name: "exactly at size", raw: -160, size: 80, wantTrigger: true},
		{name: "one row short", raw: -158, size: 80, wantTrigger: false},
		{name: "past size", raw: -200, size: 80, wantTrigger: true},
		{name: "footer exactly at size", raw: 160, size: 80, wantTrigger: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			header := &fakeIndicator{size: tt.size}
			footer := &fakeIndicator{size: tt.size}
			c, clk := newCoordinator(t, header, footer)
			started := 0
			c.SetOnRefreshListener(refresh.RefreshListenerFuncs{Start: func(bool) { started++ }})

			scroll(c, tt.raw)
			c.OnStopNestedScroll()
			settle(t, c, clk)

			target := header
			if tt.raw > 0 {
				target = footer
			}
			assert.Equal(t, []bool{tt.wantTrigger}, target.releases)
			if tt.wantTrigger {
				assert.Equal(t, refresh.StateRefreshing, c.State())
				assert.Equal(t, 1, started)
				assert.Equal(t, tt.size, abs(c.ContentOffset()))
			} else {
				assert.Equal(t, refresh.StateIdle, c.State())
				assert.Zero(t, started)
				assert.Zero(t, c.ContentOffset())
			}
		})
	}
}

func TestPassiveIndicatorNeverRefreshes(t *testing.T) {
	t.Parallel()
	for _, raw := range []int{2, 10, 20, 200, 2000} {
		footer := &fakeIndicator{size: 5, indicator: true}
		c, clk := newCoordinator(t, nil, footer)
		c.SetOnRefreshListener(refresh.RefreshListenerFuncs{Start: func(bool) {
			t.Errorf("refresh started for passive indicator, raw=%d", raw)
		}})

		scroll(c, raw)
		c.OnStopNestedScroll()
		assert.NotEqual(t, refresh.StateRefreshing, c.TargetState())
		settle(t, c, clk)

		assert.Equal(t, refresh.StateIdle, c.State())
		assert.Zero(t, c.ContentOffset())
		assert.Equal(t, []bool{abs(raw/2) >= 5}, footer.releases)
		assert.Equal(t, 1, footer.resets)
	}
}

func TestReleaseScenarioTriggers(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	listener := mocks.NewMockRefreshListener(ctrl)
	header := &fakeIndicator{size: 80}
	c, clk := newCoordinator(t, header, nil)
	c.SetOnRefreshListener(listener)

	scroll(c, -200)
	require.Equal(t, -100, c.ContentOffset())

	c.OnStopNestedScroll()
	assert.Equal(t, refresh.StateSettling, c.State())
	assert.Equal(t, refresh.StateRefreshing, c.TargetState())
	assert.Equal(t, []bool{true}, header.releases)

	listener.EXPECT().OnRefreshStart(true).Times(1)
	offsets := settle(t, c, clk)

	require.NotEmpty(t, offsets)
	prev := -100
	for _, o := range offsets {
		assert.GreaterOrEqual(t, o, prev, "settle must move monotonically towards -80")
		prev = o
	}
	assert.Equal(t, -80, c.ContentOffset())
	assert.Equal(t, refresh.StateRefreshing, c.State())
	assert.Equal(t, refresh.StateIdle, c.TargetState())
	assert.Zero(t, header.resets)
}

func TestReleaseScenarioBouncesBack(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	listener := mocks.NewMockRefreshListener(ctrl)
	header := &fakeIndicator{size: 150}
	c, clk := newCoordinator(t, header, nil)
	c.SetOnRefreshListener(listener)

	scroll(c, -200)
	c.OnStopNestedScroll()
	assert.Equal(t, []bool{false}, header.releases)
	assert.Equal(t, refresh.TargetNone, c.ActiveTarget())
	assert.Equal(t, refresh.TargetHeader, c.LastActiveTarget())

	settle(t, c, clk)
	assert.Equal(t, refresh.StateIdle, c.State())
	assert.Zero(t, c.ContentOffset())
	assert.Equal(t, 1, header.resets)
	assert.Equal(t, refresh.TargetNone, c.LastActiveTarget())
}

func TestInternalListenerRunsBeforePublic(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	internal := mocks.NewMockRefreshListener(ctrl)
	public := mocks.NewMockRefreshListener(ctrl)
	c, clk := newCoordinator(t, nil, &fakeIndicator{size: 3})
	c.SetInternalOnRefreshListener(internal)
	c.SetOnRefreshListener(public)

	gomock.InOrder(
		internal.EXPECT().OnRefreshStart(false),
		public.EXPECT().OnRefreshStart(false),
	)
	scroll(c, 10)
	c.OnStopNestedScroll()
	settle(t, c, clk)

	gomock.InOrder(
		internal.EXPECT().OnRefreshComplete(gomock.Any()).Return(false),
		public.EXPECT().OnRefreshComplete(gomock.Any()).Return(false),
	)
	c.CompleteRefresh()
	assert.Equal(t, refresh.StateSettling, c.State())
	settle(t, c, clk)
	assert.Equal(t, refresh.StateIdle, c.State())
}

func TestDeferredCompletion(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	listener := mocks.NewMockRefreshListener(ctrl)
	header := &fakeIndicator{size: 4}
	c, clk := newCoordinator(t, header, nil)
	c.SetOnRefreshListener(listener)

	listener.EXPECT().OnRefreshStart(true)
	c.SetRefresh(true)
	settle(t, c, clk)
	require.Equal(t, refresh.StateRefreshing, c.State())

	var held *refresh.Completion
	listener.EXPECT().OnRefreshComplete(gomock.Any()).DoAndReturn(func(token *refresh.Completion) bool {
		held = token
		return true
	})
	c.CompleteRefresh()
	require.NotNil(t, held)

	clk.Step(refresh.SettleDuration)
	c.ComputeScroll()
	assert.Equal(t, refresh.StateRefreshing, c.State(), "intercepted completion must not settle")
	assert.Equal(t, -4, c.ContentOffset())

	assert.True(t, held.Complete())
	assert.Equal(t, refresh.StateSettling, c.State())
	settle(t, c, clk)
	assert.Equal(t, refresh.StateIdle, c.State())
	assert.Zero(t, c.ContentOffset())
	assert.Equal(t, 1, header.resets)

	assert.False(t, held.Complete(), "a completion token fires once")
	assert.Equal(t, refresh.StateIdle, c.State())
}

func TestStaleCompletionDoesNotCloseNextRefresh(t *testing.T) {
	t.Parallel()
	header := &fakeIndicator{size: 4}
	c, clk := newCoordinator(t, header, nil)
	var tokens []*refresh.Completion
	c.SetOnRefreshListener(refresh.RefreshListenerFuncs{Complete: func(token *refresh.Completion) bool {
		tokens = append(tokens, token)
		return true
	}})

	c.SetRefresh(true)
	settle(t, c, clk)
	c.CompleteRefresh()
	c.CompleteRefresh()
	require.Len(t, tokens, 2)

	require.True(t, tokens[0].Complete())
	settle(t, c, clk)
	require.Equal(t, refresh.StateIdle, c.State())

	c.SetRefresh(true)
	settle(t, c, clk)
	require.Equal(t, refresh.StateRefreshing, c.State())

	tokens[1].Complete()
	assert.Equal(t, refresh.StateRefreshing, c.State())
	assert.Equal(t, -4, c.ContentOffset())
}

func TestCompleteWhileSettlingTowardsRefresh(t *testing.T) {
	t.Parallel()
	header := &fakeIndicator{size: 4}
	c, clk := newCoordinator(t, header, nil)
	c.SetOnRefreshListener(refresh.RefreshListenerFuncs{Start: func(bool) {
		t.Error("refresh must not start once completed")
	}})

	c.SetRefresh(true)
	require.Equal(t, refresh.StateSettling, c.State())
	c.CompleteRefresh()
	assert.Equal(t, refresh.StateIdle, c.TargetState())

	settle(t, c, clk)
	assert.Equal(t, refresh.StateIdle, c.State())
	assert.Zero(t, c.ContentOffset())
}

func TestSetRefreshIsIdempotent(t *testing.T) {
	t.Parallel()
	header := &fakeIndicator{size: 6}
	footer := &fakeIndicator{size: 6}
	c, clk := newCoordinator(t, header, footer)
	started := 0
	c.SetOnRefreshListener(refresh.RefreshListenerFuncs{Start: func(bool) { started++ }})

	c.SetRefresh(true)
	c.SetRefresh(true)
	settle(t, c, clk)
	require.Equal(t, refresh.StateRefreshing, c.State())
	require.Equal(t, 1, started)

	before := c.SaveState()
	active := c.ActiveTarget()
	c.SetRefresh(true)
	c.SetRefresh(false)
	assert.Equal(t, before, c.SaveState())
	assert.Equal(t, active, c.ActiveTarget())
	assert.Equal(t, []bool{true}, header.releases)
	assert.Empty(t, footer.releases)
	assert.Equal(t, 1, started)
}

func TestSetRefreshSkipsPassiveAndMissingTargets(t *testing.T) {
	t.Parallel()
	c, _ := newCoordinator(t, nil, &fakeIndicator{size: 3, indicator: true})

	c.SetRefresh(true)
	assert.Equal(t, refresh.StateIdle, c.State())
	c.SetRefresh(false)
	assert.Equal(t, refresh.StateIdle, c.State())
	assert.Equal(t, refresh.TargetNone, c.ActiveTarget())
}

func TestRefreshInterceptsScrollAndFling(t *testing.T) {
	t.Parallel()
	c, clk := newCoordinator(t, &fakeIndicator{size: 4}, nil)
	assert.False(t, c.OnNestedPreFling(10))
	assert.Zero(t, c.OnNestedPreScroll(3))

	c.SetRefresh(true)
	assert.Equal(t, 5, c.OnNestedPreScroll(5), "settling swallows scroll")
	settle(t, c, clk)

	assert.Equal(t, 5, c.OnNestedPreScroll(5))
	c.OnNestedScroll(0, 7)
	assert.Equal(t, -4, c.ContentOffset())
	assert.Equal(t, refresh.StateRefreshing, c.State())
	assert.True(t, c.OnNestedPreFling(-30))
	assert.True(t, c.OnNestedFling(-30, false))

	c.OnStopNestedScroll()
	assert.Equal(t, refresh.StateRefreshing, c.State())
}

func TestDragWithoutHeaderIsCosmetic(t *testing.T) {
	t.Parallel()
	c, clk := newCoordinator(t, nil, nil)
	scroll(c, -30)
	assert.Equal(t, refresh.StateDragFromTop, c.State())
	assert.Equal(t, -15, c.ContentOffset())
	assert.Equal(t, refresh.TargetNone, c.ActiveTarget())

	c.OnStopNestedScroll()
	settle(t, c, clk)
	assert.Equal(t, refresh.StateIdle, c.State())
	assert.Zero(t, c.ContentOffset())
}

func TestPlainHeaderIsWrapped(t *testing.T) {
	t.Parallel()
	c, clk := newCoordinator(t, nil, nil)
	require.NoError(t, c.AddChild(fakeView{width: 10, height: 3}, refresh.LayoutParams{
		Role:   refresh.RoleHeader,
		Margin: refresh.Insets{Top: 1},
	}))

	wrapped, ok := c.Refreshable(refresh.TargetHeader).(*refresh.ViewRefreshable)
	require.True(t, ok)
	assert.Equal(t, 4, wrapped.ContentSize())
	assert.False(t, wrapped.IsIndicator())

	started := false
	c.SetOnRefreshListener(refresh.RefreshListenerFuncs{Start: func(fromHeader bool) { started = fromHeader }})
	scroll(c, -8)
	c.OnStopNestedScroll()
	settle(t, c, clk)
	assert.True(t, started)
	assert.Equal(t, -4, c.ContentOffset())
}

func TestAddChildRejectsInvalidRole(t *testing.T) {
	t.Parallel()
	c := refresh.New()
	for _, role := range []refresh.Role{refresh.RoleNone, refresh.Role(9), refresh.Role(-1)} {
		err := c.AddChild(fakeView{}, refresh.LayoutParams{Role: role})
		require.ErrorIs(t, err, refresh.ErrInvalidRole)
	}
	_, _, ok := c.Child(refresh.RoleContent)
	assert.False(t, ok)
	assert.False(t, c.OnStartNestedScroll(refresh.AxisVertical), "no content, no nested scroll")
}

func TestStartNestedScrollNeedsVerticalAxis(t *testing.T) {
	t.Parallel()
	c, _ := newCoordinator(t, nil, nil)
	assert.True(t, c.OnStartNestedScroll(refresh.AxisVertical))
	assert.True(t, c.OnStartNestedScroll(refresh.AxisVertical|refresh.AxisHorizontal))
	assert.False(t, c.OnStartNestedScroll(refresh.AxisHorizontal))
}

func TestStateChangeListenerSeesEveryOffset(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	listener := mocks.NewMockStateChangeListener(ctrl)
	c, _ := newCoordinator(t, &fakeIndicator{size: 50}, nil)
	c.SetOnRefreshStateChangeListener(listener)

	gomock.InOrder(
		listener.EXPECT().OnContentOffset(-5),
		listener.EXPECT().OnContentOffset(-10),
		listener.EXPECT().OnContentOffset(0),
	)
	scroll(c, -10)
	scroll(c, -10)
	scroll(c, 20)
}

func TestInvalidatorRequestsFrames(t *testing.T) {
	t.Parallel()
	frames := 0
	c, clk := newCoordinator(t, &fakeIndicator{size: 4}, nil, refresh.WithInvalidator(func() { frames++ }))

	c.SetRefresh(true)
	assert.Positive(t, frames)
	before := frames
	settle(t, c, clk)
	assert.Greater(t, frames, before)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
