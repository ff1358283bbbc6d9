// Package refresh coordinates pull-to-refresh and pull-to-load gestures for a
// scrollable content pane with an optional header and footer.
//
// The Coordinator sits between the nested scroll of its content child and
// the header/footer Refreshable widgets. It damps drag deltas, decides on
// release whether the pull activated a refresh, settles the content to its
// resting offset frame by frame and sequences the refresh start and
// completion callbacks. All methods must be called from the same goroutine.
package refresh

import (
	"fmt"
	"log/slog"

	"k8s.io/utils/clock"
)

// DragResistance scales every drag delta before it moves the content.
const DragResistance = 0.5

// State is the coordinator's behavioural mode. The values are persisted.
type State int

const (
	StateIdle State = iota
	StateDragFromTop
	StateDragFromBottom
	StateRefreshing
	StateSettling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragFromTop:
		return "drag-from-top"
	case StateDragFromBottom:
		return "drag-from-bottom"
	case StateRefreshing:
		return "refreshing"
	case StateSettling:
		return "settling"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) dragging() bool {
	return s == StateDragFromTop || s == StateDragFromBottom
}

// engaged reports whether the coordinator owns the scroll gesture.
func (s State) engaged() bool {
	return s.dragging() || s == StateRefreshing || s == StateSettling
}

// Target names the header or footer taking part in a gesture. The values
// are persisted.
type Target int

const (
	TargetNone Target = iota
	TargetHeader
	TargetFooter
)

func (t Target) String() string {
	switch t {
	case TargetNone:
		return "none"
	case TargetHeader:
		return "header"
	case TargetFooter:
		return "footer"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for state transitions.
func WithLogger(log *slog.Logger) Option {
	return func(c *Coordinator) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock sets the time source of the settle animation.
func WithClock(clk clock.PassiveClock) Option {
	return func(c *Coordinator) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithInvalidator registers fn to be called whenever the coordinator needs
// another frame, i.e. ComputeScroll should be called again soon.
func WithInvalidator(fn func()) Option {
	return func(c *Coordinator) {
		c.invalidate = fn
	}
}

// Coordinator is the pull-to-refresh state machine of one container.
type Coordinator struct {
	log        *slog.Logger
	clock      clock.PassiveClock
	settler    *Settler
	nested     *ChildHelper
	invalidate func()
	touchSlop  float64

	header  *child
	footer  *child
	content *child

	state         State
	targetState   State
	contentOffset int
	// dragRaw is the undamped sum of the current drag's deltas.
	dragRaw    int
	active     Target
	last       Target
	generation uint64

	touchOrigin  float64
	lastPointerY float64
	pointerDown  bool

	onRefresh         RefreshListener
	internalOnRefresh RefreshListener
	onStateChange     StateChangeListener
}

// New returns an idle coordinator with no children.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		log:       slog.New(slog.DiscardHandler),
		clock:     clock.RealClock{},
		nested:    NewChildHelper(),
		touchSlop: DefaultTouchSlop,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.settler = NewSettler(c.clock)
	return c
}

// AddChild attaches view in the role given by params, replacing any child
// already holding that role. Header and footer views that do not implement
// Refreshable are wrapped in a ViewRefreshable.
func (c *Coordinator) AddChild(view View, params LayoutParams) error {
	if err := params.Validate(); err != nil {
		return err
	}
	if view == nil {
		return fmt.Errorf("refresh: nil %s view", params.Role)
	}
	ch := &child{view: view, params: params}
	switch params.Role {
	case RoleHeader:
		ch.refreshable = asRefreshable(view, params.Margin)
		c.header = ch
	case RoleFooter:
		ch.refreshable = asRefreshable(view, params.Margin)
		c.footer = ch
	case RoleContent:
		c.content = ch
	}
	c.log.Debug("child attached", "role", params.Role)
	return nil
}

// RemoveChild detaches the child holding role.
func (c *Coordinator) RemoveChild(role Role) {
	switch role {
	case RoleHeader:
		c.header = nil
	case RoleFooter:
		c.footer = nil
	case RoleContent:
		c.content = nil
	}
}

// Child returns the view attached in role.
func (c *Coordinator) Child(role Role) (View, LayoutParams, bool) {
	ch := c.childFor(role)
	if ch == nil {
		return nil, LayoutParams{}, false
	}
	return ch.view, ch.params, true
}

// Refreshable returns the Refreshable handle of the header or footer.
func (c *Coordinator) Refreshable(t Target) Refreshable {
	var ch *child
	switch t {
	case TargetHeader:
		ch = c.header
	case TargetFooter:
		ch = c.footer
	}
	if ch == nil {
		return nil
	}
	return ch.refreshable
}

func (c *Coordinator) childFor(role Role) *child {
	switch role {
	case RoleHeader:
		return c.header
	case RoleFooter:
		return c.footer
	case RoleContent:
		return c.content
	}
	return nil
}

func (c *Coordinator) State() State { return c.state }

func (c *Coordinator) TargetState() State { return c.targetState }

// ContentOffset is the content displacement in rows: negative while the
// header is revealed, positive while the footer is.
func (c *Coordinator) ContentOffset() int { return c.contentOffset }

// ActiveTarget is the header or footer receiving the current gesture.
func (c *Coordinator) ActiveTarget() Target { return c.active }

// LastActiveTarget is the header or footer of the current
// drag-release-settle cycle. It outlives ActiveTarget during the settle.
func (c *Coordinator) LastActiveTarget() Target { return c.last }

func (c *Coordinator) SetOnRefreshListener(l RefreshListener) {
	c.onRefresh = l
}

// SetInternalOnRefreshListener registers a listener that is notified before
// the public one. Composite widgets use it to hook into the refresh cycle
// without taking the public slot.
func (c *Coordinator) SetInternalOnRefreshListener(l RefreshListener) {
	c.internalOnRefresh = l
}

func (c *Coordinator) SetOnRefreshStateChangeListener(l StateChangeListener) {
	c.onStateChange = l
}

// OnStartNestedScroll accepts vertical nested scroll from the content.
func (c *Coordinator) OnStartNestedScroll(axes Axis) bool {
	return c.content != nil && axes&AxisVertical != 0
}

func (c *Coordinator) OnNestedScrollAccepted(axes Axis) {
	c.log.Debug("nested scroll accepted", "axes", int(axes))
}

// OnStopNestedScroll is the release of the gesture.
func (c *Coordinator) OnStopNestedScroll() {
	c.release()
}

// OnNestedPreScroll is offered the delta before the content scrolls. While
// dragging it takes the part that moves the content back towards rest and
// leaves any excess to the content; while refreshing or settling it
// swallows the delta so the content stays put.
func (c *Coordinator) OnNestedPreScroll(dy int) int {
	switch {
	case c.state.dragging():
		return c.scrollBy(dy)
	case c.state.engaged():
		return dy
	}
	return 0
}

// OnNestedScroll receives the delta the content could not use. An
// unconsumed delta at rest starts a drag.
func (c *Coordinator) OnNestedScroll(dyConsumed, dyUnconsumed int) {
	if dyUnconsumed == 0 {
		return
	}
	c.scrollBy(dyUnconsumed)
}

func (c *Coordinator) OnNestedPreFling(velocityY float64) bool {
	return c.state.engaged()
}

func (c *Coordinator) OnNestedFling(velocityY float64, consumed bool) bool {
	return c.state.engaged()
}

// SetNestedScrollParent sets the ancestor that receives scroll dispatched
// while the coordinator drives a raw pointer drag.
func (c *Coordinator) SetNestedScrollParent(p NestedScrollParent) { c.nested.SetParent(p) }

func (c *Coordinator) SetNestedScrollingEnabled(enabled bool) {
	c.nested.SetNestedScrollingEnabled(enabled)
}

func (c *Coordinator) IsNestedScrollingEnabled() bool { return c.nested.IsNestedScrollingEnabled() }

func (c *Coordinator) HasNestedScrollingParent() bool { return c.nested.HasNestedScrollingParent() }

func (c *Coordinator) StartNestedScroll(axes Axis) bool { return c.nested.StartNestedScroll(axes) }

func (c *Coordinator) StopNestedScroll() { c.nested.StopNestedScroll() }

func (c *Coordinator) DispatchNestedPreScroll(dy int) int {
	return c.nested.DispatchNestedPreScroll(dy)
}

func (c *Coordinator) DispatchNestedScroll(dyConsumed, dyUnconsumed int) bool {
	return c.nested.DispatchNestedScroll(dyConsumed, dyUnconsumed)
}

func (c *Coordinator) DispatchNestedPreFling(velocityY float64) bool {
	return c.nested.DispatchNestedPreFling(velocityY)
}

func (c *Coordinator) DispatchNestedFling(velocityY float64, consumed bool) bool {
	return c.nested.DispatchNestedFling(velocityY, consumed)
}

// ComputeScroll advances the settle animation. The host calls it once per
// frame after the invalidator fired.
func (c *Coordinator) ComputeScroll() {
	if c.state != StateSettling {
		return
	}
	if c.settler.Compute() {
		c.offsetContent(c.settler.CurrY())
		return
	}
	c.finishSettle()
}

// CompleteRefresh asks for the current refresh to close. The internal and
// then the public listener may intercept the completion token and complete
// it later; otherwise the content settles back to rest right away.
func (c *Coordinator) CompleteRefresh() {
	generation := c.generation
	token := newCompletion(func() {
		if generation != c.generation {
			c.log.Debug("stale refresh completion ignored", "generation", generation)
			return
		}
		c.completeRefreshImmediately()
	})

	intercepted := false
	if c.internalOnRefresh != nil {
		intercepted = c.internalOnRefresh.OnRefreshComplete(token)
	}
	if !intercepted && c.onRefresh != nil {
		intercepted = c.onRefresh.OnRefreshComplete(token)
	}
	if intercepted {
		c.log.Debug("refresh completion deferred", "generation", generation)
		return
	}
	token.Complete()
}

// SetRefresh starts a refresh from code, as if the user had pulled the
// header (fromHeader) or footer past its activation distance. It does
// nothing while a refresh is running or about to run, or when that side has
// no refreshable widget.
func (c *Coordinator) SetRefresh(fromHeader bool) {
	if c.state == StateRefreshing || c.targetState == StateRefreshing {
		return
	}
	side := TargetFooter
	if fromHeader {
		side = TargetHeader
	}
	target := c.Refreshable(side)
	if target == nil || target.IsIndicator() || target.ContentSize() <= 0 {
		c.log.Debug("programmatic refresh ignored", "target", side)
		return
	}
	if c.last != TargetNone && c.last != side {
		if previous := c.Refreshable(c.last); previous != nil {
			previous.OnReset()
		}
	}
	c.active, c.last = side, side
	c.dragRaw = 0
	c.beginRefresh()
	target.OnRelease(true)
	c.log.Debug("programmatic refresh", "target", side)
	c.animateContentToPosition(signedSize(side, target.ContentSize()))
}

func (c *Coordinator) beginRefresh() {
	c.targetState = StateRefreshing
	c.generation++
}

// scrollBy is the single entry point for drag deltas, whether they come
// from nested scroll or from the raw pointer path. It returns the part of
// dy it used: a delta that would push the content past rest ends the drag
// there and the excess is left over.
func (c *Coordinator) scrollBy(dy int) int {
	if dy == 0 {
		return 0
	}
	switch {
	case c.state == StateIdle:
		c.beginDrag(dy < 0)
	case c.state.dragging():
	default:
		return 0
	}

	c.dragRaw += dy
	switch {
	case c.state == StateDragFromTop && c.dragRaw >= 0,
		c.state == StateDragFromBottom && c.dragRaw <= 0:
		excess := c.dragRaw
		c.endDragAtRest()
		return dy - excess
	}
	c.offsetContent(int(float64(c.dragRaw) * DragResistance))
	return dy
}

func (c *Coordinator) beginDrag(fromHeader bool) {
	c.settler.Abort()
	c.dragRaw = 0
	if fromHeader {
		c.setState(StateDragFromTop)
	} else {
		c.setState(StateDragFromBottom)
	}
	c.prepareTarget(fromHeader)
}

// endDragAtRest handles a drag pushed back past its starting point. The
// offset stops at zero instead of changing sign.
func (c *Coordinator) endDragAtRest() {
	target := c.Refreshable(c.last)
	c.dragRaw = 0
	c.offsetContent(0)
	c.active, c.last = TargetNone, TargetNone
	c.setState(StateIdle)
	if target != nil {
		target.OnReset()
	}
}

func (c *Coordinator) prepareTarget(fromHeader bool) {
	if c.active != TargetNone {
		return
	}
	side := TargetFooter
	if fromHeader {
		side = TargetHeader
	}
	if c.Refreshable(side) == nil {
		return
	}
	c.active, c.last = side, side
}

func (c *Coordinator) release() {
	if !c.state.dragging() {
		return
	}
	active := c.Refreshable(c.active)
	if active == nil || active.ContentSize() <= 0 {
		c.animateResetContent()
		return
	}

	last := c.Refreshable(c.last)
	size := last.ContentSize()
	if abs(c.contentOffset) >= size {
		last.OnRelease(true)
		if last.IsIndicator() {
			c.log.Debug("released passive indicator", "target", c.last, "offset", c.contentOffset)
			c.animateResetContent()
			return
		}
		c.log.Debug("released past threshold", "target", c.last, "offset", c.contentOffset, "size", size)
		c.beginRefresh()
		c.animateContentToPosition(signedSize(c.last, size))
		return
	}
	last.OnRelease(false)
	c.animateResetContent()
}

func (c *Coordinator) completeRefreshImmediately() {
	switch {
	case c.state.dragging(), c.state == StateRefreshing:
	case c.state == StateSettling && c.targetState == StateRefreshing:
	default:
		return
	}
	c.log.Debug("refresh complete", "from", c.state)
	c.animateResetContent()
}

func (c *Coordinator) animateResetContent() {
	c.active = TargetNone
	c.targetState = StateIdle
	c.animateContentToPosition(0)
}

// animateContentToPosition settles the content to target, aborting any
// running settle. When the content is already there the settle completes
// synchronously.
func (c *Coordinator) animateContentToPosition(target int) {
	c.settler.Abort()
	c.setState(StateSettling)
	if target == c.contentOffset {
		c.finishSettle()
		return
	}
	c.settler.Start(c.contentOffset, target-c.contentOffset, SettleDuration)
	c.requestFrame()
}

func (c *Coordinator) finishSettle() {
	next := c.targetState
	c.targetState = StateIdle
	c.setState(next)

	switch next {
	case StateIdle:
		if target := c.Refreshable(c.last); target != nil {
			target.OnReset()
		}
		c.active, c.last = TargetNone, TargetNone
		c.dragRaw = 0
	case StateRefreshing:
		fromHeader := c.refreshFromHeader()
		c.log.Info("refresh started", "from_header", fromHeader, "generation", c.generation)
		if c.internalOnRefresh != nil {
			c.internalOnRefresh.OnRefreshStart(fromHeader)
		}
		if c.onRefresh != nil {
			c.onRefresh.OnRefreshStart(fromHeader)
		}
	}
}

func (c *Coordinator) refreshFromHeader() bool {
	switch {
	case c.contentOffset < 0:
		return true
	case c.contentOffset > 0:
		return false
	default:
		return c.last == TargetHeader
	}
}

func (c *Coordinator) offsetContent(offset int) {
	c.contentOffset = offset
	if target := c.Refreshable(c.last); target != nil {
		target.OnOffset(offsetFraction(offset, target.ContentSize()))
	}
	if c.onStateChange != nil {
		c.onStateChange.OnContentOffset(offset)
	}
	c.requestFrame()
}

func (c *Coordinator) setState(s State) {
	if s == c.state {
		return
	}
	c.log.Debug("refresh state", "from", c.state, "to", s, "offset", c.contentOffset)
	c.state = s
}

func (c *Coordinator) requestFrame() {
	if c.invalidate != nil {
		c.invalidate()
	}
}

func offsetFraction(offset, size int) float64 {
	if size <= 0 {
		return 0
	}
	return float64(abs(offset)) / float64(size)
}

func signedSize(side Target, size int) int {
	if side == TargetHeader {
		return -size
	}
	return size
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
