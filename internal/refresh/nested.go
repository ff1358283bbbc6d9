package refresh

// Axis is a bit set of scroll axes.
type Axis int

const (
	AxisNone       Axis = 0
	AxisHorizontal Axis = 1 << 0
	AxisVertical   Axis = 1 << 1
)

// NestedScrollParent receives scroll from a nested scrolling child. Deltas
// are in rows; positive values scroll the content towards its end.
type NestedScrollParent interface {
	OnStartNestedScroll(axes Axis) bool
	OnNestedScrollAccepted(axes Axis)
	OnStopNestedScroll()
	// OnNestedPreScroll is offered dy before the child scrolls and returns
	// the part it consumed.
	OnNestedPreScroll(dy int) (consumed int)
	// OnNestedScroll receives what the child consumed and what it left over.
	OnNestedScroll(dyConsumed, dyUnconsumed int)
	OnNestedPreFling(velocityY float64) bool
	OnNestedFling(velocityY float64, consumed bool) bool
}

// ChildHelper forwards nested scroll from a child to its ancestor parent.
// It is disabled until SetNestedScrollingEnabled(true) is called and a parent
// is set.
type ChildHelper struct {
	parent  NestedScrollParent
	enabled bool
	active  bool
	axes    Axis
}

// NewChildHelper returns a helper without a parent.
func NewChildHelper() *ChildHelper {
	return &ChildHelper{}
}

// SetParent sets the ancestor that receives dispatched scroll. An active
// nested scroll with the previous parent is stopped.
func (h *ChildHelper) SetParent(parent NestedScrollParent) {
	h.StopNestedScroll()
	h.parent = parent
}

func (h *ChildHelper) SetNestedScrollingEnabled(enabled bool) {
	if !enabled {
		h.StopNestedScroll()
	}
	h.enabled = enabled
}

func (h *ChildHelper) IsNestedScrollingEnabled() bool { return h.enabled }

// HasNestedScrollingParent reports whether a nested scroll is in progress.
func (h *ChildHelper) HasNestedScrollingParent() bool { return h.active }

// StartNestedScroll asks the parent to cooperate on axes.
func (h *ChildHelper) StartNestedScroll(axes Axis) bool {
	if h.active {
		return true
	}
	if !h.enabled || h.parent == nil {
		return false
	}
	if !h.parent.OnStartNestedScroll(axes) {
		return false
	}
	h.active = true
	h.axes = axes
	h.parent.OnNestedScrollAccepted(axes)
	return true
}

func (h *ChildHelper) StopNestedScroll() {
	if !h.active {
		return
	}
	h.active = false
	h.axes = AxisNone
	h.parent.OnStopNestedScroll()
}

// DispatchNestedPreScroll offers dy to the parent and returns how much it
// took. The parent can never consume more than dy.
func (h *ChildHelper) DispatchNestedPreScroll(dy int) (consumed int) {
	if !h.enabled || !h.active || dy == 0 {
		return 0
	}
	consumed = h.parent.OnNestedPreScroll(dy)
	switch {
	case dy > 0:
		consumed = min(max(consumed, 0), dy)
	default:
		consumed = max(min(consumed, 0), dy)
	}
	return consumed
}

// DispatchNestedScroll reports the child's scroll to the parent.
func (h *ChildHelper) DispatchNestedScroll(dyConsumed, dyUnconsumed int) bool {
	if !h.enabled || !h.active {
		return false
	}
	if dyConsumed == 0 && dyUnconsumed == 0 {
		return false
	}
	h.parent.OnNestedScroll(dyConsumed, dyUnconsumed)
	return true
}

func (h *ChildHelper) DispatchNestedPreFling(velocityY float64) bool {
	if !h.enabled || !h.active {
		return false
	}
	return h.parent.OnNestedPreFling(velocityY)
}

func (h *ChildHelper) DispatchNestedFling(velocityY float64, consumed bool) bool {
	if !h.enabled || !h.active {
		return false
	}
	return h.parent.OnNestedFling(velocityY, consumed)
}
