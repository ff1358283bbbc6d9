package refresh

import "math"

// DefaultTouchSlop is the distance, in rows, a pointer travels before a
// press turns into a drag.
const DefaultTouchSlop = 1

// WithTouchSlop overrides DefaultTouchSlop.
func WithTouchSlop(slop float64) Option {
	return func(c *Coordinator) {
		if slop >= 0 {
			c.touchSlop = slop
		}
	}
}

// PointerAction is the phase of a raw pointer event.
type PointerAction int

const (
	PointerPress PointerAction = iota
	PointerMove
	PointerRelease
	PointerCancel
)

// PointerEvent is a raw pointer sample in the coordinator's coordinates.
type PointerEvent struct {
	Action PointerAction
	Y      float64
}

// OnPointerEvent drives the gesture from raw pointer input when no content
// child performs nested scroll for the coordinator. Moves are offered to the
// ancestor first, and the rest goes through the same drag logic as nested
// scroll. It reports whether the event was consumed.
func (c *Coordinator) OnPointerEvent(ev PointerEvent) bool {
	y := ev.Y
	switch ev.Action {
	case PointerPress:
		c.pointerDown = true
		c.touchOrigin = y
		c.StartNestedScroll(AxisVertical)
	case PointerMove:
		if !c.pointerDown {
			return false
		}
		dy := int(c.lastPointerY - y)
		dy -= c.DispatchNestedPreScroll(dy)
		if c.state == StateIdle && dy != 0 && math.Abs(c.touchOrigin-y) > c.touchSlop {
			c.beginDrag(dy < 0)
		}
		if c.state.dragging() {
			consumed := c.scrollBy(dy)
			if rest := dy - consumed; rest != 0 {
				consumed += c.scrollBy(rest)
			}
			c.DispatchNestedScroll(consumed, dy-consumed)
		}
	case PointerRelease, PointerCancel:
		if !c.pointerDown {
			return false
		}
		c.pointerDown = false
		c.StopNestedScroll()
		c.release()
	}
	c.lastPointerY = y
	return true
}
