package refresh

import (
	"errors"
	"fmt"
)

// ErrInvalidRole is returned when a child is attached without a header,
// footer or content role.
var ErrInvalidRole = errors.New("refresh: child must declare a header, footer or content role")

// Role identifies where a child sits in the container.
type Role int

const (
	RoleNone Role = iota
	RoleHeader
	RoleFooter
	RoleContent
)

func (r Role) String() string {
	switch r {
	case RoleHeader:
		return "header"
	case RoleFooter:
		return "footer"
	case RoleContent:
		return "content"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Gravity positions a child inside the space the container gives it. The
// horizontal and vertical bits combine.
type Gravity int

const (
	GravityNone             Gravity = 0
	GravityStart            Gravity = 1 << 0
	GravityCenterHorizontal Gravity = 1 << 1
	GravityEnd              Gravity = 1 << 2
	GravityTop              Gravity = 1 << 3
	GravityCenterVertical   Gravity = 1 << 4
	GravityBottom           Gravity = 1 << 5

	GravityCenter = GravityCenterHorizontal | GravityCenterVertical

	horizontalGravityMask = GravityStart | GravityCenterHorizontal | GravityEnd
	verticalGravityMask   = GravityTop | GravityCenterVertical | GravityBottom
)

// Horizontal returns only the horizontal bits of g.
func (g Gravity) Horizontal() Gravity { return g & horizontalGravityMask }

// Vertical returns only the vertical bits of g.
func (g Gravity) Vertical() Gravity { return g & verticalGravityMask }

// Insets are margins around a child, in cells.
type Insets struct {
	Top, Right, Bottom, Left int
}

// LayoutParams describe a child at attach time.
type LayoutParams struct {
	Role    Role
	Gravity Gravity
	Margin  Insets
}

// Validate rejects roles the container cannot place.
func (p LayoutParams) Validate() error {
	switch p.Role {
	case RoleHeader, RoleFooter, RoleContent:
		return nil
	default:
		return fmt.Errorf("%w: got %s", ErrInvalidRole, p.Role)
	}
}

// HorizontalOffset returns the left edge of a child of width child inside a
// row of width avail, honouring the horizontal gravity and margins.
func HorizontalOffset(g Gravity, avail, child int, m Insets) int {
	var left int
	switch g.Horizontal() {
	case GravityCenterHorizontal:
		left = (avail - child - m.Left - m.Right) / 2
	case GravityEnd:
		left = avail - m.Right - child
	default:
		left = m.Left
	}
	return max(left, 0)
}

// VerticalOffset is the vertical counterpart of HorizontalOffset.
func VerticalOffset(g Gravity, avail, child int, m Insets) int {
	var top int
	switch g.Vertical() {
	case GravityCenterVertical:
		top = (avail - child - m.Top - m.Bottom) / 2
	case GravityBottom:
		top = avail - m.Bottom - child
	default:
		top = m.Top
	}
	return max(top, 0)
}

type child struct {
	view        View
	params      LayoutParams
	refreshable Refreshable
}
