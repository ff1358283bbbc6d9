package refresh

// SavedState is the part of the coordinator that survives a restart of the
// host view. Only resting offsets and refreshes round-trip; a drag in
// progress is not resumed.
type SavedState struct {
	State         State  `toml:"state" json:"state"`
	ContentOffset int    `toml:"content_offset" json:"content_offset"`
	LastTarget    Target `toml:"last_target" json:"last_target"`
}

// SaveState captures the coordinator's scalar state.
func (c *Coordinator) SaveState() SavedState {
	last := c.last
	if c.Refreshable(last) == nil {
		last = TargetNone
	}
	return SavedState{
		State:         c.state,
		ContentOffset: c.contentOffset,
		LastTarget:    last,
	}
}

// RestoreState re-applies a SavedState. Children must be attached first so
// that the last target can be resolved. A restored refresh keeps its offset
// and re-derives the active target from the offset direction; a restored
// drag or settle goes back to rest.
func (c *Coordinator) RestoreState(s SavedState) {
	c.settler.Abort()
	c.targetState = StateIdle
	c.active = TargetNone
	c.dragRaw = 0
	c.last = TargetNone
	switch s.LastTarget {
	case TargetHeader, TargetFooter:
		if c.Refreshable(s.LastTarget) != nil {
			c.last = s.LastTarget
		}
	}

	switch s.State {
	case StateRefreshing:
		c.setState(StateRefreshing)
		c.offsetContent(s.ContentOffset)
		c.prepareTarget(s.ContentOffset < 0)
		if c.active == TargetNone {
			c.log.Debug("restored refresh without target, resetting")
			c.animateResetContent()
			return
		}
		c.generation++
	case StateDragFromTop, StateDragFromBottom, StateSettling:
		c.offsetContent(s.ContentOffset)
		c.animateResetContent()
	default:
		c.setState(StateIdle)
		c.offsetContent(0)
		c.last = TargetNone
	}
	c.log.Debug("state restored", "state", c.state, "offset", c.contentOffset, "target", c.last)
}
