package refresh

//go:generate mockgen -destination=mocks/mock_refreshable.go -package=mocks -source=refreshable.go Refreshable,View

// View is anything the coordinator can place: a header, footer or content
// pane with a measured extent in terminal cells.
type View interface {
	Size() (width, height int)
}

// Refreshable is implemented by header and footer widgets that want to
// react to the pull gesture. Widgets that do not implement it are wrapped in
// a ViewRefreshable when attached.
type Refreshable interface {
	// IsIndicator reports whether the widget only visualises the pull and
	// never starts a refresh, e.g. a "no more items" hint.
	IsIndicator() bool

	// OnOffset receives the pull distance relative to ContentSize: 0 at
	// rest, 1 at the activation distance, above 1 when over-pulled.
	OnOffset(fraction float64)

	// OnRelease is called when the gesture ends. trigger is true when the
	// pull reached ContentSize.
	OnRelease(trigger bool)

	// OnReset is called once the content is back at rest.
	OnReset()

	// ContentSize is the number of rows that counts as fully revealed.
	ContentSize() int
}

// ViewRefreshable adapts a plain view. It has no visual feedback but still
// takes part in activation, so a header without custom behaviour can start
// a refresh.
type ViewRefreshable struct {
	view   View
	margin Insets
}

// NewViewRefreshable wraps view. margin is added to the view height when
// computing the activation distance.
func NewViewRefreshable(view View, margin Insets) *ViewRefreshable {
	return &ViewRefreshable{view: view, margin: margin}
}

func (v *ViewRefreshable) IsIndicator() bool { return false }

func (v *ViewRefreshable) OnOffset(float64) {}

func (v *ViewRefreshable) OnRelease(bool) {}

func (v *ViewRefreshable) OnReset() {}

func (v *ViewRefreshable) ContentSize() int {
	if v.view == nil {
		return 0
	}
	_, height := v.view.Size()
	return height + v.margin.Top + v.margin.Bottom
}

// Unwrap returns the adapted view.
func (v *ViewRefreshable) Unwrap() View {
	return v.view
}

func asRefreshable(view View, margin Insets) Refreshable {
	if view == nil {
		return nil
	}
	if r, ok := view.(Refreshable); ok {
		return r
	}
	return NewViewRefreshable(view, margin)
}
