package refresh

import "sync"

//go:generate mockgen -destination=mocks/mock_listener.go -package=mocks -source=completion.go RefreshListener,StateChangeListener

// RefreshListener is notified when a refresh starts and when the consumer
// asks for it to finish.
type RefreshListener interface {
	// OnRefreshStart fires once the content has settled into the refreshing
	// position. fromHeader is false for a footer (load more) refresh.
	OnRefreshStart(fromHeader bool)

	// OnRefreshComplete is offered the completion token after
	// Coordinator.CompleteRefresh. Returning true keeps the indicator open
	// until the listener calls c.Complete.
	OnRefreshComplete(c *Completion) (intercepted bool)
}

// StateChangeListener receives the content offset, in rows, every time it
// changes.
type StateChangeListener interface {
	OnContentOffset(offset int)
}

// RefreshListenerFuncs adapts plain functions to RefreshListener. Nil
// fields are skipped and OnRefreshComplete then reports false.
type RefreshListenerFuncs struct {
	Start    func(fromHeader bool)
	Complete func(c *Completion) bool
}

func (f RefreshListenerFuncs) OnRefreshStart(fromHeader bool) {
	if f.Start != nil {
		f.Start(fromHeader)
	}
}

func (f RefreshListenerFuncs) OnRefreshComplete(c *Completion) bool {
	if f.Complete == nil {
		return false
	}
	return f.Complete(c)
}

// StateChangeFunc adapts a function to StateChangeListener.
type StateChangeFunc func(offset int)

func (f StateChangeFunc) OnContentOffset(offset int) { f(offset) }

// Completion is a single-use token that closes a refresh.
type Completion struct {
	once sync.Once
	done func()
}

func newCompletion(done func()) *Completion {
	return &Completion{done: done}
}

// Complete closes the refresh the token was issued for. Only the first call
// has an effect; it reports whether this call was the one that fired.
func (c *Completion) Complete() bool {
	fired := false
	c.once.Do(func() {
		fired = true
		if c.done != nil {
			c.done()
		}
	})
	return fired
}
