// Package sink provides terminal Subscribers for notification Publishers.
package sink

import (
	"sync"

	"github.com/modernice/notify/demand"
	"github.com/modernice/notify/notification"
)

// Func is a Subscriber that requests an unlimited number of notifications
// and calls a function for each of them.
type Func struct {
	fn func(notification.Notification)

	mux sync.Mutex
	sub notification.Subscription
	err error
}

var _ notification.Subscriber = (*Func)(nil)

// NewFunc returns a Func that calls fn for every notification.
func NewFunc(fn func(notification.Notification)) *Func {
	return &Func{fn: fn}
}

// Subscribe subscribes a new Func to pub and returns it.
//
//	f := sink.Subscribe(pub, func(n notification.Notification) {
//		log.Println(n.Name)
//	})
//	defer f.Cancel()
func Subscribe(pub notification.Publisher, fn func(notification.Notification)) *Func {
	f := NewFunc(fn)
	pub.Subscribe(f)
	return f
}

// OnSubscribe requests an unlimited number of notifications from sub.
func (f *Func) OnSubscribe(sub notification.Subscription) {
	f.mux.Lock()
	f.sub = sub
	f.mux.Unlock()
	sub.Request(demand.Unlimited)
}

// OnEvent calls the function of f.
func (f *Func) OnEvent(n notification.Notification) demand.Demand {
	f.fn(n)
	return demand.None
}

// OnComplete does nothing.
func (f *Func) OnComplete() {}

// OnFailure stores err, see Err.
func (f *Func) OnFailure(err error) {
	f.mux.Lock()
	defer f.mux.Unlock()
	f.err = err
}

// Err returns the failure the subscription of f was terminated with.
func (f *Func) Err() error {
	f.mux.Lock()
	defer f.mux.Unlock()
	return f.err
}

// Cancel cancels the subscription of f.
func (f *Func) Cancel() {
	f.mux.Lock()
	sub := f.sub
	f.mux.Unlock()
	if sub != nil {
		sub.Cancel()
	}
}
