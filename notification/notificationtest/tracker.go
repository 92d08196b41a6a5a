// Package notificationtest provides a tracking Subscriber and a recording
// Source for tests.
package notificationtest

import (
	"sync"

	"github.com/modernice/notify/demand"
	"github.com/modernice/notify/notification"
)

// Kind is the kind of a tracked Entry.
type Kind int

const (
	// SubscriptionEntry is tracked when OnSubscribe is called.
	SubscriptionEntry Kind = iota
	// EventEntry is tracked when OnEvent is called.
	EventEntry
	// CompletionEntry is tracked when OnComplete is called.
	CompletionEntry
	// FailureEntry is tracked when OnFailure is called.
	FailureEntry
)

// Entry is a single call to a Tracker.
type Entry struct {
	Kind         Kind
	Subscription notification.Subscription
	Notification notification.Notification
	Err          error
}

// Tracker is a Subscriber that records every call.
type Tracker struct {
	// ReceiveSubscription is called after a subscription was recorded.
	ReceiveSubscription func(notification.Subscription)

	// ReceiveEvent computes the demand that is returned from OnEvent. If nil,
	// OnEvent returns demand.None.
	ReceiveEvent func(notification.Notification) demand.Demand

	// OnValue is called after a notification was recorded and before
	// ReceiveEvent is called.
	OnValue func(notification.Notification)

	mux     sync.Mutex
	history []Entry
}

var _ notification.Subscriber = (*Tracker)(nil)

// OnSubscribe records sub.
func (t *Tracker) OnSubscribe(sub notification.Subscription) {
	t.record(Entry{Kind: SubscriptionEntry, Subscription: sub})
	if t.ReceiveSubscription != nil {
		t.ReceiveSubscription(sub)
	}
}

// OnEvent records n.
func (t *Tracker) OnEvent(n notification.Notification) demand.Demand {
	t.record(Entry{Kind: EventEntry, Notification: n})
	if t.OnValue != nil {
		t.OnValue(n)
	}
	if t.ReceiveEvent != nil {
		return t.ReceiveEvent(n)
	}
	return demand.None
}

// OnComplete records the completion.
func (t *Tracker) OnComplete() {
	t.record(Entry{Kind: CompletionEntry})
}

// OnFailure records err.
func (t *Tracker) OnFailure(err error) {
	t.record(Entry{Kind: FailureEntry, Err: err})
}

// History returns all recorded entries.
func (t *Tracker) History() []Entry {
	t.mux.Lock()
	defer t.mux.Unlock()
	return append([]Entry(nil), t.history...)
}

// Subscriptions returns the recorded subscriptions.
func (t *Tracker) Subscriptions() []notification.Subscription {
	var subs []notification.Subscription
	for _, e := range t.History() {
		if e.Kind == SubscriptionEntry {
			subs = append(subs, e.Subscription)
		}
	}
	return subs
}

// Subscription returns the last recorded subscription, or nil.
func (t *Tracker) Subscription() notification.Subscription {
	subs := t.Subscriptions()
	if len(subs) == 0 {
		return nil
	}
	return subs[len(subs)-1]
}

// Events returns the recorded notifications.
func (t *Tracker) Events() []notification.Notification {
	var events []notification.Notification
	for _, e := range t.History() {
		if e.Kind == EventEntry {
			events = append(events, e.Notification)
		}
	}
	return events
}

// Failures returns the recorded failures.
func (t *Tracker) Failures() []error {
	var errs []error
	for _, e := range t.History() {
		if e.Kind == FailureEntry {
			errs = append(errs, e.Err)
		}
	}
	return errs
}

func (t *Tracker) record(e Entry) {
	t.mux.Lock()
	defer t.mux.Unlock()
	t.history = append(t.history, e)
}
