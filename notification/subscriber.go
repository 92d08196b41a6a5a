package notification

//go:generate mockgen -source=subscriber.go -destination=./mocks/subscriber.go

import "github.com/modernice/notify/demand"

// A Subscriber consumes the notifications of a Publisher. Every Subscriber
// is attached to at most one Subscription.
type Subscriber interface {
	// OnSubscribe is called exactly once, synchronously from within
	// Publisher.Subscribe and before any notification is delivered.
	OnSubscribe(Subscription)

	// OnEvent is called for every delivered notification. The returned
	// Demand is added to the demand of the subscription.
	OnEvent(Notification) demand.Demand

	// OnComplete is never called by a Publisher, because a Source has no
	// terminal signal.
	OnComplete()

	// OnFailure is called if the Publisher fails to register with its
	// Source. The subscription is already cancelled when OnFailure is called.
	OnFailure(error)
}

// Subscription is the handle of a Subscriber to control the delivery of
// notifications.
type Subscription interface {
	// Request authorizes the delivery of d more notifications. Requesting
	// demand.None has no effect.
	Request(d demand.Demand)

	// Cancel stops the delivery of notifications and releases the
	// registration. Calling Cancel multiple times has no additional effect.
	Cancel()
}
