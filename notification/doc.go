// Package notification adapts push-based notification sources to
// demand-driven subscriptions.
//
// A Source (for example the in-memory Center or the NATS center in
// backend/nats) calls its observers for every matching notification as soon
// as it is posted, regardless of whether the observer is ready. A Publisher
// puts a Subscription between such a Source and a single Subscriber: the
// Subscription registers with the Source, forwards only as many
// notifications as the Subscriber has requested and drops everything else.
//
//	center := notification.NewCenter()
//	pub := notification.NewPublisher(center, "user.created", nil)
//
//	pub.Subscribe(sub) // sub.OnSubscribe(s) -> s.Request(demand.Max(3))
//
//	center.Post(notification.New("user.created")) // delivered to sub
//
// Subscribers may request more notifications or cancel their subscription
// from within OnEvent. Notifications that arrive while no demand is
// available are dropped, never queued.
package notification
