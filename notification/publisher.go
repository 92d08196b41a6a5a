package notification

import "fmt"

// Publisher publishes the notifications of a Source that match a name and an
// object. A Publisher is an immutable value; it registers with its Source
// only when a Subscriber subscribes, and every Subscriber gets its own
// registration.
//
//	center := notification.NewCenter()
//	pub := notification.NewPublisher(center, "user.created", nil)
//	pub.Subscribe(sub)
type Publisher struct {
	source Source
	name   Name
	object Object
}

// NewPublisher returns a Publisher for notifications of source that match
// name and object. An empty name matches every name and a nil object matches
// every originator. NewPublisher has no side effects.
func NewPublisher(source Source, name Name, object Object) Publisher {
	return Publisher{
		source: source,
		name:   name,
		object: object,
	}
}

// Source returns the Source of the Publisher.
func (p Publisher) Source() Source {
	return p.source
}

// Name returns the name filter of the Publisher.
func (p Publisher) Name() Name {
	return p.name
}

// Object returns the object filter of the Publisher.
func (p Publisher) Object() Object {
	return p.object
}

// Equal returns whether p and other publish the same notifications: both
// have the same Source, the same name and an identical object filter.
func (p Publisher) Equal(other Publisher) bool {
	return Identical(p.source, other.source) &&
		p.name == other.name &&
		Identical(p.object, other.object)
}

// Subscribe attaches sub to the Publisher. The subscription registers with the
// Source before sub.OnSubscribe is called and starts without demand, so
// notifications are dropped until sub requests some.
//
// If the Source fails to register the subscription, sub still receives the
// (already cancelled) Subscription, followed by a call to sub.OnFailure.
func (p Publisher) Subscribe(sub Subscriber) {
	s, err := subscribe(p, sub)
	sub.OnSubscribe(s)
	if err != nil {
		sub.OnFailure(fmt.Errorf("add observer: %w [name=%v]", err, p.name))
	}
}

func (p Publisher) String() string {
	return fmt.Sprintf("notification.Publisher(name=%q, object=%v)", p.name, p.object)
}
