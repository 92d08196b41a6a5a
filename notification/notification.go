package notification

import (
	stdtime "time"

	"github.com/google/uuid"
	"github.com/modernice/notify/internal"
	"github.com/modernice/notify/internal/xtime"
)

// Name identifies a category of notifications. The empty Name is used by
// observers and publishers to match notifications of any name.
type Name string

// Object is the originator of a notification. Objects are compared by
// identity, see Identical. Use pointers (or other reference values) as
// originators: values of other comparable types carry no identity and are
// matched by equality, so two distinct but equal originators are treated as
// the same one.
type Object any

// Payload is the optional user info of a notification.
type Payload map[string]any

// A Notification is a named event that is broadcast through a Source.
//
// Example:
//
//	n := notification.New("user.created", notification.WithObject(sender), notification.With("id", id))
//	center.Post(n)
type Notification struct {
	ID      uuid.UUID
	Name    Name
	Time    stdtime.Time
	Object  Object
	Payload Payload
}

// Option is a Notification option.
type Option func(*Notification)

// New returns a Notification with the given name. A UUID is generated for the
// Notification and its time is set to xtime.Now().
//
// Provide Options to add data to the Notification:
//
//	WithObject(Object): Set the originator
//	WithPayload(Payload): Replace the payload
//	With(string, any): Add a single payload value
//	WithID(uuid.UUID): Use a custom UUID
//	WithTime(time.Time): Use a custom time
func New(name Name, opts ...Option) Notification {
	n := Notification{
		ID:   internal.NewID(),
		Name: name,
		Time: xtime.Now(),
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// WithObject returns an Option that sets the originator of a Notification.
func WithObject(obj Object) Option {
	return func(n *Notification) {
		n.Object = obj
	}
}

// WithPayload returns an Option that replaces the payload of a Notification.
func WithPayload(p Payload) Option {
	return func(n *Notification) {
		n.Payload = p
	}
}

// With returns an Option that adds a single key-value pair to the payload of a
// Notification.
func With(key string, val any) Option {
	return func(n *Notification) {
		if n.Payload == nil {
			n.Payload = make(Payload)
		}
		n.Payload[key] = val
	}
}

// WithID returns an Option that overrides the auto-generated UUID of a
// Notification.
func WithID(id uuid.UUID) Option {
	return func(n *Notification) {
		n.ID = id
	}
}

// WithTime returns an Option that overrides the auto-generated time of a
// Notification.
func WithTime(t stdtime.Time) Option {
	return func(n *Notification) {
		n.Time = t
	}
}

// Anonymous returns a copy of n without an originator.
func (n Notification) Anonymous() Notification {
	n.Object = nil
	return n
}

// Matches reports whether n is matched by an observer or publisher that
// filters by name and object. An empty name matches every name and a nil
// object matches every originator.
func (n Notification) Matches(name Name, object Object) bool {
	if name != "" && name != n.Name {
		return false
	}
	if object != nil && !Identical(object, n.Object) {
		return false
	}
	return true
}
