package notificationtest

import (
	"context"
	"sync"

	"github.com/modernice/notify/notification"
)

// Call is a recorded call to a Source.
type Call struct {
	// Remove is true for RemoveObserver calls.
	Remove bool
	Name   notification.Name
	Object notification.Object
	Token  notification.Token
}

// AddObserver returns the Call that a Source records for AddObserver.
func AddObserver(name notification.Name, object notification.Object) Call {
	return Call{Name: name, Object: object}
}

// RemoveObserver returns the Call that a Source records for RemoveObserver.
func RemoveObserver() Call {
	return Call{Remove: true}
}

// Source is a notification.Broadcaster that records its calls and delegates
// to an in-memory notification.Center.
type Source struct {
	// Err is returned by AddObserver if non-nil.
	Err error

	center *notification.Center

	mux     sync.Mutex
	history []Call
	block   func(notification.Notification)
}

var _ notification.Broadcaster = (*Source)(nil)

// NewSource returns a recording Source.
func NewSource() *Source {
	return &Source{center: notification.NewCenter()}
}

// AddObserver records the call and registers fn with the underlying center.
func (s *Source) AddObserver(name notification.Name, object notification.Object, fn func(notification.Notification)) (notification.Token, error) {
	if s.Err != nil {
		return notification.Token{}, s.Err
	}

	s.mux.Lock()
	s.history = append(s.history, Call{Name: name, Object: object})
	s.block = fn
	s.mux.Unlock()

	tok, err := s.center.AddObserver(name, object, fn)

	s.mux.Lock()
	s.history[len(s.history)-1].Token = tok
	s.mux.Unlock()

	return tok, err
}

// RemoveObserver records the call and unregisters tok from the underlying center.
func (s *Source) RemoveObserver(tok notification.Token) {
	s.mux.Lock()
	s.history = append(s.history, Call{Remove: true, Token: tok})
	s.mux.Unlock()

	s.center.RemoveObserver(tok)
}

// Post posts n through the underlying center.
func (s *Source) Post(n notification.Notification) {
	s.center.Post(n)
}

// Broadcast posts n through the underlying center.
func (s *Source) Broadcast(ctx context.Context, n notification.Notification) error {
	return s.center.Broadcast(ctx, n)
}

// Block returns the callback of the last AddObserver call, or nil.
func (s *Source) Block() func(notification.Notification) {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.block
}

// History returns the recorded calls without their tokens.
func (s *Source) History() []Call {
	s.mux.Lock()
	defer s.mux.Unlock()
	out := make([]Call, len(s.history))
	for i, c := range s.history {
		c.Token = notification.Token{}
		out[i] = c
	}
	return out
}

// Calls returns the recorded calls including their tokens.
func (s *Source) Calls() []Call {
	s.mux.Lock()
	defer s.mux.Unlock()
	return append([]Call(nil), s.history...)
}

// Observers returns the number of registered observers.
func (s *Source) Observers() int {
	return s.center.Observers()
}

// Equal reports whether the recorded history equals want. Objects are
// compared by identity.
func Equal(history, want []Call) bool {
	if len(history) != len(want) {
		return false
	}
	for i := range history {
		if history[i].Remove != want[i].Remove ||
			history[i].Name != want[i].Name ||
			!notification.Identical(history[i].Object, want[i].Object) {
			return false
		}
	}
	return true
}
