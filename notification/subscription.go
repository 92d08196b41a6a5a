package notification

import (
	"fmt"
	"sync"

	"github.com/modernice/notify/demand"
)

type state int

const (
	unregistered state = iota
	active
	cancelled
)

func (s state) String() string {
	switch s {
	case unregistered:
		return "unregistered"
	case active:
		return "active"
	default:
		return "cancelled"
	}
}

// subscription adapts the demand-oblivious callbacks of a Source to the
// demand of a single Subscriber.
//
// The mutex only guards the fields below; it is never held while calling
// into the Source or the Subscriber, so Request, Cancel and nested
// deliveries may be triggered from within Subscriber.OnEvent.
type subscription struct {
	mux sync.Mutex

	name   Name
	object Object

	state      state
	source     Source
	downstream Subscriber
	demand     demand.Demand
	token      Token
}

func subscribe(p Publisher, downstream Subscriber) (*subscription, error) {
	s := &subscription{
		name:       p.name,
		object:     p.object,
		source:     p.source,
		downstream: downstream,
	}

	// The Source may call s.receive before AddObserver returns. Such
	// notifications are dropped, because the downstream could not have
	// requested anything yet.
	tok, err := p.source.AddObserver(p.name, p.object, s.receive)

	s.mux.Lock()
	defer s.mux.Unlock()

	if err != nil {
		s.release()
		return s, err
	}

	s.token = tok
	s.state = active

	return s, nil
}

// Request adds d to the demand of the subscription.
func (s *subscription) Request(d demand.Demand) {
	if d.IsZero() {
		return
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if s.state == cancelled {
		return
	}
	s.demand = s.demand.Add(d)
}

// Cancel unregisters from the Source and releases the Source and the
// downstream Subscriber. Only the first call has an effect.
func (s *subscription) Cancel() {
	s.mux.Lock()
	if s.state == cancelled {
		s.mux.Unlock()
		return
	}
	source, tok, registered := s.source, s.token, s.state == active
	s.release()
	s.mux.Unlock()

	if registered {
		source.RemoveObserver(tok)
	}
}

// Demand returns the currently authorized demand.
func (s *subscription) Demand() demand.Demand {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.demand
}

func (s *subscription) String() string {
	return "NotificationCenter Observer"
}

// Describe returns a debug description of the subscription.
func (s *subscription) Describe() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	return fmt.Sprintf(
		"NotificationCenter Observer [state=%v, name=%q, object=%v, demand=%v]",
		s.state, s.name, s.object, s.demand,
	)
}

func (s *subscription) receive(n Notification) {
	s.mux.Lock()
	if s.state == cancelled || s.demand.IsZero() || !n.Matches(s.name, s.object) {
		s.mux.Unlock()
		return
	}
	s.demand = s.demand.Dec()
	downstream := s.downstream
	s.mux.Unlock()

	if s.object == nil {
		n = n.Anonymous()
	}

	more := downstream.OnEvent(n)

	s.Request(more)
}

// release must be called with the mutex held.
func (s *subscription) release() {
	s.state = cancelled
	s.source = nil
	s.downstream = nil
	s.token = Token{}
}
