package sink

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/modernice/notify/demand"
	"github.com/modernice/notify/notification"
	"go.uber.org/zap"
)

var (
	// ErrCancelled is returned by Chan.Next after the subscription was
	// cancelled or completed.
	ErrCancelled = errors.New("subscription cancelled")

	// ErrInvalidWindow is returned by NewChan for windows smaller than 1.
	ErrInvalidWindow = errors.New("invalid window")
)

// Chan is a pull-style Subscriber. It never has more notifications in
// flight than its window: it requests the window size on subscribe and
// requests one more notification for every notification that was received
// from it.
//
//	c, _ := sink.NewChan(10)
//	pub.Subscribe(c)
//	for {
//		n, err := c.Next(ctx)
//		if err != nil {
//			break
//		}
//		handle(n)
//	}
type Chan struct {
	window int
	logger *zap.Logger

	ch   chan notification.Notification
	done chan struct{}
	once sync.Once

	mux     sync.Mutex
	sub     notification.Subscription
	failure error
}

// ChanOption is an option for a Chan.
type ChanOption func(*Chan)

var _ notification.Subscriber = (*Chan)(nil)

// ChanLogger returns a ChanOption that sets the logger of a Chan.
func ChanLogger(logger *zap.Logger) ChanOption {
	return func(c *Chan) {
		c.logger = logger
	}
}

// NewChan returns a Chan with the given window.
func NewChan(window int, opts ...ChanOption) (*Chan, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}

	c := &Chan{
		window: window,
		ch:     make(chan notification.Notification, window),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger = c.logger.Named("sink_chan")

	return c, nil
}

// OnSubscribe requests the window size from sub.
func (c *Chan) OnSubscribe(sub notification.Subscription) {
	c.mux.Lock()
	c.sub = sub
	c.mux.Unlock()
	sub.Request(demand.Max(c.window))
}

// OnEvent buffers n.
func (c *Chan) OnEvent(n notification.Notification) demand.Demand {
	select {
	case c.ch <- n:
	default:
		// Only happens if the Publisher delivers more than was requested.
		c.logger.Warn("Buffer full. Dropping notification.",
			zap.String("name", string(n.Name)),
			zap.Stringer("id", n.ID))
	}
	return demand.None
}

// OnComplete closes the done channel of c.
func (c *Chan) OnComplete() {
	c.close()
}

// OnFailure stores err and closes the done channel of c.
func (c *Chan) OnFailure(err error) {
	c.mux.Lock()
	c.failure = err
	c.mux.Unlock()
	c.close()
}

// Failure returns the error that the subscription failed with, if any.
func (c *Chan) Failure() error {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.failure
}

// C returns the buffered notification channel. Callers that receive from C
// directly must call Ack for every received notification.
func (c *Chan) C() <-chan notification.Notification {
	return c.ch
}

// Done returns a channel that is closed when the subscription ends.
func (c *Chan) Done() <-chan struct{} {
	return c.done
}

// Ack requests one more notification.
func (c *Chan) Ack() {
	c.mux.Lock()
	sub := c.sub
	c.mux.Unlock()
	if sub != nil {
		sub.Request(demand.Max(1))
	}
}

// Next returns the next notification. Buffered notifications are returned
// even after the subscription ended; afterwards Next returns the failure of
// the subscription or ErrCancelled.
func (c *Chan) Next(ctx context.Context) (notification.Notification, error) {
	select {
	case n := <-c.ch:
		c.Ack()
		return n, nil
	default:
	}

	select {
	case <-ctx.Done():
		return notification.Notification{}, ctx.Err()
	case n := <-c.ch:
		c.Ack()
		return n, nil
	case <-c.done:
		select {
		case n := <-c.ch:
			return n, nil
		default:
		}
		if err := c.Failure(); err != nil {
			return notification.Notification{}, err
		}
		return notification.Notification{}, ErrCancelled
	}
}

// Cancel cancels the subscription of c. Buffered notifications can still be
// received.
func (c *Chan) Cancel() {
	c.mux.Lock()
	sub := c.sub
	c.mux.Unlock()
	if sub != nil {
		sub.Cancel()
	}
	c.close()
}

func (c *Chan) close() {
	c.once.Do(func() { close(c.done) })
}
