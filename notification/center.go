package notification

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var _ Broadcaster = (*Center)(nil)

// Center is an in-memory Broadcaster. Posting a notification synchronously
// invokes every matching observer on the posting goroutine, in the order the
// observers were added.
type Center struct {
	logger *zap.Logger

	mux       sync.RWMutex
	observers []*observer
	tokens    map[Token]*observer
}

// CenterOption is an option for a Center.
type CenterOption func(*Center)

type observer struct {
	token   Token
	name    Name
	object  Object
	fn      func(Notification)
	removed atomic.Bool
}

// CenterLogger returns a CenterOption that sets the logger of a Center.
func CenterLogger(logger *zap.Logger) CenterOption {
	return func(c *Center) {
		c.logger = logger
	}
}

// NewCenter returns a new in-memory notification center.
func NewCenter(opts ...CenterOption) *Center {
	c := &Center{tokens: make(map[Token]*observer)}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger = c.logger.Named("notification_center")
	return c
}

// AddObserver registers fn for notifications that match name and object.
// AddObserver never fails.
func (c *Center) AddObserver(name Name, object Object, fn func(Notification)) (Token, error) {
	obs := &observer{
		token:  NewToken(),
		name:   name,
		object: object,
		fn:     fn,
	}

	c.mux.Lock()
	c.observers = append(c.observers, obs)
	c.tokens[obs.token] = obs
	c.mux.Unlock()

	c.logger.Debug("Observer added",
		zap.String("name", string(name)),
		zap.Bool("object_filter", object != nil),
		zap.Stringer("token", obs.token))

	return obs.token, nil
}

// RemoveObserver unregisters the observer of tok. Unknown tokens are ignored.
func (c *Center) RemoveObserver(tok Token) {
	c.mux.Lock()
	obs, ok := c.tokens[tok]
	if !ok {
		c.mux.Unlock()
		return
	}
	delete(c.tokens, tok)
	for i, o := range c.observers {
		if o == obs {
			c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
			break
		}
	}
	c.mux.Unlock()

	obs.removed.Store(true)

	c.logger.Debug("Observer removed", zap.Stringer("token", tok))
}

// Post sends n to every matching observer. Observers may post, add or remove
// observers from within their callback. Observers that are removed while n
// is being posted don't receive n anymore.
func (c *Center) Post(n Notification) {
	c.mux.RLock()
	observers := make([]*observer, len(c.observers))
	copy(observers, c.observers)
	c.mux.RUnlock()

	for _, obs := range observers {
		if obs.removed.Load() || !n.Matches(obs.name, obs.object) {
			continue
		}
		obs.fn(n)
	}
}

// Broadcast posts n after checking ctx.
func (c *Center) Broadcast(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Post(n)
	return nil
}

// Observers returns the number of registered observers.
func (c *Center) Observers() int {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return len(c.observers)
}
