// Package nats provides a notification.Broadcaster on top of NATS Core.
package nats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/modernice/notify/internal/env"
	"github.com/modernice/notify/notification"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// DefaultSubjectPrefix is the default prefix of the NATS subjects.
const DefaultSubjectPrefix = "notify."

// ErrClosed is returned when using a Center after it was closed.
var ErrClosed = errors.New("center closed")

var _ notification.Broadcaster = (*Center)(nil)

// Center is a notification.Broadcaster that distributes notifications
// through NATS. Every observer gets its own NATS subscription and is called
// on the delivery goroutine of that subscription.
//
// The originator of a notification cannot be sent over the wire. Instead,
// the Center keeps the objects that its observers filter on and sends a
// reference when it broadcasts one of them. Observers of the same Center
// that filter on the object receive it; all other observers receive
// notifications without an originator. Payloads are sent as JSON, so
// received payloads hold JSON types (numbers are float64).
type Center struct {
	url      string
	prefix   string
	logger   *zap.Logger
	natsOpts []nats.Option

	conn        *nats.Conn
	ownsConn    bool
	onceConnect sync.Once
	connectErr  error

	objects *objectTable

	mux    sync.Mutex
	closed bool
	subs   map[notification.Token]observer
}

type observer struct {
	sub *nats.Subscription

	// key of the filtered object in the objectTable, if any
	objectKey string
}

// NewCenter returns a NATS notification center. The connection to NATS is
// established on first use.
func NewCenter(opts ...CenterOption) *Center {
	c := &Center{
		prefix:  DefaultSubjectPrefix,
		objects: newObjectTable(),
		subs:    make(map[notification.Token]observer),
	}

	if prefix := env.String("NATS_SUBJECT_PREFIX"); prefix != "" {
		c.prefix = prefix
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	c.logger = c.logger.Named("nats_center")

	return c
}

// Connect connects to NATS. Connect is called by AddObserver and Broadcast.
func (c *Center) Connect(ctx context.Context) error {
	return c.connectOnce(ctx)
}

func (c *Center) connectOnce(ctx context.Context) error {
	c.onceConnect.Do(func() {
		c.connectErr = c.connect(ctx)
	})
	return c.connectErr
}

func (c *Center) connect(ctx context.Context) error {
	// *nats.Conn provided via Conn() option.
	if c.conn != nil {
		return nil
	}

	url := c.natsURL()

	type result struct {
		conn *nats.Conn
		err  error
	}

	connected := make(chan result, 1)
	go func() {
		conn, err := nats.Connect(url, c.natsOpts...)
		connected <- result{conn, err}
	}()

	select {
	case <-ctx.Done():
		go func() {
			if res := <-connected; res.conn != nil {
				res.conn.Close()
			}
		}()
		return fmt.Errorf("connect: %w [url=%v]", ctx.Err(), url)
	case res := <-connected:
		if res.err != nil {
			return fmt.Errorf("connect: %w [url=%v]", res.err, url)
		}
		c.conn = res.conn
		c.ownsConn = true
	}

	c.logger.Debug("Connected to NATS.", zap.String("url", url))

	return nil
}

func (c *Center) natsURL() string {
	if c.url != "" {
		return c.url
	}
	if url := env.String("NATS_URL"); url != "" {
		return url
	}
	return nats.DefaultURL
}

// Subject returns the NATS subject of notifications with the given name.
// The empty name returns the wildcard subject that matches every name.
func (c *Center) Subject(name notification.Name) string {
	if name == "" {
		return c.prefix + "*"
	}
	return c.prefix + replaceDots(string(name))
}

// AddObserver subscribes to the NATS subject of name and calls fn for every
// received notification that matches name and object.
func (c *Center) AddObserver(name notification.Name, object notification.Object, fn func(notification.Notification)) (notification.Token, error) {
	if c.isClosed() {
		return notification.Token{}, ErrClosed
	}

	if err := c.connectOnce(context.Background()); err != nil {
		return notification.Token{}, fmt.Errorf("connect: %w", err)
	}

	var objectKey string
	if object != nil {
		objectKey = c.objects.register(object)
	}

	subject := c.Subject(name)
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		n, err := c.decode(msg.Data)
		if err != nil {
			c.logger.Warn("Failed to decode notification.", zap.Error(err), zap.String("subject", msg.Subject))
			return
		}

		if !n.Matches(name, object) {
			return
		}

		fn(n)
	})
	if err != nil {
		if objectKey != "" {
			c.objects.unregister(objectKey)
		}
		return notification.Token{}, fmt.Errorf("subscribe: %w [subject=%v]", err, subject)
	}

	tok := notification.NewToken()

	c.mux.Lock()
	if c.closed {
		c.mux.Unlock()
		if objectKey != "" {
			c.objects.unregister(objectKey)
		}
		if err := sub.Unsubscribe(); err != nil {
			c.logger.Warn("Failed to unsubscribe.", zap.Error(err), zap.String("subject", subject))
		}
		return notification.Token{}, ErrClosed
	}
	c.subs[tok] = observer{sub: sub, objectKey: objectKey}
	c.mux.Unlock()

	c.logger.Debug("Observer added.",
		zap.String("subject", subject),
		zap.Stringer("token", tok))

	return tok, nil
}

// RemoveObserver unsubscribes the observer of tok. Unknown tokens are
// ignored.
func (c *Center) RemoveObserver(tok notification.Token) {
	c.mux.Lock()
	obs, ok := c.subs[tok]
	delete(c.subs, tok)
	c.mux.Unlock()

	if !ok {
		return
	}

	if obs.objectKey != "" {
		c.objects.unregister(obs.objectKey)
	}

	if err := obs.sub.Unsubscribe(); err != nil {
		c.logger.Warn("Failed to unsubscribe.",
			zap.Error(err),
			zap.String("subject", obs.sub.Subject),
			zap.Stringer("token", tok))
		return
	}

	c.logger.Debug("Observer removed.", zap.Stringer("token", tok))
}

// Broadcast publishes n to the NATS subject of its name.
func (c *Center) Broadcast(ctx context.Context, n notification.Notification) error {
	if c.isClosed() {
		return ErrClosed
	}

	if err := c.connectOnce(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	if n.Name == "" {
		return fmt.Errorf("publish: missing notification name [id=%s]", n.ID)
	}

	b, err := c.encode(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w [name=%v]", err, n.Name)
	}

	subject := c.Subject(n.Name)
	if err := c.conn.Publish(subject, b); err != nil {
		return fmt.Errorf("nats: %w [subject=%v]", err, subject)
	}

	return nil
}

// Observers returns the number of registered observers.
func (c *Center) Observers() int {
	c.mux.Lock()
	defer c.mux.Unlock()
	return len(c.subs)
}

// Close unsubscribes all observers and drains the NATS connection if it was
// established by the Center. Using the Center after Close returns ErrClosed.
func (c *Center) Close() error {
	c.mux.Lock()
	if c.closed {
		c.mux.Unlock()
		return nil
	}
	c.closed = true
	subs := c.subs
	c.subs = make(map[notification.Token]observer)
	c.mux.Unlock()

	var errs []error
	for _, obs := range subs {
		sub := obs.sub
		if err := sub.Unsubscribe(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			errs = append(errs, fmt.Errorf("unsubscribe: %w [subject=%v]", err, sub.Subject))
		}
	}

	if c.conn != nil && c.ownsConn {
		if err := c.conn.Drain(); err != nil {
			errs = append(errs, fmt.Errorf("drain: %w", err))
		}
	}

	c.objects.clear()

	return errors.Join(errs...)
}

func (c *Center) isClosed() bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.closed
}

// "." is a reserved character by NATS for subjects.
func replaceDots(s string) string {
	return strings.ReplaceAll(s, ".", "_")
}
