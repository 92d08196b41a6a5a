package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/modernice/notify/notification"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCenter_Post(t *testing.T) {
	c := notification.NewCenter()

	var foo, all, one int
	mustAdd(t, c, "foo", nil, func(notification.Notification) { foo++ })
	mustAdd(t, c, "", nil, func(notification.Notification) { all++ })
	mustAdd(t, c, "", objectOne, func(notification.Notification) { one++ })

	c.Post(notification.New("foo"))
	c.Post(notification.New("bar", notification.WithObject(objectOne)))
	c.Post(notification.New("foo", notification.WithObject(objectTwo)))

	if foo != 2 {
		t.Fatalf("name observer should have been called %d times; got %d", 2, foo)
	}
	if all != 3 {
		t.Fatalf("catch-all observer should have been called %d times; got %d", 3, all)
	}
	if one != 1 {
		t.Fatalf("object observer should have been called %d time; got %d", 1, one)
	}
}

func TestCenter_Post_order(t *testing.T) {
	c := notification.NewCenter()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		mustAdd(t, c, "foo", nil, func(notification.Notification) { order = append(order, i) })
	}

	c.Post(notification.New("foo"))

	for i, v := range order {
		if v != i {
			t.Fatalf("observers should be called in registration order; got %v", order)
		}
	}
}

func TestCenter_RemoveObserver(t *testing.T) {
	c := notification.NewCenter()

	var calls int
	tok := mustAdd(t, c, "foo", nil, func(notification.Notification) { calls++ })

	c.Post(notification.New("foo"))
	c.RemoveObserver(tok)
	c.RemoveObserver(tok)
	c.Post(notification.New("foo"))

	if calls != 1 {
		t.Fatalf("removed observer should not be called; got %d calls", calls)
	}
	if n := c.Observers(); n != 0 {
		t.Fatalf("center should have no observers; got %d", n)
	}
}

func TestCenter_RemoveObserver_duringPost(t *testing.T) {
	c := notification.NewCenter()

	var second notification.Token
	var calls int
	mustAdd(t, c, "foo", nil, func(notification.Notification) { c.RemoveObserver(second) })
	second = mustAdd(t, c, "foo", nil, func(notification.Notification) { calls++ })

	c.Post(notification.New("foo"))

	if calls != 0 {
		t.Fatalf("observer that was removed during Post should not be called; got %d calls", calls)
	}
}

func TestCenter_Post_reentrant(t *testing.T) {
	c := notification.NewCenter()

	var calls int
	mustAdd(t, c, "foo", nil, func(notification.Notification) {
		calls++
		if calls < 3 {
			c.Post(notification.New("foo"))
		}
	})

	c.Post(notification.New("foo"))

	if calls != 3 {
		t.Fatalf("observer should have been called %d times; got %d", 3, calls)
	}
}

func TestCenter_Broadcast(t *testing.T) {
	c := notification.NewCenter()

	var calls int
	mustAdd(t, c, "foo", nil, func(notification.Notification) { calls++ })

	if err := c.Broadcast(context.Background(), notification.New("foo")); err != nil {
		t.Fatalf("Broadcast failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Broadcast(ctx, notification.New("foo")); !errors.Is(err, context.Canceled) {
		t.Fatalf("Broadcast should fail with %q; got %q", context.Canceled, err)
	}

	if calls != 1 {
		t.Fatalf("observer should have been called %d time; got %d", 1, calls)
	}
}

func TestCenterLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := notification.NewCenter(notification.CenterLogger(zap.New(core)))

	tok := mustAdd(t, c, "foo", nil, func(notification.Notification) {})
	c.RemoveObserver(tok)

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("center should have logged %d entries; got %d", 2, len(entries))
	}
	if entries[0].LoggerName != "notification_center" {
		t.Fatalf("logger should be named %q; got %q", "notification_center", entries[0].LoggerName)
	}
}

func mustAdd(t *testing.T, c *notification.Center, name notification.Name, object notification.Object, fn func(notification.Notification)) notification.Token {
	t.Helper()
	tok, err := c.AddObserver(name, object, fn)
	if err != nil {
		t.Fatalf("AddObserver failed: %v", err)
	}
	return tok
}
