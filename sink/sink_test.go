package sink_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/modernice/notify/notification"
	"github.com/modernice/notify/notification/notificationtest"
	"github.com/modernice/notify/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSubscribe(t *testing.T) {
	center := notification.NewCenter()
	pub := notification.NewPublisher(center, "foo", nil)

	var names []notification.Name
	f := sink.Subscribe(pub, func(n notification.Notification) {
		names = append(names, n.Name)
	})

	for i := 0; i < 100; i++ {
		center.Post(notification.New("foo"))
	}
	center.Post(notification.New("bar"))

	assert.Len(t, names, 100)

	f.Cancel()
	center.Post(notification.New("foo"))

	assert.Len(t, names, 100)
	assert.Equal(t, 0, center.Observers())
	assert.NoError(t, f.Err())
}

func TestFunc_OnFailure(t *testing.T) {
	src := notificationtest.NewSource()
	src.Err = errors.New("mock error")

	f := sink.Subscribe(notification.NewPublisher(src, "foo", nil), func(notification.Notification) {})

	assert.ErrorIs(t, f.Err(), src.Err)
}

func TestNewChan_invalidWindow(t *testing.T) {
	_, err := sink.NewChan(0)
	assert.ErrorIs(t, err, sink.ErrInvalidWindow)
}

func TestChan_window(t *testing.T) {
	center := notification.NewCenter()
	pub := notification.NewPublisher(center, "foo", nil)

	c, err := sink.NewChan(3)
	require.NoError(t, err)
	pub.Subscribe(c)

	for i := 0; i < 10; i++ {
		center.Post(notification.New("foo", notification.With("i", i)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		n, err := c.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, n.Payload["i"])
	}

	// three more were requested by Next
	for i := 0; i < 10; i++ {
		center.Post(notification.New("foo", notification.With("i", 10+i)))
	}

	for i := 0; i < 3; i++ {
		n, err := c.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10+i, n.Payload["i"])
	}

	shortCtx, shortCancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer shortCancel()

	_, err = c.Next(shortCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	c.Cancel()
}

func TestChan_Next_concurrent(t *testing.T) {
	center := notification.NewCenter()
	pub := notification.NewPublisher(center, "foo", nil)

	c, err := sink.NewChan(1)
	require.NoError(t, err)
	pub.Subscribe(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	received := make(chan notification.Notification, 1)
	go func() {
		defer wg.Done()
		n, err := c.Next(ctx)
		if err == nil {
			received <- n
		}
	}()

	want := notification.New("foo")
	center.Post(want)

	wg.Wait()

	select {
	case n := <-received:
		assert.Equal(t, want.ID, n.ID)
	default:
		t.Fatalf("Next should have returned the posted notification")
	}

	c.Cancel()
}

func TestChan_Cancel(t *testing.T) {
	center := notification.NewCenter()
	pub := notification.NewPublisher(center, "foo", nil)

	c, err := sink.NewChan(5)
	require.NoError(t, err)
	pub.Subscribe(c)

	center.Post(notification.New("foo"))
	c.Cancel()
	center.Post(notification.New("foo"))

	assert.Equal(t, 0, center.Observers())

	// buffered notifications are still returned
	_, err = c.Next(context.Background())
	require.NoError(t, err)

	_, err = c.Next(context.Background())
	assert.ErrorIs(t, err, sink.ErrCancelled)

	select {
	case <-c.Done():
	default:
		t.Fatalf("Done channel should be closed")
	}
}

func TestChan_OnFailure(t *testing.T) {
	src := notificationtest.NewSource()
	src.Err = errors.New("mock error")

	c, err := sink.NewChan(1)
	require.NoError(t, err)
	notification.NewPublisher(src, "foo", nil).Subscribe(c)

	_, err = c.Next(context.Background())
	assert.ErrorIs(t, err, src.Err)
	assert.ErrorIs(t, c.Failure(), src.Err)
}

func TestChan_C(t *testing.T) {
	center := notification.NewCenter()
	pub := notification.NewPublisher(center, "foo", nil)

	c, err := sink.NewChan(1)
	require.NoError(t, err)
	pub.Subscribe(c)
	defer c.Cancel()

	center.Post(notification.New("foo"))
	center.Post(notification.New("foo"))

	require.Len(t, c.C(), 1)
	<-c.C()

	center.Post(notification.New("foo"))
	assert.Len(t, c.C(), 0, "no demand without Ack")

	c.Ack()
	center.Post(notification.New("foo"))
	assert.Len(t, c.C(), 1)
}
