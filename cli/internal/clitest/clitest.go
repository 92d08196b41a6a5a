package clitest

import (
	"testing"
	"time"

	"github.com/modernice/notify/backend/memory"
	"github.com/modernice/notify/cli/internal/clifactory"
	"github.com/modernice/notify/notification"
	"go.uber.org/zap"
)

// Setup returns an in-memory notification center, an in-memory journal and a
// Factory that uses both. opts are applied after the defaults.
func Setup(opts ...clifactory.Option) (*notification.Center, *memory.Journal, *clifactory.Factory) {
	center := notification.NewCenter()
	store := memory.NewJournal()

	f := clifactory.New(append([]clifactory.Option{
		clifactory.Logger(zap.NewNop()),
		clifactory.Broadcaster(center),
		clifactory.Store(store),
	}, opts...)...)

	return center, store, f
}

// WaitForObservers waits until center has n observers.
func WaitForObservers(t *testing.T, center *notification.Center, n int) {
	t.Helper()
	WaitFor(t, func() bool { return center.Observers() == n })
}

// WaitFor calls cond until it returns true and fails the test after 3 seconds.
func WaitFor(t *testing.T, cond func() bool) {
	t.Helper()

	timeout := time.NewTimer(3 * time.Second)
	defer timeout.Stop()

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for !cond() {
		select {
		case <-timeout.C:
			t.Fatalf("condition not met after %v", 3*time.Second)
		case <-ticker.C:
		}
	}
}
