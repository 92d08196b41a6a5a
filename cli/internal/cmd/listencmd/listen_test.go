package listencmd_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/modernice/notify/cli/internal/clifactory"
	"github.com/modernice/notify/cli/internal/clitest"
	"github.com/modernice/notify/cli/internal/cmd/listencmd"
	"github.com/modernice/notify/cli/internal/cmdtest"
	"github.com/modernice/notify/notification"
	"github.com/modernice/notify/sink"
	"github.com/spf13/cobra"
)

type result struct {
	out string
	err error
}

func TestCommand_count(t *testing.T) {
	center, _, f := clitest.Setup()

	done := run(listencmd.New(f), []string{"foo", "--count", "2", "--window", "5"})

	clitest.WaitForObservers(t, center, 1)

	center.Post(notification.New("bar"))
	center.Post(notification.New("foo", notification.With("i", 1)))
	center.Post(notification.New("foo", notification.With("i", 2)))
	center.Post(notification.New("foo", notification.With("i", 3)))

	res := wait(t, done)
	if res.err != nil {
		t.Fatalf("Command failed: %v", res.err)
	}

	lines := strings.Split(strings.TrimSpace(res.out), "\n")
	if len(lines) != 2 {
		t.Fatalf("Command should print %d lines; got %d\n\n%s", 2, len(lines), res.out)
	}

	for i, line := range lines {
		if !strings.Contains(line, "foo") {
			t.Fatalf("line %d should contain %q; got %q", i, "foo", line)
		}
	}

	if !strings.Contains(lines[0], "i=1") || !strings.Contains(lines[1], "i=2") {
		t.Fatalf("Command should print notifications in order; got\n\n%s", res.out)
	}

	if n := center.Observers(); n != 0 {
		t.Fatalf("Command should cancel its subscription; center has %d observers", n)
	}
}

func TestCommand_interrupt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	center, _, f := clitest.Setup(clifactory.Context(ctx))

	done := run(listencmd.New(f), nil)

	clitest.WaitForObservers(t, center, 1)

	center.Post(notification.New("foo"))
	center.Post(notification.New("bar"))

	// Given the command received the notifications
	time.Sleep(20 * time.Millisecond)

	// When the context is canceled
	cancel()

	// Then the command should exit without error
	res := wait(t, done)
	if res.err != nil {
		t.Fatalf("Command should not fail on interrupt; got %v", res.err)
	}

	for _, name := range []string{"foo", "bar"} {
		if !strings.Contains(res.out, name) {
			t.Fatalf("output should contain %q; got\n\n%s", name, res.out)
		}
	}

	if n := center.Observers(); n != 0 {
		t.Fatalf("Command should cancel its subscription; center has %d observers", n)
	}
}

func TestCommand_invalidWindow(t *testing.T) {
	_, _, f := clitest.Setup()

	cmdtest.Error(t, listencmd.New(f), []string{"foo", "--window", "0"}, sink.ErrInvalidWindow)
}

func run(cmd *cobra.Command, args []string) <-chan result {
	done := make(chan result, 1)
	go func() {
		out, err := cmdtest.Run(cmd, args)
		done <- result{out, err}
	}()
	return done
}

func wait(t *testing.T, done <-chan result) result {
	t.Helper()
	select {
	case <-time.After(3 * time.Second):
		t.Fatalf("Command did not finish in time")
		return result{}
	case res := <-done:
		return res
	}
}
