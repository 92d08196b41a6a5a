package postcmd_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/modernice/notify/cli/internal/clitest"
	"github.com/modernice/notify/cli/internal/cmd/postcmd"
	"github.com/modernice/notify/cli/internal/cmdtest"
	"github.com/modernice/notify/notification"
	"github.com/modernice/notify/sink"
)

func TestCommand(t *testing.T) {
	center, _, f := clitest.Setup()

	ch, err := sink.NewChan(1)
	if err != nil {
		t.Fatal(err)
	}
	notification.NewPublisher(center, "foo", nil).Subscribe(ch)
	defer ch.Cancel()

	cmdtest.Contains(t, postcmd.New(f), []string{"foo", "a=b", "c=d=e"}, "Notification posted.", "foo")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	n, err := ch.Next(ctx)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	if n.Name != "foo" {
		t.Fatalf("posted notification should have name %q; got %q", "foo", n.Name)
	}

	want := notification.Payload{"a": "b", "c": "d=e"}
	if !cmp.Equal(want, n.Payload) {
		t.Fatalf("posted notification has wrong payload:\n\n%s", cmp.Diff(want, n.Payload))
	}

	if n.Object != nil {
		t.Fatalf("posted notification should have no object; got %v", n.Object)
	}
}

func TestCommand_missingName(t *testing.T) {
	_, _, f := clitest.Setup()

	if _, err := cmdtest.Run(postcmd.New(f), nil); err == nil {
		t.Fatalf("Command should fail without a notification name")
	}
}

func TestCommand_invalidPayload(t *testing.T) {
	center, _, f := clitest.Setup()

	var received []notification.Notification
	s := sink.Subscribe(notification.NewPublisher(center, "", nil), func(n notification.Notification) {
		received = append(received, n)
	})
	defer s.Cancel()

	if _, err := cmdtest.Run(postcmd.New(f), []string{"foo", "bar"}); err == nil {
		t.Fatalf("Command should fail for a payload argument without %q", "=")
	}

	if len(received) != 0 {
		t.Fatalf("no notification should have been posted; got %v", received)
	}
}
