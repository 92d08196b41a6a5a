package clifmt_test

import (
	"strings"
	"testing"

	"github.com/modernice/notify/cli/internal/clifmt"
	"github.com/modernice/notify/notification"
)

func TestPayload(t *testing.T) {
	p := notification.Payload{"b": 2, "a": "x", "c": true}

	if got := clifmt.Payload(p); got != "a=x b=2 c=true" {
		t.Fatalf("Payload should return %q; got %q", "a=x b=2 c=true", got)
	}

	if got := clifmt.Payload(nil); got != "" {
		t.Fatalf("Payload should return an empty string for an empty payload; got %q", got)
	}
}

func TestNotification(t *testing.T) {
	n := notification.New("foo", notification.With("a", 1))

	line := clifmt.Notification(n)

	for _, want := range []string{"foo", n.ID.String(), "a=1", n.Time.Format(clifmt.TimeFormat)} {
		if !strings.Contains(line, want) {
			t.Fatalf("Notification should contain %q; got %q", want, line)
		}
	}
}
