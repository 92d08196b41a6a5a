package notification_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/modernice/notify/notification"
)

func TestNew(t *testing.T) {
	n := notification.New("foo")

	if n.ID == uuid.Nil {
		t.Fatalf("New should generate an id")
	}
	if n.Name != "foo" {
		t.Fatalf("Name should be %q; got %q", "foo", n.Name)
	}
	if d := time.Since(n.Time); d < -time.Millisecond || d > time.Second {
		t.Fatalf("Time should be now; got %v", n.Time)
	}
	if n.Object != nil {
		t.Fatalf("Object should be nil; got %v", n.Object)
	}
}

func TestNew_options(t *testing.T) {
	id := uuid.New()
	now := time.Now().Add(-time.Hour)

	n := notification.New(
		"foo",
		notification.WithID(id),
		notification.WithTime(now),
		notification.WithObject(objectOne),
		notification.With("a", 1),
		notification.With("b", "two"),
	)

	if n.ID != id {
		t.Fatalf("ID should be %s; got %s", id, n.ID)
	}
	if !n.Time.Equal(now) {
		t.Fatalf("Time should be %v; got %v", now, n.Time)
	}
	if n.Object != notification.Object(objectOne) {
		t.Fatalf("Object should be %v; got %v", objectOne, n.Object)
	}

	want := notification.Payload{"a": 1, "b": "two"}
	if !cmp.Equal(want, n.Payload) {
		t.Fatalf("Payload mismatch:\n%s", cmp.Diff(want, n.Payload))
	}

	replaced := notification.New("foo", notification.With("a", 1), notification.WithPayload(notification.Payload{"c": true}))
	if !cmp.Equal(notification.Payload{"c": true}, replaced.Payload) {
		t.Fatalf("WithPayload should replace the payload; got %v", replaced.Payload)
	}
}

func TestNotification_Anonymous(t *testing.T) {
	n := notification.New("foo", notification.WithObject(objectOne), notification.With("a", 1))
	anon := n.Anonymous()

	if anon.Object != nil {
		t.Fatalf("Anonymous should remove the object; got %v", anon.Object)
	}
	if anon.ID != n.ID || anon.Name != n.Name || !anon.Time.Equal(n.Time) {
		t.Fatalf("Anonymous should keep everything but the object")
	}
	if n.Object == nil {
		t.Fatalf("Anonymous should not modify the original notification")
	}
}

func TestNotification_Matches(t *testing.T) {
	n := notification.New("foo", notification.WithObject(objectOne))
	plain := notification.New("foo")

	tests := []struct {
		name   string
		n      notification.Notification
		filter notification.Name
		object notification.Object
		want   bool
	}{
		{"no filter", n, "", nil, true},
		{"name", n, "foo", nil, true},
		{"other name", n, "bar", nil, false},
		{"object", n, "", objectOne, true},
		{"other object", n, "", objectTwo, false},
		{"name and object", n, "foo", objectOne, true},
		{"nil originator with object filter", plain, "foo", objectOne, false},
		{"nil originator without object filter", plain, "foo", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.Matches(tt.filter, tt.object); got != tt.want {
				t.Fatalf("Matches(%q, %v) should return %t; got %t", tt.filter, tt.object, tt.want, got)
			}
		})
	}
}
