package notification

//go:generate mockgen -source=source.go -destination=./mocks/source.go

import (
	"context"

	"github.com/google/uuid"
	"github.com/modernice/notify/internal"
)

// Source is a broadcast facility that pushes notifications to registered
// observers, independent of whether those observers are ready.
type Source interface {
	// AddObserver registers fn for notifications that match name and object.
	// An empty name matches every name and a nil object matches every
	// originator. fn may be called synchronously on any goroutine, even
	// before AddObserver returns. The returned Token unregisters fn.
	AddObserver(name Name, object Object, fn func(Notification)) (Token, error)

	// RemoveObserver unregisters the observer that was registered with tok.
	RemoveObserver(tok Token)
}

// Broadcaster is a Source that can also broadcast notifications.
type Broadcaster interface {
	Source

	// Broadcast sends n to every matching observer.
	Broadcast(ctx context.Context, n Notification) error
}

// Token is an opaque handle of an observer registration.
type Token uuid.UUID

// NewToken returns a new, unique Token.
func NewToken() Token {
	return Token(internal.NewID())
}

func (tok Token) String() string {
	return uuid.UUID(tok).String()
}
