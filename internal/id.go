package internal

import "github.com/google/uuid"

// NewID returns a time-ordered (version 7) UUID for notifications, observer
// tokens and object references. It panics if the random source fails.
func NewID() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}
