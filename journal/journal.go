// Package journal persists notifications.
//
// A Recorder subscribes to a notification.Publisher and inserts the received
// notifications in batches into a Store. Implementations of Store can be
// found in backend/memory, backend/mongo and backend/postgres.
package journal

import (
	"context"
	stdtime "time"

	"github.com/google/uuid"
	"github.com/modernice/notify/notification"
)

// Record is a persisted notification. The originator of a notification is
// never persisted. Payloads are stored as JSON (see EncodePayload), so a
// queried payload holds JSON types: With("n", 3) is returned as float64(3) by
// every Store.
type Record struct {
	ID      uuid.UUID
	Name    notification.Name
	Time    stdtime.Time
	Payload notification.Payload
}

// Store persists Records.
type Store interface {
	// Insert inserts records into the store. Inserting a record with an
	// existing id fails.
	Insert(context.Context, ...Record) error

	// Query returns the records that match q, sorted by time.
	Query(context.Context, Query) ([]Record, error)
}

// FromNotification returns the Record of n.
func FromNotification(n notification.Notification) Record {
	return Record{
		ID:      n.ID,
		Name:    n.Name,
		Time:    n.Time,
		Payload: n.Payload,
	}
}

// Notification returns r as a Notification without an originator.
func (r Record) Notification() notification.Notification {
	return notification.New(
		r.Name,
		notification.WithID(r.ID),
		notification.WithTime(r.Time),
		notification.WithPayload(r.Payload),
	)
}
