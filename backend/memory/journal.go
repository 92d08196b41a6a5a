// Package memory provides an in-memory journal.Store.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/modernice/notify/journal"
	"golang.org/x/exp/slices"
)

// ErrDuplicateRecord is returned by Journal.Insert when a record with the
// same id already exists.
var ErrDuplicateRecord = errors.New("duplicate record")

var _ journal.Store = (*Journal)(nil)

// Journal is a thread-safe in-memory journal.Store. Payloads are kept in
// their JSON encoding, like in the persistent stores.
type Journal struct {
	mux     sync.RWMutex
	records []entry
	ids     map[uuid.UUID]struct{}
}

type entry struct {
	record  journal.Record
	payload []byte
}

// NewJournal returns an empty in-memory Journal.
func NewJournal() *Journal {
	return &Journal{ids: make(map[uuid.UUID]struct{})}
}

// Insert inserts records. Either all or none of the records are inserted.
func (j *Journal) Insert(ctx context.Context, records ...journal.Record) error {
	entries := make([]entry, len(records))
	for i, r := range records {
		payload, err := journal.EncodePayload(r.Payload)
		if err != nil {
			return fmt.Errorf("encode %q payload: %w [id=%s]", r.Name, err, r.ID)
		}
		r.Payload = nil
		entries[i] = entry{record: r, payload: payload}
	}

	j.mux.Lock()
	defer j.mux.Unlock()

	seen := make(map[uuid.UUID]struct{}, len(records))
	for _, r := range records {
		if _, ok := j.ids[r.ID]; ok {
			return fmt.Errorf("%w [id=%s]", ErrDuplicateRecord, r.ID)
		}
		if _, ok := seen[r.ID]; ok {
			return fmt.Errorf("%w [id=%s]", ErrDuplicateRecord, r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	for _, e := range entries {
		j.records = append(j.records, e)
		j.ids[e.record.ID] = struct{}{}
	}

	return nil
}

// Query returns the records that match q, sorted by time.
func (j *Journal) Query(ctx context.Context, q journal.Query) ([]journal.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	j.mux.RLock()
	var matches []entry
	for _, e := range j.records {
		if journal.Test(q, e.record) {
			matches = append(matches, e)
		}
	}
	j.mux.RUnlock()

	out := make([]journal.Record, len(matches))
	for i, e := range matches {
		r := e.record
		payload, err := journal.DecodePayload(e.payload)
		if err != nil {
			return nil, fmt.Errorf("decode %q payload: %w [id=%s]", r.Name, err, r.ID)
		}
		r.Payload = payload
		out[i] = r
	}

	journal.SortByTime(out)

	if q.Limit > 0 && len(out) > q.Limit {
		out = slices.Clip(out[:q.Limit])
	}

	return out, nil
}

// Len returns the number of records in the Journal.
func (j *Journal) Len() int {
	j.mux.RLock()
	defer j.mux.RUnlock()
	return len(j.records)
}
