// Package journaltest tests implementations of journal.Store.
package journaltest

import (
	"context"
	"testing"
	stdtime "time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/modernice/notify/internal/slice"
	"github.com/modernice/notify/journal"
	"github.com/modernice/notify/notification"
	"golang.org/x/sync/errgroup"
)

// StoreFactory creates a journal.Store.
type StoreFactory func() journal.Store

// Run tests a journal.Store implementation.
func Run(t *testing.T, name string, newStore StoreFactory) {
	t.Run(name, func(t *testing.T) {
		run(t, "Insert", newStore, testInsert)
		run(t, "InsertDuplicate", newStore, testInsertDuplicate)
		run(t, "InsertEmpty", newStore, testInsertEmpty)
		run(t, "Concurrency", newStore, testConcurrency)
		run(t, "Query", newStore, testQuery)
		run(t, "Payload", newStore, testPayload)
	})
}

func run(t *testing.T, name string, newStore StoreFactory, runner func(*testing.T, StoreFactory)) {
	t.Run(name, func(t *testing.T) {
		runner(t, newStore)
	})
}

func testInsert(t *testing.T, newStore StoreFactory) {
	store := newStore()
	now := stdtime.Now()

	records := []journal.Record{
		newRecord("foo", now.Add(2*stdtime.Second), notification.Payload{"a": "1"}),
		newRecord("bar", now, nil),
		newRecord("foo", now.Add(stdtime.Second), notification.Payload{"b": "2", "c": "3"}),
	}

	if err := store.Insert(context.Background(), records...); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	result, err := store.Query(context.Background(), journal.Query{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	want := []journal.Record{records[1], records[2], records[0]}
	assertRecords(t, want, result)
}

func testInsertDuplicate(t *testing.T, newStore StoreFactory) {
	store := newStore()

	r := newRecord("foo", stdtime.Now(), nil)
	if err := store.Insert(context.Background(), r); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	dup := newRecord("bar", stdtime.Now(), nil)
	dup.ID = r.ID

	if err := store.Insert(context.Background(), dup); err == nil {
		t.Fatalf("inserting a record with an existing id should fail")
	}
}

func testInsertEmpty(t *testing.T, newStore StoreFactory) {
	store := newStore()

	if err := store.Insert(context.Background()); err != nil {
		t.Fatalf("inserting no records should not fail; got %v", err)
	}
}

func testConcurrency(t *testing.T, newStore StoreFactory) {
	store := newStore()
	now := stdtime.Now()

	var g errgroup.Group
	for i := 0; i < 10; i++ {
		i := i
		g.Go(func() error {
			return store.Insert(context.Background(), newRecord("foo", now.Add(stdtime.Duration(i)*stdtime.Millisecond), nil))
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent inserts should not fail; got %v", err)
	}

	result, err := store.Query(context.Background(), journal.Query{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if len(result) != 10 {
		t.Fatalf("Query should return %d records; got %d", 10, len(result))
	}
}

func testQuery(t *testing.T, newStore StoreFactory) {
	store := newStore()
	now := stdtime.Now()

	records := []journal.Record{
		newRecord("foo", now, nil),
		newRecord("bar", now.Add(stdtime.Second), nil),
		newRecord("baz", now.Add(2*stdtime.Second), nil),
		newRecord("foo", now.Add(3*stdtime.Second), nil),
		newRecord("bar", now.Add(4*stdtime.Second), nil),
	}

	if err := store.Insert(context.Background(), records...); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	tests := []struct {
		name  string
		query journal.Query
		want  []journal.Record
	}{
		{
			name:  "all",
			query: journal.Query{},
			want:  records,
		},
		{
			name:  "name",
			query: journal.Query{Names: []notification.Name{"foo"}},
			want:  []journal.Record{records[0], records[3]},
		},
		{
			name:  "names",
			query: journal.Query{Names: []notification.Name{"bar", "baz"}},
			want:  []journal.Record{records[1], records[2], records[4]},
		},
		{
			name:  "after",
			query: journal.Query{After: now.Add(2 * stdtime.Second)},
			want:  []journal.Record{records[3], records[4]},
		},
		{
			name:  "before",
			query: journal.Query{Before: now.Add(2 * stdtime.Second)},
			want:  []journal.Record{records[0], records[1]},
		},
		{
			name: "between",
			query: journal.Query{
				After:  now,
				Before: now.Add(4 * stdtime.Second),
			},
			want: []journal.Record{records[1], records[2], records[3]},
		},
		{
			name:  "limit",
			query: journal.Query{Limit: 2},
			want:  []journal.Record{records[0], records[1]},
		},
		{
			name:  "name and limit",
			query: journal.Query{Names: []notification.Name{"bar"}, Limit: 1},
			want:  []journal.Record{records[1]},
		},
		{
			name:  "no match",
			query: journal.Query{Names: []notification.Name{"qux"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := store.Query(context.Background(), tt.query)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			assertRecords(t, tt.want, result)
		})
	}
}

func testPayload(t *testing.T, newStore StoreFactory) {
	store := newStore()

	r := newRecord("foo", stdtime.Now(), notification.Payload{
		"int":    3,
		"float":  1.5,
		"bool":   true,
		"string": "bar",
		"slice":  []string{"a", "b"},
		"map":    map[string]int{"x": 1},
	})

	if err := store.Insert(context.Background(), r); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	result, err := store.Query(context.Background(), journal.Query{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("Query should return %d record; got %d", 1, len(result))
	}

	want := notification.Payload{
		"int":    float64(3),
		"float":  1.5,
		"bool":   true,
		"string": "bar",
		"slice":  []any{"a", "b"},
		"map":    map[string]any{"x": float64(1)},
	}

	if !cmp.Equal(want, result[0].Payload) {
		t.Fatalf("payload values should be returned as JSON types:\n%s", cmp.Diff(want, result[0].Payload))
	}
}

func newRecord(name notification.Name, t stdtime.Time, payload notification.Payload) journal.Record {
	return journal.Record{
		ID:      uuid.New(),
		Name:    name,
		Time:    t,
		Payload: payload,
	}
}

type flatRecord struct {
	ID      uuid.UUID
	Name    notification.Name
	Time    int64
	Payload notification.Payload
}

func toComparable(r journal.Record) flatRecord {
	return flatRecord{
		ID:      r.ID,
		Name:    r.Name,
		Time:    r.Time.UnixNano(),
		Payload: r.Payload,
	}
}

func assertRecords(t *testing.T, want, got []journal.Record) {
	t.Helper()

	w := slice.Map(want, toComparable)
	g := slice.Map(got, toComparable)

	if !cmp.Equal(w, g, cmp.Comparer(equalPayload)) {
		t.Fatalf("records mismatch:\n%s", cmp.Diff(w, g, cmp.Comparer(equalPayload)))
	}
}

// nil and empty payloads are equal
func equalPayload(a, b notification.Payload) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
