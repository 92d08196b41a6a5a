// Package mongo provides a MongoDB journal.Store.
package mongo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	stdtime "time"

	"github.com/google/uuid"
	"github.com/modernice/notify/internal/env"
	"github.com/modernice/notify/journal"
	"github.com/modernice/notify/notification"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ journal.Store = (*Journal)(nil)

// Journal is a MongoDB journal.Store.
type Journal struct {
	url     string
	dbname  string
	colname string
	noIndex bool

	client *mongo.Client
	db     *mongo.Database
	col    *mongo.Collection

	onceConnect sync.Once
}

// JournalOption is an option for a Journal.
type JournalOption func(*Journal)

type entry struct {
	ID       uuid.UUID    `bson:"id"`
	Name     string       `bson:"name"`
	Time     stdtime.Time `bson:"time"`
	TimeNano int64        `bson:"timeNano"`
	Payload  []byte       `bson:"payload"`
}

// URL returns a JournalOption that specifies the URL to the MongoDB instance.
//
// Defaults to the environment variable "MONGO_URL".
func URL(url string) JournalOption {
	return func(j *Journal) {
		j.url = url
	}
}

// Client returns a JournalOption that specifies the underlying mongo.Client
// to be used by the Journal.
func Client(c *mongo.Client) JournalOption {
	return func(j *Journal) {
		j.client = c
	}
}

// Database returns a JournalOption that sets the database of the Journal.
// Defaults to "notify".
func Database(name string) JournalOption {
	return func(j *Journal) {
		j.dbname = name
	}
}

// Collection returns a JournalOption that sets the collection where the
// records are stored in. Defaults to "journal".
func Collection(name string) JournalOption {
	return func(j *Journal) {
		j.colname = name
	}
}

// NoIndex returns a JournalOption that disables index creation on connect.
func NoIndex(ni bool) JournalOption {
	return func(j *Journal) {
		j.noIndex = ni
	}
}

// NewJournal returns a MongoDB journal.Store. The Journal connects lazily
// on first use.
func NewJournal(opts ...JournalOption) *Journal {
	var j Journal
	for _, opt := range opts {
		opt(&j)
	}
	if strings.TrimSpace(j.dbname) == "" {
		j.dbname = "notify"
	}
	if strings.TrimSpace(j.colname) == "" {
		j.colname = "journal"
	}
	return &j
}

// Client returns the underlying mongo.Client. Client returns nil until the
// connection has been established, unless a client was provided with the
// Client option.
func (j *Journal) Client() *mongo.Client {
	return j.client
}

// Collection returns the underlying *mongo.Collection, or nil if the Journal
// is not connected yet.
func (j *Journal) Collection() *mongo.Collection {
	return j.col
}

// Connect establishes the connection to MongoDB and creates the indexes of
// the collection. Connect is called by Insert and Query.
func (j *Journal) Connect(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error) {
	if err := j.connectOnce(ctx, opts...); err != nil {
		return nil, err
	}
	return j.client, nil
}

func (j *Journal) connectOnce(ctx context.Context, opts ...*options.ClientOptions) error {
	var err error
	j.onceConnect.Do(func() {
		if err = j.connect(ctx, opts...); err != nil {
			return
		}

		if j.noIndex {
			return
		}

		if err = j.ensureIndexes(ctx); err != nil {
			err = fmt.Errorf("ensure indexes: %w", err)
			return
		}
	})
	return err
}

func (j *Journal) connect(ctx context.Context, opts ...*options.ClientOptions) error {
	if j.client == nil {
		uri := j.url
		if uri == "" {
			uri = env.String("MONGO_URL")
		}
		opts = append(
			[]*options.ClientOptions{options.Client().ApplyURI(uri)},
			opts...,
		)

		var err error
		if j.client, err = mongo.Connect(ctx, opts...); err != nil {
			j.client = nil
			return fmt.Errorf("mongo.Connect: %w", err)
		}
	}
	j.db = j.client.Database(j.dbname)
	j.col = j.db.Collection(j.colname)
	return nil
}

func (j *Journal) ensureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("notify_id").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "name", Value: 1},
				{Key: "timeNano", Value: 1},
			},
			Options: options.Index().SetName("notify_name_time"),
		},
		{
			Keys:    bson.D{{Key: "timeNano", Value: 1}},
			Options: options.Index().SetName("notify_time"),
		},
	}

	if _, err := j.col.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}

	return nil
}

// Insert inserts records into the collection.
func (j *Journal) Insert(ctx context.Context, records ...journal.Record) error {
	if err := j.connectOnce(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	if len(records) == 0 {
		return nil
	}

	docs := make([]any, len(records))
	for i, r := range records {
		e, err := newEntry(r)
		if err != nil {
			return err
		}
		docs[i] = e
	}

	if _, err := j.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert records: %w", err)
	}

	return nil
}

// Query returns the records that match q, sorted by time.
func (j *Journal) Query(ctx context.Context, q journal.Query) ([]journal.Record, error) {
	if err := j.connectOnce(ctx); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "timeNano", Value: 1}})
	if q.Limit > 0 {
		opts = opts.SetLimit(int64(q.Limit))
	}

	cur, err := j.col.Find(ctx, makeFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: %w", err)
	}
	defer cur.Close(ctx)

	var records []journal.Record
	for cur.Next(ctx) {
		var e entry
		if err := cur.Decode(&e); err != nil {
			return records, fmt.Errorf("decode entry: %w", err)
		}

		r, err := e.record()
		if err != nil {
			return records, err
		}

		records = append(records, r)
	}

	if err := cur.Err(); err != nil {
		return records, fmt.Errorf("mongo cursor: %w", err)
	}

	return records, nil
}

func makeFilter(q journal.Query) bson.D {
	filter := make(bson.D, 0)

	if len(q.Names) > 0 {
		names := make([]string, len(q.Names))
		for i, name := range q.Names {
			names[i] = string(name)
		}
		filter = append(filter, bson.E{Key: "name", Value: bson.D{{Key: "$in", Value: names}}})
	}

	var times bson.D
	if !q.After.IsZero() {
		times = append(times, bson.E{Key: "$gt", Value: q.After.UnixNano()})
	}
	if !q.Before.IsZero() {
		times = append(times, bson.E{Key: "$lt", Value: q.Before.UnixNano()})
	}
	if len(times) > 0 {
		filter = append(filter, bson.E{Key: "timeNano", Value: times})
	}

	return filter
}

func newEntry(r journal.Record) (entry, error) {
	payload, err := journal.EncodePayload(r.Payload)
	if err != nil {
		return entry{}, fmt.Errorf("encode %q payload: %w [id=%s]", r.Name, err, r.ID)
	}

	return entry{
		ID:       r.ID,
		Name:     string(r.Name),
		Time:     r.Time,
		TimeNano: r.Time.UnixNano(),
		Payload:  payload,
	}, nil
}

func (e entry) record() (journal.Record, error) {
	payload, err := journal.DecodePayload(e.Payload)
	if err != nil {
		return journal.Record{}, fmt.Errorf("decode %q payload: %w [id=%s]", e.Name, err, e.ID)
	}

	return journal.Record{
		ID:      e.ID,
		Name:    notification.Name(e.Name),
		Time:    stdtime.Unix(0, e.TimeNano),
		Payload: payload,
	}, nil
}
