//go:build mongo

package mongo_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/modernice/notify/backend/mongo"
	"github.com/modernice/notify/backend/mongo/mongotest"
	"github.com/modernice/notify/journal"
	"github.com/modernice/notify/journal/journaltest"
	"go.mongodb.org/mongo-driver/bson"
)

func TestJournal(t *testing.T) {
	journaltest.Run(t, "mongo", func() journal.Store {
		return mongotest.NewJournal(mongo.URL(os.Getenv("MONGO_URL")))
	})
}

func TestJournal_Insert_document(t *testing.T) {
	j := mongotest.NewJournal(mongo.URL(os.Getenv("MONGO_URL")))

	now := time.Now()
	r := journal.Record{
		ID:      uuid.New(),
		Name:    "foo",
		Time:    now,
		Payload: map[string]any{"a": "b"},
	}

	if err := j.Insert(context.Background(), r); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	var doc bson.M
	if err := j.Collection().FindOne(context.Background(), bson.D{{Key: "name", Value: "foo"}}).Decode(&doc); err != nil {
		t.Fatalf("failed to find document: %v", err)
	}

	if doc["timeNano"] != now.UnixNano() {
		t.Fatalf("document should have timeNano %d; got %v", now.UnixNano(), doc["timeNano"])
	}
}
