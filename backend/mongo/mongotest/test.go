package mongotest

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/modernice/notify/backend/mongo"
)

// NewJournal returns a Journal with the given Options, but adds an Option
// that ensures a unique database name for every call to NewJournal during the
// current process.
func NewJournal(opts ...mongo.JournalOption) *mongo.Journal {
	return mongo.NewJournal(append(
		[]mongo.JournalOption{mongo.Database(UniqueName("notify_"))},
		opts...,
	)...)
}

// UniqueName returns prefix followed by a random hex string.
func UniqueName(prefix string) string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%s%s", prefix, hex.EncodeToString(b))
}
