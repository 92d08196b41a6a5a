package clifactory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/modernice/notify/backend/memory"
	"github.com/modernice/notify/backend/mongo"
	"github.com/modernice/notify/backend/nats"
	"github.com/modernice/notify/backend/postgres"
	"github.com/modernice/notify/cli/internal/clifactory"
	"github.com/modernice/notify/internal/env"
	"github.com/modernice/notify/notification"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	f := clifactory.New()

	if f.Context == nil {
		t.Fatalf("Context should default to context.Background()")
	}

	if f.Config == nil {
		t.Fatalf("Config should not be nil")
	}

	if store := f.Config.GetString(clifactory.KeyStore); store != "memory" {
		t.Fatalf("store should default to %q; got %q", "memory", store)
	}
}

func TestFactory_Store(t *testing.T) {
	tests := []struct {
		store string
		check func(any) bool
	}{
		{"memory", func(s any) bool { _, ok := s.(*memory.Journal); return ok }},
		{"mongo", func(s any) bool { _, ok := s.(*mongo.Journal); return ok }},
		{"postgres", func(s any) bool { _, ok := s.(*postgres.Journal); return ok }},
	}

	for _, tt := range tests {
		t.Run(tt.store, func(t *testing.T) {
			f := clifactory.New(clifactory.Logger(zap.NewNop()))
			f.Config.Set(clifactory.KeyStore, tt.store)

			store, err := f.Store()
			if err != nil {
				t.Fatalf("Store failed: %v", err)
			}

			if !tt.check(store) {
				t.Fatalf("Store returned the wrong store type %T", store)
			}

			again, _ := f.Store()
			if again != store {
				t.Fatalf("Store should return the same store on every call")
			}

			if err := f.Close(context.Background()); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
		})
	}
}

func TestFactory_Store_env(t *testing.T) {
	defer env.Temp("NOTIFY_STORE", "postgres")()

	f := clifactory.New(clifactory.Logger(zap.NewNop()))

	store, err := f.Store()
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if _, ok := store.(*postgres.Journal); !ok {
		t.Fatalf("Store should use the NOTIFY_STORE environment variable; got %T", store)
	}
}

func TestFactory_Store_unknown(t *testing.T) {
	f := clifactory.New()
	f.Config.Set(clifactory.KeyStore, "redis")

	if _, err := f.Store(); !errors.Is(err, clifactory.ErrUnknownStore) {
		t.Fatalf("Store should fail with %q; got %q", clifactory.ErrUnknownStore, err)
	}
}

func TestFactory_Store_provided(t *testing.T) {
	store := memory.NewJournal()
	f := clifactory.New(clifactory.Store(store))
	f.Config.Set(clifactory.KeyStore, "redis")

	got, err := f.Store()
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if got != store {
		t.Fatalf("Store should return the provided store")
	}
}

func TestFactory_Broadcaster(t *testing.T) {
	f := clifactory.New(clifactory.Logger(zap.NewNop()))
	f.Config.Set(clifactory.KeyNATSURL, "nats://127.0.0.1:1")

	b := f.Broadcaster()
	if _, ok := b.(*nats.Center); !ok {
		t.Fatalf("Broadcaster should return a NATS center; got %T", b)
	}

	if err := f.Close(context.Background()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if err := b.Broadcast(context.Background(), notification.New("foo")); !errors.Is(err, nats.ErrClosed) {
		t.Fatalf("Close should close the NATS center; Broadcast returned %v", err)
	}
}

func TestFactory_Broadcaster_provided(t *testing.T) {
	center := notification.NewCenter()
	f := clifactory.New(clifactory.Broadcaster(center))

	if b := f.Broadcaster(); b != center {
		t.Fatalf("Broadcaster should return the provided broadcaster; got %v", b)
	}
}

func TestFactory_Logger(t *testing.T) {
	logger := zap.NewNop()
	f := clifactory.New(clifactory.Logger(logger))

	if got := f.Logger(); got != logger {
		t.Fatalf("Logger should return the provided logger")
	}

	f = clifactory.New()
	f.Config.Set(clifactory.KeyDebug, true)

	if got := f.Logger(); !got.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("Logger should log debug messages if debug is set")
	}

	f = clifactory.New()
	if got := f.Logger(); got.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("Logger should not log debug messages by default")
	}
}
