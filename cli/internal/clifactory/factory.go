package clifactory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/modernice/notify/backend/memory"
	"github.com/modernice/notify/backend/mongo"
	"github.com/modernice/notify/backend/nats"
	"github.com/modernice/notify/backend/postgres"
	"github.com/modernice/notify/journal"
	"github.com/modernice/notify/notification"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ErrUnknownStore is returned when the configured journal store is not one of
// "memory", "mongo" or "postgres".
var ErrUnknownStore = errors.New("unknown store")

// Configuration keys. Every key can also be set through an environment
// variable with the "NOTIFY_" prefix, e.g. NOTIFY_NATS_URL.
const (
	KeyNATSURL     = "nats-url"
	KeyDebug       = "debug"
	KeyStore       = "store"
	KeyMongoURL    = "mongo-url"
	KeyPostgresURL = "postgres-url"
)

// Factory is used by commands to provide common configuration and lazily
// built dependencies.
type Factory struct {
	Context context.Context
	Config  *viper.Viper

	mux         sync.Mutex
	logger      *zap.Logger
	broadcaster notification.Broadcaster
	store       journal.Store
	closers     []func(context.Context) error
}

// Option is a Factory option.
type Option func(*Factory)

// Context returns an Option that sets the Context of a Factory.
func Context(ctx context.Context) Option {
	return func(f *Factory) {
		f.Context = ctx
	}
}

// Config returns an Option that replaces the viper instance of a Factory.
func Config(cfg *viper.Viper) Option {
	return func(f *Factory) {
		f.Config = cfg
	}
}

// Logger returns an Option that provides the logger, instead of building one
// from the "debug" setting.
func Logger(logger *zap.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// Broadcaster returns an Option that provides the notification.Broadcaster,
// instead of connecting to NATS.
func Broadcaster(b notification.Broadcaster) Option {
	return func(f *Factory) {
		f.broadcaster = b
	}
}

// Store returns an Option that provides the journal.Store, instead of
// building one from the "store" setting.
func Store(s journal.Store) Option {
	return func(f *Factory) {
		f.store = s
	}
}

// New returns a new Factory.
func New(opts ...Option) *Factory {
	var f Factory
	for _, opt := range opts {
		opt(&f)
	}
	if f.Context == nil {
		f.Context = context.Background()
	}
	if f.Config == nil {
		f.Config = newConfig()
	}
	return &f
}

func newConfig() *viper.Viper {
	cfg := viper.New()
	cfg.SetEnvPrefix("notify")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault(KeyStore, "memory")
	return cfg
}

// Logger returns the logger. Unless provided through the Logger option, a
// development logger is built if "debug" is set and a production logger
// otherwise.
func (f *Factory) Logger() *zap.Logger {
	f.mux.Lock()
	defer f.mux.Unlock()

	if f.logger != nil {
		return f.logger
	}

	build := zap.NewProduction
	if f.Config.GetBool(KeyDebug) {
		build = zap.NewDevelopment
	}

	logger, err := build()
	if err != nil {
		logger = zap.NewNop()
	}
	f.logger = logger

	return f.logger
}

// Broadcaster returns the notification.Broadcaster. Unless provided through
// the Broadcaster option, a NATS center is created on first call.
func (f *Factory) Broadcaster() notification.Broadcaster {
	logger := f.Logger()

	f.mux.Lock()
	defer f.mux.Unlock()

	if f.broadcaster != nil {
		return f.broadcaster
	}

	opts := []nats.CenterOption{nats.Logger(logger)}
	if url := f.Config.GetString(KeyNATSURL); url != "" {
		opts = append(opts, nats.URL(url))
	}

	center := nats.NewCenter(opts...)
	f.broadcaster = center
	f.closers = append(f.closers, func(context.Context) error {
		return center.Close()
	})

	return f.broadcaster
}

// Store returns the journal.Store. Unless provided through the Store option,
// the store is created on first call from the "store" setting.
func (f *Factory) Store() (journal.Store, error) {
	f.mux.Lock()
	defer f.mux.Unlock()

	if f.store != nil {
		return f.store, nil
	}

	name := f.Config.GetString(KeyStore)
	switch name {
	case "memory":
		f.store = memory.NewJournal()
	case "mongo":
		var opts []mongo.JournalOption
		if url := f.Config.GetString(KeyMongoURL); url != "" {
			opts = append(opts, mongo.URL(url))
		}
		store := mongo.NewJournal(opts...)
		f.store = store
		f.closers = append(f.closers, func(ctx context.Context) error {
			if client := store.Client(); client != nil {
				return client.Disconnect(ctx)
			}
			return nil
		})
	case "postgres":
		var opts []postgres.JournalOption
		if url := f.Config.GetString(KeyPostgresURL); url != "" {
			opts = append(opts, postgres.URL(url))
		}
		store := postgres.NewJournal(opts...)
		f.store = store
		f.closers = append(f.closers, func(context.Context) error {
			if pool := store.Pool(); pool != nil {
				pool.Close()
			}
			return nil
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, name)
	}

	return f.store, nil
}

// Close closes the dependencies that were created by the Factory. Provided
// dependencies are not closed.
func (f *Factory) Close(ctx context.Context) error {
	f.mux.Lock()
	closers := f.closers
	f.closers = nil
	logger := f.logger
	f.mux.Unlock()

	var errs []error
	for _, fn := range closers {
		if err := fn(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if logger != nil {
		// Syncing stderr fails on some platforms.
		_ = logger.Sync()
	}

	return errors.Join(errs...)
}
