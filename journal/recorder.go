package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	stdtime "time"

	"github.com/cenkalti/backoff/v5"
	"github.com/modernice/notify/demand"
	"github.com/modernice/notify/notification"
	"go.uber.org/zap"
)

// ErrInvalidBatchSize is returned by NewRecorder for batch sizes smaller than 1.
var ErrInvalidBatchSize = errors.New("invalid batch size")

// Recorder is a Subscriber that inserts the received notifications into a
// Store.
//
// A Recorder never has more notifications in flight than its batch size.
// When a full batch was received, it is inserted asynchronously and the next
// batch is only requested after the insert succeeded. Notifications that
// are posted in the meantime are dropped by the subscription.
//
// Failed inserts are retried with exponential backoff. If all retries fail,
// the batch is kept and the Recorder stops requesting notifications until a
// call to Flush succeeds.
type Recorder struct {
	store      Store
	batchSize  int
	maxRetries uint
	retryDelay stdtime.Duration
	logger     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	flushMux sync.Mutex

	mux    sync.Mutex
	sub    notification.Subscription
	buf    []Record
	err    error
	closed bool
}

// RecorderOption is an option for a Recorder.
type RecorderOption func(*Recorder)

// BatchSize returns a RecorderOption that sets the number of records that are
// inserted at once. Defaults to 100.
func BatchSize(size int) RecorderOption {
	return func(r *Recorder) {
		r.batchSize = size
	}
}

// MaxRetries returns a RecorderOption that sets the maximum number of
// attempts to insert a batch. Defaults to 5.
func MaxRetries(n uint) RecorderOption {
	return func(r *Recorder) {
		r.maxRetries = n
	}
}

// RetryDelay returns a RecorderOption that sets the initial delay between
// insert attempts. Defaults to 100ms.
func RetryDelay(d stdtime.Duration) RecorderOption {
	return func(r *Recorder) {
		r.retryDelay = d
	}
}

// RecorderLogger returns a RecorderOption that sets the logger of a Recorder.
func RecorderLogger(logger *zap.Logger) RecorderOption {
	return func(r *Recorder) {
		r.logger = logger
	}
}

// NewRecorder returns a Recorder that inserts into store.
func NewRecorder(store Store, opts ...RecorderOption) (*Recorder, error) {
	r := &Recorder{
		store:      store,
		batchSize:  100,
		maxRetries: 5,
		retryDelay: 100 * stdtime.Millisecond,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.batchSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, r.batchSize)
	}

	if r.maxRetries < 1 {
		r.maxRetries = 1
	}

	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	r.logger = r.logger.Named("journal_recorder")

	r.ctx, r.cancel = context.WithCancel(context.Background())

	return r, nil
}

// OnSubscribe requests the first batch.
func (r *Recorder) OnSubscribe(sub notification.Subscription) {
	r.mux.Lock()
	r.sub = sub
	r.mux.Unlock()
	sub.Request(demand.Max(r.batchSize))
}

// OnEvent buffers n and starts inserting the buffer when it is full.
func (r *Recorder) OnEvent(n notification.Notification) demand.Demand {
	r.mux.Lock()
	r.buf = append(r.buf, FromNotification(n))
	if len(r.buf) < r.batchSize || r.closed {
		r.mux.Unlock()
		return demand.None
	}
	records := r.buf
	r.buf = nil
	r.wg.Add(1)
	r.mux.Unlock()

	go func() {
		defer r.wg.Done()
		r.flushMux.Lock()
		defer r.flushMux.Unlock()
		r.flush(r.ctx, records)
	}()

	return demand.None
}

// OnComplete does nothing.
func (r *Recorder) OnComplete() {}

// OnFailure stores err, see Err.
func (r *Recorder) OnFailure(err error) {
	r.logger.Error("Subscription failed.", zap.Error(err))

	r.mux.Lock()
	defer r.mux.Unlock()
	r.err = err
}

// Err returns the last error of the Recorder.
func (r *Recorder) Err() error {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.err
}

// Buffered returns the number of records that have not been inserted yet.
func (r *Recorder) Buffered() int {
	r.mux.Lock()
	defer r.mux.Unlock()
	return len(r.buf)
}

// Flush inserts the buffered records. Flush waits for running inserts to
// finish before it inserts the remaining records.
func (r *Recorder) Flush(ctx context.Context) error {
	r.flushMux.Lock()
	defer r.flushMux.Unlock()

	r.mux.Lock()
	records := r.buf
	r.buf = nil
	r.mux.Unlock()

	return r.flush(ctx, records)
}

// Close cancels the subscription of the Recorder, waits for running inserts
// and inserts the remaining records.
func (r *Recorder) Close(ctx context.Context) error {
	r.mux.Lock()
	if r.closed {
		r.mux.Unlock()
		return nil
	}
	r.closed = true
	sub := r.sub
	r.mux.Unlock()

	if sub != nil {
		sub.Cancel()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		r.cancel()
		<-done
		return ctx.Err()
	case <-done:
	}
	defer r.cancel()

	if err := r.Flush(ctx); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	return nil
}

// flush must be called with flushMux held.
func (r *Recorder) flush(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.retryDelay
	policy.MaxInterval = r.retryDelay * 10

	notify := func(err error, d stdtime.Duration) {
		r.logger.Warn("Insert failed. Retrying.",
			zap.Error(err),
			zap.Int("records", len(records)),
			zap.Duration("backoff", d))
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, r.store.Insert(ctx, records...)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(r.maxRetries),
		backoff.WithNotify(notify))

	r.mux.Lock()
	if err != nil {
		err = fmt.Errorf("insert records: %w [records=%d]", err, len(records))
		r.err = err
		r.buf = append(records, r.buf...)
		r.mux.Unlock()

		r.logger.Error("Failed to insert records.", zap.Error(err))
		return err
	}
	sub, closed := r.sub, r.closed
	r.mux.Unlock()

	r.logger.Debug("Records inserted.", zap.Int("records", len(records)))

	if sub != nil && !closed {
		sub.Request(demand.Max(len(records)))
	}

	return nil
}
