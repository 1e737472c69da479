// Package searchstream runs search queries off the interactive thread.
// Requests are debounced so a typing burst costs one query, results and
// errors come back on separate channels, and every fired request yields
// exactly one terminal result. In-flight queries are never cancelled, so
// a slow query may report after a newer one; the consumer takes the last
// writer.
package searchstream

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultDebounce is the idle delay after the last keystroke before a
	// search fires.
	DefaultDebounce = 250 * time.Millisecond
	// DefaultJoinTimeout bounds how long Stop waits for the worker to
	// drain. Missing the deadline is not fatal; process exit reclaims the
	// goroutine.
	DefaultJoinTimeout = time.Second
)

type SearchFunc[T any] func(ctx context.Context, query string, limit int) ([]T, error)

// Result is the terminal response for one fired request. Rows is empty,
// never absent, when the underlying search failed.
type Result[T any] struct {
	Query string
	Limit int
	Rows  []T
}

type request struct {
	query string
	limit int
}

type Worker[T any] struct {
	log      *zap.Logger
	search   SearchFunc[T]
	debounce time.Duration
	joinWait time.Duration

	requests chan request
	results  chan Result[T]
	errs     chan error

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

type Option func(*options)

type options struct {
	debounce time.Duration
	joinWait time.Duration
}

func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

func WithJoinTimeout(d time.Duration) Option {
	return func(o *options) { o.joinWait = d }
}

// NewWorker starts the background goroutine immediately.
func NewWorker[T any](log *zap.Logger, search SearchFunc[T], opts ...Option) *Worker[T] {
	o := options{
		debounce: DefaultDebounce,
		joinWait: DefaultJoinTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}

	w := &Worker[T]{
		log:      log.Named("searchstream.worker"),
		search:   search,
		debounce: o.debounce,
		joinWait: o.joinWait,
		requests: make(chan request, 16),
		results:  make(chan Result[T], 16),
		errs:     make(chan error, 16),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w
}

// Submit queues a search. Rapid successive submissions collapse into the
// latest one once the debounce interval elapses.
func (w *Worker[T]) Submit(query string, limit int) {
	select {
	case w.requests <- request{query: query, limit: limit}:
	case <-w.stop:
	}
}

func (w *Worker[T]) Results() <-chan Result[T] {
	return w.results
}

// Errors reports search failures. Each failure still produces an empty
// Result so the consumer always receives a terminal response.
func (w *Worker[T]) Errors() <-chan error {
	return w.errs
}

// Stop signals the worker and joins it with a bounded wait.
func (w *Worker[T]) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
	select {
	case <-w.done:
	case <-time.After(w.joinWait):
		w.log.Warn("search worker did not stop in time",
			zap.Duration("timeout", w.joinWait))
	}
}

func (w *Worker[T]) run() {
	defer close(w.done)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		select {
		case <-w.stop:
			return
		case req := <-w.requests:
			pending, ok := w.debounceLatest(req)
			if !ok {
				return
			}
			w.execute(ctx, pending)
		}
	}
}

// debounceLatest keeps absorbing newer requests until the debounce timer
// fires, returning the most recent one.
func (w *Worker[T]) debounceLatest(req request) (request, bool) {
	timer := time.NewTimer(w.debounce)
	defer timer.Stop()

	for {
		select {
		case <-w.stop:
			return request{}, false
		case newer := <-w.requests:
			req = newer
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			return req, true
		}
	}
}

func (w *Worker[T]) execute(ctx context.Context, req request) {
	rows, err := w.search(ctx, req.query, req.limit)
	if err != nil {
		w.log.Warn("search failed",
			zap.String("query", req.query),
			zap.Error(err))
		w.emitError(err)
		rows = nil
	}
	if rows == nil {
		rows = []T{}
	}

	select {
	case w.results <- Result[T]{Query: req.query, Limit: req.limit, Rows: rows}:
	case <-w.stop:
	}
}

func (w *Worker[T]) emitError(err error) {
	select {
	case w.errs <- err:
	default:
		// consumer is not draining errors; drop rather than block
	}
}
