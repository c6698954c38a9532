package scanner

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/brokerdiag/notify"
	"github.com/jonwraymond/brokerdiag/observe"
	"github.com/jonwraymond/brokerdiag/probe"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

// Resolver finds the scanner registered for a snapshot kind and fans probe
// observers out to every registered probe.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - TryGet returns NoOpScanner and false when no scanner is registered.
type Resolver interface {
	TryGet(kind snapshot.Kind) (Scanner, bool)
	RegisterObserver(observers ...notify.Observer[probe.Result]) []*notify.Subscription
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithMiddleware instruments every scan with mw.
func WithMiddleware(mw *observe.Middleware) DispatcherOption {
	return func(d *Dispatcher) {
		if mw != nil {
			d.mw = mw
		}
	}
}

// WithLogger sets the dispatcher's logger.
func WithLogger(l observe.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithConcurrency bounds the number of scans ScanAll runs at once.
// Values below 1 mean one scan per snapshot.
func WithConcurrency(n int) DispatcherOption {
	return func(d *Dispatcher) {
		d.concurrency = n
	}
}

// Dispatcher resolves and runs the scanner for arbitrary snapshots.
type Dispatcher struct {
	resolver    Resolver
	mw          *observe.Middleware
	logger      observe.Logger
	concurrency int
	now         func() time.Time

	mu   sync.Mutex
	subs []*notify.Subscription
}

// NewDispatcher creates a dispatcher that resolves scanners through resolver.
func NewDispatcher(resolver Resolver, opts ...DispatcherOption) (*Dispatcher, error) {
	if resolver == nil {
		return nil, ErrNilResolver
	}

	d := &Dispatcher{
		resolver: resolver,
		mw:       observe.NewNopMiddleware(),
		logger:   observe.NopLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Scan runs the scanner registered for the snapshot's kind. A nil snapshot
// or a kind with no scanner yields Empty().
func (d *Dispatcher) Scan(ctx context.Context, s snapshot.Snapshot) Result {
	if s == nil {
		return Empty()
	}

	kind := s.Kind()
	sc, ok := d.resolver.TryGet(kind)
	if !ok {
		d.logger.Debug(ctx, "no scanner registered", observe.Field{Key: "snapshot.kind", Value: string(kind)})
		return Empty()
	}

	var results []probe.Result
	run := d.mw.Wrap(func(ctx context.Context, meta observe.ScanMeta) observe.Outcome {
		results = sc.Scan(s)
		if results == nil {
			results = []probe.Result{}
		}
		return outcome(results)
	})
	run(ctx, observe.ScanMeta{ScannerID: sc.Identifier(), Kind: kind})

	return Result{
		ID:        uuid.New(),
		ScannerID: sc.Identifier(),
		Results:   results,
		Timestamp: d.now(),
	}
}

// ScanAll scans every snapshot concurrently and returns the results in
// input order. It stops starting new scans once ctx is done and returns the
// context's error.
func (d *Dispatcher) ScanAll(ctx context.Context, snapshots []snapshot.Snapshot) ([]Result, error) {
	out := make([]Result, len(snapshots))

	g, gctx := errgroup.WithContext(ctx)
	if d.concurrency > 0 {
		g.SetLimit(d.concurrency)
	}

	for i, s := range snapshots {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = d.Scan(gctx, s)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterSubscribers subscribes the observers to every probe known to the
// resolver. Nil observers are skipped.
func (d *Dispatcher) RegisterSubscribers(o notify.Observer[probe.Result], more ...notify.Observer[probe.Result]) *Dispatcher {
	subs := d.resolver.RegisterObserver(append([]notify.Observer[probe.Result]{o}, more...)...)

	d.mu.Lock()
	d.subs = append(d.subs, subs...)
	d.mu.Unlock()
	return d
}

// ReleaseSubscribers cancels every subscription made through
// RegisterSubscribers.
func (d *Dispatcher) ReleaseSubscribers() {
	d.mu.Lock()
	subs := d.subs
	d.subs = nil
	d.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
}

func outcome(results []probe.Result) observe.Outcome {
	return observe.Outcome{Results: len(results), Statuses: countStatuses(results)}
}
