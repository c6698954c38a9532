package analyzer

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/brokerdiag/notify"
	"github.com/jonwraymond/brokerdiag/observe"
	"github.com/jonwraymond/brokerdiag/probe"
	"github.com/jonwraymond/brokerdiag/scanner"
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the analyzer's logger.
func WithLogger(l observe.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics records every analysis pass on m.
func WithMetrics(m observe.Metrics) Option {
	return func(a *Analyzer) {
		if m != nil {
			a.metrics = m
		}
	}
}

// Analyzer computes grouped summaries and broadcasts them as Reports.
// It is safe for concurrent use.
type Analyzer struct {
	logger  observe.Logger
	metrics observe.Metrics
	now     func() time.Time
	reports *notify.Broadcaster[Report]

	mu   sync.Mutex
	subs []*notify.Subscription
}

// New creates an analyzer with no observers.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		logger:  observe.NopLogger(),
		metrics: observe.NopMetrics(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.reports = notify.NewBroadcaster[Report](notify.WithErrorHandler(func(err error) {
		a.logger.Warn(context.Background(), "analysis observer failed", observe.Field{Key: "error", Value: err})
	}))
	return a
}

// Analyze groups result.Results with groupBy and returns one Summary per
// distinct key, in order of first appearance. A nil groupBy groups by
// component ID. Observers are notified before Analyze returns.
func (a *Analyzer) Analyze(ctx context.Context, result scanner.Result, groupBy GroupFunc) []Summary {
	start := a.now()
	if groupBy == nil {
		groupBy = ByComponentID
	}

	summaries := summarize(result.Results, groupBy)

	_ = a.reports.Notify(Report{
		ID:        uuid.New(),
		Summaries: slices.Clone(summaries),
		Timestamp: a.now(),
	})

	a.metrics.RecordAnalysis(ctx, len(summaries), a.now().Sub(start))
	a.logger.Debug(ctx, "analysis completed",
		observe.Field{Key: "scanner.id", Value: result.ScannerID},
		observe.Field{Key: "results", Value: len(result.Results)},
		observe.Field{Key: "groups", Value: len(summaries)},
	)
	return summaries
}

// RegisterObserver subscribes o to every future Report. A nil observer is
// ignored.
func (a *Analyzer) RegisterObserver(o notify.Observer[Report]) *Analyzer {
	if o == nil {
		return a
	}
	sub := a.reports.Subscribe(o)

	a.mu.Lock()
	a.subs = append(a.subs, sub)
	a.mu.Unlock()
	return a
}

// ReleaseObservers cancels every subscription made through RegisterObserver.
func (a *Analyzer) ReleaseObservers() {
	a.mu.Lock()
	subs := a.subs
	a.subs = nil
	a.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
}

type tally struct {
	total                                     uint64
	healthy, unhealthy, warning, inconclusive uint64
}

func summarize(results []probe.Result, groupBy GroupFunc) []Summary {
	var order []string
	groups := make(map[string]*tally)

	for _, r := range results {
		key := groupBy(r)
		t, ok := groups[key]
		if !ok {
			t = &tally{}
			groups[key] = t
			order = append(order, key)
		}

		t.total++
		switch r.Status {
		case probe.StatusHealthy:
			t.healthy++
		case probe.StatusUnhealthy:
			t.unhealthy++
		case probe.StatusWarning:
			t.warning++
		case probe.StatusInconclusive:
			t.inconclusive++
		}
	}

	summaries := make([]Summary, 0, len(order))
	for _, key := range order {
		t := groups[key]
		summaries = append(summaries, Summary{
			GroupKey:     key,
			Healthy:      breakdown(t.healthy, t.total),
			Unhealthy:    breakdown(t.unhealthy, t.total),
			Warning:      breakdown(t.warning, t.total),
			Inconclusive: breakdown(t.inconclusive, t.total),
		})
	}
	return summaries
}
