package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/brokerdiag/analyzer"
	"github.com/jonwraymond/brokerdiag/config"
	"github.com/jonwraymond/brokerdiag/observe"
	"github.com/jonwraymond/brokerdiag/probe"
	"github.com/jonwraymond/brokerdiag/registry"
	"github.com/jonwraymond/brokerdiag/scanner"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	observer    observe.Observer
	concurrency int
	registry    []registry.Option
}

// WithObserver instruments the engine with obs instead of starting one from
// the telemetry section. The caller keeps ownership of obs.
func WithObserver(obs observe.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithConcurrency bounds how many snapshots DiagnoseAll scans at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithRegistryOptions passes opts to the registry, after the engine's own.
func WithRegistryOptions(opts ...registry.Option) Option {
	return func(o *options) {
		o.registry = append(o.registry, opts...)
	}
}

// Diagnosis is one scan together with its grouped summaries.
type Diagnosis struct {
	Scan      scanner.Result
	Summaries []analyzer.Summary
}

// Engine runs snapshots through scanning and analysis.
type Engine struct {
	registry   *registry.Registry
	dispatcher *scanner.Dispatcher
	analyzer   *analyzer.Analyzer
	logger     observe.Logger
	limit      int

	// observer is non-nil only when New started it.
	observer observe.Observer
}

// New validates cfg and builds an engine with every built-in probe and
// scanner registered. cfg may be nil, in which case configured probes report
// NA and no telemetry is produced.
func New(ctx context.Context, cfg *config.DiagnosticsConfig, kb probe.KnowledgeBase, opts ...Option) (*Engine, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{limit: o.concurrency}
	obs := o.observer
	if obs == nil && cfg != nil && cfg.Telemetry != nil {
		started, err := observe.NewObserver(ctx, *cfg.Telemetry)
		if err != nil {
			return nil, fmt.Errorf("engine: telemetry: %w", err)
		}
		obs, e.observer = started, started
	}

	inst := observe.Instrumentation{
		Middleware: observe.NewNopMiddleware(),
		Metrics:    observe.NopMetrics(),
		Logger:     observe.NopLogger(),
	}
	if obs != nil {
		var err error
		if inst, err = observe.Instrument(obs); err != nil {
			return nil, e.abort(ctx, err)
		}
	}
	e.logger = inst.Logger

	regOpts := append([]registry.Option{registry.WithLogger(inst.Logger)}, o.registry...)
	reg, err := registry.NewDefault(cfg, kb, regOpts...)
	if err != nil {
		return nil, e.abort(ctx, err)
	}

	disp, err := scanner.NewDispatcher(reg,
		scanner.WithMiddleware(inst.Middleware),
		scanner.WithLogger(inst.Logger),
		scanner.WithConcurrency(o.concurrency),
	)
	if err != nil {
		return nil, e.abort(ctx, err)
	}

	e.registry = reg
	e.dispatcher = disp
	e.analyzer = analyzer.New(analyzer.WithLogger(inst.Logger), analyzer.WithMetrics(inst.Metrics))
	return e, nil
}

// abort shuts down a started observer and wraps err.
func (e *Engine) abort(ctx context.Context, err error) error {
	err = fmt.Errorf("engine: %w", err)
	if e.observer != nil {
		err = errors.Join(err, e.observer.Shutdown(ctx))
	}
	return err
}

// Registry returns the engine's registry.
func (e *Engine) Registry() *registry.Registry { return e.registry }

// Dispatcher returns the engine's dispatcher.
func (e *Engine) Dispatcher() *scanner.Dispatcher { return e.dispatcher }

// Analyzer returns the engine's analyzer.
func (e *Engine) Analyzer() *analyzer.Analyzer { return e.analyzer }

// Diagnose scans snap and analyzes the result with groupBy. A snapshot with
// no registered scanner yields scanner.Empty() and no summaries.
func (e *Engine) Diagnose(ctx context.Context, snap snapshot.Snapshot, groupBy analyzer.GroupFunc) Diagnosis {
	res := e.dispatcher.Scan(ctx, snap)
	return Diagnosis{Scan: res, Summaries: e.analyzer.Analyze(ctx, res, groupBy)}
}

// DiagnoseAll scans every snapshot concurrently and analyzes each result,
// returning diagnoses in input order.
func (e *Engine) DiagnoseAll(ctx context.Context, snaps []snapshot.Snapshot, groupBy analyzer.GroupFunc) ([]Diagnosis, error) {
	results, err := e.dispatcher.ScanAll(ctx, snaps)
	if err != nil {
		return nil, err
	}

	out := make([]Diagnosis, len(results))
	g, gctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i, res := range results {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = Diagnosis{Scan: res, Summaries: e.analyzer.Analyze(gctx, res, groupBy)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Shutdown releases every observer subscription and stops the telemetry
// providers New started. An observer passed through WithObserver is left
// running.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.dispatcher.ReleaseSubscribers()
	e.registry.ReleaseObservers()
	e.analyzer.ReleaseObservers()

	if e.observer == nil {
		return nil
	}
	if err := e.observer.Shutdown(ctx); err != nil {
		e.logger.Warn(ctx, "telemetry shutdown failed", observe.Field{Key: "error", Value: err})
		return fmt.Errorf("engine: shutdown: %w", err)
	}
	return nil
}
