package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonwraymond/brokerdiag/config"
	"github.com/jonwraymond/brokerdiag/notify"
	"github.com/jonwraymond/brokerdiag/observe"
	"github.com/jonwraymond/brokerdiag/probe"
	"github.com/jonwraymond/brokerdiag/scanner"
	"github.com/jonwraymond/brokerdiag/snapshot"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry's logger.
func WithLogger(l observe.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithProbes replaces the probe builders used by TryRegisterAllProbes.
func WithProbes(builders ...ProbeBuilder) Option {
	return func(r *Registry) {
		r.probeBuilders = builders
	}
}

// WithScanners replaces the scanner builders used by TryRegisterAllScanners.
func WithScanners(builders ...ScannerBuilder) Option {
	return func(r *Registry) {
		r.scannerBuilders = builders
	}
}

// Registry owns probe and scanner instances and keeps every scanner wired to
// the complete probe list.
type Registry struct {
	cfg             *config.DiagnosticsConfig
	kb              probe.KnowledgeBase
	logger          observe.Logger
	probeBuilders   []ProbeBuilder
	scannerBuilders []ScannerBuilder

	mu           sync.RWMutex
	probes       map[string]probe.Probe
	probeOrder   []string
	scanners     map[snapshot.Kind]scanner.Scanner
	scannerOrder []snapshot.Kind

	subsMu sync.Mutex
	subs   []*notify.Subscription
}

// New creates an empty registry. cfg may be nil, in which case configured
// probes report NA. kb is required.
func New(cfg *config.DiagnosticsConfig, kb probe.KnowledgeBase, opts ...Option) (*Registry, error) {
	if kb == nil {
		return nil, ErrNilKnowledgeBase
	}

	r := &Registry{
		cfg:             cfg,
		kb:              kb,
		logger:          observe.NopLogger(),
		probeBuilders:   DefaultProbes(),
		scannerBuilders: DefaultScanners(),
		probes:          make(map[string]probe.Probe),
		scanners:        make(map[snapshot.Kind]scanner.Scanner),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// NewDefault creates a registry and registers every probe and scanner from
// its builder tables.
func NewDefault(cfg *config.DiagnosticsConfig, kb probe.KnowledgeBase, opts ...Option) (*Registry, error) {
	r, err := New(cfg, kb, opts...)
	if err != nil {
		return nil, err
	}
	if !r.TryRegisterAllProbes() || !r.TryRegisterAllScanners() {
		return nil, ErrInitFailed
	}
	return r, nil
}

// TryRegisterProbe adds p under its metadata ID and rewires every scanner.
// It returns false, leaving the registry unchanged, when p is nil (including
// a nil pointer of a probe type) or its ID is empty or already registered.
func (r *Registry) TryRegisterProbe(p probe.Probe) bool {
	if isNil(p) {
		r.logger.Warn(context.Background(), "probe registration failed", observe.Field{Key: "error", Value: ErrNilInstance})
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.addProbeLocked(p); err != nil {
		r.logger.Warn(context.Background(), "probe registration failed",
			observe.Field{Key: "probe.id", Value: p.Metadata().ID},
			observe.Field{Key: "error", Value: err},
		)
		return false
	}
	r.rewireLocked()
	return true
}

// TryRegisterScanner adds s under its snapshot kind, wired with the current
// probe list. It returns false, leaving the registry unchanged, when s is
// nil or its kind is empty or already registered.
func (r *Registry) TryRegisterScanner(s scanner.Scanner) bool {
	if isNil(s) {
		r.logger.Warn(context.Background(), "scanner registration failed", observe.Field{Key: "error", Value: ErrNilInstance})
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.addScannerLocked(s); err != nil {
		r.logger.Warn(context.Background(), "scanner registration failed",
			observe.Field{Key: "scanner.id", Value: s.Identifier()},
			observe.Field{Key: "error", Value: err},
		)
		return false
	}
	return true
}

// TryRegisterAllProbes builds and registers every probe builder. Any
// failure clears the probe map and reports false.
func (r *Registry) TryRegisterAllProbes() bool {
	built := make([]probe.Probe, 0, len(r.probeBuilders))
	var buildErr error
	for _, b := range r.probeBuilders {
		p, err := b.Build(r.cfg, r.kb)
		if err != nil {
			buildErr = err
			break
		}
		built = append(built, p)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if buildErr == nil {
		for _, p := range built {
			if err := r.addProbeLocked(p); err != nil {
				buildErr = fmt.Errorf("%s: %w", p.Metadata().ID, err)
				break
			}
		}
	}

	if buildErr != nil {
		r.probes = make(map[string]probe.Probe)
		r.probeOrder = nil
		r.rewireLocked()
		r.logger.Error(context.Background(), "bulk probe registration failed; probe registry cleared",
			observe.Field{Key: "error", Value: buildErr},
		)
		return false
	}

	r.rewireLocked()
	return true
}

// TryRegisterAllScanners builds and registers every scanner builder. Any
// failure clears the scanner map and reports false.
func (r *Registry) TryRegisterAllScanners() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.probeListLocked()
	var failure error
	for _, b := range r.scannerBuilders {
		s, err := b.build(all)
		if err == nil {
			err = r.addScannerLocked(s)
		}
		if err != nil {
			failure = fmt.Errorf("%s: %w", b.Name, err)
			break
		}
	}

	if failure != nil {
		r.scanners = make(map[snapshot.Kind]scanner.Scanner)
		r.scannerOrder = nil
		r.logger.Error(context.Background(), "bulk scanner registration failed; scanner registry cleared",
			observe.Field{Key: "error", Value: failure},
		)
		return false
	}
	return true
}

// TryGet returns the scanner registered for kind, or scanner.NoOpScanner and
// false when there is none.
func (r *Registry) TryGet(kind snapshot.Kind) (scanner.Scanner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scanners[kind]
	if !ok {
		return scanner.NoOpScanner{}, false
	}
	return s, true
}

// TryGetProbe returns the probe registered under id.
func (r *Registry) TryGetProbe(id string) (probe.Probe, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.probes[id]
	return p, ok
}

// Probes returns the registered probes in registration order.
func (r *Registry) Probes() []probe.Probe {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.probeListLocked()
}

// Scanners returns the registered scanners in registration order.
func (r *Registry) Scanners() []scanner.Scanner {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scanner.Scanner, 0, len(r.scannerOrder))
	for _, k := range r.scannerOrder {
		out = append(out, r.scanners[k])
	}
	return out
}

// ProbeCount returns the number of registered probes.
func (r *Registry) ProbeCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.probes)
}

// ScannerCount returns the number of registered scanners.
func (r *Registry) ScannerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scanners)
}

// RegisterObserver subscribes each observer to every currently registered
// probe. Observer failures are logged and never reach the scan. Probes
// registered later are not covered.
func (r *Registry) RegisterObserver(observers ...notify.Observer[probe.Result]) []*notify.Subscription {
	probes := r.Probes()

	var subs []*notify.Subscription
	for _, o := range observers {
		if o == nil {
			continue
		}
		wrapped := r.logged(o)
		for _, p := range probes {
			subs = append(subs, p.Subscribe(wrapped))
		}
	}

	r.subsMu.Lock()
	r.subs = append(r.subs, subs...)
	r.subsMu.Unlock()
	return subs
}

// ReleaseObservers cancels every subscription made through RegisterObserver.
func (r *Registry) ReleaseObservers() {
	r.subsMu.Lock()
	subs := r.subs
	r.subs = nil
	r.subsMu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
}

func (r *Registry) logged(o notify.Observer[probe.Result]) notify.Observer[probe.Result] {
	return notify.ObserverFunc[probe.Result](func(res probe.Result) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("%w: %v", notify.ErrObserverPanic, rec)
			}
			if err != nil {
				r.logger.Warn(context.Background(), "probe observer failed",
					observe.Field{Key: "probe.id", Value: res.ProbeID},
					observe.Field{Key: "component.id", Value: res.ComponentID},
					observe.Field{Key: "error", Value: err},
				)
			}
		}()
		return o.OnNext(res)
	})
}

func (r *Registry) addProbeLocked(p probe.Probe) error {
	id := p.Metadata().ID
	if id == "" {
		return ErrMissingKey
	}
	if _, ok := r.probes[id]; ok {
		return fmt.Errorf("%w: probe %s", ErrDuplicate, id)
	}
	r.probes[id] = p
	r.probeOrder = append(r.probeOrder, id)
	return nil
}

func (r *Registry) addScannerLocked(s scanner.Scanner) error {
	kind := s.Kind()
	if kind == "" {
		return ErrMissingKey
	}
	if _, ok := r.scanners[kind]; ok {
		return fmt.Errorf("%w: scanner for %s", ErrDuplicate, kind)
	}
	s.Configure(r.probeListLocked())
	r.scanners[kind] = s
	r.scannerOrder = append(r.scannerOrder, kind)
	return nil
}

func (r *Registry) probeListLocked() []probe.Probe {
	out := make([]probe.Probe, 0, len(r.probeOrder))
	for _, id := range r.probeOrder {
		out = append(out, r.probes[id])
	}
	return out
}

// rewireLocked hands every scanner a fresh copy of the full probe list.
func (r *Registry) rewireLocked() {
	all := r.probeListLocked()
	for _, k := range r.scannerOrder {
		r.scanners[k].Configure(all)
	}
}

var _ scanner.Resolver = (*Registry)(nil)
