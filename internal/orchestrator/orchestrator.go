// Package orchestrator fans analysis out to every available engine adapter,
// isolates their failures, and aggregates raw findings into one batch.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/prosecheck/internal/engine"
)

// primaryGrammarEngine is the adapter whose grammar output the failover
// chain protects. When it fails or times out, the rules engine's findings
// stand in and the run is not counted as degraded.
const primaryGrammarEngine = "langproc"

// fallbackGrammarEngine backs the primary.
const fallbackGrammarEngine = "rules"

// maxParallelAdapters bounds adapter fan-out within one run.
const maxParallelAdapters = 4

// EngineResult is the per-adapter outcome of one run.
type EngineResult struct {
	Latency time.Duration `json:"latency"`
	OK      bool          `json:"ok"`
	Count   int           `json:"count"`
}

// Result aggregates one orchestrator run.
type Result struct {
	// Issues are all raw findings from all adapters, in adapter
	// registration order.
	Issues map[string][]engine.RawIssue

	// PerEngine maps adapter name to its outcome.
	PerEngine map[string]EngineResult

	// Degraded is true when the primary grammar engine failed and no
	// failover could cover for it.
	Degraded bool
}

// Options tunes a run.
type Options struct {
	// AdapterTimeout bounds each adapter call.
	AdapterTimeout time.Duration

	// GlobalTimeout bounds the whole fan-out; on expiry, whatever partial
	// results exist are returned rather than an error.
	GlobalTimeout time.Duration

	// Failover enables the primary-to-fallback grammar chain.
	Failover bool
}

// Orchestrator invokes registered adapters concurrently and records every
// invocation in the shared health recorder.
type Orchestrator struct {
	active   []engine.Adapter
	recorder *engine.Recorder
}

// New builds an orchestrator from the registered adapters. Availability is
// queried once here: adapters reporting unavailable never join the active
// list, so no run probes them via failures.
func New(adapters []engine.Adapter, recorder *engine.Recorder) *Orchestrator {
	o := &Orchestrator{recorder: recorder}
	for _, a := range adapters {
		if a.IsAvailable() {
			o.active = append(o.active, a)
		}
	}
	return o
}

// ActiveEngines lists the names of adapters that passed the availability
// check, in registration order.
func (o *Orchestrator) ActiveEngines() []string {
	names := make([]string, len(o.active))
	for i, a := range o.active {
		names[i] = a.Name()
	}
	return names
}

// Run fans out to all active adapters. One adapter's failure never blocks
// the others: errors are swallowed into the per-engine outcome and the
// health recorder. The returned error is only ever the parent context's.
func (o *Orchestrator) Run(ctx context.Context, text string, opts engine.Options, runOpts Options) (*Result, error) {
	res := &Result{
		Issues:    make(map[string][]engine.RawIssue, len(o.active)),
		PerEngine: make(map[string]EngineResult, len(o.active)),
	}
	if len(o.active) == 0 {
		return res, nil
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if runOpts.GlobalTimeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, runOpts.GlobalTimeout)
		defer cancel()
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(maxParallelAdapters)

	for _, a := range o.active {
		a := a
		g.Go(func() error {
			issues, outcome := o.invoke(gctx, a, text, opts, runOpts.AdapterTimeout)
			mu.Lock()
			res.Issues[a.Name()] = issues
			res.PerEngine[a.Name()] = outcome
			mu.Unlock()
			// Adapter failures are isolated; never fail the group.
			return nil
		})
	}

	// The only group error would be a worker returning non-nil, which none
	// do; the global timeout shows up as partial results instead.
	_ = g.Wait()

	if runOpts.Failover {
		res.Degraded = o.applyFailover(res)
	} else if out, ok := res.PerEngine[primaryGrammarEngine]; ok && !out.OK {
		res.Degraded = true
	}

	// A cancelled parent is the one condition worth surfacing.
	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// invoke calls one adapter with its own timeout, recovering panics and
// recording the outcome in the health sink.
func (o *Orchestrator) invoke(ctx context.Context, a engine.Adapter, text string, opts engine.Options, timeout time.Duration) (issues []engine.RawIssue, outcome EngineResult) {
	callCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("engine %s panicked: %v", a.Name(), r)
				issues = nil
			}
		}()
		issues, err = a.Analyze(callCtx, text, opts)
	}()
	latency := time.Since(start)

	// A deadline on the call context is this adapter's timeout even when
	// the adapter reported it as a generic error.
	if err == nil && callCtx.Err() != nil {
		err = callCtx.Err()
	}

	if o.recorder != nil {
		o.recorder.Observe(a.Name(), latency, err)
	}

	if err != nil {
		return nil, EngineResult{Latency: latency, OK: false}
	}
	return issues, EngineResult{Latency: latency, OK: true, Count: len(issues)}
}

// applyFailover checks the primary grammar engine's outcome. The fallback
// always runs as part of the normal fan-out, so failover is a bookkeeping
// question: the run counts as degraded only when both primary and fallback
// failed.
func (o *Orchestrator) applyFailover(res *Result) bool {
	primary, hasPrimary := res.PerEngine[primaryGrammarEngine]
	if !hasPrimary || primary.OK {
		return false
	}
	fallback, hasFallback := res.PerEngine[fallbackGrammarEngine]
	return !hasFallback || !fallback.OK
}
