// Package checker is the public surface of the analysis core: it owns the
// engine set, orchestrator, cache, and classifier, and exposes the
// CheckText contract plus the debounced content-change scheduler.
package checker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/blackwell-systems/prosecheck/internal/advisor"
	"github.com/blackwell-systems/prosecheck/internal/cache"
	"github.com/blackwell-systems/prosecheck/internal/classify"
	"github.com/blackwell-systems/prosecheck/internal/config"
	"github.com/blackwell-systems/prosecheck/internal/engine"
	"github.com/blackwell-systems/prosecheck/internal/issue"
	"github.com/blackwell-systems/prosecheck/internal/orchestrator"
	"github.com/blackwell-systems/prosecheck/internal/store"
	"github.com/blackwell-systems/prosecheck/internal/textnorm"
)

// ErrDisposed is returned by calls on a closed service.
var ErrDisposed = errors.New("checker: service is disposed")

// Options are per-call check options.
type Options struct {
	// Categories restricts which issue categories to analyze; empty means all.
	Categories []string

	// Language overrides the configured locale for this call.
	Language string
}

// Statistics summarizes one check result.
type Statistics struct {
	TotalIssues      int                    `json:"total_issues"`
	ByCategory       map[issue.Category]int `json:"by_category"`
	BySeverity       map[issue.Severity]int `json:"by_severity"`
	ProcessingTimeMs float64                `json:"processing_time_ms"`
	QualityScore     float64                `json:"quality_score"`
	FromCache        bool                   `json:"from_cache"`

	// Dropped counts raw findings discarded by normalization validation;
	// a data-quality signal about adapters, not a user-facing error.
	Dropped int `json:"dropped"`
}

// Result is the outcome of one CheckText call. Issues are immutable once
// returned.
type Result struct {
	Issues     []issue.Issue `json:"issues"`
	Statistics Statistics    `json:"statistics"`
}

// HealthReport describes engine health plus ranked recommendations.
type HealthReport struct {
	PerEngine       []engine.HealthRecord    `json:"per_engine"`
	Recommendations []advisor.Recommendation `json:"recommendations"`
}

// ServiceStats is the service-level counter snapshot.
type ServiceStats struct {
	ChecksRun     int64       `json:"checks_run"`
	IssuesFound   int64       `json:"issues_found"`
	Dropped       int64       `json:"dropped"`
	Cache         cache.Stats `json:"cache"`
	ActiveEngines []string    `json:"active_engines"`
	Enabled       bool        `json:"enabled"`
}

// Service is the grammar checking service context object. Create one per
// logical session with New, share it freely across goroutines, and Close it
// when done. There is no ambient global state.
type Service struct {
	cfg      *config.Config
	orch     *orchestrator.Orchestrator
	recorder *engine.Recorder
	cache    *cache.Cache
	advisor  *advisor.Engine
	sem      *semaphore.Weighted
	db       *store.DB
	resultFn func(*Result)

	overrideAdapters []engine.Adapter
	configured       []string

	mu       sync.Mutex
	enabled  bool
	disposed bool
	working  map[string]issue.Issue
	sched    scheduler

	runSeq      atomic.Int64
	checksRun   atomic.Int64
	issuesFound atomic.Int64
	dropped     atomic.Int64
}

// Option configures a Service at construction.
type Option func(*Service)

// WithStore attaches a database for run history and the user dictionary.
// The caller keeps ownership and closes it.
func WithStore(db *store.DB) Option {
	return func(s *Service) { s.db = db }
}

// WithResultHandler registers the observer for results produced by the
// content-change scheduler. Explicit CheckText calls return their result
// directly and do not go through the handler.
func WithResultHandler(fn func(*Result)) Option {
	return func(s *Service) { s.resultFn = fn }
}

// WithAdapters replaces the config-built engine set. Used by tests and by
// embedders that bring their own engines.
func WithAdapters(adapters ...engine.Adapter) Option {
	return func(s *Service) { s.overrideAdapters = adapters }
}

// New builds a Service from configuration: it assembles the engine set,
// queries adapter availability once, and wires the orchestrator, cache, and
// scheduler.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Service{
		cfg:      cfg,
		recorder: engine.NewRecorder(),
		advisor:  advisor.NewEngine(),
		enabled:  true,
		working:  make(map[string]issue.Issue),
	}
	for _, opt := range opts {
		opt(s)
	}

	maxChecks := cfg.Scheduler.MaxConcurrentChecks
	if maxChecks < 1 {
		maxChecks = 1
	}
	s.sem = semaphore.NewWeighted(int64(maxChecks))

	s.cache = cache.New(cache.Options{
		TTL:                 time.Duration(cfg.Cache.TTLMs) * time.Millisecond,
		Capacity:            cfg.Cache.Capacity,
		SimilarityThreshold: cfg.Cache.SimilarityThreshold,
		LengthTolerance:     cfg.Cache.LengthTolerance,
		ProbeDepth:          cfg.Cache.ProbeDepth,
	})

	adapters := s.overrideAdapters
	if adapters == nil {
		var err error
		adapters, err = s.buildAdapters()
		if err != nil {
			return nil, err
		}
	}
	for _, a := range adapters {
		s.configured = append(s.configured, a.Name())
	}
	s.orch = orchestrator.New(adapters, s.recorder)

	s.sched.init(s)
	return s, nil
}

// buildAdapters assembles the engine set from config toggles. User
// dictionary words load from the store when one is attached; a missing or
// failing store just means no user words.
func (s *Service) buildAdapters() ([]engine.Adapter, error) {
	var userWords []string
	if s.db != nil {
		words, err := s.db.UserWords(s.cfg.Language)
		if err == nil {
			userWords = words
		}
	}

	var adapters []engine.Adapter
	if s.cfg.Engines.Langproc {
		adapters = append(adapters, engine.NewLangprocEngine(s.cfg.Engines.LangprocURL))
	}
	if s.cfg.Engines.Rules {
		adapters = append(adapters, engine.NewRulesEngine())
	}
	var dict *engine.DictionaryEngine
	if s.cfg.Engines.Dictionary {
		dict = engine.NewDictionaryEngine(s.cfg.Language, userWords)
		adapters = append(adapters, dict)
	}
	if s.cfg.Engines.Fuzzy {
		if dict == nil {
			dict = engine.NewDictionaryEngine(s.cfg.Language, userWords)
		}
		adapters = append(adapters, engine.NewFuzzyEngine(dict))
	}
	if s.cfg.Engines.Style {
		adapters = append(adapters, engine.NewStyleEngine())
	}
	return adapters, nil
}

// Close disposes the service: pending timers and queued checks are
// cancelled, the working set is cleared, and further calls fail with
// ErrDisposed. An attached store is not closed; the caller owns it.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return nil
	}
	s.disposed = true
	s.enabled = false
	s.sched.disableLocked()
	s.working = make(map[string]issue.Issue)
	return nil
}

// SetEnabled turns checking on or off. Disabling cancels pending timers and
// queued checks and clears current results.
func (s *Service) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed || s.enabled == enabled {
		return
	}
	s.enabled = enabled
	if enabled {
		s.sched.enableLocked()
	} else {
		s.sched.disableLocked()
		s.working = make(map[string]issue.Issue)
	}
}

// ClearCache drops all cached results.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// Statistics returns service-level counters.
func (s *Service) Statistics() ServiceStats {
	s.mu.Lock()
	enabled := s.enabled
	s.mu.Unlock()
	return ServiceStats{
		ChecksRun:     s.checksRun.Load(),
		IssuesFound:   s.issuesFound.Load(),
		Dropped:       s.dropped.Load(),
		Cache:         s.cache.Stats(),
		ActiveEngines: s.orch.ActiveEngines(),
		Enabled:       enabled,
	}
}

// GetHealthReport returns per-engine health records and ranked
// recommendations.
func (s *Service) GetHealthReport() HealthReport {
	records := s.recorder.Snapshot()
	recs := s.advisor.Run(&advisor.Context{
		Records:           records,
		CacheStats:        s.cache.Stats(),
		ActiveEngines:     s.orch.ActiveEngines(),
		ConfiguredEngines: s.configured,
	})
	return HealthReport{PerEngine: records, Recommendations: recs}
}

// ResetStatistics clears engine health records and service counters.
func (s *Service) ResetStatistics() {
	s.recorder.Reset()
	s.checksRun.Store(0)
	s.issuesFound.Store(0)
	s.dropped.Store(0)
}

// ApplySuggestion validates that the issue is still in the working set and,
// on success, removes it. The actual text mutation belongs to the editor;
// this core only bookkeeps.
func (s *Service) ApplySuggestion(issueID, suggestionText string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return false
	}
	iss, ok := s.working[issueID]
	if !ok {
		return false
	}
	for _, sg := range iss.Suggestions {
		if sg.Text == suggestionText {
			delete(s.working, issueID)
			return true
		}
	}
	return false
}

// CheckText analyzes text and returns the merged, classified issue list.
// Engine failures never fail the call: a run where every adapter failed
// still resolves with an empty issue list. The returned error is only for a
// cancelled context or a disposed service.
func (s *Service) CheckText(ctx context.Context, text string, opts Options) (*Result, error) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil, ErrDisposed
	}
	enabled := s.enabled
	s.mu.Unlock()

	if !enabled {
		return emptyResult(0), nil
	}

	start := time.Now()

	norm := textnorm.Normalize(text, s.cfg.MinTextRunes)
	if norm.TooShort {
		return emptyResult(msSince(start)), nil
	}

	// Exact or near-duplicate cache hit short-circuits the pipeline. The
	// scope keeps results computed under different options apart: a
	// category-restricted run must never satisfy an unrestricted call.
	scope := s.optionsScope(opts)
	if cached, ok := s.cache.Get(norm.Fingerprint, scope, norm.Clean); ok {
		res := s.buildResult(cached, 0, msSince(start), true)
		s.rememberIssues(res.Issues)
		s.recordRun(norm, res)
		return res, nil
	}

	// Bound concurrent in-flight checks; waiters queue FIFO.
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	res, err := s.runPipeline(ctx, norm, opts, scope, start)
	if err != nil {
		return nil, err
	}
	s.rememberIssues(res.Issues)
	s.recordRun(norm, res)
	return res, nil
}

// runPipeline is the uncached path: orchestrate, normalize, merge,
// classify, cache.
func (s *Service) runPipeline(ctx context.Context, norm textnorm.Result, opts Options, scope string, start time.Time) (*Result, error) {
	language := opts.Language
	if language == "" {
		language = s.cfg.Language
	}

	engOpts := engine.Options{Language: language, Categories: opts.Categories}
	runOpts := orchestrator.Options{
		AdapterTimeout: time.Duration(s.cfg.Scheduler.AdapterTimeoutMs) * time.Millisecond,
		GlobalTimeout:  time.Duration(s.cfg.Scheduler.GlobalTimeoutMs) * time.Millisecond,
		Failover:       s.cfg.Engines.Failover,
	}

	orchRes, err := s.orch.Run(ctx, norm.Clean, engOpts, runOpts)
	if err != nil {
		return nil, err
	}

	runID := fmt.Sprintf("%s-%d", norm.Fingerprint[:8], s.runSeq.Add(1))

	var all []issue.Issue
	var dropped, seq int
	// Deterministic adapter order for stable IDs.
	names := make([]string, 0, len(orchRes.Issues))
	for name := range orchRes.Issues {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		normalized, d := issue.Normalize(runID, name, norm.Clean, orchRes.Issues[name], &seq)
		all = append(all, normalized...)
		dropped += d
	}

	merged := issue.Merge(all)
	s.classifySuggestions(merged)

	res := s.buildResult(merged, dropped, msSince(start), false)
	s.cache.Put(norm.Fingerprint, scope, norm.Clean, merged)

	s.checksRun.Add(1)
	s.issuesFound.Add(int64(len(merged)))
	s.dropped.Add(int64(dropped))
	return res, nil
}

// classifySuggestions scores every suggestion in place and reorders each
// issue's list best-first by classification tier, then confidence.
func (s *Service) classifySuggestions(issues []issue.Issue) {
	tier := map[issue.Classification]int{
		issue.AutoFixable: 0,
		issue.SemiFixable: 1,
		issue.ManualOnly:  2,
	}
	for i := range issues {
		for j := range issues[i].Suggestions {
			verdict := classify.Classify(s.cfg.Classifier, issues[i], issues[i].Suggestions[j].Text)
			sg := &issues[i].Suggestions[j]
			sg.Classification = verdict.Classification
			sg.Confidence = verdict.Confidence
			sg.SafetyScore = verdict.SafetyScore
			sg.ComplexityScore = verdict.ComplexityScore
			sg.Reasoning = verdict.Reasoning
		}
		sort.SliceStable(issues[i].Suggestions, func(a, b int) bool {
			sa, sb := issues[i].Suggestions[a], issues[i].Suggestions[b]
			if tier[sa.Classification] != tier[sb.Classification] {
				return tier[sa.Classification] < tier[sb.Classification]
			}
			return sa.Confidence > sb.Confidence
		})
	}
}

// optionsScope canonicalizes per-call options into the cache scope: the
// effective language, plus the sorted category restriction when one is set.
func (s *Service) optionsScope(opts Options) string {
	language := opts.Language
	if language == "" {
		language = s.cfg.Language
	}
	if len(opts.Categories) == 0 {
		return language
	}
	cats := append([]string(nil), opts.Categories...)
	sort.Strings(cats)
	return language + "|" + strings.Join(cats, ",")
}

// buildResult assembles statistics around the final issue list.
func (s *Service) buildResult(issues []issue.Issue, dropped int, elapsedMs float64, fromCache bool) *Result {
	stats := Statistics{
		TotalIssues:      len(issues),
		ByCategory:       make(map[issue.Category]int),
		BySeverity:       make(map[issue.Severity]int),
		ProcessingTimeMs: elapsedMs,
		QualityScore:     qualityScore(issues),
		FromCache:        fromCache,
		Dropped:          dropped,
	}
	for _, iss := range issues {
		stats.ByCategory[iss.Category]++
		stats.BySeverity[iss.Severity]++
	}
	return &Result{Issues: issues, Statistics: stats}
}

// qualityScore maps the issue list onto a 0-100 writing quality score.
// Errors weigh most, advisory findings least.
func qualityScore(issues []issue.Issue) float64 {
	score := 100.0
	for _, iss := range issues {
		switch iss.Severity {
		case issue.SeverityError:
			score -= 5
		case issue.SeverityWarning:
			score -= 2
		default:
			score -= 0.5
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// rememberIssues replaces the working set consulted by ApplySuggestion.
func (s *Service) rememberIssues(issues []issue.Issue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed || !s.enabled {
		return
	}
	s.working = make(map[string]issue.Issue, len(issues))
	for _, iss := range issues {
		s.working[iss.ID] = iss
	}
}

// recordRun persists run history when a store is attached. Failures are
// swallowed: persistence is an observability concern, never a check error.
func (s *Service) recordRun(norm textnorm.Result, res *Result) {
	if s.db == nil {
		return
	}
	_ = s.db.InsertCheckRun(&store.CheckRun{
		CheckedAt:    time.Now(),
		Fingerprint:  norm.Fingerprint,
		TextLength:   len(norm.Clean),
		TotalIssues:  res.Statistics.TotalIssues,
		Dropped:      res.Statistics.Dropped,
		DurationMs:   res.Statistics.ProcessingTimeMs,
		FromCache:    res.Statistics.FromCache,
		QualityScore: res.Statistics.QualityScore,
	})
}

func emptyResult(elapsedMs float64) *Result {
	return &Result{
		Issues: []issue.Issue{},
		Statistics: Statistics{
			ByCategory:       make(map[issue.Category]int),
			BySeverity:       make(map[issue.Severity]int),
			ProcessingTimeMs: elapsedMs,
			QualityScore:     100,
		},
	}
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
