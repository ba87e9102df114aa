// Package advisor turns engine health records into ranked operational
// recommendations for the health report.
package advisor

import (
	"fmt"
	"sort"
	"time"

	"github.com/blackwell-systems/prosecheck/internal/cache"
	"github.com/blackwell-systems/prosecheck/internal/engine"
)

// Recommendation is one actionable observation about a degraded engine or
// a misbehaving cache.
type Recommendation struct {
	Severity string  `json:"severity"` // "info", "warning", "critical"
	Title    string  `json:"title"`
	Detail   string  `json:"detail"`
	Score    float64 `json:"score"` // ranking weight, higher first
}

// Context is everything rules may examine.
type Context struct {
	Records    []engine.HealthRecord
	CacheStats cache.Stats

	// ActiveEngines is the orchestrator's active adapter list; configured
	// engines missing from it failed their availability check.
	ActiveEngines []string

	// ConfiguredEngines is every engine the config asked for.
	ConfiguredEngines []string
}

// Rule examines the context and produces zero or more recommendations.
type Rule func(ctx *Context) []Recommendation

// Engine runs all registered rules and collects ranked recommendations.
type Engine struct {
	rules []Rule
}

// NewEngine creates an advisor with all built-in rules registered.
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			FailingEngine,
			TimeoutProneEngine,
			SlowEngine,
			UnavailableEngine,
			ColdCache,
		},
	}
}

// Run executes all rules and returns recommendations sorted by score
// (highest first), title as the deterministic tie-break.
func (e *Engine) Run(ctx *Context) []Recommendation {
	var all []Recommendation
	for _, rule := range e.rules {
		all = append(all, rule(ctx)...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].Title < all[j].Title
	})
	return all
}

// minCallsForSignal is how many invocations a record needs before its rates
// mean anything.
const minCallsForSignal = 5

// FailingEngine flags engines whose success rate has collapsed.
func FailingEngine(ctx *Context) []Recommendation {
	var recs []Recommendation
	for _, r := range ctx.Records {
		if r.Calls < minCallsForSignal {
			continue
		}
		if rate := r.SuccessRate(); rate < 0.5 {
			recs = append(recs, Recommendation{
				Severity: "critical",
				Title:    fmt.Sprintf("Engine %q is failing", r.Engine),
				Detail:   fmt.Sprintf("%d of %d calls errored (%.0f%% success). Check its assets or disable it in config.", r.Errors, r.Calls, rate*100),
				Score:    90 + (0.5-rate)*20,
			})
		}
	}
	return recs
}

// TimeoutProneEngine flags engines that keep blowing their per-call budget.
func TimeoutProneEngine(ctx *Context) []Recommendation {
	var recs []Recommendation
	for _, r := range ctx.Records {
		if r.Calls < minCallsForSignal || r.Timeouts == 0 {
			continue
		}
		if rate := float64(r.Timeouts) / float64(r.Calls); rate > 0.25 {
			recs = append(recs, Recommendation{
				Severity: "warning",
				Title:    fmt.Sprintf("Engine %q times out frequently", r.Engine),
				Detail:   fmt.Sprintf("%d of %d calls hit the adapter timeout. Raise scheduler.adapter_timeout_ms or disable the engine.", r.Timeouts, r.Calls),
				Score:    70 + rate*20,
			})
		}
	}
	return recs
}

// SlowEngine flags engines whose average latency dominates the run budget.
func SlowEngine(ctx *Context) []Recommendation {
	var recs []Recommendation
	for _, r := range ctx.Records {
		if r.Calls < minCallsForSignal {
			continue
		}
		if avg := r.AvgLatency(); avg > 1500*time.Millisecond {
			recs = append(recs, Recommendation{
				Severity: "warning",
				Title:    fmt.Sprintf("Engine %q is slow", r.Engine),
				Detail:   fmt.Sprintf("Average latency %s per call; results may routinely arrive after the debounce window.", avg.Round(time.Millisecond)),
				Score:    50 + avg.Seconds()*5,
			})
		}
	}
	return recs
}

// UnavailableEngine flags configured engines that failed their availability
// check at startup.
func UnavailableEngine(ctx *Context) []Recommendation {
	active := make(map[string]bool, len(ctx.ActiveEngines))
	for _, name := range ctx.ActiveEngines {
		active[name] = true
	}
	var recs []Recommendation
	for _, name := range ctx.ConfiguredEngines {
		if !active[name] {
			recs = append(recs, Recommendation{
				Severity: "info",
				Title:    fmt.Sprintf("Engine %q is configured but unavailable", name),
				Detail:   "Its availability check failed at startup; its assets or endpoint are missing.",
				Score:    30,
			})
		}
	}
	return recs
}

// ColdCache flags a cache that is not earning its keep.
func ColdCache(ctx *Context) []Recommendation {
	s := ctx.CacheStats
	total := s.Hits + s.NearHits + s.Misses
	if total < 20 {
		return nil
	}
	hitRate := float64(s.Hits+s.NearHits) / float64(total)
	if hitRate >= 0.2 {
		return nil
	}
	return []Recommendation{{
		Severity: "info",
		Title:    "Result cache hit rate is low",
		Detail:   fmt.Sprintf("%.0f%% of %d lookups hit. Longer cache.ttl_ms or a larger cache.capacity may help for this workload.", hitRate*100, total),
		Score:    20,
	}}
}
