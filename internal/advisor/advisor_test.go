package advisor

import (
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/prosecheck/internal/cache"
	"github.com/blackwell-systems/prosecheck/internal/engine"
)

func record(name string, calls, errs, timeouts int64, total time.Duration) engine.HealthRecord {
	return engine.HealthRecord{
		Engine:       name,
		Calls:        calls,
		Errors:       errs,
		Timeouts:     timeouts,
		TotalLatency: total,
	}
}

func TestFailingEngine(t *testing.T) {
	ctx := &Context{Records: []engine.HealthRecord{record("langproc", 10, 8, 0, time.Second)}}
	recs := FailingEngine(ctx)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Severity != "critical" {
		t.Errorf("expected critical, got %q", recs[0].Severity)
	}
	if !strings.Contains(recs[0].Title, "langproc") {
		t.Errorf("expected title to name the engine, got %q", recs[0].Title)
	}
}

func TestFailingEngine_TooFewCalls(t *testing.T) {
	ctx := &Context{Records: []engine.HealthRecord{record("langproc", 3, 3, 0, time.Second)}}
	if recs := FailingEngine(ctx); len(recs) != 0 {
		t.Errorf("3 calls is no signal, got %v", recs)
	}
}

func TestFailingEngine_HealthyEngine(t *testing.T) {
	ctx := &Context{Records: []engine.HealthRecord{record("rules", 100, 2, 0, time.Second)}}
	if recs := FailingEngine(ctx); len(recs) != 0 {
		t.Errorf("98%% success is healthy, got %v", recs)
	}
}

func TestTimeoutProneEngine(t *testing.T) {
	ctx := &Context{Records: []engine.HealthRecord{record("langproc", 10, 4, 4, 20*time.Second)}}
	recs := TimeoutProneEngine(ctx)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Severity != "warning" {
		t.Errorf("expected warning, got %q", recs[0].Severity)
	}
}

func TestTimeoutProneEngine_OccasionalTimeout(t *testing.T) {
	ctx := &Context{Records: []engine.HealthRecord{record("langproc", 100, 5, 5, 20*time.Second)}}
	if recs := TimeoutProneEngine(ctx); len(recs) != 0 {
		t.Errorf("5%% timeouts is tolerable, got %v", recs)
	}
}

func TestSlowEngine(t *testing.T) {
	ctx := &Context{Records: []engine.HealthRecord{record("langproc", 10, 0, 0, 20*time.Second)}}
	recs := SlowEngine(ctx)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation for a 2s average, got %d", len(recs))
	}
}

func TestSlowEngine_FastEngine(t *testing.T) {
	ctx := &Context{Records: []engine.HealthRecord{record("rules", 10, 0, 0, 100*time.Millisecond)}}
	if recs := SlowEngine(ctx); len(recs) != 0 {
		t.Errorf("10ms average is fast, got %v", recs)
	}
}

func TestUnavailableEngine(t *testing.T) {
	ctx := &Context{
		ActiveEngines:     []string{"rules", "dictionary"},
		ConfiguredEngines: []string{"rules", "dictionary", "langproc"},
	}
	recs := UnavailableEngine(ctx)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if !strings.Contains(recs[0].Title, "langproc") {
		t.Errorf("expected langproc named, got %q", recs[0].Title)
	}
}

func TestUnavailableEngine_AllActive(t *testing.T) {
	ctx := &Context{
		ActiveEngines:     []string{"rules"},
		ConfiguredEngines: []string{"rules"},
	}
	if recs := UnavailableEngine(ctx); len(recs) != 0 {
		t.Errorf("expected no recommendations, got %v", recs)
	}
}

func TestColdCache(t *testing.T) {
	ctx := &Context{CacheStats: cache.Stats{Hits: 2, Misses: 38}}
	recs := ColdCache(ctx)
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation at a 5%% hit rate, got %d", len(recs))
	}
}

func TestColdCache_WarmOrQuiet(t *testing.T) {
	warm := &Context{CacheStats: cache.Stats{Hits: 30, Misses: 10}}
	if recs := ColdCache(warm); len(recs) != 0 {
		t.Errorf("75%% hit rate is warm, got %v", recs)
	}
	quiet := &Context{CacheStats: cache.Stats{Hits: 0, Misses: 5}}
	if recs := ColdCache(quiet); len(recs) != 0 {
		t.Errorf("too few lookups for a verdict, got %v", recs)
	}
}

func TestEngine_RunRanksBySeverity(t *testing.T) {
	ctx := &Context{
		Records: []engine.HealthRecord{
			record("langproc", 10, 8, 0, time.Second), // failing: critical
			record("style", 10, 0, 0, 20*time.Second), // slow: warning
		},
		CacheStats: cache.Stats{Hits: 1, Misses: 39}, // cold: info
	}
	recs := NewEngine().Run(ctx)
	if len(recs) < 3 {
		t.Fatalf("expected at least 3 recommendations, got %d", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i-1].Score < recs[i].Score {
			t.Fatalf("recommendations not sorted by score: %v before %v", recs[i-1].Score, recs[i].Score)
		}
	}
	if recs[0].Severity != "critical" {
		t.Errorf("expected the failing engine ranked first, got %+v", recs[0])
	}
}
