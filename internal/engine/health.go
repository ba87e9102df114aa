package engine

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// HealthRecord holds per-adapter invocation statistics. Counters only ever
// increase; the whole set resets on an explicit statistics reset.
type HealthRecord struct {
	Engine       string        `json:"engine"`
	Calls        int64         `json:"calls"`
	Errors       int64         `json:"errors"`
	Timeouts     int64         `json:"timeouts"`
	TotalLatency time.Duration `json:"total_latency"`
	LastUsed     time.Time     `json:"last_used"`
}

// AvgLatency returns the mean wall-clock latency per call.
func (r HealthRecord) AvgLatency() time.Duration {
	if r.Calls == 0 {
		return 0
	}
	return r.TotalLatency / time.Duration(r.Calls)
}

// SuccessRate returns the fraction of calls that completed without error.
func (r HealthRecord) SuccessRate() float64 {
	if r.Calls == 0 {
		return 1.0
	}
	return float64(r.Calls-r.Errors) / float64(r.Calls)
}

// Recorder is the shared health sink. The orchestrator observes every
// adapter invocation, success or failure; concurrent adapter completions
// interleave safely.
type Recorder struct {
	mu      sync.Mutex
	records map[string]*HealthRecord
}

// NewRecorder creates an empty health recorder.
func NewRecorder() *Recorder {
	return &Recorder{records: make(map[string]*HealthRecord)}
}

// Observe records one adapter invocation. Context deadline errors count as
// timeouts in addition to errors.
func (r *Recorder) Observe(engine string, latency time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[engine]
	if !ok {
		rec = &HealthRecord{Engine: engine}
		r.records[engine] = rec
	}
	rec.Calls++
	rec.TotalLatency += latency
	rec.LastUsed = time.Now()
	if err != nil {
		rec.Errors++
		if errors.Is(err, context.DeadlineExceeded) {
			rec.Timeouts++
		}
	}
}

// Snapshot returns a copy of all records, sorted by engine name for
// deterministic output.
func (r *Recorder) Snapshot() []HealthRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]HealthRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Engine < out[j].Engine })
	return out
}

// Reset clears all records.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = make(map[string]*HealthRecord)
}
