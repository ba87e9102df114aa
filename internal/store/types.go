package store

import "time"

// CheckRun is one recorded analysis run.
type CheckRun struct {
	ID           int64     `json:"id"`
	CheckedAt    time.Time `json:"checked_at"`
	Fingerprint  string    `json:"fingerprint"`
	TextLength   int       `json:"text_length"`
	TotalIssues  int       `json:"total_issues"`
	Dropped      int       `json:"dropped"`
	DurationMs   float64   `json:"duration_ms"`
	FromCache    bool      `json:"from_cache"`
	QualityScore float64   `json:"quality_score"`
}

// EngineHealthRow is one persisted engine health snapshot.
type EngineHealthRow struct {
	ID           int64     `json:"id"`
	RecordedAt   time.Time `json:"recorded_at"`
	Engine       string    `json:"engine"`
	Calls        int64     `json:"calls"`
	Errors       int64     `json:"errors"`
	Timeouts     int64     `json:"timeouts"`
	AvgLatencyMs float64   `json:"avg_latency_ms"`
}
