package store

import (
	"database/sql"
	"time"

	"github.com/blackwell-systems/prosecheck/internal/engine"
)

// InsertCheckRun records one completed analysis run.
func (db *DB) InsertCheckRun(run *CheckRun) error {
	result, err := db.conn.Exec(
		`INSERT INTO check_runs
		(checked_at, fingerprint, text_length, total_issues, dropped, duration_ms, from_cache, quality_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.CheckedAt.UTC().Format(time.RFC3339), run.Fingerprint, run.TextLength,
		run.TotalIssues, run.Dropped, run.DurationMs, run.FromCache, run.QualityScore,
	)
	if err != nil {
		return err
	}
	run.ID, _ = result.LastInsertId()
	return nil
}

// RecentCheckRuns returns the n most recent runs, newest first.
func (db *DB) RecentCheckRuns(n int) ([]CheckRun, error) {
	rows, err := db.conn.Query(
		`SELECT id, checked_at, fingerprint, text_length, total_issues, dropped, duration_ms, from_cache, quality_score
		FROM check_runs ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []CheckRun
	for rows.Next() {
		var r CheckRun
		var checkedAt string
		if err := rows.Scan(&r.ID, &checkedAt, &r.Fingerprint, &r.TextLength,
			&r.TotalIssues, &r.Dropped, &r.DurationMs, &r.FromCache, &r.QualityScore); err != nil {
			return nil, err
		}
		r.CheckedAt, _ = time.Parse(time.RFC3339, checkedAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunTotals summarizes all recorded runs.
type RunTotals struct {
	Runs        int64   `json:"runs"`
	CacheHits   int64   `json:"cache_hits"`
	TotalIssues int64   `json:"total_issues"`
	AvgDuration float64 `json:"avg_duration_ms"`
}

// CheckRunTotals aggregates run history.
func (db *DB) CheckRunTotals() (RunTotals, error) {
	var t RunTotals
	var avg sql.NullFloat64
	row := db.conn.QueryRow(
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN from_cache THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(total_issues), 0),
			AVG(duration_ms)
		FROM check_runs`,
	)
	if err := row.Scan(&t.Runs, &t.CacheHits, &t.TotalIssues, &avg); err != nil {
		return t, err
	}
	if avg.Valid {
		t.AvgDuration = avg.Float64
	}
	return t, nil
}

// InsertEngineHealth persists a snapshot of the given health records.
func (db *DB) InsertEngineHealth(records []engine.HealthRecord) error {
	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		if _, err := db.conn.Exec(
			`INSERT INTO engine_health (recorded_at, engine, calls, errors, timeouts, avg_latency_ms)
			VALUES (?, ?, ?, ?, ?, ?)`,
			now, r.Engine, r.Calls, r.Errors, r.Timeouts,
			float64(r.AvgLatency().Microseconds())/1000.0,
		); err != nil {
			return err
		}
	}
	return nil
}
