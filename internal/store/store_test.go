package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/prosecheck/internal/engine"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen_CreatesFileAndMigrates(t *testing.T) {
	path := t.TempDir() + "/sub/prosecheck.db"
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	var version int
	require.NoError(t, db.Conn().QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version))
	require.GreaterOrEqual(t, version, 1)
}

func TestCheckRuns_InsertAndQuery(t *testing.T) {
	db := openTestDB(t)

	first := &CheckRun{
		CheckedAt:    time.Now().Add(-time.Minute),
		Fingerprint:  "abc-10",
		TextLength:   10,
		TotalIssues:  2,
		DurationMs:   12.5,
		QualityScore: 90,
	}
	second := &CheckRun{
		CheckedAt:    time.Now(),
		Fingerprint:  "def-20",
		TextLength:   20,
		TotalIssues:  0,
		DurationMs:   1.5,
		FromCache:    true,
		QualityScore: 100,
	}
	require.NoError(t, db.InsertCheckRun(first))
	require.NoError(t, db.InsertCheckRun(second))
	require.NotZero(t, first.ID)

	runs, err := db.RecentCheckRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "def-20", runs[0].Fingerprint, "newest first")
	require.True(t, runs[0].FromCache)
	require.Equal(t, 2, runs[1].TotalIssues)

	runs, err = db.RecentCheckRuns(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestCheckRunTotals(t *testing.T) {
	db := openTestDB(t)

	totals, err := db.CheckRunTotals()
	require.NoError(t, err)
	require.Zero(t, totals.Runs)

	require.NoError(t, db.InsertCheckRun(&CheckRun{CheckedAt: time.Now(), TotalIssues: 3, DurationMs: 10}))
	require.NoError(t, db.InsertCheckRun(&CheckRun{CheckedAt: time.Now(), TotalIssues: 1, DurationMs: 20, FromCache: true}))

	totals, err = db.CheckRunTotals()
	require.NoError(t, err)
	require.Equal(t, int64(2), totals.Runs)
	require.Equal(t, int64(1), totals.CacheHits)
	require.Equal(t, int64(4), totals.TotalIssues)
	require.InDelta(t, 15.0, totals.AvgDuration, 0.001)
}

func TestEngineHealth_Insert(t *testing.T) {
	db := openTestDB(t)

	records := []engine.HealthRecord{
		{Engine: "rules", Calls: 10, TotalLatency: 100 * time.Millisecond},
		{Engine: "langproc", Calls: 5, Errors: 1, Timeouts: 1, TotalLatency: 5 * time.Second},
	}
	require.NoError(t, db.InsertEngineHealth(records))

	var count int
	require.NoError(t, db.Conn().QueryRow("SELECT COUNT(*) FROM engine_health").Scan(&count))
	require.Equal(t, 2, count)
}

func TestUserWords(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.AddUserWord("Kubernetes", "en-US"))
	require.NoError(t, db.AddUserWord("grpc", "en-US"))
	require.NoError(t, db.AddUserWord("kubernetes", "en-US")) // duplicate, lowercased

	words, err := db.UserWords("en-US")
	require.NoError(t, err)
	require.Equal(t, []string{"grpc", "kubernetes"}, words)

	require.NoError(t, db.RemoveUserWord("GRPC"))
	words, err = db.UserWords("en-US")
	require.NoError(t, err)
	require.Equal(t, []string{"kubernetes"}, words)
}

func TestUserWords_BlankIgnored(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AddUserWord("   ", "en-US"))
	words, err := db.UserWords("en-US")
	require.NoError(t, err)
	require.Empty(t, words)
}

func TestUserWords_LanguageScoped(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.AddUserWord("colour", "en-GB"))
	words, err := db.UserWords("en-US")
	require.NoError(t, err)
	require.Empty(t, words)
}
