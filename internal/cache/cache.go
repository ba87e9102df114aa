// Package cache holds analysis results keyed by content fingerprint and an
// opaque scope (the caller's analysis options), with a near-duplicate second
// level for texts that changed only slightly. Entries never satisfy lookups
// from a different scope.
package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/blackwell-systems/prosecheck/internal/issue"
	"github.com/blackwell-systems/prosecheck/internal/textnorm"
)

// Entry is one cached analysis result.
type Entry struct {
	Key       string
	Issues    []issue.Issue
	CreatedAt time.Time

	// scope is the analysis-option scope the result was computed under;
	// both cache levels match within one scope only.
	scope string
	// words is the lowercase word set of the cached text, kept for the
	// near-duplicate similarity probe.
	words map[string]bool
	// wordCount and length gate the probe before Jaccard is computed.
	wordCount int
	length    int
}

// Options bound the cache and tune near-duplicate matching.
type Options struct {
	TTL time.Duration
	// Capacity is the entry limit; over it, the oldest quarter is evicted.
	Capacity int
	// SimilarityThreshold is the minimum Jaccard similarity for a
	// near-duplicate hit.
	SimilarityThreshold float64
	// LengthTolerance is the max relative length and word-count delta for
	// a probe candidate.
	LengthTolerance float64
	// ProbeDepth is how many most-recent keys the near-duplicate probe
	// examines.
	ProbeDepth int
}

// Cache is the two-level result cache. An exact fingerprint hit is O(1);
// failing that, recent entries with similar length are probed by word-set
// Jaccard similarity. Safe for concurrent use; one fingerprint's entry is
// written atomically at the end of a run.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Entry
	// recent is fingerprints in insertion order, newest last.
	recent []string
	opts   Options

	hits       int64
	nearHits   int64
	misses     int64
	evictions  int64
}

// New creates a cache with the given options.
func New(opts Options) *Cache {
	if opts.Capacity <= 0 {
		opts.Capacity = 200
	}
	if opts.ProbeDepth <= 0 {
		opts.ProbeDepth = 16
	}
	return &Cache{
		entries: make(map[string]*Entry),
		opts:    opts,
	}
}

// Get looks up a result for the given fingerprint, scope, and clean text.
// The text is needed for the near-duplicate probe; a result computed under a
// different scope never matches. Expired entries are misses. The returned
// issues are a copy; callers may not mutate cached state.
func (c *Cache) Get(fingerprint, scope, clean string) ([]issue.Issue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()

	key := entryKey(fingerprint, scope)
	if e, ok := c.entries[key]; ok {
		if c.fresh(e, now) {
			c.hits++
			return copyIssues(e.Issues), true
		}
		c.remove(key)
	}

	if e := c.probeNearDuplicate(scope, clean, now); e != nil {
		c.nearHits++
		return copyIssues(e.Issues), true
	}

	c.misses++
	return nil, false
}

// Put stores a result under the given fingerprint and scope, evicting the
// oldest fraction when over capacity.
func (c *Cache) Put(fingerprint, scope, clean string, issues []issue.Issue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := entryKey(fingerprint, scope)
	if _, exists := c.entries[key]; exists {
		c.removeRecent(key)
	}

	words := make(map[string]bool)
	for _, w := range textnorm.Words(clean) {
		words[w] = true
	}
	c.entries[key] = &Entry{
		Key:       fingerprint,
		Issues:    copyIssues(issues),
		CreatedAt: time.Now(),
		scope:     scope,
		words:     words,
		wordCount: len(words),
		length:    len(clean),
	}
	c.recent = append(c.recent, key)

	if len(c.entries) > c.opts.Capacity {
		c.evictOldest()
	}
}

// Clear drops everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
	c.recent = nil
}

// Stats reports hit/miss counters since creation or the last Clear.
type Stats struct {
	Hits      int64 `json:"hits"`
	NearHits  int64 `json:"near_hits"`
	Misses    int64 `json:"misses"`
	Entries   int   `json:"entries"`
	Evictions int64 `json:"evictions"`
}

// Stats returns a snapshot of cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		NearHits:  c.nearHits,
		Misses:    c.misses,
		Entries:   len(c.entries),
		Evictions: c.evictions,
	}
}

// fresh reports whether the entry is within TTL. TTL zero disables expiry.
func (c *Cache) fresh(e *Entry, now time.Time) bool {
	return c.opts.TTL <= 0 || now.Sub(e.CreatedAt) < c.opts.TTL
}

// probeNearDuplicate scans the most recent same-scope entries for one whose
// text is close enough to clean: length and word-count deltas within
// tolerance and Jaccard similarity at or above the threshold.
func (c *Cache) probeNearDuplicate(scope, clean string, now time.Time) *Entry {
	if c.opts.SimilarityThreshold <= 0 || c.opts.SimilarityThreshold > 1 {
		return nil
	}

	words := make(map[string]bool)
	for _, w := range textnorm.Words(clean) {
		words[w] = true
	}
	if len(words) == 0 {
		return nil
	}

	probed := 0
	for i := len(c.recent) - 1; i >= 0 && probed < c.opts.ProbeDepth; i-- {
		e, ok := c.entries[c.recent[i]]
		if !ok || !c.fresh(e, now) || e.scope != scope {
			continue
		}
		probed++

		if !withinTolerance(len(clean), e.length, c.opts.LengthTolerance) {
			continue
		}
		if !withinTolerance(len(words), e.wordCount, c.opts.LengthTolerance) {
			continue
		}
		if jaccard(words, e.words) >= c.opts.SimilarityThreshold {
			return e
		}
	}
	return nil
}

// evictOldest removes the oldest quarter of entries by creation time.
func (c *Cache) evictOldest() {
	type aged struct {
		key string
		at  time.Time
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{key: k, at: e.CreatedAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].at.Before(all[j].at) })

	n := len(all) / 4
	if n < 1 {
		n = 1
	}
	for _, a := range all[:n] {
		c.remove(a.key)
		c.evictions++
	}
}

// entryKey joins fingerprint and scope into the map key.
func entryKey(fingerprint, scope string) string {
	return fingerprint + "\x00" + scope
}

func (c *Cache) remove(key string) {
	delete(c.entries, key)
	c.removeRecent(key)
}

func (c *Cache) removeRecent(key string) {
	for i, k := range c.recent {
		if k == key {
			c.recent = append(c.recent[:i], c.recent[i+1:]...)
			return
		}
	}
}

func withinTolerance(a, b int, tolerance float64) bool {
	if tolerance <= 0 {
		return a == b
	}
	longest := a
	if b > longest {
		longest = b
	}
	if longest == 0 {
		return true
	}
	delta := a - b
	if delta < 0 {
		delta = -delta
	}
	return float64(delta)/float64(longest) <= tolerance
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for w := range a {
		if b[w] {
			shared++
		}
	}
	union := len(a) + len(b) - shared
	return float64(shared) / float64(union)
}

func copyIssues(issues []issue.Issue) []issue.Issue {
	if issues == nil {
		return nil
	}
	out := make([]issue.Issue, len(issues))
	copy(out, issues)
	for i := range out {
		if out[i].Suggestions != nil {
			sugg := make([]issue.Suggestion, len(out[i].Suggestions))
			copy(sugg, out[i].Suggestions)
			out[i].Suggestions = sugg
		}
	}
	return out
}
