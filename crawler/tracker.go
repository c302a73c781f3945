package crawler

import (
	"sync"
	"time"
)

// DefaultCapacity is the hit buffer size used in production.
const DefaultCapacity = 1000

// recentLimit caps the verbatim records returned by Stats.
const recentLimit = 50

// Hit is one recorded crawler request.
type Hit struct {
	Timestamp time.Time `json:"timestamp"`
	Crawler   string    `json:"crawler"`
	Path      string    `json:"path"`
	UserAgent string    `json:"user_agent"`
}

// Stats aggregates hits over a trailing time window.
type Stats struct {
	WindowHours int            `json:"window_hours"`
	Total       int            `json:"total"`
	ByCrawler   map[string]int `json:"by_crawler"`
	ByPath      map[string]int `json:"by_path"`
	Recent      []Hit          `json:"recent"`
}

// Tracker is a fixed-capacity FIFO buffer of crawler hits. All mutation is
// serialized behind one mutex; append and evict happen as a single step so
// the capacity invariant holds under concurrent requests.
type Tracker struct {
	mu       sync.Mutex
	hits     []Hit
	capacity int
}

// NewTracker creates a Tracker holding at most capacity hits. A
// non-positive capacity falls back to DefaultCapacity.
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Tracker{capacity: capacity}
}

// Record appends a hit timestamped now, evicting the oldest record when the
// buffer is full.
func (t *Tracker) Record(crawlerName, path, userAgent string) {
	hit := Hit{
		Timestamp: time.Now(),
		Crawler:   crawlerName,
		Path:      path,
		UserAgent: userAgent,
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.hits) >= t.capacity {
		copy(t.hits, t.hits[1:])
		t.hits[len(t.hits)-1] = hit
		return
	}
	t.hits = append(t.hits, hit)
}

// Len returns the number of buffered hits.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.hits)
}

// Reset drops all buffered hits.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.hits = nil
	t.mu.Unlock()
}

// Stats aggregates the hits recorded within the trailing window. The buffer
// is snapshotted under the lock and filtered outside it, so a stats query
// never observes a half-applied append.
func (t *Tracker) Stats(window time.Duration) Stats {
	t.mu.Lock()
	snapshot := make([]Hit, len(t.hits))
	copy(snapshot, t.hits)
	t.mu.Unlock()

	cutoff := time.Now().Add(-window)
	stats := Stats{
		WindowHours: int(window.Hours()),
		ByCrawler:   map[string]int{},
		ByPath:      map[string]int{},
		Recent:      []Hit{},
	}

	// Buffer order is oldest first; walk backwards so Recent comes out
	// newest first.
	for i := len(snapshot) - 1; i >= 0; i-- {
		hit := snapshot[i]
		if hit.Timestamp.Before(cutoff) {
			continue
		}
		stats.Total++
		stats.ByCrawler[hit.Crawler]++
		stats.ByPath[hit.Path]++
		if len(stats.Recent) < recentLimit {
			stats.Recent = append(stats.Recent, hit)
		}
	}
	return stats
}
