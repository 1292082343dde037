package aggregator

import (
	"sort"
	"sync"
	"time"
)

// Outcome says how a line was emitted.
type Outcome int

const (
	// Formatted lines were JSON objects rendered field by field.
	Formatted Outcome = iota
	// Raw lines failed to parse and were passed through.
	Raw
	// NonObject lines were valid JSON but not objects.
	NonObject
)

// NoLevel is the LevelCounts key for lines without a level field.
const NoLevel = "(none)"

// Stats holds a point-in-time snapshot of the counters.
type Stats struct {
	Uptime      time.Duration
	TotalLines  int64
	Formatted   int64
	Raw         int64
	NonObject   int64
	LevelCounts map[string]int64
}

// Levels returns the level labels in LevelCounts, sorted.
func (s Stats) Levels() []string {
	levels := make([]string, 0, len(s.LevelCounts))
	for l := range s.LevelCounts {
		levels = append(levels, l)
	}
	sort.Strings(levels)
	return levels
}

// Counter tallies rendered lines for the exit summary.
type Counter struct {
	mu          sync.RWMutex
	startTime   time.Time
	total       int64
	outcomes    [3]int64
	levelCounts map[string]int64
}

// New returns an empty Counter.
func New() *Counter {
	return &Counter{
		startTime:   time.Now(),
		levelCounts: make(map[string]int64),
	}
}

// Record adds one line. level is only counted for Formatted lines.
func (c *Counter) Record(o Outcome, level string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++
	if o >= Formatted && o <= NonObject {
		c.outcomes[o]++
	}
	if o == Formatted {
		c.levelCounts[level]++
	}
}

// Snapshot returns the current counts.
func (c *Counter) Snapshot() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counts := make(map[string]int64, len(c.levelCounts))
	for k, v := range c.levelCounts {
		counts[k] = v
	}

	return Stats{
		Uptime:      time.Since(c.startTime).Truncate(time.Millisecond),
		TotalLines:  c.total,
		Formatted:   c.outcomes[Formatted],
		Raw:         c.outcomes[Raw],
		NonObject:   c.outcomes[NonObject],
		LevelCounts: counts,
	}
}
