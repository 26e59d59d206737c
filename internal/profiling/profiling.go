// Package profiling accumulates named section timings for the current frame.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Frame collects durations per section. The zero value is ready to use.
type Frame struct {
	mu     sync.Mutex
	totals map[string]time.Duration
}

// Track returns a stop function that records the elapsed time under name.
// Usage: defer frame.Track("scripts.update")()
func (f *Frame) Track(name string) func() {
	start := time.Now()
	return func() {
		f.Add(name, time.Since(start))
	}
}

// Add records d under name.
func (f *Frame) Add(name string, d time.Duration) {
	f.mu.Lock()
	if f.totals == nil {
		f.totals = make(map[string]time.Duration)
	}
	f.totals[name] += d
	f.mu.Unlock()
}

// Reset clears the totals. Called at the start of each frame.
func (f *Frame) Reset() {
	f.mu.Lock()
	clear(f.totals)
	f.mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func (f *Frame) Snapshot() map[string]time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]time.Duration, len(f.totals))
	for k, v := range f.totals {
		out[k] = v
	}
	return out
}

// Top formats the n slowest sections, e.g. "scripts.draw:4.2ms, physics3d:2.1ms".
func (f *Frame) Top(n int) string {
	type entry struct {
		name string
		dur  time.Duration
	}
	snap := f.Snapshot()
	list := make([]entry, 0, len(snap))
	for k, v := range snap {
		list = append(list, entry{k, v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		parts = append(parts, fmt.Sprintf("%s:%.1fms", e.name, float64(e.dur.Microseconds())/1000))
	}
	return strings.Join(parts, ", ")
}
