// Package rolling provides O(1) amortized sliding-window extreme tracking.
package rolling

import "math"

type entry struct {
	idx int
	val float64
}

// Tracker maintains the extreme of a trailing window over a stream of
// values using a monotonic deque of candidate indices. NaN values are
// accepted but never become candidates, matching how gaps are skipped
// when computing rolling extremes.
type Tracker struct {
	window int
	max    bool
	deque  []entry
	count  int // values pushed so far
}

// NewMax creates a tracker for the trailing-window maximum
func NewMax(window int) *Tracker {
	return &Tracker{window: window, max: true}
}

// NewMin creates a tracker for the trailing-window minimum
func NewMin(window int) *Tracker {
	return &Tracker{window: window, max: false}
}

// beats reports whether a displaces b as the window extreme.
// Equal values displace older ones so ties resolve to the most
// recent occurrence.
func (t *Tracker) beats(a, b float64) bool {
	if t.max {
		return a >= b
	}
	return a <= b
}

// Push appends the next value in the stream
func (t *Tracker) Push(v float64) {
	i := t.count
	t.count++

	if !math.IsNaN(v) {
		for len(t.deque) > 0 && t.beats(v, t.deque[len(t.deque)-1].val) {
			t.deque = t.deque[:len(t.deque)-1]
		}
		t.deque = append(t.deque, entry{idx: i, val: v})
	}

	// Evict candidates that fell out of the trailing window
	lo := i - t.window + 1
	for len(t.deque) > 0 && t.deque[0].idx < lo {
		t.deque = t.deque[1:]
	}
}

// Extreme returns the current window extreme and the stream index of its
// most recent occurrence. ok is false when the window holds no finite
// value.
func (t *Tracker) Extreme() (val float64, idx int, ok bool) {
	if len(t.deque) == 0 {
		return math.NaN(), -1, false
	}
	return t.deque[0].val, t.deque[0].idx, true
}

// Count returns the number of values pushed so far
func (t *Tracker) Count() int {
	return t.count
}

// Reset clears the tracker state
func (t *Tracker) Reset() {
	t.deque = nil
	t.count = 0
}
