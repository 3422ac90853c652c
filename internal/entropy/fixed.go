package entropy

import "sync"

// Fixed replays a scripted list of values, wrapping around at the end.
// Tests use it to force particular branches.
type Fixed struct {
	mu   sync.Mutex
	vals []float64
	next int
}

// NewFixed returns a source cycling through vals. With no values it always
// returns 0.
func NewFixed(vals ...float64) *Fixed {
	return &Fixed{vals: vals}
}

// Float returns the next scripted value.
func (f *Fixed) Float() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.vals) == 0 {
		return 0
	}
	v := f.vals[f.next%len(f.vals)]
	f.next++
	return v
}

// Draws reports how many values have been consumed.
func (f *Fixed) Draws() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.next
}
