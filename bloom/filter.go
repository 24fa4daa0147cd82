// Package bloom provides a probabilistic membership pre-check for URLs.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter answers "definitely not seen" cheaply. A positive answer must be
// confirmed by the caller.
type Filter struct {
	f        *bloom.BloomFilter
	capacity uint
	fpRate   float64
	added    uint
}

// NewFilter creates a filter sized for capacity keys at the given false
// positive rate.
func NewFilter(capacity uint, fpRate float64) *Filter {
	if capacity == 0 {
		capacity = 1
	}
	return &Filter{
		f:        bloom.NewWithEstimates(capacity, fpRate),
		capacity: capacity,
		fpRate:   fpRate,
	}
}

// Add records key.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
	f.added++
}

// MayContain reports whether key might have been added. False positives are
// possible; false negatives are not.
func (f *Filter) MayContain(key string) bool {
	return f.f.TestString(key)
}

// Saturated reports whether more keys were added than the filter was sized
// for, at which point the false positive rate climbs above the target.
func (f *Filter) Saturated() bool {
	return f.added > f.capacity
}

// Grow returns an empty filter with twice the capacity and the same false
// positive rate. Callers re-add their keys to it.
func (f *Filter) Grow() *Filter {
	return NewFilter(f.capacity*2, f.fpRate)
}
