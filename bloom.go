package lbf

import (
	"github.com/bits-and-blooms/bitset"
)

// Filter is a standard, non-thread-safe bloom filter.
//
// The filter owns a fixed-size bit array. Each item sets k bits, one per hash
// seed in [0, k), and is reported as possibly present only when all k of its
// bits are set. Bits are never cleared, so the filter has no false negatives.
type Filter struct {
	bits  *bitset.BitSet // size bits, all initially false
	size  uint64         // Length of the bit array
	k     uint32         // Number of hash functions
	count uint64         // Number of items added (approximate)
}

// New creates a new bloom filter with a bit array of size bits and k hash
// functions. It returns an error if size or k is zero.
func New(size uint64, k uint32) (*Filter, error) {
	if size == 0 {
		return nil, NewErrInvalidSize(size)
	}
	if k == 0 {
		return nil, NewErrInvalidHashes(k)
	}

	return &Filter{
		bits: bitset.New(uint(size)),
		size: size,
		k:    k,
	}, nil
}

// MustNew is like New but panics if the parameters are degenerate.
func MustNew(size uint64, k uint32) *Filter {
	f, err := New(size, k)
	if err != nil {
		panic(err)
	}
	return f
}

// NewWithEstimates creates a new bloom filter optimized for the expected
// number of items and desired false positive rate.
func NewWithEstimates(expectedItems uint64, fpRate float64) *Filter {
	size, k, _ := OptimalParams(expectedItems, fpRate)
	return MustNew(size, k)
}

// Add adds data to the bloom filter.
func (f *Filter) Add(data []byte) {
	for seed := uint32(0); seed < f.k; seed++ {
		f.bits.Set(uint(positionBytes(data, seed, f.size)))
	}
	f.count++
}

// AddString adds a string to the bloom filter without allocating.
func (f *Filter) AddString(s string) {
	for seed := uint32(0); seed < f.k; seed++ {
		f.bits.Set(uint(Position(s, seed, f.size)))
	}
	f.count++
}

// Test checks if data might be in the bloom filter.
// Returns true if the data might be present (with false positive probability),
// or false if the data is definitely not present.
func (f *Filter) Test(data []byte) bool {
	for seed := uint32(0); seed < f.k; seed++ {
		if !f.bits.Test(uint(positionBytes(data, seed, f.size))) {
			return false
		}
	}
	return true
}

// TestString checks if a string might be in the bloom filter without allocating.
func (f *Filter) TestString(s string) bool {
	for seed := uint32(0); seed < f.k; seed++ {
		if !f.bits.Test(uint(Position(s, seed, f.size))) {
			return false
		}
	}
	return true
}

// MemoryBits returns the length of the bit array. It does not depend on
// how many items were added.
func (f *Filter) MemoryBits() uint64 {
	return f.size
}

// K returns the number of hash functions used.
func (f *Filter) K() uint32 {
	return f.k
}

// Count returns the approximate number of items added to the filter.
// Re-adding an item counts again.
func (f *Filter) Count() uint64 {
	return f.count
}

// EstimatedFillRatio returns the proportion of bits that are set.
func (f *Filter) EstimatedFillRatio() float64 {
	return float64(f.bits.Count()) / float64(f.size)
}

// EstimatedFalsePositiveRate estimates the current false positive rate
// based on the number of items added.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	return EstimateFalsePositiveRate(f.size, f.k, f.count)
}
