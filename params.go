package lbf

import "math"

const (
	// ln2 is the natural logarithm of 2.
	ln2 = 0.6931471805599453
	// ln2Squared is ln(2)^2.
	ln2Squared = 0.4804530139182014
)

// OptimalParams calculates the optimal bloom filter parameters.
// Returns the bit array size, number of hash functions (k), and bits per item.
func OptimalParams(expectedItems uint64, fpRate float64) (size uint64, k uint32, bitsPerItem float64) {
	if expectedItems == 0 {
		expectedItems = 1
	}
	if fpRate <= 0 {
		fpRate = 0.0001 // default to 0.01%
	}
	if fpRate >= 1 {
		fpRate = 0.99
	}

	// Optimal bits per item: -ln(fpRate) / ln(2)^2
	bitsPerItem = -math.Log(fpRate) / ln2Squared

	// Always >= 1 since bitsPerItem > 0
	size = uint64(math.Ceil(float64(expectedItems) * bitsPerItem))

	// Optimal k: (m/n) * ln(2)
	kFloat := float64(size) / float64(expectedItems) * ln2
	k = max(uint32(math.Round(kFloat)), 1)

	return size, k, bitsPerItem
}

// EstimateFalsePositiveRate estimates the false positive rate of a filter
// with size bits and k hash functions after itemsAdded insertions.
// Formula: (1 - e^(-kn/m))^k
func EstimateFalsePositiveRate(size uint64, k uint32, itemsAdded uint64) float64 {
	m := float64(size)
	n := float64(itemsAdded)
	kf := float64(k)

	if m == 0 || n == 0 {
		return 0
	}

	return math.Pow(1-math.Exp(-kf*n/m), kf)
}

// EstimateSandwichFalsePositiveRate composes per-stage false positive rates
// into the rate of a sandwiched filter. A non-member is reported present when
// it passes L1 and then is either accepted by the oracle or reported by L3:
//
//	l1 * (oracle + (1 - oracle) * l3)
func EstimateSandwichFalsePositiveRate(l1, oracle, l3 float64) float64 {
	return l1 * (oracle + (1-oracle)*l3)
}
