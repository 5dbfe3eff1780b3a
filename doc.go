// Package lbf provides a standard bloom filter and a sandwiched learned
// bloom filter built on top of it.
//
// A bloom filter is a space-efficient probabilistic data structure that tests
// whether an element is a member of a set. False positive matches are possible,
// but false negatives are not – if the filter says an element is not present,
// it definitely is not. If it says an element might be present, it could be a
// false positive.
//
// # Standard filter
//
// [Filter] is a fixed-size bit array with k hash functions. Position i of an
// item is a seeded xxh3 hash of the item, with seed i, reduced modulo the
// array size:
//
//	f, err := lbf.New(3000, 3)
//	f.AddString("http://bad-hacker-site-1.com")
//	f.TestString("http://bad-hacker-site-1.com") // true
//
// [NewWithEstimates] sizes the filter from an expected item count and a
// target false positive rate using [OptimalParams].
//
// # Sandwiched learned filter
//
// [Sandwich] layers three membership testers:
//
//  1. L1, a small standard filter holding every member. A miss here is a
//     definite "absent".
//  2. A [Classifier] over the item's [Features] (length, digits, hyphens). If
//     it predicts "member" the query returns true.
//  3. L3, a standard filter holding the members the classifier rejects. Its
//     answer is final.
//
// The classifier stands in for most of the bits a single filter would need,
// so the two layers together can be much smaller than one standard filter
// with a comparable false positive rate. L3 keeps the no-false-negative
// guarantee, but only for members that were actually added to it.
// [Sandwich.Add] evaluates the classifier at insertion time and routes
// rejected members into L3, which makes the guarantee hold for every item
// added that way. [Sandwich.AddL1] and [Sandwich.AddL3] are available for
// callers that apply their own policy.
//
// # Memory Usage
//
// [Filter.MemoryBits] is the bit array length. [Sandwich.MemoryBits] is the
// sum over L1 and L3; the classifier is treated as negligible control state.
// For a standard filter sized for n items with false positive rate p:
//
//	memory_bits ≈ -n * ln(p) / (ln(2))²
//
// # Thread Safety
//
// Neither [Filter] nor [Sandwich] is safe for concurrent use. Each instance
// should be owned by a single goroutine, or guarded by external locking.
//
// # Errors
//
// Construction with a zero size or zero hash functions, or a nil classifier,
// fails fast with a structured error; see [IsConfigError]. Queries never
// fail: absence is reported as false.
//
// # References
//
//   - Sandwiched learned bloom filters: https://arxiv.org/abs/1803.01474
//   - Less Hashing, Same Performance: https://www.eecs.harvard.edu/~michaelm/postscripts/rsa2008.pdf
package lbf
