package lbf

import "github.com/zeebo/xxh3"

// Position returns the bit position in [0, size) for item under the given
// seed. Each of a filter's k probes uses a distinct seed in [0, k), so one
// seeded xxh3 hash stands in for a family of k independent hash functions.
//
// The result only depends on (item, seed, size). size must be non-zero.
func Position(item string, seed uint32, size uint64) uint64 {
	return xxh3.HashStringSeed(item, uint64(seed)) % size
}

// positionBytes is Position for byte keys. It returns the same position as
// Position(string(data), seed, size) without allocating.
func positionBytes(data []byte, seed uint32, size uint64) uint64 {
	return xxh3.HashSeed(data, uint64(seed)) % size
}
