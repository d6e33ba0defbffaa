// Package hashutil provides shared hash mixing helpers for the
// cardinality estimator's built-in hash functions.
//
// The finalizer is splitmix64 by Vigna (2014), which provides
// full-avalanche mixing across all 64 bits.
package hashutil

import "hash/fnv"

// Splitmix64 finalizer constants from Vigna (2014).
const (
	// MixShift1 is the first right-shift in the splitmix64 finalizer.
	MixShift1 = 30

	// MixMul1 is the first multiplier in the splitmix64 finalizer.
	MixMul1 = 0xbf58476d1ce4e5b9

	// MixShift2 is the second right-shift in the splitmix64 finalizer.
	MixShift2 = 27

	// MixMul2 is the second multiplier in the splitmix64 finalizer.
	MixMul2 = 0x94d049bb133111eb

	// MixShift3 is the third right-shift in the splitmix64 finalizer.
	MixShift3 = 31
)

// Mix64 applies the splitmix64 finalizer for full-avalanche mixing.
// This matters for HyperLogLog: both the high bits (register index) and
// the low bits (zero-run window) of the output must be well-distributed.
func Mix64(v uint64) uint64 {
	v ^= v >> MixShift1
	v *= MixMul1
	v ^= v >> MixShift2
	v *= MixMul2
	v ^= v >> MixShift3

	return v
}

// FNV64a computes a 64-bit FNV-1a hash of the given data.
func FNV64a(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(data)

	return h.Sum64()
}
