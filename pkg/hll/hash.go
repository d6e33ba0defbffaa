package hll

import (
	"github.com/cespare/xxhash/v2"
	"github.com/twmb/murmur3"

	"github.com/Sumatoshi-tech/distinct/pkg/hll/internal/hashutil"
)

// Hash widths accepted by WithHash.
const (
	// HashBits32 declares a hash whose meaningful output is 32 bits wide.
	HashBits32 = 32

	// HashBits64 declares a hash whose meaningful output is 64 bits wide.
	HashBits64 = 64
)

const (
	// djb2Seed is the initial state of the djb2 string hash.
	djb2Seed = 5381

	// djb2Multiplier is the djb2 per-byte multiplier.
	djb2Multiplier = 33

	// integerHashWidth is the number of input bytes IntegerHash consumes.
	integerHashWidth = 4

	// Jenkins 4-byte integer hash constants (Jenkins, 1997).
	jenkinsXor1   = 61
	jenkinsShiftA = 16
	jenkinsShiftB = 3
	jenkinsShiftC = 4
	jenkinsMul    = 0x27d4eb2d
	jenkinsShiftD = 15
)

// HashFunc maps an element, given as an opaque byte slice, to a
// fixed-width unsigned integer. It must be deterministic, and its output
// should be close to uniformly distributed over the declared width.
// Hashes narrower than 64 bits place their output in the low bits.
type HashFunc func(data []byte) uint64

// StringHash is the library default: a djb2-style multiplicative string
// hash over the input bytes, 32 bits wide. It is cheap and good enough
// for short text keys; prefer XXHash or Murmur3Hash when accuracy at high
// cardinalities matters.
func StringHash(data []byte) uint64 {
	h := uint32(djb2Seed)

	for _, b := range data {
		h = h*djb2Multiplier + uint32(b)
	}

	return uint64(h)
}

// IntegerHash mixes a 4-byte little-endian integer using the Jenkins
// integer finalizer, 32 bits wide. Input shorter than 4 bytes is
// zero-padded; bytes past the fourth are ignored.
func IntegerHash(data []byte) uint64 {
	var buf [integerHashWidth]byte

	copy(buf[:], data)

	a := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	a = (a ^ jenkinsXor1) ^ (a >> jenkinsShiftA)
	a += a << jenkinsShiftB
	a ^= a >> jenkinsShiftC
	a *= jenkinsMul
	a ^= a >> jenkinsShiftD

	return uint64(a)
}

// XXHash hashes data with xxHash64, 64 bits wide.
func XXHash(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Murmur3Hash hashes data with MurmurHash3 (x64, low word), 64 bits wide.
func Murmur3Hash(data []byte) uint64 {
	return murmur3.Sum64(data)
}

// MixedFNVHash hashes data with FNV-1a followed by a splitmix64
// finalizer, 64 bits wide.
func MixedFNVHash(data []byte) uint64 {
	return hashutil.Mix64(hashutil.FNV64a(data))
}

// Named hash identifiers accepted by HashByName.
const (
	HashNameString   = "string"
	HashNameInteger  = "integer"
	HashNameXXHash   = "xxhash"
	HashNameMurmur3  = "murmur3"
	HashNameMixedFNV = "fnv-mix"
)

// HashByName resolves a named built-in hash, returning the function and
// its width. Returns ErrUnknownHash for unrecognized names.
func HashByName(name string) (HashFunc, uint8, error) {
	switch name {
	case HashNameString:
		return StringHash, HashBits32, nil
	case HashNameInteger:
		return IntegerHash, HashBits32, nil
	case HashNameXXHash:
		return XXHash, HashBits64, nil
	case HashNameMurmur3:
		return Murmur3Hash, HashBits64, nil
	case HashNameMixedFNV:
		return MixedFNVHash, HashBits64, nil
	default:
		return nil, 0, ErrUnknownHash
	}
}
